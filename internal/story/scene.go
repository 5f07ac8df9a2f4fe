// Package story implements the branching narrative engine of Whispers in the Dark.
//
// The engine is a small state machine over a handful of scenes. A State value
// is threaded explicitly through Engine.Apply, which is the only operation that
// mutates it; Engine.Render is a pure projection used by front ends. Every
// probabilistic branch draws from an injected random.Source.
package story

// Scene is a named location the player occupies.
type Scene string

const (
	SceneIntro    Scene = "intro"
	SceneFoyer    Scene = "foyer"
	SceneUpstairs Scene = "upstairs"
	SceneBasement Scene = "basement"
	SceneSecret   Scene = "secret"
	SceneEndGood  Scene = "end_good"
	SceneEndBad   Scene = "end_bad"
)

// Scenes returns every scene in story order.
func Scenes() []Scene {
	return []Scene{
		SceneIntro,
		SceneFoyer,
		SceneUpstairs,
		SceneBasement,
		SceneSecret,
		SceneEndGood,
		SceneEndBad,
	}
}

// Valid reports whether s is one of the known scenes.
func (s Scene) Valid() bool {
	switch s {
	case SceneIntro, SceneFoyer, SceneUpstairs, SceneBasement, SceneSecret, SceneEndGood, SceneEndBad:
		return true
	}
	return false
}

// IsTerminal reports whether only a restart is possible from s.
func (s Scene) IsTerminal() bool {
	return s == SceneEndGood || s == SceneEndBad
}

// explorable scenes are the ones after which the hidden door may appear.
func (s Scene) explorable() bool {
	return s == SceneFoyer || s == SceneUpstairs || s == SceneBasement
}

func (s Scene) String() string {
	return string(s)
}
