package story

// Edge is one possible transition in the scene graph.
type Edge struct {
	From   Scene
	Choice Choice
	To     []Scene // every scene the choice can lead to, most likely first
}

// Graph describes every transition the engine can take. The hidden door may
// additionally divert any move that lands in the foyer, upstairs or basement.
func Graph() []Edge {
	return []Edge{
		{SceneIntro, ChoiceEnter, []Scene{SceneFoyer, SceneSecret}},
		{SceneIntro, ChoiceRetreat, []Scene{SceneFoyer, SceneSecret}},
		{SceneFoyer, ChoiceTakeTorch, []Scene{SceneFoyer, SceneSecret}},
		{SceneFoyer, ChoiceGoUpstairs, []Scene{SceneUpstairs, SceneSecret}},
		{SceneFoyer, ChoiceGoBasement, []Scene{SceneBasement, SceneSecret}},
		{SceneUpstairs, ChoiceLeftRoom, []Scene{SceneUpstairs, SceneSecret}},
		{SceneUpstairs, ChoiceRightRoom, []Scene{SceneUpstairs, SceneSecret}},
		{SceneUpstairs, ChoiceReturn, []Scene{SceneFoyer, SceneSecret}},
		{SceneBasement, ChoiceDeepRoom, []Scene{SceneFoyer, SceneEndBad, SceneSecret}},
		{SceneBasement, ChoiceFlee, []Scene{SceneFoyer, SceneSecret}},
		{SceneSecret, ChoiceOpenDoor, []Scene{SceneEndGood, SceneEndBad}},
		{SceneEndGood, ChoiceRestart, []Scene{SceneIntro}},
		{SceneEndBad, ChoiceRestart, []Scene{SceneIntro}},
	}
}
