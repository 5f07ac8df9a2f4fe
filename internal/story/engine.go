package story

import (
	"fmt"

	"github.com/vovakirdan/whispers/internal/config"
	"github.com/vovakirdan/whispers/internal/core"
	"github.com/vovakirdan/whispers/internal/random"
)

// Engine resolves player choices against the story rules.
// It holds no per-session data and is safe to share between sessions.
type Engine struct {
	cfg config.StoryConfig
}

// NewEngine creates an engine with the given tuning.
func NewEngine(cfg config.StoryConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the tuning the engine was built with.
func (e *Engine) Config() config.StoryConfig {
	return e.cfg
}

// Outcome describes what happened while applying one choice.
type Outcome struct {
	From   Scene
	To     Scene
	Choice Choice
	Lines  []string // Narrative shown to the player
	Events []string // Entries appended to the journey log
}

// Restart returns a fresh initial state.
func (e *Engine) Restart() State {
	return New()
}

// Apply resolves choice at scene against st and returns the new state.
//
// scene must be the scene the caller rendered; a stale scene is rejected like
// an unknown choice. Rejected calls return st unchanged and draw nothing from src.
func (e *Engine) Apply(st State, scene Scene, choice Choice, src random.Source) (State, Outcome, error) {
	if st.Scene.IsTerminal() {
		if choice != ChoiceRestart {
			return st, Outcome{}, fmt.Errorf("%w: %q in terminal scene %s", ErrInvalidTransition, choice, st.Scene)
		}
		if scene != st.Scene {
			return st, Outcome{}, fmt.Errorf("%w: restart requested from %s but session is in %s", ErrInvalidChoice, scene, st.Scene)
		}
		return e.Restart(), Outcome{From: st.Scene, To: SceneIntro, Choice: choice}, nil
	}

	if scene != st.Scene {
		return st, Outcome{}, fmt.Errorf("%w: %q requested from %s but session is in %s", ErrInvalidChoice, choice, scene, st.Scene)
	}
	if !Offers(st.Scene, choice) {
		return st, Outcome{}, fmt.Errorf("%w: %q is not offered in %s", ErrInvalidChoice, choice, st.Scene)
	}

	r := &resolver{
		cfg: e.cfg,
		st:  st.Clone(),
		src: src,
		out: Outcome{From: st.Scene, Choice: choice},
	}

	switch st.Scene {
	case SceneIntro:
		r.intro(choice)
	case SceneFoyer:
		r.foyer(choice)
	case SceneUpstairs:
		r.upstairs(choice)
	case SceneBasement:
		r.basement(choice)
	case SceneSecret:
		r.secret(choice)
	}

	r.secretCheck()

	r.out.To = r.st.Scene
	return r.st, r.out, nil
}

// resolver accumulates the effects of a single Apply call.
type resolver struct {
	cfg config.StoryConfig
	st  State
	src random.Source
	out Outcome
}

func (r *resolver) addFear(n int) {
	r.st.Fear = core.Clamp(r.st.Fear+n, MinFear, MaxFear)
}

func (r *resolver) say(line string) {
	r.out.Lines = append(r.out.Lines, line)
}

func (r *resolver) log(entry string) {
	r.st.Log = append(r.st.Log, entry)
	r.out.Events = append(r.out.Events, entry)
}

func (r *resolver) roll(p float64) bool {
	return random.Roll(r.src, p)
}

// moveTo changes scene and runs entry effects.
func (r *resolver) moveTo(scene Scene) {
	r.st.Scene = scene
	if scene == SceneBasement {
		r.basementEntry()
	}
}

func (r *resolver) intro(choice Choice) {
	switch choice {
	case ChoiceEnter:
		r.log(LogEntered)
		r.addFear(r.cfg.Fear.Enter)
	case ChoiceRetreat:
		// No way back: both choices lead into the foyer.
		r.log(LogRetreated)
		r.addFear(r.cfg.Fear.Retreat)
	}
	r.moveTo(SceneFoyer)
}

func (r *resolver) foyer(choice Choice) {
	switch choice {
	case ChoiceTakeTorch:
		if r.st.HasTorch {
			r.say(SayAlreadyTorch)
			return
		}
		r.st.HasTorch = true
		r.log(LogTookTorch)
		r.say(SayTorchLit)
	case ChoiceGoUpstairs:
		r.log(LogWentUpstairs)
		r.addFear(r.cfg.Fear.Upstairs)
		r.moveTo(SceneUpstairs)
	case ChoiceGoBasement:
		r.log(LogWentBasement)
		r.addFear(r.cfg.Fear.Basement)
		r.moveTo(SceneBasement)
	}
}

func (r *resolver) upstairs(choice Choice) {
	switch choice {
	case ChoiceLeftRoom:
		r.log(LogLeftRoom)
		if r.roll(r.cfg.Rolls.Diary) {
			r.say(SayDiary)
			r.st.FoundNote = true
			r.log(LogFoundDiary)
			r.addFear(r.cfg.Fear.DiaryFound)
			return
		}
		r.say(SayEmptyRoom)
		r.addFear(r.cfg.Fear.EmptyRoom)
	case ChoiceRightRoom:
		r.log(LogRightRoom)
		if r.st.HasTorch {
			r.say(SayShadow)
			r.addFear(r.cfg.Fear.ShadowWithTorch)
			return
		}
		r.say(SayDarkEncounter)
		r.addFear(r.cfg.Fear.DarkEncounter)
	case ChoiceReturn:
		r.log(LogReturned)
		r.moveTo(SceneFoyer)
	}
}

// basementEntry runs once each time the player arrives in the basement.
func (r *resolver) basementEntry() {
	if r.st.FoundNote {
		return
	}
	if r.roll(r.cfg.Rolls.BasementNote) {
		r.say(SayNoteFound)
		r.st.FoundNote = true
		r.log(LogFoundNote)
		r.addFear(r.cfg.Fear.NoteFound)
	}
}

func (r *resolver) basement(choice Choice) {
	switch choice {
	case ChoiceDeepRoom:
		r.log(LogDeepRoom)
		if r.st.HasTorch {
			r.say(SayDoll)
			if r.roll(r.cfg.Rolls.Doll) {
				r.say(SayDollReaches)
				r.log(LogDollMoved)
				r.addFear(r.cfg.Fear.DollReaches)
			} else {
				r.say(SayOldToy)
				r.addFear(r.cfg.Fear.OldToy)
			}
		} else {
			r.say(SayLunge)
			r.addFear(r.cfg.Fear.Lunge)
		}

		if r.st.Fear >= r.cfg.Thresholds.Death && r.roll(r.cfg.Rolls.Death) {
			r.say(SayBlackout)
			r.st.Alive = false
			r.moveTo(SceneEndBad)
			return
		}
		r.say(SayEscaped)
		r.moveTo(SceneFoyer)
	case ChoiceFlee:
		r.log(LogFled)
		r.addFear(r.cfg.Fear.Flee)
		r.moveTo(SceneFoyer)
	}
}

func (r *resolver) secret(choice Choice) {
	if choice != ChoiceOpenDoor {
		return
	}
	r.log(LogOpenedDoor)
	if r.st.Fear < r.cfg.Thresholds.GoodEnding {
		r.say(SayDoorOpensOut)
		r.moveTo(SceneEndGood)
		return
	}
	r.say(SayDoorOpensDark)
	r.moveTo(SceneEndBad)
}

// secretCheck may divert the player to the hidden door after any move that
// leaves them exploring the house. It runs at most once per Apply.
func (r *resolver) secretCheck() {
	if !r.st.Scene.explorable() {
		return
	}
	if !r.st.Alive || !r.st.FoundNote || !r.st.HasTorch {
		return
	}
	if r.roll(r.cfg.Rolls.Secret) {
		r.say(SaySecretRevealed)
		r.log(LogHiddenDoor)
		r.moveTo(SceneSecret)
	}
}
