package story

import (
	"github.com/zyedidia/generic/mapset"
)

// Choice identifies a player decision within a scene.
type Choice string

const (
	ChoiceEnter      Choice = "enter"
	ChoiceRetreat    Choice = "retreat"
	ChoiceTakeTorch  Choice = "take torch"
	ChoiceGoUpstairs Choice = "go upstairs"
	ChoiceGoBasement Choice = "go to basement"
	ChoiceLeftRoom   Choice = "left room"
	ChoiceRightRoom  Choice = "right room"
	ChoiceReturn     Choice = "return"
	ChoiceDeepRoom   Choice = "deep room"
	ChoiceFlee       Choice = "flee"
	ChoiceOpenDoor   Choice = "open door"
	ChoiceRestart    Choice = "restart"
)

// sceneChoices lists the choices each scene offers, in display order.
var sceneChoices = map[Scene][]Choice{
	SceneIntro:    {ChoiceEnter, ChoiceRetreat},
	SceneFoyer:    {ChoiceTakeTorch, ChoiceGoUpstairs, ChoiceGoBasement},
	SceneUpstairs: {ChoiceLeftRoom, ChoiceRightRoom, ChoiceReturn},
	SceneBasement: {ChoiceDeepRoom, ChoiceFlee},
	SceneSecret:   {ChoiceOpenDoor},
	SceneEndGood:  {ChoiceRestart},
	SceneEndBad:   {ChoiceRestart},
}

// offered mirrors sceneChoices as sets for membership checks.
var offered = buildOffered()

func buildOffered() map[Scene]mapset.Set[Choice] {
	sets := make(map[Scene]mapset.Set[Choice], len(sceneChoices))
	for scene, choices := range sceneChoices {
		set := mapset.New[Choice]()
		for _, c := range choices {
			set.Put(c)
		}
		sets[scene] = set
	}
	return sets
}

// ChoicesFor returns the choices offered in scene, in display order.
// The returned slice is a copy.
func ChoicesFor(scene Scene) []Choice {
	choices := sceneChoices[scene]
	out := make([]Choice, len(choices))
	copy(out, choices)
	return out
}

// Offers reports whether scene exposes choice.
func Offers(scene Scene, choice Choice) bool {
	set, ok := offered[scene]
	if !ok {
		return false
	}
	return set.Has(choice)
}

// Label returns the English label shown for a choice.
func (c Choice) Label() string {
	switch c {
	case ChoiceEnter:
		return LabelEnter
	case ChoiceRetreat:
		return LabelRetreat
	case ChoiceTakeTorch:
		return LabelTakeTorch
	case ChoiceGoUpstairs:
		return LabelGoUpstairs
	case ChoiceGoBasement:
		return LabelGoBasement
	case ChoiceLeftRoom:
		return LabelLeftRoom
	case ChoiceRightRoom:
		return LabelRightRoom
	case ChoiceReturn:
		return LabelReturn
	case ChoiceDeepRoom:
		return LabelDeepRoom
	case ChoiceFlee:
		return LabelFlee
	case ChoiceOpenDoor:
		return LabelOpenDoor
	case ChoiceRestart:
		return LabelRestart
	default:
		return string(c)
	}
}
