package story

// Option is one choice as presented to the player.
type Option struct {
	Choice Choice
	Label  string
}

// View is a displayable description of a state.
type View struct {
	Scene     Scene
	Title     string
	Lines     []string
	Options   []Option
	Fear      int
	HasTorch  bool
	FoundNote bool
	Terminal  bool
}

// Render projects st into a View. It has no side effects.
func (e *Engine) Render(st State) View {
	v := View{
		Scene:     st.Scene,
		Title:     sceneTitle(st.Scene),
		Lines:     sceneLines(st),
		Fear:      st.Fear,
		HasTorch:  st.HasTorch,
		FoundNote: st.FoundNote,
		Terminal:  st.Scene.IsTerminal(),
	}

	for _, c := range sceneChoices[st.Scene] {
		v.Options = append(v.Options, Option{Choice: c, Label: c.Label()})
	}
	return v
}

func sceneTitle(s Scene) string {
	switch s {
	case SceneIntro:
		return TitleIntro
	case SceneFoyer:
		return TitleFoyer
	case SceneUpstairs:
		return TitleUpstairs
	case SceneBasement:
		return TitleBasement
	case SceneSecret:
		return TitleSecret
	case SceneEndGood:
		return TitleEndGood
	case SceneEndBad:
		return TitleEndBad
	default:
		return string(s)
	}
}

func sceneLines(st State) []string {
	switch st.Scene {
	case SceneIntro:
		return []string{DescIntro, DescIntroPrompt}
	case SceneFoyer:
		if st.HasTorch {
			return []string{DescFoyerLit}
		}
		return []string{DescFoyer}
	case SceneUpstairs:
		return []string{DescUpstairs, DescUpstairsPrompt}
	case SceneBasement:
		return []string{DescBasement}
	case SceneSecret:
		return []string{DescSecret}
	case SceneEndGood:
		return []string{DescEndGood}
	case SceneEndBad:
		return []string{DescEndBad}
	default:
		return nil
	}
}
