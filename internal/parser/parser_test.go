package parser

import (
	"errors"
	"testing"

	"github.com/vovakirdan/whispers/internal/locale"
	"github.com/vovakirdan/whispers/internal/story"
)

func optionsAt(scene story.Scene) []story.Option {
	var opts []story.Option
	for _, c := range story.ChoicesFor(scene) {
		opts = append(opts, story.Option{Choice: c, Label: c.Label()})
	}
	return opts
}

func TestNormalise(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  TORCH!!  ", "torch"},
		{"go   to-basement", "go to basement"},
		{"손전등  줍기", "손전등 줍기"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := normalise(tc.in); got != tc.want {
			t.Errorf("normalise(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		scene story.Scene
		input string
		want  story.Choice
	}{
		{"index", story.SceneFoyer, "1", story.ChoiceTakeTorch},
		{"last index", story.SceneFoyer, " 3 ", story.ChoiceGoBasement},
		{"exact id", story.SceneFoyer, "take torch", story.ChoiceTakeTorch},
		{"label", story.SceneFoyer, "Pick up the torch", story.ChoiceTakeTorch},
		{"alias", story.SceneFoyer, "TORCH!", story.ChoiceTakeTorch},
		{"alias up", story.SceneFoyer, "up", story.ChoiceGoUpstairs},
		{"alias down", story.SceneFoyer, "down", story.ChoiceGoBasement},
		{"prefix", story.SceneFoyer, "go u", story.ChoiceGoUpstairs},
		{"typo", story.SceneFoyer, "tkae torch", story.ChoiceTakeTorch},
		{"typo in alias", story.SceneFoyer, "upstair", story.ChoiceGoUpstairs},
		{"back upstairs", story.SceneUpstairs, "back", story.ChoiceReturn},
		{"back in basement", story.SceneBasement, "back", story.ChoiceFlee},
		{"typo right", story.SceneUpstairs, "rigth", story.ChoiceRightRoom},
		{"open at intro", story.SceneIntro, "open", story.ChoiceEnter},
		{"open at secret", story.SceneSecret, "open", story.ChoiceOpenDoor},
		{"restart", story.SceneEndBad, "again", story.ChoiceRestart},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.input, optionsAt(tc.scene))
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Resolve(%q) = %q, expected %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestResolveNoMatch(t *testing.T) {
	tests := []string{"fly", "", "   ", "0", "4", "zz"}
	opts := optionsAt(story.SceneFoyer)

	for _, input := range tests {
		_, err := Resolve(input, opts)
		if !errors.Is(err, ErrNoMatch) {
			t.Errorf("Resolve(%q) error = %v, expected ErrNoMatch", input, err)
		}
	}
}

func TestResolveSuggestions(t *testing.T) {
	opts := optionsAt(story.SceneFoyer)
	_, err := Resolve("fly", opts)

	var me *MatchError
	if !errors.As(err, &me) {
		t.Fatalf("expected *MatchError, got %T", err)
	}
	if len(me.Suggestions) != len(opts) {
		t.Errorf("got %d suggestions, expected every option", len(me.Suggestions))
	}
	if me.Input != "fly" {
		t.Errorf("Input = %q", me.Input)
	}
}

func TestResolveAmbiguous(t *testing.T) {
	_, err := Resolve("go", optionsAt(story.SceneFoyer))
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}

	var me *MatchError
	errors.As(err, &me)
	if len(me.Suggestions) != 2 {
		t.Errorf("expected both go options, got %v", me.Suggestions)
	}
}

func TestResolveTranslatedLabels(t *testing.T) {
	cat := locale.MustNew("ko")
	var opts []story.Option
	for _, c := range story.ChoicesFor(story.SceneFoyer) {
		opts = append(opts, story.Option{Choice: c, Label: cat.T(c.Label())})
	}

	tests := map[string]story.Choice{
		"손전등 줍기": story.ChoiceTakeTorch,
		"위층으로":   story.ChoiceGoUpstairs,
		"지하":     story.ChoiceGoBasement,
		"torch":  story.ChoiceTakeTorch,
	}
	for input, want := range tests {
		got, err := Resolve(input, opts)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("Resolve(%q) = %q, expected %q", input, got, want)
		}
	}
}

func TestLevenshteinLimit(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{1, 1}, {4, 1}, {5, 2}, {8, 2}, {9, 3}, {30, 3},
	}
	for _, tc := range tests {
		if got := levenshteinLimit(tc.length); got != tc.want {
			t.Errorf("levenshteinLimit(%d) = %d, expected %d", tc.length, got, tc.want)
		}
	}
}
