// Package parser resolves free-form player input to one of the offered choices.
package parser

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/vovakirdan/whispers/internal/story"
)

var (
	// ErrNoMatch is returned when input matches none of the options.
	ErrNoMatch = errors.New("parser: no matching choice")
	// ErrAmbiguous is returned when input matches more than one option equally well.
	ErrAmbiguous = errors.New("parser: ambiguous choice")
)

// MatchError carries the options a front end can suggest after a failed match.
type MatchError struct {
	Input       string
	Suggestions []story.Option
	err         error
}

func (e *MatchError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%v: %q", e.err, e.Input)
	}
	labels := make([]string, len(e.Suggestions))
	for i, s := range e.Suggestions {
		labels[i] = s.Label
	}
	return fmt.Sprintf("%v: %q (did you mean %s?)", e.err, e.Input, strings.Join(labels, ", "))
}

func (e *MatchError) Unwrap() error {
	return e.err
}

// aliases are extra words accepted for each choice. They are only compared
// against the options of the current scene, so overlaps between scenes are fine.
var aliases = map[story.Choice][]string{
	story.ChoiceEnter:      {"in", "inside", "go in", "open"},
	story.ChoiceRetreat:    {"back", "leave", "turn back", "away"},
	story.ChoiceTakeTorch:  {"torch", "take", "light", "flashlight", "pick up"},
	story.ChoiceGoUpstairs: {"up", "upstairs", "stairs"},
	story.ChoiceGoBasement: {"down", "basement", "downstairs"},
	story.ChoiceLeftRoom:   {"left"},
	story.ChoiceRightRoom:  {"right"},
	story.ChoiceReturn:     {"back", "foyer", "down", "corridor"},
	story.ChoiceDeepRoom:   {"deep", "deeper", "in"},
	story.ChoiceFlee:       {"run", "escape", "back", "out"},
	story.ChoiceOpenDoor:   {"door", "open"},
	story.ChoiceRestart:    {"again", "new", "replay"},
}

// Resolve maps input to one of options.
//
// Matching tries, in order: a 1-based index, the choice id or displayed label,
// an alias, a unique prefix and finally a close spelling.
func Resolve(input string, options []story.Option) (story.Choice, error) {
	in := normalise(input)
	if in == "" || len(options) == 0 {
		return "", &MatchError{Input: input, err: ErrNoMatch}
	}

	if n, err := strconv.Atoi(in); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1].Choice, nil
		}
		return "", &MatchError{Input: input, Suggestions: options, err: ErrNoMatch}
	}

	for _, opt := range options {
		if in == normalise(string(opt.Choice)) || in == normalise(opt.Label) {
			return opt.Choice, nil
		}
	}

	for _, opt := range options {
		for _, a := range aliases[opt.Choice] {
			if in == a {
				return opt.Choice, nil
			}
		}
	}

	if utf8.RuneCountInString(in) >= 2 {
		var hits []story.Option
		for _, opt := range options {
			if hasPrefix(opt, in) {
				hits = append(hits, opt)
			}
		}
		switch len(hits) {
		case 0:
		case 1:
			return hits[0].Choice, nil
		default:
			return "", &MatchError{Input: input, Suggestions: hits, err: ErrAmbiguous}
		}
	}

	return fuzzy(input, in, options)
}

func hasPrefix(opt story.Option, in string) bool {
	return strings.HasPrefix(normalise(string(opt.Choice)), in) || strings.HasPrefix(normalise(opt.Label), in)
}

type candidate struct {
	opt  story.Option
	dist int
}

func fuzzy(raw, in string, options []story.Option) (story.Choice, error) {
	if utf8.RuneCountInString(in) < 3 {
		return "", &MatchError{Input: raw, Suggestions: options, err: ErrNoMatch}
	}

	var cands []candidate
	for _, opt := range options {
		best := -1
		for _, phrase := range phrases(opt) {
			dist := levenshtein.ComputeDistance(in, phrase)
			if dist > levenshteinLimit(utf8.RuneCountInString(phrase)) {
				continue
			}
			if best < 0 || dist < best {
				best = dist
			}
		}
		if best >= 0 {
			cands = append(cands, candidate{opt: opt, dist: best})
		}
	}

	if len(cands) == 0 {
		return "", &MatchError{Input: raw, Suggestions: options, err: ErrNoMatch}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].dist < cands[j].dist
	})
	if len(cands) > 1 && cands[0].dist == cands[1].dist {
		var tied []story.Option
		for _, c := range cands {
			if c.dist == cands[0].dist {
				tied = append(tied, c.opt)
			}
		}
		return "", &MatchError{Input: raw, Suggestions: tied, err: ErrAmbiguous}
	}
	return cands[0].opt.Choice, nil
}

func phrases(opt story.Option) []string {
	out := []string{normalise(string(opt.Choice)), normalise(opt.Label)}
	return append(out, aliases[opt.Choice]...)
}
