// Package cli is the line-oriented front end: it prints the current scene,
// reads one line of input, resolves it to an offered choice and repeats.
// It works over any reader and writer, so it serves pipes and scripts as
// well as dumb terminals.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/vovakirdan/whispers/internal/core"
	"github.com/vovakirdan/whispers/internal/locale"
	"github.com/vovakirdan/whispers/internal/parser"
	"github.com/vovakirdan/whispers/internal/session"
	"github.com/vovakirdan/whispers/internal/story"
)

// ProgressStore persists unfinished sessions.
type ProgressStore interface {
	SaveProgress(snap session.Snapshot) error
	ClearProgress(player string) error
}

// Options configures a Runner.
type Options struct {
	Progress ProgressStore // optional; enables "save"
	Plain    bool          // no ANSI colors
}

// Result tells the caller how the loop ended.
type Result int

const (
	ResultQuit  Result = iota // player typed quit
	ResultSaved               // progress stored, resume later
	ResultEOF                 // input ran out
)

var (
	colorTitle    = color.Style{color.FgLightWhite, color.OpBold}
	colorText     = color.Style{color.FgWhite}
	colorOption   = color.Style{color.FgMagenta}
	colorIndex    = color.Style{color.FgMagenta, color.OpBold}
	colorNarrate  = color.Style{color.FgYellow}
	colorFear     = color.Style{color.FgRed, color.OpBold}
	colorDenied   = color.Style{color.FgRed}
	colorSubtle   = color.Style{color.FgGray}
	colorEscaped  = color.Style{color.FgGreen, color.OpBold}
	colorDarkness = color.Style{color.FgRed, color.OpBold}
)

// Runner plays one session over a line reader.
type Runner struct {
	in       *bufio.Reader
	out      io.Writer
	sess     *session.Session
	cat      *locale.Catalog
	progress ProgressStore
	plain    bool
}

// New creates a runner for sess.
func New(in io.Reader, out io.Writer, sess *session.Session, cat *locale.Catalog, opts Options) *Runner {
	if cat == nil {
		cat = locale.MustNew(locale.DefaultLang)
	}
	return &Runner{
		in:       bufio.NewReader(in),
		out:      out,
		sess:     sess,
		cat:      cat,
		progress: opts.Progress,
		plain:    opts.Plain,
	}
}

// Run loops until the player quits, saves, or the input ends.
func (r *Runner) Run() (Result, error) {
	r.paintln(colorTitle, r.cat.T(story.Title))
	r.paintln(colorSubtle, "Type a number or the name of a choice. 'help' lists commands.")
	r.scene()

	for {
		r.paint(colorSubtle, "> ")
		line, err := r.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return ResultEOF, fmt.Errorf("cli: read input: %w", err)
		}
		eof := errors.Is(err, io.EOF)

		input := strings.TrimSpace(line)
		if input == "" {
			if eof {
				fmt.Fprintln(r.out)
				return ResultEOF, nil
			}
			continue
		}

		done, result, cmdErr := r.handle(input)
		if cmdErr != nil {
			return result, cmdErr
		}
		if done {
			return result, nil
		}
		if eof {
			return ResultEOF, nil
		}
	}
}

// handle runs one line of input. done is true when the loop should stop.
func (r *Runner) handle(input string) (done bool, result Result, err error) {
	switch strings.ToLower(input) {
	case "help", "?":
		r.help()
		return false, 0, nil
	case "log", "journal":
		r.journal()
		return false, 0, nil
	case "look":
		r.scene()
		return false, 0, nil
	case "quit", "exit":
		return true, ResultQuit, nil
	case "save":
		return r.save()
	}

	view := r.sess.View()
	choice, err := parser.Resolve(input, r.options(view))
	if err != nil {
		r.rejected(err)
		return false, 0, nil
	}

	out, err := r.sess.Choose(view.Scene, choice)
	if err != nil {
		r.paintln(colorDenied, err.Error())
		return false, 0, nil
	}

	fmt.Fprintln(r.out)
	for _, line := range out.Lines {
		r.paintln(colorNarrate, r.cat.T(line))
	}
	if out.To.IsTerminal() {
		r.ending(out.To)
		if r.progress != nil {
			if err := r.progress.ClearProgress(r.sess.Player()); err != nil {
				r.paintln(colorDenied, fmt.Sprintf("could not clear saved progress: %v", err))
			}
		}
	}
	r.scene()
	return false, 0, nil
}

// options returns the offered choices with translated labels.
func (r *Runner) options(v story.View) []story.Option {
	opts := make([]story.Option, len(v.Options))
	for i, o := range v.Options {
		opts[i] = story.Option{Choice: o.Choice, Label: r.cat.T(o.Label)}
	}
	return opts
}

func (r *Runner) rejected(err error) {
	var me *parser.MatchError
	if !errors.As(err, &me) || len(me.Suggestions) == 0 {
		r.paintln(colorDenied, "Nothing answers to that. Type a number or 'help'.")
		return
	}

	labels := make([]string, len(me.Suggestions))
	for i, s := range me.Suggestions {
		labels[i] = s.Label
	}
	if errors.Is(err, parser.ErrAmbiguous) {
		r.paintln(colorDenied, "Which one? "+strings.Join(labels, " / "))
		return
	}
	r.paintln(colorDenied, "Did you mean: "+strings.Join(labels, " / ")+"?")
}

func (r *Runner) save() (bool, Result, error) {
	if r.progress == nil {
		r.paintln(colorDenied, "Progress cannot be saved without a database.")
		return false, 0, nil
	}
	if r.sess.State().Terminal() {
		r.paintln(colorDenied, "This run is over. Nothing to save.")
		return false, 0, nil
	}
	if err := r.progress.SaveProgress(r.sess.Snapshot()); err != nil {
		return true, ResultQuit, fmt.Errorf("cli: save progress: %w", err)
	}
	r.paintln(colorSubtle, "Saved. Resume with 'whispers text --resume'.")
	return true, ResultSaved, nil
}

// scene prints the current view.
func (r *Runner) scene() {
	v := r.sess.View()

	fmt.Fprintln(r.out)
	r.paintln(colorTitle, r.cat.T(v.Title))
	for _, line := range v.Lines {
		r.paintln(colorText, r.cat.T(line))
	}
	r.fear(v.Fear)
	for i, opt := range v.Options {
		fmt.Fprintf(r.out, "  %s %s\n",
			r.sprint(colorIndex, fmt.Sprintf("%d.", i+1)),
			r.sprint(colorOption, r.cat.T(opt.Label)),
		)
	}
}

// fear prints a ten-cell meter.
func (r *Runner) fear(fear int) {
	const cells = 10
	filled := int(core.Percent(fear, story.MaxFear)*cells + 0.5)
	bar := strings.Repeat("#", filled) + strings.Repeat(".", cells-filled)
	fmt.Fprintf(r.out, "%s [%s] %d/%d\n",
		r.cat.T(story.LabelFear), r.sprint(colorFear, bar), fear, story.MaxFear)
}

func (r *Runner) ending(scene story.Scene) {
	fmt.Fprintln(r.out)
	if scene == story.SceneEndGood {
		r.paintln(colorEscaped, "*** "+r.cat.T(story.TitleEndGood)+" ***")
	} else {
		r.paintln(colorDarkness, "*** "+r.cat.T(story.TitleEndBad)+" ***")
	}
	r.paintln(colorSubtle, fmt.Sprintf("moves %d  |  fear %d  |  seed %d",
		r.sess.Moves(), r.sess.State().Fear, r.sess.Seed()))
}

func (r *Runner) journal() {
	st := r.sess.State()
	r.paintln(colorTitle, r.cat.T(story.LabelJournal))
	if len(st.Log) == 0 {
		r.paintln(colorSubtle, r.cat.T(story.LabelJournalEmpty))
		return
	}
	for i, entry := range st.Log {
		fmt.Fprintf(r.out, "%2d. %s\n", i+1, r.cat.T(entry))
	}
}

func (r *Runner) help() {
	r.paintln(colorTitle, "Commands")
	fmt.Fprintln(r.out, "  1-9, a choice name   take that choice")
	fmt.Fprintln(r.out, "  look                 describe the scene again")
	fmt.Fprintln(r.out, "  log                  show the journey log")
	if r.progress != nil {
		fmt.Fprintln(r.out, "  save                 save progress and leave")
	}
	fmt.Fprintln(r.out, "  quit                 leave without saving")
}

func (r *Runner) sprint(style color.Style, s string) string {
	if r.plain {
		return s
	}
	return style.Sprint(s)
}

func (r *Runner) paint(style color.Style, s string) {
	fmt.Fprint(r.out, r.sprint(style, s))
}

func (r *Runner) paintln(style color.Style, s string) {
	fmt.Fprintln(r.out, r.sprint(style, s))
}
