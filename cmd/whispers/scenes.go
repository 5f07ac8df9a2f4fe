package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/whispers/internal/story"
)

var flagTuning bool

var (
	colorScene = color.Style{color.FgCyan, color.OpBold}
	colorEnd   = color.Style{color.FgRed}
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "Print the scene graph",
	Long: `Shows every scene, the choices it offers and where each choice may lead.
With --tuning, prints the effective story tuning as YAML instead
(after --config and --difficulty are applied).`,
	Args: cobra.NoArgs,
	Run:  runScenes,
}

func init() {
	scenesCmd.Flags().BoolVar(&flagTuning, "tuning", false, "Print the effective story tuning YAML")
}

func runScenes(_ *cobra.Command, _ []string) {
	if flagTuning {
		out, err := yaml.Marshal(rt.engine.Config())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
		return
	}

	edges := story.Graph()

	for _, scene := range story.Scenes() {
		style := colorScene
		if scene.IsTerminal() {
			style = colorEnd
		}
		style.Printf("%s", scene)
		fmt.Printf("  %s\n", rt.cat.T(sceneTitle(scene)))

		for _, e := range edges {
			if e.From != scene {
				continue
			}
			targets := make([]string, len(e.To))
			for i, to := range e.To {
				targets[i] = string(to)
			}
			fmt.Printf("  %-16s -> %s\n", e.Choice, strings.Join(targets, " | "))
		}
		fmt.Println()
	}
}

// sceneTitle renders a throwaway state to get the scene's title.
func sceneTitle(scene story.Scene) string {
	st := story.New()
	st.Scene = scene
	return rt.engine.Render(st).Title
}
