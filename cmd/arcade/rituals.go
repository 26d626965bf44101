package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chain-arcade/internal/config"
	"github.com/vovakirdan/chain-arcade/internal/games/ritual"
)

var ritualsCmd = &cobra.Command{
	Use:   "rituals",
	Short: "Print the Ritual Keeper catalog",
	Long: `Print the elements and rituals Ritual Keeper would load, after the
difficulty preset is applied. Useful for checking custom content files.

Examples:
  arcade rituals
  arcade rituals --difficulty hard
  arcade rituals --config ./my-rituals.yaml`,
	Args: cobra.NoArgs,
	RunE: runRituals,
}

func init() {
	ritualsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rituals YAML")
	ritualsCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runRituals(cmd *cobra.Command, _ []string) error {
	opts, err := gameOptions()
	if err != nil {
		return err
	}

	content, err := config.LoadRituals(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading rituals: %w", err)
	}
	config.ApplyRitualsPreset(&content, opts.Difficulty)

	printCatalog(cmd.OutOrStdout(), content)
	return nil
}

// printCatalog writes the element table and one row per ritual with its
// QTE window and miss allowance.
func printCatalog(w io.Writer, c config.RitualsContent) {
	fmt.Fprintln(w, "Elements")
	for _, el := range c.Elements {
		fmt.Fprintf(w, "  %s %-8s unlock %2d  %s\n", el.Symbol, el.Name, el.UnlockLevel, el.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rituals")
	fmt.Fprintf(w, "  %3s  %-20s %4s  %6s  %-11s  %6s  %s\n",
		"Lvl", "Name", "Diff", "Window", "Mode", "Misses", "Sequence")
	for _, r := range c.Rituals {
		misses := "any"
		if n := ritual.MissCap(r); n > 0 {
			misses = fmt.Sprint(n)
		}

		steps := make([]string, len(r.Sequence))
		for i, id := range r.Sequence {
			steps[i] = ritual.ElementLabel(c, id)
		}

		fmt.Fprintf(w, "  %3d  %-20s %4d  %6d  %-11s  %6s  %s\n",
			r.UnlockLevel, r.Name, r.Difficulty, ritual.Window(c.QTE, r.Difficulty),
			r.FaultTolerance, misses, strings.Join(steps, " > "))
	}
}
