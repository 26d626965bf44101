package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chain-arcade/internal/chain"
	"github.com/vovakirdan/chain-arcade/internal/games/ritual"
	"github.com/vovakirdan/chain-arcade/internal/games/towers"
	"github.com/vovakirdan/chain-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered games and their tick chains",
	Long: `Shows every registered game with the content file it loads and the
events its gameplay chain runs each tick, in execution order.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// layout describes what a game runs per tick and where its content comes from.
type layout struct {
	content string
	events  []string
}

func eventNames[C any](events []chain.Event[C]) []string {
	var zero C
	c := chain.Lenient(zero)
	for _, ev := range events {
		c.AddEvent(ev)
	}
	return c.Names()
}

func layouts() map[string]layout {
	return map[string]layout{
		"towers": {content: "towers.yaml", events: eventNames(towers.PlayingEvents())},
		"ritual": {content: "rituals.yaml", events: eventNames(ritual.GameplayEvents())},
	}
}

func runList(cmd *cobra.Command, _ []string) error {
	printList(cmd.OutOrStdout(), registry.List(), layouts())
	return nil
}

func printList(w io.Writer, games []registry.GameInfo, chains map[string]layout) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games registered.")
		return
	}

	idWidth := len("ID")
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
	}

	fmt.Fprintf(w, "  %-*s  %-20s  %-13s  %s\n", idWidth, "ID", "Title", "Content", "Chain")
	for _, g := range games {
		l, ok := chains[g.ID]
		content, events := "-", "-"
		if ok {
			content = l.content
			events = fmt.Sprintf("%d events", len(l.events))
		}
		fmt.Fprintf(w, "  %-*s  %-20s  %-13s  %s\n", idWidth, g.ID, g.Title, content, events)
		if ok {
			fmt.Fprintf(w, "  %-*s  %s\n", idWidth, "", strings.Join(l.events, " -> "))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'arcade play <id>' to play a game.")
}
