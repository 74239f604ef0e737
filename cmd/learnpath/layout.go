package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psidex/learnpath/internal/engine"
	"github.com/psidex/learnpath/internal/highlight"
	"github.com/psidex/learnpath/internal/scene"
)

func layoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout [topic]",
		Short: "Print where every node was placed",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := loadEngine(cmd.Context(), args, nil)
			if err != nil {
				return err
			}

			pending := map[string]bool{}
			for _, id := range e.Pending() {
				pending[id] = true
			}

			fmt.Printf("  %s\n", subtle.Sprintf("%-24s %-6s %9s %9s %9s  %s", "ID", "DEPTH", "X", "Y", "ANGLE", "TITLE"))
			for _, n := range e.Store().Nodes() {
				mark := ""
				if pending[n.ID] {
					mark = subtle.Sprint(" (pending)")
				}
				fmt.Printf("  %-24s %-6d %9.1f %9.1f %9s  %s%s\n",
					n.ID, n.Depth, n.Position.X, n.Position.Y, angle(n), brand.Sprint(n.Title), mark)
			}
			return nil
		},
	}
}

func angle(n *scene.Node) string {
	if !n.HasRange {
		return "-"
	}
	return fmt.Sprintf("%.1f°", n.Range.Mid()*180/math.Pi)
}

func inspectCmd() *cobra.Command {
	var selectID string

	cmd := &cobra.Command{
		Use:   "inspect [topic]",
		Short: "Show a node's payload, lineage and children",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := loadEngine(cmd.Context(), args, nil)
			if err != nil {
				return err
			}

			id := selectID
			if id == "" {
				id = e.Graph().Root().ID
			}
			if err := e.Select(id); err != nil {
				return err
			}

			sel := e.Selection()
			n, ok := e.Store().Node(id)
			if !ok {
				return fmt.Errorf("unknown node %q", id)
			}
			fmt.Printf("%s %s\n\n", brand.Sprint(n.Title), subtle.Sprintf("(%s, %s)", n.ID, n.Kind))
			if gn, ok := e.Graph().Node(id); ok && gn.Summary() != "" {
				fmt.Printf("  %s\n\n", gn.Summary())
			}

			fmt.Printf("  %s %s\n", subtle.Sprint("lineage "), titles(e, sel.Lineage))
			fmt.Printf("  %s %s\n", subtle.Sprint("children"), titles(e, sel.Children))
			dimmed := 0
			for _, node := range e.Store().Nodes() {
				if sel.Classify(node.ID) == highlight.Dimmed {
					dimmed++
				}
			}
			fmt.Printf("  %s %d of %d\n", subtle.Sprint("dimmed  "), dimmed, e.Store().Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&selectID, "select", "s", "", "node id, the root when empty")
	return cmd
}

func titles(e *engine.Engine, ids []string) string {
	if len(ids) == 0 {
		return subtle.Sprint("none")
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if n, ok := e.Store().Node(id); ok {
			out = append(out, n.Title)
		}
	}
	return strings.Join(out, ", ")
}
