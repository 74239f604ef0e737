package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/psidex/learnpath/internal/graphs"
	"github.com/psidex/learnpath/internal/graphs/graphology"
	"github.com/psidex/learnpath/internal/graphs/vis"
	"github.com/psidex/learnpath/internal/lib"
)

func renderCmd() *cobra.Command {
	var (
		format   string
		filename string
		width    int64
		height   int64
	)

	cmd := &cobra.Command{
		Use:   "render [topic]",
		Short: "Render a learning path to a file",
		Example: "  learnpath render python --format echarts\n" +
			"  learnpath render --input path.json --format png -o roadmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			var chosen graphs.CliRenderer
			switch format {
			case "echarts":
				chosen = graphs.NewECharts("learnpath")
			case "png":
				chosen = graphs.NewScreenshot("learnpath", width, height, 30*time.Second, lib.DiscardLogger())
			case "vis":
				chosen = vis.NewVis("learnpath")
			case "json":
				chosen = graphs.NewAdjacency()
			case "graphology":
				chosen = graphology.NewGraphology()
			default:
				return fmt.Errorf("unknown format: %s", format)
			}

			e, _, err := loadEngine(cmd.Context(), args, chosen)
			if err != nil {
				return err
			}
			if err := chosen.Render(e.Snapshot()); err != nil {
				return err
			}
			if err := chosen.RenderToFile(filename); err != nil {
				return err
			}

			fmt.Printf("%s %s %s\n", good.Sprint("rendered"), brand.Sprint(e.Store().Len()), subtle.Sprintf("nodes to %s (%s)", filename, format))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "echarts", "echarts, png, vis, json or graphology")
	cmd.Flags().StringVarP(&filename, "out", "o", "learnpath", "output file name without extension")
	cmd.Flags().Int64Var(&width, "width", 1600, "png width in pixels")
	cmd.Flags().Int64Var(&height, "height", 1000, "png height in pixels")
	return cmd
}
