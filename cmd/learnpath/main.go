package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	brand  = color.New(color.FgHiMagenta, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

var (
	configPath string
	level      string
	inputPath  string
	expandAll  bool
)

var rootCmd = &cobra.Command{
	Use:   "learnpath",
	Short: "Lay out and render learning paths",
	Long: brand.Sprint("learnpath") + " builds a learning path for a topic, lays it out and renders it\n" +
		subtle.Sprint("Payloads come from the configured generator or a JSON file"),
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "TOML config file")
	flags.StringVarP(&level, "level", "l", "beginner", "learner level: beginner, intermediate or advanced")
	flags.StringVarP(&inputPath, "input", "i", "", "read the payload from a JSON file instead of the generator")
	flags.BoolVar(&expandAll, "expand-all", false, "reveal every node held back by the initial depth")

	rootCmd.AddCommand(
		renderCmd(),
		layoutCmd(),
		inspectCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		bad.Fprintf(os.Stderr, "learnpath: %v\n", err)
		os.Exit(1)
	}
}
