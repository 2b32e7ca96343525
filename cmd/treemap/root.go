package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"treemap/internal/config"
)

// tuiLogFile keeps log output off the alternate screen.
const tuiLogFile = "treemap.log"

var cfg *config.Config

var (
	flagTrees      string
	flagBoundaries string
	flagSeed       uint64
)

var rootCmd = &cobra.Command{
	Use:   "treemap",
	Short: "NYC street tree map",
	Long:  "Draws a sample of the NYC street tree census over the borough boundaries, sized by trunk diameter and coloured by health.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		applyFlags(cmd, c)
		cfg = c

		if isInteractive(cmd) && cfg.Log.File == "" {
			cfg.Log.File = tuiLogFile
		}
		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// isInteractive reports whether cmd opens the terminal UI: view, or the bare root.
func isInteractive(cmd *cobra.Command) bool {
	return cmd.Name() == "view" || !cmd.HasParent()
}

// applyFlags lets explicit command-line flags win over file and environment.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("trees") {
		c.Trees.Path = flagTrees
	}
	if flags.Changed("boundaries") {
		c.Boundaries.Source = flagBoundaries
	}
	if flags.Changed("seed") {
		c.Trees.Seed = flagSeed
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagTrees, "trees", "", "tree census CSV (default from config)")
	pf.StringVar(&flagBoundaries, "boundaries", "", "borough boundary URL or file (default from config)")
	pf.Uint64Var(&flagSeed, "seed", 0, "sample seed; 0 draws a fresh sample")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
