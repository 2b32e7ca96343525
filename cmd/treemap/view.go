package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"treemap/internal/loader"
	"treemap/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive map in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := initEnv(cmd.Context())
		defer env.Close()

		m := tui.New(tui.Options{
			Loader:        env.Pipeline,
			Projection:    loader.Projection(cfg),
			CanvasWidth:   cfg.Canvas.Width,
			CanvasHeight:  cfg.Canvas.Height,
			ZoomMin:       cfg.Zoom.Min,
			ZoomMax:       cfg.Zoom.Max,
			ResetDuration: cfg.Zoom.ResetDuration(),
			EnterDuration: cfg.Render.EnterDuration(),
			TooltipFade:   cfg.Render.TooltipFade(),
			ExportPath:    cfg.Export.Path,
			SVGPath:       cfg.Export.SVGPath,
		})
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return eris.Wrap(err, "run terminal ui")
		}
		return nil
	},
}

func init() {
	rootCmd.RunE = viewCmd.RunE
	rootCmd.AddCommand(viewCmd)
}
