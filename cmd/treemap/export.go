package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"treemap/internal/geom"
	"treemap/internal/interact"
	"treemap/internal/loader"
	"treemap/internal/render"
)

var (
	exportOut     string
	exportSVG     string
	exportBorough string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the map to a PNG without opening the viewer",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := initEnv(cmd.Context())
		defer env.Close()

		ds, err := env.Pipeline.Run(cmd.Context())
		if err != nil && len(ds.Boundaries) == 0 {
			return err
		}
		if err != nil {
			zap.L().Warn("exporting boundaries only", zap.Error(err))
		}

		e := render.NewEngine(loader.Projection(cfg), cfg.Canvas.Width, cfg.Canvas.Height,
			render.WithEnterDuration(0))
		e.SetBoundaries(ds.Boundaries)
		e.DrawTrees(interact.VisibleSubset(ds.Trees.Sample, exportBorough))
		scene := e.Scene(time.Now(), geom.Identity)

		out := exportOut
		if out == "" {
			out = cfg.Export.Path
		}
		if err := render.SavePNG(out, scene); err != nil {
			return err
		}
		zap.L().Info("map exported", zap.String("path", out), zap.Int("trees", e.Len()))

		svg := exportSVG
		if svg == "" {
			svg = cfg.Export.SVGPath
		}
		if svg != "" {
			if err := render.SaveSVG(svg, scene); err != nil {
				return err
			}
			zap.L().Info("map exported", zap.String("path", svg))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "PNG output path (default from config)")
	exportCmd.Flags().StringVar(&exportSVG, "svg", "", "also write the SVG document here")
	exportCmd.Flags().StringVar(&exportBorough, "borough", interact.AllBoroughs, "borough filter")
	rootCmd.AddCommand(exportCmd)
}
