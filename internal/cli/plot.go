package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/alphacut/internal/engine"
	"github.com/ppiankov/alphacut/internal/model"
	"github.com/ppiankov/alphacut/internal/plot"
)

var (
	plotOut    string
	plotSets   []string
	plotFormat string
	plotTitle  string
)

// plotCmd represents the plot command
var plotCmd = &cobra.Command{
	Use:   "plot <workload.yaml>",
	Short: "Render the alpha-cuts of workload sets to an image",
	Long: `Plot evaluates a workload and draws the alpha-cuts of its sets and
operation results. Interval starts, ends and interiors use distinct glyphs;
every set gets its own colour and legend entry.

Example:
  alphacut plot workload.yaml -o cuts.png
  alphacut plot workload.yaml -o cuts.svg --sets a,sum`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)

	plotCmd.Flags().StringVarP(&plotOut, "output", "o", "alphacut.png", "output image path")
	plotCmd.Flags().StringSliceVar(&plotSets, "sets", nil, "sets or operations to draw (default: all)")
	plotCmd.Flags().StringVar(&plotFormat, "format", "", "image format, png or svg (default: output extension, then config)")
	plotCmd.Flags().StringVar(&plotTitle, "title", "", "plot title (default: workload file name)")
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	format := plotFormat
	if format == "" {
		format = filepath.Ext(plotOut)
	}
	if format == "" {
		format = cfg.Plot.Format
	}
	cfg.Plot.Format = format

	title := plotTitle
	if title == "" {
		title = filepath.Base(args[0])
	}

	log := newLogger(os.Stderr, cfg.Output.Verbose)
	return drawWorkload(cmd.Context(), log, args[0], plotOut, title, plotSets, cfg)
}

// drawWorkload evaluates the workload and writes the selected sets to outPath
func drawWorkload(ctx context.Context, log logrus.FieldLogger, path, outPath, title string, names []string, cfg *model.Config) (err error) {
	format, err := plot.ParseFormat(cfg.Plot.Format)
	if err != nil {
		return err
	}

	w, err := model.LoadWorkload(path)
	if err != nil {
		return err
	}
	res, err := engine.New(cfg, log).Run(ctx, w)
	if err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}

	series, err := selectSeries(res, names)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close plot file: %w", closeErr)
		}
	}()

	err = writePlot(f, series, title, format, cfg.Plot)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"path":   outPath,
		"format": format,
		"sets":   len(series),
	}).Info("plot written")
	return nil
}

func writePlot(w io.Writer, series []plot.Series, title, format string, cfg model.PlotConfig) error {
	return plot.Render(w, series, plot.Options{
		Title:        title,
		WidthInches:  cfg.WidthInches,
		HeightInches: cfg.HeightInches,
		Format:       format,
	})
}

// selectSeries picks the named sets from a result, or all of them when names is empty
func selectSeries(res *engine.Result, names []string) ([]plot.Series, error) {
	if len(names) == 0 {
		all := res.All()
		out := make([]plot.Series, len(all))
		for i, s := range all {
			out[i] = plot.Series{Name: s.Name, Set: s.Set}
		}
		return out, nil
	}

	out := make([]plot.Series, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		fs, ok := res.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("no set or operation named %q", name)
		}
		out = append(out, plot.Series{Name: name, Set: fs})
	}
	return out, nil
}
