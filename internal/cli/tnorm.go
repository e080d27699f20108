package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/alphacut/internal/fuzzy"
	"github.com/ppiankov/alphacut/internal/numeric"
)

var (
	tnormName      string
	tnormRepr      string
	tnormParameter float64
)

// tnormCmd represents the tnorm command
var tnormCmd = &cobra.Command{
	Use:   "tnorm <a> <b>",
	Short: "Evaluate t-norms for two membership levels",
	Long: `Tnorm combines two membership levels with one t-norm, or with every
t-norm when --name is "all". Levels are parsed in the chosen representation.

Example:
  alphacut tnorm 0.3 0.7
  alphacut tnorm 1/2 1/3 --repr rational --name sklar --parameter 2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var param *float64
		if cmd.Flags().Changed("parameter") {
			param = &tnormParameter
		}
		return tnormTable(cmd.OutOrStdout(), args[0], args[1], tnormRepr, tnormName, param)
	},
}

func init() {
	rootCmd.AddCommand(tnormCmd)

	tnormCmd.Flags().StringVar(&tnormName, "name", "all", "t-norm to evaluate ("+strings.Join(fuzzy.TnormNames(), ", ")+" or all)")
	tnormCmd.Flags().StringVar(&tnormRepr, "repr", "float", "level representation (float, decimal, rational)")
	tnormCmd.Flags().Float64Var(&tnormParameter, "parameter", 0, "sklar parameter")
}

// tnormTable writes "name  result" rows. Sklar is skipped in "all" mode when no parameter is given.
func tnormTable(w io.Writer, a, b, repr, name string, param *float64) error {
	kind, err := numeric.ParseKind(repr)
	if err != nil {
		return err
	}
	if kind == numeric.KindInt {
		return fmt.Errorf("levels cannot use the int representation")
	}

	x, err := parseAlpha(kind, a)
	if err != nil {
		return err
	}
	y, err := parseAlpha(kind, b)
	if err != nil {
		return err
	}

	names := []string{name}
	if strings.EqualFold(name, "all") {
		names = fuzzy.TnormNames()
	}

	for _, n := range names {
		if n == "sklar" && param == nil && len(names) > 1 {
			continue
		}
		tn, err := fuzzy.ParseTnorm(n, param)
		if err != nil {
			return err
		}
		v, err := tn.Evaluate(x, y)
		if err != nil {
			return fmt.Errorf("%s(%s, %s): %w", tn.Name(), a, b, err)
		}
		if _, err := fmt.Fprintf(w, "%-14s %s\n", tn.Name(), v.Value()); err != nil {
			return err
		}
	}
	return nil
}

func parseAlpha(kind numeric.Kind, text string) (fuzzy.Alpha, error) {
	v, err := numeric.Parse(kind, text)
	if err != nil {
		return fuzzy.Alpha{}, err
	}
	return fuzzy.NewAlpha(v, false)
}
