package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/golam/internal/diagram"
	"github.com/alexiusacademia/golam/internal/loadcase"
	"github.com/alexiusacademia/golam/internal/solver"
	"github.com/alexiusacademia/golam/internal/stress"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	envelopeSource      stackSource
	envelopeCases       string
	envelopeTensile     float64
	envelopeCompressive float64
	envelopeSurface     string
)

var envelopeCmd = &cobra.Command{
	Use:   "envelope",
	Short: "Find the governing load case of a laminate",
	Long: `Run the stress recovery for every load case in a file and report the
case that produces the lowest margin of safety.

The case file has one factored load case per row:
  Case,Factor,Nx,Ny,Nxy,Mx,My,Mxy
  pressure,1.5,1200,600,0,0,0,0
  gust,1.0,0,0,0,15,0,0

A blank factor means 1.0. The ABD matrix is assembled and factored
once and reused for every case.

Examples:
  golam envelope -l layup.csv -m ./materials --cases cases.csv --tensile 1500e6 --compressive -1200e6`,
	RunE: runEnvelope,
}

func init() {
	rootCmd.AddCommand(envelopeCmd)

	addStackFlags(envelopeCmd, &envelopeSource)
	envelopeCmd.Flags().StringVar(&envelopeCases, "cases", "", "Path to load case file [required]")
	envelopeCmd.Flags().Float64Var(&envelopeTensile, "tensile", 0, "Tensile allowable (> 0) [required]")
	envelopeCmd.Flags().Float64Var(&envelopeCompressive, "compressive", 0, "Compressive allowable (< 0) [required]")
	envelopeCmd.Flags().StringVar(&envelopeSurface, "surface", "mid", "Ply surface to evaluate: mid, bottom, top")
	envelopeCmd.MarkFlagRequired("cases")
	envelopeCmd.MarkFlagRequired("tensile")
	envelopeCmd.MarkFlagRequired("compressive")
}

func runEnvelope(cmd *cobra.Command, args []string) error {
	surface, err := stress.ParseSurface(envelopeSurface)
	if err != nil {
		return err
	}
	allow := stress.Allowables{Tensile: envelopeTensile, Compressive: envelopeCompressive}
	if err := allow.Validate(); err != nil {
		return err
	}

	cases, err := loadcase.Load(envelopeCases)
	if err != nil {
		return fmt.Errorf("loading cases: %w", err)
	}
	an, err := loadAnalysis(envelopeSource)
	if err != nil {
		return err
	}
	op := an.ABD.Operator()

	outcomes := make([]loadcase.Outcome, len(cases))
	critical := make([]stress.PlyResult, len(cases))
	for i, c := range cases {
		deformation, err := solver.Strains(op, c.Factored())
		if err != nil {
			return fmt.Errorf("case %s: %w", c.Name, err)
		}
		results, err := stress.Recover(an.Plies, deformation, allow, surface)
		if err != nil {
			return fmt.Errorf("case %s: %w", c.Name, err)
		}
		crit, ok := stress.Critical(results)
		outcomes[i] = loadcase.Outcome{Case: c, Margin: crit.Margin.Value, Loaded: ok}
		critical[i] = crit
		log.WithFields(logrus.Fields{
			"case":   c.Name,
			"margin": crit.Margin,
		}).Debug("case solved")
	}

	out := cmd.OutOrStdout()
	printHeader(out, "LOAD CASE ENVELOPE - MAXIMUM STRESS")

	printSection(out, fmt.Sprintf("LOAD CASES (%s surface)", surface))
	gov, ok := loadcase.Governing(outcomes)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Case\tFactor\tCritical ply\tσx\tMS\n")
	fmt.Fprintf(w, "  ────\t──────\t────────────\t──\t──\n")
	for i, o := range outcomes {
		marker := ""
		if ok && o.Case.Name == gov.Case.Name {
			marker = " ← GOVERNS"
		}
		if !o.Loaded {
			fmt.Fprintf(w, "  %s\t%.2f\t-\t-\tno load\n", o.Case.Name, o.Case.Factor)
			continue
		}
		crit := critical[i]
		fmt.Fprintf(w, "  %s\t%.2f\t%d (%.1f°)\t%.4e\t%s%s\n",
			o.Case.Name, o.Case.Factor, crit.Ply.Index+1, crit.Ply.Orientation,
			crit.Global[0], crit.Margin, marker)
	}
	w.Flush()
	fmt.Fprintln(out)

	if !ok {
		fmt.Fprintln(out, "  No case loads any ply; margins are not defined.")
		fmt.Fprintln(out)
		return nil
	}
	verdict := "✓ LAMINATE PASSES ALL CASES"
	if gov.Margin < 0 {
		verdict = "✗ LAMINATE FAILS"
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("GOVERNING CASE", []string{
		fmt.Sprintf("Case %s (factor %.2f)", gov.Case.Name, gov.Case.Factor),
		fmt.Sprintf("MS = %.4f", gov.Margin),
		verdict,
	}))
	fmt.Fprintln(out)
	return nil
}
