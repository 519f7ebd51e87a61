package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/golam/internal/diagram"
	"github.com/alexiusacademia/golam/internal/solver"
	"github.com/alexiusacademia/golam/internal/stress"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	stressSource      stackSource
	stressLoads       []float64
	stressStrains     []float64
	stressTensile     float64
	stressCompressive float64
	stressSurface     string
	stressShowDiagram bool
	stressExportFile  string
)

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Recover ply stresses and margins of safety",
	Long: `Solve a laminate under applied loads (or a prescribed deformation)
and recover the global stress in every ply.

Loads are given as Nx,Ny,Nxy,Mx,My,Mxy. Alternatively a deformation
εx,εy,γxy,κx,κy,κxy may be prescribed with --strains, in which case the
corresponding loads are reported.

The margin of safety of each ply compares σx with the tensile or
compressive allowable:
  MS = allowable/σx - 1

Examples:
  golam stress -l layup.csv -m ./materials --loads 0,0,0,1,0,0 --tensile 1500e6 --compressive -1200e6
  golam stress -l layup.csv --catalog catalog.json --strains 0.001,0,0,0,0,0 --tensile 1500e6 --compressive -1200e6 --surface top --diagram -o sx.png`,
	RunE: runStress,
}

func init() {
	rootCmd.AddCommand(stressCmd)

	addStackFlags(stressCmd, &stressSource)

	stressCmd.Flags().Float64SliceVar(&stressLoads, "loads", nil, "Applied loads Nx,Ny,Nxy,Mx,My,Mxy")
	stressCmd.Flags().Float64SliceVar(&stressStrains, "strains", nil, "Prescribed deformation εx,εy,γxy,κx,κy,κxy")
	stressCmd.MarkFlagsMutuallyExclusive("loads", "strains")
	stressCmd.MarkFlagsOneRequired("loads", "strains")

	stressCmd.Flags().Float64Var(&stressTensile, "tensile", 0, "Tensile allowable (> 0) [required]")
	stressCmd.Flags().Float64Var(&stressCompressive, "compressive", 0, "Compressive allowable (< 0) [required]")
	stressCmd.MarkFlagRequired("tensile")
	stressCmd.MarkFlagRequired("compressive")

	stressCmd.Flags().StringVar(&stressSurface, "surface", "mid", "Ply surface to evaluate: mid, bottom, top")

	// Diagram options
	stressCmd.Flags().BoolVar(&stressShowDiagram, "diagram", false, "Show ASCII σx distribution")
	stressCmd.Flags().StringVarP(&stressExportFile, "output", "o", "", "Export σx distribution to file (png, svg, pdf)")
}

func toVector(name string, values []float64) (solver.Vector, error) {
	var v solver.Vector
	if len(values) != len(v) {
		return v, fmt.Errorf("--%s needs 6 values, got %d", name, len(values))
	}
	copy(v[:], values)
	return v, nil
}

func runStress(cmd *cobra.Command, args []string) error {
	surface, err := stress.ParseSurface(stressSurface)
	if err != nil {
		return err
	}
	allow := stress.Allowables{Tensile: stressTensile, Compressive: stressCompressive}
	if err := allow.Validate(); err != nil {
		return err
	}

	an, err := loadAnalysis(stressSource)
	if err != nil {
		return err
	}
	op := an.ABD.Operator()

	var loads, deformation solver.Vector
	if cmd.Flags().Changed("strains") {
		if deformation, err = toVector("strains", stressStrains); err != nil {
			return err
		}
		if loads, err = solver.Loads(op, deformation); err != nil {
			return err
		}
	} else {
		if loads, err = toVector("loads", stressLoads); err != nil {
			return err
		}
		deformation, err = solver.Strains(op, loads)
		if errors.Is(err, solver.ErrNonInvertible) {
			log.WithField("condition", solver.Condition(op)).Error("ABD cannot be inverted")
		}
		if err != nil {
			return err
		}
	}
	log.WithFields(logrus.Fields{
		"loads":       loads,
		"deformation": deformation,
	}).Debug("laminate solved")

	results, err := stress.Recover(an.Plies, deformation, allow, surface)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "PLY STRESS RECOVERY - MAXIMUM STRESS")

	printSection(out, "LOADING")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  \tx\ty\txy\n")
	fmt.Fprintf(w, "  N:\t%.4e\t%.4e\t%.4e\n", loads[0], loads[1], loads[2])
	fmt.Fprintf(w, "  M:\t%.4e\t%.4e\t%.4e\n", loads[3], loads[4], loads[5])
	fmt.Fprintf(w, "  ε°:\t%.4e\t%.4e\t%.4e\n", deformation[0], deformation[1], deformation[2])
	fmt.Fprintf(w, "  κ:\t%.4e\t%.4e\t%.4e\n", deformation[3], deformation[4], deformation[5])
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, fmt.Sprintf("PLY STRESSES (%s surface, top first)", surface))
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ply\tAngle\tz\tσx\tσy\tτxy\tσ1\tσ2\tτ12\tMS\n")
	fmt.Fprintf(w, "  ───\t─────\t─\t──\t──\t───\t──\t──\t───\t──\n")
	for i := len(results) - 1; i >= 0; i-- {
		r := results[i]
		status := ""
		if r.Margin.Fails() {
			status = "  ✗"
		}
		fmt.Fprintf(w, "  %d\t%.1f°\t%+.4f\t%.4e\t%.4e\t%.4e\t%.4e\t%.4e\t%.4e\t%s%s\n",
			r.Ply.Index+1, r.Ply.Orientation, r.Z,
			r.Global[0], r.Global[1], r.Global[2],
			r.Material[0], r.Material[1], r.Material[2],
			r.Margin, status)
	}
	w.Flush()
	fmt.Fprintln(out)

	if crit, ok := stress.Critical(results); ok {
		verdict := "✓ ALL PLIES PASS"
		if crit.Margin.Fails() {
			verdict = "✗ CRITICAL PLY FAILS"
		}
		fmt.Fprint(out, diagram.DrawSummaryBox("CRITICAL PLY", []string{
			fmt.Sprintf("Ply %d at %.1f°, %s", crit.Ply.Index+1, crit.Ply.Orientation, crit.Ply.Material),
			fmt.Sprintf("σx = %.4e", crit.Global[0]),
			fmt.Sprintf("MS = %s", crit.Margin),
			verdict,
		}))
	} else {
		fmt.Fprintln(out, "  No ply carries σx; margins are not defined.")
	}
	fmt.Fprintln(out)

	if stressShowDiagram || stressExportFile != "" {
		profile := profileData(stress.Profile(an.Plies, deformation), 0)
		if stressShowDiagram {
			fmt.Fprint(out, diagram.DrawProfile(profile))
			fmt.Fprintln(out)
		}
		if stressExportFile != "" {
			if err := diagram.ExportProfile(profile, plyRows(an.Plies), stressExportFile); err != nil {
				return fmt.Errorf("exporting diagram: %w", err)
			}
			fmt.Fprintf(out, "  Diagram exported to: %s\n", stressExportFile)
		}
	}
	return nil
}
