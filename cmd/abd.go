package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/golam/internal/diagram"
	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/spf13/cobra"
)

var (
	abdSource      stackSource
	abdShowDiagram bool
)

var abdCmd = &cobra.Command{
	Use:   "abd",
	Short: "Assemble the ABD stiffness matrix of a laminate",
	Long: `Read a ply stack and its materials and assemble the extensional (A),
coupling (B) and bending (D) stiffness matrices.

The stack file lists plies top-down, one per row:
  Layer,Orientation,Thickness,Material
  1,0,0.125,cfrp
  2,90,0.125,cfrp

Materials are read either from a directory holding <name>.json for
every referenced name, or from a single catalog file.

Examples:
  golam abd --laminate layup.csv --materials ./materials
  golam abd -l layup.csv --catalog catalog.json --diagram`,
	RunE: runABD,
}

func init() {
	rootCmd.AddCommand(abdCmd)

	addStackFlags(abdCmd, &abdSource)
	abdCmd.Flags().BoolVar(&abdShowDiagram, "diagram", false, "Show ASCII stack diagram")
}

// addStackFlags registers the laminate and material source flags
func addStackFlags(cmd *cobra.Command, src *stackSource) {
	cmd.Flags().StringVarP(&src.laminate, "laminate", "l", "", "Path to laminate stack file [required]")
	cmd.Flags().StringVarP(&src.materials, "materials", "m", "", "Directory of material JSON files")
	cmd.Flags().StringVar(&src.catalog, "catalog", "", "Single JSON file holding all materials")
	cmd.Flags().BoolVar(&src.bottomUp, "bottom-up", false, "Stack file lists the bottom ply first")
	cmd.MarkFlagRequired("laminate")
	cmd.MarkFlagsMutuallyExclusive("materials", "catalog")
}

func runABD(cmd *cobra.Command, args []string) error {
	an, err := loadAnalysis(abdSource)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "LAMINATE STIFFNESS - CLASSICAL LAMINATION THEORY")

	printSection(out, "PLY STACK (top first)")
	printPlyTable(out, an.Plies)
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Plies:\t%d\n", len(an.Plies))
	fmt.Fprintf(w, "  Total thickness:\t%.4f\n", an.Thickness)
	w.Flush()
	fmt.Fprintln(out)

	if abdShowDiagram {
		fmt.Fprint(out, diagram.DrawStack(plyRows(an.Plies)))
		fmt.Fprintln(out)
	}

	printSection(out, "STIFFNESS MATRICES")
	printMatrix(out, "[A] extensional", an.ABD.A)
	printMatrix(out, "[B] coupling", an.ABD.B)
	printMatrix(out, "[D] bending", an.ABD.D)

	if an.ABD.IsSymmetricLayup() {
		fmt.Fprintln(out, "  ✓ [B] vanishes: no extension-bending coupling")
	} else {
		fmt.Fprintln(out, "  ⚠ [B] is non-zero: in-plane loads will bend the laminate")
	}
	fmt.Fprintln(out)

	props, err := laminate.EffectiveProperties(an.ABD, an.Thickness)
	if err != nil {
		log.WithError(err).Warn("effective properties unavailable")
		return nil
	}
	printSection(out, "EFFECTIVE IN-PLANE PROPERTIES")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Ex:\t%.4e\n", props.E1)
	fmt.Fprintf(w, "  Ey:\t%.4e\n", props.E2)
	fmt.Fprintf(w, "  Gxy:\t%.4e\n", props.G12)
	fmt.Fprintf(w, "  νxy:\t%.4f\n", props.V12)
	fmt.Fprintf(w, "  νyx:\t%.4f\n", props.V21)
	w.Flush()
	fmt.Fprintln(out)
	return nil
}
