package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/alexiusacademia/golam/internal/lamina"
	"github.com/spf13/cobra"
)

var (
	rotateMaterial string
	rotateE1       float64
	rotateE2       float64
	rotateG12      float64
	rotateV12      float64
	rotateAngles   []float64
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Off-axis stiffness of a single lamina",
	Long: `Build the material-axes stiffness Q of a lamina and rotate it to one
or more fiber angles. The apparent engineering constants at each angle
are reported alongside the rotated matrix.

The lamina is given either as a material JSON file or as its four
elastic constants.

Examples:
  golam rotate --material materials/cfrp.json --angle 0,30,45,90
  golam rotate --e1 181e9 --e2 10.3e9 --g12 7.17e9 --v12 0.28 --angle 45`,
	RunE: runRotate,
}

func init() {
	rootCmd.AddCommand(rotateCmd)

	rotateCmd.Flags().StringVar(&rotateMaterial, "material", "", "Path to a material JSON file")
	rotateCmd.Flags().Float64Var(&rotateE1, "e1", 0, "Longitudinal modulus")
	rotateCmd.Flags().Float64Var(&rotateE2, "e2", 0, "Transverse modulus")
	rotateCmd.Flags().Float64Var(&rotateG12, "g12", 0, "In-plane shear modulus")
	rotateCmd.Flags().Float64Var(&rotateV12, "v12", 0, "Major Poisson's ratio")
	rotateCmd.Flags().Float64SliceVar(&rotateAngles, "angle", []float64{0, 45, 90}, "Fiber angles in degrees")
	rotateCmd.MarkFlagsMutuallyExclusive("material", "e1")
	rotateCmd.MarkFlagsRequiredTogether("e1", "e2", "g12", "v12")
}

func runRotate(cmd *cobra.Command, args []string) error {
	var (
		m   lamina.Material
		err error
	)
	switch {
	case rotateMaterial != "":
		m, err = lamina.LoadFile(rotateMaterial)
	case cmd.Flags().Changed("e1"):
		m, err = lamina.NewMaterial("lamina", lamina.Constants{
			E1: rotateE1, E2: rotateE2, G12: rotateG12, V12: rotateV12,
		})
	default:
		err = errors.New("give either --material or --e1/--e2/--g12/--v12")
	}
	if err != nil {
		return err
	}
	log.WithField("source", m.Source).Debug("lamina stiffness built")

	out := cmd.OutOrStdout()
	printHeader(out, "LAMINA STIFFNESS ROTATION")

	printSection(out, fmt.Sprintf("MATERIAL %s (from %s)", m.Name, m.Source))
	q := m.Stiffness()
	printMatrix(out, "[Q] material axes", q.Matrix())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Angle\tEx\tEy\tGxy\tνxy\n")
	fmt.Fprintf(w, "  ─────\t──\t──\t───\t───\n")
	for _, deg := range rotateAngles {
		qr := lamina.RotateDeg(q, deg)
		p, err := lamina.Apparent(qr)
		if err != nil {
			log.WithError(err).WithField("angle", deg).Warn("apparent constants unavailable")
			fmt.Fprintf(w, "  %.1f°\t-\t-\t-\t-\n", deg)
			continue
		}
		fmt.Fprintf(w, "  %.1f°\t%.4e\t%.4e\t%.4e\t%.4f\n", deg, p.E1, p.E2, p.G12, p.V12)
	}
	w.Flush()
	fmt.Fprintln(out)

	for _, deg := range rotateAngles {
		printMatrix(out, fmt.Sprintf("[Q̄] at %.1f°", deg), lamina.RotateDeg(q, deg).Matrix())
	}
	return nil
}
