package cmd

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/alexiusacademia/golam/internal/lamina"
	"github.com/alexiusacademia/golam/internal/micro"
	"github.com/spf13/cobra"
)

var (
	mixEf   float64
	mixEm   float64
	mixVf   float64
	mixVm   float64
	mixNuF  float64
	mixNuM  float64
	mixName string
	mixSave string
)

var mixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Lamina constants from fiber and matrix properties",
	Long: `Estimate the elastic constants of a unidirectional lamina from its
fiber and matrix constituents.

  E1  = Ef·Vf + Em·Vm
  E2  = Ef·Em / (Vf·Em + Vm·Ef)
  ν12 = Vf·νf + Vm·νm
  G12 = Gf·Gm / (Vf·Gm + Vm·Gf),  G = E / 2(1+ν)

If --vm is omitted it defaults to 1 - Vf.

Examples:
  golam mix --ef 230e9 --em 3.5e9 --vf 0.6 --nuf 0.2 --num 0.35
  golam mix --ef 72e9 --em 3e9 --vf 0.55 --nuf 0.22 --num 0.35 --name eglass --save materials/eglass.json`,
	RunE: runMix,
}

func init() {
	rootCmd.AddCommand(mixCmd)

	mixCmd.Flags().Float64Var(&mixEf, "ef", 0, "Fiber modulus [required]")
	mixCmd.Flags().Float64Var(&mixEm, "em", 0, "Matrix modulus [required]")
	mixCmd.Flags().Float64Var(&mixVf, "vf", 0, "Fiber volume fraction [required]")
	mixCmd.Flags().Float64Var(&mixVm, "vm", 0, "Matrix volume fraction (default 1 - Vf)")
	mixCmd.Flags().Float64Var(&mixNuF, "nuf", 0, "Fiber Poisson's ratio [required]")
	mixCmd.Flags().Float64Var(&mixNuM, "num", 0, "Matrix Poisson's ratio [required]")
	mixCmd.MarkFlagRequired("ef")
	mixCmd.MarkFlagRequired("em")
	mixCmd.MarkFlagRequired("vf")
	mixCmd.MarkFlagRequired("nuf")
	mixCmd.MarkFlagRequired("num")

	mixCmd.Flags().StringVar(&mixName, "name", "lamina", "Material name for --save")
	mixCmd.Flags().StringVar(&mixSave, "save", "", "Write the mixed lamina as a material JSON file")
}

func runMix(cmd *cobra.Command, args []string) error {
	vm := mixVm
	if !cmd.Flags().Changed("vm") {
		vm = 1 - mixVf
	}
	c := micro.Constituents{Ef: mixEf, Em: mixEm, Vf: mixVf, Vm: vm, NuF: mixNuF, NuM: mixNuM}
	if math.Abs(mixVf+vm-1) > 1e-9 {
		log.WithField("sum", mixVf+vm).Warn("volume fractions do not add up to 1")
	}

	l, err := micro.Mix(c)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "MICROMECHANICS - RULE OF MIXTURES")

	printSection(out, "CONSTITUENTS")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  \tFiber\tMatrix\n")
	fmt.Fprintf(w, "  E:\t%.4e\t%.4e\n", c.Ef, c.Em)
	fmt.Fprintf(w, "  ν:\t%.4f\t%.4f\n", c.NuF, c.NuM)
	fmt.Fprintf(w, "  G:\t%.4e\t%.4e\n", l.Gf, l.Gm)
	fmt.Fprintf(w, "  V:\t%.4f\t%.4f\n", c.Vf, c.Vm)
	w.Flush()
	fmt.Fprintln(out)

	printSection(out, "LAMINA CONSTANTS")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  E1:\t%.4e\n", l.E1)
	fmt.Fprintf(w, "  E2:\t%.4e\n", l.E2)
	fmt.Fprintf(w, "  G12:\t%.4e\n", l.G12)
	fmt.Fprintf(w, "  ν12:\t%.4f\n", l.V12)
	w.Flush()
	fmt.Fprintln(out)

	if mixSave == "" {
		return nil
	}
	m, err := l.Material(mixName)
	if err != nil {
		return err
	}
	if err := lamina.Save(mixSave, m); err != nil {
		return fmt.Errorf("saving material: %w", err)
	}
	fmt.Fprintf(out, "  Material %q saved to: %s\n", m.Name, mixSave)
	return nil
}
