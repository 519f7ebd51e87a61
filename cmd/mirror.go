package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/golam/internal/laminate"
	"github.com/spf13/cobra"
)

var (
	mirrorLaminate string
	mirrorOutput   string
	mirrorBottomUp bool
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Make a symmetric laminate from half a stack",
	Long: `Append the mirror image of a stack to itself, producing a
symmetric layup about the top face of the original stack:
[0/45/90] becomes [0/45/90/90/45/0].

The result is written in the same stack file format, to --output or
to standard output.

Examples:
  golam mirror --laminate half.csv
  golam mirror -l half.csv -o full.csv`,
	RunE: runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)

	mirrorCmd.Flags().StringVarP(&mirrorLaminate, "laminate", "l", "", "Path to laminate stack file [required]")
	mirrorCmd.Flags().StringVarP(&mirrorOutput, "output", "o", "", "Write the mirrored stack to this file")
	mirrorCmd.Flags().BoolVar(&mirrorBottomUp, "bottom-up", false, "Stack files list the bottom ply first")
	mirrorCmd.MarkFlagRequired("laminate")
}

func runMirror(cmd *cobra.Command, args []string) error {
	opts := laminate.ReadOptions{BottomUp: mirrorBottomUp}
	raw, err := laminate.LoadStack(mirrorLaminate, opts)
	if err != nil {
		return fmt.Errorf("loading laminate: %w", err)
	}
	full := laminate.Mirror(raw)
	log.WithField("plies", len(full)).Debug("stack mirrored")

	if mirrorOutput == "" {
		return laminate.WriteStack(cmd.OutOrStdout(), full, opts)
	}

	f, err := os.Create(mirrorOutput)
	if err != nil {
		return err
	}
	if err := laminate.WriteStack(f, full, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Mirrored stack (%d plies) written to: %s\n", len(full), mirrorOutput)
	return nil
}
