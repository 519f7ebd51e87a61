package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/golam/internal/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "golam",
	Short: "Composite Laminate Analysis Tool",
	Long: `golam - Go Composite Laminate Analyzer

A CLI tool for the analysis of layered composite laminates
using classical lamination theory.

This tool helps structural engineers perform:
  - Micromechanics (rule of mixtures) lamina properties
  - Lamina stiffness and off-axis rotation previews
  - ABD stiffness matrix assembly for a ply stack
  - Load/strain solution and ply stress recovery
  - Maximum-stress margins of safety

Laminates are read from comma-separated stack files and materials
from JSON records.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		} else {
			log.SetLevel(logrus.WarnLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   golam v%-49s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Composite Laminate Analyzer                          ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for classical lamination theory.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Rule-of-mixtures lamina properties")
		fmt.Fprintln(out, "    • Lamina stiffness rotation")
		fmt.Fprintln(out, "    • ABD matrix of a ply stack")
		fmt.Fprintln(out, "    • Ply stresses and margins of safety")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'golam --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log analysis steps to stderr")
}
