package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spinetoolbox/motion/internal/config"
)

var (
	configPath string
	flags      config.Flags
	verbose    bool

	logger = log.New(os.Stderr, "rom: ", log.LstdFlags)
)

var rootCmd = &cobra.Command{
	Use:   "rom",
	Short: "Range of motion between anatomical surface models",
	Long: `rom loads two or more STL surface models (e.g. adjacent vertebrae and an
optional implant) and detects where their surfaces intersect, either in the loaded
pose or while the movable models are rotated about a hinge axis.

The first model is fixed, the others move during sweeps.`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !verbose {
			logger.SetOutput(io.Discard)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "JSON config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")
	pf.IntVar(&flags.Workers, "workers", 0, "goroutines testing mesh pairs (default: CPU count)")
	pf.Float64Var(&flags.Epsilon, "epsilon", 0, "geometric tolerance (default: mean edge length / 1000)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
