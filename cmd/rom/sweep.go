package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spinetoolbox/motion/session"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep <fixed.stl> <model.stl> [more.stl...]",
	Short: "Rotate the movable models about the hinge until first contact",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.Float64SliceVar(&flags.Axis, "axis", nil, "hinge axis x,y,z")
	f.Float64SliceVar(&flags.Origin, "origin", nil, "point on the hinge axis x,y,z")
	f.Float64Var(&flags.StepDeg, "step", 0, "angular step in degrees")
	f.Float64Var(&flags.MaxDeg, "max", 0, "maximum angle in degrees")
	f.IntVar(&flags.Refine, "refine", 0, "bisection iterations on the contact angle")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	meshes, err := loadMeshes(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	sink := session.NewRecordingSink()
	s := newSession(cfg, sink)
	if _, err := s.Update(ctx, session.LoadBones{Meshes: meshes}); err != nil {
		return err
	}

	out, err := s.Update(ctx, session.RunSweep{
		Hinge:            hinge(cfg),
		StepDeg:          cfg.StepDeg,
		MaxDeg:           cfg.MaxDeg,
		RefineIterations: cfg.Refine,
	})
	if err != nil {
		return err
	}

	fmt.Println(out.Message)
	if out.Sweep != nil && out.Sweep.Contact() {
		fmt.Println(out.Report.Message())
		printCurves(os.Stdout, sink)
	}
	return nil
}
