package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spinetoolbox/motion/session"
)

var checkCmd = &cobra.Command{
	Use:   "check <fixed.stl> <model.stl> [more.stl...]",
	Short: "Check whether the models intersect in their loaded pose",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	meshes, err := loadMeshes(args)
	if err != nil {
		return err
	}

	sink := session.NewRecordingSink()
	s := newSession(cfg, sink)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := s.Update(ctx, session.LoadBones{Meshes: meshes}); err != nil {
		return err
	}
	out, err := s.Update(ctx, session.CheckCollisions{})
	if err != nil {
		return err
	}

	fmt.Println(out.Message)
	printCurves(os.Stdout, sink)
	return nil
}
