package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spinetoolbox/motion/internal/watcher"
	"github.com/spinetoolbox/motion/session"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <fixed.stl> <model.stl> [more.stl...]",
	Short: "Check collisions again whenever one of the models changes on disk",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "delay before re-checking after a change")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
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

	check := func() {
		meshes, err := loadMeshes(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		if _, err := s.Update(ctx, session.LoadBones{Meshes: meshes}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		out, err := s.Update(ctx, session.CheckCollisions{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Println(out.Message)
		printCurves(os.Stdout, sink)
	}

	fw, err := watcher.NewFileWatcher(watchDebounce)
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Watch(args); err != nil {
		return err
	}

	// the session is only touched from this goroutine
	changes := make(chan string, 1)
	go fw.Run(func(changed string) {
		select {
		case changes <- changed:
		default:
		}
	}, func(err error) {
		logger.Printf("watch error: %v", err)
	})

	check()
	for {
		select {
		case changed := <-changes:
			logger.Printf("%s changed", changed)
			check()
		case <-ctx.Done():
			return nil
		}
	}
}
