// Package session turns user interface events into typed commands applied by a single
// Update function on an explicit Session, replacing state shared across UI callbacks.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spinetoolbox/motion"
	"github.com/spinetoolbox/motion/mesh"
	"github.com/spinetoolbox/motion/sweep"
)

// Command is a user intent
type Command interface {
	command()
}

// LoadBones registers meshes, already placed by the caller, with the coordinator
type LoadBones struct {
	Meshes []*mesh.Mesh
}

// CheckCollisions runs one collision check on the current geometry
type CheckCollisions struct{}

// Reset restores every mesh to its loaded geometry and clears the visuals
type Reset struct{}

// SetViewCollision shows or hides the intersection visuals
type SetViewCollision struct {
	Visible bool
}

// RunSweep rotates the movable meshes about Hinge from 0 to MaxDeg until first contact,
// then bisects the contact angle RefineIterations times
type RunSweep struct {
	Hinge            sweep.Hinge
	StepDeg          float64
	MaxDeg           float64
	RefineIterations int
}

func (LoadBones) command()        {}
func (CheckCollisions) command()  {}
func (Reset) command()            {}
func (SetViewCollision) command() {}
func (RunSweep) command()         {}

// Outcome is what the interface displays after a command
type Outcome struct {
	Message string
	Report  *motion.CollisionReport
	Sweep   *motion.SweepResult
	// ContactLow and ContactHigh bracket the contact angle after refinement
	ContactLow, ContactHigh float64
	Elapsed                 time.Duration
}

// Session holds everything a plugin instance needs between commands
type Session struct {
	dynamics      *motion.Dynamics
	tracker       *VisualTracker
	viewCollision bool
	logger        *log.Logger
}

// New creates a session drawing intersections into sink. A nil logger discards logs.
func New(dynamics *motion.Dynamics, sink VisualizationSink, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Session{
		dynamics: dynamics,
		tracker:  NewVisualTracker(sink),
		logger:   logger,
	}
}

// Dynamics returns the coordinator the session drives
func (s *Session) Dynamics() *motion.Dynamics {
	return s.dynamics
}

// Visuals returns the number of intersection visuals currently shown or hidden
func (s *Session) Visuals() int {
	return s.tracker.Len()
}

// Update applies cmd to the session
func (s *Session) Update(ctx context.Context, cmd Command) (Outcome, error) {
	start := time.Now()

	var (
		out Outcome
		err error
	)
	switch c := cmd.(type) {
	case LoadBones:
		out, err = s.loadBones(c)
	case CheckCollisions:
		out, err = s.checkCollisions()
	case Reset:
		out = s.reset()
	case SetViewCollision:
		s.viewCollision = c.Visible
		s.tracker.SetVisible(c.Visible)
	case RunSweep:
		out, err = s.runSweep(ctx, c)
	default:
		err = fmt.Errorf("unknown command %T", cmd)
	}
	if err != nil {
		s.logger.Printf("%T failed: %v", cmd, err)
		return Outcome{}, err
	}

	out.Elapsed = time.Since(start)
	if out.Message != "" {
		out.Message = fmt.Sprintf("%s\nCompleted in %0.2f s", out.Message, out.Elapsed.Seconds())
	}
	return out, nil
}

func (s *Session) loadBones(c LoadBones) (Outcome, error) {
	if err := s.dynamics.AddBones(c.Meshes...); err != nil {
		return Outcome{}, err
	}
	s.logger.Printf("loaded %d bones, %d registered", len(c.Meshes), len(s.dynamics.Bones()))
	return Outcome{}, nil
}

func (s *Session) checkCollisions() (Outcome, error) {
	report, err := s.dynamics.UpdateCollisions()
	if err != nil {
		return Outcome{}, err
	}
	s.tracker.visible = s.viewCollision
	s.tracker.Sync(report)
	s.logger.Printf("checked %d pairs: %d collisions", report.Tests, report.TotalBoneCollisions)
	return Outcome{Message: report.Message(), Report: &report}, nil
}

func (s *Session) reset() Outcome {
	s.dynamics.Reset()
	s.tracker.Clear()
	s.logger.Printf("reset %d bones", len(s.dynamics.Bones()))
	return Outcome{}
}

func (s *Session) runSweep(ctx context.Context, c RunSweep) (Outcome, error) {
	steps, err := sweep.Sample(c.Hinge.Axis, c.Hinge.Origin, c.StepDeg, c.MaxDeg)
	if err != nil {
		return Outcome{}, err
	}

	result, err := s.dynamics.Sweep(ctx, steps)
	if err != nil {
		return Outcome{}, err
	}
	s.tracker.visible = s.viewCollision
	s.tracker.Sync(result.Report)

	out := Outcome{Sweep: &result, Report: &result.Report}
	switch {
	case !result.Contact():
		out.Message = fmt.Sprintf("No contact up to %.2f degrees", steps[len(steps)-1].Value)
	case result.LastFree == nil:
		out.Message = fmt.Sprintf("Contact at the initial pose: %s", result.Report.Message())
	default:
		lo, hi := result.LastFree.Value, result.FirstContact.Value
		if c.RefineIterations > 0 {
			lo, hi, err = s.dynamics.Refine(ctx, c.Hinge, lo, hi, c.RefineIterations)
			if err != nil {
				return Outcome{}, err
			}
			// leave the meshes at the first contact pose the report describes
			if err := s.dynamics.ApplyPose(result.FirstContact.Pose); err != nil {
				return Outcome{}, err
			}
		}
		out.ContactLow, out.ContactHigh = lo, hi
		out.Message = fmt.Sprintf("First contact between %.2f and %.2f degrees", lo, hi)
	}
	s.logger.Printf("sweep evaluated %d of %d steps", result.Evaluated, len(steps))
	return out, nil
}
