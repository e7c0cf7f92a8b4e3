package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spinetoolbox/motion"
	"github.com/spinetoolbox/motion/internal/config"
	"github.com/spinetoolbox/motion/intersect"
	"github.com/spinetoolbox/motion/mesh"
	"github.com/spinetoolbox/motion/session"
	"github.com/spinetoolbox/motion/stl"
	"github.com/spinetoolbox/motion/sweep"
)

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.Resolve(flags); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadMeshes reads the models, the first one fixed
func loadMeshes(files []string) ([]*mesh.Mesh, error) {
	meshes := make([]*mesh.Mesh, 0, len(files))
	for i, file := range files {
		m, err := stl.Load(file, i == 0)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", file, err)
		}
		logger.Printf("%s: %d vertices, %d triangles, fixed=%v", m.Name, len(m.Vertices), len(m.Triangles), m.Fixed)
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func newSession(cfg config.Config, sink session.VisualizationSink) *session.Session {
	dynamics := motion.NewDynamics(cfg.Workers, intersect.Options{Epsilon: cfg.Epsilon})
	s := session.New(dynamics, sink, logger)
	// toggling the view cannot fail
	_, _ = s.Update(context.Background(), session.SetViewCollision{Visible: cfg.ViewCollision})
	return s
}

func hinge(cfg config.Config) sweep.Hinge {
	return sweep.Hinge{Axis: mgl64.Vec3(cfg.Axis), Origin: mgl64.Vec3(cfg.Origin)}
}

// printCurves lists the visuals a host would render
func printCurves(w io.Writer, sink *session.RecordingSink) {
	ids := make([]session.VisualID, 0, len(sink.Visuals))
	for id := range sink.Visuals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		v := sink.Visuals[id]
		var points int
		var length float64
		for _, c := range v.Curves {
			points += len(c.Points)
			length += c.Length()
		}
		fmt.Fprintf(w, "  %s: %d curves, %d points, length %.4f\n", v.Name, len(v.Curves), points, length)
	}
}
