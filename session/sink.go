package session

import (
	"fmt"

	"github.com/spinetoolbox/motion"
	"github.com/spinetoolbox/motion/intersect"
)

// VisualID identifies a visual object owned by a sink
type VisualID int

// VisualizationSink is implemented by the host to render intersection curves
type VisualizationSink interface {
	AddIntersectionVisual(name string, curves []intersect.Polyline) VisualID
	UpdateIntersectionVisual(id VisualID, name string, curves []intersect.Polyline)
	RemoveIntersectionVisual(id VisualID)
	SetVisible(id VisualID, visible bool)
}

// VisualTracker keeps one visual per colliding pair, growing and shrinking the set of
// visuals as reports change
type VisualTracker struct {
	sink    VisualizationSink
	ids     []VisualID
	visible bool
}

func NewVisualTracker(sink VisualizationSink) *VisualTracker {
	return &VisualTracker{sink: sink}
}

// Sync makes the visuals mirror the colliding pairs of report
func (t *VisualTracker) Sync(report motion.CollisionReport) {
	colliding := report.Colliding()

	for len(t.ids) < len(colliding) {
		id := t.sink.AddIntersectionVisual(visualName(len(t.ids)), nil)
		t.ids = append(t.ids, id)
	}
	for len(t.ids) > len(colliding) {
		last := len(t.ids) - 1
		t.sink.RemoveIntersectionVisual(t.ids[last])
		t.ids = t.ids[:last]
	}

	for i, p := range colliding {
		t.sink.UpdateIntersectionVisual(t.ids[i], visualName(i), p.Curves)
		t.sink.SetVisible(t.ids[i], t.visible)
	}
}

// SetVisible shows or hides every tracked visual
func (t *VisualTracker) SetVisible(visible bool) {
	t.visible = visible
	for _, id := range t.ids {
		t.sink.SetVisible(id, visible)
	}
}

// Clear removes every tracked visual
func (t *VisualTracker) Clear() {
	for _, id := range t.ids {
		t.sink.RemoveIntersectionVisual(id)
	}
	t.ids = t.ids[:0]
}

func (t *VisualTracker) Len() int {
	return len(t.ids)
}

func visualName(i int) string {
	return fmt.Sprintf("Collision %d", i+1)
}

// Visual is the state RecordingSink keeps per visual
type Visual struct {
	Name    string
	Curves  []intersect.Polyline
	Visible bool
}

// RecordingSink is an in-memory sink, for tests and headless runs
type RecordingSink struct {
	Visuals map[VisualID]*Visual
	nextID  VisualID
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{Visuals: make(map[VisualID]*Visual)}
}

func (s *RecordingSink) AddIntersectionVisual(name string, curves []intersect.Polyline) VisualID {
	s.nextID++
	s.Visuals[s.nextID] = &Visual{Name: name, Curves: curves}
	return s.nextID
}

func (s *RecordingSink) UpdateIntersectionVisual(id VisualID, name string, curves []intersect.Polyline) {
	if v, ok := s.Visuals[id]; ok {
		v.Name = name
		v.Curves = curves
	}
}

func (s *RecordingSink) RemoveIntersectionVisual(id VisualID) {
	delete(s.Visuals, id)
}

func (s *RecordingSink) SetVisible(id VisualID, visible bool) {
	if v, ok := s.Visuals[id]; ok {
		v.Visible = visible
	}
}
