package editor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-terraform/internal/engine/scene"
)

// BrushType selects the deformation a stroke applies.
type BrushType int

const (
	// BrushHeights raises selected vertices a fixed step per frame.
	BrushHeights BrushType = iota
)

func (t BrushType) String() string {
	switch t {
	case BrushHeights:
		return "heights"
	default:
		return fmt.Sprintf("BrushType(%d)", int(t))
	}
}

// ParseBrushType maps a config name to a BrushType.
func ParseBrushType(name string) (BrushType, error) {
	switch name {
	case "heights", "":
		return BrushHeights, nil
	default:
		return 0, fmt.Errorf("unknown brush type %q", name)
	}
}

// BrushSettings configures strokes created on drag start.
type BrushSettings struct {
	Type          BrushType
	Radius        float32
	RaiseStep     float32 // height added per frame by BrushHeights
	IndicatorLift float32 // indicator disc offset above the hit point
}

// DefaultBrushSettings returns a height brush of radius 1 raising 0.5 per frame.
func DefaultBrushSettings() BrushSettings {
	return BrushSettings{
		Type:          BrushHeights,
		Radius:        1.0,
		RaiseStep:     0.5,
		IndicatorLift: 1.0,
	}
}

// StrokeTest is the cached outcome of a range test within one stroke.
type StrokeTest int

const (
	StrokeUntested StrokeTest = iota
	StrokeNegative
	StrokePositive
)

// BrushStroke is the single live brush of a drag gesture.
type BrushStroke struct {
	Type   BrushType
	Radius float32
	Center mgl32.Vec3

	step      float32
	lift      float32
	indicator scene.Entity
	tests     map[VertexID]StrokeTest
	painted   bool // scanned since the last deformation
}

func newBrushStroke(settings BrushSettings, center mgl32.Vec3) *BrushStroke {
	return &BrushStroke{
		Type:   settings.Type,
		Radius: max(settings.Radius, 0),
		Center: center,
		step:   settings.RaiseStep,
		lift:   settings.IndicatorLift,
		tests:  make(map[VertexID]StrokeTest, 2000),
	}
}

// Test returns the cached outcome for a vertex. Negative outcomes are hints
// only: unselected vertices are re-tested on every scan.
func (s *BrushStroke) Test(id VertexID) StrokeTest {
	return s.tests[id]
}

// Indicator returns the entity showing the brush footprint.
func (s *BrushStroke) Indicator() scene.Entity {
	return s.indicator
}

// indicatorPosition is where the footprint disc sits for a hit point.
func (s *BrushStroke) indicatorPosition(hit mgl32.Vec3) mgl32.Vec3 {
	return hit.Add(mgl32.Vec3{0, s.lift, 0})
}

// Paint centers the brush on hit and selects every unselected vertex whose
// horizontal distance to hit is within the brush radius plus the vertex
// radius. It returns how many vertices were newly selected.
func (s *BrushStroke) Paint(hit mgl32.Vec3, reg *Registry) int {
	s.Center = hit
	s.painted = true

	center := mgl32.Vec2{hit.X(), hit.Z()}
	added := 0
	reg.Each(func(rec *VertexRecord) {
		id := rec.ID()
		if reg.IsSelected(id) {
			return
		}
		pos, ok := reg.WorldPosition(rec)
		if !ok {
			return
		}
		dist := center.Sub(mgl32.Vec2{pos.X(), pos.Z()}).Len()
		if dist <= s.Radius+rec.Radius {
			reg.Select(id)
			s.tests[id] = StrokePositive
			added++
		} else {
			s.tests[id] = StrokeNegative
		}
	})
	return added
}

// Apply deforms every selected vertex once if the brush painted since the
// last call.
func (s *BrushStroke) Apply(reg *Registry) int {
	if !s.painted {
		return 0
	}
	s.painted = false

	delta := s.delta()
	selected := reg.Selected()
	for _, id := range selected {
		reg.Translate(id, delta)
	}
	return len(selected)
}

// delta is the per-application displacement of the brush type.
func (s *BrushStroke) delta() mgl32.Vec3 {
	switch s.Type {
	case BrushHeights:
		return mgl32.Vec3{0, s.step, 0}
	default:
		return mgl32.Vec3{}
	}
}
