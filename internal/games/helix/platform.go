package helix

import (
	"fmt"

	"github.com/vovakirdan/helixfall/internal/config"
	"github.com/vovakirdan/helixfall/internal/core"
)

// MeshRef identifies the pre-built shape for one palette width.
// Renderers treat it as opaque; here it is the palette index.
type MeshRef int

// SliceSpec is one allowed slice width and the mesh drawn for it.
type SliceSpec struct {
	Width float64
	Mesh  MeshRef
}

// NewPalette builds the slice palette from configured widths.
func NewPalette(widths []float64) []SliceSpec {
	palette := make([]SliceSpec, len(widths))
	for i, w := range widths {
		palette[i] = SliceSpec{Width: w, Mesh: MeshRef(i)}
	}
	return palette
}

// Slice is one angular segment of a platform, in platform-local radians.
type Slice struct {
	Good  bool
	Start float64
	End   float64
	Mesh  MeshRef
}

// Powerup grants an extra life when the ball lands in its angular window.
type Powerup struct {
	Y         float64
	Angle     float64
	Phase     float64 // Initial spin offset, cosmetic
	Collected bool
}

// Platform is one ring of the stack.
type Platform struct {
	Slices    []Slice
	Gap       [2]float64 // [start, end) of the empty arc, platform-local
	Rotation  float64    // Random offset applied on top of the user rotation
	Y         float64
	Retired   bool
	RetiredAt float64
	Powerup   *Powerup
}

// Top returns the height of the platform's upper face.
func (p *Platform) Top(thickness float64) float64 {
	return p.Y + thickness/2
}

// clone returns a deep copy so snapshots never alias live state.
func (p *Platform) clone() Platform {
	c := *p
	if p.Slices != nil {
		c.Slices = make([]Slice, len(p.Slices))
		copy(c.Slices, p.Slices)
	}
	if p.Powerup != nil {
		pu := *p.Powerup
		c.Powerup = &pu
	}
	return c
}

// Factory creates platforms from the configured geometry and palette.
type Factory struct {
	cfg     config.HelixPlatforms
	palette []SliceSpec
	rng     core.Source
}

// NewFactory creates a platform factory drawing from rng.
func NewFactory(cfg config.HelixPlatforms, palette []SliceSpec, rng core.Source) *Factory {
	return &Factory{
		cfg:     cfg,
		palette: palette,
		rng:     rng,
	}
}

// Create builds a platform at height y. Each slice is bad with probability
// difficulty, which is clamped to [0, MaxDifficulty].
//
// Panics if a generated slice width does not map back onto the palette.
func (f *Factory) Create(y, difficulty float64) Platform {
	difficulty = core.ClampF(difficulty, 0, config.MaxDifficulty)

	gap := core.Uniform(f.rng, f.cfg.GapMin(), f.cfg.GapMax())
	intervals := SplitRange(0, core.TwoPi-gap, f.palette, f.rng)

	slices := make([]Slice, 0, len(intervals))
	for _, iv := range intervals {
		good := f.rng.Float64() > difficulty
		slices = append(slices, Slice{
			Good:  good,
			Start: iv.Start,
			End:   iv.End,
			Mesh:  f.meshFor(iv.Width()),
		})
	}

	gapStart := 0.0
	if n := len(slices); n > 0 {
		gapStart = slices[n-1].End
	}

	return Platform{
		Slices:   slices,
		Gap:      [2]float64{gapStart, core.TwoPi},
		Rotation: core.Uniform(f.rng, 0, core.TwoPi),
		Y:        y,
	}
}

// NewPowerup places a powerup at a random angle on a platform at height y.
func (f *Factory) NewPowerup(y float64) *Powerup {
	return &Powerup{
		Y:     y,
		Angle: core.Uniform(f.rng, 0, core.TwoPi),
		Phase: core.Uniform(f.rng, 0, core.TwoPi),
	}
}

// meshFor matches a width to its palette entry at one decimal of precision.
func (f *Factory) meshFor(width float64) MeshRef {
	rounded := core.RoundTo(width, 1)
	for _, spec := range f.palette {
		if core.RoundTo(spec.Width, 1) == rounded {
			return spec.Mesh
		}
	}
	panic(fmt.Sprintf("helix: slice width %.4f (rounded %.1f) matches no palette entry", width, rounded))
}
