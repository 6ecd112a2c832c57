// Clustered placement using layered simplex noise.
// A density field scales the per-cell placement probability so that agents
// gather in patches instead of being scattered uniformly.
package world

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// DensityConfig holds noise parameters for clustered placement.
type DensityConfig struct {
	Seed        int64
	Clustering  float64 // 0 = uniform, 1 = fully noise-driven
	Octaves     int
	Frequency   float64
	Persistence float64
}

// DefaultDensityConfig returns a reasonable noise configuration.
func DefaultDensityConfig(seed int64, clustering float64) DensityConfig {
	return DensityConfig{
		Seed:        seed,
		Clustering:  clustering,
		Octaves:     3,
		Frequency:   0.12,
		Persistence: 0.5,
	}
}

// DensityField maps grid cells to a placement probability.
type DensityField struct {
	cfg   DensityConfig
	noise opensimplex.Noise
	g     *Grid
}

// NewDensityField creates a density field over g.
func NewDensityField(g *Grid, cfg DensityConfig) *DensityField {
	return &DensityField{
		cfg:   cfg,
		noise: opensimplex.NewNormalized(cfg.Seed),
		g:     g,
	}
}

// Probability returns the placement probability at c for a base density.
// Noise in [0,1] is centred on 0.5 and scaled by Clustering, so a field with
// Clustering 0 returns base unchanged. The result is clamped to [0,1].
func (f *DensityField) Probability(c Coord, base float64) float64 {
	if f == nil || f.cfg.Clustering <= 0 {
		return base
	}
	c = f.g.Wrap(c)
	n := f.sample(c)
	return clamp01(base * (1 + f.cfg.Clustering*(2*n-1)))
}

// sample evaluates octave noise on the torus so the field is seamless across
// the wrapped edges: each axis is mapped to a circle in 4D noise space.
func (f *DensityField) sample(c Coord) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	frequency := f.cfg.Frequency

	for i := 0; i < f.cfg.Octaves; i++ {
		x, y, z, w := torusPoint(c, f.g.Width, f.g.Height, frequency)
		total += f.noise.Eval4(x, y, z, w) * amplitude
		maxVal += amplitude
		amplitude *= f.cfg.Persistence
		frequency *= 2
	}

	if maxVal == 0 {
		return 0.5
	}
	return total / maxVal
}

// clamp01 clamps v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
