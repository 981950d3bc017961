package quadtree

import "github.com/segcollide/sim/geom"

// Config carries the recognized IndexConfig options from spec §6.
type Config struct {
	MaxDepth         int
	MaxLinesPerNode  int
	MinCellSize      float64
	KRel             float64
	KGap             float64
	EpsPrec          float64
	EnableDebugStats bool
}

// DefaultConfig returns the spec's documented defaults (§4.2, §4.1).
func DefaultConfig() Config {
	return Config{
		MaxDepth:        12,
		MaxLinesPerNode: 32,
		MinCellSize:     1e-3,
		KRel:            0.3,
		KGap:            0.15,
		EpsPrec:         1e-6,
	}
}

func (c Config) expansion() geom.ExpansionConfig {
	return geom.ExpansionConfig{
		KRel:        c.KRel,
		KGap:        c.KGap,
		EpsPrec:     c.EpsPrec,
		MinCellSize: c.MinCellSize,
	}
}

// validate checks the §7 "configuration error" taxonomy: non-positive
// thresholds are fatal at Build entry.
func (c Config) validate() error {
	switch {
	case c.MaxDepth <= 0:
		return wrapConfig("maxDepth must be positive")
	case c.MaxLinesPerNode <= 0:
		return wrapConfig("maxLinesPerNode must be positive")
	case c.MinCellSize <= 0:
		return wrapConfig("minCellSize must be positive")
	case c.KRel < 0 || c.KGap < 0:
		return wrapConfig("kRel and kGap must be non-negative")
	case c.EpsPrec < 0:
		return wrapConfig("epsPrec must be non-negative")
	}
	return nil
}
