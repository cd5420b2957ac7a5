// SPDX-License-Identifier: MIT
// Package: roadpath/builder
//
// options.go - functional options for Build.
//
// Contract:
//   • Options are functional (type Option func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Build and the constructors never panic.
//   • Determinism is explicit: all randomness flows from the seed.

package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/roadpath/geo"
)

// Defaults used when an option is not given.
const (
	DefaultSeed       int64   = 1
	DefaultSpacing    float64 = 250 // meters between grid neighbors
	DefaultOriginLat  float64 = 39.952583
	DefaultOriginLon  float64 = -75.165222
	DefaultDetourMin  float64 = 1
	DefaultDetourMax  float64 = 1
	DefaultOneWayRate float64 = 0
)

// Option customizes Build.
type Option func(*builderConfig)

// builderConfig is the resolved, immutable configuration handed to constructors.
type builderConfig struct {
	seed      int64
	rng       *rand.Rand
	origin    geo.Coord
	spacing   float64
	detourMin float64
	detourMax float64
	oneWay    float64
}

// newBuilderConfig applies opts over the defaults and seeds the RNG.
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		seed:      DefaultSeed,
		origin:    geo.FromDegrees(DefaultOriginLat, DefaultOriginLon),
		spacing:   DefaultSpacing,
		detourMin: DefaultDetourMin,
		detourMax: DefaultDetourMax,
		oneWay:    DefaultOneWayRate,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.rng = rngFromSeed(cfg.seed)

	return cfg
}

// rngFromSeed returns a deterministic *rand.Rand; seed 0 maps to DefaultSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// WithSeed fixes the random stream used for placement, detours and one-way picks.
func WithSeed(seed int64) Option {
	return func(c *builderConfig) {
		c.seed = seed
	}
}

// WithOrigin sets the south-west anchor of the generated network, in degrees.
// Panics if lat is outside [-85, 85] or lon outside [-180, 180].
func WithOrigin(lat, lon float64) Option {
	if lat < -85 || lat > 85 || lon < -180 || lon > 180 {
		panic(fmt.Sprintf("builder: WithOrigin(%g, %g) out of range", lat, lon))
	}
	return func(c *builderConfig) {
		c.origin = geo.FromDegrees(lat, lon)
	}
}

// WithSpacing sets the typical distance between neighboring nodes in meters.
// Panics if meters <= 0.
func WithSpacing(meters float64) Option {
	if meters <= 0 {
		panic("builder: WithSpacing(meters<=0)")
	}
	return func(c *builderConfig) {
		c.spacing = meters
	}
}

// WithDetour draws each road's detour factor uniformly from [min, max].
// A road's weight is ceil(great-circle length × detour).
// Panics unless 1 <= min <= max.
func WithDetour(min, max float64) Option {
	if min < 1 || max < min {
		panic(fmt.Sprintf("builder: WithDetour(%g, %g) needs 1 <= min <= max", min, max))
	}
	return func(c *builderConfig) {
		c.detourMin, c.detourMax = min, max
	}
}

// WithOneWayRatio makes each road one-way with probability p, in a random
// direction. Panics if p is outside [0, 1].
func WithOneWayRatio(p float64) Option {
	if p < 0 || p > 1 {
		panic(fmt.Sprintf("builder: WithOneWayRatio(%g) out of [0,1]", p))
	}
	return func(c *builderConfig) {
		c.oneWay = p
	}
}
