package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
)

// Range type tags from the wire contract.
const (
	TagRange        = "Range"
	TagUnboundRange = "UnboundRange"
	TagBoolRange    = "BoolRange"
)

// Ranger describes the bounds of one scalar component: containment,
// sampling and normalization.
type Ranger interface {
	Contains(v any) bool
	Random(rng *rand.Rand) float64
	Normalize(v float64, zeroCentered bool) float64
	Min() float64
	Max() float64
	json.Marshaler
}

// Range is a closed numeric interval. The constructor reorders operands so
// min <= max always holds. When both bounds are integral the range samples
// integer-uniform, matching how engines declare discrete components (JSON
// carries no int/float distinction).
type Range struct {
	min   float64
	max   float64
	isInt bool
}

func NewRange(min, max float64) *Range {
	if min > max {
		min, max = max, min
	}
	return &Range{
		min:   min,
		max:   max,
		isInt: isIntegral(min) && isIntegral(max),
	}
}

// RangeFromLen builds the index range of a list of the given length.
func RangeFromLen(n int) *Range {
	return NewRange(0, float64(n-1))
}

func (r *Range) Contains(v any) bool {
	f, ok := asNumber(v)
	return ok && r.min <= f && f <= r.max
}

func (r *Range) Random(rng *rand.Rand) float64 {
	if r.isInt {
		return r.min + float64(rng.Int63n(int64(r.max-r.min)+1))
	}
	return r.min + rng.Float64()*(r.max-r.min)
}

// Normalize maps v into [0,1], or [-1,1] when zeroCentered.
func (r *Range) Normalize(v float64, zeroCentered bool) float64 {
	span := r.max - r.min
	if zeroCentered {
		half := span / 2
		return (v - r.min - half) / half
	}
	return (v - r.min) / span
}

func (r *Range) Min() float64 { return r.min }
func (r *Range) Max() float64 { return r.max }

func (r *Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type": TagRange,
		"min":  r.min,
		"max":  r.max,
	})
}

func (r *Range) String() string {
	return fmt.Sprintf("Range(%v, %v)", r.min, r.max)
}

// UnboundRange accepts any numeric value. Sampling draws from the standard
// normal distribution and normalization is the identity.
type UnboundRange struct{}

func (UnboundRange) Contains(v any) bool {
	_, ok := asNumber(v)
	return ok
}

func (UnboundRange) Random(rng *rand.Rand) float64 {
	return rng.NormFloat64()
}

func (UnboundRange) Normalize(v float64, zeroCentered bool) float64 {
	return v
}

func (UnboundRange) Min() float64 { return math.Inf(-1) }
func (UnboundRange) Max() float64 { return math.Inf(1) }

func (UnboundRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"type": TagUnboundRange})
}

func (UnboundRange) String() string { return "UnboundRange()" }

// BoolRange is the two-point range of a boolean component. Containment
// requires an actual bool, not 0 or 1.
type BoolRange struct{}

func (BoolRange) Contains(v any) bool {
	_, ok := v.(bool)
	return ok
}

func (BoolRange) Random(rng *rand.Rand) float64 {
	return float64(rng.Intn(2))
}

func (BoolRange) Normalize(v float64, zeroCentered bool) float64 {
	if zeroCentered {
		return (v - 0.5) / 0.5
	}
	return v
}

func (BoolRange) Min() float64 { return 0 }
func (BoolRange) Max() float64 { return 1 }

func (BoolRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"type": TagBoolRange})
}

func (BoolRange) String() string { return "BoolRange()" }
