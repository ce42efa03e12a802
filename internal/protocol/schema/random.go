package schema

import (
	"math"
	"math/rand"
)

// RandomAction samples one action conforming to the definition, coercing each
// component to the element type the definition declares so the result passes
// Contains.
func RandomAction(v Value, rng *rand.Rand) any {
	sample := v.Random(rng)

	switch def := v.(type) {
	case *IntValue:
		return coerce(sample[0], KindInt)
	case *FloatValue:
		return coerce(sample[0], KindFloat)
	case *BoolValue:
		return coerce(sample[0], KindBool)
	case *IntList:
		return coerceVector(sample, def.Kinds())
	case *FloatList:
		return coerceVector(sample, def.Kinds())
	case *BoolList:
		return coerceVector(sample, def.Kinds())
	case *TypedList:
		return coerceVector(sample, def.Kinds())
	default:
		out := make([]any, len(sample))
		for i, f := range sample {
			out[i] = f
		}
		return out
	}
}

func coerceVector(sample []float64, kinds []Kind) []any {
	out := make([]any, len(sample))
	for i, f := range sample {
		k := KindFloat
		if i < len(kinds) {
			k = kinds[i]
		}
		out[i] = coerce(f, k)
	}
	return out
}

func coerce(f float64, k Kind) any {
	switch k {
	case KindBool:
		return f != 0
	case KindInt:
		return int(math.Round(f))
	default:
		return f
	}
}
