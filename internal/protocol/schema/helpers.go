package schema

import (
	"encoding/json"
	"fmt"
	"math"
)

// asNumber coerces the numeric types a decoded JSON document or a caller may
// hand us into float64.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}

// asSlice coerces the common slice shapes into []any.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []float64:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	case []bool:
		out := make([]any, len(s))
		for i, e := range s {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

// parseBatch decodes one raw per-agent batch into flat vectors of the given
// size, one per agent.
func parseBatch(raw json.RawMessage, size int) ([][]float64, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("schema: batch is not an array: %w", err)
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		vec, err := parseVector(row)
		if err != nil {
			return nil, fmt.Errorf("schema: agent %d: %w", i, err)
		}
		if len(vec) != size {
			return nil, fmt.Errorf("schema: agent %d: got %d components, want %d", i, len(vec), size)
		}
		out[i] = vec
	}
	return out, nil
}

// parseVector flattens one agent's raw value into a float vector. Scalars
// become single-element vectors, booleans map to 0/1, and nested arrays
// (pixel grids) flatten in row-major order.
func parseVector(raw json.RawMessage) ([]float64, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return flatten(nil, v)
}

func flatten(dst []float64, v any) ([]float64, error) {
	switch e := v.(type) {
	case float64:
		return append(dst, e), nil
	case bool:
		if e {
			return append(dst, 1), nil
		}
		return append(dst, 0), nil
	case []any:
		var err error
		for _, item := range e {
			dst, err = flatten(dst, item)
			if err != nil {
				return nil, err
			}
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("component %v (%T) is not numeric", v, v)
	}
}
