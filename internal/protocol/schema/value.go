package schema

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// Value type tags from the wire contract.
const (
	TagIntValue   = "IntValue"
	TagFloatValue = "FloatValue"
	TagBoolValue  = "BoolValue"
	TagIntList    = "IntList"
	TagFloatList  = "FloatList"
	TagBoolList   = "BoolList"
	TagTypedList  = "TypedList"
	TagPixelList  = "PixelList"
)

// Kind identifies the element type of one schema component.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func kindFromString(s string) (Kind, error) {
	switch s {
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "bool":
		return KindBool, nil
	default:
		return 0, fmt.Errorf("%w: element type %q", ErrUnknownTag, s)
	}
}

// Value is a declarative description of an action or state quantity: its
// shape, bounds, sampling and normalization rules, and how raw wire batches
// of it parse into flat vectors.
type Value interface {
	Contains(v any) bool
	Random(rng *rand.Rand) []float64
	Normalize(vals []float64, zeroCentered bool) []float64
	Ranges() []Ranger
	Size() int
	Description() string
	// Parse decodes a per-agent batch of raw values into one flat vector
	// per agent.
	Parse(raw json.RawMessage) ([][]float64, error)
	json.Marshaler
}

// scalar backs the single-component value variants.
type scalar struct {
	tag  string
	kind Kind
	r    Ranger
	desc string
}

func (s *scalar) Contains(v any) bool {
	switch s.kind {
	case KindBool:
		_, ok := v.(bool)
		return ok
	case KindInt:
		f, ok := asNumber(v)
		return ok && isIntegral(f) && s.r.Contains(f)
	default:
		f, ok := asNumber(v)
		return ok && s.r.Contains(f)
	}
}

func (s *scalar) Random(rng *rand.Rand) []float64 {
	return []float64{s.r.Random(rng)}
}

func (s *scalar) Normalize(vals []float64, zeroCentered bool) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = s.r.Normalize(v, zeroCentered)
	}
	return out
}

func (s *scalar) Ranges() []Ranger    { return []Ranger{s.r} }
func (s *scalar) Size() int           { return 1 }
func (s *scalar) Description() string { return s.desc }
func (s *scalar) Kind() Kind          { return s.kind }
func (s *scalar) Range() Ranger       { return s.r }

func (s *scalar) Parse(raw json.RawMessage) ([][]float64, error) {
	return parseBatch(raw, 1)
}

func (s *scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":        s.tag,
		"range":       s.r,
		"description": s.desc,
	})
}

// IntValue describes a single integer.
type IntValue struct{ scalar }

func NewIntValue(r Ranger, description string) *IntValue {
	return &IntValue{scalar{tag: TagIntValue, kind: KindInt, r: r, desc: description}}
}

// FloatValue describes a single floating-point number.
type FloatValue struct{ scalar }

func NewFloatValue(r Ranger, description string) *FloatValue {
	return &FloatValue{scalar{tag: TagFloatValue, kind: KindFloat, r: r, desc: description}}
}

// BoolValue describes a single boolean.
type BoolValue struct{ scalar }

func NewBoolValue(description string) *BoolValue {
	return &BoolValue{scalar{tag: TagBoolValue, kind: KindBool, r: BoolRange{}, desc: description}}
}

// list backs the fixed-length vector variants. Every element owns a Kind and
// a Ranger; the two slices are always the same length.
type list struct {
	tag    string
	kinds  []Kind
	ranges []Ranger
	desc   string
}

func newList(tag string, kinds []Kind, ranges []Ranger, desc string) (list, error) {
	if len(kinds) != len(ranges) {
		return list{}, fmt.Errorf("schema: %s: %d element types for %d ranges", tag, len(kinds), len(ranges))
	}
	return list{tag: tag, kinds: kinds, ranges: ranges, desc: desc}, nil
}

func (l *list) Contains(v any) bool {
	items, ok := asSlice(v)
	if !ok || len(items) != len(l.ranges) {
		return false
	}
	for i, item := range items {
		switch l.kinds[i] {
		case KindBool:
			if _, ok := item.(bool); !ok {
				return false
			}
		case KindInt:
			f, ok := asNumber(item)
			if !ok || !isIntegral(f) || !l.ranges[i].Contains(f) {
				return false
			}
		default:
			f, ok := asNumber(item)
			if !ok || !l.ranges[i].Contains(f) {
				return false
			}
		}
	}
	return true
}

func (l *list) Random(rng *rand.Rand) []float64 {
	out := make([]float64, len(l.ranges))
	for i, r := range l.ranges {
		out[i] = r.Random(rng)
	}
	return out
}

func (l *list) Normalize(vals []float64, zeroCentered bool) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		if i < len(l.ranges) {
			out[i] = l.ranges[i].Normalize(v, zeroCentered)
		} else {
			out[i] = v
		}
	}
	return out
}

func (l *list) Ranges() []Ranger    { return l.ranges }
func (l *list) Size() int           { return len(l.ranges) }
func (l *list) Description() string { return l.desc }
func (l *list) Kinds() []Kind       { return l.kinds }

func (l *list) Parse(raw json.RawMessage) ([][]float64, error) {
	return parseBatch(raw, len(l.ranges))
}

// TypedList is a vector of mixed element types.
type TypedList struct{ list }

func NewTypedList(kinds []Kind, ranges []Ranger, description string) (*TypedList, error) {
	l, err := newList(TagTypedList, kinds, ranges, description)
	if err != nil {
		return nil, err
	}
	return &TypedList{l}, nil
}

func (l *TypedList) MarshalJSON() ([]byte, error) {
	types := make([]string, len(l.kinds))
	for i, k := range l.kinds {
		types[i] = k.String()
	}
	return json.Marshal(map[string]any{
		"type":        TagTypedList,
		"types":       types,
		"ranges":      l.ranges,
		"description": l.desc,
	})
}

// IntList is a vector of integers with a range per element.
type IntList struct{ list }

func NewIntList(ranges []Ranger, description string) *IntList {
	l, _ := newList(TagIntList, uniformKinds(KindInt, len(ranges)), ranges, description)
	return &IntList{l}
}

// NewIntListFromSize builds an integer vector of the given length sharing
// one range.
func NewIntListFromSize(size int, r Ranger, description string) *IntList {
	ranges := make([]Ranger, size)
	for i := range ranges {
		ranges[i] = r
	}
	return NewIntList(ranges, description)
}

func (l *IntList) MarshalJSON() ([]byte, error) {
	return marshalRangesList(TagIntList, l.ranges, l.desc)
}

// FloatList is a vector of floats with a range per element.
type FloatList struct{ list }

func NewFloatList(ranges []Ranger, description string) *FloatList {
	l, _ := newList(TagFloatList, uniformKinds(KindFloat, len(ranges)), ranges, description)
	return &FloatList{l}
}

func NewFloatListFromSize(size int, r Ranger, description string) *FloatList {
	ranges := make([]Ranger, size)
	for i := range ranges {
		ranges[i] = r
	}
	return NewFloatList(ranges, description)
}

func (l *FloatList) MarshalJSON() ([]byte, error) {
	return marshalRangesList(TagFloatList, l.ranges, l.desc)
}

// BoolList is a vector of booleans.
type BoolList struct{ list }

func NewBoolList(size int, description string) *BoolList {
	ranges := make([]Ranger, size)
	for i := range ranges {
		ranges[i] = BoolRange{}
	}
	l, _ := newList(TagBoolList, uniformKinds(KindBool, size), ranges, description)
	return &BoolList{l}
}

func (l *BoolList) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":        TagBoolList,
		"size":        len(l.ranges),
		"description": l.desc,
	})
}

func uniformKinds(k Kind, n int) []Kind {
	kinds := make([]Kind, n)
	for i := range kinds {
		kinds[i] = k
	}
	return kinds
}

func marshalRangesList(tag string, ranges []Ranger, desc string) ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":        tag,
		"ranges":      ranges,
		"description": desc,
	})
}
