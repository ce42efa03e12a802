package schema

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// Channel range presets accepted on the wire in place of an explicit range
// object.
const (
	ChannelBit8       = "bit8"
	ChannelNormalized = "normalized"
)

// PixelList describes a width x height x channels grid of pixel intensities
// sharing one channel range. On the wire the grid arrives as nested arrays;
// parsing flattens it row-major.
type PixelList struct {
	width    int
	height   int
	channels int
	r        Ranger
	desc     string
}

func NewPixelList(width, height, channels int, r Ranger, description string) (*PixelList, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, fmt.Errorf("schema: PixelList dimensions %dx%dx%d must be positive", width, height, channels)
	}
	return &PixelList{width: width, height: height, channels: channels, r: r, desc: description}, nil
}

func (p *PixelList) Width() int    { return p.width }
func (p *PixelList) Height() int   { return p.height }
func (p *PixelList) Channels() int { return p.channels }

func (p *PixelList) Contains(v any) bool {
	items, ok := asSlice(v)
	if !ok {
		return false
	}
	flat, err := flattenAny(items)
	if err != nil || len(flat) != p.Size() {
		return false
	}
	for _, f := range flat {
		if !p.r.Contains(f) {
			return false
		}
	}
	return true
}

func flattenAny(items []any) ([]float64, error) {
	var out []float64
	var err error
	for _, item := range items {
		out, err = flatten(out, item)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *PixelList) Random(rng *rand.Rand) []float64 {
	out := make([]float64, p.Size())
	for i := range out {
		out[i] = p.r.Random(rng)
	}
	return out
}

func (p *PixelList) Normalize(vals []float64, zeroCentered bool) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = p.r.Normalize(v, zeroCentered)
	}
	return out
}

func (p *PixelList) Ranges() []Ranger {
	ranges := make([]Ranger, p.Size())
	for i := range ranges {
		ranges[i] = p.r
	}
	return ranges
}

func (p *PixelList) Size() int           { return p.width * p.height * p.channels }
func (p *PixelList) Description() string { return p.desc }

func (p *PixelList) Parse(raw json.RawMessage) ([][]float64, error) {
	return parseBatch(raw, p.Size())
}

func (p *PixelList) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":        TagPixelList,
		"width":       p.width,
		"height":      p.height,
		"channels":    p.channels,
		"range":       p.r,
		"description": p.desc,
	})
}

// channelPreset resolves a named channel range.
func channelPreset(name string) (Ranger, error) {
	switch name {
	case ChannelBit8:
		return NewRange(0, 255), nil
	case ChannelNormalized:
		return NewRange(0, 1), nil
	default:
		return nil, fmt.Errorf("%w: channel range %q", ErrUnknownTag, name)
	}
}

// decodeChannelRange accepts either a range object or a preset name.
func decodeChannelRange(raw json.RawMessage) (Ranger, error) {
	var preset string
	if err := json.Unmarshal(raw, &preset); err == nil {
		return channelPreset(preset)
	}
	return RangerFromJSON(raw)
}
