package schema

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownTag = errors.New("schema: unrecognized type tag")

// The decode registries are plain map literals so decoding never depends on
// package initialization order.
var rangeRegistry = map[string]func(json.RawMessage) (Ranger, error){
	TagRange:        decodeRange,
	TagUnboundRange: func(json.RawMessage) (Ranger, error) { return UnboundRange{}, nil },
	TagBoolRange:    func(json.RawMessage) (Ranger, error) { return BoolRange{}, nil },
}

var valueRegistry = map[string]func(json.RawMessage) (Value, error){
	TagIntValue:   decodeScalar(NewIntValue),
	TagFloatValue: decodeScalar(NewFloatValue),
	TagBoolValue:  decodeBoolValue,
	TagIntList:    decodeRangesList(func(rs []Ranger, d string) Value { return NewIntList(rs, d) }),
	TagFloatList:  decodeRangesList(func(rs []Ranger, d string) Value { return NewFloatList(rs, d) }),
	TagBoolList:   decodeBoolList,
	TagTypedList:  decodeTypedList,
	TagPixelList:  decodePixelList,
}

// RangerFromJSON decodes one range object by its type tag.
func RangerFromJSON(raw json.RawMessage) (Ranger, error) {
	tag, err := typeTag(raw)
	if err != nil {
		return nil, err
	}
	decode, ok := rangeRegistry[tag]
	if !ok {
		return nil, fmt.Errorf("%w: range %q", ErrUnknownTag, tag)
	}
	return decode(raw)
}

// ValueFromJSON decodes one value definition by its type tag.
func ValueFromJSON(raw json.RawMessage) (Value, error) {
	tag, err := typeTag(raw)
	if err != nil {
		return nil, err
	}
	decode, ok := valueRegistry[tag]
	if !ok {
		return nil, fmt.Errorf("%w: value %q", ErrUnknownTag, tag)
	}
	return decode(raw)
}

func typeTag(raw json.RawMessage) (string, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return "", fmt.Errorf("schema: decode type tag: %w", err)
	}
	if head.Type == "" {
		return "", fmt.Errorf("%w: missing type tag", ErrUnknownTag)
	}
	return head.Type, nil
}

func decodeRange(raw json.RawMessage) (Ranger, error) {
	var body struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("schema: decode Range: %w", err)
	}
	return NewRange(body.Min, body.Max), nil
}

type scalarBody struct {
	Range       json.RawMessage `json:"range"`
	Description string          `json:"description"`
}

func decodeScalar[V Value](build func(Ranger, string) V) func(json.RawMessage) (Value, error) {
	return func(raw json.RawMessage) (Value, error) {
		var body scalarBody
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("schema: decode scalar value: %w", err)
		}
		r, err := RangerFromJSON(body.Range)
		if err != nil {
			return nil, err
		}
		return build(r, body.Description), nil
	}
}

func decodeBoolValue(raw json.RawMessage) (Value, error) {
	var body struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("schema: decode BoolValue: %w", err)
	}
	return NewBoolValue(body.Description), nil
}

type rangesBody struct {
	Ranges      []json.RawMessage `json:"ranges"`
	Description string            `json:"description"`
}

func (b rangesBody) decodeRanges() ([]Ranger, error) {
	ranges := make([]Ranger, len(b.Ranges))
	for i, raw := range b.Ranges {
		r, err := RangerFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		ranges[i] = r
	}
	return ranges, nil
}

func decodeRangesList(build func([]Ranger, string) Value) func(json.RawMessage) (Value, error) {
	return func(raw json.RawMessage) (Value, error) {
		var body rangesBody
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("schema: decode list value: %w", err)
		}
		ranges, err := body.decodeRanges()
		if err != nil {
			return nil, fmt.Errorf("schema: list value: %w", err)
		}
		return build(ranges, body.Description), nil
	}
}

func decodeBoolList(raw json.RawMessage) (Value, error) {
	var body struct {
		Size        int    `json:"size"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("schema: decode BoolList: %w", err)
	}
	if body.Size <= 0 {
		return nil, fmt.Errorf("schema: BoolList size %d must be positive", body.Size)
	}
	return NewBoolList(body.Size, body.Description), nil
}

func decodeTypedList(raw json.RawMessage) (Value, error) {
	var body struct {
		Types       []string          `json:"types"`
		Ranges      []json.RawMessage `json:"ranges"`
		Description string            `json:"description"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("schema: decode TypedList: %w", err)
	}
	kinds := make([]Kind, len(body.Types))
	for i, t := range body.Types {
		k, err := kindFromString(t)
		if err != nil {
			return nil, err
		}
		kinds[i] = k
	}
	ranges := make([]Ranger, len(body.Ranges))
	for i, r := range body.Ranges {
		decoded, err := RangerFromJSON(r)
		if err != nil {
			return nil, fmt.Errorf("schema: TypedList element %d: %w", i, err)
		}
		ranges[i] = decoded
	}
	return NewTypedList(kinds, ranges, body.Description)
}

func decodePixelList(raw json.RawMessage) (Value, error) {
	var body struct {
		Width        int             `json:"width"`
		Height       int             `json:"height"`
		Channels     int             `json:"channels"`
		Range        json.RawMessage `json:"range"`
		ChannelRange string          `json:"channel_range"`
		Description  string          `json:"description"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("schema: decode PixelList: %w", err)
	}
	// channel_range names a preset and replaces the range attribute entirely.
	var r Ranger
	var err error
	if body.ChannelRange != "" {
		r, err = channelPreset(body.ChannelRange)
	} else {
		r, err = decodeChannelRange(body.Range)
	}
	if err != nil {
		return nil, err
	}
	return NewPixelList(body.Width, body.Height, body.Channels, r, body.Description)
}
