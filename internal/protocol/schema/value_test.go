package schema

import (
	"encoding/json"
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func mustPixelList(t *testing.T) *PixelList {
	t.Helper()
	p, err := NewPixelList(2, 2, 1, NewRange(0, 255), "screen")
	if err != nil {
		t.Fatalf("new pixel list: %v", err)
	}
	return p
}

func TestValueJSONRoundTrip(t *testing.T) {
	typed, err := NewTypedList([]Kind{KindInt, KindBool, KindFloat},
		[]Ranger{NewRange(0, 9), BoolRange{}, UnboundRange{}}, "mixed")
	if err != nil {
		t.Fatalf("new typed list: %v", err)
	}

	values := []Value{
		NewIntValue(NewRange(0, 9), "digit"),
		NewFloatValue(UnboundRange{}, "velocity"),
		NewBoolValue("jump"),
		NewIntListFromSize(3, NewRange(0, 4), "moves"),
		NewFloatListFromSize(2, NewRange(-1, 1), "stick"),
		NewBoolList(4, "buttons"),
		typed,
		mustPixelList(t),
	}

	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %s: %v", v.Description(), err)
		}
		decoded, err := ValueFromJSON(data)
		if err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		if decoded.Size() != v.Size() {
			t.Fatalf("%s: size changed %d -> %d", v.Description(), v.Size(), decoded.Size())
		}
		if decoded.Description() != v.Description() {
			t.Fatalf("description changed %q -> %q", v.Description(), decoded.Description())
		}
		redone, err := json.Marshal(decoded)
		if err != nil {
			t.Fatalf("re-marshal %s: %v", v.Description(), err)
		}
		if string(redone) != string(data) {
			t.Fatalf("%s: unstable round trip:\n%s\n%s", v.Description(), data, redone)
		}
	}
}

func TestValueFromJSONUnknownTag(t *testing.T) {
	_, err := ValueFromJSON([]byte(`{"type":"TensorValue"}`))
	if !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("got %v, want ErrUnknownTag", err)
	}
}

func TestIntValueContains(t *testing.T) {
	v := NewIntValue(NewRange(0, 9), "digit")
	if !v.Contains(3.0) || !v.Contains(0) || !v.Contains(9) {
		t.Fatal("rejected an in-range integer")
	}
	if v.Contains(3.5) {
		t.Fatal("accepted a non-integral number")
	}
	if v.Contains(10.0) || v.Contains(-1.0) {
		t.Fatal("accepted an out-of-range value")
	}
	if v.Contains(true) {
		t.Fatal("accepted a bool")
	}
}

func TestBoolValueContains(t *testing.T) {
	v := NewBoolValue("jump")
	if !v.Contains(true) || !v.Contains(false) {
		t.Fatal("rejected a bool")
	}
	if v.Contains(1.0) || v.Contains(0.0) {
		t.Fatal("accepted a number in place of a bool")
	}
}

func TestTypedListContains(t *testing.T) {
	v, err := NewTypedList([]Kind{KindInt, KindBool, KindFloat},
		[]Ranger{NewRange(0, 9), BoolRange{}, NewRange(0, 1)}, "mixed")
	if err != nil {
		t.Fatalf("new typed list: %v", err)
	}
	if !v.Contains([]any{3.0, true, 0.5}) {
		t.Fatal("rejected a conforming vector")
	}
	if v.Contains([]any{3.5, true, 0.5}) {
		t.Fatal("accepted a non-integral int component")
	}
	if v.Contains([]any{3.0, 1.0, 0.5}) {
		t.Fatal("accepted a number for the bool component")
	}
	if v.Contains([]any{3.0, true}) {
		t.Fatal("accepted a short vector")
	}
}

func TestScalarParseBatch(t *testing.T) {
	v := NewFloatValue(NewRange(0, 10), "x")
	got, err := v.Parse([]byte(`[3.5, 7]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := [][]float64{{3.5}, {7}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestBoolListParseBatch(t *testing.T) {
	v := NewBoolList(2, "buttons")
	got, err := v.Parse([]byte(`[[true, false]]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := [][]float64{{1, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPixelListParseFlattensGrid(t *testing.T) {
	p := mustPixelList(t)
	got, err := p.Parse([]byte(`[[[ [1], [2] ], [ [3], [4] ]]]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := [][]float64{{1, 2, 3, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseBatchSizeMismatch(t *testing.T) {
	v := NewIntListFromSize(3, NewRange(0, 4), "moves")
	if _, err := v.Parse([]byte(`[[1, 2]]`)); err == nil {
		t.Fatal("short vector parsed without error")
	}
}

func TestPixelListChannelPresets(t *testing.T) {
	decoded, err := ValueFromJSON([]byte(`{"type":"PixelList","width":2,"height":2,"channels":3,"range":"bit8","description":"rgb"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p, ok := decoded.(*PixelList)
	if !ok {
		t.Fatalf("decoded %T, want *PixelList", decoded)
	}
	if p.Size() != 12 {
		t.Fatalf("size %d, want 12", p.Size())
	}
	if r := p.Ranges()[0]; r.Min() != 0 || r.Max() != 255 {
		t.Fatalf("bit8 range [%v, %v], want [0, 255]", r.Min(), r.Max())
	}

	if _, err := ValueFromJSON([]byte(`{"type":"PixelList","width":1,"height":1,"channels":1,"range":"bit16"}`)); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("unknown preset: got %v, want ErrUnknownTag", err)
	}
}

// A manifest may name the preset through a channel_range attribute and omit
// range altogether.
func TestPixelListChannelRangeAttribute(t *testing.T) {
	decoded, err := ValueFromJSON([]byte(`{"type":"PixelList","width":2,"height":2,"channels":1,"channel_range":"bit8","description":"screen"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p, ok := decoded.(*PixelList)
	if !ok {
		t.Fatalf("decoded %T, want *PixelList", decoded)
	}
	if r := p.Ranges()[0]; r.Min() != 0 || r.Max() != 255 {
		t.Fatalf("bit8 range [%v, %v], want [0, 255]", r.Min(), r.Max())
	}

	decoded, err = ValueFromJSON([]byte(`{"type":"PixelList","width":1,"height":1,"channels":1,"channel_range":"normalized"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r := decoded.Ranges()[0]; r.Min() != 0 || r.Max() != 1 {
		t.Fatalf("normalized range [%v, %v], want [0, 1]", r.Min(), r.Max())
	}

	if _, err := ValueFromJSON([]byte(`{"type":"PixelList","width":1,"height":1,"channels":1,"channel_range":"bit16"}`)); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("unknown channel_range: got %v, want ErrUnknownTag", err)
	}
}

func TestRandomActionConforms(t *testing.T) {
	typed, err := NewTypedList([]Kind{KindInt, KindBool, KindFloat},
		[]Ranger{NewRange(0, 9), BoolRange{}, NewRange(-1, 1.5)}, "mixed")
	if err != nil {
		t.Fatalf("new typed list: %v", err)
	}
	values := []Value{
		NewIntValue(NewRange(0, 9), "digit"),
		NewFloatValue(NewRange(-1, 1.5), "velocity"),
		NewBoolValue("jump"),
		NewIntListFromSize(3, NewRange(0, 4), "moves"),
		NewBoolList(2, "buttons"),
		typed,
	}
	rng := rand.New(rand.NewSource(7))
	for _, v := range values {
		for i := 0; i < 50; i++ {
			action := RandomAction(v, rng)
			if !v.Contains(action) {
				t.Fatalf("%s: random action %v does not conform", v.Description(), action)
			}
		}
	}
}
