package entity

import (
	"encoding/json"
	"fmt"
	"math"
)

// BBox is a face region within the source image: [x, y, width, height],
// all non-negative, width and height strictly positive.
type BBox struct {
	X int
	Y int
	W int
	H int
}

// MarshalJSON emits the box as a 4-element array, matching the shape the
// model returns it in.
func (b BBox) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d,%d,%d]", b.X, b.Y, b.W, b.H)), nil
}

// UnmarshalJSON accepts a 4-element numeric array.
func (b *BBox) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return err
	}
	box, ok := ValidateBBox(anySlice(vals))
	if !ok {
		return fmt.Errorf("invalid bbox: %s", string(data))
	}
	*b = box
	return nil
}

// ValidateBBox decides whether a candidate face region is usable. The
// candidate must be exactly 4 finite numbers, all non-negative once
// truncated toward zero, with width and height strictly positive.
// Fractional coordinates are truncated, not rejected. Any other shape
// returns ok=false; rejection is silent at this layer.
func ValidateBBox(candidate []any) (BBox, bool) {
	if len(candidate) != 4 {
		return BBox{}, false
	}
	vals := make([]int, 4)
	for i, v := range candidate {
		f, ok := asFloat(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return BBox{}, false
		}
		if f < 0 {
			return BBox{}, false
		}
		vals[i] = int(f)
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return BBox{}, false
	}
	return BBox{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, true
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

func anySlice(vals []float64) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
