package entity

import (
	"encoding/json"
	"math"
	"testing"
)

func TestValidateBBox(t *testing.T) {
	tests := []struct {
		name      string
		candidate []any
		want      BBox
		wantOK    bool
	}{
		{name: "nil", candidate: nil, wantOK: false},
		{name: "empty", candidate: []any{}, wantOK: false},
		{name: "three elements", candidate: []any{1.0, 2.0, 3.0}, wantOK: false},
		{name: "five elements", candidate: []any{1.0, 2.0, 3.0, 4.0, 5.0}, wantOK: false},
		{name: "negative value", candidate: []any{-1.0, 2.0, 3.0, 4.0}, wantOK: false},
		{name: "zero width", candidate: []any{10.0, 10.0, 0.0, 5.0}, wantOK: false},
		{name: "zero height", candidate: []any{10.0, 10.0, 5.0, 0.0}, wantOK: false},
		{name: "non-numeric entry", candidate: []any{"a", 2.0, 3.0, 4.0}, wantOK: false},
		{name: "NaN", candidate: []any{math.NaN(), 2.0, 3.0, 4.0}, wantOK: false},
		{name: "Inf", candidate: []any{1.0, math.Inf(1), 3.0, 4.0}, wantOK: false},
		{
			name:      "well formed",
			candidate: []any{100.0, 150.0, 80.0, 80.0},
			want:      BBox{X: 100, Y: 150, W: 80, H: 80},
			wantOK:    true,
		},
		{
			name:      "floats truncate toward zero",
			candidate: []any{10.9, 20.1, 30.7, 40.2},
			want:      BBox{X: 10, Y: 20, W: 30, H: 40},
			wantOK:    true,
		},
		{
			name:      "fractional width truncating to zero rejected",
			candidate: []any{10.0, 20.0, 0.9, 40.0},
			wantOK:    false,
		},
		{
			name:      "zero origin accepted",
			candidate: []any{0.0, 0.0, 1.0, 1.0},
			want:      BBox{X: 0, Y: 0, W: 1, H: 1},
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValidateBBox(tt.candidate)
			if ok != tt.wantOK {
				t.Fatalf("ValidateBBox(%v) ok = %v, want %v", tt.candidate, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ValidateBBox(%v) = %+v, want %+v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestBBoxJSONRoundTrip(t *testing.T) {
	in := BBox{X: 100, Y: 150, W: 80, H: 80}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[100,150,80,80]" {
		t.Errorf("marshal = %s, want [100,150,80,80]", data)
	}

	var out BBox
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestBBoxUnmarshalRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"[1,2,3]", "[1,2,-3,4]", "[1,2,0,4]", `"nope"`} {
		var b BBox
		if err := json.Unmarshal([]byte(raw), &b); err == nil {
			t.Errorf("unmarshal %s: expected error", raw)
		}
	}
}

func TestNewDefaultRecord(t *testing.T) {
	rec := NewDefaultRecord()
	for field, v := range rec.StringFields() {
		if v != "na" {
			t.Errorf("default %s = %q, want \"na\"", field, v)
		}
	}
	if rec.Altered {
		t.Error("default altered = true, want false")
	}
	if rec.FaceBBox != nil {
		t.Error("default face_bbox should be absent")
	}
}
