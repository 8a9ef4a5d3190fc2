package valuation

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int32
		want   float64
	}{
		{1.005, 2, 1.01},
		{2.675, 2, 2.68},
		{-2.675, 2, -2.68},
		{0.125, 2, 0.13},
		{1.23456, 4, 1.2346},
		{0.33335, 4, 0.3334},
		{10, 2, 10},
	}
	for _, tt := range tests {
		if got := Round(tt.v, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
		}
	}
	if got := Round(math.NaN(), 2); !math.IsNaN(got) {
		t.Errorf("Round(NaN) = %v", got)
	}
}

func TestToRef(t *testing.T) {
	tests := []struct {
		name              string
		keys, metal, rate float64
		want              *float64
	}{
		{"keys and metal", 2, 5, 60, ptr(125)},
		{"metal only", 0, 1.33, 55, ptr(1.33)},
		{"zero rate", 1, 1, 0, nil},
		{"negative rate", 1, 1, -5, nil},
		{"nan keys", math.NaN(), 1, 60, nil},
		{"nan metal", 1, math.NaN(), 60, nil},
		{"overflow", 1e308, 0, 60, nil},
		{"infinite metal", 0, math.Inf(1), 60, nil},
		{"infinite rate", 1, 0, math.Inf(1), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRef(tt.keys, tt.metal, tt.rate)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ToRef() = %v, want nil", *got)
			case tt.want != nil && (got == nil || *got != *tt.want):
				t.Errorf("ToRef() = %v, want %v", got, *tt.want)
			}
		})
	}
}

func TestToKeys(t *testing.T) {
	if got := ToKeys(120, 60); got != 2 {
		t.Errorf("ToKeys(120, 60) = %v, want 2", got)
	}
	if got := ToKeys(120, 0); got != 0 {
		t.Errorf("ToKeys(120, 0) = %v, want 0", got)
	}
}

func TestSplitKeysRef(t *testing.T) {
	tests := []struct {
		total, rate float64
		wantKeys    int
		wantRef     float64
	}{
		{125, 55.66, 2, 13.68},
		{59.99, 60, 0, 59.99},
		{120, 60, 2, 0},
		{0, 60, 0, 0},
		{100, 0, 0, 0},
		{math.Inf(1), 60, 0, 0},
		{100, math.NaN(), 0, 0},
	}
	for _, tt := range tests {
		keys, ref := SplitKeysRef(tt.total, tt.rate)
		if keys != tt.wantKeys || Round(ref, 2) != tt.wantRef {
			t.Errorf("SplitKeysRef(%v, %v) = %d, %v; want %d, %v", tt.total, tt.rate, keys, ref, tt.wantKeys, tt.wantRef)
		}
	}
}

func ptr(v float64) *float64 { return &v }
