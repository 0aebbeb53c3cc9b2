package calculator

import (
	"math"
	"testing"
)

func TestSMASeries_UndefinedPrefix(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	out, err := SMASeries(values, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(values) {
		t.Fatalf("expected %d entries, got %d", len(values), len(out))
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(out[i]) {
			t.Errorf("position %d: expected NaN, got %v", i, out[i])
		}
	}
	for i := 2; i < len(out); i++ {
		if math.IsNaN(out[i]) {
			t.Errorf("position %d: expected defined value", i)
		}
	}
}

func TestSMASeries_Values(t *testing.T) {
	out, err := SMASeries([]float64{2, 4, 6, 8}, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{math.NaN(), 3, 5, 7}
	for i := 1; i < len(want); i++ {
		if math.Abs(out[i]-want[i]) > 1e-9 {
			t.Errorf("position %d: expected %v, got %v", i, want[i], out[i])
		}
	}
}

func TestSMASeries_InvalidPeriod(t *testing.T) {
	if _, err := SMASeries([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestSMASeries_ShortInput(t *testing.T) {
	out, err := SMASeries([]float64{1, 2}, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if !math.IsNaN(v) {
			t.Errorf("position %d: expected NaN for short input, got %v", i, v)
		}
	}
}
