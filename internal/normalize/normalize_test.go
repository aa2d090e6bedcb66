package normalize

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{45, 45, true},
		{int64(7), 7, true},
		{float32(1.5), 1.5, true},
		{130.5, 130.5, true},
		{" 110 ", 110, true},
		{json.Number("98.6"), 98.6, true},
		{"abc", 0, false},
		{"", 0, false},
		{true, 0, false},
		{nil, 0, false},
		{math.NaN(), 0, false},
		{math.Inf(1), 0, false},
	}
	for _, tt := range tests {
		got, ok := Float(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Float(%#v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   any
		want string
		ok   bool
	}{
		{" Male ", "Male", true},
		{"", "", false},
		{"   ", "", false},
		{true, "yes", true},
		{false, "no", true},
		{2, "2", true},
		{1.5, "1.5", true},
		{nil, "", false},
	}
	for _, tt := range tests {
		got, ok := String(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("String(%#v) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsYes(t *testing.T) {
	for _, v := range []any{"yes", " YES ", "y", "true", "1", true, 1, 2.0} {
		if !IsYes(v) {
			t.Errorf("IsYes(%#v) = false, want true", v)
		}
	}
	for _, v := range []any{"no", "", "maybe", false, 0, nil} {
		if IsYes(v) {
			t.Errorf("IsYes(%#v) = true, want false", v)
		}
	}
}

func TestIsMale(t *testing.T) {
	for _, v := range []any{"Male", "m", "M", "1", 1} {
		if !IsMale(v) {
			t.Errorf("IsMale(%#v) = false, want true", v)
		}
	}
	for _, v := range []any{"Female", "f", "0", "", nil, 0} {
		if IsMale(v) {
			t.Errorf("IsMale(%#v) = true, want false", v)
		}
	}
}

func TestBMI(t *testing.T) {
	if got := BMI(175, 95); got != 31.02 {
		t.Errorf("BMI(175, 95) = %v, want 31.02", got)
	}
	if got := BMI(170, 70); got != 24.22 {
		t.Errorf("BMI(170, 70) = %v, want 24.22", got)
	}
	if got := BMI(0, 70); got != 0 {
		t.Errorf("BMI(0, 70) = %v, want 0", got)
	}
}

func TestRecordHash_OrderIndependent(t *testing.T) {
	a := map[string]any{"age": 45, "gender": "Male", "weight": 85.0}
	b := map[string]any{"weight": 85.0, "gender": "Male", "age": 45}
	if RecordHash(a) != RecordHash(b) {
		t.Error("hash differs for equal records")
	}
	b["age"] = 46
	if RecordHash(a) == RecordHash(b) {
		t.Error("hash equal for different records")
	}
	b["age"] = 45
	b["smoker"] = nil
	if RecordHash(a) != RecordHash(b) {
		t.Error("nil field changed the hash")
	}
}
