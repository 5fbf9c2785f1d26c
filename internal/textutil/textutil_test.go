package textutil

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"blank", "   ", []string{}},
		{"single", "action", []string{"action"}},
		{"trims", "a, b", []string{"a", "b"}},
		{"drops empties", "a,, ,b,", []string{"a", "b"}},
		{"keeps duplicates", "x, x", []string{"x", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseList(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestJoinListRoundTrip(t *testing.T) {
	items := []string{"Shounen", "Mecha"}
	if got := ParseList(JoinList(items)); !reflect.DeepEqual(got, items) {
		t.Fatalf("round trip = %#v, want %#v", got, items)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		input string
		want  *int
	}{
		{"", nil},
		{"abc", nil},
		{"12", intPtr(12)},
		{"  24 eps", intPtr(24)},
		{"-3", intPtr(-3)},
		{"+7", intPtr(7)},
		{"3.9", intPtr(3)},
		{"-", nil},
		{"99999999999999999999", nil},
	}

	for _, tt := range tests {
		got := ParseInt(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseInt(%q) = %v, want %v", tt.input, deref(got), deref(tt.want))
		}
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input string
		want  *float64
	}{
		{"", nil},
		{"nope", nil},
		{"8.5", floatPtr(8.5)},
		{" 9 ", floatPtr(9)},
		{"7.25/10", floatPtr(7.25)},
		{"NaN", nil},
		{"Inf", nil},
		{".5", floatPtr(0.5)},
		{"-2.", floatPtr(-2)},
		{"1e3 points", floatPtr(1000)},
		{"4e", floatPtr(4)},
		{"6e+x", floatPtr(6)},
		{"0x10", floatPtr(0)},
		{"1e999", nil},
		{".", nil},
		{"+", nil},
	}

	for _, tt := range tests {
		got := ParseFloat(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFloat(%q) mismatch: got %v want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFloatLongInput(t *testing.T) {
	input := "8" + strings.Repeat("x", 1<<20)
	got := ParseFloat(input)
	if got == nil || *got != 8 {
		t.Fatalf("ParseFloat(long input) = %v, want 8", got)
	}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func deref(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
