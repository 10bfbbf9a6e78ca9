package controller

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestFlatten(t *testing.T) {
	cases := []struct {
		name string
		in   cp.Vector
		want cp.Vector
	}{
		{"zero", cp.Vector{}, cp.Vector{}},
		{"small_positive", cp.Vector{X: 0.3, Y: 0}, cp.Vector{X: 1, Y: 0}},
		{"diagonal_analog", cp.Vector{X: 0.2, Y: 0.9}, cp.Vector{X: 1, Y: 1}},
		{"negative", cp.Vector{X: -0.01, Y: -5}, cp.Vector{X: -1, Y: -1}},
		{"already_flat", cp.Vector{X: -1, Y: 1}, cp.Vector{X: -1, Y: 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Flatten(c.in)
			if got != c.want {
				t.Fatalf("Flatten(%v) = %v, want %v", c.in, got, c.want)
			}
			if again := Flatten(got); again != got {
				t.Fatalf("Flatten not idempotent: %v -> %v", got, again)
			}
			for _, axis := range []float64{got.X, got.Y} {
				if axis != -1 && axis != 0 && axis != 1 {
					t.Fatalf("axis %v outside {-1,0,1}", axis)
				}
			}
		})
	}
}

func TestStrongestIntent(t *testing.T) {
	cases := []struct {
		name   string
		in     cp.Vector
		scheme Scheme
		want   cp.Vector
	}{
		{"zero_input", cp.Vector{}, SchemeGamepad, cp.Vector{}},
		{"keyboard_horizontal", cp.Vector{X: 0.3}, SchemeKeyboardMouse, cp.Vector{X: 1}},
		{"gamepad_y_larger", cp.Vector{X: 0.2, Y: 0.9}, SchemeGamepad, cp.Vector{Y: 1}},
		{"keyboard_y_always_wins", cp.Vector{X: 0.5, Y: 0.5}, SchemeKeyboardMouse, cp.Vector{Y: 1}},
		{"keyboard_y_small", cp.Vector{X: 1, Y: -0.1}, SchemeKeyboardMouse, cp.Vector{Y: -1}},
		{"gamepad_tie_favours_x", cp.Vector{X: -0.5, Y: 0.5}, SchemeGamepad, cp.Vector{X: -1}},
		{"pointer_x_larger", cp.Vector{X: 0.8, Y: -0.3}, SchemePointer, cp.Vector{X: 1}},
		{"unknown_scheme", cp.Vector{X: 1, Y: 1}, SchemeNone, cp.Vector{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := StrongestIntent(c.in, c.scheme)
			if got != c.want {
				t.Fatalf("StrongestIntent(%v, %s) = %v, want %v", c.in, c.scheme, got, c.want)
			}
		})
	}
}

func TestSetInputScenarios(t *testing.T) {
	cases := []struct {
		name          string
		raw           cp.Vector
		scheme        Scheme
		wantMovement  cp.Vector
		wantStrongest cp.Vector
	}{
		{"keyboard_light_right", cp.Vector{X: 0.3}, SchemeKeyboardMouse, cp.Vector{X: 1}, cp.Vector{X: 1}},
		{"gamepad_mostly_up", cp.Vector{X: 0.2, Y: 0.9}, SchemeGamepad, cp.Vector{X: 1, Y: 1}, cp.Vector{Y: 1}},
		{"keyboard_diagonal", cp.Vector{X: 0.5, Y: 0.5}, SchemeKeyboardMouse, cp.Vector{X: 1, Y: 1}, cp.Vector{Y: 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ch := New(Config{})
			ch.SetInput(c.raw, c.scheme)
			if ch.MovementInput != c.wantMovement {
				t.Fatalf("movement = %v, want %v", ch.MovementInput, c.wantMovement)
			}
			if ch.StrongestInput != c.wantStrongest {
				t.Fatalf("strongest = %v, want %v", ch.StrongestInput, c.wantStrongest)
			}
		})
	}
}
