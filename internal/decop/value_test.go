package decop

import (
	"errors"
	"testing"

	"dlccontrol/internal/models"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"true", true, "#t"},
		{"false", false, "#f"},
		{"int", 20, "20"},
		{"negative int", -3, "-3"},
		{"named int", models.OutputPC, "50"},
		{"user level", models.UserLevelMaintenance, "2"},
		{"real keeps point", 20.0, "20.0"},
		{"real fraction", 1550.25, "1550.25"},
		{"real exponent", 1e-9, "1e-09"},
		{"string", `CAUTION`, `"CAUTION"`},
		{"string escapes", `a"b`, `"a\"b"`},
		{"raw value", Value("'sym"), "'sym"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Encode(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncode_Unsupported(t *testing.T) {
	_, err := Encode([]int{1})
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Fatalf("expected ErrUnsupportedValue, got %v", err)
	}
}

func TestValueDecoding(t *testing.T) {
	if b, err := Value("#t").Bool(); err != nil || !b {
		t.Fatalf("Bool(#t) = %v, %v", b, err)
	}
	if b, err := Value(" #f\n").Bool(); err != nil || b {
		t.Fatalf("Bool(#f) = %v, %v", b, err)
	}
	if _, err := Value("1").Bool(); !errors.Is(err, ErrMalformedReply) {
		t.Fatalf("expected malformed bool, got %v", err)
	}
	if f, err := Value("0.02").Float(); err != nil || f != 0.02 {
		t.Fatalf("Float = %v, %v", f, err)
	}
	if n, err := Value("51").Int(); err != nil || n != 51 {
		t.Fatalf("Int = %v, %v", n, err)
	}
	if _, err := Value("51.5").Int(); !errors.Is(err, ErrMalformedReply) {
		t.Fatalf("expected malformed int, got %v", err)
	}
	if s, err := Value(`"DL pro"`).Text(); err != nil || s != "DL pro" {
		t.Fatalf("Text = %q, %v", s, err)
	}
	if _, err := Value("DL").Text(); !errors.Is(err, ErrMalformedReply) {
		t.Fatalf("expected malformed text, got %v", err)
	}
}

func TestEncodeDecodeReal(t *testing.T) {
	for _, f := range []float64{0, 1, -2.5, 400, 0.02, 1549.998} {
		lit, err := Encode(f)
		if err != nil {
			t.Fatalf("encode %v: %v", f, err)
		}
		got, err := Value(lit).Float()
		if err != nil || got != f {
			t.Fatalf("decode(%q) = %v, %v; want %v", lit, got, err, f)
		}
	}
}
