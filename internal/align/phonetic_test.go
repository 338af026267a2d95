package align_test

import (
	"testing"

	"listen-repeat/internal/align"
)

func TestPhonetic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "HELLO WORLD", b: "HELLO WORLD", want: 1.0},
		{name: "punctuation ignored", a: "HELLO, WORLD.", b: "HELLO WORLD", want: 1.0},
		{name: "homophones", a: "I WRITE", b: "I RIGHT", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "nothing said", a: "HELLO", b: "", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := align.Phonetic(tt.a, tt.b); got != tt.want {
				t.Fatalf("Phonetic(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPhonetic_NotBelowTextForHomophones(t *testing.T) {
	t.Parallel()

	text := align.Ratio("THEIR CAR", "THERE CAR")
	sound := align.Phonetic("THEIR CAR", "THERE CAR")
	if sound < text {
		t.Fatalf("Phonetic = %f, want >= text ratio %f", sound, text)
	}
}
