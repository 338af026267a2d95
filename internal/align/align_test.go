package align_test

import (
	"math"
	"testing"

	"listen-repeat/internal/align"
)

const eps = 1e-9

// sides собирает обе строки обратно из участков.
func sides(r align.Result) (a, b string) {
	for _, s := range r.Spans {
		a += s.A
		b += s.B
	}
	return a, b
}

func TestAlign_Identical(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"A", "HELLO WORLD", "THE QUICK BROWN FOX", "ПРИВЕТ МИР"} {
		res := align.Align(s, s)
		if res.Ratio != 1.0 {
			t.Errorf("Align(%q, %q).Ratio = %f, want 1.0", s, s, res.Ratio)
		}
		if len(res.Spans) != 1 || res.Spans[0].Tag != align.Equal || res.Spans[0].A != s {
			t.Errorf("Align(%q, %q).Spans = %+v, want single equal span", s, s, res.Spans)
		}
	}
}

func TestAlign_Empty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want float64
		tag  align.Tag
	}{
		{name: "both empty", a: "", b: "", want: 1.0, tag: -1},
		{name: "empty reference", a: "", b: "X", want: 0.0, tag: align.Insert},
		{name: "empty hypothesis", a: "HELLO", b: "", want: 0.0, tag: align.Delete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := align.Align(tt.a, tt.b)
			if res.Ratio != tt.want {
				t.Fatalf("Ratio = %f, want %f", res.Ratio, tt.want)
			}
			if tt.tag < 0 {
				if len(res.Spans) != 0 {
					t.Fatalf("Spans = %+v, want none", res.Spans)
				}
				return
			}
			if len(res.Spans) != 1 || res.Spans[0].Tag != tt.tag {
				t.Fatalf("Spans = %+v, want single %s span", res.Spans, tt.tag)
			}
		})
	}
}

func TestAlign_CatBat(t *testing.T) {
	t.Parallel()

	res := align.Align("CAT", "BAT")
	if math.Abs(res.Ratio-4.0/6.0) > eps {
		t.Fatalf("Ratio = %f, want %f", res.Ratio, 4.0/6.0)
	}

	want := []align.Span{
		{Tag: align.Replace, I1: 0, I2: 1, J1: 0, J2: 1, A: "C", B: "B"},
		{Tag: align.Equal, I1: 1, I2: 3, J1: 1, J2: 3, A: "AT", B: "AT"},
	}
	if len(res.Spans) != len(want) {
		t.Fatalf("Spans = %+v, want %+v", res.Spans, want)
	}
	for i := range want {
		if res.Spans[i] != want[i] {
			t.Errorf("Spans[%d] = %+v, want %+v", i, res.Spans[i], want[i])
		}
	}
}

func TestAlign_TiePrefersEarliestReferenceMatch(t *testing.T) {
	t.Parallel()

	res := align.Align("AB", "BA")
	want := []align.Tag{align.Insert, align.Equal, align.Delete}
	if len(res.Spans) != len(want) {
		t.Fatalf("Spans = %+v, want tags %v", res.Spans, want)
	}
	for i, tag := range want {
		if res.Spans[i].Tag != tag {
			t.Errorf("Spans[%d].Tag = %s, want %s", i, res.Spans[i].Tag, tag)
		}
	}
	if res.Spans[1].A != "A" {
		t.Errorf("equal span = %q, want %q", res.Spans[1].A, "A")
	}
}

func TestAlign_KnownRatio(t *testing.T) {
	t.Parallel()

	// Совпадают "HE", "LO WOR" и "D": 9 символов из 20.
	got := align.Ratio("HELLO WORLD", "HELO WORD")
	if math.Abs(got-0.9) > eps {
		t.Fatalf("Ratio = %f, want 0.9", got)
	}
}

// Для пар без равных по длине конкурирующих блоков порядок аргументов не важен.
func TestAlign_RatioSymmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"CAT", "BAT"},
		{"HELLO WORLD", "HELO WORD"},
		{"I WOULD LIKE A CUP OF TEA", "I WOOD LIKE CUP OF T"},
		{"HELLO", ""},
	}
	for _, p := range pairs {
		ab := align.Ratio(p[0], p[1])
		ba := align.Ratio(p[1], p[0])
		if math.Abs(ab-ba) > eps {
			t.Errorf("Ratio(%q, %q) = %f, Ratio(%q, %q) = %f", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

// Ratcliff/Obershelp берёт самый ранний в первой строке из равных по длине
// блоков, поэтому при перестановке аргументов ratio может измениться.
// Так же ведёт себя difflib.SequenceMatcher.
func TestAlign_RatioNotSymmetricOnTies(t *testing.T) {
	t.Parallel()

	if got := align.Ratio("TIDE", "DIET"); math.Abs(got-0.25) > eps {
		t.Errorf("Ratio(TIDE, DIET) = %f, want 0.25", got)
	}
	if got := align.Ratio("DIET", "TIDE"); math.Abs(got-0.5) > eps {
		t.Errorf("Ratio(DIET, TIDE) = %f, want 0.5", got)
	}
}

func TestAlign_SpansCoverBothStrings(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"CAT", "BAT"},
		{"THE QUICK BROWN FOX", "A QUICK BROWN BOX JUMPS"},
		{"I WOULD LIKE A CUP OF TEA", ""},
		{"", "SOMETHING"},
		{"ПРИВЕТ МИР", "ПРИВЕД МИРУ"},
		{"ABCABBA", "CBABAC"},
	}

	for _, p := range pairs {
		res := align.Align(p[0], p[1])
		ref, hyp := sides(res)
		if ref != p[0] {
			t.Errorf("Align(%q, %q): reference side = %q", p[0], p[1], ref)
		}
		if hyp != p[1] {
			t.Errorf("Align(%q, %q): hypothesis side = %q", p[0], p[1], hyp)
		}

		i, j := 0, 0
		for _, s := range res.Spans {
			if s.I1 != i || s.J1 != j {
				t.Errorf("Align(%q, %q): gap before %+v", p[0], p[1], s)
			}
			i, j = s.I2, s.J2
		}
		if i != len([]rune(p[0])) || j != len([]rune(p[1])) {
			t.Errorf("Align(%q, %q): spans end at (%d, %d)", p[0], p[1], i, j)
		}
		if res.Ratio < 0 || res.Ratio > 1 {
			t.Errorf("Align(%q, %q): ratio %f out of range", p[0], p[1], res.Ratio)
		}
	}
}

func TestTag_String(t *testing.T) {
	t.Parallel()

	if align.Replace.String() != "replace" || align.Insert.String() != "insert" {
		t.Fatalf("unexpected tag names: %s %s", align.Replace, align.Insert)
	}
}
