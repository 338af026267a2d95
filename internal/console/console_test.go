package console

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"listen-repeat/internal/history"
	"listen-repeat/internal/i18n"
	"listen-repeat/internal/report"
	"listen-repeat/internal/session"
)

func newPrinter(total int) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPrinter(&buf, report.DefaultStyles(), total), &buf
}

func TestPrinter_StateSequence(t *testing.T) {
	t.Parallel()

	p, buf := newPrinter(3)
	pr := session.Prompt{Index: 2, Text: "Hello"}
	for _, s := range []session.State{session.Idle, session.Announcing, session.Cueing, session.Capturing} {
		p.StateChanged(pr, s)
	}
	p.Progress(1500 * time.Millisecond)
	p.StateChanged(pr, session.Transcribing)
	p.AttemptRecorded(session.Attempt{Prompt: pr})

	out := ansi.Strip(buf.String())
	for _, want := range []string{
		i18n.Tf("prompt_header", 2, 3, 2),
		i18n.T("state_announcing"),
		i18n.T("state_capturing"),
		"\r" + i18n.Tf("capture_remaining", 1.5),
		i18n.Tf("attempt_result", 0.0),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// отсчёт завершается переводом строки перед следующим шагом
	if !strings.Contains(out, "    \n"+i18n.T("state_transcribing")) {
		t.Errorf("countdown line not terminated:\n%q", out)
	}
}

func TestPrinter_Download(t *testing.T) {
	t.Parallel()

	p, buf := newPrinter(1)
	p.Download("Whisper Base", 50, 200, false)
	p.Download("Whisper Base", 200, 200, true)

	out := ansi.Strip(buf.String())
	if !strings.Contains(out, i18n.Tf("model_downloading", "Whisper Base", 25)) {
		t.Errorf("missing 25%%:\n%q", out)
	}
	if !strings.HasSuffix(out, i18n.Tf("model_downloading", "Whisper Base", 100)+"\n") {
		t.Errorf("final line = %q", out)
	}
}

func TestParseChoice(t *testing.T) {
	t.Parallel()

	choices := []Choice{
		{Index: 0, Label: "HDA Intel"},
		{Index: 3, Label: "USB Mic", Default: true},
	}

	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3\n", 3, true},
		{" 0 \r\n", 0, true},
		{"\n", 3, true},
		{"1\n", 0, false},
		{"mic\n", 0, false},
		{"-1\n", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.in, choices)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("parseChoice(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}

	if _, ok := parseChoice("\n", choices[:1]); ok {
		t.Error("empty input accepted without a default device")
	}
}

func TestAskChoice_RetriesUntilValid(t *testing.T) {
	t.Parallel()

	p, buf := newPrinter(1)
	choices := []Choice{{Index: 1, Label: "Mic"}}
	r := bufio.NewReader(strings.NewReader("7\nabc\n1\n"))

	got, err := p.AskChoice(r, choices)
	if err != nil || got != 1 {
		t.Fatalf("AskChoice = %d, %v", got, err)
	}
	if n := strings.Count(ansi.Strip(buf.String()), i18n.T("device_invalid")); n != 2 {
		t.Fatalf("invalid message printed %d times, want 2", n)
	}
}

func TestAskChoice_EOF(t *testing.T) {
	t.Parallel()

	p, _ := newPrinter(1)
	_, err := p.AskChoice(bufio.NewReader(strings.NewReader("9\n")), []Choice{{Index: 1}})
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("err = %v, want ErrNoInput", err)
	}
}

func TestAskChoice_LastLineWithoutNewline(t *testing.T) {
	t.Parallel()

	p, _ := newPrinter(1)
	got, err := p.AskChoice(bufio.NewReader(strings.NewReader("1")), []Choice{{Index: 1}})
	if err != nil || got != 1 {
		t.Fatalf("AskChoice = %d, %v", got, err)
	}
}

func TestPrintHistory(t *testing.T) {
	t.Parallel()

	p, buf := newPrinter(0)
	p.PrintHistory(nil)
	if !strings.Contains(ansi.Strip(buf.String()), i18n.T("history_empty")) {
		t.Fatalf("empty history output = %q", buf.String())
	}

	buf.Reset()
	p.PrintHistory([]history.Session{{
		ID:        "0b7c6a2e-5f1d-4d7e-9a51-3c2f8e1d9b40",
		Name:      "greetings",
		StartedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.Local),
		Score:     87.5,
		Phonetic:  92,
		Attempts:  4,
	}})
	out := ansi.Strip(buf.String())
	for _, want := range []string{"2026-03-01 10:30", "greetings", " 87.5%", "(92.0%)", "0b7c6a2e-5f1d-4d7e-9a51-3c2f8e1d9b40"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinter_Fatal(t *testing.T) {
	t.Parallel()

	p, buf := newPrinter(1)
	p.Progress(time.Second)
	p.Fatal(errors.New("boom"))
	out := ansi.Strip(buf.String())
	if !strings.HasSuffix(out, "\n"+i18n.Tf("error_fatal", "boom")+"\n") {
		t.Fatalf("output = %q", out)
	}
}

func TestPrintAttempts(t *testing.T) {
	t.Parallel()

	p, buf := newPrinter(0)
	p.PrintAttempts("abc", nil)
	if !strings.Contains(ansi.Strip(buf.String()), i18n.Tf("history_session_empty", "abc")) {
		t.Fatalf("empty session output = %q", buf.String())
	}

	buf.Reset()
	p.PrintAttempts("abc", []history.Attempt{
		{Index: 1, Reference: "HELLO WORLD", Transcript: "HELLO WORLD", Status: "recognized", Similarity: 1, Phonetic: 1, Duration: 2 * time.Second},
		{Index: 2, Reference: "GOOD MORNING", Status: "silence", Duration: time.Second},
	})
	out := ansi.Strip(buf.String())
	for _, want := range []string{
		i18n.Tf("history_session_title", "abc"),
		"01. 100.0%",
		"02.   0.0%",
		"GOOD MORNING",
		"silence",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "01. ") > strings.Index(out, "02. ") {
		t.Error("attempts printed out of order")
	}
}

func TestPrintModels(t *testing.T) {
	t.Parallel()

	p, buf := newPrinter(0)
	p.PrintModels("/opt/models", []ModelGroup{
		{Engine: "Whisper", Models: []ModelRow{
			{ID: "whisper-base-en", Name: "Base (English)", Size: 142 << 20, Downloaded: true},
			{ID: "whisper-tiny-en", Name: "Tiny (English)", Size: 75 << 20},
		}},
	})

	lines := strings.Split(ansi.Strip(buf.String()), "\n")
	if !strings.Contains(lines[0], "/opt/models") {
		t.Fatalf("title = %q", lines[0])
	}
	var base, tiny string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "whisper-base-en"):
			base = l
		case strings.Contains(l, "whisper-tiny-en"):
			tiny = l
		}
	}
	if !strings.Contains(base, "142 MB") || !strings.HasSuffix(base, i18n.T("model_downloaded")) {
		t.Errorf("downloaded row = %q", base)
	}
	if strings.Contains(tiny, i18n.T("model_downloaded")) {
		t.Errorf("missing model marked downloaded: %q", tiny)
	}
}
