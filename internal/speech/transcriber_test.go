package speech

import (
	"context"
	"errors"
	"testing"
)

type fakeRecognizer struct {
	text string
	err  error

	gotLen  int
	gotLang string
}

func (f *fakeRecognizer) Transcribe(samples []float32, lang string) (string, error) {
	f.gotLen = len(samples)
	f.gotLang = lang
	return f.text, f.err
}

func (f *fakeRecognizer) Close()       {}
func (f *fakeRecognizer) Name() string { return "fake" }

func TestTranscriber_Statuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		text       string
		err        error
		wantText   string
		wantStatus Status
	}{
		{name: "recognized", text: " Hello,  world. ", wantText: "HELLO, WORLD.", wantStatus: Recognized},
		{name: "silence", text: "", wantStatus: Silence},
		{name: "blank audio marker", text: "[BLANK_AUDIO]", wantStatus: Silence},
		{name: "annotations stripped", text: "(music) good morning", wantText: "GOOD MORNING", wantStatus: Recognized},
		{name: "engine failure", err: errors.New("decoder crashed"), wantStatus: Failed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &fakeRecognizer{text: tt.text, err: tt.err}
			tr := NewTranscriber(rec, "en")

			got := tr.Transcribe(context.Background(), make([]float32, 44100), 44100)
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", got.Status, tt.wantStatus)
			}
			if (got.Err != nil) != (tt.err != nil) {
				t.Errorf("Err = %v, want %v", got.Err, tt.err)
			}
		})
	}
}

func TestTranscriber_ResamplesAndPads(t *testing.T) {
	t.Parallel()

	rec := &fakeRecognizer{text: "ok"}
	tr := NewTranscriber(rec, "en")

	tr.Transcribe(context.Background(), make([]float32, 44100), 44100)
	if rec.gotLen != SampleRate {
		t.Fatalf("recognizer got %d samples, want %d", rec.gotLen, SampleRate)
	}
	if rec.gotLang != "en" {
		t.Fatalf("recognizer got lang %q, want %q", rec.gotLang, "en")
	}

	tr.Transcribe(context.Background(), make([]float32, 100), 44100)
	if rec.gotLen != MinSamples {
		t.Fatalf("short recording passed as %d samples, want %d", rec.gotLen, MinSamples)
	}
}

func TestTranscriber_CancelledContext(t *testing.T) {
	t.Parallel()

	rec := &fakeRecognizer{text: "should not run"}
	tr := NewTranscriber(rec, "en")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := tr.Transcribe(ctx, make([]float32, 10), 44100)
	if got.Status != Failed || got.Text != "" {
		t.Fatalf("got %+v, want empty failed transcript", got)
	}
	if rec.gotLen != 0 {
		t.Fatal("recognizer called with cancelled context")
	}
}
