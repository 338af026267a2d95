package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"listen-repeat/internal/align"
	"listen-repeat/internal/audio"
	"listen-repeat/internal/speech"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeSpeaker struct {
	clock  *fakeClock
	took   time.Duration
	err    error
	spoken []string
}

func (s *fakeSpeaker) Speak(ctx context.Context, text string) error {
	s.spoken = append(s.spoken, text)
	s.clock.advance(s.took)
	return s.err
}

type fakeCue struct{ played int }

func (c *fakeCue) Play(context.Context) error {
	c.played++
	return nil
}

type fakeCapturer struct {
	maxes       []time.Duration
	stops       []bool
	failOn      int // номер вызова (с 1), на котором вернуть ошибку
	interruptAt time.Duration
}

func (c *fakeCapturer) Capture(ctx context.Context, max time.Duration, stop <-chan struct{}) (audio.Recording, error) {
	c.maxes = append(c.maxes, max)
	c.stops = append(c.stops, stop != nil)
	if len(c.maxes) == c.failOn {
		return audio.Recording{}, fmt.Errorf("%w: device unplugged", audio.ErrCapture)
	}

	d := max
	select {
	case <-stop:
		d = c.interruptAt
	default:
	}
	return audio.Recording{
		Samples:    make([]float32, int(d.Seconds()*audio.SampleRate)),
		SampleRate: audio.SampleRate,
		Duration:   d,
	}, nil
}

type fakeTranscriber struct {
	results []speech.Transcript
	calls   int
}

func (t *fakeTranscriber) Transcribe(ctx context.Context, samples []float32, sampleRate int) speech.Transcript {
	r := t.results[t.calls%len(t.results)]
	t.calls++
	return r
}

type fakeWriter struct {
	written []Attempt
	err     error
}

func (w *fakeWriter) Write(a Attempt) error {
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, a)
	return nil
}

type recordingObserver struct {
	states   []string
	recorded []int
}

func (o *recordingObserver) StateChanged(p Prompt, s State) {
	o.states = append(o.states, fmt.Sprintf("%d:%s", p.Index, s))
}

func (o *recordingObserver) AttemptRecorded(a Attempt) {
	o.recorded = append(o.recorded, a.Prompt.Index)
}

// fakeInterrupter взводится на каждую запись; fireOnArm сразу прерывает её.
type fakeInterrupter struct {
	fireOnArm bool
	armed     int
	disarmed  int
}

func (f *fakeInterrupter) Arm() (<-chan struct{}, func()) {
	f.armed++
	ch := make(chan struct{})
	if f.fireOnArm {
		close(ch)
	}
	return ch, func() { f.disarmed++ }
}

type harness struct {
	clock       *fakeClock
	speaker     *fakeSpeaker
	cue         *fakeCue
	capturer    *fakeCapturer
	transcriber *fakeTranscriber
	writer      *fakeWriter
	observer    *recordingObserver
}

func newHarness(transcripts ...speech.Transcript) *harness {
	clock := &fakeClock{t: time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)}
	return &harness{
		clock:       clock,
		speaker:     &fakeSpeaker{clock: clock, took: 2 * time.Second},
		cue:         &fakeCue{},
		capturer:    &fakeCapturer{},
		transcriber: &fakeTranscriber{results: transcripts},
		writer:      &fakeWriter{},
		observer:    &recordingObserver{},
	}
}

func (h *harness) orchestrator(timing Timing, in Interrupter) *Orchestrator {
	o := New(Deps{
		Speaker:     h.speaker,
		Cue:         h.cue,
		Capturer:    h.capturer,
		Transcriber: h.transcriber,
		Interrupter: in,
		Writer:      h.writer,
		Observer:    h.observer,
		Timing:      timing,
	})
	o.now = h.clock.now
	return o
}

func recognized(text string) speech.Transcript {
	return speech.Transcript{Text: text, Status: speech.Recognized}
}

var testTiming = Timing{MinCapture: time.Second}

func TestRun_ThreePerfectAttempts(t *testing.T) {
	t.Parallel()

	sentences := []string{"Hello world", "Good morning", "See you later"}
	results := make([]speech.Transcript, len(sentences))
	for i, s := range sentences {
		results[i] = recognized(strings.ToUpper(s))
	}

	h := newHarness(results...)
	attempts, err := h.orchestrator(testTiming, nil).Run(context.Background(), Prompts(sentences))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(attempts) != 3 {
		t.Fatalf("got %d attempts, want 3", len(attempts))
	}
	for i, a := range attempts {
		if a.Prompt.Index != i+1 || a.Prompt.Text != sentences[i] {
			t.Errorf("attempt %d prompt = %+v", i, a.Prompt)
		}
		if a.Similarity() != 1 {
			t.Errorf("attempt %d similarity = %v, want 1", i, a.Similarity())
		}
		if len(a.Alignment.Spans) != 1 || a.Alignment.Spans[0].Tag != align.Equal {
			t.Errorf("attempt %d spans = %+v, want a single equal span", i, a.Alignment.Spans)
		}
		if a.PlayDuration != 2*time.Second || a.Duration != 2*time.Second {
			t.Errorf("attempt %d play=%v capture=%v, want 2s both", i, a.PlayDuration, a.Duration)
		}
	}

	if strings.Join(h.speaker.spoken, "|") != strings.Join(sentences, "|") {
		t.Errorf("spoken = %q", h.speaker.spoken)
	}
	if h.cue.played != 3 {
		t.Errorf("cue played %d times, want 3", h.cue.played)
	}
	if len(h.writer.written) != 3 {
		t.Errorf("writer got %d attempts, want 3", len(h.writer.written))
	}

	want := []string{
		"1:idle", "1:announcing", "1:cueing", "1:capturing", "1:transcribing", "1:scoring", "1:recorded",
		"2:idle", "2:announcing", "2:cueing", "2:capturing", "2:transcribing", "2:scoring", "2:recorded",
		"3:idle", "3:announcing", "3:cueing", "3:capturing", "3:transcribing", "3:scoring", "3:recorded",
	}
	if strings.Join(h.observer.states, " ") != strings.Join(want, " ") {
		t.Errorf("states:\n got %v\nwant %v", h.observer.states, want)
	}
	if fmt.Sprint(h.observer.recorded) != "[1 2 3]" {
		t.Errorf("recorded = %v", h.observer.recorded)
	}
}

func TestRun_CaptureBoundedByPlayback(t *testing.T) {
	t.Parallel()

	h := newHarness(recognized("HI"))
	h.speaker.took = 3500 * time.Millisecond

	if _, err := h.orchestrator(testTiming, nil).Run(context.Background(), Prompts([]string{"Hi"})); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.capturer.maxes[0] != 3500*time.Millisecond {
		t.Fatalf("capture max = %v, want playback time 3.5s", h.capturer.maxes[0])
	}
}

func TestRun_PlaybackFailureUsesFloor(t *testing.T) {
	t.Parallel()

	h := newHarness(recognized("HELLO"))
	h.speaker.err = errors.New("espeak-ng: no audio device")

	attempts, err := h.orchestrator(testTiming, nil).Run(context.Background(), Prompts([]string{"Hello", "World"}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("got %d attempts, want session to continue", len(attempts))
	}
	for i, m := range h.capturer.maxes {
		if m != testTiming.MinCapture {
			t.Errorf("capture %d max = %v, want floor %v", i, m, testTiming.MinCapture)
		}
	}
	if !attempts[0].PlaybackFailed || attempts[0].PlayDuration != 0 {
		t.Errorf("attempt = %+v, want failed playback with zero duration", attempts[0])
	}
}

func TestRun_ShortPlaybackUsesFloor(t *testing.T) {
	t.Parallel()

	h := newHarness(recognized("OK"))
	h.speaker.took = 200 * time.Millisecond

	if _, err := h.orchestrator(testTiming, nil).Run(context.Background(), Prompts([]string{"Ok"})); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.capturer.maxes[0] != time.Second {
		t.Fatalf("capture max = %v, want 1s floor", h.capturer.maxes[0])
	}
}

func TestRun_CaptureFailureAborts(t *testing.T) {
	t.Parallel()

	h := newHarness(recognized("ONE"))
	h.capturer.failOn = 2

	attempts, err := h.orchestrator(testTiming, nil).Run(context.Background(), Prompts([]string{"One", "Two", "Three"}))
	if !errors.Is(err, audio.ErrCapture) {
		t.Fatalf("err = %v, want ErrCapture", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("got %d attempts, want only the first", len(attempts))
	}
	if len(h.speaker.spoken) != 2 {
		t.Fatalf("spoke %d prompts, want to stop after the failed one", len(h.speaker.spoken))
	}
	if len(h.writer.written) != 1 {
		t.Fatalf("writer got %d attempts, want 1", len(h.writer.written))
	}
}

func TestRun_SilenceAndFailureScoreZero(t *testing.T) {
	t.Parallel()

	h := newHarness(
		speech.Transcript{Status: speech.Silence},
		speech.Transcript{Status: speech.Failed, Err: errors.New("decoder crashed")},
	)

	attempts, err := h.orchestrator(testTiming, nil).Run(context.Background(), Prompts([]string{"Hello", "World"}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, a := range attempts {
		if a.Transcript != "" || a.Similarity() != 0 {
			t.Errorf("attempt %d transcript=%q similarity=%v, want empty and 0", i, a.Transcript, a.Similarity())
		}
	}
	if attempts[0].Status != speech.Silence || attempts[1].Status != speech.Failed {
		t.Errorf("statuses = %s, %s", attempts[0].Status, attempts[1].Status)
	}
}

func TestRun_WriterErrorPropagates(t *testing.T) {
	t.Parallel()

	h := newHarness(recognized("HI"))
	h.writer.err = errors.New("disk full")

	attempts, err := h.orchestrator(testTiming, nil).Run(context.Background(), Prompts([]string{"Hi", "There"}))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("err = %v, want writer error", err)
	}
	if len(attempts) != 0 {
		t.Fatalf("got %d attempts, want none", len(attempts))
	}
	if fmt.Sprint(h.observer.recorded) != "[]" {
		t.Fatalf("observer notified of unsaved attempt: %v", h.observer.recorded)
	}
}

func TestRun_InterruptArmedPerCapture(t *testing.T) {
	t.Parallel()

	h := newHarness(recognized("HI"))
	h.capturer.interruptAt = 400 * time.Millisecond
	in := &fakeInterrupter{fireOnArm: true}

	attempts, err := h.orchestrator(testTiming, in).Run(context.Background(), Prompts([]string{"Hi", "There"}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if in.armed != 2 || in.disarmed != 2 {
		t.Fatalf("armed=%d disarmed=%d, want 2 each", in.armed, in.disarmed)
	}
	for i, a := range attempts {
		if a.Duration != 400*time.Millisecond {
			t.Errorf("attempt %d duration = %v, want interrupted 400ms", i, a.Duration)
		}
		if a.Duration >= h.capturer.maxes[i] {
			t.Errorf("attempt %d not shorter than max", i)
		}
	}
}

func TestRun_NoInterrupterPassesNilStop(t *testing.T) {
	t.Parallel()

	h := newHarness(recognized("HI"))
	if _, err := h.orchestrator(testTiming, nil).Run(context.Background(), Prompts([]string{"Hi"})); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.capturer.stops[0] {
		t.Fatal("stop channel passed without an interrupter")
	}
}

func TestRun_WaitsConfiguredPauses(t *testing.T) {
	t.Parallel()

	h := newHarness(recognized("HI"))
	timing := Timing{LeadIn: 3 * time.Second, Settle: time.Second, PostCue: 500 * time.Millisecond, MinCapture: time.Second}
	o := h.orchestrator(timing, nil)

	var waits []time.Duration
	o.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	if _, err := o.Run(context.Background(), Prompts([]string{"Hi"})); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fmt.Sprint(waits) != "[3s 1s 500ms]" {
		t.Fatalf("waits = %v, want [3s 1s 500ms]", waits)
	}
}

func TestRun_CancelledDuringLeadIn(t *testing.T) {
	t.Parallel()

	h := newHarness(recognized("HI"))
	o := h.orchestrator(Timing{LeadIn: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	attempts, err := o.Run(ctx, Prompts([]string{"Hi"}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(attempts) != 0 || len(h.speaker.spoken) != 0 {
		t.Fatal("prompt processed after cancellation")
	}
}

func TestRun_ScoresAgainstUpperCaseReference(t *testing.T) {
	t.Parallel()

	h := newHarness(recognized("HELO WORD"))
	attempts, err := h.orchestrator(testTiming, nil).Run(context.Background(), Prompts([]string{"hello world"}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := attempts[0].Similarity(); got < 0.899 || got > 0.901 {
		t.Fatalf("similarity = %v, want 0.9", got)
	}
	if got := attempts[0].Alignment.Spans[0].A; got != "HE" {
		t.Fatalf("first span compares %q, want upper-case reference", got)
	}
	if attempts[0].Phonetic <= 0 {
		t.Fatalf("phonetic = %v, want positive", attempts[0].Phonetic)
	}
}

func TestPrompts(t *testing.T) {
	t.Parallel()

	got := Prompts([]string{"a", "b"})
	if len(got) != 2 || got[0] != (Prompt{Index: 1, Text: "a"}) || got[1] != (Prompt{Index: 2, Text: "b"}) {
		t.Fatalf("Prompts = %+v", got)
	}
}

func TestState_String(t *testing.T) {
	t.Parallel()

	if Capturing.String() != "capturing" || State(99).String() != "unknown" {
		t.Fatal("unexpected state names")
	}
}
