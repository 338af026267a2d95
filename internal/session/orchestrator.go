package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"listen-repeat/internal/align"
	"listen-repeat/internal/audio"
)

// Deps - компоненты, из которых собирается Orchestrator.
// Cue, Interrupter, Writer и Observer необязательны.
type Deps struct {
	Speaker     Speaker
	Cue         Cue
	Capturer    Capturer
	Transcriber Transcriber
	Interrupter Interrupter
	Writer      ArtifactWriter
	Observer    Observer
	Timing      Timing
}

// Orchestrator проводит фразы через цикл
// Idle -> Announcing -> Cueing -> Capturing -> Transcribing -> Scoring -> Recorded.
type Orchestrator struct {
	d     Deps
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New создаёт Orchestrator.
func New(d Deps) *Orchestrator {
	if d.Observer == nil {
		d.Observer = Observers(nil)
	}
	return &Orchestrator{d: d, now: time.Now, sleep: sleep}
}

// Prompts нумерует фразы начиная с 1.
func Prompts(sentences []string) []Prompt {
	out := make([]Prompt, len(sentences))
	for i, s := range sentences {
		out[i] = Prompt{Index: i + 1, Text: s}
	}
	return out
}

// Run обрабатывает фразы по порядку. Ошибка записи звука, сохранения или
// отмена ctx прерывают сессию; уже готовые попытки возвращаются вместе с ошибкой.
func (o *Orchestrator) Run(ctx context.Context, prompts []Prompt) ([]Attempt, error) {
	attempts := make([]Attempt, 0, len(prompts))
	for _, p := range prompts {
		a, err := o.runPrompt(ctx, p)
		if err != nil {
			return attempts, fmt.Errorf("фраза %d: %w", p.Index, err)
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

func (o *Orchestrator) runPrompt(ctx context.Context, p Prompt) (Attempt, error) {
	obs := o.d.Observer
	t := o.d.Timing
	a := Attempt{Prompt: p}

	obs.StateChanged(p, Idle)
	if err := o.sleep(ctx, t.LeadIn); err != nil {
		return a, err
	}

	obs.StateChanged(p, Announcing)
	start := o.now()
	err := o.d.Speaker.Speak(ctx, p.Text)
	a.PlayDuration = o.now().Sub(start)
	if err != nil {
		if ctx.Err() != nil {
			return a, ctx.Err()
		}
		log.Printf("Ошибка озвучивания фразы %d: %v", p.Index, err)
		a.PlayDuration = 0
		a.PlaybackFailed = true
	}

	obs.StateChanged(p, Cueing)
	if err := o.sleep(ctx, t.Settle); err != nil {
		return a, err
	}
	if o.d.Cue != nil {
		if err := o.d.Cue.Play(ctx); err != nil {
			if ctx.Err() != nil {
				return a, ctx.Err()
			}
			log.Printf("Ошибка воспроизведения сигнала: %v", err)
		}
	}
	if err := o.sleep(ctx, t.PostCue); err != nil {
		return a, err
	}

	obs.StateChanged(p, Capturing)
	rec, err := o.capture(ctx, max(a.PlayDuration, t.MinCapture))
	if err != nil {
		return a, err
	}
	a.Samples = rec.Samples
	a.SampleRate = rec.SampleRate
	a.Duration = rec.Duration

	obs.StateChanged(p, Transcribing)
	start = o.now()
	tr := o.d.Transcriber.Transcribe(ctx, rec.Samples, rec.SampleRate)
	a.TranscribeDuration = o.now().Sub(start)
	if err := ctx.Err(); err != nil {
		return a, err
	}
	a.Transcript = tr.Text
	a.Status = tr.Status

	obs.StateChanged(p, Scoring)
	ref := p.Reference()
	a.Alignment = align.Align(ref, a.Transcript)
	a.Phonetic = align.Phonetic(ref, a.Transcript)

	if o.d.Writer != nil {
		if err := o.d.Writer.Write(a); err != nil {
			return a, fmt.Errorf("не удалось сохранить результат: %w", err)
		}
	}

	obs.StateChanged(p, Recorded)
	obs.AttemptRecorded(a)
	return a, nil
}

func (o *Orchestrator) capture(ctx context.Context, limit time.Duration) (audio.Recording, error) {
	var stop <-chan struct{}
	if o.d.Interrupter != nil {
		var disarm func()
		stop, disarm = o.d.Interrupter.Arm()
		defer disarm()
	}
	return o.d.Capturer.Capture(ctx, limit, stop)
}
