// Package session проводит тренировку: озвучивает фразу, подаёт сигнал,
// записывает повтор, распознаёт и оценивает его. Фразы обрабатываются
// строго по очереди.
package session

import (
	"context"
	"strings"
	"time"

	"listen-repeat/internal/align"
	"listen-repeat/internal/audio"
	"listen-repeat/internal/speech"
)

// Prompt - фраза для повторения. Index начинается с 1.
type Prompt struct {
	Index int
	Text  string
}

// Reference возвращает эталон для сравнения (в верхнем регистре).
func (p Prompt) Reference() string {
	return strings.ToUpper(p.Text)
}

// Attempt - результат одной фразы. Создаётся один раз и не меняется.
type Attempt struct {
	Prompt     Prompt
	Samples    []float32
	SampleRate int

	// Duration - фактическая длина записи, PlayDuration - время озвучивания.
	Duration           time.Duration
	PlayDuration       time.Duration
	TranscribeDuration time.Duration
	PlaybackFailed     bool

	Transcript string
	Status     speech.Status
	Alignment  align.Result
	Phonetic   float64
}

// Similarity возвращает коэффициент похожести 0..1.
func (a Attempt) Similarity() float64 {
	return a.Alignment.Ratio
}

// State - шаг обработки фразы.
type State int

const (
	Idle State = iota
	Announcing
	Cueing
	Capturing
	Transcribing
	Scoring
	Recorded
)

// String возвращает имя состояния.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Announcing:
		return "announcing"
	case Cueing:
		return "cueing"
	case Capturing:
		return "capturing"
	case Transcribing:
		return "transcribing"
	case Scoring:
		return "scoring"
	case Recorded:
		return "recorded"
	default:
		return "unknown"
	}
}

// Speaker озвучивает фразу (блокирующий вызов).
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Cue подаёт сигнал "говорите".
type Cue interface {
	Play(ctx context.Context) error
}

// Capturer записывает не дольше max, stop прерывает запись досрочно.
type Capturer interface {
	Capture(ctx context.Context, max time.Duration, stop <-chan struct{}) (audio.Recording, error)
}

// Transcriber распознаёт запись. Ошибки движка выражены в Transcript.Status.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32, sampleRate int) speech.Transcript
}

// Interrupter выдаёт канал прерывания на время одной записи.
type Interrupter interface {
	Arm() (<-chan struct{}, func())
}

// ArtifactWriter сохраняет результат фразы.
type ArtifactWriter interface {
	Write(a Attempt) error
}

// Observer получает переходы состояний и готовые попытки.
type Observer interface {
	StateChanged(p Prompt, s State)
	AttemptRecorded(a Attempt)
}

// Observers рассылает события нескольким наблюдателям.
type Observers []Observer

func (o Observers) StateChanged(p Prompt, s State) {
	for _, obs := range o {
		obs.StateChanged(p, s)
	}
}

func (o Observers) AttemptRecorded(a Attempt) {
	for _, obs := range o {
		obs.AttemptRecorded(a)
	}
}

// Timing - паузы между шагами.
type Timing struct {
	LeadIn     time.Duration // перед озвучиванием
	Settle     time.Duration // между озвучиванием и сигналом
	PostCue    time.Duration // между сигналом и записью
	MinCapture time.Duration // нижняя граница длины записи
}

// DefaultTiming паузы по умолчанию.
var DefaultTiming = Timing{
	LeadIn:     3 * time.Second,
	Settle:     time.Second,
	PostCue:    500 * time.Millisecond,
	MinCapture: time.Second,
}

// sleep ждёт d или отмены ctx.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
