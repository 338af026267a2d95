package speech

import (
	"context"
	"log"
	"regexp"
	"strings"

	"listen-repeat/internal/audio"
)

// MinSamples - минимальная длина записи для движка (200ms при 16kHz).
// Whisper требует минимум 100ms, добавляем запас.
const MinSamples = SampleRate / 5

// Status - чем закончилось распознавание.
type Status int

const (
	// Recognized - получен непустой текст.
	Recognized Status = iota
	// Silence - движок отработал, но речи не нашёл.
	Silence
	// Failed - ошибка движка.
	Failed
)

// String возвращает имя статуса (для логов и истории).
func (s Status) String() string {
	switch s {
	case Recognized:
		return "recognized"
	case Silence:
		return "silence"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Transcript - результат распознавания. Text всегда в верхнем регистре,
// пустой при Silence и Failed.
type Transcript struct {
	Text   string
	Status Status
	Err    error
}

// annotations - служебные пометки Whisper: [BLANK_AUDIO], (music) и т.п.
var annotations = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)`)

// Transcriber приводит запись к формату движка и нормализует ответ.
type Transcriber struct {
	rec  Recognizer
	lang string
}

// NewTranscriber создаёт Transcriber поверх распознавателя.
func NewTranscriber(rec Recognizer, lang string) *Transcriber {
	return &Transcriber{rec: rec, lang: lang}
}

// Transcribe распознаёт запись с частотой sampleRate. Ошибки движка не
// возвращаются наружу: результат - пустой текст со статусом Failed.
func (t *Transcriber) Transcribe(ctx context.Context, samples []float32, sampleRate int) Transcript {
	if err := ctx.Err(); err != nil {
		return Transcript{Status: Failed, Err: err}
	}

	pcm := audio.Resample(samples, sampleRate, SampleRate)
	if len(pcm) < MinSamples {
		// Добавляем тишину если запись слишком короткая
		padded := make([]float32, MinSamples)
		copy(padded, pcm)
		pcm = padded
	}

	text, err := t.rec.Transcribe(pcm, t.lang)
	if err != nil {
		log.Printf("Ошибка распознавания (%s): %v", t.rec.Name(), err)
		return Transcript{Status: Failed, Err: err}
	}

	text = annotations.ReplaceAllString(text, "")
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Transcript{Status: Silence}
	}

	return Transcript{Text: strings.ToUpper(text), Status: Recognized}
}
