// Package observe собирает метрики тренировок через OpenTelemetry.
//
// Метрики пишутся через OpenTelemetry Metrics API; [InitProvider] подключает
// Prometheus exporter, а [Serve] публикует их на /metrics. Тестам следует
// создавать [Metrics] через [NewMetrics] со своим MeterProvider.
package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"listen-repeat/internal/session"
)

const meterName = "listen-repeat"

var _ session.Observer = (*Metrics)(nil)

// Metrics - инструменты метрик. Безопасны для конкурентного использования.
type Metrics struct {
	// Похожесть попытки 0..1
	AttemptSimilarity  metric.Float64Histogram
	PhoneticSimilarity metric.Float64Histogram

	// Длительности шагов, секунды
	PlaybackDuration   metric.Float64Histogram
	CaptureDuration    metric.Float64Histogram
	TranscribeDuration metric.Float64Histogram

	// Attempts считает попытки с атрибутом status (recognized/silence/failed).
	Attempts metric.Int64Counter
	// PlaybackFailures считает неудачные озвучивания.
	PlaybackFailures metric.Int64Counter
	// Sessions считает сессии с атрибутом status (completed/aborted).
	Sessions metric.Int64Counter
	// SessionScore - итоговая точность сессии в процентах.
	SessionScore metric.Float64Histogram
}

var (
	ratioBuckets    = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95, 1}
	durationBuckets = []float64{0.25, 0.5, 1, 2, 3, 5, 8, 13, 20, 30}
	scoreBuckets    = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 95, 100}
)

// NewMetrics создаёт инструменты в провайдере mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.AttemptSimilarity, err = m.Float64Histogram("listen_repeat.attempt.similarity",
		metric.WithDescription("Similarity of the repeated sentence to the reference."),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(ratioBuckets...),
	); err != nil {
		return nil, err
	}
	if met.PhoneticSimilarity, err = m.Float64Histogram("listen_repeat.attempt.phonetic_similarity",
		metric.WithDescription("Phonetic similarity of the repeated sentence to the reference."),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(ratioBuckets...),
	); err != nil {
		return nil, err
	}
	if met.PlaybackDuration, err = m.Float64Histogram("listen_repeat.playback.duration",
		metric.WithDescription("Time spent speaking the reference sentence."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}
	if met.CaptureDuration, err = m.Float64Histogram("listen_repeat.capture.duration",
		metric.WithDescription("Length of the recorded repetition."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}
	if met.TranscribeDuration, err = m.Float64Histogram("listen_repeat.transcribe.duration",
		metric.WithDescription("Latency of offline transcription."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Attempts, err = m.Int64Counter("listen_repeat.attempts",
		metric.WithDescription("Recorded attempts by transcription status."),
	); err != nil {
		return nil, err
	}
	if met.PlaybackFailures, err = m.Int64Counter("listen_repeat.playback.failures",
		metric.WithDescription("Sentences the speech synthesizer failed to speak."),
	); err != nil {
		return nil, err
	}
	if met.Sessions, err = m.Int64Counter("listen_repeat.sessions",
		metric.WithDescription("Practice sessions by outcome."),
	); err != nil {
		return nil, err
	}
	if met.SessionScore, err = m.Float64Histogram("listen_repeat.session.score",
		metric.WithDescription("Average accuracy of a finished session."),
		metric.WithUnit("%"),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// StateChanged ничего не записывает: все значения берутся из готовой попытки.
func (m *Metrics) StateChanged(session.Prompt, session.State) {}

// AttemptRecorded записывает метрики попытки.
func (m *Metrics) AttemptRecorded(a session.Attempt) {
	ctx := context.Background()

	m.AttemptSimilarity.Record(ctx, a.Similarity())
	m.PhoneticSimilarity.Record(ctx, a.Phonetic)
	m.CaptureDuration.Record(ctx, a.Duration.Seconds())
	m.TranscribeDuration.Record(ctx, a.TranscribeDuration.Seconds())
	m.Attempts.Add(ctx, 1, metric.WithAttributes(attribute.String("status", a.Status.String())))

	if a.PlaybackFailed {
		m.PlaybackFailures.Add(ctx, 1)
	} else {
		m.PlaybackDuration.Record(ctx, a.PlayDuration.Seconds())
	}
}

// RecordSession записывает итог сессии. score учитывается только для
// завершённых сессий.
func (m *Metrics) RecordSession(ctx context.Context, completed bool, score float64) {
	status := "aborted"
	if completed {
		status = "completed"
		m.SessionScore.Record(ctx, score)
	}
	m.Sessions.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}
