// Package audio предоставляет запись аудио с микрофона и воспроизведение сигнала.
package audio

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// SampleRate - частота дискретизации записи.
	SampleRate = 44100
	// Channels - количество каналов (mono).
	Channels = 1
	// FramesPerBuffer - размер буфера.
	FramesPerBuffer = 1024
	// ProgressInterval - период обновления обратного отсчёта.
	ProgressInterval = 100 * time.Millisecond
)

var (
	// ErrCapture - запись не удалось начать или продолжить.
	ErrCapture = errors.New("ошибка записи")
	// ErrNoDevice - выбранное устройство не поддерживает ввод.
	ErrNoDevice = errors.New("устройство ввода не найдено")
)

// Stream - открытый поток захвата. Read блокируется до заполнения буфера,
// переданного при открытии. *portaudio.Stream удовлетворяет интерфейсу.
type Stream interface {
	Start() error
	Read() error
	Stop() error
	Close() error
}

// Opener открывает поток захвата, пишущий блоки в buf.
type Opener func(buf []float32) (Stream, error)

// Recording - результат одной записи.
type Recording struct {
	Samples    []float32
	SampleRate int
	Duration   time.Duration
}

// Recorder записывает аудио с микрофона.
type Recorder struct {
	open Opener

	// OnProgress получает оставшееся время записи каждые ProgressInterval.
	OnProgress func(remaining time.Duration)
}

// NewRecorder создаёт Recorder поверх открывателя потоков.
func NewRecorder(open Opener) *Recorder {
	return &Recorder{open: open}
}

// Capture записывает не дольше max. Запись прерывается раньше, если закрыт
// канал stop. При отмене ctx возвращается ctx.Err().
// К моменту возврата поток остановлен и закрыт.
func (r *Recorder) Capture(ctx context.Context, max time.Duration, stop <-chan struct{}) (Recording, error) {
	if max <= 0 {
		return Recording{SampleRate: SampleRate}, nil
	}

	buf := make([]float32, FramesPerBuffer)
	stream, err := r.open(buf)
	if err != nil {
		return Recording{}, fmt.Errorf("%w: открытие потока: %w", ErrCapture, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return Recording{}, fmt.Errorf("%w: запуск потока: %w", ErrCapture, err)
	}
	start := time.Now()

	samples := make([]float32, 0, int(max.Seconds()*SampleRate)+FramesPerBuffer)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	// Читаем блоки, пока не попросят остановиться. samples трогаем
	// только после g.Wait.
	g, gctx := errgroup.WithContext(readCtx)
	g.Go(func() error {
		for gctx.Err() == nil {
			if err := stream.Read(); err != nil {
				return err
			}
			samples = append(samples, buf...)
		}
		return nil
	})

	timer := time.NewTimer(max)
	defer timer.Stop()
	ticker := time.NewTicker(ProgressInterval)
	defer ticker.Stop()

	r.progress(max)

	var aborted error
loop:
	for {
		select {
		case <-stop:
			break loop
		case <-timer.C:
			break loop
		case <-ctx.Done():
			aborted = ctx.Err()
			break loop
		case <-gctx.Done():
			// Ошибка чтения
			break loop
		case <-ticker.C:
			if remaining := max - time.Since(start); remaining > 0 {
				r.progress(remaining)
			}
		}
	}

	elapsed := time.Since(start)
	stopReading()
	readErr := g.Wait()

	// Stop дожидается слива буферов устройства
	if err := stream.Stop(); err != nil {
		log.Printf("Ошибка остановки потока: %v", err)
	}
	if err := stream.Close(); err != nil {
		log.Printf("Ошибка закрытия потока: %v", err)
	}
	r.progress(0)

	if aborted != nil {
		return Recording{}, aborted
	}
	if readErr != nil {
		return Recording{}, fmt.Errorf("%w: чтение: %w", ErrCapture, readErr)
	}

	if elapsed > max {
		elapsed = max
	}
	if n := int(elapsed.Seconds() * SampleRate); n < len(samples) {
		samples = samples[:n]
	}

	return Recording{
		Samples:    samples,
		SampleRate: SampleRate,
		Duration:   elapsed,
	}, nil
}

func (r *Recorder) progress(remaining time.Duration) {
	if r.OnProgress != nil {
		r.OnProgress(remaining)
	}
}
