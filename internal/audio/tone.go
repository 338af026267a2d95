package audio

import (
	"math"
	"time"
)

// Tone - звуковой сигнал фиксированной частоты.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Amplitude float64
}

// DefaultCue - сигнал "говорите".
var DefaultCue = Tone{Frequency: 880, Duration: 800 * time.Millisecond, Amplitude: 0.5}

// Samples генерирует синусоиду с частотой дискретизации rate.
func (t Tone) Samples(rate int) []float32 {
	n := int(t.Duration.Seconds() * float64(rate))
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(t.Amplitude * math.Sin(2*math.Pi*t.Frequency*float64(i)/float64(rate)))
	}
	return out
}
