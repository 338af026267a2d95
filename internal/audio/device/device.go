// Package device связывает запись и сигнал с устройствами через portaudio.
package device

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"listen-repeat/internal/audio"
)

// Device - устройство ввода.
type Device struct {
	Index         int
	Name          string
	InputChannels int
	Default       bool
}

// Init инициализирует portaudio. Парный вызов - Terminate.
func Init() error {
	return portaudio.Initialize()
}

// Terminate освобождает ресурсы portaudio.
func Terminate() {
	portaudio.Terminate()
}

// InputDevices возвращает устройства, у которых есть хотя бы один входной канал.
// Index - позиция в общем списке устройств portaudio.
func InputDevices() ([]Device, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}

	var defaultName string
	if def, err := portaudio.DefaultInputDevice(); err == nil && def != nil {
		defaultName = def.Name
	}

	var result []Device
	for i, d := range devices {
		if d.MaxInputChannels == 0 {
			continue
		}
		result = append(result, Device{
			Index:         i,
			Name:          d.Name,
			InputChannels: d.MaxInputChannels,
			Default:       d.Name == defaultName,
		})
	}
	return result, nil
}

// OpenInput проверяет индекс устройства и возвращает Opener для него.
func OpenInput(index int) (audio.Opener, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(devices) || devices[index].MaxInputChannels == 0 {
		return nil, fmt.Errorf("%w: %d", audio.ErrNoDevice, index)
	}
	dev := devices[index]

	return func(buf []float32) (audio.Stream, error) {
		params := portaudio.LowLatencyParameters(dev, nil)
		params.Input.Channels = audio.Channels
		params.SampleRate = audio.SampleRate
		params.FramesPerBuffer = len(buf)

		stream, err := portaudio.OpenStream(params, buf)
		if err != nil {
			return nil, err
		}
		return overflowTolerant{stream}, nil
	}, nil
}

// overflowTolerant не считает переполнение входного буфера ошибкой:
// потерянный блок не повод прерывать сессию.
type overflowTolerant struct {
	*portaudio.Stream
}

func (s overflowTolerant) Read() error {
	err := s.Stream.Read()
	if err == portaudio.InputOverflowed {
		return nil
	}
	return err
}

// Cue воспроизводит тональный сигнал на устройстве вывода по умолчанию.
type Cue struct {
	Tone audio.Tone
}

// Play проигрывает сигнал и ждёт окончания.
func (c Cue) Play(ctx context.Context) error {
	buf := make([]float32, audio.FramesPerBuffer)
	stream, err := portaudio.OpenDefaultStream(0, audio.Channels, audio.SampleRate, len(buf), buf)
	if err != nil {
		return fmt.Errorf("открытие вывода: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("запуск вывода: %w", err)
	}

	samples := c.Tone.Samples(audio.SampleRate)
	for off := 0; off < len(samples); off += len(buf) {
		if err := ctx.Err(); err != nil {
			stream.Abort()
			return err
		}
		n := copy(buf, samples[off:])
		clear(buf[n:])
		if err := stream.Write(); err != nil && err != portaudio.OutputUnderflowed {
			stream.Abort()
			return fmt.Errorf("вывод сигнала: %w", err)
		}
	}

	// Stop дожидается проигрывания оставшихся буферов
	return stream.Stop()
}
