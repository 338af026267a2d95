// Package speech предоставляет абстракцию для движков распознавания речи.
package speech

// SampleRate - частота дискретизации, которую ожидают движки.
const SampleRate = 16000

// Recognizer - интерфейс для движков распознавания речи.
type Recognizer interface {
	// Transcribe распознаёт речь из аудио сэмплов.
	// samples - аудио данные в формате float32, 16kHz, mono.
	// lang - язык распознавания ("en", "ru", "auto" для автоопределения).
	Transcribe(samples []float32, lang string) (string, error)

	// Close освобождает ресурсы движка.
	Close()

	// Name возвращает название движка (для логирования).
	Name() string
}
