// Package engine содержит реализации распознавателей (whisper.cpp, Vosk) и фабрику.
package engine

import (
	"fmt"
	"sync"

	"listen-repeat/internal/models"
	"listen-repeat/internal/speech"
)

var (
	_ speech.Recognizer = (*WhisperRecognizer)(nil)
	_ speech.Recognizer = (*VoskRecognizer)(nil)
)

// Factory создаёт распознаватель по ID модели и владеет текущим экземпляром.
type Factory struct {
	manager *models.Manager
	current speech.Recognizer
	mu      sync.Mutex
}

// NewFactory создаёт фабрику распознавателей.
func NewFactory(manager *models.Manager) *Factory {
	return &Factory{
		manager: manager,
	}
}

// Create создаёт распознаватель для указанной модели.
func (f *Factory) Create(modelID string) (speech.Recognizer, error) {
	info, ok := models.GetModel(modelID)
	if !ok {
		return nil, fmt.Errorf("модель не найдена: %s", modelID)
	}

	modelPath := f.manager.GetModelPath(info)

	// Проверяем что модель скачана
	if !f.manager.IsDownloaded(info) {
		return nil, fmt.Errorf("модель не скачана: %s", info.Name)
	}

	var rec speech.Recognizer
	var err error

	switch info.Engine {
	case models.EngineWhisper:
		rec, err = NewWhisperFromFile(modelPath)
	case models.EngineVosk:
		rec, err = NewVosk(modelPath)
	default:
		return nil, fmt.Errorf("неизвестный движок: %s", info.Engine)
	}

	if err != nil {
		return nil, fmt.Errorf("ошибка создания распознавателя: %w", err)
	}

	return rec, nil
}

// Load загружает модель и устанавливает её как текущую.
func (f *Factory) Load(modelID string) (speech.Recognizer, error) {
	rec, err := f.Create(modelID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	old := f.current
	f.current = rec
	f.mu.Unlock()

	// Закрываем старый распознаватель
	if old != nil {
		old.Close()
	}

	return rec, nil
}

// Close закрывает текущий распознаватель.
func (f *Factory) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current != nil {
		f.current.Close()
		f.current = nil
	}
}
