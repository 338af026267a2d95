// Package i18n provides internationalization support.
package i18n

import (
	"fmt"
	"sync"
)

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = RU // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name": "Listen & Repeat",

		// Devices
		"devices_title":         "Доступные микрофоны:",
		"device_prompt":         "Выберите номер микрофона: ",
		"device_invalid":        "Нет микрофона с таким номером",
		"device_dialog_title":   "Выбор микрофона",
		"device_dialog_text":    "Выберите микрофон для записи:",
		"device_selected":       "Микрофон: %s",
		"device_default_suffix": " (по умолчанию)",

		// Models and voices
		"model_downloading": "Загрузка модели %s: %d%%",
		"model_loading":     "Загрузка модели распознавания %s...",
		"voice_selected":    "Голос: %s",
		"voice_default":     "голос синтезатора по умолчанию",

		// Session
		"session_start":      "Начинаем тренировку: фраз - %d. Досрочно закончить запись: %s",
		"session_interrupt":  "Enter",
		"prompt_header":      "[%d/%d] Фраза #%d",
		"state_idle":         "Приготовьтесь...",
		"state_announcing":   "Слушайте",
		"state_cueing":       "Сигнал",
		"state_capturing":    "Повторяйте",
		"state_transcribing": "Распознавание...",
		"capture_remaining":  "Осталось %.1f с",
		"attempt_result":     "Похожесть: %.1f%%",

		// Report
		"report_title":      "ИТОГИ",
		"report_average":    "Средняя точность: %.1f%%",
		"report_similarity": "Похожесть",
		"report_phonetic":   "фонетика",
		"report_reference":  "Эталон",
		"report_recorded":   "Записано",
		"report_difference": "Разница",
		"report_saved":      "Записи сохранены в %s",

		// History
		"history_title":         "Последние сессии:",
		"history_empty":         "История пуста",
		"history_session_title": "Сессия %s:",
		"history_session_empty": "Нет записей сессии %s",

		// Models
		"models_title":     "Модели распознавания (%s):",
		"model_downloaded": "скачана",
		"model_deleted":    "Модель %s удалена",

		// Notifications
		"notify_done":      "Тренировка завершена",
		"notify_done_hint": "Средняя точность: %.1f%%",
		"notify_error":     "Ошибка",

		// Errors
		"error_no_devices":      "Не найдено ни одного микрофона",
		"error_hotkey_register": "Не удалось зарегистрировать горячую клавишу, для остановки записи нажимайте Enter",
		"error_fatal":           "Ошибка: %s",
		"error_interrupted":     "Тренировка прервана",
		"error_ui_language":     "Неизвестный язык интерфейса: %s",
	},

	EN: {
		// App
		"app_name": "Listen & Repeat",

		// Devices
		"devices_title":         "Available audio input devices:",
		"device_prompt":         "Select microphone index: ",
		"device_invalid":        "No microphone with that index",
		"device_dialog_title":   "Microphone",
		"device_dialog_text":    "Select the microphone to record from:",
		"device_selected":       "Microphone: %s",
		"device_default_suffix": " (default)",

		// Models and voices
		"model_downloading": "Downloading model %s: %d%%",
		"model_loading":     "Loading recognition model %s...",
		"voice_selected":    "Voice: %s",
		"voice_default":     "default synthesizer voice",

		// Session
		"session_start":      "Starting practice: %d sentences. Stop recording early: %s",
		"session_interrupt":  "Enter",
		"prompt_header":      "[%d/%d] Sentence #%d",
		"state_idle":         "Get ready...",
		"state_announcing":   "Listen",
		"state_cueing":       "Beep",
		"state_capturing":    "Repeat",
		"state_transcribing": "Recognizing...",
		"capture_remaining":  "%.1f s left",
		"attempt_result":     "Similarity: %.1f%%",

		// Report
		"report_title":      "FINAL RESULTS",
		"report_average":    "Average accuracy: %.1f%%",
		"report_similarity": "Similarity",
		"report_phonetic":   "phonetic",
		"report_reference":  "Reference",
		"report_recorded":   "Recorded",
		"report_difference": "Difference",
		"report_saved":      "Recordings saved to %s",

		// History
		"history_title":         "Recent sessions:",
		"history_empty":         "No sessions yet",
		"history_session_title": "Session %s:",
		"history_session_empty": "No attempts for session %s",

		// Models
		"models_title":     "Recognition models (%s):",
		"model_downloaded": "downloaded",
		"model_deleted":    "Model %s deleted",

		// Notifications
		"notify_done":      "Practice finished",
		"notify_done_hint": "Average accuracy: %.1f%%",
		"notify_error":     "Error",

		// Errors
		"error_no_devices":      "No audio input devices found",
		"error_hotkey_register": "Could not register the hotkey, press Enter to stop recording",
		"error_fatal":           "Error: %s",
		"error_interrupted":     "Practice interrupted",
		"error_ui_language":     "Unknown interface language: %s",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// Tf returns the translation for key formatted with args.
func Tf(key string, args ...any) string {
	return fmt.Sprintf(T(key), args...)
}

// Parse converts a config value to a Language, defaulting to RU.
func Parse(s string) Language {
	if Language(s) == EN {
		return EN
	}
	return RU
}

// SetLanguage sets the current UI language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{RU, EN}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
