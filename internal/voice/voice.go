// Package voice озвучивает фразы системным синтезатором речи.
package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os/exec"
	"strings"
)

var (
	// ErrNoEngine - синтезатор речи не установлен.
	ErrNoEngine = errors.New("синтезатор речи не найден")
	// ErrUnknownVoice - в системе нет голоса с таким именем.
	ErrUnknownVoice = errors.New("голос не найден")
)

// Voice описывает голос синтезатора.
type Voice struct {
	ID       string // Передаётся синтезатору
	Name     string // Отображаемое имя
	Language string // en-US, en_GB, ru ...
}

// Speaker озвучивает текст и возвращается после окончания воспроизведения.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// New создаёт платформо-специфичный Speaker с голосом v.
// Пустой v.ID - голос синтезатора по умолчанию.
func New(v Voice) (Speaker, error) {
	return newSpeaker(v)
}

// Voices возвращает голоса, установленные в системе.
func Voices(ctx context.Context) ([]Voice, error) {
	return listVoices(ctx)
}

// Resolve выбирает голос один раз на сессию. Если configured задан, ищет его
// по ID или имени. Иначе берёт случайный голос для языка lang, а если таких
// нет - любой. Пустой список даёт голос по умолчанию.
func Resolve(voices []Voice, configured, lang string, rnd *rand.Rand) (Voice, error) {
	if configured != "" {
		for _, v := range voices {
			if strings.EqualFold(v.ID, configured) || strings.EqualFold(v.Name, configured) {
				return v, nil
			}
		}
		return Voice{}, fmt.Errorf("%w: %s", ErrUnknownVoice, configured)
	}

	if len(voices) == 0 {
		return Voice{}, nil
	}

	candidates := voices
	if matching := ForLanguage(voices, lang); len(matching) > 0 {
		candidates = matching
	}
	if rnd == nil {
		return candidates[rand.IntN(len(candidates))], nil
	}
	return candidates[rnd.IntN(len(candidates))], nil
}

// ForLanguage оставляет голоса, язык которых начинается с lang ("en" -> en-US, en_GB).
func ForLanguage(voices []Voice, lang string) []Voice {
	lang = strings.ToLower(lang)
	if lang == "" || lang == "auto" {
		return nil
	}

	var result []Voice
	for _, v := range voices {
		l := strings.ToLower(strings.ReplaceAll(v.Language, "_", "-"))
		if l == lang || strings.HasPrefix(l, lang+"-") {
			result = append(result, v)
		}
	}
	return result
}

// cmdSpeaker запускает внешнюю программу, текст подаётся на stdin.
type cmdSpeaker struct {
	command func(ctx context.Context) *exec.Cmd
}

func (s *cmdSpeaker) Speak(ctx context.Context, text string) error {
	cmd := s.command(ctx)
	cmd.Stdin = strings.NewReader(text)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", cmd.Path, err, msg)
		}
		return fmt.Errorf("%s: %w", cmd.Path, err)
	}
	return nil
}

// lookPath ищет первую доступную программу из списка.
func lookPath(names ...string) (string, error) {
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoEngine, strings.Join(names, ", "))
}
