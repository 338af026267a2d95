// Package prompts загружает наборы фраз для тренировки.
package prompts

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmpty - в файле нет ни одной фразы.
var ErrEmpty = errors.New("файл не содержит фраз")

// Set - набор фраз из одного файла.
type Set struct {
	// Name - имя файла без расширения, из него строится имя сессии.
	Name      string
	Sentences []string
}

// yamlSet - формат .yaml файла.
type yamlSet struct {
	Sentences []string `yaml:"sentences"`
}

// Load читает фразы из path. Поддерживаются .txt (фраза на строку)
// и .yaml/.yml со списком sentences. Пустые строки пропускаются.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("не удалось прочитать %s: %w", path, err)
	}

	var raw []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var ys yamlSet
		if err := yaml.Unmarshal(data, &ys); err != nil {
			return Set{}, fmt.Errorf("ошибка разбора %s: %w", path, err)
		}
		raw = ys.Sentences
	default:
		raw, err = lines(data)
		if err != nil {
			return Set{}, fmt.Errorf("ошибка чтения %s: %w", path, err)
		}
	}

	set := Set{Name: BaseName(path)}
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			set.Sentences = append(set.Sentences, s)
		}
	}
	if len(set.Sentences) == 0 {
		return Set{}, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return set, nil
}

// BaseName возвращает имя файла без директории и расширения.
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func lines(data []byte) ([]string, error) {
	// UTF-8 BOM от Блокнота
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}
