package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"listen-repeat/internal/audio"
)

// DirWriter сохраняет записи и тексты в директорию сессии:
// sample_NN.wav (16-bit PCM) и sample_NN.txt (эталон и распознанный текст).
type DirWriter struct {
	dir string
}

// SessionDir возвращает директорию сессии <root>/<name>-<yymmdd-HHMM>.
func SessionDir(root, name string, started time.Time) string {
	return filepath.Join(root, name+"-"+started.Format("060102-1504"))
}

// NewDirWriter создаёт директорию сессии.
func NewDirWriter(root, name string, started time.Time) (*DirWriter, error) {
	dir := SessionDir(root, name, started)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
	}
	return &DirWriter{dir: dir}, nil
}

// Dir возвращает путь к директории сессии.
func (w *DirWriter) Dir() string {
	return w.dir
}

// Write сохраняет запись и текст попытки.
func (w *DirWriter) Write(a Attempt) error {
	base := filepath.Join(w.dir, fmt.Sprintf("sample_%02d", a.Prompt.Index))

	rate := a.SampleRate
	if rate == 0 {
		rate = audio.SampleRate
	}
	if err := os.WriteFile(base+".wav", audio.EncodeWAV(a.Samples, rate), 0644); err != nil {
		return err
	}

	text := a.Prompt.Reference() + "\n" + a.Transcript + "\n"
	return os.WriteFile(base+".txt", []byte(text), 0644)
}
