package models

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrUnknownModel - модели с таким ID нет в реестре.
var ErrUnknownModel = errors.New("неизвестная модель")

// Progress информация о прогрессе загрузки.
type Progress struct {
	ModelID    string
	Downloaded int64
	Total      int64
	Done       bool
}

// Manager управляет моделями на диске.
type Manager struct {
	modelsDir string
	client    *http.Client
	mu        sync.Mutex
}

// NewManager создаёт менеджер моделей.
// Модели хранятся в директории models/ рядом с бинарником.
func NewManager() (*Manager, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("не удалось определить путь к бинарнику: %w", err)
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, fmt.Errorf("не удалось разрешить симлинки: %w", err)
	}

	return NewManagerAt(filepath.Join(filepath.Dir(execPath), "models"))
}

// NewManagerAt создаёт менеджер с моделями в dir.
func NewManagerAt(dir string) (*Manager, error) {
	for _, engine := range []Engine{EngineWhisper, EngineVosk} {
		sub := filepath.Join(dir, string(engine))
		if err := os.MkdirAll(sub, 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию %s: %w", engine, err)
		}
	}
	return &Manager{modelsDir: dir, client: http.DefaultClient}, nil
}

// ModelsDir возвращает путь к директории моделей.
func (m *Manager) ModelsDir() string {
	return m.modelsDir
}

// GetModelPath возвращает полный путь к модели.
func (m *Manager) GetModelPath(info ModelInfo) string {
	return filepath.Join(m.modelsDir, string(info.Engine), info.Filename)
}

// IsDownloaded проверяет, скачана ли модель.
func (m *Manager) IsDownloaded(info ModelInfo) bool {
	stat, err := os.Stat(m.GetModelPath(info))
	if err != nil {
		return false
	}

	// Vosk - директория, Whisper - непустой файл
	if info.IsZip {
		return stat.IsDir()
	}
	return stat.Size() > 0
}

// Ensure возвращает путь к модели id, скачивая её при необходимости.
func (m *Manager) Ensure(ctx context.Context, id string, progress func(Progress)) (ModelInfo, string, error) {
	info, ok := GetModel(id)
	if !ok {
		return ModelInfo{}, "", fmt.Errorf("%w: %s", ErrUnknownModel, id)
	}
	if err := m.Download(ctx, info, progress); err != nil {
		return info, "", fmt.Errorf("не удалось скачать модель %s: %w", id, err)
	}
	return info, m.GetModelPath(info), nil
}

// Download скачивает модель. progress может быть nil.
func (m *Manager) Download(ctx context.Context, info ModelInfo, progress func(Progress)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if progress == nil {
		progress = func(Progress) {}
	}

	if m.IsDownloaded(info) {
		progress(Progress{ModelID: info.ID, Downloaded: info.Size, Total: info.Size, Done: true})
		return nil
	}

	if info.IsZip {
		return m.downloadAndUnzip(ctx, info, progress)
	}
	return m.downloadFile(ctx, info, progress)
}

func (m *Manager) downloadFile(ctx context.Context, info ModelInfo, progress func(Progress)) error {
	destPath := m.GetModelPath(info)
	tmpPath := destPath + ".tmp"
	defer os.Remove(tmpPath)

	file, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	total, err := m.fetch(ctx, info, file, progress)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	// Переименовываем в финальное имя только после полной загрузки
	if err := os.Rename(tmpPath, destPath); err != nil {
		return err
	}

	progress(Progress{ModelID: info.ID, Downloaded: total, Total: total, Done: true})
	return nil
}

func (m *Manager) downloadAndUnzip(ctx context.Context, info ModelInfo, progress func(Progress)) error {
	tmpZip, err := os.CreateTemp("", "model-*.zip")
	if err != nil {
		return err
	}
	tmpPath := tmpZip.Name()
	defer os.Remove(tmpPath)

	total, err := m.fetch(ctx, info, tmpZip, progress)
	if cerr := tmpZip.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	if err := unzip(tmpPath, filepath.Dir(m.GetModelPath(info))); err != nil {
		return fmt.Errorf("ошибка распаковки: %w", err)
	}
	if !m.IsDownloaded(info) {
		return fmt.Errorf("в архиве нет директории %s", info.Filename)
	}

	progress(Progress{ModelID: info.ID, Downloaded: total, Total: total, Done: true})
	return nil
}

// fetch скачивает info.URL в w и возвращает размер загрузки.
func (m *Manager) fetch(ctx context.Context, info ModelInfo, w io.Writer, progress func(Progress)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, info.URL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ошибка скачивания: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP ошибка: %s", resp.Status)
	}

	total := resp.ContentLength
	if total <= 0 {
		total = info.Size
	}

	var downloaded int64
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return downloaded, err
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return downloaded, werr
			}
			downloaded += int64(n)
			progress(Progress{ModelID: info.ID, Downloaded: downloaded, Total: total})
		}
		if err == io.EOF {
			return downloaded, nil
		}
		if err != nil {
			return downloaded, err
		}
	}
}

func unzip(src, destDir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	root := filepath.Clean(destDir) + string(os.PathSeparator)
	for _, f := range r.File {
		fpath := filepath.Join(destDir, f.Name)
		if !strings.HasPrefix(fpath, root) {
			return fmt.Errorf("недопустимый путь в архиве: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fpath), 0755); err != nil {
			return err
		}
		if err := extract(f, fpath); err != nil {
			return err
		}
	}

	return nil
}

func extract(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode()|0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Delete удаляет модель.
func (m *Manager) Delete(info ModelInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return os.RemoveAll(m.GetModelPath(info))
}
