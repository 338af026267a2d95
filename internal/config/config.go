// Package config предоставляет конфигурацию приложения с сохранением в файл.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// ErrUnknownKey - в записи горячей клавиши неизвестная клавиша или модификатор.
var ErrUnknownKey = errors.New("неизвестная клавиша")

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
	KeyA      Key = "a"
	KeyB      Key = "b"
	KeyC      Key = "c"
	KeyD      Key = "d"
	KeyE      Key = "e"
	KeyF      Key = "f"
	KeyG      Key = "g"
	KeyH      Key = "h"
	KeyI      Key = "i"
	KeyJ      Key = "j"
	KeyK      Key = "k"
	KeyL      Key = "l"
	KeyM      Key = "m"
	KeyN      Key = "n"
	KeyO      Key = "o"
	KeyP      Key = "p"
	KeyQ      Key = "q"
	KeyR      Key = "r"
	KeyS      Key = "s"
	KeyT      Key = "t"
	KeyU      Key = "u"
	KeyV      Key = "v"
	KeyW      Key = "w"
	KeyX      Key = "x"
	KeyY      Key = "y"
	KeyZ      Key = "z"
	KeyF1     Key = "f1"
	KeyF2     Key = "f2"
	KeyF3     Key = "f3"
	KeyF4     Key = "f4"
	KeyF5     Key = "f5"
	KeyF6     Key = "f6"
	KeyF7     Key = "f7"
	KeyF8     Key = "f8"
	KeyF9     Key = "f9"
	KeyF10    Key = "f10"
	KeyF11    Key = "f11"
	KeyF12    Key = "f12"
)

// HotkeyConfig хранит настройки горячей клавиши.
type HotkeyConfig struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       Key        `json:"key"`
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	result := ""
	for _, m := range h.Modifiers {
		if result != "" {
			result += "+"
		}
		result += string(m)
	}
	if result != "" {
		result += "+"
	}
	result += string(h.Key)
	return result
}

// ParseHotkey разбирает запись вида "ctrl+shift+r". Последняя часть -
// клавиша, остальные - модификаторы.
func ParseHotkey(s string) (HotkeyConfig, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")

	var hk HotkeyConfig
	for _, p := range parts[:len(parts)-1] {
		mod := Modifier(strings.TrimSpace(p))
		if !slices.Contains(AvailableModifiers(), mod) {
			return HotkeyConfig{}, fmt.Errorf("%w: %q в %q", ErrUnknownKey, mod, s)
		}
		if !slices.Contains(hk.Modifiers, mod) {
			hk.Modifiers = append(hk.Modifiers, mod)
		}
	}

	key := Key(strings.TrimSpace(parts[len(parts)-1]))
	if !slices.Contains(AvailableKeys(), key) {
		return HotkeyConfig{}, fmt.Errorf("%w: %q в %q", ErrUnknownKey, key, s)
	}
	hk.Key = key
	return hk, nil
}

// TimingConfig - паузы сессии в секундах и параметры сигнала.
type TimingConfig struct {
	LeadIn       float64 `json:"lead_in"`
	Settle       float64 `json:"settle"`
	PostCue      float64 `json:"post_cue"`
	MinCapture   float64 `json:"min_capture"`
	CueFrequency float64 `json:"cue_frequency"`
	CueDuration  float64 `json:"cue_duration"`
}

// DefaultTiming паузы по умолчанию.
func DefaultTiming() TimingConfig {
	return TimingConfig{
		LeadIn:       3,
		Settle:       1,
		PostCue:      0.5,
		MinCapture:   1,
		CueFrequency: 880,
		CueDuration:  0.8,
	}
}

// Seconds переводит секунды из конфига в time.Duration.
func Seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}

// normalize подставляет значения по умолчанию вместо недопустимых.
func (t TimingConfig) normalize() TimingConfig {
	def := DefaultTiming()
	if t.LeadIn < 0 {
		t.LeadIn = def.LeadIn
	}
	if t.Settle < 0 {
		t.Settle = def.Settle
	}
	if t.PostCue < 0 {
		t.PostCue = def.PostCue
	}
	if t.MinCapture <= 0 {
		t.MinCapture = def.MinCapture
	}
	if t.CueFrequency <= 0 {
		t.CueFrequency = def.CueFrequency
	}
	if t.CueDuration <= 0 {
		t.CueDuration = def.CueDuration
	}
	return t
}

// configData структура для сериализации.
type configData struct {
	Language      string        `json:"language"`
	UILanguage    string        `json:"ui_language,omitempty"`
	Notifications bool          `json:"notifications"`
	Hotkey        HotkeyConfig  `json:"hotkey"`
	ModelID       string        `json:"model_id,omitempty"`
	Device        *int          `json:"device,omitempty"`
	Voice         string        `json:"voice,omitempty"`
	OutputDir     string        `json:"output_dir,omitempty"`
	HistoryDB     string        `json:"history_db,omitempty"`
	MetricsAddr   string        `json:"metrics_addr,omitempty"`
	Timing        *TimingConfig `json:"timing,omitempty"`
}

// Config хранит настройки приложения.
type Config struct {
	mu            sync.RWMutex
	language      string
	uiLanguage    string
	notifications bool
	hotkey        HotkeyConfig
	modelID       string
	device        int
	voice         string
	outputDir     string
	historyDB     string
	metricsAddr   string
	timing        TimingConfig
	configPath    string
}

// New создаёт конфигурацию, загружая из файла или с настройками по умолчанию.
// Файл config.json лежит рядом с бинарником.
func New() *Config {
	path := ""

	execPath, err := os.Executable()
	if err == nil {
		// Резолвим симлинки
		execPath, err = filepath.EvalSymlinks(execPath)
		if err == nil {
			path = filepath.Join(filepath.Dir(execPath), "config.json")
		}
	}

	return NewAt(path)
}

// NewAt создаёт конфигурацию с файлом по пути path. Пустой path - без сохранения.
func NewAt(path string) *Config {
	c := &Config{
		language:      "en",
		uiLanguage:    "ru", // По умолчанию русский интерфейс
		notifications: true,
		hotkey: HotkeyConfig{
			Key: KeySpace,
		},
		device:     -1,
		outputDir:  "recordings",
		historyDB:  "history.db",
		timing:     DefaultTiming(),
		configPath: path,
	}

	c.load()

	return c
}

// load загружает конфигурацию из файла.
func (c *Config) load() {
	if c.configPath == "" {
		return
	}

	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return // Файл не существует, используем defaults
	}

	var cfg configData
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("Ошибка чтения %s: %v, используем настройки по умолчанию", c.configPath, err)
		return
	}

	if cfg.Language != "" {
		c.language = cfg.Language
	}
	if cfg.UILanguage != "" {
		c.uiLanguage = cfg.UILanguage
	}
	c.notifications = cfg.Notifications
	if cfg.Hotkey.Key != "" {
		c.hotkey = cfg.Hotkey
	}
	c.modelID = cfg.ModelID
	if cfg.Device != nil {
		c.device = *cfg.Device
	}
	c.voice = cfg.Voice
	if cfg.OutputDir != "" {
		c.outputDir = cfg.OutputDir
	}
	if cfg.HistoryDB != "" {
		c.historyDB = cfg.HistoryDB
	}
	c.metricsAddr = cfg.MetricsAddr
	if cfg.Timing != nil {
		c.timing = cfg.Timing.normalize()
	}
}

// save сохраняет конфигурацию в файл. Вызывается под c.mu.
func (c *Config) save() {
	if c.configPath == "" {
		return
	}

	timing := c.timing
	cfg := configData{
		Language:      c.language,
		UILanguage:    c.uiLanguage,
		Notifications: c.notifications,
		Hotkey:        c.hotkey,
		ModelID:       c.modelID,
		Voice:         c.voice,
		OutputDir:     c.outputDir,
		HistoryDB:     c.historyDB,
		MetricsAddr:   c.metricsAddr,
		Timing:        &timing,
	}
	if c.device >= 0 {
		device := c.device
		cfg.Device = &device
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}

	if err := os.WriteFile(c.configPath, data, 0644); err != nil {
		log.Printf("Не удалось сохранить настройки: %v", err)
	}
}

// Path возвращает путь к файлу конфигурации.
func (c *Config) Path() string {
	return c.configPath
}

// SetLanguage устанавливает язык распознавания.
func (c *Config) SetLanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.language = lang
	c.save()
}

// Language возвращает текущий язык распознавания.
func (c *Config) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.language
}

// SetNotifications включает/выключает уведомления.
func (c *Config) SetNotifications(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = enabled
	c.save()
}

// NotificationsEnabled возвращает true если уведомления включены.
func (c *Config) NotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notifications
}

// Hotkey возвращает клавишу прерывания записи.
func (c *Config) Hotkey() HotkeyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hotkey
}

// SetHotkey устанавливает клавишу прерывания записи.
func (c *Config) SetHotkey(hk HotkeyConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hotkey = hk
	c.save()
}

// ModelID возвращает ID текущей модели распознавания.
func (c *Config) ModelID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modelID
}

// SetModelID устанавливает ID модели распознавания.
func (c *Config) SetModelID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modelID = id
	c.save()
}

// Device возвращает индекс микрофона; -1 если не выбран.
func (c *Config) Device() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.device
}

// SetDevice запоминает выбранный микрофон.
func (c *Config) SetDevice(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.device = index
	c.save()
}

// Voice возвращает имя голоса синтезатора; пустое - выбрать случайно.
func (c *Config) Voice() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.voice
}

// SetVoice устанавливает голос синтезатора.
func (c *Config) SetVoice(voice string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.voice = voice
	c.save()
}

// OutputDir возвращает директорию для записей.
func (c *Config) OutputDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.outputDir
}

// HistoryDB возвращает путь к базе истории.
func (c *Config) HistoryDB() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.historyDB
}

// MetricsAddr возвращает адрес /metrics; пустой - метрики не публикуются.
func (c *Config) MetricsAddr() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metricsAddr
}

// Timing возвращает паузы сессии.
func (c *Config) Timing() TimingConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timing
}

// AvailableModifiers возвращает список доступных модификаторов.
func AvailableModifiers() []Modifier {
	return []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}
}

// AvailableKeys возвращает список доступных клавиш.
func AvailableKeys() []Key {
	return []Key{
		KeySpace, KeyReturn, KeyTab,
		KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
		KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	}
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.uiLanguage
}

// SetUILanguage устанавливает язык интерфейса.
func (c *Config) SetUILanguage(lang string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uiLanguage = lang
	c.save()
}

// Overrides - настройки из командной строки. Пустые значения не меняют конфиг.
type Overrides struct {
	Language      string
	UILanguage    string
	Hotkey        string
	Notifications *bool
}

// Apply сохраняет заданные настройки. При ошибке разбора клавиши конфиг
// не меняется.
func (c *Config) Apply(o Overrides) error {
	var hk *HotkeyConfig
	if o.Hotkey != "" {
		parsed, err := ParseHotkey(o.Hotkey)
		if err != nil {
			return err
		}
		hk = &parsed
	}

	if o.Language != "" {
		c.SetLanguage(o.Language)
	}
	if o.UILanguage != "" {
		c.SetUILanguage(o.UILanguage)
	}
	if hk != nil {
		c.SetHotkey(*hk)
	}
	if o.Notifications != nil {
		c.SetNotifications(*o.Notifications)
	}
	return nil
}
