// Package hotkey регистрирует глобальную клавишу прерывания записи.
package hotkey

import (
	"fmt"
	"log"
	"sync"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"listen-repeat/internal/config"
)

// debounceInterval защищает от key repeat при удержании клавиши.
const debounceInterval = 300 * time.Millisecond

// Handler слушает горячую клавишу и вызывает onPress на каждое нажатие.
// Клавиша захватывается только между Grab и Release.
type Handler struct {
	mu      sync.Mutex
	cfg     config.HotkeyConfig
	hk      *hotkey.Hotkey
	onPress func()
	stopCh  chan struct{}
	done    chan struct{}
}

// New создаёт обработчик горячей клавиши cfg.
func New(cfg config.HotkeyConfig, onPress func()) *Handler {
	return &Handler{cfg: cfg, onPress: onPress}
}

// Grab регистрирует горячую клавишу. Повторный Grab без Release ничего не делает.
func (h *Handler) Grab() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hk != nil {
		return nil
	}

	mods := make([]hotkey.Modifier, 0, len(h.cfg.Modifiers))
	for _, m := range h.cfg.Modifiers {
		if mod, ok := modifierMap[m]; ok {
			mods = append(mods, mod)
		}
	}

	key, ok := keyMap[h.cfg.Key]
	if !ok {
		key = hotkey.KeySpace // fallback
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("не удалось зарегистрировать %s: %w", h.cfg.String(), err)
	}

	h.hk = hk
	h.stopCh = make(chan struct{})
	h.done = make(chan struct{})
	go h.listen(hk, h.stopCh, h.done)
	return nil
}

// String возвращает название клавиши.
func (h *Handler) String() string {
	return h.cfg.String()
}

func (h *Handler) listen(hk *hotkey.Hotkey, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	var lastKeydown time.Time
	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			now := time.Now()
			if now.Sub(lastKeydown) < debounceInterval {
				continue
			}
			lastKeydown = now
			if h.onPress != nil {
				h.onPress()
			}
		case _, ok := <-hk.Keyup():
			if !ok {
				return
			}
		}
	}
}

// Release отменяет регистрацию горячей клавиши.
func (h *Handler) Release() error {
	h.mu.Lock()
	hk, stopCh, done := h.hk, h.stopCh, h.done
	h.hk, h.stopCh, h.done = nil, nil, nil
	h.mu.Unlock()

	if hk == nil {
		return nil
	}

	close(stopCh)
	<-done

	// Unregister может зависнуть на некоторых X-серверах
	errCh := make(chan error, 1)
	go func() { errCh <- hk.Unregister() }()
	select {
	case err := <-errCh:
		return err
	case <-time.After(500 * time.Millisecond):
		log.Printf("Hotkey unregister timeout")
		return nil
	}
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// modifierMap определён в platform-specific файлах:
// - modifiers_linux.go
// - modifiers_darwin.go
// - modifiers_windows.go

// keyMap маппинг config.Key -> hotkey.Key
var keyMap = map[config.Key]hotkey.Key{
	config.KeySpace:  hotkey.KeySpace,
	config.KeyReturn: hotkey.KeyReturn,
	config.KeyTab:    hotkey.KeyTab,
	config.KeyA:      hotkey.KeyA,
	config.KeyB:      hotkey.KeyB,
	config.KeyC:      hotkey.KeyC,
	config.KeyD:      hotkey.KeyD,
	config.KeyE:      hotkey.KeyE,
	config.KeyF:      hotkey.KeyF,
	config.KeyG:      hotkey.KeyG,
	config.KeyH:      hotkey.KeyH,
	config.KeyI:      hotkey.KeyI,
	config.KeyJ:      hotkey.KeyJ,
	config.KeyK:      hotkey.KeyK,
	config.KeyL:      hotkey.KeyL,
	config.KeyM:      hotkey.KeyM,
	config.KeyN:      hotkey.KeyN,
	config.KeyO:      hotkey.KeyO,
	config.KeyP:      hotkey.KeyP,
	config.KeyQ:      hotkey.KeyQ,
	config.KeyR:      hotkey.KeyR,
	config.KeyS:      hotkey.KeyS,
	config.KeyT:      hotkey.KeyT,
	config.KeyU:      hotkey.KeyU,
	config.KeyV:      hotkey.KeyV,
	config.KeyW:      hotkey.KeyW,
	config.KeyX:      hotkey.KeyX,
	config.KeyY:      hotkey.KeyY,
	config.KeyZ:      hotkey.KeyZ,
	config.KeyF1:     hotkey.KeyF1,
	config.KeyF2:     hotkey.KeyF2,
	config.KeyF3:     hotkey.KeyF3,
	config.KeyF4:     hotkey.KeyF4,
	config.KeyF5:     hotkey.KeyF5,
	config.KeyF6:     hotkey.KeyF6,
	config.KeyF7:     hotkey.KeyF7,
	config.KeyF8:     hotkey.KeyF8,
	config.KeyF9:     hotkey.KeyF9,
	config.KeyF10:    hotkey.KeyF10,
	config.KeyF11:    hotkey.KeyF11,
	config.KeyF12:    hotkey.KeyF12,
}
