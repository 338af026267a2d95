// Package notify предоставляет системные уведомления.
package notify

import (
	"github.com/gen2brain/beeep"

	"listen-repeat/internal/i18n"
)

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled bool
	send    func(title, message, icon string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled, send: beeep.Notify}
}

// SessionDone сообщает об окончании тренировки и итоговой точности.
func (n *Notifier) SessionDone(score float64) {
	n.notify(i18n.T("notify_done"), i18n.Tf("notify_done_hint", score))
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	if len([]rune(msg)) > 100 {
		msg = string([]rune(msg)[:100]) + "..."
	}
	n.notify(i18n.T("notify_error"), msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	// Игнорируем ошибки уведомлений - они не критичны
	_ = n.send(i18n.T("app_name")+": "+title, message, "")
}
