// Package console выводит ход тренировки и запрашивает ввод в терминале.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"listen-repeat/internal/i18n"
	"listen-repeat/internal/report"
	"listen-repeat/internal/session"
)

// Printer печатает события сессии. Безопасен для вызова из горутины записи.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	st     report.Styles
	total  int
	inLine bool // последняя строка - обратный отсчёт без перевода строки
}

// NewPrinter создаёт Printer для сессии из total фраз.
func NewPrinter(w io.Writer, st report.Styles, total int) *Printer {
	return &Printer{w: w, st: st, total: total}
}

// Start печатает приглашение перед первой фразой.
func (p *Printer) Start(interruptKey string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, p.st.Label.Render(i18n.Tf("session_start", p.total, interruptKey)))
}

// StateChanged печатает шаг обработки фразы.
func (p *Printer) StateChanged(pr session.Prompt, s session.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	switch s {
	case session.Idle:
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, p.st.Header.Render(i18n.Tf("prompt_header", pr.Index, p.total, pr.Index)))
		fmt.Fprintln(p.w, p.st.Dim.Render(i18n.T("state_idle")))
	case session.Announcing:
		fmt.Fprintln(p.w, p.st.Dim.Render(i18n.T("state_announcing")))
	case session.Cueing:
		fmt.Fprintln(p.w, p.st.Dim.Render(i18n.T("state_cueing")))
	case session.Capturing:
		fmt.Fprintln(p.w, p.st.Score.Render(i18n.T("state_capturing")))
	case session.Transcribing:
		fmt.Fprintln(p.w, p.st.Dim.Render(i18n.T("state_transcribing")))
	}
}

// AttemptRecorded печатает похожесть готовой фразы.
func (p *Printer) AttemptRecorded(a session.Attempt) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	fmt.Fprintln(p.w, p.st.Label.Render(i18n.Tf("attempt_result", a.Similarity()*100)))
}

// Progress печатает обратный отсчёт записи в одной строке.
func (p *Printer) Progress(remaining time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := i18n.Tf("capture_remaining", remaining.Seconds())
	fmt.Fprintf(p.w, "\r%s%s", p.st.Dim.Render(line), strings.Repeat(" ", 4))
	p.inLine = true
}

// Download печатает прогресс загрузки модели.
func (p *Printer) Download(name string, downloaded, total int64, done bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	percent := 100
	if total > 0 && !done {
		percent = int(downloaded * 100 / total)
	}
	fmt.Fprintf(p.w, "\r%s", p.st.Dim.Render(i18n.Tf("model_downloading", name, percent)))
	p.inLine = true
	if done {
		p.endLine()
	}
}

// Info печатает строку.
func (p *Printer) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	fmt.Fprintln(p.w, p.st.Label.Render(msg))
}

// Fatal печатает ошибку, после которой программа завершается.
func (p *Printer) Fatal(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	fmt.Fprintln(p.w, p.st.Error.Render(i18n.Tf("error_fatal", err)))
}

func (p *Printer) endLine() {
	if p.inLine {
		fmt.Fprintln(p.w)
		p.inLine = false
	}
}
