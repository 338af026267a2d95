package console

import (
	"fmt"

	"listen-repeat/internal/history"
	"listen-repeat/internal/i18n"
)

// PrintHistory печатает последние сессии.
func (p *Printer) PrintHistory(sessions []history.Session) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	if len(sessions) == 0 {
		fmt.Fprintln(p.w, p.st.Dim.Render(i18n.T("history_empty")))
		return
	}

	fmt.Fprintln(p.w, p.st.Title.Render(i18n.T("history_title")))
	for _, s := range sessions {
		fmt.Fprintf(p.w, "%s  %-20s %3d  %s %s  %s\n",
			p.st.Dim.Render(s.StartedAt.Local().Format("2006-01-02 15:04")),
			s.Name,
			s.Attempts,
			p.st.Score.Render(fmt.Sprintf("%5.1f%%", s.Score)),
			p.st.Dim.Render(fmt.Sprintf("(%.1f%%)", s.Phonetic)),
			p.st.Dim.Render(s.ID),
		)
	}
}

// PrintAttempts печатает фразы одной сессии.
func (p *Printer) PrintAttempts(sessionID string, attempts []history.Attempt) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	if len(attempts) == 0 {
		fmt.Fprintln(p.w, p.st.Dim.Render(i18n.Tf("history_session_empty", sessionID)))
		return
	}

	fmt.Fprintln(p.w, p.st.Title.Render(i18n.Tf("history_session_title", sessionID)))
	for _, a := range attempts {
		fmt.Fprintf(p.w, "%02d. %s %s\n",
			a.Index,
			p.st.Score.Render(fmt.Sprintf("%5.1f%%", a.Similarity*100)),
			p.st.Dim.Render(fmt.Sprintf("(%s %.1f%%, %s, %.1f s)",
				i18n.T("report_phonetic"), a.Phonetic*100, a.Status, a.Duration.Seconds())),
		)
		fmt.Fprintf(p.w, "    %s: %s\n", p.st.Label.Render(i18n.T("report_reference")), a.Reference)
		fmt.Fprintf(p.w, "    %s: %s\n", p.st.Label.Render(i18n.T("report_recorded")), a.Transcript)
	}
}
