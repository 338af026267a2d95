package console

import (
	"fmt"

	"listen-repeat/internal/i18n"
)

// ModelGroup - модели одного движка.
type ModelGroup struct {
	Engine string
	Models []ModelRow
}

// ModelRow - строка списка моделей.
type ModelRow struct {
	ID         string
	Name       string
	Size       int64
	Downloaded bool
}

// PrintModels печатает модели по движкам и отмечает скачанные.
func (p *Printer) PrintModels(dir string, groups []ModelGroup) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	fmt.Fprintln(p.w, p.st.Title.Render(i18n.Tf("models_title", dir)))
	for _, g := range groups {
		fmt.Fprintln(p.w, p.st.Header.Render(g.Engine))
		for _, m := range g.Models {
			line := fmt.Sprintf("  %-18s %-20s %5d MB", m.ID, m.Name, m.Size>>20)
			if m.Downloaded {
				line += "  " + p.st.Score.Render(i18n.T("model_downloaded"))
			}
			fmt.Fprintln(p.w, line)
		}
	}
}
