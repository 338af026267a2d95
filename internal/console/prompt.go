package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"listen-repeat/internal/i18n"
)

// Choice - вариант выбора устройства.
type Choice struct {
	Index   int
	Label   string
	Default bool
}

// ErrNoInput - ввод закончился раньше, чем был сделан выбор.
var ErrNoInput = errors.New("ввод закрыт")

// PrintChoices печатает список устройств.
func (p *Printer) PrintChoices(choices []Choice) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.endLine()
	fmt.Fprintln(p.w, p.st.Label.Render(i18n.T("devices_title")))
	for _, c := range choices {
		line := fmt.Sprintf("[%d] %s", c.Index, c.Label)
		if c.Default {
			line += i18n.T("device_default_suffix")
		}
		fmt.Fprintln(p.w, line)
	}
}

// AskChoice спрашивает номер устройства, пока не будет введён допустимый.
// Пустая строка выбирает устройство по умолчанию, если оно есть.
func (p *Printer) AskChoice(r *bufio.Reader, choices []Choice) (int, error) {
	for {
		p.mu.Lock()
		fmt.Fprint(p.w, p.st.Score.Render(i18n.T("device_prompt")))
		p.mu.Unlock()

		line, err := r.ReadString('\n')
		if line == "" && err != nil {
			if errors.Is(err, io.EOF) {
				return 0, ErrNoInput
			}
			return 0, err
		}

		if index, ok := parseChoice(line, choices); ok {
			return index, nil
		}
		p.Info(i18n.T("device_invalid"))
	}
}

func parseChoice(line string, choices []Choice) (int, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		for _, c := range choices {
			if c.Default {
				return c.Index, true
			}
		}
		return 0, false
	}

	index, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	for _, c := range choices {
		if c.Index == index {
			return index, true
		}
	}
	return 0, false
}
