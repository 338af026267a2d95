// Package dialog предоставляет GUI диалоги.
package dialog

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// ErrCanceled - пользователь закрыл диалог.
var ErrCanceled = zenity.ErrCanceled

// Option - вариант выбора в списке.
type Option struct {
	Label   string
	Value   int
	Default bool
}

// Select открывает список вариантов и возвращает Value выбранного.
func Select(title, text string, options []Option) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("нет вариантов для выбора")
	}

	labels := make([]string, len(options))
	var defaults []string
	for i, o := range options {
		labels[i] = o.Label
		if o.Default {
			defaults = append(defaults, o.Label)
		}
	}

	selected, err := zenity.List(
		text,
		labels,
		zenity.Title(title),
		zenity.DefaultItems(defaults...),
	)
	if err != nil {
		return 0, err
	}

	return match(options, selected)
}

func match(options []Option, selected string) (int, error) {
	for _, o := range options {
		if o.Label == selected {
			return o.Value, nil
		}
	}
	return 0, fmt.Errorf("неизвестный вариант: %q", selected)
}
