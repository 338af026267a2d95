package app

import (
	"errors"
	"fmt"
	"log"

	"listen-repeat/internal/audio"
	"listen-repeat/internal/audio/device"
	"listen-repeat/internal/console"
	"listen-repeat/internal/dialog"
	"listen-repeat/internal/i18n"
)

// selectDevice определяет микрофон: флаг, затем конфиг, затем выбор
// пользователя в диалоге или в консоли. Выбор сохраняется в конфиг.
func (a *App) selectDevice() (audio.Opener, error) {
	devices, err := device.InputDevices()
	if err != nil {
		return nil, fmt.Errorf("список устройств: %w", err)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("%w: %s", audio.ErrNoDevice, i18n.T("error_no_devices"))
	}

	index := a.opts.Device
	if index < 0 {
		index = a.config.Device()
	}
	if index >= 0 {
		opener, err := device.OpenInput(index)
		if err == nil {
			a.announceDevice(devices, index)
			return opener, nil
		}
		if a.opts.Device >= 0 {
			return nil, err
		}
		// Устройство из конфига пропало, спрашиваем заново
		log.Printf("Сохранённый микрофон недоступен: %v", err)
	}

	index, err = a.askDevice(devices)
	if err != nil {
		return nil, err
	}
	opener, err := device.OpenInput(index)
	if err != nil {
		return nil, err
	}
	a.config.SetDevice(index)
	a.announceDevice(devices, index)
	return opener, nil
}

func (a *App) askDevice(devices []device.Device) (int, error) {
	options := make([]dialog.Option, len(devices))
	for i, d := range devices {
		options[i] = dialog.Option{Label: fmt.Sprintf("[%d] %s", d.Index, d.Name), Value: d.Index, Default: d.Default}
	}

	index, err := dialog.Select(i18n.T("device_dialog_title"), i18n.T("device_dialog_text"), options)
	switch {
	case err == nil:
		return index, nil
	case errors.Is(err, dialog.ErrCanceled):
		return 0, err
	default:
		log.Printf("Диалог выбора недоступен, спрашиваем в консоли: %v", err)
	}

	choices := make([]console.Choice, len(devices))
	for i, d := range devices {
		choices[i] = console.Choice{Index: d.Index, Label: d.Name, Default: d.Default}
	}
	a.printer.PrintChoices(choices)
	return a.printer.AskChoice(a.stdin, choices)
}

func (a *App) announceDevice(devices []device.Device, index int) {
	for _, d := range devices {
		if d.Index == index {
			a.printer.Info(i18n.Tf("device_selected", d.Name))
			return
		}
	}
}

// ListDevices печатает микрофоны.
func (a *App) ListDevices() error {
	devices, err := device.InputDevices()
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		return errors.New(i18n.T("error_no_devices"))
	}

	choices := make([]console.Choice, len(devices))
	for i, d := range devices {
		choices[i] = console.Choice{Index: d.Index, Label: d.Name, Default: d.Default}
	}
	a.printer.PrintChoices(choices)
	return nil
}
