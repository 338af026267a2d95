package app

import (
	"context"

	"listen-repeat/internal/history"
)

func (a *App) openHistory() error {
	if a.history != nil {
		return nil
	}
	store, err := history.Open(a.config.HistoryDB())
	if err != nil {
		return err
	}
	a.history = store
	return nil
}

// ShowHistory печатает последние limit сессий.
func (a *App) ShowHistory(ctx context.Context, limit int) error {
	if err := a.openHistory(); err != nil {
		return err
	}
	sessions, err := a.history.Recent(ctx, limit)
	if err != nil {
		return err
	}
	a.printer.PrintHistory(sessions)
	return nil
}

// ShowSession печатает фразы сессии id.
func (a *App) ShowSession(ctx context.Context, id string) error {
	if err := a.openHistory(); err != nil {
		return err
	}
	attempts, err := a.history.Attempts(ctx, id)
	if err != nil {
		return err
	}
	a.printer.PrintAttempts(id, attempts)
	return nil
}
