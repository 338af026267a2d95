package app

import (
	"fmt"

	"listen-repeat/internal/console"
	"listen-repeat/internal/i18n"
	"listen-repeat/internal/models"
)

// ListModels печатает модели распознавания по движкам.
func (a *App) ListModels() {
	var groups []console.ModelGroup
	for _, engine := range []models.Engine{models.EngineWhisper, models.EngineVosk} {
		g := console.ModelGroup{Engine: models.EngineName(engine)}
		for _, m := range models.GetModelsByEngine(engine) {
			g.Models = append(g.Models, console.ModelRow{
				ID:         m.ID,
				Name:       m.Name,
				Size:       m.Size,
				Downloaded: a.modelManager.IsDownloaded(m),
			})
		}
		groups = append(groups, g)
	}
	a.printer.PrintModels(a.modelManager.ModelsDir(), groups)
}

// DeleteModel удаляет скачанную модель.
func (a *App) DeleteModel(id string) error {
	info, ok := models.GetModel(id)
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrUnknownModel, id)
	}
	if err := a.modelManager.Delete(info); err != nil {
		return fmt.Errorf("удаление модели %s: %w", id, err)
	}
	a.printer.Info(i18n.Tf("model_deleted", info.Name))
	return nil
}
