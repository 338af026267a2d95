// Package app связывает компоненты тренировки: микрофон, синтез речи,
// распознавание, отчёт и историю.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"slices"
	"time"

	"go.opentelemetry.io/otel"

	"listen-repeat/internal/audio"
	"listen-repeat/internal/audio/device"
	"listen-repeat/internal/config"
	"listen-repeat/internal/console"
	"listen-repeat/internal/history"
	"listen-repeat/internal/hotkey"
	"listen-repeat/internal/i18n"
	"listen-repeat/internal/interrupt"
	"listen-repeat/internal/models"
	"listen-repeat/internal/notify"
	"listen-repeat/internal/observe"
	"listen-repeat/internal/prompts"
	"listen-repeat/internal/report"
	"listen-repeat/internal/session"
	"listen-repeat/internal/speech"
	"listen-repeat/internal/speech/engine"
	"listen-repeat/internal/voice"
)

// Options - параметры запуска из командной строки. Пустые значения берутся
// из конфига.
type Options struct {
	Version     string
	Device      int // -1 - из конфига или выбор
	ModelID     string
	Language    string
	Voice       string
	MetricsAddr string

	// Сохраняются в конфиг
	UILanguage    string
	Hotkey        string
	Notifications *bool
}

// App представляет главное приложение.
type App struct {
	opts          Options
	config        *config.Config
	modelManager  *models.Manager
	speechFactory *engine.Factory
	notifier      *notify.Notifier
	history       *history.Store
	metrics       *observe.Metrics
	latch         *interrupt.Latch
	hotkey        *hotkey.Handler
	printer       *console.Printer
	styles        report.Styles
	stdin         *bufio.Reader
	shutdown      []func(context.Context) error
}

// New создаёт приложение и инициализирует аудио.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg := config.New()
	log.Printf("Конфиг: %s", cfg.Path())

	if opts.UILanguage != "" && !slices.Contains(i18n.AvailableLanguages(), i18n.Language(opts.UILanguage)) {
		return nil, errors.New(i18n.Tf("error_ui_language", opts.UILanguage))
	}
	if err := cfg.Apply(config.Overrides{
		Language:      opts.Language,
		UILanguage:    opts.UILanguage,
		Hotkey:        opts.Hotkey,
		Notifications: opts.Notifications,
	}); err != nil {
		return nil, err
	}

	// Инициализируем язык интерфейса из конфига
	if uiLang := cfg.UILanguage(); uiLang != "" {
		i18n.SetLanguage(i18n.Parse(uiLang))
	}

	if err := device.Init(); err != nil {
		return nil, fmt.Errorf("инициализация аудио: %w", err)
	}

	modelManager, err := models.NewManager()
	if err != nil {
		device.Terminate()
		return nil, err
	}

	styles := report.DefaultStyles()
	app := &App{
		opts:          opts,
		config:        cfg,
		modelManager:  modelManager,
		speechFactory: engine.NewFactory(modelManager),
		notifier:      notify.New(cfg.NotificationsEnabled()),
		latch:         interrupt.New(),
		printer:       console.NewPrinter(os.Stdout, styles, 0),
		styles:        styles,
		stdin:         bufio.NewReader(os.Stdin),
	}

	if err := app.initMetrics(ctx); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func (a *App) initMetrics(ctx context.Context) error {
	addr := a.opts.MetricsAddr
	if addr == "" {
		addr = a.config.MetricsAddr()
	}
	if addr != "" {
		shutdownProvider, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceVersion: a.opts.Version})
		if err != nil {
			return fmt.Errorf("инициализация метрик: %w", err)
		}
		a.shutdown = append(a.shutdown, shutdownProvider)

		shutdownServer, err := observe.Serve(addr)
		if err != nil {
			return fmt.Errorf("сервер метрик: %w", err)
		}
		a.shutdown = append(a.shutdown, shutdownServer)
	}

	// Без адреса глобальный провайдер - noop
	metrics, err := observe.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("инструменты метрик: %w", err)
	}
	a.metrics = metrics
	return nil
}

// Run проводит тренировку по файлу фраз и печатает отчёт.
func (a *App) Run(ctx context.Context, promptsPath string) error {
	set, err := prompts.Load(promptsPath)
	if err != nil {
		return err
	}

	opener, err := a.selectDevice()
	if err != nil {
		return err
	}

	lang := a.config.Language()
	modelID, transcriber, err := a.loadRecognizer(ctx, lang)
	if err != nil {
		return err
	}

	v, speaker, err := a.loadVoice(ctx, lang)
	if err != nil {
		return err
	}

	if err := a.openHistory(); err != nil {
		return err
	}

	started := time.Now()
	writer, err := session.NewDirWriter(a.config.OutputDir(), set.Name, started)
	if err != nil {
		return err
	}

	recorder := audio.NewRecorder(opener)
	printer := console.NewPrinter(os.Stdout, a.styles, len(set.Sentences))
	recorder.OnProgress = printer.Progress
	a.printer = printer

	interrupter, keyName := a.startInterrupter()
	defer a.stopInterrupter()

	timing := a.config.Timing()
	orch := session.New(session.Deps{
		Speaker: speaker,
		Cue: device.Cue{Tone: audio.Tone{
			Frequency: timing.CueFrequency,
			Duration:  config.Seconds(timing.CueDuration),
			Amplitude: audio.DefaultCue.Amplitude,
		}},
		Capturer:    recorder,
		Transcriber: transcriber,
		Interrupter: interrupter,
		Writer:      writer,
		Observer:    session.Observers{printer, a.metrics},
		Timing: session.Timing{
			LeadIn:     config.Seconds(timing.LeadIn),
			Settle:     config.Seconds(timing.Settle),
			PostCue:    config.Seconds(timing.PostCue),
			MinCapture: config.Seconds(timing.MinCapture),
		},
	})

	printer.Start(keyName)

	attempts, err := orch.Run(ctx, session.Prompts(set.Sentences))
	if err != nil {
		a.metrics.RecordSession(context.WithoutCancel(ctx), false, 0)
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", i18n.T("error_interrupted"), err)
		}
		return err
	}

	r := report.Finalize(attempts)
	if err := report.Render(os.Stdout, r, a.styles); err != nil {
		return err
	}
	printer.Info(i18n.Tf("report_saved", writer.Dir()))

	a.metrics.RecordSession(ctx, true, r.Score)
	a.notifier.SessionDone(r.Score)

	meta := history.Meta{
		Name:      set.Name,
		StartedAt: started,
		EndedAt:   time.Now(),
		ModelID:   modelID,
		Voice:     v.ID,
		OutputDir: writer.Dir(),
	}
	if _, err := a.history.SaveReport(ctx, meta, r); err != nil {
		// Отчёт уже напечатан, потеря записи в истории не критична
		log.Printf("Ошибка сохранения истории: %v", err)
	}

	return nil
}

// loadRecognizer скачивает при необходимости и загружает модель распознавания.
func (a *App) loadRecognizer(ctx context.Context, lang string) (string, *speech.Transcriber, error) {
	modelID := a.opts.ModelID
	if modelID == "" {
		modelID = a.config.ModelID()
	}
	if modelID == "" {
		modelID = models.DefaultModelID()
	}

	info, _, err := a.modelManager.Ensure(ctx, modelID, func(p models.Progress) {
		a.printer.Download(p.ModelID, p.Downloaded, p.Total, p.Done)
	})
	if err != nil {
		return "", nil, fmt.Errorf("модель %s: %w", modelID, err)
	}

	a.printer.Info(i18n.Tf("model_loading", info.Name))
	rec, err := a.speechFactory.Load(modelID)
	if err != nil {
		return "", nil, err
	}
	if modelID != a.config.ModelID() {
		a.config.SetModelID(modelID)
	}

	log.Printf("Распознаватель: %s", rec.Name())
	return modelID, speech.NewTranscriber(rec, lang), nil
}

// loadVoice выбирает голос один раз на сессию.
func (a *App) loadVoice(ctx context.Context, lang string) (voice.Voice, voice.Speaker, error) {
	configured := a.opts.Voice
	if configured == "" {
		configured = a.config.Voice()
	}

	var v voice.Voice
	voices, err := voice.Voices(ctx)
	if err != nil {
		log.Printf("Не удалось получить список голосов: %v", err)
	}
	if err != nil && configured != "" {
		// Список недоступен, доверяем синтезатору
		v = voice.Voice{ID: configured, Name: configured}
	} else if v, err = voice.Resolve(voices, configured, lang, nil); err != nil {
		return voice.Voice{}, nil, err
	}
	speaker, err := voice.New(v)
	if err != nil {
		return voice.Voice{}, nil, err
	}

	if a.opts.Voice != "" && v.ID != "" {
		a.config.SetVoice(v.ID)
	}

	if v.ID == "" {
		a.printer.Info(i18n.Tf("voice_selected", i18n.T("voice_default")))
	} else {
		a.printer.Info(i18n.Tf("voice_selected", v.Name))
	}
	return v, speaker, nil
}

// startInterrupter проверяет, что горячую клавишу досрочной остановки
// можно зарегистрировать. Захватывается она только на время записи.
// Если клавиша недоступна, остановка - по Enter в консоли.
// Возвращает название клавиши для подсказки.
func (a *App) startInterrupter() (session.Interrupter, string) {
	fire := func() {
		if a.latch.Fire() {
			log.Println("Запись остановлена досрочно")
		}
	}

	h := hotkey.New(a.config.Hotkey(), fire)
	err := h.Grab()
	if err == nil {
		if err := h.Release(); err != nil {
			log.Printf("Ошибка снятия горячей клавиши: %v", err)
		}
		a.hotkey = h
		return interrupt.Scoped{Latch: a.latch, Key: h}, h.String()
	}
	log.Printf("Ошибка регистрации горячей клавиши: %v", err)

	a.printer.Info(i18n.T("error_hotkey_register"))
	go func() {
		for {
			if _, err := a.stdin.ReadString('\n'); err != nil {
				return
			}
			fire()
		}
	}()
	return interrupt.Scoped{Latch: a.latch}, i18n.T("session_interrupt")
}

func (a *App) stopInterrupter() {
	if a.hotkey == nil {
		return
	}
	if err := a.hotkey.Release(); err != nil {
		log.Printf("Ошибка снятия горячей клавиши: %v", err)
	}
}

// Fail сообщает о фатальной ошибке в консоль и системным уведомлением.
func (a *App) Fail(err error) {
	a.printer.Fatal(err)
	if !errors.Is(err, context.Canceled) {
		a.notifier.Error(err.Error())
	}
}

// Close освобождает модель, базу истории, метрики и аудио.
func (a *App) Close() error {
	var errs []error

	a.speechFactory.Close()
	if a.history != nil {
		errs = append(errs, a.history.Close())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(a.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, a.shutdown[i](ctx))
	}

	device.Terminate()
	return errors.Join(errs...)
}
