// Listen-repeat - тренажёр произношения: озвучивает фразу, записывает
// повтор с микрофона, распознаёт его и сравнивает с эталоном.
//
// Использование:
//
//	listen-repeat [флаги] phrases.txt
//
// Файл фраз - текст по одной фразе на строку или YAML со списком sentences.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"listen-repeat/internal/app"
	"listen-repeat/internal/hotkey"
	"listen-repeat/internal/i18n"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

// command - действие вместо тренировки.
type command struct {
	listDevices    bool
	listModels     bool
	deleteModel    string
	historyLimit   int
	historySession string
}

func (c command) none() bool {
	return !c.listDevices && !c.listModels && c.deleteModel == "" && c.historyLimit <= 0 && c.historySession == ""
}

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	opts := app.Options{Version: Version}
	var cmd command
	flag.IntVar(&opts.Device, "device", -1, "номер микрофона (см. -list-devices)")
	flag.StringVar(&opts.ModelID, "model", "", "ID модели распознавания (см. -list-models)")
	flag.StringVar(&opts.Language, "lang", "", "язык фраз (en, ru, auto), сохраняется")
	flag.StringVar(&opts.Voice, "voice", "", "голос синтезатора, сохраняется")
	flag.StringVar(&opts.MetricsAddr, "metrics-addr", "", "адрес для /metrics, например :9464")
	flag.StringVar(&opts.UILanguage, "ui-lang", "", "язык интерфейса: "+uiLanguages()+", сохраняется")
	flag.StringVar(&opts.Hotkey, "key", "", "клавиша досрочной остановки записи, например ctrl+r, сохраняется")
	notifications := flag.Bool("notify", true, "системные уведомления, сохраняется")
	flag.BoolVar(&cmd.listDevices, "list-devices", false, "показать микрофоны и выйти")
	flag.BoolVar(&cmd.listModels, "list-models", false, "показать модели распознавания и выйти")
	flag.StringVar(&cmd.deleteModel, "delete-model", "", "удалить скачанную модель и выйти")
	flag.IntVar(&cmd.historyLimit, "history", 0, "показать последние N сессий и выйти")
	flag.StringVar(&cmd.historySession, "history-session", "", "показать фразы сессии по ID и выйти")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Использование: %s [флаги] phrases.txt\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "notify" {
			opts.Notifications = notifications
		}
	})

	if cmd.none() && flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	log.Printf("Listen-repeat %s запускается...", Version)

	code := 0
	// Запускаем в главном потоке (требование для macOS и горячих клавиш)
	hotkey.RunOnMainThread(func() {
		code = run(opts, cmd, flag.Arg(0))
	})
	os.Exit(code)
}

func run(opts app.Options, cmd command, path string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, opts)
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Printf("Ошибка завершения: %v", err)
		}
	}()

	switch {
	case cmd.listDevices:
		err = application.ListDevices()
	case cmd.listModels:
		application.ListModels()
	case cmd.deleteModel != "":
		err = application.DeleteModel(cmd.deleteModel)
	case cmd.historySession != "":
		err = application.ShowSession(ctx, cmd.historySession)
	case cmd.historyLimit > 0:
		err = application.ShowHistory(ctx, cmd.historyLimit)
	default:
		err = application.Run(ctx, path)
	}
	if err != nil {
		application.Fail(err)
		return 1
	}
	return 0
}

func uiLanguages() string {
	var names []string
	for _, l := range i18n.AvailableLanguages() {
		names = append(names, fmt.Sprintf("%s (%s)", l, i18n.LanguageName(l)))
	}
	return strings.Join(names, ", ")
}
