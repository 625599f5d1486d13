package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"cmdcon/internal/config"
	"cmdcon/internal/console"
	"cmdcon/internal/display"
	"cmdcon/internal/events"
	"cmdcon/internal/history"
	"cmdcon/internal/interp"
	"cmdcon/internal/logger"
	"cmdcon/internal/session"
	"cmdcon/internal/tui"
)

var log = logger.Named("main")

func main() {
	logger.Configure()
	if logFile, err := logger.SetupFile(logger.DefaultLogPath); err != nil {
		logger.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}

	fs, cli := newFlagSet("cmdcon")
	if err := fs.Parse(os.Args[1:]); err != nil {
		logger.Fatalf("parse args: %v", err)
	}

	if cli.last {
		if err := showLast(); err != nil {
			logger.Fatalf("failed to read last transcript: %v", err)
		}
		return
	}

	cfg, err := config.Load(cli.cfgPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	scrollback, err := display.New(cfg.MaxLines)
	if err != nil {
		logger.Fatalf("failed to create scrollback: %v", err)
	}

	bus := events.NewBus()
	defer bus.Close()

	var store *history.Store
	if !cli.noHistory {
		if cli.historyPath != "" {
			store = &history.Store{Path: cli.historyPath}
		} else if store, err = history.NewDefault(); err != nil {
			logger.Warnf("history disabled: %v", err)
		}
	}

	rec := session.NewRecord()
	js := interp.NewJavaScript(nil, nil)
	c, err := console.New(console.Options{
		Interpreter:            js,
		Sink:                   scrollback,
		PromptText:             cfg.PromptText,
		ContinuationPromptText: cfg.ContinuationPromptText,
		InitText:               banner(cli.noBanner),
		MaxHistory:             cfg.MaxHistory,
		TabWidth:               cfg.TabWidth,
		InputStyle:             styleFor(cfg.InputColor),
		OutputStyle:            optionalStyle(cfg.OutputColor),
		ErrorStyle:             optionalStyle(cfg.ErrorColor),
		Events:                 bus,
		Observer: func(label console.Label, text string) {
			rec.Append(label.String(), text)
		},
	})
	if err != nil {
		logger.Fatalf("failed to create console: %v", err)
	}
	js.SetStreams(c.Session.Out, c.Session.Err)

	if store != nil {
		seed, err := store.Recent(seedLimit(cfg.MaxHistory))
		if err != nil {
			logger.Warnf("failed to load history: %v", err)
		} else {
			c.Seed(seed)
		}
	}

	// 订阅生命周期事件：提交的行落盘历史，同时写入结构化日志。
	go func() {
		for evt := range bus.Subscribe() {
			switch evt.Type {
			case events.LineSubmitted:
				if store != nil {
					if err := store.Append(evt.Text); err != nil {
						log.WithField("err", err).Warn("history append failed")
					}
				}
				log.WithField("prompt", evt.Prompt).Debug("line submitted")
			case events.EvalFinished:
				log.WithField("more", evt.More).Debug("evaluation finished")
			}
		}
	}()

	if err := tui.Run(tui.Options{Console: c, Scrollback: scrollback, Log: logger.Named("tui")}); err != nil {
		logger.Fatalf("program exit: %v", err)
	}

	if cli.transcript && len(rec.Lines) > 0 {
		id, err := session.Save(rec)
		if err != nil {
			logger.Warnf("failed to save transcript: %v", err)
			return
		}
		fmt.Printf("Transcript saved: %s\n", id)
	}
}

// seedLimit resolves how many stored entries to preload so the seed matches
// the recall capacity the console actually ends up with.
func seedLimit(maxHistory int) int {
	switch maxHistory {
	case console.UnlimitedHistory:
		return 0 // no limit
	case 0:
		return console.DefaultMaxHistory
	default:
		return maxHistory
	}
}

func banner(suppress bool) string {
	if suppress {
		return ""
	}
	return "cmdcon — interactive JavaScript console (goja)\n"
}

func styleFor(color string) lipgloss.Style {
	if color == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func optionalStyle(color string) *lipgloss.Style {
	if color == "" {
		return nil
	}
	s := styleFor(color)
	return &s
}
