package main

// go build -buildvcs=false -o textpad .

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"textpad/internal/chrome"
	"textpad/internal/config"
	"textpad/internal/textenc"
)

// Version of the editor.
// Версия редактора.
const Version = "1.0.2"

// envLog overrides the log file from the config.
const envLog = "TEXTPAD_LOG"

// Editor represents the text editor state.
// Editor представляет состояние текстового редактора.
type Editor struct {
	screen   tcell.Screen
	cfg      config.Config
	log      *slog.Logger
	app      *chrome.App
	resolver *textenc.Resolver

	current *Canvas
	help    *Canvas
	prompt  *Prompt

	width, height int
	quit          bool

	message     string
	messageErr  bool
	messageTime time.Time

	defaultFG, defaultBG tcell.Color
	attrs                tcell.AttrMask

	// startDir is where the file prompts start.
	startDir string

	now            func() time.Time
	clipboardRead  func() (string, error)
	clipboardWrite func(string) error
}

// NewEditor creates an editor with one main window.
// NewEditor создает редактор с одним главным окном.
func NewEditor(cfg config.Config, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Editor{
		cfg:            cfg,
		log:            logger,
		app:            chrome.NewApp(),
		startDir:       ".",
		now:            time.Now,
		clipboardRead:  clipboard.ReadAll,
		clipboardWrite: clipboard.WriteAll,
		attrs:          fontAttrs(cfg.Font.Style),
	}
	e.resolver = textenc.NewResolver(cfg.Policy(), e, logger)

	var err error
	if e.defaultFG, err = parseColour(cfg.FG); err != nil {
		logger.Warn("config fg ignored", "err", err)
		e.defaultFG = tcell.ColorBlack
	}
	if e.defaultBG, err = parseColour(cfg.BG); err != nil {
		logger.Warn("config bg ignored", "err", err)
		e.defaultBG = tcell.ColorWhite
	}
	e.current = e.newCanvas(chrome.Main, "")
	return e
}

// openLog returns the logger for path; without a path logs are discarded,
// the terminal belongs to the editor.
func openLog(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), f, nil
}

// main is the entry point of the program.
// main является точкой входа в программу.
func main() {
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() > 1 {
		printUsage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "textpad: stdout is not a terminal")
		os.Exit(1)
	}

	cfgPath, err := config.Path()
	if err != nil {
		fmt.Fprintln(os.Stderr, "textpad:", err)
		os.Exit(1)
	}
	cfg, unknown, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "textpad:", err)
		os.Exit(1)
	}

	logPath := cfg.LogFile
	if p := os.Getenv(envLog); p != "" {
		logPath = p
	}
	logger, closer, err := openLog(logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "textpad:", err)
		os.Exit(1)
	}
	defer closer.Close()

	logger.Info("starting", "version", Version, "config", cfgPath, "platform_encoding", textenc.PlatformDefault())
	if len(unknown) > 0 {
		logger.Warn("unknown config keys", "keys", unknown)
	}

	editor := NewEditor(cfg, logger)
	if err := editor.Run(path); err != nil {
		fmt.Fprintln(os.Stderr, "Editor startup error:", err)
		os.Exit(1)
	}
}
