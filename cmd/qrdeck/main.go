package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/qrdeck/internal/app"
	"github.com/sadopc/qrdeck/internal/camera"
	"github.com/sadopc/qrdeck/internal/config"
	"github.com/sadopc/qrdeck/internal/core/generate"
	"github.com/sadopc/qrdeck/internal/core/history"
	"github.com/sadopc/qrdeck/internal/core/review"
	"github.com/sadopc/qrdeck/internal/core/scan"
	"github.com/sadopc/qrdeck/internal/export"
	"github.com/sadopc/qrdeck/internal/logging"
	"github.com/sadopc/qrdeck/internal/render"
	"github.com/sadopc/qrdeck/pkg/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "generate":
			generateCmd()
			return
		case "scan":
			scanCmd()
			return
		case "history":
			historyCmd()
			return
		case "completion":
			completionCmd()
			return
		case "version":
			fmt.Println(versionString())
			return
		case "help":
			printHelp()
			return
		}
	}
	tuiCmd()
}

func versionString() string {
	return fmt.Sprintf("qrdeck %s (%s) built %s", version.Version, version.Commit, version.Date)
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `qrdeck - scan and generate QR codes in the terminal

Usage:
  qrdeck [flags]                    Launch TUI (interactive mode)
  qrdeck <command> [args] [flags]   Run a subcommand

Commands:
  generate    Print a QR code for some text, or save it as PNG
  scan        Decode a QR code from an image file
  history     List, export, recall, delete or clear history entries
  completion  Generate shell completion scripts (bash, zsh, fish)
  version     Print version information
  help        Show this help message

TUI Flags:
  --theme <name>   Theme to start with
  --version        Print version and exit

Run 'qrdeck <command> --help' for more information about a command.
`)
}

// cliLogger reports storage trouble on stderr for headless commands.
func cliLogger() logging.Logger {
	return logging.New(os.Stderr, "warn")
}

// services holds everything a command needs. close releases the store and
// the log file.
type services struct {
	cfg     config.Config
	log     logging.Logger
	store   *history.Store
	gen     *generate.Producer
	review  *review.Consumer
	closers []io.Closer
}

func (s *services) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

// openServices wires the history store and the generator. Storage that
// cannot be opened degrades to memory instead of failing the command.
func openServices(cfg config.Config, log logging.Logger) *services {
	if log == nil {
		log = logging.Nop()
	}
	backend, err := history.OpenBackend(cfg.Storage, cfg.DataDir)
	if err != nil {
		log.Warn(context.Background(), "opening history storage", "storage", cfg.Storage, "err", err)
		backend = history.Unavailable(err)
	}
	store := history.NewStore(backend, history.WithLogger(log))
	gen := generate.NewProducer(render.New(cfg.RecoveryLevel), store, log)
	return &services{
		cfg:     cfg,
		log:     log,
		store:   store,
		gen:     gen,
		review:  review.NewConsumer(store, gen),
		closers: []io.Closer{store},
	}
}

func tuiCmd() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	themeFlag := flag.String("theme", "", "Theme to start with")
	flag.Parse()

	if *versionFlag {
		fmt.Println(versionString())
		os.Exit(0)
	}

	cfg := config.Load()
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}

	// The TUI owns the terminal, so logs go to a file.
	var log logging.Logger = logging.Nop()
	var logFile io.Closer
	if l, f, err := logging.OpenFile(cfg.LogPath(), cfg.LogLevel); err == nil {
		log, logFile = l, f
	} else {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	svc := openServices(cfg, log)
	if logFile != nil {
		svc.closers = append([]io.Closer{logFile}, svc.closers...)
	}
	defer svc.close()

	cam := camera.NewFrameCamera(cfg.CameraDir, cfg.PollInterval, log)
	scanner := scan.NewProducer(cam, svc.store, scan.Options{MaxScansPerSecond: cfg.MaxScansPerSecond}, log)
	// The palette's quit bypasses the app, so release the camera here too.
	defer func() { _ = scanner.Stop() }()

	exporter := export.New(export.Options{
		DownloadDir:  cfg.DownloadDir,
		Size:         cfg.QRSize,
		ShareCommand: cfg.ShareCommand,
	}, log)

	model := app.New(cfg, app.Services{
		Store:        svc.store,
		Scanner:      scanner,
		Generator:    svc.gen,
		Review:       svc.review,
		Exporter:     exporter,
		Log:          log,
		CameraSource: cfg.CameraDir,
		HasCamera:    cam.HasCamera(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
