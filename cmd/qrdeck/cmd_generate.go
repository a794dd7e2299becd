package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/config"
	"github.com/sadopc/qrdeck/internal/render"
)

func generateCmd() {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	outFlag := fs.String("out", "", "Write a PNG to this path instead of printing")
	sizeFlag := fs.Int("size", 0, "PNG edge length in pixels (default from config)")
	levelFlag := fs.String("level", "", "Recovery level: low, medium, high, highest")
	noSaveFlag := fs.Bool("no-save", false, "Do not add the text to history")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qrdeck generate <text> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Print a QR code for text. Reads stdin when text is '-'.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  qrdeck generate https://example.com\n")
		fmt.Fprintf(os.Stderr, "  qrdeck generate \"WIFI:T:WPA;S:home;P:secret;;\" --out wifi.png\n")
		fmt.Fprintf(os.Stderr, "  echo hello | qrdeck generate -\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: text is required\n\n")
		fs.Usage()
		os.Exit(2)
	}

	text := strings.Join(fs.Args(), " ")
	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		text = strings.TrimRight(string(data), "\r\n")
	}

	cfg := config.Load()
	if *levelFlag != "" {
		cfg.RecoveryLevel = *levelFlag
	}
	if *sizeFlag > 0 {
		cfg.QRSize = *sizeFlag
	}

	svc := openServices(cfg, cliLogger())
	defer svc.close()

	opts := generateOptions{out: *outFlag, size: cfg.QRSize, save: !*noSaveFlag}
	if err := runGenerate(os.Stdout, svc, text, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, common.ErrInvalidInput) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type generateOptions struct {
	out  string
	size int
	save bool
}

func runGenerate(w io.Writer, svc *services, text string, opts generateOptions) error {
	var art *render.Artifact
	if opts.save {
		res, err := svc.gen.Generate(text)
		if res.Artifact == nil {
			return err
		}
		if err != nil {
			svc.log.Warn(context.Background(), "code not saved to history", "err", err)
		}
		art = res.Artifact
	} else {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return fmt.Errorf("%w: text is empty", common.ErrInvalidInput)
		}
		a, err := render.New(svc.cfg.RecoveryLevel).Render(trimmed)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
		art = a
	}

	if opts.out == "" {
		_, err := io.WriteString(w, art.Terminal())
		return err
	}

	data, err := art.PNG(opts.size)
	if err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	if err := os.WriteFile(opts.out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.out, err)
	}
	fmt.Fprintf(w, "Saved %s (%dx%d)\n", opts.out, opts.size, opts.size)
	return nil
}
