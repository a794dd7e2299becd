package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sadopc/qrdeck/internal/camera"
	"github.com/sadopc/qrdeck/internal/config"
	"github.com/sadopc/qrdeck/internal/core/history"
)

func scanCmd() {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	noSaveFlag := fs.Bool("no-save", false, "Do not add decoded text to history")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qrdeck scan <image> [image...] [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Decode QR codes from PNG or JPEG files and print their text.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0  Every image decoded\n")
		fmt.Fprintf(os.Stderr, "  1  One or more images had no readable code\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: image path is required\n\n")
		fs.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	svc := openServices(cfg, cliLogger())
	defer svc.close()

	var store *history.Store
	if !*noSaveFlag {
		store = svc.store
	}
	failed := runScan(os.Stdout, os.Stderr, store, fs.Args())
	if failed > 0 {
		svc.close()
		os.Exit(1)
	}
}

// runScan decodes each path, printing one text per line, and returns how
// many paths failed. A nil store skips history.
func runScan(stdout, stderr io.Writer, store *history.Store, paths []string) int {
	dec := camera.NewDecoder()
	failed := 0
	for _, path := range paths {
		text, err := dec.DecodeFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintln(stdout, text)

		if store == nil {
			continue
		}
		if _, err := store.Append(text, history.OriginScanned); err != nil {
			fmt.Fprintf(stderr, "Warning: %v\n", err)
		}
	}
	return failed
}
