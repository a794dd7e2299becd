package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/config"
	"github.com/sadopc/qrdeck/internal/core/history"
	"github.com/sadopc/qrdeck/internal/core/review"
	"github.com/sadopc/qrdeck/internal/export"
)

func historyUsage() {
	fmt.Fprintf(os.Stderr, "Usage: qrdeck history <list|export|recall|delete|clear> [args] [flags]\n\n")
	fmt.Fprintf(os.Stderr, "Subcommands:\n")
	fmt.Fprintf(os.Stderr, "  list [--search <query>]        Show entries, newest first\n")
	fmt.Fprintf(os.Stderr, "  export [--color] [--out path]   Write entries as JSON\n")
	fmt.Fprintf(os.Stderr, "  recall <id>                     Print the QR code for an entry\n")
	fmt.Fprintf(os.Stderr, "  delete <id>                     Remove one entry\n")
	fmt.Fprintf(os.Stderr, "  clear [--yes]                   Remove every entry\n")
	fmt.Fprintf(os.Stderr, "\nIds may be shortened to any unique prefix.\n")
}

func historyCmd() {
	if len(os.Args) < 3 {
		historyUsage()
		os.Exit(2)
	}
	sub, args := os.Args[2], os.Args[3:]

	fs := flag.NewFlagSet("history "+sub, flag.ExitOnError)
	searchFlag := fs.String("search", "", "Only show entries containing this text")
	colorFlag := fs.Bool("color", false, "Syntax highlight JSON output")
	outFlag := fs.String("out", "", "Write to a file instead of stdout")
	yesFlag := fs.Bool("yes", false, "Do not ask for confirmation")
	fs.Usage = historyUsage
	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	cfg := config.Load()
	svc := openServices(cfg, cliLogger())
	defer svc.close()

	var err error
	switch sub {
	case "list":
		err = historyList(os.Stdout, svc.review, *searchFlag, time.Now())
	case "export":
		w := io.Writer(os.Stdout)
		if *outFlag != "" {
			f, ferr := os.Create(*outFlag)
			if ferr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", ferr)
				os.Exit(1)
			}
			defer f.Close()
			w = f
		}
		err = export.WriteRecordsJSON(w, svc.review.View(), *colorFlag && *outFlag == "")
	case "recall":
		err = historyRecall(os.Stdout, svc.review, fs.Arg(0))
	case "delete":
		err = historyDelete(os.Stdout, svc.review, fs.Arg(0))
	case "clear":
		if !*yesFlag && !confirm(os.Stdin, os.Stderr, fmt.Sprintf("Delete all %d items? [y/N] ", svc.store.Len())) {
			fmt.Fprintln(os.Stderr, "Aborted")
			return
		}
		err = svc.review.ClearAll()
		if err == nil {
			fmt.Println("History cleared")
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown history subcommand %q\n\n", sub)
		historyUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		svc.close()
		os.Exit(1)
	}
}

func historyList(w io.Writer, c *review.Consumer, query string, now time.Time) error {
	records := c.Search(query)
	if len(records) == 0 {
		if query != "" {
			_, err := fmt.Fprintln(w, "No matches")
			return err
		}
		_, err := fmt.Fprintln(w, "No history yet")
		return err
	}
	return export.WriteRecords(w, records, now)
}

func historyRecall(w io.Writer, c *review.Consumer, id string) error {
	rec, err := resolveRecord(c, id)
	if err != nil {
		return err
	}
	res, err := c.RecallToGenerate(rec)
	if res.Artifact == nil {
		return err
	}
	if _, werr := io.WriteString(w, res.Artifact.Terminal()); werr != nil {
		return werr
	}
	fmt.Fprintln(w, rec.Text)
	return err
}

func historyDelete(w io.Writer, c *review.Consumer, id string) error {
	rec, err := resolveRecord(c, id)
	if err != nil {
		return err
	}
	if _, err := c.Delete(rec.ID); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Deleted %s\n", rec.ID)
	return err
}

// resolveRecord finds a record by id or by a unique id prefix.
func resolveRecord(c *review.Consumer, id string) (history.Record, error) {
	if id == "" {
		return history.Record{}, fmt.Errorf("%w: id is required", common.ErrInvalidInput)
	}
	if rec, ok := c.Get(id); ok {
		return rec, nil
	}

	var matches []history.Record
	for _, rec := range c.View() {
		if strings.HasPrefix(rec.ID, id) {
			matches = append(matches, rec)
		}
	}
	switch len(matches) {
	case 0:
		return history.Record{}, fmt.Errorf("%w: no entry with id %q", common.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return history.Record{}, fmt.Errorf("%w: id %q matches %d entries", common.ErrInvalidInput, id, len(matches))
	}
}

func confirm(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprint(w, prompt)
	var answer string
	if _, err := fmt.Fscanln(r, &answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
