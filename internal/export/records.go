package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/pretty"

	"github.com/sadopc/qrdeck/internal/core/history"
)

// listPreview is how much of a record's text WriteRecords prints.
const listPreview = 60

// WriteRecords prints one line per record, newest first.
func WriteRecords(w io.Writer, records []history.Record, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tORIGIN\tWHEN\tTEXT")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.ID,
			r.Origin.Label(),
			humanize.RelTime(r.CreatedAt, now, "ago", "from now"),
			preview(r.Text),
		)
	}
	return tw.Flush()
}

// WriteRecordsJSON prints records as indented JSON. With color set the
// output is syntax highlighted for a 256-color terminal.
func WriteRecordsJSON(w io.Writer, records []history.Record, color bool) error {
	if records == nil {
		records = []history.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	out := pretty.Pretty(raw)
	if color {
		out = []byte(highlightJSON(string(out)))
	}
	_, err = w.Write(out)
	return err
}

func highlightJSON(source string) string {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get("monokai")
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return buf.String()
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= listPreview {
		return text
	}
	return string(r[:listPreview-3]) + "..."
}
