package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/export"
	"github.com/sadopc/qrdeck/internal/ui/components"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
)

// previewRunes is how much of a text toasts show.
const previewRunes = 50

func (a App) generate(text string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(text) == "" {
		cmd := a.toast.Show("Input Required", "Enter some text to generate a QR code", true, 3*time.Second)
		return a, cmd
	}
	g := a.svc.Generator
	return a, func() tea.Msg {
		res, err := g.Generate(text)
		return msgs.GeneratedMsg{Result: res, Err: err}
	}
}

// recall generates from a history text, reusing the record when the text
// is still listed.
func (a App) recall(text string) tea.Cmd {
	g := a.svc.Generator
	return func() tea.Msg {
		res, err := g.Recall(text)
		return msgs.GeneratedMsg{Result: res, Err: err}
	}
}

func (a App) handleGenerated(msg msgs.GeneratedMsg) (tea.Model, tea.Cmd) {
	res := msg.Result
	if msg.Err != nil && res.Artifact == nil {
		title := "Generation Failed"
		if errors.Is(msg.Err, common.ErrInvalidInput) {
			title = "Input Required"
		}
		cmd := a.toast.Show(title, msg.Err.Error(), true, 4*time.Second)
		return a, cmd
	}

	a.generator.SetArtifact(res.Artifact, res.Reused)
	a.refreshHistory()

	switch {
	case msg.Err != nil:
		a.svc.Log.Warn(a.ctx, "generated code kept in memory only", "err", msg.Err)
		cmd := a.toast.Show("QR Code Generated!", "History could not be saved", true, 3*time.Second)
		return a, cmd
	case res.Reused:
		cmd := a.toast.Show("QR Code Generated!", "Loaded from history", false, 2*time.Second)
		return a, cmd
	default:
		cmd := a.toast.Show("QR Code Generated!", "Added to history", false, 2*time.Second)
		return a, cmd
	}
}

func (a App) copyText(text string) (tea.Model, tea.Cmd) {
	if text == "" {
		return a, nil
	}
	e := a.svc.Exporter
	return a, func() tea.Msg {
		method, err := e.Copy(text)
		return msgs.CopiedMsg{Method: method, Err: err}
	}
}

func (a App) handleCopied(msg msgs.CopiedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		cmd := a.toast.Show("Copy Failed", msg.Err.Error(), true, 3*time.Second)
		return a, cmd
	}
	cmd := a.toast.Show("Copied!", copiedText(msg.Method), false, 2*time.Second)
	return a, cmd
}

func copiedText(m export.Method) string {
	if m == export.MethodOSC52 {
		return "Sent to the terminal clipboard"
	}
	return "Text copied to clipboard"
}

func (a App) download() (tea.Model, tea.Cmd) {
	art := a.generator.Artifact()
	if art == nil {
		cmd := a.toast.Show("Input Required", "Generate a QR code first", true, 2*time.Second)
		return a, cmd
	}
	e := a.svc.Exporter
	return a, func() tea.Msg {
		path, err := e.Download(art)
		return msgs.DownloadedMsg{Path: path, Err: err}
	}
}

func (a App) handleDownloaded(msg msgs.DownloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		cmd := a.toast.Show("Download Failed", msg.Err.Error(), true, 3*time.Second)
		return a, cmd
	}
	cmd := a.toast.Show("Downloaded!", msg.Path, false, 3*time.Second)
	return a, cmd
}

func (a App) share() (tea.Model, tea.Cmd) {
	art := a.generator.Artifact()
	if art == nil {
		cmd := a.toast.Show("Input Required", "Generate a QR code first", true, 2*time.Second)
		return a, cmd
	}
	e, ctx, text := a.svc.Exporter, a.ctx, art.Text
	return a, func() tea.Msg {
		method, err := e.Share(ctx, text)
		return msgs.SharedMsg{Method: method, Err: err}
	}
}

func (a App) handleShared(msg msgs.SharedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		cmd := a.toast.Show("Share Failed", msg.Err.Error(), true, 3*time.Second)
		return a, cmd
	}
	if msg.Method == export.MethodShare {
		cmd := a.toast.Show("Shared!", "Sent to the share command", false, 2*time.Second)
		return a, cmd
	}
	cmd := a.toast.Show("Copied!", "Sharing is not set up, "+strings.ToLower(copiedText(msg.Method)), false, 3*time.Second)
	return a, cmd
}

func (a App) deleteRecord(id string) (tea.Model, tea.Cmd) {
	_, err := a.svc.Review.Delete(id)
	a.refreshHistory()
	switch {
	case errors.Is(err, common.ErrStorageUnavailable):
		a.svc.Log.Warn(a.ctx, "delete kept in memory only", "err", err)
		cmd := a.toast.Show("Item Deleted", "History could not be saved", true, 3*time.Second)
		return a, cmd
	case err != nil:
		cmd := a.toast.Show("Delete Failed", err.Error(), true, 3*time.Second)
		return a, cmd
	}
	cmd := a.toast.Show("Item Deleted", "Removed from history", false, 2*time.Second)
	return a, cmd
}

func (a App) confirmClear() (tea.Model, tea.Cmd) {
	n := a.svc.Store.Len()
	if n == 0 {
		cmd := a.toast.Show("History Cleared", "History is already empty", false, 2*time.Second)
		return a, cmd
	}
	noun := "items"
	if n == 1 {
		noun = "item"
	}
	a.modal.ShowDestructive(
		"Clear History",
		fmt.Sprintf("Delete all %d %s? This cannot be undone.", n, noun),
		"Clear",
		msgs.ConfirmClearHistoryMsg{},
	)
	a.setMode(msgs.ModeModal)
	return a, nil
}

func (a App) clearHistory() (tea.Model, tea.Cmd) {
	err := a.svc.Review.ClearAll()
	a.refreshHistory()
	switch {
	case errors.Is(err, common.ErrStorageUnavailable):
		a.svc.Log.Warn(a.ctx, "clear kept in memory only", "err", err)
		cmd := a.toast.Show("History Cleared", "History could not be saved", true, 3*time.Second)
		return a, cmd
	case err != nil:
		cmd := a.toast.Show("Clear Failed", err.Error(), true, 3*time.Second)
		return a, cmd
	}
	cmd := a.toast.Show("History Cleared", "All items removed", false, 2*time.Second)
	return a, cmd
}

// scanPreview is the toast text for a scanned record.
func scanPreview(text string) string {
	return components.Ellipsize(strings.ReplaceAll(text, "\n", " "), previewRunes)
}
