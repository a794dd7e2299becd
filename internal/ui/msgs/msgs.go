package msgs

import (
	"time"

	"github.com/sadopc/qrdeck/internal/core/generate"
	"github.com/sadopc/qrdeck/internal/core/history"
	"github.com/sadopc/qrdeck/internal/core/scan"
	"github.com/sadopc/qrdeck/internal/core/state"
	"github.com/sadopc/qrdeck/internal/export"
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeInsert
	ModeCommandPalette
	ModeModal
	ModeSearch
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommandPalette:
		return "COMMAND"
	case ModeModal:
		return "MODAL"
	case ModeSearch:
		return "SEARCH"
	default:
		return "UNKNOWN"
	}
}

// SwitchViewMsg activates one of the top-level views.
type SwitchViewMsg struct {
	View state.View
}

// NextViewMsg / PrevViewMsg cycle through the views.
type NextViewMsg struct{}
type PrevViewMsg struct{}

// ToggleNavMsg toggles the side navigation on wide terminals.
type ToggleNavMsg struct{}

// OpenCommandPaletteMsg opens the command palette.
type OpenCommandPaletteMsg struct{}

// ShowHelpMsg toggles the help overlay.
type ShowHelpMsg struct{}

// SetModeMsg changes the app mode.
type SetModeMsg struct {
	Mode AppMode
}

// ToastMsg shows a toast notification.
type ToastMsg struct {
	Title    string
	Text     string
	Duration time.Duration
	IsError  bool
}

// SwitchThemeMsg requests switching to a named theme.
type SwitchThemeMsg struct {
	Name string
}

// --- Scanner ---

// StartScanMsg asks the app to start the camera.
type StartScanMsg struct{}

// StopScanMsg asks the app to stop the camera.
type StopScanMsg struct{}

// ScanStartedMsg reports the outcome of a start request. Seq identifies
// the request so a superseded outcome can be told apart.
type ScanStartedMsg struct {
	Seq int
	Err error
}

// ScanStoppedMsg is emitted once the camera is released.
type ScanStoppedMsg struct {
	Err error
}

// ScanEventMsg carries one decode that reached the history store.
type ScanEventMsg struct {
	Event scan.Event
}

// ToggleIlluminationMsg asks the app to flip the torch.
type ToggleIlluminationMsg struct{}

// IlluminationMsg reports the torch setting after a toggle.
type IlluminationMsg struct {
	On  bool
	Err error
}

// --- Generator ---

// GenerateMsg requests a QR code for Text.
type GenerateMsg struct {
	Text string
}

// GeneratedMsg carries the generator's result.
type GeneratedMsg struct {
	Result generate.Result
	Err    error
}

// FillTemplateMsg replaces the generator input with a template payload.
type FillTemplateMsg struct {
	Payload string
}

// CopyMsg copies Text to the clipboard.
type CopyMsg struct {
	Text string
}

// CopiedMsg reports a copy.
type CopiedMsg struct {
	Method export.Method
	Err    error
}

// DownloadMsg saves the current code as a PNG.
type DownloadMsg struct{}

// DownloadedMsg reports a download.
type DownloadedMsg struct {
	Path string
	Err  error
}

// ShareMsg shares the current code's text.
type ShareMsg struct{}

// SharedMsg reports a share, including fallbacks to copy.
type SharedMsg struct {
	Method export.Method
	Err    error
}

// --- History ---

// RecallMsg sends a record's text to the generator.
type RecallMsg struct {
	Record history.Record
}

// DeleteRecordMsg removes one record.
type DeleteRecordMsg struct {
	ID string
}

// ClearHistoryMsg asks for confirmation before clearing the history.
type ClearHistoryMsg struct{}

// ConfirmClearHistoryMsg clears the history after confirmation.
type ConfirmClearHistoryMsg struct{}

// HistoryChangedMsg tells the history view to reload.
type HistoryChangedMsg struct {
	Records []history.Record
}
