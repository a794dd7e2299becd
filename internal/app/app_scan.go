package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/qrdeck/internal/common"
	"github.com/sadopc/qrdeck/internal/core/scan"
	"github.com/sadopc/qrdeck/internal/core/state"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
)

// waitForScan blocks on the next decode. It is re-armed after every
// ScanEventMsg.
func waitForScan(ch <-chan scan.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return msgs.ScanEventMsg{Event: ev}
	}
}

func (a App) startScan() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if a.store.ActiveView != state.ViewScanner {
		cmds = append(cmds, a.switchView(state.ViewScanner))
	}
	// Already running, or a start is queued and not yet reported.
	if a.svc.Scanner.State() != scan.Idle || a.cancelScan != nil {
		return a, tea.Batch(cmds...)
	}

	a.scanner.SetError(nil)
	a.scanner.SetState(scan.Starting)
	a.statusBar.SetScanner(scan.Starting.String(), false)

	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelScan = cancel
	a.scanSeq++
	p, seq := a.svc.Scanner, a.scanSeq
	cmds = append(cmds, func() tea.Msg {
		return msgs.ScanStartedMsg{Seq: seq, Err: p.Start(ctx)}
	})
	return a, tea.Batch(cmds...)
}

func (a App) handleScanStarted(msg msgs.ScanStartedMsg) (tea.Model, tea.Cmd) {
	st := a.svc.Scanner.State()
	a.scanner.SetState(st)
	a.statusBar.SetScanner(st.String(), a.svc.Scanner.Illuminated())

	if msg.Seq != a.scanSeq {
		return a, nil
	}
	if msg.Err != nil {
		a.endScanSession()
		// A stop during start is not a failure worth reporting.
		if errors.Is(msg.Err, context.Canceled) {
			return a, nil
		}
		a.scanner.SetError(msg.Err)
		cmd := a.toast.Show("Camera Error", cameraErrorText(msg.Err), true, 4*time.Second)
		return a, cmd
	}

	// The user left the scanner before the camera came up.
	if a.store.ActiveView != state.ViewScanner {
		return a, a.stopScan()
	}
	return a, nil
}

// endScanSession cancels the session context of the last start, if any,
// and reports whether there was one.
func (a *App) endScanSession() bool {
	if a.cancelScan == nil {
		return false
	}
	a.cancelScan()
	a.cancelScan = nil
	return true
}

func (a App) stopScan() tea.Cmd {
	p := a.svc.Scanner
	return func() tea.Msg {
		return msgs.ScanStoppedMsg{Err: p.Stop()}
	}
}

func (a App) handleScanStopped(msg msgs.ScanStoppedMsg) (tea.Model, tea.Cmd) {
	st := a.svc.Scanner.State()
	a.scanner.SetState(st)
	a.statusBar.SetScanner(st.String(), false)
	if msg.Err != nil {
		cmd := a.toast.Show("Camera Error", msg.Err.Error(), true, 3*time.Second)
		return a, cmd
	}
	return a, nil
}

func (a App) handleScanEvent(msg msgs.ScanEventMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForScan(a.scanEvents)}
	ev := msg.Event

	if ev.Err != nil && !errors.Is(ev.Err, common.ErrStorageUnavailable) {
		cmds = append(cmds, a.toast.Show("Camera Error", ev.Err.Error(), true, 3*time.Second))
		return a, tea.Batch(cmds...)
	}

	rec := ev.Record
	a.store.RecordScan(rec)
	a.scanner.SetLast(&rec)
	a.statusBar.SetLastScan(rec.CreatedAt)
	a.refreshHistory()

	if ev.Err != nil {
		a.svc.Log.Warn(a.ctx, "scan kept in memory only", "err", ev.Err)
		cmds = append(cmds, a.toast.Show("QR Code Scanned!", "History could not be saved", true, 3*time.Second))
		return a, tea.Batch(cmds...)
	}
	cmds = append(cmds, a.toast.Show("QR Code Scanned!", scanPreview(rec.Text), false, 3*time.Second))
	return a, tea.Batch(cmds...)
}

func (a App) toggleIllumination() tea.Cmd {
	p := a.svc.Scanner
	return func() tea.Msg {
		on, err := p.ToggleIllumination()
		return msgs.IlluminationMsg{On: on, Err: err}
	}
}

func (a App) handleIllumination(msg msgs.IlluminationMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		text := msg.Err.Error()
		switch {
		case errors.Is(msg.Err, common.ErrScannerInactive):
			text = "Start the camera first"
		case errors.Is(msg.Err, common.ErrIlluminationUnsupported):
			text = "This camera has no flashlight"
		}
		cmd := a.toast.Show("Flashlight Error", text, true, 3*time.Second)
		return a, cmd
	}
	a.scanner.SetIlluminated(msg.On)
	a.statusBar.SetScanner(a.svc.Scanner.State().String(), msg.On)
	return a, nil
}

func cameraErrorText(err error) string {
	if errors.Is(err, common.ErrCameraUnavailable) {
		return "Camera unavailable. Check the frames directory and try again."
	}
	return err.Error()
}
