package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/qrdeck/internal/config"
	"github.com/sadopc/qrdeck/internal/core/generate"
	"github.com/sadopc/qrdeck/internal/core/history"
	"github.com/sadopc/qrdeck/internal/core/review"
	"github.com/sadopc/qrdeck/internal/core/scan"
	"github.com/sadopc/qrdeck/internal/core/state"
	"github.com/sadopc/qrdeck/internal/export"
	"github.com/sadopc/qrdeck/internal/logging"
	"github.com/sadopc/qrdeck/internal/ui/components"
	"github.com/sadopc/qrdeck/internal/ui/layout"
	"github.com/sadopc/qrdeck/internal/ui/msgs"
	"github.com/sadopc/qrdeck/internal/ui/panels/generator"
	historyview "github.com/sadopc/qrdeck/internal/ui/panels/history"
	"github.com/sadopc/qrdeck/internal/ui/panels/scanner"
	"github.com/sadopc/qrdeck/internal/ui/theme"
)

// scanBuffer is how many decodes may queue before the TUI drains them.
const scanBuffer = 64

// Services are the collaborators the TUI drives. All of them are safe
// for use from tea.Cmd goroutines.
type Services struct {
	Store     *history.Store
	Scanner   *scan.Producer
	Generator *generate.Producer
	Review    *review.Consumer
	Exporter  *export.Exporter
	Log       logging.Logger

	// CameraSource is shown in the scanner view.
	CameraSource string
	HasCamera    bool
}

// App is the root Bubble Tea model.
type App struct {
	scanner   scanner.Model
	generator generator.Model
	history   historyview.Model

	nav            components.Nav
	statusBar      components.StatusBar
	commandPalette components.CommandPalette
	help           components.Help
	toast          components.Toast
	modal          components.Modal

	svc        Services
	store      *state.Store
	cfg        config.Config
	scanEvents chan scan.Event
	ctx        context.Context
	cancel     context.CancelFunc
	// cancelScan ends the camera session requested by start number scanSeq.
	cancelScan context.CancelFunc
	scanSeq    int

	mode       msgs.AppMode
	navVisible bool
	layout     layout.Layout
	keys       KeyMap

	theme  theme.Theme
	styles theme.Styles

	width  int
	height int
	ready  bool
}

// New creates a new App model. The app registers itself as the scanner's
// event observer.
func New(cfg config.Config, svc Services) App {
	if svc.Log == nil {
		svc.Log = logging.Nop()
	}
	t := theme.Resolve(cfg.Theme)
	s := theme.NewStyles(t)
	ctx, cancel := context.WithCancel(context.Background())

	a := App{
		scanner:   scanner.New(t, s, svc.CameraSource, svc.HasCamera),
		generator: generator.New(t, s),
		history:   historyview.New(t, s),

		nav:            components.NewNav(t, s),
		statusBar:      components.NewStatusBar(t, s),
		commandPalette: components.NewCommandPalette(t, s),
		help:           components.NewHelp(t, s),
		toast:          components.NewToast(t, s),
		modal:          components.NewModal(t, s),

		svc:        svc,
		store:      state.NewStore(),
		cfg:        cfg,
		scanEvents: make(chan scan.Event, scanBuffer),
		ctx:        ctx,
		cancel:     cancel,

		mode:       msgs.ModeNormal,
		navVisible: true,
		keys:       DefaultKeyMap(),

		theme:  t,
		styles: s,
	}

	events := a.scanEvents
	log := svc.Log
	svc.Scanner.OnEvent(func(ev scan.Event) {
		// Runs under the producer lock, so it must never block.
		select {
		case events <- ev:
		default:
			log.Warn(context.Background(), "scan event dropped, ui is behind", "id", ev.Record.ID)
		}
	})

	a.refreshHistory()
	for _, rec := range a.svc.Review.View() {
		if rec.Origin == history.OriginScanned {
			last := rec
			a.store.RecordScan(last)
			a.scanner.SetLast(&last)
			a.statusBar.SetLastScan(last.CreatedAt)
			break
		}
	}
	a.syncView()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return waitForScan(a.scanEvents)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = layout.HandleResize(msg, a.navVisible)
		a.resizePanels()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case msgs.SwitchViewMsg:
		cmd := a.switchView(msg.View)
		return a, cmd

	case msgs.NextViewMsg:
		cmd := a.viewChanged(a.store.NextView())
		return a, cmd

	case msgs.PrevViewMsg:
		cmd := a.viewChanged(a.store.PrevView())
		return a, cmd

	case msgs.ToggleNavMsg:
		a.navVisible = !a.navVisible
		a.layout = layout.Calculate(a.width, a.height, a.navVisible)
		a.resizePanels()
		return a, nil

	case msgs.OpenCommandPaletteMsg:
		a.setMode(msgs.ModeCommandPalette)
		a.commandPalette.Open()
		return a, nil

	case msgs.ShowHelpMsg:
		a.setMode(msgs.ModeModal)
		a.help.SetSize(a.width, a.height)
		a.help.Toggle()
		return a, nil

	case msgs.SetModeMsg:
		a.setMode(msg.Mode)
		return a, nil

	case msgs.ToastMsg:
		cmd := a.toast.Show(msg.Title, msg.Text, msg.IsError, msg.Duration)
		return a, cmd

	case msgs.SwitchThemeMsg:
		return a.handleSwitchTheme(msg)

	// Scanner
	case msgs.StartScanMsg:
		return a.startScan()
	case msgs.ScanStartedMsg:
		return a.handleScanStarted(msg)
	case msgs.StopScanMsg:
		a.endScanSession()
		return a, a.stopScan()
	case msgs.ScanStoppedMsg:
		return a.handleScanStopped(msg)
	case msgs.ScanEventMsg:
		return a.handleScanEvent(msg)
	case msgs.ToggleIlluminationMsg:
		return a, a.toggleIllumination()
	case msgs.IlluminationMsg:
		return a.handleIllumination(msg)

	// Generator
	case msgs.GenerateMsg:
		return a.generate(msg.Text)
	case msgs.GeneratedMsg:
		return a.handleGenerated(msg)
	case msgs.FillTemplateMsg:
		cmd := a.switchView(state.ViewGenerator)
		a.generator, _ = a.generator.Update(msg)
		return a, cmd
	case msgs.CopyMsg:
		return a.copyText(msg.Text)
	case msgs.CopiedMsg:
		return a.handleCopied(msg)
	case msgs.DownloadMsg:
		return a.download()
	case msgs.DownloadedMsg:
		return a.handleDownloaded(msg)
	case msgs.ShareMsg:
		return a.share()
	case msgs.SharedMsg:
		return a.handleShared(msg)

	// History
	case msgs.RecallMsg:
		a.store.Preset.Set(msg.Record.Text)
		cmd := a.switchView(state.ViewGenerator)
		return a, cmd
	case msgs.DeleteRecordMsg:
		return a.deleteRecord(msg.ID)
	case msgs.ClearHistoryMsg:
		return a.confirmClear()
	case msgs.ConfirmClearHistoryMsg:
		return a.clearHistory()
	}

	var cmd tea.Cmd
	a.toast, cmd = a.toast.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.statusBar, cmd = a.statusBar.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmd = a.updateActivePanel(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) switchView(v state.View) tea.Cmd {
	return a.viewChanged(a.store.SetView(v))
}

// viewChanged runs after the active view moved away from prev. Leaving
// the scanner releases the camera, and arriving at the generator consumes
// a pending recall.
func (a *App) viewChanged(prev state.View) tea.Cmd {
	v := a.store.ActiveView
	a.syncView()

	var cmds []tea.Cmd
	if prev == state.ViewScanner && v != state.ViewScanner {
		// A start may still be queued while the producer reads Idle.
		pending := a.endScanSession()
		if pending || a.svc.Scanner.State() != scan.Idle {
			cmds = append(cmds, a.stopScan())
		}
	}
	switch v {
	case state.ViewGenerator:
		if text, ok := a.store.Preset.Take(); ok {
			a.generator.SetText(text)
			cmds = append(cmds, a.recall(text))
		}
	case state.ViewHistory:
		a.refreshHistory()
	}
	return tea.Batch(cmds...)
}

func (a *App) syncView() {
	v := a.store.ActiveView
	a.nav.SetActive(v)
	a.statusBar.SetView(v.String())
	a.scanner.SetFocused(v == state.ViewScanner)
	a.generator.SetFocused(v == state.ViewGenerator)
	a.history.SetFocused(v == state.ViewHistory)
	if a.mode == msgs.ModeInsert || a.mode == msgs.ModeSearch {
		a.setMode(msgs.ModeNormal)
	}
}

func (a *App) setMode(mode msgs.AppMode) {
	a.mode = mode
	a.statusBar.SetMode(mode)
}

func (a *App) updateActivePanel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.store.ActiveView {
	case state.ViewScanner:
		a.scanner, cmd = a.scanner.Update(msg)
	case state.ViewGenerator:
		a.generator, cmd = a.generator.Update(msg)
	case state.ViewHistory:
		a.history, cmd = a.history.Update(msg)
	}
	return cmd
}

// refreshHistory reloads the history view and the status bar counters
// from the store.
func (a *App) refreshHistory() {
	records := a.svc.Review.View()
	a.history.SetRecords(records)
	sum := review.Summarize(records)
	a.statusBar.SetCounts(sum.Scanned, sum.Generated)
	a.statusBar.SetDegraded(a.svc.Store.Degraded() != nil)
}

func (a *App) resizePanels() {
	l := a.layout
	a.nav.SetSide(l.SideNav)
	if l.SideNav {
		a.nav.SetSize(l.NavWidth, l.ContentHeight)
	} else {
		a.nav.SetSize(l.Width, 1)
	}
	a.scanner.SetSize(l.ContentWidth, l.ContentHeight)
	a.generator.SetSize(l.ContentWidth, l.ContentHeight)
	a.history.SetSize(l.ContentWidth, l.ContentHeight)
	a.statusBar.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
}

func (a App) handleSwitchTheme(msg msgs.SwitchThemeMsg) (tea.Model, tea.Cmd) {
	if msg.Name == "" {
		a.commandPalette.OpenThemePicker(theme.Names())
		a.setMode(msgs.ModeCommandPalette)
		return a, nil
	}

	t := theme.Resolve(msg.Name)
	s := theme.NewStyles(t)
	a.theme = t
	a.styles = s

	a.scanner.SetStyles(t, s)
	a.generator.SetStyles(t, s)
	a.history.SetStyles(t, s)

	// Stateless chrome is rebuilt, then re-fed its state.
	a.nav = components.NewNav(t, s)
	a.statusBar = components.NewStatusBar(t, s)
	a.commandPalette = components.NewCommandPalette(t, s)
	a.help = components.NewHelp(t, s)
	a.toast = components.NewToast(t, s)
	a.modal = components.NewModal(t, s)

	a.refreshHistory()
	if rec := a.store.LastScanned; rec != nil {
		a.statusBar.SetLastScan(rec.CreatedAt)
	}
	a.statusBar.SetScanner(a.svc.Scanner.State().String(), a.svc.Scanner.Illuminated())
	a.setMode(msgs.ModeNormal)
	a.syncView()
	a.resizePanels()

	cmd := a.toast.Show("Theme", t.Name, false, 2*time.Second)
	return a, cmd
}

// quit releases the camera before the program exits.
func (a App) quit() (tea.Model, tea.Cmd) {
	if err := a.svc.Scanner.Stop(); err != nil {
		a.svc.Log.Warn(a.ctx, "stopping scanner on quit", "err", err)
	}
	a.cancel()
	return a, tea.Quit
}

// View implements tea.Model.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var content string
	switch a.store.ActiveView {
	case state.ViewScanner:
		content = a.scanner.View()
	case state.ViewGenerator:
		content = a.generator.View()
	case state.ViewHistory:
		content = a.history.View()
	}

	var main string
	if a.layout.SideNav {
		body := lipgloss.JoinHorizontal(lipgloss.Top, a.nav.View(), content)
		main = lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())
	} else {
		main = lipgloss.JoinVertical(lipgloss.Left, a.nav.View(), content, a.statusBar.View())
	}

	if a.commandPalette.Visible {
		main = overlayCenter(main, a.commandPalette.View(), a.width, a.height)
	}
	if a.help.Visible {
		main = overlayCenter(main, a.help.View(), a.width, a.height)
	}
	if a.modal.Visible {
		main = overlayCenter(main, a.modal.View(), a.width, a.height)
	}
	if a.toast.Visible {
		main = overlayTopRight(main, a.toast.View(), a.width)
	}

	return main
}

func overlayCenter(_, overlay string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
	)
}

func overlayTopRight(bg, overlay string, width int) string {
	gap := max(width-lipgloss.Width(overlay)-2, 0)
	positioned := lipgloss.NewStyle().MarginLeft(gap).Render(overlay)
	return positioned + "\n" + bg
}
