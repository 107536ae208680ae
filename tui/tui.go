// Package tui is the interactive trimming screen: range fields, a clickable timeline
// and an export panel driving mpv and ffmpeg through a trim.Session.
package tui

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/user/rangecut/clip"
	"github.com/user/rangecut/db"
	"github.com/user/rangecut/logging"
	"github.com/user/rangecut/pkg/timecode"
	"github.com/user/rangecut/trim"
	"github.com/user/rangecut/tui/components"
	"github.com/user/rangecut/tui/forms"
	"github.com/user/rangecut/tui/layout"
	"github.com/user/rangecut/tui/styles"
)

// timelineTop is the first line of the timeline box; the status bar sits above it.
const timelineTop = 1

// tickMsg is one poll of the player. gen ties it to the poll run that scheduled it.
type tickMsg struct {
	gen uint64
}

// exportFinishedMsg carries the result of a background export back to the event loop.
type exportFinishedMsg struct {
	result clip.Result
	err    error
}

// formKind identifies which modal form is open.
type formKind int

const (
	formNone formKind = iota
	formOpen
	formExport
	formOverwrite
)

// focusNone means neither range field has focus.
const focusNone trim.Bound = -1

// Options configures a Model.
type Options struct {
	// Source is opened on start when set
	Source string
	// OutputDir is where suggested export names point; empty means next to the source
	OutputDir string
}

// Model is the Bubbletea model for the trimming screen.
type Model struct {
	session trim.Session
	poller  trim.Poller
	player  trim.Player
	invoker *clip.Invoker
	db      *sql.DB
	opts    Options
	logger  zerolog.Logger

	// start and end mirror session.Fields; keystrokes become FieldEdited events
	start textinput.Model
	end   textinput.Model
	focus trim.Bound

	spinner spinner.Model

	form      *huh.Form
	formKind  formKind
	formPath  string
	overwrite bool

	// lastDest is the destination of the most recent export
	lastDest   string
	lastFailed bool
	// durationSaved is set once the loaded file's duration is in the history
	durationSaved bool

	showHelp bool
	quitting bool
	width    int
	height   int
}

// NewModel creates a model driving player. database may be nil.
func NewModel(player trim.Player, invoker *clip.Invoker, database *sql.DB, opts Options) *Model {
	newInput := func() textinput.Model {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "HH:MM:SS.mmm"
		ti.CharLimit = 16
		ti.Width = 14
		ti.TextStyle = styles.PrimaryText
		ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.Border)
		ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Info)
		return ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.InProgress

	m := &Model{
		session: trim.NewSession(),
		player:  player,
		invoker: invoker,
		db:      database,
		opts:    opts,
		logger:  logging.WithComponent("tui"),
		start:   newInput(),
		end:     newInput(),
		focus:   focusNone,
		spinner: sp,
	}
	m.start.SetValue(m.session.Fields.Start)
	m.end.SetValue(m.session.Fields.End)
	return m
}

// Init opens the initial source, if any.
func (m *Model) Init() tea.Cmd {
	if m.opts.Source == "" {
		return nil
	}
	return m.dispatch(trim.Opened{Path: m.opts.Source})
}

// Session returns the current trimming state.
func (m *Model) Session() trim.Session {
	return m.session
}

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(trim.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func exportCmd(inv *clip.Invoker, job clip.Job) tea.Cmd {
	return func() tea.Msg {
		result, err := inv.Export(context.Background(), job)
		return exportFinishedMsg{result: result, err: err}
	}
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return m, nil

	case tickMsg:
		if !m.poller.Accept(msg.gen) {
			return m, nil
		}
		cmd := m.dispatch(trim.ReadTick(m.player))
		m.saveDuration()
		return m, tea.Batch(cmd, tickCmd(msg.gen))

	case exportFinishedMsg:
		m.lastDest = msg.result.Job.DestPath
		m.lastFailed = msg.err != nil
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("dest", m.lastDest).Msg("export failed")
		}
		return m, m.dispatch(trim.ExportFinished{Result: msg.result, Err: msg.err})

	case spinner.TickMsg:
		if !m.session.Exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// dispatch applies ev to the session and carries out the resulting effects.
func (m *Model) dispatch(ev trim.Event) tea.Cmd {
	var effects []trim.Effect
	m.session, effects = m.session.Apply(ev)
	return m.perform(effects)
}

func (m *Model) perform(effects []trim.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		handled, err := trim.Perform(m.player, e)
		if load, ok := e.(trim.LoadSource); ok {
			if err != nil {
				m.logger.Warn().Err(err).Str("path", load.Path).Msg("player could not load source")
				cmds = append(cmds, m.dispatch(trim.LoadFailed{Path: load.Path, Err: err}))
				continue
			}
			m.recordOpened(load.Path)
		}
		if err != nil {
			m.logger.Warn().Err(err).Str("effect", fmt.Sprintf("%T", e)).Msg("player command failed")
			m.session.Status = "Error: " + err.Error()
		}
		if handled {
			continue
		}

		switch e := e.(type) {
		case trim.WriteField:
			m.input(e.Bound).SetValue(e.Text)
		case trim.StartPolling:
			if gen, started := m.poller.Start(); started {
				cmds = append(cmds, tickCmd(gen))
			}
		case trim.StopPolling:
			m.poller.Stop()
		case trim.PromptDestination:
			cmds = append(cmds, m.openForm(formExport, e))
		case trim.StartExport:
			m.lastDest = e.Job.DestPath
			if m.invoker.Busy() {
				// A cut started elsewhere still holds the encoder.
				m.lastFailed = true
				cmds = append(cmds, m.dispatch(trim.ExportFinished{Result: clip.Result{Job: e.Job}, Err: clip.ErrInFlight}))
				continue
			}
			m.lastFailed = false
			cmds = append(cmds, m.spinner.Tick, exportCmd(m.invoker, e.Job))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) input(b trim.Bound) *textinput.Model {
	if b == trim.BoundEnd {
		return &m.end
	}
	return &m.start
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.focus != focusNone {
		return m.handleFieldKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "tab":
		return m, m.setFocus(trim.BoundStart)
	case "shift+tab":
		return m, m.setFocus(trim.BoundEnd)
	case "o":
		return m, m.openForm(formOpen, nil)
	case "p":
		return m, m.dispatch(trim.PlayFull{})
	case "r":
		return m, m.dispatch(trim.PlayRange{})
	case "s":
		return m, m.dispatch(trim.Stop{})
	case "[":
		return m, m.dispatch(trim.Nudge{Bound: trim.BoundStart, Delta: -trim.NudgeStep})
	case "]":
		return m, m.dispatch(trim.Nudge{Bound: trim.BoundStart, Delta: trim.NudgeStep})
	case "{":
		return m, m.dispatch(trim.Nudge{Bound: trim.BoundEnd, Delta: -trim.NudgeStep})
	case "}":
		return m, m.dispatch(trim.Nudge{Bound: trim.BoundEnd, Delta: trim.NudgeStep})
	case "x":
		return m, m.dispatch(trim.PrepareExport{OutputDir: m.opts.OutputDir})
	}
	return m, nil
}

// handleFieldKey routes keys to the focused range field. Only changes typed by the
// user become FieldEdited events; WriteField effects set the inputs directly.
func (m *Model) handleFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.setFocus(focusNone)
		return m, nil
	case "tab", "shift+tab":
		next := trim.BoundEnd
		if m.focus == trim.BoundEnd {
			next = trim.BoundStart
		}
		return m, m.setFocus(next)
	}

	bound := m.focus
	input := m.input(bound)
	before := input.Value()

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.dispatch(trim.FieldEdited{Bound: bound, Text: input.Value()}))
}

func (m *Model) setFocus(b trim.Bound) tea.Cmd {
	m.focus = b
	m.start.Blur()
	m.end.Blur()
	if b == focusNone {
		return nil
	}
	return m.input(b).Focus()
}

// handleMouse turns a left click on the timeline bar into a ProgressClicked event.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if msg.Y != timelineTop+components.TimelineBarRow {
		return nil
	}
	cell, barWidth, ok := components.TimelineHit(msg.X, m.width)
	if !ok {
		return nil
	}

	duration, known := m.player.KnownDuration()
	return m.dispatch(trim.ProgressClicked{
		X:             float64(cell),
		Width:         float64(barWidth - 1),
		Duration:      duration,
		DurationKnown: known,
	})
}

// openForm shows a modal form. For formExport, data is the PromptDestination effect.
func (m *Model) openForm(kind formKind, data interface{}) tea.Cmd {
	m.setFocus(focusNone)
	m.formKind = kind

	switch kind {
	case formOpen:
		m.formPath = ""
		m.form = forms.NewOpenForm(&m.formPath)
	case formExport:
		prompt := data.(trim.PromptDestination)
		m.formPath = prompt.Suggested
		m.form = forms.NewExportForm(prompt.Start, prompt.End, &m.formPath)
	case formOverwrite:
		m.overwrite = false
		m.form = forms.NewConfirmOverwriteForm(m.formPath, &m.overwrite)
	}

	if m.width > 0 {
		m.form = m.form.WithWidth(m.width)
	}
	return m.form.Init()
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return m, m.closeForm(false)
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.closeForm(true)
	case huh.StateAborted:
		return m, m.closeForm(false)
	}
	return m, cmd
}

// closeForm finishes the open form. A cancelled export form or a declined overwrite
// confirms with an empty destination so the session drops the pending export.
func (m *Model) closeForm(submitted bool) tea.Cmd {
	kind := m.formKind
	m.form = nil
	m.formKind = formNone
	path := forms.ExpandHome(strings.TrimSpace(m.formPath))

	switch kind {
	case formOpen:
		if !submitted {
			return nil
		}
		return m.dispatch(trim.Opened{Path: path})

	case formExport:
		if !submitted {
			return m.dispatch(trim.ExportConfirmed{})
		}
		m.formPath = clip.EnsureMP4(path)
		if _, err := os.Stat(m.formPath); err == nil {
			return m.openForm(formOverwrite, nil)
		}
		return m.dispatch(trim.ExportConfirmed{Dest: m.formPath})

	case formOverwrite:
		if !submitted || !m.overwrite {
			return m.dispatch(trim.ExportConfirmed{})
		}
		return m.dispatch(trim.ExportConfirmed{Dest: m.formPath})
	}
	return nil
}

// recordOpened adds the source to the recent videos history.
func (m *Model) recordOpened(path string) {
	m.durationSaved = false
	if m.db == nil {
		return
	}
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	if _, err := db.EnsureVideo(m.db, path, size); err != nil {
		m.logger.Warn().Err(err).Str("path", path).Msg("failed to record opened video")
	}
}

// saveDuration stores the source duration once the player reports it.
func (m *Model) saveDuration() {
	if m.db == nil || m.durationSaved || m.session.Duration <= 0 || !m.session.Loaded() {
		return
	}
	m.durationSaved = true
	if err := db.UpdateVideoDuration(m.db, m.session.SourcePath, m.session.Duration.Milliseconds()); err != nil {
		m.logger.Warn().Err(err).Msg("failed to record video duration")
	}
}

// View renders the screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return components.HelpOverlay(m.width, m.height)
	}

	if m.width > 0 && m.width < layout.MinTerminalWidth {
		return styles.Warning.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			styles.SecondaryText.Render(fmt.Sprintf("Minimum width: %d columns", layout.MinTerminalWidth))
	}

	statusBar := components.StatusBar(components.StatusBarState{
		Status:    m.session.Status,
		Source:    m.session.SourcePath,
		Playing:   m.session.Playing,
		Looping:   m.session.Range.Looping,
		Exporting: m.session.Exporting,
	}, m.width)

	if m.form != nil {
		return statusBar + "\n\n" + m.form.View()
	}

	timeline := components.Timeline(components.TimelineState{
		Position:  m.session.Position,
		Duration:  m.session.Duration,
		Start:     m.session.Range.Start,
		End:       m.session.Range.End,
		ShowRange: m.session.Range.End > timecode.Zero,
		Looping:   m.session.Range.Looping,
	}, m.width)

	leftWidth, rightWidth, stacked := layout.PanelWidths(m.width)

	rangeBox := components.RangeFields(components.RangeFieldsState{
		StartView: m.start.View(),
		EndView:   m.end.View(),
		Focused:   m.focus != focusNone,
		Start:     m.session.Range.Start,
		End:       m.session.Range.End,
		Looping:   m.session.Range.Looping,
	}, leftWidth)

	exportBox := components.ExportBox(components.ExportBoxState{
		Exporting: m.session.Exporting,
		Spinner:   m.spinner.View(),
		Dest:      m.lastDest,
		Failed:    m.lastFailed,
		Log:       m.session.ExportLog,
	}, rightWidth)

	var panels string
	if stacked {
		panels = rangeBox + "\n" + exportBox
	} else {
		panels = layout.Row(rangeBox, exportBox, leftWidth, rightWidth)
	}

	footer := styles.SecondaryText.Render(" p play · r loop range · s stop · o open · ? help · q quit")

	return layout.Fit(statusBar+"\n"+timeline+"\n"+panels+"\n"+footer, m.width, m.height)
}

// Run starts the Bubbletea program and blocks until the user quits.
func Run(player trim.Player, invoker *clip.Invoker, database *sql.DB, opts Options) error {
	model := NewModel(player, invoker, database, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
