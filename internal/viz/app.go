package viz

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/decaysim/internal/catalog"
	"github.com/san-kum/decaysim/internal/decay"
	"github.com/san-kum/decaysim/internal/export"
	"github.com/san-kum/decaysim/internal/storage"
)

const (
	stateMenu = iota
	stateParams
)

const (
	fieldN0 = iota
	fieldUnit
	fieldMultiple
	fieldLog
	fieldApplication
	numFields
)

// initial population slider step
const n0Step = 1e5

var fieldNames = [numFields]string{"N₀", "unit", "t½ multiple", "log scale", "application"}

// App is the interactive decay explorer.
type App struct {
	state, cursor int
	isotopes      []decay.Isotope
	iso           decay.Isotope
	units         []catalog.Unit

	n0          float64
	unitIdx     int
	multiple    float64
	logScale    bool
	application string

	field   int
	editing bool
	editBuf string

	curve     *decay.Curve
	err       error
	status    string
	warn      bool
	showNotes bool
	theme     Theme

	exportDir     string
	store         *storage.Store
	width, height int
}

type Option func(*App)

// WithStore enables saving runs with the s key.
func WithStore(st *storage.Store) Option {
	return func(a *App) { a.store = st }
}

// WithExportDir sets where CSV exports are written.
func WithExportDir(dir string) Option {
	return func(a *App) { a.exportDir = dir }
}

// WithParams preselects an isotope and parameters and opens the parameter
// screen directly.
func WithParams(iso decay.Isotope, p decay.Params, logScale bool) Option {
	return func(a *App) {
		a.selectIsotope(iso)
		a.n0 = p.Initial
		for i, u := range a.units {
			if u.Seconds == p.UnitFactor {
				a.unitIdx = i
			}
		}
		a.multiple = catalog.SnapMultiple(p.Multiple)
		a.logScale = logScale
		a.recompute()
	}
}

func NewApp(opts ...Option) App {
	a := App{
		state:     stateMenu,
		isotopes:  catalog.All(),
		units:     catalog.Units(),
		n0:        decay.DefaultInitial,
		multiple:  decay.DefaultMultiple,
		theme:     CurrentTheme,
		exportDir: ".",
		width:     100,
		height:    40,
	}
	for i, u := range a.units {
		if u == catalog.DefaultUnit {
			a.unitIdx = i
		}
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

type statusMsg string

type errMsg struct{ err error }

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
	case statusMsg:
		a.status, a.warn = string(msg), false
	case errMsg:
		a.status, a.warn = "error: "+msg.err.Error(), true
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	switch a.state {
	case stateMenu:
		return a.menuKey(msg)
	case stateParams:
		if a.editing {
			return a.editKey(msg), nil
		}
		return a.paramKey(msg)
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.isotopes)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.selectIsotope(a.isotopes[a.cursor])
		a.recompute()
	}
	return a, nil
}

func (a *App) selectIsotope(iso decay.Isotope) {
	a.iso = iso
	a.application = iso.Application
	a.state = stateParams
	a.field = fieldN0
	a.status, a.warn = "", false
	for i, it := range a.isotopes {
		if it.Name == iso.Name {
			a.cursor = i
		}
	}
}

func (a App) paramKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "esc":
		a.state, a.showNotes = stateMenu, false
		return a, nil
	case "up", "k":
		if a.field > 0 {
			a.field--
		}
		return a, nil
	case "down", "j":
		if a.field < numFields-1 {
			a.field++
		}
		return a, nil
	case "left", "h":
		a.adjust(-1)
	case "right", "l":
		a.adjust(1)
	case "enter":
		switch a.field {
		case fieldN0:
			a.editing, a.editBuf = true, strconv.FormatFloat(a.n0, 'f', -1, 64)
		case fieldApplication:
			a.editing, a.editBuf = true, a.application
		case fieldLog:
			a.logScale = !a.logScale
		}
		return a, nil
	case "t":
		a.theme = NextTheme(a.theme)
		a.status, a.warn = "theme: "+a.theme.Name, false
		return a, nil
	case "?":
		a.showNotes = !a.showNotes
		return a, nil
	case "e":
		return a, a.exportCmd()
	case "s":
		return a, a.saveCmd()
	default:
		return a, nil
	}
	a.recompute()
	return a, nil
}

func (a *App) adjust(dir int) {
	switch a.field {
	case fieldN0:
		a.n0 = max(1, a.n0+float64(dir)*n0Step)
	case fieldUnit:
		a.unitIdx = (a.unitIdx + dir + len(a.units)) % len(a.units)
	case fieldMultiple:
		a.multiple = catalog.SnapMultiple(a.multiple + float64(dir)*catalog.MultipleStep)
	case fieldLog:
		a.logScale = !a.logScale
	}
}

func (a App) editKey(msg tea.KeyMsg) App {
	switch msg.Type {
	case tea.KeyEnter:
		a.commitEdit()
		a.editing, a.editBuf = false, ""
		a.recompute()
	case tea.KeyEsc:
		a.editing, a.editBuf = false, ""
	case tea.KeyBackspace:
		if r := []rune(a.editBuf); len(r) > 0 {
			a.editBuf = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		if a.field == fieldApplication {
			a.editBuf += " "
		}
	case tea.KeyRunes:
		for _, c := range msg.Runes {
			if a.field == fieldApplication || (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' {
				a.editBuf += string(c)
			}
		}
	}
	return a
}

func (a *App) commitEdit() {
	switch a.field {
	case fieldN0:
		v, err := strconv.ParseFloat(a.editBuf, 64)
		if err != nil {
			a.status, a.warn = "error: not a number: "+a.editBuf, true
			return
		}
		a.n0 = v
	case fieldApplication:
		a.application = a.editBuf
	}
}

// Params returns the model parameters for the current widget state.
func (a App) Params() decay.Params {
	u := a.units[a.unitIdx]
	return decay.Params{
		Initial:    a.n0,
		UnitFactor: u.Seconds,
		Unit:       u.Name,
		Multiple:   a.multiple,
		Samples:    decay.DefaultSamples,
	}
}

// recompute runs the model for the current parameters. Invalid inputs
// clear the curve and surface the error instead of clamping.
func (a *App) recompute() {
	c, err := decay.NewCurve(a.iso, a.Params())
	a.curve, a.err = c, err
}

// Curve returns the current curve, or nil when the last recompute failed.
func (a App) Curve() *decay.Curve { return a.curve }

// Err returns the validation error of the last recompute.
func (a App) Err() error { return a.err }

func (a App) exportCmd() tea.Cmd {
	if a.curve == nil {
		return nil
	}
	c, dir := a.curve, a.exportDir
	return func() tea.Msg {
		path := filepath.Join(dir, export.CSVFileName(c.Isotope))
		f, err := os.Create(path)
		if err != nil {
			return errMsg{err}
		}
		defer f.Close()
		if err := export.WriteCSV(f, c); err != nil {
			return errMsg{err}
		}
		return statusMsg("exported " + path)
	}
}

func (a App) saveCmd() tea.Cmd {
	if a.curve == nil || a.store == nil {
		return nil
	}
	c, st, logScale := a.curve, a.store, a.logScale
	return func() tea.Msg {
		if err := st.Init(); err != nil {
			return errMsg{err}
		}
		id, err := st.Save(c, logScale)
		if err != nil {
			return errMsg{err}
		}
		return statusMsg("saved run " + id)
	}
}

func (a App) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateParams:
		return a.viewParams()
	}
	return ""
}

func (a App) viewMenu() string {
	var b strings.Builder
	sub := lipgloss.NewStyle().Foreground(a.theme.Muted)
	b.WriteString("\n\n    " + GradientText("DECAYSIM", a.theme.Secondary, a.theme.Primary) + "\n    " + sub.Render("radioactive decay explorer") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, iso := range a.isotopes {
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(a.theme.Secondary).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(a.theme.Text).Bold(true).Render(fmt.Sprintf("%-26s", iso.Name)),
				lipgloss.NewStyle().Foreground(a.theme.Primary).Render(iso.HalfLifeNote)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				sub.Render(fmt.Sprintf("  %-26s", iso.Name)),
				sub.Render(iso.HalfLifeNote)))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (a App) viewParams() string {
	var b strings.Builder
	sub := lipgloss.NewStyle().Foreground(a.theme.Muted)
	b.WriteString("\n  " + GradientText(strings.ToUpper(a.iso.Name), a.theme.Secondary, a.theme.Primary) + "  " + sub.Render(a.iso.DecayMode+" · t½ "+a.iso.HalfLifeNote) + "\n\n")

	for i := 0; i < numFields; i++ {
		val := a.fieldValue(i)
		if a.editing && i == a.field {
			val = a.editBuf + "_"
		}
		if i == a.field {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				lipgloss.NewStyle().Foreground(a.theme.Secondary).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(a.theme.Text).Bold(true).Render(fmt.Sprintf("%-12s", fieldNames[i])),
				lipgloss.NewStyle().Foreground(a.theme.Primary).Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", sub.Render(fmt.Sprintf("%-12s", fieldNames[i])), sub.Render(val)))
		}
	}
	b.WriteString("\n")

	if a.err != nil {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(a.theme.Error).Render(a.err.Error()) + "\n")
	} else if a.curve != nil {
		width := max(20, min(a.width-12, 100))
		b.WriteString(PlotCurve(a.curve, PlotOptions{Width: width, Height: 12, LogScale: a.logScale, Color: a.theme.Curve}) + "\n\n")
		b.WriteString("  " + MetricLabel.Render("activity ") + SparklineChart(a.curve.Activities(), min(width, 60)) + "\n\n")
		b.WriteString("  " + Separator(min(width, 60)) + "\n\n")
		b.WriteString(SummaryPanel(a.curve, a.application) + "\n")
	}

	if a.showNotes {
		b.WriteString("\n" + GlassPanel.Render(Notes) + "\n")
	}
	if a.status != "" {
		color := a.theme.Accent
		if a.warn {
			color = a.theme.Warning
		}
		b.WriteString("\n  " + lipgloss.NewStyle().Foreground(color).Render(a.status) + "\n")
	}
	b.WriteString("\n  " + hints("j/k", "select", "h/l", "adjust", "enter", "edit", "e", "csv", "s", "save", "t", "theme", "?", "notes", "esc", "back") + "\n")
	return b.String()
}

func (a App) fieldValue(i int) string {
	switch i {
	case fieldN0:
		return strconv.FormatFloat(a.n0, 'f', -1, 64)
	case fieldUnit:
		return a.units[a.unitIdx].Name
	case fieldMultiple:
		return fmt.Sprintf("%.1f × t½", a.multiple)
	case fieldLog:
		if a.logScale {
			return "on"
		}
		return "off"
	case fieldApplication:
		return a.application
	}
	return ""
}

func hints(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, KeyHint.Render(pairs[i])+Subtle.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// RunInteractive starts the full-screen application.
func RunInteractive(opts ...Option) error {
	_, err := tea.NewProgram(NewApp(opts...), tea.WithAltScreen()).Run()
	return err
}
