package tui

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/taylorsim/internal/bigmath"
	"github.com/san-kum/taylorsim/internal/metrics"
	"github.com/san-kum/taylorsim/internal/models"
	"github.com/san-kum/taylorsim/internal/tsm"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
)

const (
	historyLen  = 120
	maxPerTick  = 64
	defaultTick = 30 * time.Millisecond
)

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Live advances a stepper on a timer and plots one state variable.
type Live struct {
	name    string
	labels  []string
	digits  int
	stepper *tsm.Stepper
	drift   *metrics.EnergyDrift

	selected int
	paused   bool
	done     bool
	err      error
	perTick  int
	interval time.Duration

	history [][]float64
	hidden  []int
	current []*big.Float
	t       *big.Float
	step    int
	rate    float64
	last    time.Time
}

// NewLive prepares a live view of model integrated from x0. Nothing is
// computed until the program starts.
func NewLive(model models.Model, x0 []*big.Float, cfg tsm.Config, digits int) (*Live, error) {
	l := &Live{
		name:     model.Name(),
		labels:   model.Labels(),
		digits:   digits,
		perTick:  1,
		interval: defaultTick,
		history:  make([][]float64, model.Dim()),
		hidden:   make([]int, model.Dim()),
	}
	opts := []tsm.Option{tsm.WithObserver(l)}
	if h, ok := model.(tsm.Hamiltonian); ok {
		l.drift = metrics.NewEnergyDrift(h)
		opts = append(opts, tsm.WithObserver(l.drift))
	}

	st, err := tsm.NewStepper(model, x0, cfg, opts...)
	if err != nil {
		return nil, err
	}
	l.stepper = st
	return l, nil
}

// OnStep records the emitted state for display.
func (l *Live) OnStep(step int, t *big.Float, x []*big.Float) {
	l.step = step
	l.t = new(big.Float).Copy(t)
	l.current = l.current[:0]
	for i, v := range x {
		l.current = append(l.current, new(big.Float).Copy(v))
		f, ok := PlotValue(v)
		if !ok {
			l.hidden[i]++
			continue
		}
		l.history[i] = append(l.history[i], f)
		if len(l.history[i]) > historyLen {
			l.history[i] = l.history[i][1:]
		}
	}
}

func (l *Live) Init() tea.Cmd { return tick(l.interval) }

func (l *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return l.handleKey(msg)
	case tickMsg:
		if !l.paused && !l.done {
			l.advance(time.Time(msg))
		}
		return l, tick(l.interval)
	}
	return l, nil
}

func (l *Live) advance(now time.Time) {
	for i := 0; i < l.perTick; i++ {
		more, err := l.stepper.Next()
		if err != nil {
			l.err = err
			l.done = true
			return
		}
		if !more {
			l.done = true
			return
		}
	}
	if !l.last.IsZero() {
		if dt := now.Sub(l.last).Seconds(); dt > 0 {
			l.rate = float64(l.perTick) / dt
		}
	}
	l.last = now
}

func (l *Live) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return l, tea.Quit
	case " ", "p":
		l.paused = !l.paused
		l.last = time.Time{}
	case "tab", "right", "l":
		l.selected = (l.selected + 1) % len(l.labels)
	case "shift+tab", "left", "h":
		l.selected = (l.selected + len(l.labels) - 1) % len(l.labels)
	case "+", "=":
		l.perTick = min(l.perTick*2, maxPerTick)
	case "-", "_":
		l.perTick = max(l.perTick/2, 1)
	case "n":
		if l.paused && !l.done {
			l.advance(time.Time{})
		}
	}
	return l, nil
}

func (l *Live) status() string {
	switch {
	case l.err != nil:
		return red.Render("ABORTED")
	case l.done:
		return green.Render("FINISHED")
	case l.paused:
		return yellow.Render("PAUSED")
	default:
		return green.Render("RUNNING")
	}
}

func (l *Live) View() string {
	var b strings.Builder
	cfg := l.stepper.Config()

	b.WriteString(headerStyle.Render(strings.ToUpper(l.name)) + "\n")
	b.WriteString(fmt.Sprintf("%s  %s\n\n", l.status(),
		dim.Render(fmt.Sprintf("order %d  h=%s  %d bits", cfg.Order, cfg.Step.Text('g', 6), cfg.Prec))))

	if hist := l.history[l.selected]; len(hist) > 1 {
		chart := Chart(hist, 10, 60, Caption(l.labels[l.selected], l.hidden[l.selected]))
		b.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	t := "0"
	if l.t != nil {
		t = l.t.Text('g', 10)
	}
	b.WriteString(dim.Render("step ") + white.Render(fmt.Sprintf("%d/%d", l.step, cfg.Steps)))
	b.WriteString(dim.Render("   t ") + white.Render(t))
	if l.rate > 0 {
		b.WriteString(dim.Render("   ") + white.Render(fmt.Sprintf("%.0f steps/s", l.rate)))
	}
	b.WriteString("\n\n")

	for i, v := range l.current {
		label := fmt.Sprintf("%-8s", l.labels[i])
		if i == l.selected {
			b.WriteString(cyan.Render("> "+label) + " " + white.Render(v.Text('g', l.digits)) + "\n")
		} else {
			b.WriteString(dim.Render("  "+label) + " " + v.Text('g', l.digits) + "\n")
		}
	}

	if l.drift != nil && l.step > 0 {
		b.WriteString("\n" + dim.Render("energy drift ") + magenta.Render(driftText(l.drift.MaxDrift())) + "\n")
	}
	if l.err != nil {
		b.WriteString("\n" + red.Render(l.err.Error()) + "\n")
	}

	b.WriteString("\n" + dim.Render("space pause  n step  ←/→ variable  +/- speed  q quit") + "\n")
	return b.String()
}

func driftText(d *big.Float) string {
	if d.Sign() == 0 {
		return "0"
	}
	return fmt.Sprintf("1e%.1f", bigmath.Log10(d))
}

// Err returns the error that stopped the integration, if any.
func (l *Live) Err() error { return l.err }

// Run starts the program on the terminal and blocks until the user quits.
func Run(l *Live) error {
	if _, err := tea.NewProgram(l, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return l.Err()
}
