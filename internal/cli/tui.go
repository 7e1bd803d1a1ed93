package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/searchspace/pkg/experiment"
	"github.com/matzehuels/searchspace/pkg/observability"
)

// The live view subscribes to search events through the observability hooks
// and renders one status line per algorithm while a sweep runs.

// =============================================================================
// Messages
// =============================================================================

type algoStartedMsg struct {
	label string
}

type algoImprovedMsg struct {
	label string
	best  float64
}

type algoDoneMsg struct {
	label string
	cost  float64
	err   error
}

type sweepDoneMsg struct {
	report *experiment.Report
	err    error
}

type tickMsg time.Time

// =============================================================================
// Hook Adapter
// =============================================================================

// teaSearchHooks forwards search events into a running bubbletea program.
type teaSearchHooks struct {
	program *tea.Program
}

func (h teaSearchHooks) OnSearchStart(_ context.Context, algorithm, _ string) {
	h.program.Send(algoStartedMsg{label: algorithm})
}

func (h teaSearchHooks) OnImprove(_ context.Context, algorithm string, cost float64) {
	h.program.Send(algoImprovedMsg{label: algorithm, best: cost})
}

func (h teaSearchHooks) OnSearchComplete(_ context.Context, algorithm string, cost float64, _ int, _ time.Duration, err error) {
	h.program.Send(algoDoneMsg{label: algorithm, cost: cost, err: err})
}

// =============================================================================
// SweepModel - Live Sweep Progress
// =============================================================================

type algoStatus struct {
	label   string
	running bool
	done    bool
	best    float64
	hasBest bool
	err     error
}

// SweepModel is the bubbletea model showing per-algorithm progress of one
// sweep.
type SweepModel struct {
	Title    string
	statuses []*algoStatus
	index    map[string]*algoStatus
	report   *experiment.Report
	err      error
	frame    int
	frames   []string
	quitting bool
}

// NewSweepModel creates a live view for the algorithms of cfg, in order.
func NewSweepModel(cfg experiment.Config) SweepModel {
	m := SweepModel{
		Title:  fmt.Sprintf("Sweep · %s · size %d · seed %d", cfg.Problem.Kind, cfg.Problem.Size, cfg.Problem.Seed),
		index:  make(map[string]*algoStatus),
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
	for _, ac := range cfg.Algorithms {
		st := &algoStatus{label: ac.Label}
		m.statuses = append(m.statuses, st)
		m.index[ac.Label] = st
	}
	return m
}

// Report returns the finished sweep report, if the sweep completed.
func (m SweepModel) Report() (*experiment.Report, error) {
	return m.report, m.err
}

func (m SweepModel) Init() tea.Cmd {
	return m.tick()
}

func (m SweepModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m SweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		m.frame++
		return m, m.tick()

	case algoStartedMsg:
		if st, ok := m.index[msg.label]; ok {
			st.running = true
		}

	case algoImprovedMsg:
		if st, ok := m.index[msg.label]; ok {
			st.best = msg.best
			st.hasBest = true
		}

	case algoDoneMsg:
		if st, ok := m.index[msg.label]; ok {
			st.running = false
			st.done = true
			st.best = msg.cost
			st.hasBest = msg.err == nil
			st.err = msg.err
		}

	case sweepDoneMsg:
		m.report = msg.report
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m SweepModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n\n")

	for _, st := range m.statuses {
		var icon, detail string
		switch {
		case st.err != nil:
			icon = styleIconError.Render(iconError)
			detail = StyleWarning.Render(st.err.Error())
		case st.done:
			icon = styleIconSuccess.Render(iconSuccess)
			detail = StyleValue.Render("cost " + formatCost(st.best))
		case st.running:
			icon = styleIconSpinner.Render(m.frames[m.frame%len(m.frames)])
			if st.hasBest {
				detail = StyleDim.Render("best " + formatCost(st.best))
			} else {
				detail = StyleDim.Render("searching")
			}
		default:
			icon = StyleDim.Render("·")
			detail = StyleDim.Render("queued")
		}
		fmt.Fprintf(&b, "  %s %-20s %s\n", icon, st.label, detail)
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("  q quit"))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Runner Integration
// =============================================================================

// runSweepLive runs the sweep under a live terminal view and returns the
// finished report. Search events reach the view through the observability
// hooks, which are restored when the view exits.
func runSweepLive(ctx context.Context, runner *experiment.Runner, cfg experiment.Config) (*experiment.Report, error) {
	model := NewSweepModel(cfg)
	program := tea.NewProgram(model, tea.WithContext(ctx))

	observability.SetSearchHooks(teaSearchHooks{program: program})
	defer observability.Reset()

	go func() {
		report, err := runner.Run(ctx, cfg)
		program.Send(sweepDoneMsg{report: report, err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return nil, err
	}
	done, ok := final.(SweepModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return done.Report()
}
