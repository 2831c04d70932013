package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/ptregime/internal/breakeven"
	"github.com/rgehrsitz/ptregime/internal/calculation"
	"github.com/rgehrsitz/ptregime/internal/calendar"
	"github.com/rgehrsitz/ptregime/internal/compare"
	"github.com/rgehrsitz/ptregime/internal/config"
	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/rgehrsitz/ptregime/internal/insights"
	"github.com/rgehrsitz/ptregime/internal/tui/scenes"
	"github.com/rgehrsitz/ptregime/internal/tui/tuimsg"
)

const tickInterval = 120 * time.Millisecond

// Options configure the TUI
type Options struct {
	Rates        *domain.RateTable       // nil uses the built-in 2025 table
	Input        *domain.CalculatorInput // nil uses the table defaults
	ScenarioPath string
	Now          func() time.Time
}

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	engine        *calculation.CalculationEngine
	compareEngine *compare.CompareEngine
	input         domain.CalculatorInput
	seq           int
	scenarioPath  string
	now           func() time.Time

	calculator *scenes.CalculatorModel
	compare    *scenes.CompareModel
	breakeven  *scenes.BreakevenModel
	insights   *scenes.InsightsModel
	scenarios  *scenes.ScenariosModel

	err error
}

// NewModel creates the model and computes the first results
func NewModel(opts Options) Model {
	rt := opts.Rates
	if rt == nil {
		rt = domain.Portugal2025()
	}
	in := domain.DefaultInput(rt)
	if opts.Input != nil {
		in = *opts.Input
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	engine := calculation.NewCalculationEngine(rt)
	m := Model{
		currentScene:  SceneCalculator,
		width:         100,
		height:        32,
		engine:        engine,
		compareEngine: compare.NewCompareEngine(engine),
		scenarioPath:  opts.ScenarioPath,
		now:           opts.Now,
		calculator:    scenes.NewCalculatorModel(in, rt),
		compare:       scenes.NewCompareModel(),
		breakeven:     scenes.NewBreakevenModel(),
		insights:      scenes.NewInsightsModel(),
		scenarios:     scenes.NewScenariosModel(),
	}
	m.input = m.calculator.Input()
	m.recalculate()
	m.seq = 1
	m.breakeven.SetRunning()
	return m
}

// Init starts the breakeven search and loads the scenario file if one was given
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{breakevenCmd(m.engine, m.input, m.seq), tick()}
	if m.scenarioPath != "" {
		cmds = append(cmds, loadScenariosCmd(m.scenarioPath))
	}
	return tea.Batch(cmds...)
}

// Input is the input currently simulated
func (m Model) Input() domain.CalculatorInput { return m.input }

// CurrentScene is the visible scene
func (m Model) CurrentScene() Scene { return m.currentScene }

// recalculate refreshes every synchronous view from m.input
func (m *Model) recalculate() {
	rt := m.engine.Rates
	set := m.engine.All(m.input)
	m.calculator.SetResults(set)

	cmp, err := m.compareEngine.Compare(context.Background(), m.input,
		compare.CompareOptions{BaseRegime: m.compare.BaseRegime()})
	if err != nil {
		m.err = err
	} else {
		m.compare.SetComparison(cmp)
	}

	gross := m.engine.Normalize(m.input).GrossAnnual()
	m.insights.SetData(scenes.InsightsData{
		Thresholds: insights.CheckThresholds(gross, rt),
		SafeSpend: []insights.SafeToSpend{
			insights.CalculateSafeToSpend(set.Get(domain.RegimeContractor), rt),
			insights.CalculateSafeToSpend(set.Get(domain.RegimeCompany), rt),
		},
		Expenses: insights.AdviseExpenses(m.input.BusinessExpenses, gross),
		Events:   calendar.Upcoming(m.now()),
	})
}

// startBreakeven launches a background search for the current input. Results
// for older inputs are dropped when they arrive.
func (m *Model) startBreakeven() tea.Cmd {
	m.seq++
	m.breakeven.SetRunning()
	return breakevenCmd(m.engine, m.input, m.seq)
}

func breakevenCmd(engine *calculation.CalculationEngine, in domain.CalculatorInput, seq int) tea.Cmd {
	return func() tea.Msg {
		gross := engine.Normalize(in).GrossAnnual()
		solver := breakeven.NewSolver(engine, breakeven.DefaultSolverOptions(engine.Rates))
		return tuimsg.BreakevenCompleteMsg{Seq: seq, Result: solver.Find(gross, in)}
	}
}

func loadScenariosCmd(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.ScenariosLoadedMsg{File: file}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}
