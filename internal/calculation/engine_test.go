package calculation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rgehrsitz/ptregime/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine2025()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Rates, "Should hold a rate table")
	assert.Equal(t, 2025, engine.Rates.Metadata.FiscalYear)
	assert.IsType(t, NopLogger{}, engine.Logger, "Should default to no-op logger")

	fallback := NewCalculationEngine(nil)
	assert.NotNil(t, fallback.Rates, "nil table falls back to the built-in one")
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine2025()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_AllMatchesIndividualCalculators(t *testing.T) {
	engine := NewCalculationEngine2025()
	in := scenarioA()
	in.EmployeeGrossSalary = d("3000")

	set := engine.All(in)

	assert.Equal(t, engine.Contractor(in), set.Contractor)
	assert.Equal(t, engine.Company(in), set.Company)
	assert.Equal(t, engine.Employee(in), set.Employee)

	for _, r := range domain.AllRegimes {
		assert.Equal(t, r, set.Get(r).Regime)
		assert.Equal(t, set.Get(r), engine.Calculate(r, in))
	}
	assert.Len(t, set.List(), 3)
}

func TestCalculationEngine_LogsBreakdowns(t *testing.T) {
	engine := NewCalculationEngine2025()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	engine.All(scenarioA())
	engine.Liquidate(domain.LiquidationInput{
		AnnualGrossIncome: d("20000"),
		IncomeType:        domain.IncomeCategoryA,
		MaritalStatus:     domain.Single,
	})

	require.Len(t, logger.debug, 4)
	assert.Contains(t, logger.debug[0], "contractor: gross=80850.00")
	assert.Contains(t, logger.debug[3], "liquidation: type=A")
	assert.Empty(t, logger.errors, "breakdowns must add up")
}

func TestCalculationEngine_ConcurrentUse(t *testing.T) {
	engine := NewCalculationEngine2025()
	expected := engine.All(scenarioA())

	var wg sync.WaitGroup
	results := make([]RegimeSet, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.All(scenarioA())
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, expected, r)
	}
}

// TestLogger is a simple logger for testing
type TestLogger struct {
	mu     sync.Mutex
	debug  []string
	info   []string
	warn   []string
	errors []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.debug = append(tl.debug, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.info = append(tl.info, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.warn = append(tl.warn, fmt.Sprintf(format, args...))
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.errors = append(tl.errors, fmt.Sprintf(format, args...))
}
