// Package optimizer searches for breakeven inputs: the value of a single
// scenario input at which buying and renting leave the same net worth at
// retirement.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/rent-vs-buy/internal/calculator"
	"github.com/iwvelando/rent-vs-buy/internal/config"
	"github.com/iwvelando/rent-vs-buy/pkg/format"
	"github.com/iwvelando/rent-vs-buy/pkg/mathutil"
	"github.com/iwvelando/rent-vs-buy/pkg/optimization"
	"go.uber.org/zap"
)

// Runner evaluates the breakeven directives of a configuration.
type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
}

type evaluation struct {
	value        float64
	ownAdvantage float64
}

func (e evaluation) finite() bool {
	return !math.IsNaN(e.ownAdvantage) && !math.IsInf(e.ownAdvantage, 0)
}

// Result summarizes breakeven searches keyed by scenario name.
type Result struct {
	Summaries map[string][]optimization.Summary
}

// Empty indicates whether any breakeven searches were run.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches breakeven summaries to the matching reports.
func (r Result) Apply(reports []calculator.Report) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range reports {
		summaries, ok := r.Summaries[reports[i].Name]
		if !ok {
			continue
		}
		reports[i].Breakeven = append(reports[i].Breakeven, summaries...)
	}
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// Run executes every breakeven directive on the active scenarios. Scenarios
// with an invalid directive are skipped and logged.
func (r *Runner) Run() (*Result, error) {
	result := &Result{Summaries: make(map[string][]optimization.Summary)}

	for _, scenario := range r.conf.Scenarios {
		if !scenario.Active || scenario.Breakeven == nil {
			continue
		}
		if err := scenario.Breakeven.Validate(); err != nil {
			r.logger.Warn(fmt.Sprintf("skipping breakeven search for scenario %s", scenario.Name),
				zap.String("op", "optimizer.Run"),
				zap.Error(err),
			)
			continue
		}

		summary, err := r.solve(scenario)
		if err != nil {
			return nil, fmt.Errorf("breakeven search for scenario %s failed: %w", scenario.Name, err)
		}
		result.Summaries[scenario.Name] = append(result.Summaries[scenario.Name], summary)

		r.logger.Debug(fmt.Sprintf("breakeven search finished for scenario %s", scenario.Name),
			zap.String("op", "optimizer.Run"),
			zap.String("field", summary.Field),
			zap.Float64("value", summary.Value),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
	}

	return result, nil
}

func (r *Runner) solve(scenario config.Scenario) (optimization.Summary, error) {
	cfg := scenario.Breakeven
	field := cfg.Field
	lower, upper := *cfg.Min, *cfg.Max

	original, err := fieldValue(calculator.FromScenario(r.logger, scenario), field)
	if err != nil {
		return optimization.Summary{}, err
	}

	summary := optimization.Summary{
		Scenario:        scenario.Name,
		Field:           field,
		Original:        original,
		OriginalDisplay: formatFieldDisplay(field, original),
		Lower:           lower,
		Upper:           upper,
	}

	lowerEval, err := r.evaluate(scenario, field, lower)
	if err != nil {
		return optimization.Summary{}, err
	}
	upperEval, err := r.evaluate(scenario, field, upper)
	if err != nil {
		return optimization.Summary{}, err
	}

	if !lowerEval.finite() || !upperEval.finite() {
		summary.Value = original
		summary.ValueDisplay = summary.OriginalDisplay
		summary.Notes = []string{"owning advantage is not finite at the search bounds"}
		return summary, nil
	}

	if math.Signbit(lowerEval.ownAdvantage) == math.Signbit(upperEval.ownAdvantage) &&
		!mathutil.IsZero(lowerEval.ownAdvantage) && !mathutil.IsZero(upperEval.ownAdvantage) {
		closest := upperEval
		if math.Abs(lowerEval.ownAdvantage) < math.Abs(upperEval.ownAdvantage) {
			closest = lowerEval
		}
		favored := "buying"
		if closest.ownAdvantage < 0 {
			favored = "renting"
		}
		summary.Value = closest.value
		summary.ValueDisplay = formatFieldDisplay(field, closest.value)
		summary.OwnAdvantage = closest.ownAdvantage
		summary.Notes = []string{fmt.Sprintf(
			"no breakeven between %s and %s; %s is favored throughout",
			formatFieldDisplay(field, lower),
			formatFieldDisplay(field, upper),
			favored,
		)}
		return summary, nil
	}

	iterations := 0
	lo, hi := lowerEval, upperEval
	for iterations < cfg.MaxIterations && !settled(lo, hi, cfg.Tolerance) {
		mid, err := r.evaluate(scenario, field, lo.value+(hi.value-lo.value)/2)
		if err != nil {
			return optimization.Summary{}, err
		}
		iterations++
		if math.Signbit(mid.ownAdvantage) == math.Signbit(lo.ownAdvantage) {
			lo = mid
		} else {
			hi = mid
		}
	}

	var final evaluation
	switch {
	case mathutil.IsZero(lo.ownAdvantage):
		final = lo
	case mathutil.IsZero(hi.ownAdvantage):
		final = hi
	default:
		final, err = r.evaluate(scenario, field, snapFieldValue(field, lo.value+(hi.value-lo.value)/2))
		if err != nil {
			return optimization.Summary{}, err
		}
	}

	summary.Value = final.value
	summary.ValueDisplay = formatFieldDisplay(field, final.value)
	summary.OwnAdvantage = final.ownAdvantage
	summary.Iterations = iterations
	summary.Converged = settled(lo, hi, cfg.Tolerance)
	if !summary.Converged {
		summary.Notes = []string{fmt.Sprintf("stopped after %d iterations without reaching tolerance %g", iterations, cfg.Tolerance)}
	}
	return summary, nil
}

// settled reports whether the bracket is narrow enough or either end already
// sits within a cent of breakeven.
func settled(lo, hi evaluation, tolerance float64) bool {
	return mathutil.IsZero(lo.ownAdvantage) || mathutil.IsZero(hi.ownAdvantage) ||
		mathutil.WithinTolerance(lo.value, hi.value, tolerance)
}

func (r *Runner) evaluate(scenario config.Scenario, field string, value float64) (evaluation, error) {
	adjusted, err := withFieldValue(scenario, field, value)
	if err != nil {
		return evaluation{}, err
	}
	c := calculator.FromScenario(r.logger, adjusted)
	return evaluation{value: value, ownAdvantage: c.Retirement.Compare().OwnAdvantage}, nil
}

// withFieldValue returns a copy of the scenario with one input replaced. The
// scenario is re-applied from scratch on every evaluation so a percentage
// down payment follows the home value.
func withFieldValue(scenario config.Scenario, field string, value float64) (config.Scenario, error) {
	switch field {
	case config.BreakevenFieldRent:
		scenario.Rent.Rent = config.Float(value)
	case config.BreakevenFieldHomeValue:
		scenario.Mortgage.HomeValue = config.Float(value)
	case config.BreakevenFieldInterestRate:
		scenario.Mortgage.InterestRate = config.Float(value)
	case config.BreakevenFieldAnnualReturnRate:
		scenario.Retirement.AnnualReturnRate = config.Float(value)
	case config.BreakevenFieldAnnualHomeAppreciation:
		scenario.Retirement.AnnualHomeAppreciation = config.Float(value)
	default:
		return scenario, fmt.Errorf("breakeven field %q is not supported", field)
	}
	return scenario, nil
}

func fieldValue(c *calculator.Calculator, field string) (float64, error) {
	switch field {
	case config.BreakevenFieldRent:
		return c.Retirement.Rent(), nil
	case config.BreakevenFieldHomeValue:
		return c.Mortgage.HomeValue(), nil
	case config.BreakevenFieldInterestRate:
		return c.Mortgage.InterestRate(), nil
	case config.BreakevenFieldAnnualReturnRate:
		return c.Retirement.AnnualReturnRate(), nil
	case config.BreakevenFieldAnnualHomeAppreciation:
		return c.Retirement.AnnualHomeAppreciation(), nil
	default:
		return 0, fmt.Errorf("breakeven field %q is not supported", field)
	}
}

func snapFieldValue(field string, value float64) float64 {
	if config.IsRateField(field) {
		return value
	}
	return mathutil.Round(value)
}

func formatFieldDisplay(field string, value float64) string {
	if config.IsRateField(field) {
		return fmt.Sprintf("%.4f%%", value*100)
	}
	return format.Currency(value)
}
