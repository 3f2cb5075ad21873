package analysis

import "fmt"

// Action is the policy decision for one column.
type Action string

const (
	ActionKeep    Action = "KEEP"
	ActionExclude Action = "EXCLUDE"
)

// ReasonCode identifies why a column was flagged for exclusion.
type ReasonCode string

const (
	ReasonManyNulls    ReasonCode = "MANY_NULLS"
	ReasonSingleValue  ReasonCode = "SINGLE_VALUE"
	ReasonLowVariance  ReasonCode = "LOW_VARIANCE"
	ReasonManyZeros    ReasonCode = "MANY_ZEROS"
	ReasonEmptyStrings ReasonCode = "EMPTY_STRINGS"
)

// Reason is a typed reason code with its parameters, so renderers can
// format or localize the text without the policy owning presentation.
type Reason struct {
	Code    ReasonCode
	Percent float64
	Sample  interface{}
}

// String renders the reason the way reports print it, e.g.
// "MANY_ZEROS (90.0%)" or "SINGLE_VALUE (A)".
func (r Reason) String() string {
	if r.Code == ReasonSingleValue {
		return fmt.Sprintf("%s (%v)", r.Code, r.Sample)
	}
	return fmt.Sprintf("%s (%.1f%%)", r.Code, r.Percent)
}

// Verdict is the decision for one column. Reasons is empty iff the
// action is KEEP; reason order is significant and preserved.
type Verdict struct {
	Action  Action
	Reasons []Reason
}

// ThresholdConfig parameterizes the exclusion policy. All fields are
// required by Decide; the relaxed/strict presets are the caller-level
// defaults. ZeroThresholdPercent is shared by the many-zeros and
// empty-strings rules. A LowVarianceThresholdPercent of 0 disables the
// low-variance rule.
type ThresholdConfig struct {
	NullThresholdPercent        float64
	ZeroThresholdPercent        float64
	LowVarianceThresholdPercent float64
}

// RelaxedThresholds returns the default preset: nulls >= 90%,
// zeros/empties >= 80%, low-variance disabled.
func RelaxedThresholds() ThresholdConfig {
	return ThresholdConfig{
		NullThresholdPercent: 90,
		ZeroThresholdPercent: 80,
	}
}

// StrictThresholds returns the strict preset: nulls >= 70%,
// zeros/empties >= 90%, low variance < 2%.
func StrictThresholds() ThresholdConfig {
	return ThresholdConfig{
		NullThresholdPercent:        70,
		ZeroThresholdPercent:        90,
		LowVarianceThresholdPercent: 2,
	}
}

// Validate checks that every threshold is a percentage in [0, 100].
func (c ThresholdConfig) Validate() error {
	check := func(name string, v float64) error {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %g", name, v)
		}
		return nil
	}
	if err := check("null threshold", c.NullThresholdPercent); err != nil {
		return err
	}
	if err := check("zero threshold", c.ZeroThresholdPercent); err != nil {
		return err
	}
	return check("low variance threshold", c.LowVarianceThresholdPercent)
}

// Decide applies the exclusion policy to one column's metrics.
// Reasons accumulate in a fixed evaluation order: MANY_NULLS,
// SINGLE_VALUE, LOW_VARIANCE, MANY_ZEROS, EMPTY_STRINGS. The result is
// deterministic for identical inputs.
func Decide(m ColumnMetrics, thresholds ThresholdConfig) Verdict {
	var reasons []Reason

	if m.NullPercent >= thresholds.NullThresholdPercent {
		reasons = append(reasons, Reason{Code: ReasonManyNulls, Percent: m.NullPercent})
	}

	singleValue := m.NonNullCount > 0 && m.DistinctCount == 1
	if singleValue {
		reasons = append(reasons, Reason{Code: ReasonSingleValue, Sample: m.SampleValue})
	}

	if thresholds.LowVarianceThresholdPercent > 0 && !singleValue &&
		m.DistinctCount > 1 && m.DistinctPercent < thresholds.LowVarianceThresholdPercent {
		reasons = append(reasons, Reason{Code: ReasonLowVariance, Percent: m.DistinctPercent})
	}

	if m.Kind == KindNumeric && m.ZeroPercent >= thresholds.ZeroThresholdPercent {
		reasons = append(reasons, Reason{Code: ReasonManyZeros, Percent: m.ZeroPercent})
	}

	if m.Kind == KindText && m.EmptyStringPercent >= thresholds.ZeroThresholdPercent {
		reasons = append(reasons, Reason{Code: ReasonEmptyStrings, Percent: m.EmptyStringPercent})
	}

	if len(reasons) > 0 {
		return Verdict{Action: ActionExclude, Reasons: reasons}
	}
	return Verdict{Action: ActionKeep}
}
