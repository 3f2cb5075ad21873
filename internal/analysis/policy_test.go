package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	relaxed := RelaxedThresholds()
	assert.Equal(t, 90.0, relaxed.NullThresholdPercent)
	assert.Equal(t, 80.0, relaxed.ZeroThresholdPercent)
	assert.Zero(t, relaxed.LowVarianceThresholdPercent)

	strict := StrictThresholds()
	assert.Equal(t, 70.0, strict.NullThresholdPercent)
	assert.Equal(t, 90.0, strict.ZeroThresholdPercent)
	assert.Equal(t, 2.0, strict.LowVarianceThresholdPercent)
}

func TestThresholdValidate(t *testing.T) {
	tests := []struct {
		name      string
		config    ThresholdConfig
		wantError bool
	}{
		{"relaxed preset", RelaxedThresholds(), false},
		{"strict preset", StrictThresholds(), false},
		{"boundary values", ThresholdConfig{NullThresholdPercent: 0, ZeroThresholdPercent: 100}, false},
		{"negative null", ThresholdConfig{NullThresholdPercent: -1, ZeroThresholdPercent: 80}, true},
		{"null above 100", ThresholdConfig{NullThresholdPercent: 101, ZeroThresholdPercent: 80}, true},
		{"negative variance", ThresholdConfig{NullThresholdPercent: 90, ZeroThresholdPercent: 80, LowVarianceThresholdPercent: -0.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecideManyNulls(t *testing.T) {
	m := ColumnMetrics{
		Kind: KindText, TotalRows: 10, NullCount: 9, NullPercent: 90,
		NonNullCount: 1, DistinctCount: 1, DistinctPercent: 100,
		SampleValue: "x",
	}

	v := Decide(m, RelaxedThresholds())

	assert.Equal(t, ActionExclude, v.Action)
	require.Len(t, v.Reasons, 2)
	assert.Equal(t, ReasonManyNulls, v.Reasons[0].Code)
	assert.Equal(t, ReasonSingleValue, v.Reasons[1].Code)
	assert.Equal(t, "MANY_NULLS (90.0%)", v.Reasons[0].String())
	assert.Equal(t, "SINGLE_VALUE (x)", v.Reasons[1].String())
}

func TestDecideBelowThresholdKeeps(t *testing.T) {
	m := ColumnMetrics{
		Kind: KindText, TotalRows: 10, NullCount: 8, NullPercent: 80,
		NonNullCount: 2, DistinctCount: 2, DistinctPercent: 100,
	}

	v := Decide(m, RelaxedThresholds())

	assert.Equal(t, ActionKeep, v.Action)
	assert.Empty(t, v.Reasons)
}

func TestDecideThresholdIsInclusive(t *testing.T) {
	m := ColumnMetrics{
		Kind: KindNumeric, TotalRows: 10, NonNullCount: 10,
		DistinctCount: 2, DistinctPercent: 20, ZeroPercent: 80,
	}

	v := Decide(m, RelaxedThresholds())

	assert.Equal(t, ActionExclude, v.Action)
	require.Len(t, v.Reasons, 1)
	assert.Equal(t, "MANY_ZEROS (80.0%)", v.Reasons[0].String())
}

func TestDecideSingleValueSuppressesLowVariance(t *testing.T) {
	m := ColumnMetrics{
		Kind: KindText, TotalRows: 1000, NonNullCount: 1000,
		DistinctCount: 1, DistinctPercent: 0.1, SampleValue: "A",
	}

	v := Decide(m, StrictThresholds())

	require.Len(t, v.Reasons, 1)
	assert.Equal(t, ReasonSingleValue, v.Reasons[0].Code)
}

func TestDecideLowVariance(t *testing.T) {
	m := ColumnMetrics{
		Kind: KindText, TotalRows: 1000, NonNullCount: 1000,
		DistinctCount: 3, DistinctPercent: 0.3,
	}

	strict := Decide(m, StrictThresholds())
	require.Len(t, strict.Reasons, 1)
	assert.Equal(t, ReasonLowVariance, strict.Reasons[0].Code)
	assert.Equal(t, "LOW_VARIANCE (0.3%)", strict.Reasons[0].String())

	// A zero threshold disables the rule entirely.
	relaxed := Decide(m, RelaxedThresholds())
	assert.Equal(t, ActionKeep, relaxed.Action)
}

func TestDecideEmptyStringsTextOnly(t *testing.T) {
	text := ColumnMetrics{
		Kind: KindText, TotalRows: 10, NonNullCount: 10,
		DistinctCount: 2, DistinctPercent: 20, EmptyStringPercent: 90,
	}
	v := Decide(text, RelaxedThresholds())
	require.Len(t, v.Reasons, 1)
	assert.Equal(t, ReasonEmptyStrings, v.Reasons[0].Code)

	// The same metrics on a non-text column never trigger the rule.
	other := text
	other.Kind = KindOther
	assert.Equal(t, ActionKeep, Decide(other, RelaxedThresholds()).Action)
}

func TestDecideZerosNumericOnly(t *testing.T) {
	numeric := ColumnMetrics{
		Kind: KindNumeric, TotalRows: 10, NonNullCount: 10,
		DistinctCount: 2, DistinctPercent: 20, ZeroPercent: 95,
	}
	v := Decide(numeric, RelaxedThresholds())
	require.Len(t, v.Reasons, 1)
	assert.Equal(t, ReasonManyZeros, v.Reasons[0].Code)

	temporal := numeric
	temporal.Kind = KindTemporal
	assert.Equal(t, ActionKeep, Decide(temporal, RelaxedThresholds()).Action)
}

func TestDecideAllNullColumn(t *testing.T) {
	m := ColumnMetrics{Kind: KindText, TotalRows: 5, NullCount: 5, NullPercent: 100}

	v := Decide(m, RelaxedThresholds())

	// NonNullCount is 0 so the single-value rule must not fire.
	require.Len(t, v.Reasons, 1)
	assert.Equal(t, ReasonManyNulls, v.Reasons[0].Code)
}

func TestDecideReasonOrderIsFixed(t *testing.T) {
	m := ColumnMetrics{
		Kind: KindNumeric, TotalRows: 100, NullCount: 95, NullPercent: 95,
		NonNullCount: 5, DistinctCount: 1, DistinctPercent: 20,
		ZeroPercent: 100, SampleValue: int64(0),
	}

	v := Decide(m, RelaxedThresholds())

	require.Len(t, v.Reasons, 3)
	assert.Equal(t, ReasonManyNulls, v.Reasons[0].Code)
	assert.Equal(t, ReasonSingleValue, v.Reasons[1].Code)
	assert.Equal(t, ReasonManyZeros, v.Reasons[2].Code)
}

func TestDecideDeterministic(t *testing.T) {
	m := ColumnMetrics{
		Kind: KindText, TotalRows: 50, NullCount: 46, NullPercent: 92,
		NonNullCount: 4, DistinctCount: 2, DistinctPercent: 50,
		EmptyStringPercent: 100,
	}

	first := Decide(m, StrictThresholds())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Decide(m, StrictThresholds()))
	}
}

func TestDecideLowerThresholdsNeverUnexclude(t *testing.T) {
	metrics := []ColumnMetrics{
		{Kind: KindText, TotalRows: 10, NullCount: 8, NullPercent: 80, NonNullCount: 2, DistinctCount: 2, DistinctPercent: 100},
		{Kind: KindNumeric, TotalRows: 10, NonNullCount: 10, DistinctCount: 3, DistinctPercent: 30, ZeroPercent: 85},
		{Kind: KindText, TotalRows: 10, NullCount: 9, NullPercent: 90, NonNullCount: 1, DistinctCount: 1, DistinctPercent: 100, SampleValue: "v"},
		{Kind: KindText, TotalRows: 10, NonNullCount: 10, DistinctCount: 4, DistinctPercent: 40, EmptyStringPercent: 82},
	}

	relaxed := RelaxedThresholds()
	aggressive := ThresholdConfig{NullThresholdPercent: 70, ZeroThresholdPercent: 70}

	for _, m := range metrics {
		if Decide(m, relaxed).Action == ActionExclude {
			assert.Equal(t, ActionExclude, Decide(m, aggressive).Action)
		}
	}
}
