package pond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelConvertsFlows(t *testing.T) {
	m := NewModel(scenarioTwo())

	assert.InDelta(t, 0.0004, m.PondFlow(), 1e-15)
	assert.InDelta(t, 17.0/60000.0, m.HydronicFlow(), 1e-15)

	capP, capH := m.CapacityRates()
	assert.InDelta(t, 1673.6, capP, 1e-9)
	assert.InDelta(t, 1185.4667, capH, 1e-3)
	assert.False(t, m.Perturbed())
}

func TestNewModelPerturbsMatchingCapacityRates(t *testing.T) {
	p := scenarioTwo()
	p.FlowH = 24

	m := NewModel(p)
	require.True(t, m.Perturbed())
	assert.InDelta(t, 0.0004*1.001, m.PondFlow(), 1e-15)

	capP, capH := m.CapacityRates()
	assert.Greater(t, capP, capH)
	assert.InDelta(t, 1.001, capP/capH, 1e-12)
}

func TestNewModelKeepsDistinctCapacityRates(t *testing.T) {
	for _, f := range []float64{1, 10, 17, 23.9, 24.1, 60} {
		p := scenarioTwo()
		p.FlowH = f
		assert.False(t, NewModel(p).Perturbed(), "flow_h = %g", f)
	}
}

func TestHeatBalanceSubExpressions(t *testing.T) {
	m := NewModel(scenarioTwo())
	_, capH := m.CapacityRates()

	assert.InDelta(t, 0, m.Q(30), 1e-12)
	assert.InDelta(t, 1673.6*5, m.Q(25), 1e-9)

	// loop rise equals q/C_h unless the supply is clamped
	q := m.Q(24)
	assert.InDelta(t, q/capH, m.ThetaH2(24)-m.ThetaH1(24), 1e-9)
	assert.InDelta(t, 10+q*0.21/183+q/(2*capH), m.ThetaH2(24), 1e-9)
}

func TestThetaH1ClampedAtGround(t *testing.T) {
	p := scenarioTwo()
	p.FlowH = 1
	m := NewModel(p)

	for _, theta := range []float64{20, 25, 29, 30, 31} {
		assert.GreaterOrEqual(t, m.ThetaH1(theta), p.ThetaG)
	}
	assert.Equal(t, p.ThetaG, m.ThetaH1(20))
}

func TestResidualDomain(t *testing.T) {
	m := NewModel(scenarioTwo())

	t.Run("physical branch", func(t *testing.T) {
		o := m.Residual(24.208)
		require.True(t, o.Valid)
		assert.InDelta(t, 0, o.Value, 0.01)
	})

	t.Run("log argument negative", func(t *testing.T) {
		// between the two terminal difference zeros
		o := m.Residual(22)
		assert.False(t, o.Valid)
		assert.Equal(t, Sentinel, o.Value)
	})

	t.Run("residual falls away from the asymptote", func(t *testing.T) {
		near := m.Residual(22.4)
		far := m.Residual(29)
		require.True(t, near.Valid)
		require.True(t, far.Valid)
		assert.Greater(t, near.Value, 0.0)
		assert.Less(t, far.Value, 0.0)
	})
}

func TestDenominatorFollowsSmallerCapacityRate(t *testing.T) {
	p := scenarioTwo()
	m := NewModel(p)
	assert.InDelta(t, p.ThetaP1-m.ThetaH2(25), m.Denominator(25), 1e-12)

	p.FlowH = 60
	m = NewModel(p)
	assert.InDelta(t, 25-m.ThetaH1(25), m.Denominator(25), 1e-12)
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, scenarioOne().Validate())

	p := scenarioOne()
	p.FlowH = 0
	err := p.Validate()
	require.ErrorIs(t, err, ErrNonPositive)
	assert.Contains(t, err.Error(), "flow_h")
}

func TestWithWaterDefaults(t *testing.T) {
	p := Params{ThetaG: 10, ThetaP1: 30, RhoH: 1030}.WithWaterDefaults()

	assert.Equal(t, 1000.0, p.RhoP)
	assert.Equal(t, 1030.0, p.RhoH)
	assert.Equal(t, 4186.0, p.CP)
	assert.Equal(t, 4186.0, p.CH)
}
