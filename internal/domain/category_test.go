package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementFor(t *testing.T) {
	r, ok := RequirementFor(KindMaintenance)
	require.True(t, ok)
	assert.True(t, r.VehicleRequired)
	assert.False(t, r.TripRequired)

	r, ok = RequirementFor(KindTrip)
	require.True(t, ok)
	assert.True(t, r.TripRequired)
	assert.True(t, r.VehicleFromTrip)

	r, ok = RequirementFor(KindGeneral)
	require.True(t, ok)
	assert.Equal(t, Requirement{}, r)

	_, ok = RequirementFor("parking")
	assert.False(t, ok)
}

func TestKindSet(t *testing.T) {
	set := NewKindSet([]string{" Maintenance", "general", "parking"})
	assert.Equal(t, []string{"maintenance", "general"}, set.Names())

	_, ok := set.ParseKind("trip")
	assert.False(t, ok)

	kind, ok := set.ParseKind("GENERAL")
	assert.True(t, ok)
	assert.Equal(t, KindGeneral, kind)

	assert.Equal(t, DefaultKinds(), NewKindSet(nil))
	assert.Equal(t, DefaultKinds(), NewKindSet([]string{"unknown"}))

	var unset KindSet
	assert.True(t, unset.Enabled(KindTrip))
	assert.False(t, unset.Enabled("unknown"))
}

func TestBalanceMath(t *testing.T) {
	d := decimal.RequireFromString

	assert.True(t, RemainingBalance(d("2000000"), d("800000")).Equal(d("1200000")))
	assert.True(t, RemainingBalance(d("500000"), d("650000.50")).Equal(d("-150000.5")))
	assert.True(t, SettlementDifference(d("1000000"), d("1200000")).Equal(d("-200000")))
	assert.True(t, SettlementDifference(d("1300000"), d("1200000")).Equal(d("100000")))
}
