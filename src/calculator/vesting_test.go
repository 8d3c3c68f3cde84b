package calculator

import (
	"math"
	"testing"

	"vesting-estimator/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceSchedule(t *testing.T, totalTokens float64) *models.MVestingSchedule {
	t.Helper()
	schedule, err := GenerateSchedule(totalTokens, day("2025-01-01"), day("2025-07-01"), day("2027-01-01"), 24, 0.25)
	require.NoError(t, err)
	return schedule
}

// -----------------------------------------------------------------------------

func TestGenerateSchedule_ReferenceScenario(t *testing.T) {
	// 240 tokens over 24 months with a 25% distribution tranche.
	schedule := referenceSchedule(t, 240)

	assert.Equal(t, 10.0, schedule.MonthlyVesting)
	assert.Equal(t, 60.0, schedule.TokensAtDistribution)
	assert.Len(t, schedule.Events, 26) // start + 24 monthly + end
}

func TestGenerateSchedule_EventStructure(t *testing.T) {
	schedule := referenceSchedule(t, 240)

	first := schedule.Events[0]
	assert.Equal(t, models.VestingEventStart, first.Type)
	assert.Equal(t, "2025-01-01", first.Date)
	assert.Equal(t, 0.0, first.Tokens)
	assert.Equal(t, 0.0, first.Percentage)

	last := schedule.Events[len(schedule.Events)-1]
	assert.Equal(t, models.VestingEventEnd, last.Type)
	assert.Equal(t, "2027-01-01", last.Date)
	assert.Equal(t, 0.0, last.Tokens)
	assert.Equal(t, 100.0, last.Percentage)

	// Exactly one distribution event, on the configured date.
	distributions := 0
	for _, ev := range schedule.Events {
		if ev.Type == models.VestingEventDistribution {
			distributions++
			assert.Equal(t, "2025-07-01", ev.Date)
			assert.Equal(t, schedule.MonthlyVesting, ev.Tokens)
		}
	}
	assert.Equal(t, 1, distributions)

	// Events ordered by date ascending.
	for i := 1; i < len(schedule.Events); i++ {
		assert.LessOrEqual(t, schedule.Events[i-1].Date, schedule.Events[i].Date)
	}
}

func TestGenerateSchedule_MonthlySumEqualsTotal(t *testing.T) {
	for _, tc := range []struct {
		total  float64
		months int
	}{
		{240, 24},
		{3794.4664, 24},
		{1, 7},
		{0, 12},
	} {
		schedule, err := GenerateSchedule(tc.total, day("2025-01-01"), day("2025-07-01"), day("2027-01-01"), tc.months, 0.25)
		require.NoError(t, err)

		sum := 0.0
		for _, ev := range schedule.Events {
			if ev.Type == models.VestingEventMonthly || ev.Type == models.VestingEventDistribution {
				sum += ev.Tokens
			}
		}

		if tc.total == 0 {
			assert.Equal(t, 0.0, sum)
		} else {
			assert.InEpsilon(t, tc.total, sum, 1e-9)
		}
	}
}

func TestGenerateSchedule_DistributionTrancheIsPolicyNotLinear(t *testing.T) {
	// 6 of 24 months elapsed would be 25% linearly; use a fraction that
	// differs so the decoupling is visible.
	schedule, err := GenerateSchedule(100, day("2025-01-01"), day("2025-07-01"), day("2027-01-01"), 24, 0.4)
	require.NoError(t, err)

	assert.Equal(t, 40.0, schedule.TokensAtDistribution)
	assert.Equal(t, 0.4, schedule.TokensAtDistribution/schedule.TotalTokens)
}

func TestGenerateSchedule_CumulativePercentages(t *testing.T) {
	schedule := referenceSchedule(t, 240)

	month := 0
	for _, ev := range schedule.Events {
		if ev.Type != models.VestingEventMonthly && ev.Type != models.VestingEventDistribution {
			continue
		}
		month++
		assert.InDelta(t, 100*float64(month)/24, ev.Percentage, 1e-12)
	}
	assert.Equal(t, 24, month)
}

func TestGenerateSchedule_MonthEndDatesStayValid(t *testing.T) {
	// Oct 31 start: +1 month normalizes to Dec 1 per calendar-month addition,
	// so Dec 1 is the first on-grid distribution date.
	schedule, err := GenerateSchedule(120, day("2024-10-31"), day("2024-12-01"), day("2026-10-31"), 24, 0.25)
	require.NoError(t, err)

	assert.Equal(t, "2024-12-01", schedule.Events[1].Date)
	assert.Equal(t, models.VestingEventDistribution, schedule.Events[1].Type)

	// Nov 30 is off the normalized grid and must be rejected.
	_, err = GenerateSchedule(120, day("2024-10-31"), day("2024-11-30"), day("2026-10-31"), 24, 0.25)
	assert.Error(t, err)
}

func TestGenerateSchedule_RejectsMisconfiguredWindows(t *testing.T) {
	cases := []struct {
		name             string
		total            float64
		start, dist, end string
		months           int
		fraction         float64
	}{
		{"negative tokens", -1, "2025-01-01", "2025-07-01", "2027-01-01", 24, 0.25},
		{"zero duration", 100, "2025-01-01", "2025-07-01", "2027-01-01", 0, 0.25},
		{"negative duration", 100, "2025-01-01", "2025-07-01", "2027-01-01", -3, 0.25},
		{"start equals end", 100, "2025-01-01", "2025-07-01", "2025-01-01", 24, 0.25},
		{"distribution before start", 100, "2025-01-01", "2024-07-01", "2027-01-01", 24, 0.25},
		{"distribution after end", 100, "2025-01-01", "2027-06-01", "2027-01-01", 24, 0.25},
		{"distribution off the monthly grid", 100, "2025-01-01", "2025-07-02", "2027-01-01", 24, 0.25},
		{"fraction above one", 100, "2025-01-01", "2025-07-01", "2027-01-01", 24, 1.5},
		{"fraction below zero", 100, "2025-01-01", "2025-07-01", "2027-01-01", 24, -0.1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateSchedule(tc.total, day(tc.start), day(tc.dist), day(tc.end), tc.months, tc.fraction)
			assert.Error(t, err)
		})
	}
}

// -----------------------------------------------------------------------------

func TestTokensAvailableAt_DistributionGate(t *testing.T) {
	schedule := referenceSchedule(t, 240)

	// Five monthly tranches have nominally vested by June, but nothing is
	// available before the distribution date.
	assert.Equal(t, 0.0, TokensAvailableAt(schedule, day("2024-12-31")))
	assert.Equal(t, 0.0, TokensAvailableAt(schedule, day("2025-01-01")))
	assert.Equal(t, 0.0, TokensAvailableAt(schedule, day("2025-06-30")))

	// On the distribution date all six elapsed tranches unlock at once.
	assert.InDelta(t, 60.0, TokensAvailableAt(schedule, day("2025-07-01")), 1e-9)

	// Accumulation continues monthly afterwards.
	assert.InDelta(t, 70.0, TokensAvailableAt(schedule, day("2025-08-01")), 1e-9)
	assert.InDelta(t, 240.0, TokensAvailableAt(schedule, day("2027-01-01")), 1e-9)
	assert.InDelta(t, 240.0, TokensAvailableAt(schedule, day("2030-01-01")), 1e-9)
}

func TestTokensAvailableAt_ConsistentWithDistributionTranche(t *testing.T) {
	schedule := referenceSchedule(t, 240)

	// With the reference constants (6 of 24 months, 25%) the policy tranche
	// and the accumulated monthly sum coincide at the distribution date.
	assert.InDelta(t, schedule.TokensAtDistribution, TokensAvailableAt(schedule, day("2025-07-01")), 1e-9)
}

// -----------------------------------------------------------------------------

func TestVestingProgress_Bounds(t *testing.T) {
	schedule := referenceSchedule(t, 240)

	assert.Equal(t, 0.0, VestingProgress(schedule, day("2024-06-01")))
	assert.Equal(t, 0.0, VestingProgress(schedule, day("2025-01-01")))
	assert.Equal(t, 100.0, VestingProgress(schedule, day("2027-01-01")))
	assert.Equal(t, 100.0, VestingProgress(schedule, day("2028-01-01")))

	mid := VestingProgress(schedule, day("2026-01-01"))
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 100.0)
	assert.InDelta(t, 50.0, mid, 0.2) // two-year window, one year in
}

func TestVestingProgress_MonotonicallyNonDecreasing(t *testing.T) {
	schedule := referenceSchedule(t, 240)

	prev := math.Inf(-1)
	for d := day("2024-12-01"); d.Before(day("2027-02-01")); d = d.AddDate(0, 0, 7) {
		p := VestingProgress(schedule, d)
		assert.GreaterOrEqual(t, p, prev, "progress regressed at %s", d)
		prev = p
	}
}

// -----------------------------------------------------------------------------

func TestNextMilestone(t *testing.T) {
	schedule := referenceSchedule(t, 240)

	next := NextMilestone(schedule, day("2025-03-01"))
	require.NotNil(t, next)
	assert.Equal(t, models.VestingEventDistribution, next.Type)
	assert.Equal(t, "2025-07-01", next.Date)

	next = NextMilestone(schedule, day("2025-07-01"))
	require.NotNil(t, next)
	assert.Equal(t, models.VestingEventEnd, next.Type)

	assert.Nil(t, NextMilestone(schedule, day("2027-01-01")))
}
