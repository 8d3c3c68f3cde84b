package calculator

import (
	"time"

	"vesting-estimator/src/helpers"
	"vesting-estimator/src/models"
	"vesting-estimator/src/utils"
)

// -----------------------------------------------------------------------------
// VestingScheduler
// -----------------------------------------------------------------------------

// GenerateSchedule turns a token total into a calendar-accurate monthly
// vesting ledger: a zero-token start marker, one evenly sized event per
// elapsed month, the event coinciding with the distribution date re-typed
// "distribution", and a terminal 100% end marker.
//
// tokensAtDistribution is a policy constant (totalTokens x distributionFraction),
// deliberately independent of the monthly linear math. The distribution date
// must land exactly on a monthly boundary; anything else is rejected here so
// the two numbers can never silently diverge.
func GenerateSchedule(totalTokens float64, startDate, distributionDate, endDate time.Time, durationMonths int, distributionFraction float64) (*models.MVestingSchedule, error) {
	if totalTokens < 0 {
		return nil, helpers.NewValidationError("total tokens must be >= 0, got %f", totalTokens)
	}
	if durationMonths <= 0 {
		return nil, helpers.NewConfigurationError("vesting duration must be positive, got %d months", durationMonths)
	}
	if distributionFraction < 0 || distributionFraction > 1 {
		return nil, helpers.NewConfigurationError("distribution fraction must be within [0, 1], got %f", distributionFraction)
	}

	start := utils.TruncateToDay(startDate)
	distribution := utils.TruncateToDay(distributionDate)
	end := utils.TruncateToDay(endDate)

	if !start.Before(end) {
		return nil, helpers.NewConfigurationError("vesting start %s must precede end %s", utils.DayLabel(start), utils.DayLabel(end))
	}
	if !start.Before(distribution) || !distribution.Before(end) {
		return nil, helpers.NewConfigurationError("distribution date %s must fall strictly between %s and %s", utils.DayLabel(distribution), utils.DayLabel(start), utils.DayLabel(end))
	}
	if _, ok := utils.MonthsBetween(start, distribution, durationMonths); !ok {
		return nil, helpers.NewConfigurationError("distribution date %s is not an exact number of months after vesting start %s", utils.DayLabel(distribution), utils.DayLabel(start))
	}

	monthlyVesting := totalTokens / float64(durationMonths)
	distributionLabel := utils.DayLabel(distribution)

	events := make([]models.MVestingEvent, 0, durationMonths+2)
	events = append(events, models.MVestingEvent{
		Date:       utils.DayLabel(start),
		Tokens:     0,
		Percentage: 0,
		Type:       models.VestingEventStart,
	})

	for month := 1; month <= durationMonths; month++ {
		vestingDate := start.AddDate(0, month, 0)
		label := utils.DayLabel(vestingDate)

		kind := models.VestingEventMonthly
		if label == distributionLabel {
			kind = models.VestingEventDistribution
		}

		events = append(events, models.MVestingEvent{
			Date:       label,
			Tokens:     monthlyVesting,
			Percentage: 100 * float64(month) / float64(durationMonths),
			Type:       kind,
		})
	}

	events = append(events, models.MVestingEvent{
		Date:       utils.DayLabel(end),
		Tokens:     0,
		Percentage: 100,
		Type:       models.VestingEventEnd,
	})

	return &models.MVestingSchedule{
		StartDate:            utils.DayLabel(start),
		DistributionDate:     distributionLabel,
		EndDate:              utils.DayLabel(end),
		TotalTokens:          totalTokens,
		TokensAtDistribution: totalTokens * distributionFraction,
		MonthlyVesting:       monthlyVesting,
		Events:               events,
	}, nil
}

// -----------------------------------------------------------------------------

// TokensAvailableAt sums the vested tranches dated on or before date. The
// distribution date is a hard gate: before it nothing is available, no matter
// how much has nominally vested.
func TokensAvailableAt(schedule *models.MVestingSchedule, date time.Time) float64 {
	label := utils.DayLabel(date)
	if label < schedule.DistributionDate {
		return 0
	}

	available := 0.0
	for _, ev := range schedule.Events {
		if ev.Date > label {
			continue
		}
		if ev.Type == models.VestingEventMonthly || ev.Type == models.VestingEventDistribution {
			available += ev.Tokens
		}
	}
	return available
}

// -----------------------------------------------------------------------------

// VestingProgress returns the linear time fraction between start and end as a
// percentage clamped to [0, 100].
func VestingProgress(schedule *models.MVestingSchedule, asOf time.Time) float64 {
	start, err := utils.ParseDay(schedule.StartDate)
	if err != nil {
		return 0
	}
	end, err := utils.ParseDay(schedule.EndDate)
	if err != nil {
		return 0
	}

	if !asOf.After(start) {
		return 0
	}
	if !asOf.Before(end) {
		return 100
	}

	progress := float64(asOf.Sub(start)) / float64(end.Sub(start)) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// -----------------------------------------------------------------------------

// NextMilestone returns the next distribution or end event strictly after
// asOf, or nil once the schedule has run out.
func NextMilestone(schedule *models.MVestingSchedule, asOf time.Time) *models.MVestingEvent {
	label := utils.DayLabel(asOf)
	for i := range schedule.Events {
		ev := &schedule.Events[i]
		if ev.Date <= label {
			continue
		}
		if ev.Type == models.VestingEventDistribution || ev.Type == models.VestingEventEnd {
			return ev
		}
	}
	return nil
}
