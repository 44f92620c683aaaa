package projections

import (
	"context"
	"time"

	"gymdesk/internal/adapters/storage/gymclass"
	"gymdesk/internal/adapters/storage/member"
	"gymdesk/internal/adapters/storage/trainer"
	domainClass "gymdesk/internal/domain/gymclass"
	domainMember "gymdesk/internal/domain/member"
	domainTrainer "gymdesk/internal/domain/trainer"
)

// recentPaymentCount is the number of recent payments shown on the dashboard.
const recentPaymentCount = 5

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	MemberStore  MemberStore
	TrainerStore TrainerStore
	ClassStore   ClassStore
	PaymentStore PaymentStore
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	ActiveMembers    int                 `json:"active_members"`
	ActiveTrainers   int                 `json:"active_trainers"`
	ScheduledClasses int                 `json:"scheduled_classes"`
	MonthRevenue     int                 `json:"month_revenue"` // cents, paid only
	RecentPayments   []PaymentWithMember `json:"recent_payments"`
}

// QueryGetDashboard computes the summary counters shown on the landing page.
// PRE: now is the reference time for the revenue month
// POST: Returns counts and this month's paid revenue
func QueryGetDashboard(ctx context.Context, now time.Time, deps GetDashboardDeps) (DashboardResult, error) {
	var result DashboardResult

	activeMembers, err := deps.MemberStore.Count(ctx, member.ListFilter{Status: domainMember.StatusActive})
	if err != nil {
		return DashboardResult{}, err
	}
	result.ActiveMembers = activeMembers

	activeTrainers, err := deps.TrainerStore.Count(ctx, trainer.ListFilter{Status: domainTrainer.StatusActive})
	if err != nil {
		return DashboardResult{}, err
	}
	result.ActiveTrainers = activeTrainers

	scheduled, err := deps.ClassStore.Count(ctx, gymclass.ListFilter{Status: domainClass.StatusScheduled})
	if err != nil {
		return DashboardResult{}, err
	}
	result.ScheduledClasses = scheduled

	revenue, err := deps.PaymentStore.RevenueForMonth(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return DashboardResult{}, err
	}
	result.MonthRevenue = revenue

	recent, err := deps.PaymentStore.Recent(ctx, recentPaymentCount)
	if err != nil {
		return DashboardResult{}, err
	}

	members, err := deps.MemberStore.List(ctx, member.ListFilter{})
	if err != nil {
		return DashboardResult{}, err
	}
	memberNames := make(map[string]string, len(members))
	for _, m := range members {
		memberNames[m.ID] = m.Name
	}

	result.RecentPayments = make([]PaymentWithMember, 0, len(recent))
	for _, p := range recent {
		result.RecentPayments = append(result.RecentPayments, PaymentWithMember{
			ID:         p.ID,
			MemberID:   p.MemberID,
			MemberName: memberNames[p.MemberID],
			Amount:     p.Amount,
			Method:     p.Method,
			Status:     p.Status,
			Reference:  p.Reference,
			PaidAt:     p.PaidAt,
		})
	}

	return result, nil
}
