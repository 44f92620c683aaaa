package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/adapters/storage/member"
	domainClass "gymdesk/internal/domain/gymclass"
	domainMember "gymdesk/internal/domain/member"
	domainPayment "gymdesk/internal/domain/payment"
	domainTrainer "gymdesk/internal/domain/trainer"

	"github.com/google/uuid"
)

// SeedDemoDeps holds stores needed for demo data seeding.
type SeedDemoDeps struct {
	MemberStore  seedDemoMemberStore
	TrainerStore TrainerStore
	ClassStore   ClassStore
	PaymentStore PaymentStore
}

type seedDemoMemberStore interface {
	Save(ctx context.Context, m domainMember.Member) error
	Count(ctx context.Context, filter member.ListFilter) (int, error)
}

// ExecuteSeedDemo fills an empty database with a small demo data set so a
// fresh install has something on its dashboard. Skipped entirely when any
// member already exists; never run in production.
// PRE: Database is migrated, admin seed has run
// POST: Demo members, trainers, classes and payments exist on first run
func ExecuteSeedDemo(ctx context.Context, deps SeedDemoDeps) error {
	n, err := deps.MemberStore.Count(ctx, member.ListFilter{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now()

	trainers := []domainTrainer.Trainer{
		{ID: uuid.New().String(), Name: "Dana Reeves", Email: "dana@gymdesk.example", Phone: "021 555 0101", Specialty: domainTrainer.SpecialtyStrength, HiredAt: now.AddDate(-2, 0, 0), Status: domainTrainer.StatusActive},
		{ID: uuid.New().String(), Name: "Luis Ortega", Email: "luis@gymdesk.example", Phone: "021 555 0102", Specialty: domainTrainer.SpecialtyYoga, HiredAt: now.AddDate(-1, -3, 0), Status: domainTrainer.StatusActive},
		{ID: uuid.New().String(), Name: "Mei Chen", Email: "mei@gymdesk.example", Phone: "021 555 0103", Specialty: domainTrainer.SpecialtyCardio, HiredAt: now.AddDate(0, -8, 0), Status: domainTrainer.StatusActive},
	}
	for _, tr := range trainers {
		if err := deps.TrainerStore.Save(ctx, tr); err != nil {
			return err
		}
	}

	members := []domainMember.Member{
		{ID: uuid.New().String(), Name: "Grace Okafor", Email: "grace@example.com", Phone: "021 555 0201", Plan: domainMember.PlanPremium, JoinedAt: now.AddDate(-1, 0, 0), Status: domainMember.StatusActive},
		{ID: uuid.New().String(), Name: "Tom Baird", Email: "tom@example.com", Phone: "021 555 0202", Plan: domainMember.PlanBasic, JoinedAt: now.AddDate(0, -6, 0), Status: domainMember.StatusActive},
		{ID: uuid.New().String(), Name: "Priya Sharma", Email: "priya@example.com", Phone: "021 555 0203", Plan: domainMember.PlanStandard, JoinedAt: now.AddDate(0, -4, 0), Status: domainMember.StatusActive},
		{ID: uuid.New().String(), Name: "Jack Nolan", Email: "jack@example.com", Phone: "021 555 0204", Plan: domainMember.PlanBasic, JoinedAt: now.AddDate(0, -2, 0), Status: domainMember.StatusInactive},
	}
	for _, m := range members {
		if err := deps.MemberStore.Save(ctx, m); err != nil {
			return err
		}
	}

	classes := []domainClass.Class{
		{ID: uuid.New().String(), Name: "Morning Strength", TrainerID: trainers[0].ID, Category: domainTrainer.SpecialtyStrength, Day: domainClass.Monday, StartTime: "06:30", EndTime: "07:30", Capacity: 16, Status: domainClass.StatusScheduled},
		{ID: uuid.New().String(), Name: "Lunchtime Yoga", TrainerID: trainers[1].ID, Category: domainTrainer.SpecialtyYoga, Day: domainClass.Wednesday, StartTime: "12:15", EndTime: "13:00", Capacity: 20, Status: domainClass.StatusScheduled},
		{ID: uuid.New().String(), Name: "HIIT Express", TrainerID: trainers[2].ID, Category: domainTrainer.SpecialtyCardio, Day: domainClass.Friday, StartTime: "17:30", EndTime: "18:15", Capacity: 24, Status: domainClass.StatusScheduled},
	}
	for _, c := range classes {
		if err := deps.ClassStore.Save(ctx, c); err != nil {
			return err
		}
	}

	payments := []domainPayment.Payment{
		{ID: uuid.New().String(), MemberID: members[0].ID, Amount: 8900, Method: domainPayment.MethodCard, Status: domainPayment.StatusPaid, Reference: "INV-1001", PaidAt: now.AddDate(0, 0, -20)},
		{ID: uuid.New().String(), MemberID: members[1].ID, Amount: 3900, Method: domainPayment.MethodCash, Status: domainPayment.StatusPaid, Reference: "INV-1002", PaidAt: now.AddDate(0, 0, -12)},
		{ID: uuid.New().String(), MemberID: members[2].ID, Amount: 5900, Method: domainPayment.MethodTransfer, Status: domainPayment.StatusPaid, Reference: "INV-1003", PaidAt: now.AddDate(0, 0, -3)},
	}
	for _, p := range payments {
		if err := deps.PaymentStore.Save(ctx, p); err != nil {
			return err
		}
	}

	slog.Info("seed_event", "event", "demo_seeded",
		"trainers", len(trainers), "members", len(members),
		"classes", len(classes), "payments", len(payments))
	return nil
}
