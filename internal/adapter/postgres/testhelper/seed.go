package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

// SeedPlan creates a plan for userID with one item per task, in order.
// Returns the plan with its items.
func SeedPlan(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, topic string, tasks ...string) domain.PlanWithItems {
	t.Helper()
	return SeedPlanAt(t, pool, userID, topic, time.Now(), tasks...)
}

// SeedPlanAt is SeedPlan with an explicit creation time.
func SeedPlanAt(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, topic string, createdAt time.Time, tasks ...string) domain.PlanWithItems {
	t.Helper()
	ctx := context.Background()

	plan := domain.StudyPlan{
		ID:        uuid.New(),
		UserID:    userID,
		Topic:     topic,
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO study_plans (id, user_id, topic, created_at) VALUES ($1, $2, $3, $4)`,
		plan.ID, plan.UserID, plan.Topic, plan.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPlan insert plan: %v", err)
	}

	items := make([]domain.StudyPlanItem, 0, len(tasks))
	for i, task := range tasks {
		item := domain.StudyPlanItem{ID: uuid.New(), PlanID: plan.ID, Task: task, Order: i}
		_, err := pool.Exec(ctx,
			`INSERT INTO study_plan_items (id, plan_id, task, item_order) VALUES ($1, $2, $3, $4)`,
			item.ID, item.PlanID, item.Task, item.Order,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedPlan insert item %d: %v", i, err)
		}
		items = append(items, item)
	}

	return domain.PlanWithItems{Plan: plan, Items: items}
}
