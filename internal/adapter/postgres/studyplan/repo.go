// Package studyplan implements the plan store using PostgreSQL.
package studyplan

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/studyplanner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var (
	planColumns = []string{"id", "user_id", "topic", "created_at"}
	itemColumns = []string{"id", "plan_id", "task", "item_order", "completed", "details"}
)

// ownedBy restricts item statements to plans of userID.
func ownedBy(userID uuid.UUID) squirrel.Sqlizer {
	return squirrel.Expr("plan_id IN (SELECT id FROM study_plans WHERE user_id = ?)", userID)
}

// Repo provides study plan persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new study plan repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, tx: postgres.NewTxManager(pool)}
}

// CreatePlan inserts an empty plan and returns it with its creation time.
func (r *Repo) CreatePlan(ctx context.Context, userID uuid.UUID, topic string) (*domain.StudyPlan, error) {
	plan := domain.StudyPlan{ID: uuid.New(), UserID: userID, Topic: topic}

	query, args, err := psql.Insert("study_plans").
		Columns("id", "user_id", "topic").
		Values(plan.ID, plan.UserID, plan.Topic).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if err := q.QueryRow(ctx, query, args...).Scan(&plan.CreatedAt); err != nil {
		return nil, postgres.MapError(err, "study_plan", plan.ID)
	}
	return &plan, nil
}

// UpdateTopic renames a plan of userID.
func (r *Repo) UpdateTopic(ctx context.Context, userID, planID uuid.UUID, topic string) error {
	query, args, err := psql.Update("study_plans").
		Set("topic", topic).
		Where(squirrel.Eq{"id": planID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, "study_plan", planID, query, args)
}

// GetPlan returns a plan of userID. Plans of other users are reported as
// domain.ErrNotFound.
func (r *Repo) GetPlan(ctx context.Context, userID, planID uuid.UUID) (*domain.StudyPlan, error) {
	query, args, err := psql.Select(planColumns...).
		From("study_plans").
		Where(squirrel.Eq{"id": planID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	plan, err := scanPlan(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "study_plan", planID)
	}
	return plan, nil
}

// LatestPlan returns the most recently created plan of userID, or
// domain.ErrNotFound when there is none.
func (r *Repo) LatestPlan(ctx context.Context, userID uuid.UUID) (*domain.StudyPlan, error) {
	query, args, err := psql.Select(planColumns...).
		From("study_plans").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	plan, err := scanPlan(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "study_plan", uuid.Nil)
	}
	return plan, nil
}

// ListPlans returns all plans of userID, newest first.
func (r *Repo) ListPlans(ctx context.Context, userID uuid.UUID) ([]domain.StudyPlan, error) {
	query, args, err := psql.Select(planColumns...).
		From("study_plans").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "study_plan", uuid.Nil)
	}
	defer rows.Close()

	plans := make([]domain.StudyPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, postgres.MapError(err, "study_plan", uuid.Nil)
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "study_plan", uuid.Nil)
	}
	return plans, nil
}

// DeletePlan removes a plan of userID. Items are removed by the cascade.
func (r *Repo) DeletePlan(ctx context.Context, userID, planID uuid.UUID) error {
	query, args, err := psql.Delete("study_plans").
		Where(squirrel.Eq{"id": planID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, "study_plan", planID, query, args)
}

// DeleteOrphanPlans removes plans created before the cutoff that have no
// items. Returns the number of deleted plans.
func (r *Repo) DeleteOrphanPlans(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psql.Delete("study_plans p").
		Where(squirrel.Lt{"p.created_at": before}).
		Where("NOT EXISTS (SELECT 1 FROM study_plan_items i WHERE i.plan_id = p.id)").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "study_plan", uuid.Nil)
	}
	return tag.RowsAffected(), nil
}

// ReplaceItems deletes all items of planID and inserts one item per task
// with Order equal to its index. Both statements run in one transaction,
// joining the caller's when ctx carries one.
func (r *Repo) ReplaceItems(ctx context.Context, planID uuid.UUID, tasks []string) ([]domain.StudyPlanItem, error) {
	del, delArgs, err := psql.Delete("study_plan_items").Where(squirrel.Eq{"plan_id": planID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	items := make([]domain.StudyPlanItem, len(tasks))
	ins := psql.Insert("study_plan_items").Columns("id", "plan_id", "task", "item_order", "completed")
	for i, task := range tasks {
		items[i] = domain.StudyPlanItem{ID: uuid.New(), PlanID: planID, Task: task, Order: i}
		ins = ins.Values(items[i].ID, planID, task, i, false)
	}

	err = r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)
		if _, err := q.Exec(ctx, del, delArgs...); err != nil {
			return postgres.MapError(err, "study_plan_items", planID)
		}
		if len(tasks) == 0 {
			return nil
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "study_plan_items", planID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListItems returns the items of planID ordered by position.
func (r *Repo) ListItems(ctx context.Context, planID uuid.UUID) ([]domain.StudyPlanItem, error) {
	query, args, err := psql.Select(itemColumns...).
		From("study_plan_items").
		Where(squirrel.Eq{"plan_id": planID}).
		OrderBy("item_order").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "study_plan_items", planID)
	}
	defer rows.Close()

	items := make([]domain.StudyPlanItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, postgres.MapError(err, "study_plan_items", planID)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "study_plan_items", planID)
	}
	return items, nil
}

// GetItem returns an item whose plan belongs to userID.
func (r *Repo) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.StudyPlanItem, error) {
	query, args, err := psql.Select(itemColumns...).
		From("study_plan_items").
		Where(squirrel.Eq{"id": itemID}).
		Where(ownedBy(userID)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	it, err := scanItem(q.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "study_plan_item", itemID)
	}
	return it, nil
}

// SetCompleted stores the completion flag of an item. Writing the current
// value succeeds.
func (r *Repo) SetCompleted(ctx context.Context, userID, itemID uuid.UUID, completed bool) error {
	query, args, err := psql.Update("study_plan_items").
		Set("completed", completed).
		Where(squirrel.Eq{"id": itemID}).
		Where(ownedBy(userID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, "study_plan_item", itemID, query, args)
}

// SetDetails stores the elaboration text of an item.
func (r *Repo) SetDetails(ctx context.Context, userID, itemID uuid.UUID, details string) error {
	query, args, err := psql.Update("study_plan_items").
		Set("details", details).
		Where(squirrel.Eq{"id": itemID}).
		Where(ownedBy(userID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, "study_plan_item", itemID, query, args)
}

// execOne runs a statement that must touch exactly one row.
func (r *Repo) execOne(ctx context.Context, entity string, id uuid.UUID, query string, args []any) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func scanPlan(row pgx.Row) (*domain.StudyPlan, error) {
	var p domain.StudyPlan
	if err := row.Scan(&p.ID, &p.UserID, &p.Topic, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanItem(row pgx.Row) (*domain.StudyPlanItem, error) {
	var it domain.StudyPlanItem
	if err := row.Scan(&it.ID, &it.PlanID, &it.Task, &it.Order, &it.Completed, &it.Details); err != nil {
		return nil, err
	}
	return &it, nil
}
