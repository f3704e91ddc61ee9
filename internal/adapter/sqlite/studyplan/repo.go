// Package studyplan implements the plan store on the local SQLite database.
// Identifiers are stored as text and timestamps as Unix nanoseconds.
package studyplan

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/studyplanner-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/studyplanner-backend/internal/domain"
)

var (
	planColumns = []string{"id", "user_id", "topic", "created_at"}
	itemColumns = []string{"id", "plan_id", "task", "item_order", "completed", "details"}
)

func ownedBy(userID uuid.UUID) squirrel.Sqlizer {
	return squirrel.Expr("plan_id IN (SELECT id FROM study_plans WHERE user_id = ?)", userID.String())
}

type scanner interface {
	Scan(dest ...any) error
}

// Repo provides study plan persistence backed by SQLite.
type Repo struct {
	db  *sql.DB
	tx  *sqlite.TxManager
	now func() time.Time
}

// New creates a new study plan repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db, tx: sqlite.NewTxManager(db), now: time.Now}
}

func (r *Repo) CreatePlan(ctx context.Context, userID uuid.UUID, topic string) (*domain.StudyPlan, error) {
	plan := domain.StudyPlan{ID: uuid.New(), UserID: userID, Topic: topic, CreatedAt: r.now().UTC()}

	query, args, err := squirrel.Insert("study_plans").
		Columns(planColumns...).
		Values(plan.ID.String(), userID.String(), topic, plan.CreatedAt.UnixNano()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return nil, sqlite.MapError(err, "study_plan", plan.ID)
	}
	return &plan, nil
}

func (r *Repo) UpdateTopic(ctx context.Context, userID, planID uuid.UUID, topic string) error {
	query, args, err := squirrel.Update("study_plans").
		Set("topic", topic).
		Where(squirrel.Eq{"id": planID.String(), "user_id": userID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, "study_plan", planID, query, args)
}

func (r *Repo) GetPlan(ctx context.Context, userID, planID uuid.UUID) (*domain.StudyPlan, error) {
	query, args, err := squirrel.Select(planColumns...).
		From("study_plans").
		Where(squirrel.Eq{"id": planID.String(), "user_id": userID.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	plan, err := scanPlan(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "study_plan", planID)
	}
	return plan, nil
}

func (r *Repo) LatestPlan(ctx context.Context, userID uuid.UUID) (*domain.StudyPlan, error) {
	query, args, err := squirrel.Select(planColumns...).
		From("study_plans").
		Where(squirrel.Eq{"user_id": userID.String()}).
		OrderBy("created_at DESC", "rowid DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	plan, err := scanPlan(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "study_plan", uuid.Nil)
	}
	return plan, nil
}

func (r *Repo) ListPlans(ctx context.Context, userID uuid.UUID) ([]domain.StudyPlan, error) {
	query, args, err := squirrel.Select(planColumns...).
		From("study_plans").
		Where(squirrel.Eq{"user_id": userID.String()}).
		OrderBy("created_at DESC", "rowid DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "study_plan", uuid.Nil)
	}
	defer rows.Close()

	plans := make([]domain.StudyPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, sqlite.MapError(err, "study_plan", uuid.Nil)
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err, "study_plan", uuid.Nil)
	}
	return plans, nil
}

func (r *Repo) DeletePlan(ctx context.Context, userID, planID uuid.UUID) error {
	query, args, err := squirrel.Delete("study_plans").
		Where(squirrel.Eq{"id": planID.String(), "user_id": userID.String()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, "study_plan", planID, query, args)
}

// DeleteOrphanPlans removes plans created before the cutoff that have no items.
func (r *Repo) DeleteOrphanPlans(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := squirrel.Delete("study_plans").
		Where(squirrel.Lt{"created_at": before.UTC().UnixNano()}).
		Where("NOT EXISTS (SELECT 1 FROM study_plan_items i WHERE i.plan_id = study_plans.id)").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, sqlite.MapError(err, "study_plan", uuid.Nil)
	}
	return res.RowsAffected()
}

// ReplaceItems deletes all items of planID and inserts one per task, in
// one transaction.
func (r *Repo) ReplaceItems(ctx context.Context, planID uuid.UUID, tasks []string) ([]domain.StudyPlanItem, error) {
	del, delArgs, err := squirrel.Delete("study_plan_items").Where(squirrel.Eq{"plan_id": planID.String()}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	items := make([]domain.StudyPlanItem, len(tasks))
	ins := squirrel.Insert("study_plan_items").Columns("id", "plan_id", "task", "item_order", "completed")
	for i, task := range tasks {
		items[i] = domain.StudyPlanItem{ID: uuid.New(), PlanID: planID, Task: task, Order: i}
		ins = ins.Values(items[i].ID.String(), planID.String(), task, i, 0)
	}

	err = r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := sqlite.QuerierFromCtx(ctx, r.db)
		if _, err := q.ExecContext(ctx, del, delArgs...); err != nil {
			return sqlite.MapError(err, "study_plan_items", planID)
		}
		if len(tasks) == 0 {
			return nil
		}
		query, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("build query: %w", err)
		}
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return sqlite.MapError(err, "study_plan_items", planID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repo) ListItems(ctx context.Context, planID uuid.UUID) ([]domain.StudyPlanItem, error) {
	query, args, err := squirrel.Select(itemColumns...).
		From("study_plan_items").
		Where(squirrel.Eq{"plan_id": planID.String()}).
		OrderBy("item_order").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "study_plan_items", planID)
	}
	defer rows.Close()

	items := make([]domain.StudyPlanItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, sqlite.MapError(err, "study_plan_items", planID)
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlite.MapError(err, "study_plan_items", planID)
	}
	return items, nil
}

func (r *Repo) GetItem(ctx context.Context, userID, itemID uuid.UUID) (*domain.StudyPlanItem, error) {
	query, args, err := squirrel.Select(itemColumns...).
		From("study_plan_items").
		Where(squirrel.Eq{"id": itemID.String()}).
		Where(ownedBy(userID)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)
	it, err := scanItem(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, sqlite.MapError(err, "study_plan_item", itemID)
	}
	return it, nil
}

func (r *Repo) SetCompleted(ctx context.Context, userID, itemID uuid.UUID, completed bool) error {
	flag := 0
	if completed {
		flag = 1
	}
	query, args, err := squirrel.Update("study_plan_items").
		Set("completed", flag).
		Where(squirrel.Eq{"id": itemID.String()}).
		Where(ownedBy(userID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, "study_plan_item", itemID, query, args)
}

func (r *Repo) SetDetails(ctx context.Context, userID, itemID uuid.UUID, details string) error {
	query, args, err := squirrel.Update("study_plan_items").
		Set("details", details).
		Where(squirrel.Eq{"id": itemID.String()}).
		Where(ownedBy(userID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return r.execOne(ctx, "study_plan_item", itemID, query, args)
}

// execOne runs a statement that must match exactly one row. SQLite counts
// matched rows, so rewriting an unchanged value still reports one.
func (r *Repo) execOne(ctx context.Context, entity string, id uuid.UUID, query string, args []any) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return sqlite.MapError(err, entity, id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return sqlite.MapError(err, entity, id)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

func scanPlan(row scanner) (*domain.StudyPlan, error) {
	var (
		p              domain.StudyPlan
		id, userID     string
		createdAtNanos int64
	)
	if err := row.Scan(&id, &userID, &p.Topic, &createdAtNanos); err != nil {
		return nil, err
	}
	var err error
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse plan id: %w", err)
	}
	if p.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	p.CreatedAt = time.Unix(0, createdAtNanos).UTC()
	return &p, nil
}

func scanItem(row scanner) (*domain.StudyPlanItem, error) {
	var (
		it         domain.StudyPlanItem
		id, planID string
		completed  int64
		details    sql.NullString
	)
	if err := row.Scan(&id, &planID, &it.Task, &it.Order, &completed, &details); err != nil {
		return nil, err
	}
	var err error
	if it.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse item id: %w", err)
	}
	if it.PlanID, err = uuid.Parse(planID); err != nil {
		return nil, fmt.Errorf("parse plan id: %w", err)
	}
	it.Completed = completed != 0
	if details.Valid {
		it.Details = &details.String
	}
	return &it, nil
}
