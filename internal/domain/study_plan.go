package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// StudyPlan is a named roadmap generated for one topic.
type StudyPlan struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Topic     string
	CreatedAt time.Time
}

// StudyPlanItem is one step of a plan. Completed and Details change
// independently of each other.
type StudyPlanItem struct {
	ID        uuid.UUID
	PlanID    uuid.UUID
	Task      string
	Order     int
	Completed bool
	Details   *string // nil until fetched
}

// HasDetails reports whether elaboration text has already been stored.
func (i StudyPlanItem) HasDetails() bool {
	return i.Details != nil && *i.Details != ""
}

// PlanWithItems is a plan together with its items ordered by Order.
type PlanWithItems struct {
	Plan  StudyPlan
	Items []StudyPlanItem
}

// Progress returns the completed share of items as a rounded percentage.
func (p PlanWithItems) Progress() int {
	if len(p.Items) == 0 {
		return 0
	}
	done := 0
	for _, it := range p.Items {
		if it.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(p.Items)) * 100))
}

// NextTask returns the first incomplete item, or nil when all are done.
func (p PlanWithItems) NextTask() *StudyPlanItem {
	for i := range p.Items {
		if !p.Items[i].Completed {
			it := p.Items[i]
			return &it
		}
	}
	return nil
}
