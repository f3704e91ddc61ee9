package studyplan

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"sync"
)

var _ planRepo = &planRepoMock{}

type planRepoMock struct {
	CreatePlanFunc   func(ctx context.Context, userID uuid.UUID, topic string) (*domain.StudyPlan, error)
	UpdateTopicFunc  func(ctx context.Context, userID uuid.UUID, planID uuid.UUID, topic string) error
	GetPlanFunc      func(ctx context.Context, userID uuid.UUID, planID uuid.UUID) (*domain.StudyPlan, error)
	LatestPlanFunc   func(ctx context.Context, userID uuid.UUID) (*domain.StudyPlan, error)
	ListPlansFunc    func(ctx context.Context, userID uuid.UUID) ([]domain.StudyPlan, error)
	DeletePlanFunc   func(ctx context.Context, userID uuid.UUID, planID uuid.UUID) error
	ReplaceItemsFunc func(ctx context.Context, planID uuid.UUID, tasks []string) ([]domain.StudyPlanItem, error)
	ListItemsFunc    func(ctx context.Context, planID uuid.UUID) ([]domain.StudyPlanItem, error)
	GetItemFunc      func(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*domain.StudyPlanItem, error)
	SetCompletedFunc func(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, completed bool) error
	SetDetailsFunc   func(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, details string) error

	calls struct {
		CreatePlan []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Topic  string
		}
		UpdateTopic []struct {
			Ctx    context.Context
			UserID uuid.UUID
			PlanID uuid.UUID
			Topic  string
		}
		GetPlan []struct {
			Ctx    context.Context
			UserID uuid.UUID
			PlanID uuid.UUID
		}
		LatestPlan []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		ListPlans []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		DeletePlan []struct {
			Ctx    context.Context
			UserID uuid.UUID
			PlanID uuid.UUID
		}
		ReplaceItems []struct {
			Ctx    context.Context
			PlanID uuid.UUID
			Tasks  []string
		}
		ListItems []struct {
			Ctx    context.Context
			PlanID uuid.UUID
		}
		GetItem []struct {
			Ctx    context.Context
			UserID uuid.UUID
			ItemID uuid.UUID
		}
		SetCompleted []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			ItemID    uuid.UUID
			Completed bool
		}
		SetDetails []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			ItemID  uuid.UUID
			Details string
		}
	}
	lockCreatePlan   sync.RWMutex
	lockUpdateTopic  sync.RWMutex
	lockGetPlan      sync.RWMutex
	lockLatestPlan   sync.RWMutex
	lockListPlans    sync.RWMutex
	lockDeletePlan   sync.RWMutex
	lockReplaceItems sync.RWMutex
	lockListItems    sync.RWMutex
	lockGetItem      sync.RWMutex
	lockSetCompleted sync.RWMutex
	lockSetDetails   sync.RWMutex
}

func (mock *planRepoMock) CreatePlan(ctx context.Context, userID uuid.UUID, topic string) (*domain.StudyPlan, error) {
	if mock.CreatePlanFunc == nil {
		panic("planRepoMock.CreatePlanFunc: method is nil but planRepo.CreatePlan was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Topic  string
	}{
		Ctx:    ctx,
		UserID: userID,
		Topic:  topic,
	}
	mock.lockCreatePlan.Lock()
	mock.calls.CreatePlan = append(mock.calls.CreatePlan, callInfo)
	mock.lockCreatePlan.Unlock()
	return mock.CreatePlanFunc(ctx, userID, topic)
}

func (mock *planRepoMock) CreatePlanCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Topic  string
} {
	mock.lockCreatePlan.RLock()
	calls := mock.calls.CreatePlan
	mock.lockCreatePlan.RUnlock()
	return calls
}

func (mock *planRepoMock) UpdateTopic(ctx context.Context, userID uuid.UUID, planID uuid.UUID, topic string) error {
	if mock.UpdateTopicFunc == nil {
		panic("planRepoMock.UpdateTopicFunc: method is nil but planRepo.UpdateTopic was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		PlanID uuid.UUID
		Topic  string
	}{
		Ctx:    ctx,
		UserID: userID,
		PlanID: planID,
		Topic:  topic,
	}
	mock.lockUpdateTopic.Lock()
	mock.calls.UpdateTopic = append(mock.calls.UpdateTopic, callInfo)
	mock.lockUpdateTopic.Unlock()
	return mock.UpdateTopicFunc(ctx, userID, planID, topic)
}

func (mock *planRepoMock) UpdateTopicCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	PlanID uuid.UUID
	Topic  string
} {
	mock.lockUpdateTopic.RLock()
	calls := mock.calls.UpdateTopic
	mock.lockUpdateTopic.RUnlock()
	return calls
}

func (mock *planRepoMock) GetPlan(ctx context.Context, userID uuid.UUID, planID uuid.UUID) (*domain.StudyPlan, error) {
	if mock.GetPlanFunc == nil {
		panic("planRepoMock.GetPlanFunc: method is nil but planRepo.GetPlan was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		PlanID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
		PlanID: planID,
	}
	mock.lockGetPlan.Lock()
	mock.calls.GetPlan = append(mock.calls.GetPlan, callInfo)
	mock.lockGetPlan.Unlock()
	return mock.GetPlanFunc(ctx, userID, planID)
}

func (mock *planRepoMock) GetPlanCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	PlanID uuid.UUID
} {
	mock.lockGetPlan.RLock()
	calls := mock.calls.GetPlan
	mock.lockGetPlan.RUnlock()
	return calls
}

func (mock *planRepoMock) LatestPlan(ctx context.Context, userID uuid.UUID) (*domain.StudyPlan, error) {
	if mock.LatestPlanFunc == nil {
		panic("planRepoMock.LatestPlanFunc: method is nil but planRepo.LatestPlan was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockLatestPlan.Lock()
	mock.calls.LatestPlan = append(mock.calls.LatestPlan, callInfo)
	mock.lockLatestPlan.Unlock()
	return mock.LatestPlanFunc(ctx, userID)
}

func (mock *planRepoMock) LatestPlanCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockLatestPlan.RLock()
	calls := mock.calls.LatestPlan
	mock.lockLatestPlan.RUnlock()
	return calls
}

func (mock *planRepoMock) ListPlans(ctx context.Context, userID uuid.UUID) ([]domain.StudyPlan, error) {
	if mock.ListPlansFunc == nil {
		panic("planRepoMock.ListPlansFunc: method is nil but planRepo.ListPlans was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockListPlans.Lock()
	mock.calls.ListPlans = append(mock.calls.ListPlans, callInfo)
	mock.lockListPlans.Unlock()
	return mock.ListPlansFunc(ctx, userID)
}

func (mock *planRepoMock) ListPlansCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListPlans.RLock()
	calls := mock.calls.ListPlans
	mock.lockListPlans.RUnlock()
	return calls
}

func (mock *planRepoMock) DeletePlan(ctx context.Context, userID uuid.UUID, planID uuid.UUID) error {
	if mock.DeletePlanFunc == nil {
		panic("planRepoMock.DeletePlanFunc: method is nil but planRepo.DeletePlan was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		PlanID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
		PlanID: planID,
	}
	mock.lockDeletePlan.Lock()
	mock.calls.DeletePlan = append(mock.calls.DeletePlan, callInfo)
	mock.lockDeletePlan.Unlock()
	return mock.DeletePlanFunc(ctx, userID, planID)
}

func (mock *planRepoMock) DeletePlanCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	PlanID uuid.UUID
} {
	mock.lockDeletePlan.RLock()
	calls := mock.calls.DeletePlan
	mock.lockDeletePlan.RUnlock()
	return calls
}

func (mock *planRepoMock) ReplaceItems(ctx context.Context, planID uuid.UUID, tasks []string) ([]domain.StudyPlanItem, error) {
	if mock.ReplaceItemsFunc == nil {
		panic("planRepoMock.ReplaceItemsFunc: method is nil but planRepo.ReplaceItems was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PlanID uuid.UUID
		Tasks  []string
	}{
		Ctx:    ctx,
		PlanID: planID,
		Tasks:  tasks,
	}
	mock.lockReplaceItems.Lock()
	mock.calls.ReplaceItems = append(mock.calls.ReplaceItems, callInfo)
	mock.lockReplaceItems.Unlock()
	return mock.ReplaceItemsFunc(ctx, planID, tasks)
}

func (mock *planRepoMock) ReplaceItemsCalls() []struct {
	Ctx    context.Context
	PlanID uuid.UUID
	Tasks  []string
} {
	mock.lockReplaceItems.RLock()
	calls := mock.calls.ReplaceItems
	mock.lockReplaceItems.RUnlock()
	return calls
}

func (mock *planRepoMock) ListItems(ctx context.Context, planID uuid.UUID) ([]domain.StudyPlanItem, error) {
	if mock.ListItemsFunc == nil {
		panic("planRepoMock.ListItemsFunc: method is nil but planRepo.ListItems was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PlanID uuid.UUID
	}{
		Ctx:    ctx,
		PlanID: planID,
	}
	mock.lockListItems.Lock()
	mock.calls.ListItems = append(mock.calls.ListItems, callInfo)
	mock.lockListItems.Unlock()
	return mock.ListItemsFunc(ctx, planID)
}

func (mock *planRepoMock) ListItemsCalls() []struct {
	Ctx    context.Context
	PlanID uuid.UUID
} {
	mock.lockListItems.RLock()
	calls := mock.calls.ListItems
	mock.lockListItems.RUnlock()
	return calls
}

func (mock *planRepoMock) GetItem(ctx context.Context, userID uuid.UUID, itemID uuid.UUID) (*domain.StudyPlanItem, error) {
	if mock.GetItemFunc == nil {
		panic("planRepoMock.GetItemFunc: method is nil but planRepo.GetItem was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ItemID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
		ItemID: itemID,
	}
	mock.lockGetItem.Lock()
	mock.calls.GetItem = append(mock.calls.GetItem, callInfo)
	mock.lockGetItem.Unlock()
	return mock.GetItemFunc(ctx, userID, itemID)
}

func (mock *planRepoMock) GetItemCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ItemID uuid.UUID
} {
	mock.lockGetItem.RLock()
	calls := mock.calls.GetItem
	mock.lockGetItem.RUnlock()
	return calls
}

func (mock *planRepoMock) SetCompleted(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, completed bool) error {
	if mock.SetCompletedFunc == nil {
		panic("planRepoMock.SetCompletedFunc: method is nil but planRepo.SetCompleted was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		ItemID    uuid.UUID
		Completed bool
	}{
		Ctx:       ctx,
		UserID:    userID,
		ItemID:    itemID,
		Completed: completed,
	}
	mock.lockSetCompleted.Lock()
	mock.calls.SetCompleted = append(mock.calls.SetCompleted, callInfo)
	mock.lockSetCompleted.Unlock()
	return mock.SetCompletedFunc(ctx, userID, itemID, completed)
}

func (mock *planRepoMock) SetCompletedCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	ItemID    uuid.UUID
	Completed bool
} {
	mock.lockSetCompleted.RLock()
	calls := mock.calls.SetCompleted
	mock.lockSetCompleted.RUnlock()
	return calls
}

func (mock *planRepoMock) SetDetails(ctx context.Context, userID uuid.UUID, itemID uuid.UUID, details string) error {
	if mock.SetDetailsFunc == nil {
		panic("planRepoMock.SetDetailsFunc: method is nil but planRepo.SetDetails was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		ItemID  uuid.UUID
		Details string
	}{
		Ctx:     ctx,
		UserID:  userID,
		ItemID:  itemID,
		Details: details,
	}
	mock.lockSetDetails.Lock()
	mock.calls.SetDetails = append(mock.calls.SetDetails, callInfo)
	mock.lockSetDetails.Unlock()
	return mock.SetDetailsFunc(ctx, userID, itemID, details)
}

func (mock *planRepoMock) SetDetailsCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	ItemID  uuid.UUID
	Details string
} {
	mock.lockSetDetails.RLock()
	calls := mock.calls.SetDetails
	mock.lockSetDetails.RUnlock()
	return calls
}

