package planner

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"github.com/heartmarshall/studyplanner-backend/internal/service/studyplan"
	"sync"
)

var _ planService = &planServiceMock{}

type planServiceMock struct {
	GeneratePlanFunc   func(ctx context.Context, input studyplan.GeneratePlanInput) (*domain.PlanWithItems, error)
	RegeneratePlanFunc func(ctx context.Context, input studyplan.RegeneratePlanInput) (*domain.PlanWithItems, error)
	LatestPlanFunc     func(ctx context.Context) (*domain.PlanWithItems, error)
	GetPlanFunc        func(ctx context.Context, planID uuid.UUID) (*domain.PlanWithItems, error)
	ListPlansFunc      func(ctx context.Context) ([]domain.StudyPlan, error)
	DeletePlanFunc     func(ctx context.Context, planID uuid.UUID) error
	SetCompletedFunc   func(ctx context.Context, input studyplan.SetCompletedInput) error
	ItemDetailsFunc    func(ctx context.Context, itemID uuid.UUID) (string, error)

	calls struct {
		GeneratePlan []struct {
			Ctx   context.Context
			Input studyplan.GeneratePlanInput
		}
		RegeneratePlan []struct {
			Ctx   context.Context
			Input studyplan.RegeneratePlanInput
		}
		LatestPlan []struct {
			Ctx context.Context
		}
		GetPlan []struct {
			Ctx    context.Context
			PlanID uuid.UUID
		}
		ListPlans []struct {
			Ctx context.Context
		}
		DeletePlan []struct {
			Ctx    context.Context
			PlanID uuid.UUID
		}
		SetCompleted []struct {
			Ctx   context.Context
			Input studyplan.SetCompletedInput
		}
		ItemDetails []struct {
			Ctx    context.Context
			ItemID uuid.UUID
		}
	}
	lockGeneratePlan   sync.RWMutex
	lockRegeneratePlan sync.RWMutex
	lockLatestPlan     sync.RWMutex
	lockGetPlan        sync.RWMutex
	lockListPlans      sync.RWMutex
	lockDeletePlan     sync.RWMutex
	lockSetCompleted   sync.RWMutex
	lockItemDetails    sync.RWMutex
}

func (mock *planServiceMock) GeneratePlan(ctx context.Context, input studyplan.GeneratePlanInput) (*domain.PlanWithItems, error) {
	if mock.GeneratePlanFunc == nil {
		panic("planServiceMock.GeneratePlanFunc: method is nil but planService.GeneratePlan was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input studyplan.GeneratePlanInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockGeneratePlan.Lock()
	mock.calls.GeneratePlan = append(mock.calls.GeneratePlan, callInfo)
	mock.lockGeneratePlan.Unlock()
	return mock.GeneratePlanFunc(ctx, input)
}

func (mock *planServiceMock) GeneratePlanCalls() []struct {
	Ctx   context.Context
	Input studyplan.GeneratePlanInput
} {
	mock.lockGeneratePlan.RLock()
	calls := mock.calls.GeneratePlan
	mock.lockGeneratePlan.RUnlock()
	return calls
}

func (mock *planServiceMock) RegeneratePlan(ctx context.Context, input studyplan.RegeneratePlanInput) (*domain.PlanWithItems, error) {
	if mock.RegeneratePlanFunc == nil {
		panic("planServiceMock.RegeneratePlanFunc: method is nil but planService.RegeneratePlan was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input studyplan.RegeneratePlanInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockRegeneratePlan.Lock()
	mock.calls.RegeneratePlan = append(mock.calls.RegeneratePlan, callInfo)
	mock.lockRegeneratePlan.Unlock()
	return mock.RegeneratePlanFunc(ctx, input)
}

func (mock *planServiceMock) RegeneratePlanCalls() []struct {
	Ctx   context.Context
	Input studyplan.RegeneratePlanInput
} {
	mock.lockRegeneratePlan.RLock()
	calls := mock.calls.RegeneratePlan
	mock.lockRegeneratePlan.RUnlock()
	return calls
}

func (mock *planServiceMock) LatestPlan(ctx context.Context) (*domain.PlanWithItems, error) {
	if mock.LatestPlanFunc == nil {
		panic("planServiceMock.LatestPlanFunc: method is nil but planService.LatestPlan was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockLatestPlan.Lock()
	mock.calls.LatestPlan = append(mock.calls.LatestPlan, callInfo)
	mock.lockLatestPlan.Unlock()
	return mock.LatestPlanFunc(ctx)
}

func (mock *planServiceMock) LatestPlanCalls() []struct {
	Ctx context.Context
} {
	mock.lockLatestPlan.RLock()
	calls := mock.calls.LatestPlan
	mock.lockLatestPlan.RUnlock()
	return calls
}

func (mock *planServiceMock) GetPlan(ctx context.Context, planID uuid.UUID) (*domain.PlanWithItems, error) {
	if mock.GetPlanFunc == nil {
		panic("planServiceMock.GetPlanFunc: method is nil but planService.GetPlan was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PlanID uuid.UUID
	}{
		Ctx:    ctx,
		PlanID: planID,
	}
	mock.lockGetPlan.Lock()
	mock.calls.GetPlan = append(mock.calls.GetPlan, callInfo)
	mock.lockGetPlan.Unlock()
	return mock.GetPlanFunc(ctx, planID)
}

func (mock *planServiceMock) GetPlanCalls() []struct {
	Ctx    context.Context
	PlanID uuid.UUID
} {
	mock.lockGetPlan.RLock()
	calls := mock.calls.GetPlan
	mock.lockGetPlan.RUnlock()
	return calls
}

func (mock *planServiceMock) ListPlans(ctx context.Context) ([]domain.StudyPlan, error) {
	if mock.ListPlansFunc == nil {
		panic("planServiceMock.ListPlansFunc: method is nil but planService.ListPlans was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListPlans.Lock()
	mock.calls.ListPlans = append(mock.calls.ListPlans, callInfo)
	mock.lockListPlans.Unlock()
	return mock.ListPlansFunc(ctx)
}

func (mock *planServiceMock) ListPlansCalls() []struct {
	Ctx context.Context
} {
	mock.lockListPlans.RLock()
	calls := mock.calls.ListPlans
	mock.lockListPlans.RUnlock()
	return calls
}

func (mock *planServiceMock) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	if mock.DeletePlanFunc == nil {
		panic("planServiceMock.DeletePlanFunc: method is nil but planService.DeletePlan was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		PlanID uuid.UUID
	}{
		Ctx:    ctx,
		PlanID: planID,
	}
	mock.lockDeletePlan.Lock()
	mock.calls.DeletePlan = append(mock.calls.DeletePlan, callInfo)
	mock.lockDeletePlan.Unlock()
	return mock.DeletePlanFunc(ctx, planID)
}

func (mock *planServiceMock) DeletePlanCalls() []struct {
	Ctx    context.Context
	PlanID uuid.UUID
} {
	mock.lockDeletePlan.RLock()
	calls := mock.calls.DeletePlan
	mock.lockDeletePlan.RUnlock()
	return calls
}

func (mock *planServiceMock) SetCompleted(ctx context.Context, input studyplan.SetCompletedInput) error {
	if mock.SetCompletedFunc == nil {
		panic("planServiceMock.SetCompletedFunc: method is nil but planService.SetCompleted was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input studyplan.SetCompletedInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockSetCompleted.Lock()
	mock.calls.SetCompleted = append(mock.calls.SetCompleted, callInfo)
	mock.lockSetCompleted.Unlock()
	return mock.SetCompletedFunc(ctx, input)
}

func (mock *planServiceMock) SetCompletedCalls() []struct {
	Ctx   context.Context
	Input studyplan.SetCompletedInput
} {
	mock.lockSetCompleted.RLock()
	calls := mock.calls.SetCompleted
	mock.lockSetCompleted.RUnlock()
	return calls
}

func (mock *planServiceMock) ItemDetails(ctx context.Context, itemID uuid.UUID) (string, error) {
	if mock.ItemDetailsFunc == nil {
		panic("planServiceMock.ItemDetailsFunc: method is nil but planService.ItemDetails was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ItemID uuid.UUID
	}{
		Ctx:    ctx,
		ItemID: itemID,
	}
	mock.lockItemDetails.Lock()
	mock.calls.ItemDetails = append(mock.calls.ItemDetails, callInfo)
	mock.lockItemDetails.Unlock()
	return mock.ItemDetailsFunc(ctx, itemID)
}

func (mock *planServiceMock) ItemDetailsCalls() []struct {
	Ctx    context.Context
	ItemID uuid.UUID
} {
	mock.lockItemDetails.RLock()
	calls := mock.calls.ItemDetails
	mock.lockItemDetails.RUnlock()
	return calls
}

