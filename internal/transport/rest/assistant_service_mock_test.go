package rest

import (
	"context"
	"github.com/heartmarshall/studyplanner-backend/internal/service/assistant"
	"sync"
)

var _ assistantService = &assistantServiceMock{}

type assistantServiceMock struct {
	ChatFunc func(ctx context.Context, input assistant.ChatInput) (string, error)

	calls struct {
		Chat []struct {
			Ctx   context.Context
			Input assistant.ChatInput
		}
	}
	lockChat sync.RWMutex
}

func (mock *assistantServiceMock) Chat(ctx context.Context, input assistant.ChatInput) (string, error) {
	if mock.ChatFunc == nil {
		panic("assistantServiceMock.ChatFunc: method is nil but assistantService.Chat was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input assistant.ChatInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockChat.Lock()
	mock.calls.Chat = append(mock.calls.Chat, callInfo)
	mock.lockChat.Unlock()
	return mock.ChatFunc(ctx, input)
}

func (mock *assistantServiceMock) ChatCalls() []struct {
	Ctx   context.Context
	Input assistant.ChatInput
} {
	mock.lockChat.RLock()
	calls := mock.calls.Chat
	mock.lockChat.RUnlock()
	return calls
}

