package assistant

import (
	"context"
	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"sync"
)

var _ chatClient = &chatClientMock{}

type chatClientMock struct {
	ChatFunc func(ctx context.Context, history []domain.ChatMessage) (string, error)

	calls struct {
		Chat []struct {
			Ctx     context.Context
			History []domain.ChatMessage
		}
	}
	lockChat sync.RWMutex
}

func (mock *chatClientMock) Chat(ctx context.Context, history []domain.ChatMessage) (string, error) {
	if mock.ChatFunc == nil {
		panic("chatClientMock.ChatFunc: method is nil but chatClient.Chat was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		History []domain.ChatMessage
	}{
		Ctx:     ctx,
		History: history,
	}
	mock.lockChat.Lock()
	mock.calls.Chat = append(mock.calls.Chat, callInfo)
	mock.lockChat.Unlock()
	return mock.ChatFunc(ctx, history)
}

func (mock *chatClientMock) ChatCalls() []struct {
	Ctx     context.Context
	History []domain.ChatMessage
} {
	mock.lockChat.RLock()
	calls := mock.calls.Chat
	mock.lockChat.RUnlock()
	return calls
}

