package user

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ sessionIssuer = &sessionIssuerMock{}

type sessionIssuerMock struct {
	GenerateSessionTokenFunc func(userID uuid.UUID) (string, time.Time, error)

	calls struct {
		GenerateSessionToken []struct {
			UserID uuid.UUID
		}
	}
	lockGenerateSessionToken sync.RWMutex
}

func (mock *sessionIssuerMock) GenerateSessionToken(userID uuid.UUID) (string, time.Time, error) {
	if mock.GenerateSessionTokenFunc == nil {
		panic("sessionIssuerMock.GenerateSessionTokenFunc: method is nil but sessionIssuer.GenerateSessionToken was just called")
	}
	callInfo := struct{ UserID uuid.UUID }{UserID: userID}
	mock.lockGenerateSessionToken.Lock()
	mock.calls.GenerateSessionToken = append(mock.calls.GenerateSessionToken, callInfo)
	mock.lockGenerateSessionToken.Unlock()
	return mock.GenerateSessionTokenFunc(userID)
}

func (mock *sessionIssuerMock) GenerateSessionTokenCalls() []struct{ UserID uuid.UUID } {
	mock.lockGenerateSessionToken.RLock()
	calls := mock.calls.GenerateSessionToken
	mock.lockGenerateSessionToken.RUnlock()
	return calls
}
