package service

import (
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
)

// Actor is the caller identity threaded explicitly through every service
// call. Services never read identity from ambient state.
type Actor struct {
	UserID string
	Role   domain.UserRole
}

func (a Actor) eventActor() events.Actor {
	return events.Actor{UserID: a.UserID, Role: a.Role}
}
