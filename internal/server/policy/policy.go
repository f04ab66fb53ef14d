// Package policy holds the authorization decisions. Every function is pure:
// it looks only at the acting principal and the target it is given.
package policy

import (
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

// Principal is the authenticated caller.
type Principal struct {
	ID      int64
	IsAdmin bool
}

// Decision is the outcome of a policy check. A denied decision carries
// Code FORBIDDEN and a message for the caller.
type Decision struct {
	Allowed bool
	Code    common.Kind
	Message string
}

// Err returns nil for an allowed decision and a FORBIDDEN error otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return common.Forbidden(d.Message)
}

var allow = Decision{Allowed: true}

func deny(msg string) Decision {
	return Decision{Code: common.KindForbidden, Message: msg}
}

// CanModifyAccount allows self-service updates only. Administrators get no bypass.
func CanModifyAccount(actor Principal, targetID int64) Decision {
	if actor.ID == targetID {
		return allow
	}
	return deny("You are not allowed to update this user")
}

func CanDeleteAccount(actor Principal, targetID int64) Decision {
	if actor.IsAdmin || actor.ID == targetID {
		return allow
	}
	return deny("You are not allowed to delete this user")
}

func CanListAllAccounts(actor Principal) Decision {
	if actor.IsAdmin {
		return allow
	}
	return deny("You are not allowed to see all users")
}

func CanCreateEvent(actor Principal) Decision {
	if actor.IsAdmin {
		return allow
	}
	return deny("You are not allowed to create an event")
}

// CanManageEvent covers updating and deleting an event and editing its coordinators.
func CanManageEvent(actor Principal, event *models.Event) Decision {
	if actor.IsAdmin || actor.ID == event.UserID {
		return allow
	}
	return deny("You are not allowed to manage this event")
}

func CanViewRegistrants(actor Principal, event *models.Event, isCoordinator bool) Decision {
	if CanManageEvent(actor, event).Allowed || isCoordinator {
		return allow
	}
	return deny("You are not allowed to see the registrants of this event")
}

func CanViewParticipation(actor Principal, targetID int64) Decision {
	if actor.IsAdmin || actor.ID == targetID {
		return allow
	}
	return deny("You are not allowed to see the events of this user")
}

// Policy groups the decisions so services can be handed another rule set.
type Policy interface {
	CanModifyAccount(actor Principal, targetID int64) Decision
	CanDeleteAccount(actor Principal, targetID int64) Decision
	CanListAllAccounts(actor Principal) Decision
	CanCreateEvent(actor Principal) Decision
	CanManageEvent(actor Principal, event *models.Event) Decision
	CanViewRegistrants(actor Principal, event *models.Event, isCoordinator bool) Decision
	CanViewParticipation(actor Principal, targetID int64) Decision
}

// Default is the binary administrator-flag rule set.
type Default struct{}

var _ Policy = Default{}

func (Default) CanModifyAccount(a Principal, id int64) Decision { return CanModifyAccount(a, id) }
func (Default) CanDeleteAccount(a Principal, id int64) Decision { return CanDeleteAccount(a, id) }
func (Default) CanListAllAccounts(a Principal) Decision         { return CanListAllAccounts(a) }
func (Default) CanCreateEvent(a Principal) Decision             { return CanCreateEvent(a) }
func (Default) CanManageEvent(a Principal, e *models.Event) Decision {
	return CanManageEvent(a, e)
}
func (Default) CanViewRegistrants(a Principal, e *models.Event, isCoordinator bool) Decision {
	return CanViewRegistrants(a, e, isCoordinator)
}
func (Default) CanViewParticipation(a Principal, id int64) Decision {
	return CanViewParticipation(a, id)
}
