// Package domain holds the pure state transitions of the social and
// scheduling workflows. Nothing here touches storage or the network.
package domain

import (
	"fmt"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/apperrors"
)

// InvitationEvent is an action applied to a meeting invitation
type InvitationEvent string

const (
	InvitationAccept  InvitationEvent = "accept"
	InvitationDecline InvitationEvent = "decline"
	InvitationCancel  InvitationEvent = "cancel"
)

// InvitationRole is the caller's relationship to an invitation. An account
// owning both classrooms holds both roles.
type InvitationRole uint8

const (
	RoleNone     InvitationRole = 0
	RoleSender   InvitationRole = 1 << 0
	RoleReceiver InvitationRole = 1 << 1
)

// Has reports whether r includes role
func (r InvitationRole) Has(role InvitationRole) bool {
	return r&role != 0
}

var invitationTargets = map[InvitationEvent]models.InvitationStatus{
	InvitationAccept:  models.InvitationAccepted,
	InvitationDecline: models.InvitationDeclined,
	InvitationCancel:  models.InvitationCancelled,
}

// IsTerminalInvitationStatus reports whether no further transition is allowed
func IsTerminalInvitationStatus(status models.InvitationStatus) bool {
	return status != models.InvitationPending
}

// TransitionInvitation returns the status an event moves a pending
// invitation to. Any event on a terminal invitation is a conflict that
// names the current status.
func TransitionInvitation(current models.InvitationStatus, event InvitationEvent) (models.InvitationStatus, error) {
	next, ok := invitationTargets[event]
	if !ok {
		return current, apperrors.NewBadRequestError(fmt.Sprintf("unknown invitation action %q", event))
	}
	if IsTerminalInvitationStatus(current) {
		return current, apperrors.NewConflictError(fmt.Sprintf("invitation is already %s", current))
	}
	return next, nil
}

// AuthorizeInvitationEvent checks that the caller's role may apply the
// event: accept and decline belong to the receiver, cancel to the sender.
func AuthorizeInvitationEvent(role InvitationRole, event InvitationEvent) error {
	switch event {
	case InvitationAccept, InvitationDecline:
		if !role.Has(RoleReceiver) {
			return apperrors.NewForbiddenError("this invitation is not addressed to you")
		}
	case InvitationCancel:
		if !role.Has(RoleSender) {
			return apperrors.NewForbiddenError("you can only cancel invitations you sent")
		}
	}
	return nil
}
