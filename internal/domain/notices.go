package domain

import (
	"fmt"
	"strconv"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
)

func relatedID(id int64) *string {
	s := strconv.FormatInt(id, 10)
	return &s
}

// FriendRequestReceivedNotice tells the target's account about a new request.
// The related id is filled in once the request row exists.
func FriendRequestReceivedNotice(targetAccountID int64, senderName string) *models.Notification {
	return &models.Notification{
		AccountID: targetAccountID,
		Title:     "New Friend Request",
		Message:   fmt.Sprintf("%s sent you a friend request.", senderName),
		Type:      models.NotificationFriendRequestReceived,
	}
}

// FriendRequestAcceptedNotice tells the original sender their request was accepted
func FriendRequestAcceptedNotice(senderAccountID int64, accepter *models.Profile) *models.Notification {
	return &models.Notification{
		AccountID: senderAccountID,
		Title:     "Friend Request Accepted",
		Message:   fmt.Sprintf("%s accepted your friend request.", accepter.Name),
		Type:      models.NotificationSuccess,
		RelatedID: relatedID(accepter.ID),
	}
}

// MeetingInvitationNotice tells the receiver's account about a new invitation
func MeetingInvitationNotice(receiverAccountID int64, senderName, title string) *models.Notification {
	return &models.Notification{
		AccountID: receiverAccountID,
		Title:     "New Meeting Invitation",
		Message:   fmt.Sprintf("%s invited you to %q.", senderName, title),
		Type:      models.NotificationMeetingInvitation,
	}
}

// InvitationOutcomeNotice tells the other party that an invitation moved to status
func InvitationOutcomeNotice(accountID int64, inv *models.MeetingInvitation, status models.InvitationStatus) *models.Notification {
	n := &models.Notification{
		AccountID: accountID,
		RelatedID: relatedID(inv.ID),
	}

	switch status {
	case models.InvitationAccepted:
		n.Title = "Meeting Invitation Accepted"
		n.Message = fmt.Sprintf("%s accepted %q.", inv.ReceiverName, inv.Title)
		n.Type = models.NotificationSuccess
	case models.InvitationDeclined:
		n.Title = "Meeting Invitation Declined"
		n.Message = fmt.Sprintf("%s declined %q.", inv.ReceiverName, inv.Title)
		n.Type = models.NotificationWarning
	default:
		n.Title = "Meeting Invitation Cancelled"
		n.Message = fmt.Sprintf("%s cancelled %q.", inv.SenderName, inv.Title)
		n.Type = models.NotificationInfo
	}
	return n
}

// SetRelatedID records the id of the row a notification refers to
func SetRelatedID(n *models.Notification, id int64) {
	n.RelatedID = relatedID(id)
}
