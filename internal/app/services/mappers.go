package services

import (
	"strconv"

	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models"
	"github.com/HarinChan/MirrorMirrorEngine/internal/app/models/dto"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/helpers"
)

func toNotificationResponse(n *models.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        strconv.FormatInt(n.ID, 10),
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		RelatedID: n.RelatedID,
		Timestamp: helpers.FormatISO(n.CreatedAt),
	}
}

func toNotificationResponses(ns []*models.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, toNotificationResponse(n))
	}
	return out
}

func toProfileResponse(p *models.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:           p.ID,
		AccountID:    p.AccountID,
		Name:         p.Name,
		Location:     p.Location,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		ClassSize:    p.ClassSize,
		Interests:    p.Interests,
		Availability: p.Availability,
		CreatedAt:    helpers.FormatISO(p.CreatedAt),
	}
}

func toFriendData(f *models.Friend) dto.FriendData {
	return dto.FriendData{
		ID:               f.RelationID,
		ClassroomID:      f.ProfileID,
		ClassroomName:    f.Name,
		Location:         f.Location,
		AddedDate:        helpers.FormatISO(f.Since),
		FriendshipStatus: models.RelationAccepted,
	}
}

func toFriendRequestData(fr *models.FriendRequest) dto.FriendRequestData {
	return dto.FriendRequestData{
		ID:         fr.ID,
		SenderID:   fr.SenderProfileID,
		SenderName: fr.SenderName,
		Location:   fr.SenderLocation,
		SentDate:   helpers.FormatISO(fr.CreatedAt),
	}
}

func toPostResponse(p *models.Post) dto.PostResponse {
	resp := dto.PostResponse{
		ID:         p.ID,
		AuthorID:   p.ProfileID,
		AuthorName: p.AuthorName,
		Content:    p.Content,
		ImageURL:   p.ImageURL,
		Timestamp:  helpers.FormatISO(p.CreatedAt),
		Likes:      p.Likes,
		Comments:   p.CommentsCount,
		IsLiked:    p.IsLiked,
	}
	if p.QuotedPost != nil {
		resp.QuotedPost = &dto.QuotedPostResponse{
			ID:         p.QuotedPost.ID,
			AuthorName: p.QuotedPost.AuthorName,
			Content:    p.QuotedPost.Content,
			ImageURL:   p.QuotedPost.ImageURL,
		}
	}
	return resp
}

func toInvitationResponse(inv *models.MeetingInvitation) dto.InvitationResponse {
	return dto.InvitationResponse{
		ID:        inv.ID,
		Title:     inv.Title,
		StartTime: helpers.FormatISO(inv.StartTime),
		EndTime:   helpers.FormatISO(inv.EndTime),
		Status:    string(inv.Status),
		CreatedAt: helpers.FormatISO(inv.CreatedAt),
	}
}

func toMeetingResponse(m *models.Meeting, accountID int64) dto.MeetingResponse {
	return dto.MeetingResponse{
		ID:          m.ID,
		Title:       m.Title,
		StartTime:   helpers.FormatISO(m.StartTime),
		EndTime:     helpers.FormatISO(m.EndTime),
		WebLink:     m.WebLink,
		Password:    m.Password,
		CreatorName: m.CreatorName,
		IsCreator:   m.CreatorAccountID == accountID,
	}
}
