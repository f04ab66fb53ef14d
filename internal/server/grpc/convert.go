package grpc

import (
	"strings"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
)

func toPagination(p api.Page) models.Pagination {
	return models.Pagination{
		StartIndex: p.StartIndex,
		Limit:      p.Limit,
		Ascending:  strings.EqualFold(p.Order, "asc"),
	}
}

func toAccount(a models.Account) api.Account {
	return api.Account{
		ID:             a.ID,
		Username:       a.UserName,
		Email:          a.Email,
		ProfilePicture: a.ProfilePicture,
		IsAdmin:        a.IsAdmin,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toAccounts(list []models.Account) []api.Account {
	out := make([]api.Account, 0, len(list))
	for _, a := range list {
		out = append(out, toAccount(a))
	}
	return out
}

func toEvent(e *models.Event) api.Event {
	return api.Event{
		ID:              e.ID,
		UserID:          e.UserID,
		Title:           e.Title,
		Content:         e.Content,
		Image:           e.Image,
		Category:        e.Category,
		Location:        e.Location,
		Datetime:        e.Datetime,
		MaxRegistration: e.MaxRegistration,
		Slug:            e.Slug,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func toEvents(list []*models.Event) []api.Event {
	out := make([]api.Event, 0, len(list))
	for _, e := range list {
		out = append(out, toEvent(e))
	}
	return out
}
