package client

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/api"
)

// Client is the server surface the CLI works with.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	SignUp(ctx context.Context, username, email, password string) (*api.Account, error)
	SignIn(ctx context.Context, email, password string) (*api.Account, error)
	SignOut(ctx context.Context) error

	GetAccount(ctx context.Context, id int64) (*api.Account, error)
	UpdateAccount(ctx context.Context, req *api.UpdateAccountRequest) (*api.Account, error)
	DeleteAccount(ctx context.Context, id int64) error
	ListAccounts(ctx context.Context, page api.Page) (*api.ListAccountsResponse, error)

	CreateEvent(ctx context.Context, req *api.CreateEventRequest) (*api.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	GetEvent(ctx context.Context, req *api.GetEventRequest) (*api.Event, error)
	ListEvents(ctx context.Context, req *api.ListEventsRequest) (*api.ListEventsResponse, error)
	RegisterForEvent(ctx context.Context, eventID int64) (*api.Registration, error)
	CancelRegistration(ctx context.Context, eventID int64) error
	ListRegistrants(ctx context.Context, eventID int64) ([]api.Registrant, error)
	AddCoordinator(ctx context.Context, eventID, userID int64) error
	RemoveCoordinator(ctx context.Context, eventID, userID int64) error
	ListCoordinators(ctx context.Context, eventID int64) ([]api.Account, error)
	RegisteredEvents(ctx context.Context, userID int64) ([]api.Event, error)
	CoordinatedEvents(ctx context.Context, userID int64) ([]api.Event, error)
	UploadURL(ctx context.Context, kind string) (*api.UploadURLResponse, error)
}
