package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/policy"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

var created = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func account(id int64, name string) *models.Account {
	return &models.Account{ID: id, UserName: name, Email: name + "@example.com", CreatedAt: created, UpdatedAt: created}
}

type fakeAccounts struct {
	err       error
	lastActor policy.Principal
	lastPatch models.UserPatch
	lastPage  models.Pagination
}

func (f *fakeAccounts) Update(_ context.Context, actor policy.Principal, id int64, p models.UserPatch) (*models.Account, error) {
	f.lastActor, f.lastPatch = actor, p
	if f.err != nil {
		return nil, f.err
	}
	a := account(id, "updateduser")
	return a, nil
}

func (f *fakeAccounts) Delete(_ context.Context, actor policy.Principal, _ int64) error {
	f.lastActor = actor
	return f.err
}

func (f *fakeAccounts) List(_ context.Context, actor policy.Principal, p models.Pagination) (*models.AccountPage, error) {
	f.lastActor, f.lastPage = actor, p
	if f.err != nil {
		return nil, f.err
	}
	return &models.AccountPage{Users: []models.Account{*account(1, "adminuser")}, TotalUsers: 1, LastMonthUsers: 1}, nil
}

func (f *fakeAccounts) Get(_ context.Context, id int64) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return account(id, "someuser"), nil
}

func (f *fakeAccounts) SignOut(_ context.Context, actor policy.Principal) error {
	f.lastActor = actor
	return f.err
}

type fakeAuth struct {
	err error
}

func (f *fakeAuth) SignUp(_ context.Context, username, _, _ string) (*models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return account(7, username), nil
}

func (f *fakeAuth) SignIn(context.Context, string, string) (*services.TokenPair, *models.Account, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return &services.TokenPair{AccessToken: "at", RefreshToken: "rt"}, account(7, "someuser"), nil
}

func (f *fakeAuth) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.TokenPair{AccessToken: "at2", RefreshToken: "rt2"}, nil
}

type fakeEvents struct {
	err        error
	lastActor  policy.Principal
	lastInput  services.EventInput
	lastPatch  models.EventPatch
	lastFilter models.EventFilter
	bySlug     string
}

func event(id int64) *models.Event {
	return &models.Event{ID: id, UserID: 1, Title: "Go Meetup", Slug: "go-meetup", MaxRegistration: 10, CreatedAt: created}
}

func (f *fakeEvents) Create(_ context.Context, actor policy.Principal, in services.EventInput) (*models.Event, error) {
	f.lastActor, f.lastInput = actor, in
	if f.err != nil {
		return nil, f.err
	}
	return event(1), nil
}

func (f *fakeEvents) Update(_ context.Context, actor policy.Principal, id int64, p models.EventPatch) (*models.Event, error) {
	f.lastActor, f.lastPatch = actor, p
	if f.err != nil {
		return nil, f.err
	}
	return event(id), nil
}

func (f *fakeEvents) Delete(_ context.Context, actor policy.Principal, _ int64) error {
	f.lastActor = actor
	return f.err
}

func (f *fakeEvents) Get(_ context.Context, id int64) (*models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return event(id), nil
}

func (f *fakeEvents) GetBySlug(_ context.Context, slug string) (*models.Event, error) {
	f.bySlug = slug
	if f.err != nil {
		return nil, f.err
	}
	return event(2), nil
}

func (f *fakeEvents) List(_ context.Context, filter models.EventFilter) (*models.EventPage, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return &models.EventPage{Events: []*models.Event{event(1)}, TotalEvents: 1}, nil
}

func (f *fakeEvents) Register(_ context.Context, actor policy.Principal, id int64) (*models.Registration, error) {
	f.lastActor = actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.Registration{ID: 3, UserID: actor.ID, EventID: id, RegisteredAt: created}, nil
}

func (f *fakeEvents) CancelRegistration(_ context.Context, actor policy.Principal, _ int64) error {
	f.lastActor = actor
	return f.err
}

func (f *fakeEvents) Registrants(_ context.Context, actor policy.Principal, _ int64) ([]models.Registrant, error) {
	f.lastActor = actor
	if f.err != nil {
		return nil, f.err
	}
	return []models.Registrant{{Account: *account(5, "someuser"), RegisteredAt: created}}, nil
}

func (f *fakeEvents) AddCoordinator(_ context.Context, actor policy.Principal, _, _ int64) error {
	f.lastActor = actor
	return f.err
}

func (f *fakeEvents) RemoveCoordinator(_ context.Context, actor policy.Principal, _, _ int64) error {
	f.lastActor = actor
	return f.err
}

func (f *fakeEvents) Coordinators(context.Context, int64) ([]models.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.Account{}, nil
}

func (f *fakeEvents) RegisteredEvents(_ context.Context, actor policy.Principal, _ int64) ([]*models.Event, error) {
	f.lastActor = actor
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Event{event(1)}, nil
}

func (f *fakeEvents) CoordinatedEvents(_ context.Context, actor policy.Principal, _ int64) ([]*models.Event, error) {
	f.lastActor = actor
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Event{}, nil
}

type fakeMedia struct {
	err      error
	lastKind services.MediaKind
}

func (f *fakeMedia) UploadURL(_ context.Context, _ policy.Principal, kind services.MediaKind) (*services.Upload, error) {
	f.lastKind = kind
	if f.err != nil {
		return nil, f.err
	}
	return &services.Upload{Key: string(kind) + "/k", URL: "https://s3/put"}, nil
}

func (f *fakeMedia) DownloadURL(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://s3/get/" + key, nil
}

type fakes struct {
	accounts *fakeAccounts
	auth     *fakeAuth
	events   *fakeEvents
	media    *fakeMedia
}

func newTestServer(secret string) (*GRPCServer, *fakes) {
	f := &fakes{accounts: &fakeAccounts{}, auth: &fakeAuth{}, events: &fakeEvents{}, media: &fakeMedia{}}
	s := NewGRPCServer("127.0.0.1:0", nopLogger{}, Services{
		Accounts: f.accounts,
		Auth:     f.auth,
		Events:   f.events,
		Media:    f.media,
	}, secret)
	return s, f
}

var (
	userCtx  = policy.WithPrincipal(context.Background(), policy.Principal{ID: 5})
	adminCtx = policy.WithPrincipal(context.Background(), policy.Principal{ID: 1, IsAdmin: true})
)

var errForbidden = common.Forbidden("You are not allowed to manage this event")
