package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/client/config"
)

type fakeClient struct {
	err    error
	calls  []string
	closed bool

	signedIn *api.Account
	lastReq  any
}

func (f *fakeClient) record(name string, req any) error {
	f.calls = append(f.calls, name)
	f.lastReq = req
	return f.err
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) Ping(context.Context) error { return f.record("Ping", nil) }

func (f *fakeClient) SignUp(_ context.Context, username, email, password string) (*api.Account, error) {
	if err := f.record("SignUp", []string{username, email, password}); err != nil {
		return nil, err
	}
	return &api.Account{ID: 7, Username: username, Email: email}, nil
}

func (f *fakeClient) SignIn(_ context.Context, email, password string) (*api.Account, error) {
	if err := f.record("SignIn", []string{email, password}); err != nil {
		return nil, err
	}
	if f.signedIn != nil {
		return f.signedIn, nil
	}
	return &api.Account{ID: 5, Username: "someuser", Email: email}, nil
}

func (f *fakeClient) SignOut(context.Context) error { return f.record("SignOut", nil) }

func (f *fakeClient) GetAccount(_ context.Context, id int64) (*api.Account, error) {
	if err := f.record("GetAccount", id); err != nil {
		return nil, err
	}
	return &api.Account{ID: id, Username: "someuser"}, nil
}

func (f *fakeClient) UpdateAccount(_ context.Context, req *api.UpdateAccountRequest) (*api.Account, error) {
	if err := f.record("UpdateAccount", req); err != nil {
		return nil, err
	}
	return &api.Account{ID: req.ID}, nil
}

func (f *fakeClient) DeleteAccount(_ context.Context, id int64) error {
	return f.record("DeleteAccount", id)
}

func (f *fakeClient) ListAccounts(_ context.Context, page api.Page) (*api.ListAccountsResponse, error) {
	if err := f.record("ListAccounts", page); err != nil {
		return nil, err
	}
	return &api.ListAccountsResponse{Users: []api.Account{{ID: 1, Username: "Admin", IsAdmin: true}}, TotalUsers: 1}, nil
}

func (f *fakeClient) CreateEvent(_ context.Context, req *api.CreateEventRequest) (*api.Event, error) {
	if err := f.record("CreateEvent", req); err != nil {
		return nil, err
	}
	return &api.Event{ID: 1, Title: req.Title, Slug: "go-meetup"}, nil
}

func (f *fakeClient) DeleteEvent(_ context.Context, id int64) error {
	return f.record("DeleteEvent", id)
}

func (f *fakeClient) GetEvent(_ context.Context, req *api.GetEventRequest) (*api.Event, error) {
	if err := f.record("GetEvent", req); err != nil {
		return nil, err
	}
	return &api.Event{ID: 1, Title: "Go Meetup", Slug: "go-meetup", Content: "talks"}, nil
}

func (f *fakeClient) ListEvents(_ context.Context, req *api.ListEventsRequest) (*api.ListEventsResponse, error) {
	if err := f.record("ListEvents", req); err != nil {
		return nil, err
	}
	return &api.ListEventsResponse{Events: []api.Event{{ID: 1, Title: "Go Meetup"}}, TotalEvents: 1}, nil
}

func (f *fakeClient) RegisterForEvent(_ context.Context, eventID int64) (*api.Registration, error) {
	if err := f.record("RegisterForEvent", eventID); err != nil {
		return nil, err
	}
	return &api.Registration{ID: 3, EventID: eventID, RegisteredAt: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)}, nil
}

func (f *fakeClient) CancelRegistration(_ context.Context, eventID int64) error {
	return f.record("CancelRegistration", eventID)
}

func (f *fakeClient) ListRegistrants(_ context.Context, eventID int64) ([]api.Registrant, error) {
	if err := f.record("ListRegistrants", eventID); err != nil {
		return nil, err
	}
	return []api.Registrant{{Account: api.Account{ID: 5, Username: "someuser"}}}, nil
}

func (f *fakeClient) AddCoordinator(_ context.Context, eventID, userID int64) error {
	return f.record("AddCoordinator", [2]int64{eventID, userID})
}

func (f *fakeClient) RemoveCoordinator(_ context.Context, eventID, userID int64) error {
	return f.record("RemoveCoordinator", [2]int64{eventID, userID})
}

func (f *fakeClient) ListCoordinators(_ context.Context, eventID int64) ([]api.Account, error) {
	if err := f.record("ListCoordinators", eventID); err != nil {
		return nil, err
	}
	return []api.Account{}, nil
}

func (f *fakeClient) RegisteredEvents(_ context.Context, userID int64) ([]api.Event, error) {
	if err := f.record("RegisteredEvents", userID); err != nil {
		return nil, err
	}
	return []api.Event{{ID: 1, Title: "Go Meetup"}}, nil
}

func (f *fakeClient) CoordinatedEvents(_ context.Context, userID int64) ([]api.Event, error) {
	if err := f.record("CoordinatedEvents", userID); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeClient) UploadURL(_ context.Context, kind string) (*api.UploadURLResponse, error) {
	if err := f.record("UploadURL", kind); err != nil {
		return nil, err
	}
	return &api.UploadURLResponse{Key: kind + "/2026/10/15/x", URL: "https://s3/put"}, nil
}

// newTestApp returns an App reading input and writing to the returned buffer.
func newTestApp(t *testing.T, input string) (*App, *fakeClient, *bytes.Buffer) {
	t.Helper()
	f := &fakeClient{}
	out := &bytes.Buffer{}
	cfg := &config.Config{RequestTimeout: time.Second}
	return newApp(cfg, f, strings.NewReader(input), out), f, out
}

// stubPassword makes GetPassword return pw without touching the terminal.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	prev := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = prev })
}

func signedIn(a *App, admin bool) {
	a.account = &api.Account{ID: 5, Username: "someuser", IsAdmin: admin}
}

