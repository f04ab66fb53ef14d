package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() EventInput {
	return EventInput{
		Title:    "Go Meetup: Riga 2026!",
		Content:  "talks",
		Location: "Riga",
		Datetime: time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC),
	}
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Go Meetup":             "go-meetup",
		"Go Meetup: Riga 2026!": "go-meetup-riga-2026",
		"  spaced  ":            "--spaced--",
		"Ünïcode":               "ncode",
		"!!!":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestEventCreate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	s := NewEventService(newDeps(db, rm))

	_, err := s.Create(context.Background(), user5, validInput())
	require.ErrorIs(t, err, common.ErrForbidden)

	ev, err := s.Create(context.Background(), admin, validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(3), ev.ID)
	assert.Equal(t, int64(1), rm.e.created.UserID)
	assert.Equal(t, "go-meetup-riga-2026", rm.e.created.Slug)
	assert.Equal(t, DefaultMaxRegistration, rm.e.created.MaxRegistration)
}

func TestEventCreate_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := NewEventService(newDeps(db, newFakeRepoManager()))

	mutate := []func(*EventInput){
		func(in *EventInput) { in.Title = " " },
		func(in *EventInput) { in.Content = "" },
		func(in *EventInput) { in.Location = "" },
		func(in *EventInput) { in.Datetime = time.Time{} },
		func(in *EventInput) { in.MaxRegistration = -1 },
		func(in *EventInput) { in.Title = "???" },
	}
	for i, m := range mutate {
		in := validInput()
		m(&in)
		_, err := s.Create(context.Background(), admin, in)
		require.ErrorIs(t, err, common.ErrValidation, "case %d", i)
	}
}

func TestEventCreate_DuplicateTitle(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.e.createErr = common.Conflict("An event with this title already exists")
	s := NewEventService(newDeps(db, rm))

	_, err := s.Create(context.Background(), admin, validInput())
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestEventUpdate(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.e.getOut = &models.Event{ID: 3, UserID: 5}
	s := NewEventService(newDeps(db, rm))

	_, err := s.Update(context.Background(), user6, 3, models.EventPatch{Title: ptr("New")})
	require.ErrorIs(t, err, common.ErrForbidden)

	_, err = s.Update(context.Background(), user5, 3, models.EventPatch{Title: ptr("Go Night"), Slug: ptr("ignored")})
	require.NoError(t, err)
	require.NotNil(t, rm.e.updatedPatch.Slug)
	assert.Equal(t, "go-night", *rm.e.updatedPatch.Slug)

	_, err = s.Update(context.Background(), admin, 3, models.EventPatch{MaxRegistration: ptr(0)})
	require.ErrorIs(t, err, common.ErrValidation)

	rm.e.getErr = common.NotFound("Event not found")
	_, err = s.Update(context.Background(), admin, 3, models.EventPatch{Content: ptr("x")})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestEventDelete(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.e.getOut = &models.Event{ID: 3, UserID: 5}
	s := NewEventService(newDeps(db, rm))

	require.ErrorIs(t, s.Delete(context.Background(), user6, 3), common.ErrForbidden)
	assert.Zero(t, rm.e.deletedID)

	require.NoError(t, s.Delete(context.Background(), user5, 3))
	assert.Equal(t, int64(3), rm.e.deletedID)
}

func TestEventList(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.e.count = 12
	rm.e.sinceCount = 4
	s := NewEventService(newDeps(db, rm))

	page, err := s.List(context.Background(), models.EventFilter{Category: "tech", Pagination: models.Pagination{Limit: -1}})
	require.NoError(t, err)
	assert.NotNil(t, page.Events)
	assert.Equal(t, int64(12), page.TotalEvents)
	assert.Equal(t, int64(4), page.LastMonthEvents)
	assert.Equal(t, 9, rm.e.listFilter.Pagination.Limit)
	assert.Equal(t, "tech", rm.e.listFilter.Category)
}

func TestRegister_CapacityAndDuplicates(t *testing.T) {
	db, mock := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.e.capacity = 2
	s := NewEventService(newDeps(db, rm))

	mock.ExpectBegin()
	mock.ExpectCommit()
	reg, err := s.Register(context.Background(), user5, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), reg.UserID)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = s.Register(context.Background(), user5, 3)
	require.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, "already registered", err.Error())

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = s.Register(context.Background(), user6, 3)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = s.Register(context.Background(), admin, 3)
	require.ErrorIs(t, err, common.ErrConflict)
	assert.Equal(t, "event is full", err.Error())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_MissingEvent(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := newFakeRepoManager()
	rm.e.lockErr = common.NotFound("Event not found")
	s := NewEventService(newDeps(db, rm))

	_, err := s.Register(context.Background(), user5, 99)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestCancelRegistration(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	s := NewEventService(newDeps(db, rm))

	require.NoError(t, s.CancelRegistration(context.Background(), user5, 3))

	rm.re.deleteErr = common.NotFound("Registration not found")
	require.ErrorIs(t, s.CancelRegistration(context.Background(), user5, 3), common.ErrNotFound)
}

func TestRegistrants(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.e.getOut = &models.Event{ID: 3, UserID: 5}
	rm.re.registrants = []models.Registrant{{Account: models.Account{ID: 7, UserName: "marysue1"}}}
	s := NewEventService(newDeps(db, rm))

	got, err := s.Registrants(context.Background(), user5, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = s.Registrants(context.Background(), user6, 3)
	require.ErrorIs(t, err, common.ErrForbidden)

	rm.c.isCoordinator = true
	_, err = s.Registrants(context.Background(), user6, 3)
	require.NoError(t, err)
}

func TestCoordinators(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.e.getOut = &models.Event{ID: 3, UserID: 5}
	rm.c.list = []models.Account{{ID: 6}}
	s := NewEventService(newDeps(db, rm))

	require.ErrorIs(t, s.AddCoordinator(context.Background(), user6, 3, 6), common.ErrForbidden)
	require.NoError(t, s.AddCoordinator(context.Background(), user5, 3, 6))
	assert.Equal(t, [][2]int64{{3, 6}}, rm.c.added)

	rm.c.addErr = common.Conflict("User is already a coordinator of this event")
	require.ErrorIs(t, s.AddCoordinator(context.Background(), user5, 3, 6), common.ErrConflict)

	rm.c.removeErr = common.NotFound("User is not a coordinator of this event")
	require.ErrorIs(t, s.RemoveCoordinator(context.Background(), admin, 3, 7), common.ErrNotFound)

	list, err := s.Coordinators(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestParticipation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.e.byRegistrant = []*models.Event{{ID: 3}}
	s := NewEventService(newDeps(db, rm))

	got, err := s.RegisteredEvents(context.Background(), user5, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = s.RegisteredEvents(context.Background(), user6, 5)
	require.ErrorIs(t, err, common.ErrForbidden)

	got, err = s.CoordinatedEvents(context.Background(), admin, 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
