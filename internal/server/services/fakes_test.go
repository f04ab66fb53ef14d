package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/config"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/policy"
	coordinatorsrepo "github.com/dmitrijs2005/eventhub/internal/server/repositories/coordinators"
	eventsrepo "github.com/dmitrijs2005/eventhub/internal/server/repositories/events"
	refreshtokensrepo "github.com/dmitrijs2005/eventhub/internal/server/repositories/refreshtokens"
	registrationsrepo "github.com/dmitrijs2005/eventhub/internal/server/repositories/registrations"
	rolesrepo "github.com/dmitrijs2005/eventhub/internal/server/repositories/roles"
	usersrepo "github.com/dmitrijs2005/eventhub/internal/server/repositories/users"
)

// --- helpers ---

var (
	admin = policy.Principal{ID: 1, IsAdmin: true}
	user5 = policy.Principal{ID: 5}
	user6 = policy.Principal{ID: 6}
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		StoreTimeout:                 time.Second,
		AdminEmail:                   "admin@example.com",
		AdminPassword:                "adminpass",
		S3Region:                     "us-east-1",
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3BaseEndpoint:               "http://127.0.0.1:9000",
		S3Bucket:                     "eventhub",
	}
}

func newDeps(db *sql.DB, rm *fakeRepoManager) Deps {
	return Deps{
		DB:     db,
		Repos:  rm,
		Config: testConfig(),
		Hasher: fakeHasher{},
		Logger: logging.Nop{},
		Now:    func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) },
	}
}

// recordingLogger keeps error messages so tests can check what was logged.
type recordingLogger struct {
	logging.Nop
	errors []string
}

func (l *recordingLogger) Error(_ context.Context, msg string, args ...any) {
	parts := []string{msg}
	for _, a := range args {
		if s, ok := a.(string); ok {
			parts = append(parts, s)
		}
		if e, ok := a.(error); ok {
			parts = append(parts, e.Error())
		}
	}
	l.errors = append(l.errors, strings.Join(parts, " "))
}

type fakeHasher struct{}

func (fakeHasher) Hash(p string) (string, error) { return "digest:" + p, nil }
func (fakeHasher) Compare(d, p string) bool      { return d == "digest:"+p }

// --- users ---

type fakeUsersRepo struct {
	created   *models.User
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	byEmailOut *models.User
	byEmailErr error

	updatedID    int64
	updatedPatch models.UserPatch
	updateOut    *models.User
	updateErr    error

	deletedID int64
	deleteErr error

	listPage models.Pagination
	listOut  []*models.User
	listErr  error

	count      int64
	countErr   error
	since      time.Time
	sinceCount int64
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	cp := *u
	cp.ID = 100
	return &cp, nil
}

func (f *fakeUsersRepo) GetByID(context.Context, int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) Update(_ context.Context, id int64, p models.UserPatch) (*models.User, error) {
	f.updatedID, f.updatedPatch = id, p
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

func (f *fakeUsersRepo) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

func (f *fakeUsersRepo) List(_ context.Context, p models.Pagination) ([]*models.User, error) {
	f.listPage = p
	return f.listOut, f.listErr
}

func (f *fakeUsersRepo) Count(context.Context) (int64, error) { return f.count, f.countErr }

func (f *fakeUsersRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	f.since = since
	return f.sinceCount, nil
}

// --- roles ---

type fakeRolesRepo struct {
	byName    map[string]*models.Role
	findErr   error
	created   []string
	createErr error
	assigned  [][2]int64
	assignErr error
}

func (f *fakeRolesRepo) FindByName(_ context.Context, name string) (*models.Role, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if r, ok := f.byName[name]; ok {
		return r, nil
	}
	return nil, common.NotFound("Role not found")
}

func (f *fakeRolesRepo) Create(_ context.Context, name string) (*models.Role, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, name)
	if f.byName == nil {
		f.byName = map[string]*models.Role{}
	}
	r := &models.Role{ID: int64(len(f.byName) + 1), Name: name}
	f.byName[name] = r
	return r, nil
}

func (f *fakeRolesRepo) AssignToUser(_ context.Context, userID, roleID int64) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigned = append(f.assigned, [2]int64{userID, roleID})
	return nil
}

func (f *fakeRolesRepo) ListForUser(context.Context, int64) ([]*models.Role, error) {
	return nil, nil
}

// --- events ---

type fakeEventsRepo struct {
	created   *models.Event
	createErr error

	getOut *models.Event
	getErr error

	updatedPatch models.EventPatch
	updateErr    error

	deletedID int64
	deleteErr error

	listFilter models.EventFilter
	listOut    []*models.Event
	count      int64
	sinceCount int64

	capacity int
	lockErr  error

	byRegistrant  []*models.Event
	byCoordinator []*models.Event
}

func (f *fakeEventsRepo) Create(_ context.Context, e *models.Event) (*models.Event, error) {
	f.created = e
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *e
	cp.ID = 3
	return &cp, nil
}

func (f *fakeEventsRepo) GetByID(context.Context, int64) (*models.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeEventsRepo) GetBySlug(ctx context.Context, _ string) (*models.Event, error) {
	return f.GetByID(ctx, 0)
}

func (f *fakeEventsRepo) Update(_ context.Context, _ int64, p models.EventPatch) (*models.Event, error) {
	f.updatedPatch = p
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.getOut, nil
}

func (f *fakeEventsRepo) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

func (f *fakeEventsRepo) List(_ context.Context, filter models.EventFilter) ([]*models.Event, error) {
	f.listFilter = filter
	return f.listOut, nil
}

func (f *fakeEventsRepo) Count(context.Context, models.EventFilter) (int64, error) {
	return f.count, nil
}

func (f *fakeEventsRepo) CountCreatedSince(context.Context, time.Time) (int64, error) {
	return f.sinceCount, nil
}

func (f *fakeEventsRepo) LockForRegistration(context.Context, int64) (int, error) {
	return f.capacity, f.lockErr
}

func (f *fakeEventsRepo) ListByRegistrant(context.Context, int64) ([]*models.Event, error) {
	return f.byRegistrant, nil
}

func (f *fakeEventsRepo) ListByCoordinator(context.Context, int64) ([]*models.Event, error) {
	return f.byCoordinator, nil
}

// --- registrations ---

type fakeRegistrationsRepo struct {
	count       int
	createErr   error
	created     [][2]int64
	deleteErr   error
	registrants []models.Registrant
}

func (f *fakeRegistrationsRepo) Create(_ context.Context, userID, eventID int64) (*models.Registration, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, p := range f.created {
		if p == [2]int64{userID, eventID} {
			return nil, common.Conflict("already registered")
		}
	}
	f.created = append(f.created, [2]int64{userID, eventID})
	f.count++
	return &models.Registration{ID: int64(len(f.created)), UserID: userID, EventID: eventID}, nil
}

func (f *fakeRegistrationsRepo) Delete(context.Context, int64, int64) error { return f.deleteErr }

func (f *fakeRegistrationsRepo) CountForEvent(context.Context, int64) (int, error) {
	return f.count, nil
}

func (f *fakeRegistrationsRepo) ListRegistrants(context.Context, int64) ([]models.Registrant, error) {
	return f.registrants, nil
}

// --- coordinators ---

type fakeCoordinatorsRepo struct {
	isCoordinator bool
	added         [][2]int64
	addErr        error
	removeErr     error
	list          []models.Account
}

func (f *fakeCoordinatorsRepo) Add(_ context.Context, eventID, userID int64) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, [2]int64{eventID, userID})
	return nil
}

func (f *fakeCoordinatorsRepo) Remove(context.Context, int64, int64) error { return f.removeErr }

func (f *fakeCoordinatorsRepo) IsCoordinator(context.Context, int64, int64) (bool, error) {
	return f.isCoordinator, nil
}

func (f *fakeCoordinatorsRepo) ListForEvent(context.Context, int64) ([]models.Account, error) {
	return f.list, nil
}

// --- refresh tokens ---

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	deleted []string
	delErr  error

	created   []string
	createErr error

	deletedForUser int64
}

func (f *fakeRefreshRepo) Create(_ context.Context, _ int64, token string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return f.delErr
}

func (f *fakeRefreshRepo) DeleteForUser(_ context.Context, userID int64) error {
	f.deletedForUser = userID
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	u  *fakeUsersRepo
	ro *fakeRolesRepo
	e  *fakeEventsRepo
	re *fakeRegistrationsRepo
	c  *fakeCoordinatorsRepo
	r  *fakeRefreshRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u:  &fakeUsersRepo{},
		ro: &fakeRolesRepo{},
		e:  &fakeEventsRepo{},
		re: &fakeRegistrationsRepo{},
		c:  &fakeCoordinatorsRepo{},
		r:  &fakeRefreshRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Roles(dbx.DBTX) rolesrepo.Repository         { return m.ro }
func (m *fakeRepoManager) Events(dbx.DBTX) eventsrepo.Repository       { return m.e }
func (m *fakeRepoManager) Registrations(dbx.DBTX) registrationsrepo.Repository {
	return m.re
}
func (m *fakeRepoManager) Coordinators(dbx.DBTX) coordinatorsrepo.Repository {
	return m.c
}
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
