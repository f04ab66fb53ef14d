package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/dbx"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/policy"
	"github.com/dmitrijs2005/eventhub/internal/timex"
)

// DefaultMaxRegistration is the capacity of an event created without one.
const DefaultMaxRegistration = 100

// EventInput holds the fields of a new event. Zero Image, Category and
// MaxRegistration take their defaults.
type EventInput struct {
	Title           string
	Content         string
	Image           string
	Category        string
	Location        string
	Datetime        time.Time
	MaxRegistration int
}

// EventService manages events, registrations and coordinators.
type EventService struct {
	Deps
}

func NewEventService(d Deps) *EventService {
	return &EventService{Deps: d.withDefaults()}
}

// Slugify joins the words of title with dashes, lowercases the result and
// drops everything outside [a-z0-9-].
func Slugify(title string) string {
	s := strings.ToLower(strings.Join(strings.Split(title, " "), "-"))
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
}

func validateEventInput(in EventInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return common.Validation("Title is required")
	case strings.TrimSpace(in.Content) == "":
		return common.Validation("Content is required")
	case strings.TrimSpace(in.Location) == "":
		return common.Validation("Location is required")
	case in.Datetime.IsZero():
		return common.Validation("Datetime is required")
	case in.MaxRegistration < 0:
		return common.Validation("Maximum registration must be greater than 0")
	case Slugify(in.Title) == "":
		return common.Validation("Title must contain letters or numbers")
	}
	return nil
}

func validateEventPatch(p *models.EventPatch) error {
	blank := func(v *string) bool { return v != nil && strings.TrimSpace(*v) == "" }
	switch {
	case blank(p.Title):
		return common.Validation("Title is required")
	case blank(p.Content):
		return common.Validation("Content is required")
	case blank(p.Location):
		return common.Validation("Location is required")
	case p.Datetime != nil && p.Datetime.IsZero():
		return common.Validation("Datetime is required")
	case p.MaxRegistration != nil && *p.MaxRegistration <= 0:
		return common.Validation("Maximum registration must be greater than 0")
	}
	if p.Title != nil {
		slug := Slugify(*p.Title)
		if slug == "" {
			return common.Validation("Title must contain letters or numbers")
		}
		p.Slug = &slug
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, actor policy.Principal, in EventInput) (*models.Event, error) {
	if err := s.Policy.CanCreateEvent(actor).Err(); err != nil {
		return nil, err
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}
	if in.MaxRegistration == 0 {
		in.MaxRegistration = DefaultMaxRegistration
	}

	var out *models.Event
	err := s.run(ctx, "event.create", func(ctx context.Context) error {
		var err error
		out, err = s.Repos.Events(s.DB).Create(ctx, &models.Event{
			UserID:          actor.ID,
			Title:           in.Title,
			Content:         in.Content,
			Image:           in.Image,
			Category:        in.Category,
			Location:        in.Location,
			Datetime:        in.Datetime,
			MaxRegistration: in.MaxRegistration,
			Slug:            Slugify(in.Title),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info(ctx, "event created", "event_id", out.ID, "actor_id", actor.ID)
	return out, nil
}

func (s *EventService) Update(ctx context.Context, actor policy.Principal, eventID int64, patch models.EventPatch) (*models.Event, error) {
	patch.Slug = nil
	if err := validateEventPatch(&patch); err != nil {
		return nil, err
	}

	var out *models.Event
	err := s.run(ctx, "event.update", func(ctx context.Context) error {
		repo := s.Repos.Events(s.DB)

		ev, err := repo.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if err := s.Policy.CanManageEvent(actor, ev).Err(); err != nil {
			return err
		}

		out, err = repo.Update(ctx, eventID, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the event with its registrations and coordinator links.
func (s *EventService) Delete(ctx context.Context, actor policy.Principal, eventID int64) error {
	err := s.run(ctx, "event.delete", func(ctx context.Context) error {
		repo := s.Repos.Events(s.DB)

		ev, err := repo.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if err := s.Policy.CanManageEvent(actor, ev).Err(); err != nil {
			return err
		}
		return repo.Delete(ctx, eventID)
	})
	if err != nil {
		return err
	}

	s.Logger.Info(ctx, "event deleted", "event_id", eventID, "actor_id", actor.ID)
	return nil
}

func (s *EventService) Get(ctx context.Context, eventID int64) (*models.Event, error) {
	var out *models.Event
	err := s.run(ctx, "event.get", func(ctx context.Context) error {
		var err error
		out, err = s.Repos.Events(s.DB).GetByID(ctx, eventID)
		return err
	})
	return out, err
}

func (s *EventService) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	var out *models.Event
	err := s.run(ctx, "event.get_by_slug", func(ctx context.Context) error {
		var err error
		out, err = s.Repos.Events(s.DB).GetBySlug(ctx, slug)
		return err
	})
	return out, err
}

// List returns one page of matching events, the number of matches and the
// number of events created since the same day last month.
func (s *EventService) List(ctx context.Context, f models.EventFilter) (*models.EventPage, error) {
	f.Pagination = f.Pagination.Normalize()

	page := &models.EventPage{}
	err := s.run(ctx, "event.list", func(ctx context.Context) error {
		repo := s.Repos.Events(s.DB)

		list, err := repo.List(ctx, f)
		if err != nil {
			return err
		}
		page.Events = nonNil(list)

		if page.TotalEvents, err = repo.Count(ctx, f); err != nil {
			return err
		}
		page.LastMonthEvents, err = repo.CountCreatedSince(ctx, timex.MonthAgo(s.Now()))
		return err
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Register signs the actor up for the event. The event row stays locked
// while the registrations are counted, so concurrent sign-ups cannot exceed
// the capacity.
func (s *EventService) Register(ctx context.Context, actor policy.Principal, eventID int64) (*models.Registration, error) {
	var out *models.Registration
	err := s.run(ctx, "event.register", func(ctx context.Context) error {
		return dbx.WithTx(ctx, s.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
			capacity, err := s.Repos.Events(tx).LockForRegistration(ctx, eventID)
			if err != nil {
				return err
			}

			regs := s.Repos.Registrations(tx)
			n, err := regs.CountForEvent(ctx, eventID)
			if err != nil {
				return err
			}
			if n >= capacity {
				return common.Conflict("event is full")
			}

			out, err = regs.Create(ctx, actor.ID, eventID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info(ctx, "registered for event", "event_id", eventID, "user_id", actor.ID)
	return out, nil
}

func (s *EventService) CancelRegistration(ctx context.Context, actor policy.Principal, eventID int64) error {
	return s.run(ctx, "event.cancel_registration", func(ctx context.Context) error {
		return s.Repos.Registrations(s.DB).Delete(ctx, actor.ID, eventID)
	})
}

// Registrants is visible to whoever manages or coordinates the event.
func (s *EventService) Registrants(ctx context.Context, actor policy.Principal, eventID int64) ([]models.Registrant, error) {
	var out []models.Registrant
	err := s.run(ctx, "event.registrants", func(ctx context.Context) error {
		ev, err := s.Repos.Events(s.DB).GetByID(ctx, eventID)
		if err != nil {
			return err
		}

		coordinator := false
		if !s.Policy.CanManageEvent(actor, ev).Allowed {
			if coordinator, err = s.Repos.Coordinators(s.DB).IsCoordinator(ctx, eventID, actor.ID); err != nil {
				return err
			}
		}
		if err := s.Policy.CanViewRegistrants(actor, ev, coordinator).Err(); err != nil {
			return err
		}

		out, err = s.Repos.Registrations(s.DB).ListRegistrants(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *EventService) AddCoordinator(ctx context.Context, actor policy.Principal, eventID, userID int64) error {
	return s.run(ctx, "event.add_coordinator", func(ctx context.Context) error {
		if err := s.authorizeManage(ctx, actor, eventID); err != nil {
			return err
		}
		return s.Repos.Coordinators(s.DB).Add(ctx, eventID, userID)
	})
}

func (s *EventService) RemoveCoordinator(ctx context.Context, actor policy.Principal, eventID, userID int64) error {
	return s.run(ctx, "event.remove_coordinator", func(ctx context.Context) error {
		if err := s.authorizeManage(ctx, actor, eventID); err != nil {
			return err
		}
		return s.Repos.Coordinators(s.DB).Remove(ctx, eventID, userID)
	})
}

func (s *EventService) Coordinators(ctx context.Context, eventID int64) ([]models.Account, error) {
	var out []models.Account
	err := s.run(ctx, "event.coordinators", func(ctx context.Context) error {
		if _, err := s.Repos.Events(s.DB).GetByID(ctx, eventID); err != nil {
			return err
		}
		var err error
		out, err = s.Repos.Coordinators(s.DB).ListForEvent(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisteredEvents lists the events userID signed up for.
func (s *EventService) RegisteredEvents(ctx context.Context, actor policy.Principal, userID int64) ([]*models.Event, error) {
	if err := s.Policy.CanViewParticipation(actor, userID).Err(); err != nil {
		return nil, err
	}

	var out []*models.Event
	err := s.run(ctx, "event.registered", func(ctx context.Context) error {
		list, err := s.Repos.Events(s.DB).ListByRegistrant(ctx, userID)
		out = nonNil(list)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CoordinatedEvents lists the events userID coordinates.
func (s *EventService) CoordinatedEvents(ctx context.Context, actor policy.Principal, userID int64) ([]*models.Event, error) {
	if err := s.Policy.CanViewParticipation(actor, userID).Err(); err != nil {
		return nil, err
	}

	var out []*models.Event
	err := s.run(ctx, "event.coordinated", func(ctx context.Context) error {
		list, err := s.Repos.Events(s.DB).ListByCoordinator(ctx, userID)
		out = nonNil(list)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *EventService) authorizeManage(ctx context.Context, actor policy.Principal, eventID int64) error {
	ev, err := s.Repos.Events(s.DB).GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	return s.Policy.CanManageEvent(actor, ev).Err()
}

func nonNil(list []*models.Event) []*models.Event {
	if list == nil {
		return []*models.Event{}
	}
	return list
}
