package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/api"
)

const datetimeLayout = "2006-01-02 15:04"

func (a *App) printEvent(e api.Event) {
	fmt.Fprintf(a.out, "#%d %s [%s] %s @ %s (max %d) /%s\n",
		e.ID, e.Title, e.Category, e.Datetime.Format(datetimeLayout), e.Location, e.MaxRegistration, e.Slug)
}

func (a *App) printEvents(list []api.Event) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No events")
		return
	}
	for _, e := range list {
		a.printEvent(e)
	}
}

// Events lists events, optionally matching a search term.
func (a *App) Events(ctx context.Context, args []string) error {
	req := &api.ListEventsRequest{SearchTerm: strings.Join(args, " ")}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	resp, err := a.client.ListEvents(ctx, req)
	if err != nil {
		return a.report(err)
	}
	a.printEvents(resp.Events)
	fmt.Fprintf(a.out, "%d events in total, %d created in the last month\n", resp.TotalEvents, resp.LastMonthEvents)
	return nil
}

// Show prints one event looked up by id or slug, with its coordinators.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.report(fmt.Errorf("usage: show <id|slug>"))
	}
	req := &api.GetEventRequest{Slug: args[0]}
	if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
		req = &api.GetEventRequest{ID: id}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	ev, err := a.client.GetEvent(ctx, req)
	if err != nil {
		return a.report(err)
	}
	a.printEvent(*ev)
	fmt.Fprintln(a.out, ev.Content)
	return nil
}

// CreateEvent prompts for the event fields. Empty image, category and
// capacity take the server defaults.
func (a *App) CreateEvent(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	var req api.CreateEventRequest
	prompts := []struct {
		prompt string
		dst    *string
	}{
		{"Title", &req.Title},
		{"Description", &req.Content},
		{"Location", &req.Location},
		{"Category (empty for default)", &req.Category},
		{"Image key or URL (empty for default)", &req.Image},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.prompt, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	when, err := getSimpleText(a.reader, "Date and time ("+datetimeLayout+", UTC)", a.out)
	if err != nil {
		return err
	}
	req.Datetime, err = time.Parse(datetimeLayout, when)
	if err != nil {
		return a.report(fmt.Errorf("invalid date %q", when))
	}

	capacity, err := getSimpleText(a.reader, "Maximum registrations (empty for default)", a.out)
	if err != nil {
		return err
	}
	if capacity != "" {
		if req.MaxRegistration, err = strconv.Atoi(capacity); err != nil {
			return a.report(fmt.Errorf("invalid number %q", capacity))
		}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	ev, err := a.client.CreateEvent(ctx, &req)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Event created")
	a.printEvent(*ev)
	return nil
}

func (a *App) DeleteEvent(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, 0, "event id")
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.DeleteEvent(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Event %d has been deleted\n", id)
	return nil
}

// Join registers the signed-in account for an event.
func (a *App) Join(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, 0, "event id")
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	reg, err := a.client.RegisterForEvent(ctx, id)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Registered for event %d at %s\n", reg.EventID, reg.RegisteredAt.Format(datetimeLayout))
	return nil
}

// Leave cancels the registration of the signed-in account.
func (a *App) Leave(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, 0, "event id")
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.CancelRegistration(ctx, id); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Registration for event %d cancelled\n", id)
	return nil
}

func (a *App) Registrants(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := parseID(args, 0, "event id")
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	list, err := a.client.ListRegistrants(ctx, id)
	if err != nil {
		return a.report(err)
	}
	for _, r := range list {
		fmt.Fprintf(a.out, "#%d %s <%s> registered %s\n", r.ID, r.Username, r.Email, r.RegisteredAt.Format(datetimeLayout))
	}
	fmt.Fprintf(a.out, "%d registrants\n", len(list))
	return nil
}

func (a *App) coordinatorArgs(args []string) (int64, int64, error) {
	eventID, err := parseID(args, 0, "event id")
	if err != nil {
		return 0, 0, err
	}
	userID, err := parseID(args, 1, "user id")
	if err != nil {
		return 0, 0, err
	}
	return eventID, userID, nil
}

func (a *App) AddCoordinator(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	eventID, userID, err := a.coordinatorArgs(args)
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.AddCoordinator(ctx, eventID, userID); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "User %d now coordinates event %d\n", userID, eventID)
	return nil
}

func (a *App) RemoveCoordinator(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	eventID, userID, err := a.coordinatorArgs(args)
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.RemoveCoordinator(ctx, eventID, userID); err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "User %d no longer coordinates event %d\n", userID, eventID)
	return nil
}

func (a *App) Coordinators(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "event id")
	if err != nil {
		return a.report(err)
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	list, err := a.client.ListCoordinators(ctx, id)
	if err != nil {
		return a.report(err)
	}
	for _, c := range list {
		a.printAccount(c)
	}
	fmt.Fprintf(a.out, "%d coordinators\n", len(list))
	return nil
}

// MyEvents shows the events the signed-in account registered for and the
// ones it coordinates.
func (a *App) MyEvents(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	registered, err := a.client.RegisteredEvents(ctx, a.account.ID)
	if err != nil {
		return a.report(err)
	}
	coordinated, err := a.client.CoordinatedEvents(ctx, a.account.ID)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "Registered:")
	a.printEvents(registered)
	fmt.Fprintln(a.out, "Coordinating:")
	a.printEvents(coordinated)
	return nil
}
