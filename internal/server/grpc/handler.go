package grpc

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *api.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "ok"}, nil
}

// Auth

func (s *GRPCServer) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.AccountResponse, error) {
	acc, err := s.svc.Auth.SignUp(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodSignUp, err)
	}
	return &api.AccountResponse{Account: toAccount(*acc)}, nil
}

func (s *GRPCServer) SignIn(ctx context.Context, req *api.SignInRequest) (*api.SignInResponse, error) {
	tokens, acc, err := s.svc.Auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodSignIn, err)
	}
	return &api.SignInResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Account:      toAccount(*acc),
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	tokens, err := s.svc.Auth.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRefreshToken, err)
	}
	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Accounts.SignOut(ctx, actor); err != nil {
		return nil, s.toStatus(ctx, api.MethodSignOut, err)
	}
	return &api.Empty{}, nil
}

// Accounts

func (s *GRPCServer) GetAccount(ctx context.Context, req *api.IDRequest) (*api.AccountResponse, error) {
	acc, err := s.svc.Accounts.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetAccount, err)
	}
	return &api.AccountResponse{Account: toAccount(*acc)}, nil
}

func (s *GRPCServer) UpdateAccount(ctx context.Context, req *api.UpdateAccountRequest) (*api.AccountResponse, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	patch := models.UserPatch{
		UserName:       req.Username,
		Email:          req.Email,
		ProfilePicture: req.ProfilePicture,
		Password:       req.Password,
	}
	acc, err := s.svc.Accounts.Update(ctx, actor, req.ID, patch)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodUpdateAccount, err)
	}
	return &api.AccountResponse{Account: toAccount(*acc)}, nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, req *api.IDRequest) (*api.Empty, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Accounts.Delete(ctx, actor, req.ID); err != nil {
		return nil, s.toStatus(ctx, api.MethodDeleteAccount, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) ListAccounts(ctx context.Context, req *api.ListAccountsRequest) (*api.ListAccountsResponse, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	page, err := s.svc.Accounts.List(ctx, actor, toPagination(req.Page))
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListAccounts, err)
	}
	return &api.ListAccountsResponse{
		Users:          toAccounts(page.Users),
		TotalUsers:     page.TotalUsers,
		LastMonthUsers: page.LastMonthUsers,
	}, nil
}

// Events

func (s *GRPCServer) CreateEvent(ctx context.Context, req *api.CreateEventRequest) (*api.EventResponse, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	ev, err := s.svc.Events.Create(ctx, actor, services.EventInput{
		Title:           req.Title,
		Content:         req.Content,
		Image:           req.Image,
		Category:        req.Category,
		Location:        req.Location,
		Datetime:        req.Datetime,
		MaxRegistration: req.MaxRegistration,
	})
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodCreateEvent, err)
	}
	return &api.EventResponse{Event: toEvent(ev)}, nil
}

func (s *GRPCServer) UpdateEvent(ctx context.Context, req *api.UpdateEventRequest) (*api.EventResponse, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	ev, err := s.svc.Events.Update(ctx, actor, req.ID, models.EventPatch{
		Title:           req.Title,
		Content:         req.Content,
		Image:           req.Image,
		Category:        req.Category,
		Location:        req.Location,
		Datetime:        req.Datetime,
		MaxRegistration: req.MaxRegistration,
	})
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodUpdateEvent, err)
	}
	return &api.EventResponse{Event: toEvent(ev)}, nil
}

func (s *GRPCServer) DeleteEvent(ctx context.Context, req *api.IDRequest) (*api.Empty, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Events.Delete(ctx, actor, req.ID); err != nil {
		return nil, s.toStatus(ctx, api.MethodDeleteEvent, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) GetEvent(ctx context.Context, req *api.GetEventRequest) (*api.EventResponse, error) {
	var (
		ev  *models.Event
		err error
	)
	if req.ID == 0 && req.Slug != "" {
		ev, err = s.svc.Events.GetBySlug(ctx, req.Slug)
	} else {
		ev, err = s.svc.Events.Get(ctx, req.ID)
	}
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetEvent, err)
	}
	return &api.EventResponse{Event: toEvent(ev)}, nil
}

func (s *GRPCServer) ListEvents(ctx context.Context, req *api.ListEventsRequest) (*api.ListEventsResponse, error) {
	page, err := s.svc.Events.List(ctx, models.EventFilter{
		UserID:     req.UserID,
		Category:   req.Category,
		Slug:       req.Slug,
		SearchTerm: req.SearchTerm,
		Pagination: toPagination(req.Page),
	})
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListEvents, err)
	}
	return &api.ListEventsResponse{
		Events:          toEvents(page.Events),
		TotalEvents:     page.TotalEvents,
		LastMonthEvents: page.LastMonthEvents,
	}, nil
}

func (s *GRPCServer) RegisterForEvent(ctx context.Context, req *api.IDRequest) (*api.RegistrationResponse, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	r, err := s.svc.Events.Register(ctx, actor, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRegisterForEvent, err)
	}
	return &api.RegistrationResponse{Registration: api.Registration{
		ID:           r.ID,
		UserID:       r.UserID,
		EventID:      r.EventID,
		RegisteredAt: r.RegisteredAt,
	}}, nil
}

func (s *GRPCServer) CancelRegistration(ctx context.Context, req *api.IDRequest) (*api.Empty, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Events.CancelRegistration(ctx, actor, req.ID); err != nil {
		return nil, s.toStatus(ctx, api.MethodCancelRegistration, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) ListRegistrants(ctx context.Context, req *api.IDRequest) (*api.RegistrantsResponse, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Events.Registrants(ctx, actor, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListRegistrants, err)
	}
	out := make([]api.Registrant, 0, len(list))
	for _, r := range list {
		out = append(out, api.Registrant{Account: toAccount(r.Account), RegisteredAt: r.RegisteredAt})
	}
	return &api.RegistrantsResponse{Registrants: out}, nil
}

func (s *GRPCServer) AddCoordinator(ctx context.Context, req *api.CoordinatorRequest) (*api.Empty, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Events.AddCoordinator(ctx, actor, req.EventID, req.UserID); err != nil {
		return nil, s.toStatus(ctx, api.MethodAddCoordinator, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) RemoveCoordinator(ctx context.Context, req *api.CoordinatorRequest) (*api.Empty, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.svc.Events.RemoveCoordinator(ctx, actor, req.EventID, req.UserID); err != nil {
		return nil, s.toStatus(ctx, api.MethodRemoveCoordinator, err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) ListCoordinators(ctx context.Context, req *api.IDRequest) (*api.AccountsResponse, error) {
	list, err := s.svc.Events.Coordinators(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListCoordinators, err)
	}
	return &api.AccountsResponse{Accounts: toAccounts(list)}, nil
}

func (s *GRPCServer) RegisteredEvents(ctx context.Context, req *api.IDRequest) (*api.EventsResponse, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Events.RegisteredEvents(ctx, actor, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRegisteredEvents, err)
	}
	return &api.EventsResponse{Events: toEvents(list)}, nil
}

func (s *GRPCServer) CoordinatedEvents(ctx context.Context, req *api.IDRequest) (*api.EventsResponse, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.svc.Events.CoordinatedEvents(ctx, actor, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodCoordinatedEvents, err)
	}
	return &api.EventsResponse{Events: toEvents(list)}, nil
}

// Media

func (s *GRPCServer) UploadURL(ctx context.Context, req *api.UploadURLRequest) (*api.UploadURLResponse, error) {
	actor, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	up, err := s.svc.Media.UploadURL(ctx, actor, services.MediaKind(req.Kind))
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodUploadURL, err)
	}
	return &api.UploadURLResponse{Key: up.Key, URL: up.URL}, nil
}

func (s *GRPCServer) DownloadURL(ctx context.Context, req *api.DownloadURLRequest) (*api.DownloadURLResponse, error) {
	if _, err := principal(ctx); err != nil {
		return nil, err
	}
	url, err := s.svc.Media.DownloadURL(ctx, req.Key)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodDownloadURL, err)
	}
	return &api.DownloadURLResponse{URL: url}, nil
}
