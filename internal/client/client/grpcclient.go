package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/common"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type invokeFunc func(ctx context.Context, method string, req, reply any) error

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	invoke      invokeFunc

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	access, refresh := s.tokens()
	if access != "" {
		ctx = withAccessToken(ctx, access)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	var resp api.RefreshTokenResponse
	rerr := invoker(ctx, api.FullMethod(api.MethodRefreshToken), &api.RefreshTokenRequest{RefreshToken: refresh}, &resp, cc, opts...)
	if rerr != nil {
		s.setTokens("", "")
		return rerr
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	ctx = withAccessToken(ctx, resp.AccessToken)
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewEventHubClient connects to the EventHub server at endpointURL.
func NewEventHubClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.invoke = func(ctx context.Context, method string, req, reply any) error {
		return conn.Invoke(ctx, method, req, reply)
	}
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) call(ctx context.Context, method string, req, reply any) error {
	return s.mapError(s.invoke(ctx, api.FullMethod(method), req, reply))
}

// mapError keeps the server's message for domain failures so it can be
// shown to the user as is.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument, codes.PermissionDenied, codes.NotFound, codes.AlreadyExists:
		return errors.New(st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	var resp api.PingResponse
	if err := s.call(ctx, api.MethodPing, &api.Empty{}, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) SignUp(ctx context.Context, username, email, password string) (*api.Account, error) {
	var resp api.AccountResponse
	req := &api.SignUpRequest{Username: username, Email: email, Password: password}
	if err := s.call(ctx, api.MethodSignUp, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

// SignIn authenticates and keeps the issued token pair for later calls.
func (s *GRPCClient) SignIn(ctx context.Context, email, password string) (*api.Account, error) {
	var resp api.SignInResponse
	if err := s.call(ctx, api.MethodSignIn, &api.SignInRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return &resp.Account, nil
}

// SignOut revokes the refresh tokens on the server and forgets the local pair.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	err := s.call(ctx, api.MethodSignOut, &api.Empty{}, &api.Empty{})
	s.setTokens("", "")
	return err
}

func (s *GRPCClient) GetAccount(ctx context.Context, id int64) (*api.Account, error) {
	var resp api.AccountResponse
	if err := s.call(ctx, api.MethodGetAccount, &api.IDRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

func (s *GRPCClient) UpdateAccount(ctx context.Context, req *api.UpdateAccountRequest) (*api.Account, error) {
	var resp api.AccountResponse
	if err := s.call(ctx, api.MethodUpdateAccount, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

func (s *GRPCClient) DeleteAccount(ctx context.Context, id int64) error {
	return s.call(ctx, api.MethodDeleteAccount, &api.IDRequest{ID: id}, &api.Empty{})
}

func (s *GRPCClient) ListAccounts(ctx context.Context, page api.Page) (*api.ListAccountsResponse, error) {
	var resp api.ListAccountsResponse
	if err := s.call(ctx, api.MethodListAccounts, &api.ListAccountsRequest{Page: page}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) CreateEvent(ctx context.Context, req *api.CreateEventRequest) (*api.Event, error) {
	var resp api.EventResponse
	if err := s.call(ctx, api.MethodCreateEvent, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (s *GRPCClient) DeleteEvent(ctx context.Context, id int64) error {
	return s.call(ctx, api.MethodDeleteEvent, &api.IDRequest{ID: id}, &api.Empty{})
}

func (s *GRPCClient) GetEvent(ctx context.Context, req *api.GetEventRequest) (*api.Event, error) {
	var resp api.EventResponse
	if err := s.call(ctx, api.MethodGetEvent, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Event, nil
}

func (s *GRPCClient) ListEvents(ctx context.Context, req *api.ListEventsRequest) (*api.ListEventsResponse, error) {
	var resp api.ListEventsResponse
	if err := s.call(ctx, api.MethodListEvents, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) RegisterForEvent(ctx context.Context, eventID int64) (*api.Registration, error) {
	var resp api.RegistrationResponse
	if err := s.call(ctx, api.MethodRegisterForEvent, &api.IDRequest{ID: eventID}, &resp); err != nil {
		return nil, err
	}
	return &resp.Registration, nil
}

func (s *GRPCClient) CancelRegistration(ctx context.Context, eventID int64) error {
	return s.call(ctx, api.MethodCancelRegistration, &api.IDRequest{ID: eventID}, &api.Empty{})
}

func (s *GRPCClient) ListRegistrants(ctx context.Context, eventID int64) ([]api.Registrant, error) {
	var resp api.RegistrantsResponse
	if err := s.call(ctx, api.MethodListRegistrants, &api.IDRequest{ID: eventID}, &resp); err != nil {
		return nil, err
	}
	return resp.Registrants, nil
}

func (s *GRPCClient) AddCoordinator(ctx context.Context, eventID, userID int64) error {
	return s.call(ctx, api.MethodAddCoordinator, &api.CoordinatorRequest{EventID: eventID, UserID: userID}, &api.Empty{})
}

func (s *GRPCClient) RemoveCoordinator(ctx context.Context, eventID, userID int64) error {
	return s.call(ctx, api.MethodRemoveCoordinator, &api.CoordinatorRequest{EventID: eventID, UserID: userID}, &api.Empty{})
}

func (s *GRPCClient) ListCoordinators(ctx context.Context, eventID int64) ([]api.Account, error) {
	var resp api.AccountsResponse
	if err := s.call(ctx, api.MethodListCoordinators, &api.IDRequest{ID: eventID}, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

func (s *GRPCClient) RegisteredEvents(ctx context.Context, userID int64) ([]api.Event, error) {
	var resp api.EventsResponse
	if err := s.call(ctx, api.MethodRegisteredEvents, &api.IDRequest{ID: userID}, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (s *GRPCClient) CoordinatedEvents(ctx context.Context, userID int64) ([]api.Event, error) {
	var resp api.EventsResponse
	if err := s.call(ctx, api.MethodCoordinatedEvents, &api.IDRequest{ID: userID}, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (s *GRPCClient) UploadURL(ctx context.Context, kind string) (*api.UploadURLResponse, error) {
	var resp api.UploadURLResponse
	if err := s.call(ctx, api.MethodUploadURL, &api.UploadURLRequest{Kind: kind}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
