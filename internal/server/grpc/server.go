// Package grpc exposes the EventHub services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/eventhub/internal/logging"
	"github.com/dmitrijs2005/eventhub/internal/server/models"
	"github.com/dmitrijs2005/eventhub/internal/server/policy"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

type AccountService interface {
	Update(ctx context.Context, actor policy.Principal, targetID int64, patch models.UserPatch) (*models.Account, error)
	Delete(ctx context.Context, actor policy.Principal, targetID int64) error
	List(ctx context.Context, actor policy.Principal, p models.Pagination) (*models.AccountPage, error)
	Get(ctx context.Context, targetID int64) (*models.Account, error)
	SignOut(ctx context.Context, actor policy.Principal) error
}

type AuthService interface {
	SignUp(ctx context.Context, username, email, password string) (*models.Account, error)
	SignIn(ctx context.Context, email, password string) (*services.TokenPair, *models.Account, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type EventService interface {
	Create(ctx context.Context, actor policy.Principal, in services.EventInput) (*models.Event, error)
	Update(ctx context.Context, actor policy.Principal, eventID int64, patch models.EventPatch) (*models.Event, error)
	Delete(ctx context.Context, actor policy.Principal, eventID int64) error
	Get(ctx context.Context, eventID int64) (*models.Event, error)
	GetBySlug(ctx context.Context, slug string) (*models.Event, error)
	List(ctx context.Context, f models.EventFilter) (*models.EventPage, error)
	Register(ctx context.Context, actor policy.Principal, eventID int64) (*models.Registration, error)
	CancelRegistration(ctx context.Context, actor policy.Principal, eventID int64) error
	Registrants(ctx context.Context, actor policy.Principal, eventID int64) ([]models.Registrant, error)
	AddCoordinator(ctx context.Context, actor policy.Principal, eventID, userID int64) error
	RemoveCoordinator(ctx context.Context, actor policy.Principal, eventID, userID int64) error
	Coordinators(ctx context.Context, eventID int64) ([]models.Account, error)
	RegisteredEvents(ctx context.Context, actor policy.Principal, userID int64) ([]*models.Event, error)
	CoordinatedEvents(ctx context.Context, actor policy.Principal, userID int64) ([]*models.Event, error)
}

type MediaService interface {
	UploadURL(ctx context.Context, actor policy.Principal, kind services.MediaKind) (*services.Upload, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

// Services are the operations served by GRPCServer.
type Services struct {
	Accounts AccountService
	Auth     AuthService
	Events   EventService
	Media    MediaService
}

type GRPCServer struct {
	address   string
	svc       Services
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		svc:       svc,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
	)
	srv.RegisterService(&serviceDesc, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}

