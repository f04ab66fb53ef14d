package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a service error to a gRPC status. Only domain messages
// reach the caller; anything else is logged and reported as internal.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "invalid token")
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, "token expired")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, "refresh token expired")
	}

	switch common.KindOf(err) {
	case common.KindValidation:
		return status.Error(codes.InvalidArgument, err.Error())
	case common.KindForbidden:
		return status.Error(codes.PermissionDenied, err.Error())
	case common.KindNotFound:
		return status.Error(codes.NotFound, err.Error())
	case common.KindConflict:
		return status.Error(codes.AlreadyExists, err.Error())
	}

	if !errors.Is(err, common.ErrInternal) {
		s.logger.Error(ctx, "request failed", "method", method, "error", err)
	}
	return status.Error(codes.Internal, common.ErrInternal.Error())
}
