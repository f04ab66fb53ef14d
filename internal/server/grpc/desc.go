package grpc

import (
	"context"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"google.golang.org/grpc"
)

// eventHubServer is the handler type of serviceDesc.
type eventHubServer interface {
	Ping(context.Context, *api.Empty) (*api.PingResponse, error)
}

// unary adapts a GRPCServer method to a grpc.MethodDesc, running it behind
// the server's interceptor chain.
func unary[Req, Resp any](name string, call func(*GRPCServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(*GRPCServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: api.FullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*eventHubServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(api.MethodPing, (*GRPCServer).Ping),
		unary(api.MethodSignUp, (*GRPCServer).SignUp),
		unary(api.MethodSignIn, (*GRPCServer).SignIn),
		unary(api.MethodRefreshToken, (*GRPCServer).RefreshToken),
		unary(api.MethodSignOut, (*GRPCServer).SignOut),

		unary(api.MethodGetAccount, (*GRPCServer).GetAccount),
		unary(api.MethodUpdateAccount, (*GRPCServer).UpdateAccount),
		unary(api.MethodDeleteAccount, (*GRPCServer).DeleteAccount),
		unary(api.MethodListAccounts, (*GRPCServer).ListAccounts),

		unary(api.MethodCreateEvent, (*GRPCServer).CreateEvent),
		unary(api.MethodUpdateEvent, (*GRPCServer).UpdateEvent),
		unary(api.MethodDeleteEvent, (*GRPCServer).DeleteEvent),
		unary(api.MethodGetEvent, (*GRPCServer).GetEvent),
		unary(api.MethodListEvents, (*GRPCServer).ListEvents),
		unary(api.MethodRegisterForEvent, (*GRPCServer).RegisterForEvent),
		unary(api.MethodCancelRegistration, (*GRPCServer).CancelRegistration),
		unary(api.MethodListRegistrants, (*GRPCServer).ListRegistrants),
		unary(api.MethodAddCoordinator, (*GRPCServer).AddCoordinator),
		unary(api.MethodRemoveCoordinator, (*GRPCServer).RemoveCoordinator),
		unary(api.MethodListCoordinators, (*GRPCServer).ListCoordinators),
		unary(api.MethodRegisteredEvents, (*GRPCServer).RegisteredEvents),
		unary(api.MethodCoordinatedEvents, (*GRPCServer).CoordinatedEvents),

		unary(api.MethodUploadURL, (*GRPCServer).UploadURL),
		unary(api.MethodDownloadURL, (*GRPCServer).DownloadURL),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "eventhub/v1/eventhub.json",
}
