// Package client is the EventHub gRPC client used by the CLI.
//
// GRPCClient keeps the access and refresh tokens of the signed-in account.
// Every call carries the access token in the access_token metadata key; when
// the server answers that the token expired, the client rotates the token pair
// once and retries the call.
package client
