// Package cli provides the interactive EventHub command-line client.
//
// The REPL signs an account in, keeps its tokens for the session and exposes
// account administration, event browsing, registration and coordinator
// management as commands. Start it with App.Run, which blocks until the user
// exits.
package cli
