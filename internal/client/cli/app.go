package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/eventhub/internal/api"
	"github.com/dmitrijs2005/eventhub/internal/client/client"
	"github.com/dmitrijs2005/eventhub/internal/client/config"
)

type App struct {
	config  *config.Config
	client  client.Client
	account *api.Account
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewEventHubClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return newApp(c, apiClient, os.Stdin, os.Stdout), nil
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

// Run starts the REPL and closes the connection when it ends.
func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	fmt.Fprintln(a.out, "Welcome to EventHub CLI (type 'help' for commands)")
	pctx, cancel := a.withTimeout(ctx)
	if err := a.client.Ping(pctx); err != nil {
		fmt.Fprintln(a.out, "Server is not reachable:", err)
	}
	cancel()
	runREPL(ctx, a, a.getStatus, a.reader)
}

// withTimeout bounds a single server call by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) isLoggedIn() bool {
	return a.account != nil
}

func (a *App) getStatus() string {
	if a.account == nil {
		return ""
	}
	if a.account.IsAdmin {
		return fmt.Sprintf("(%s admin)", a.account.Username)
	}
	return fmt.Sprintf("(%s)", a.account.Username)
}

// report prints the outcome of a command.
func (a *App) report(err error) error {
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}
