package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/gostconsole/internal/client/client"
	"github.com/dmitrijs2005/gostconsole/internal/client/models"
	"github.com/dmitrijs2005/gostconsole/internal/client/services"
	"github.com/dmitrijs2005/gostconsole/internal/common"
	"github.com/dmitrijs2005/gostconsole/internal/logging"
)

// Session is what the console needs from *session.Session.
type Session interface {
	Login(ctx context.Context, creds models.Credentials) (*models.UserInfo, error)
	Logout(ctx context.Context) error
	FetchUserInfo(ctx context.Context) (*models.UserInfo, error)
	Refresh(ctx context.Context) error
	IsLoggedIn() bool
	Username() string
	ExpiresAt() time.Time
}

// Deps are the collaborators of App. In and Out default to the process's
// stdin and stdout.
type Deps struct {
	Session  Session
	Auth     services.AuthAPI
	Nodes    services.NodeService
	Tunnels  services.TunnelService
	Logs     services.LogService
	Stats    services.StatsService
	System   services.SystemService
	Branding *services.Branding
	Router   *Router
	Logger   logging.Logger

	In  io.Reader
	Out io.Writer
}

type App struct {
	session  Session
	auth     services.AuthAPI
	nodes    services.NodeService
	tunnels  services.TunnelService
	logs     services.LogService
	stats    services.StatsService
	system   services.SystemService
	branding *services.Branding
	router   *Router
	logger   logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(d Deps) *App {
	in, out := d.In, d.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	router := d.Router
	if router == nil {
		router = NewRouter()
	}

	return &App{
		session:  d.Session,
		auth:     d.Auth,
		nodes:    d.Nodes,
		tunnels:  d.Tunnels,
		logs:     d.Logs,
		stats:    d.Stats,
		system:   d.System,
		branding: d.Branding,
		router:   router,
		logger:   logger,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// Run shows the banner and blocks in the REPL until the operator exits.
func (a *App) Run(ctx context.Context) {
	a.branding.Sync(ctx)
	fmt.Fprintf(a.out, "%s console (type 'help' for commands)\n", a.branding.Title(ctx))
	if c := a.branding.Copyright(ctx); c != "" {
		fmt.Fprintln(a.out, c)
	}

	if !a.session.IsLoggedIn() {
		a.router.Navigate(common.LoginRoute)
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

func (a *App) loginRequested() bool {
	route, ok := a.router.Pending()
	return ok && route == common.LoginRoute
}

func (a *App) status() string {
	if !a.session.IsLoggedIn() {
		return "(signed out)"
	}
	if u := a.session.Username(); u != "" {
		return fmt.Sprintf("(%s)", u)
	}
	return "(signed in)"
}

// report prints err unless the pipeline has already shown it.
func (a *App) report(ctx context.Context, err error) error {
	if client.Reported(err) {
		a.logger.Debug(ctx, "command failed", "error", err)
		return err
	}
	fmt.Fprintln(a.out, "error:", err)
	return err
}

var errUsage = errors.New("usage")

// idArg parses the single numeric argument of commands like "nodes 3".
func (a *App) idArg(args []string, usage string) (uint, error) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return 0, errUsage
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil || id == 0 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return 0, errUsage
	}
	return uint(id), nil
}
