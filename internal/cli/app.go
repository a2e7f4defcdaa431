// Package cli is the console: a cobra command tree over an interactive,
// role-gated shell. Every page of the web client maps to a shell view or
// a one-shot subcommand.
package cli

import (
	"io"

	"github.com/rs/zerolog"

	"library-client/internal/api"
	"library-client/internal/config"
	"library-client/internal/session"
	"library-client/internal/ui"
)

// App wires the client, the services, the session, and the console I/O.
type App struct {
	cfg *config.Config
	log zerolog.Logger

	client       *api.Client
	auth         *api.AuthService
	books        *api.BookService
	authors      *api.AuthorService
	students     *api.StudentService
	transactions *api.TransactionService
	dashboard    *api.DashboardService

	session *session.Session
	prompt  *ui.Prompter
	notify  *ui.Notifier
	out     io.Writer

	loginActive bool
	quit        bool
}

// NewApp builds the full dependency graph. in/out are injectable so
// tests can script the console.
func NewApp(cfg *config.Config, log zerolog.Logger, in io.Reader, out io.Writer) *App {
	client := api.NewClient(cfg.ServerURL, cfg.UploadTimeout(), log)
	a := &App{
		cfg:          cfg,
		log:          log,
		client:       client,
		auth:         api.NewAuthService(client),
		books:        api.NewBookService(client),
		authors:      api.NewAuthorService(client),
		students:     api.NewStudentService(client),
		transactions: api.NewTransactionService(client),
		dashboard:    api.NewDashboardService(client),
		prompt:       ui.NewPrompter(in, out),
		notify:       ui.NewNotifier(out),
		out:          out,
	}
	a.session = session.New(a.auth)
	client.SetNavigator(a)
	return a
}

// Session exposes the auth state to the command layer and tests.
func (a *App) Session() *session.Session { return a.session }

// LoginActive implements api.Navigator: while the login view is up, a
// 401 must not trigger another redirect into it.
func (a *App) LoginActive() bool { return a.loginActive }

// ForceLogin implements api.Navigator: the server ended the session, so
// drop the identity and let the shell land on the login view.
func (a *App) ForceLogin() {
	a.session.Expire()
	a.notify.Infof("Session expired. Please log in again.")
}
