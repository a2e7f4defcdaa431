package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"library-client/internal/api"
	"library-client/internal/config"
	"library-client/internal/logging"
	"library-client/internal/session"
	"library-client/internal/ui"
)

// console defers App construction until cobra has parsed the persistent
// flags, so --server and --log-level can override the config file.
type console struct {
	cfg *config.Config
	in  io.Reader
	out io.Writer
	app *App

	serverURL string
	logLevel  string
}

func (c *console) init() {
	if c.serverURL != "" {
		c.cfg.ServerURL = c.serverURL
	}
	if c.logLevel != "" {
		c.cfg.LogLevel = c.logLevel
	}
	c.app = NewApp(c.cfg, logging.New(c.cfg.LogLevel), c.in, c.out)
}

// NewRootCommand builds the command tree. The bare command starts the
// interactive shell; the subcommands are one-shot renderings of the
// same pages, behind the same guard.
func NewRootCommand(cfg *config.Config, in io.Reader, out io.Writer) *cobra.Command {
	c := &console{cfg: cfg, in: in, out: out}

	root := &cobra.Command{
		Use:           "library-client",
		Short:         "Terminal client for the library management server",
		Long:          "Terminal client for the library management server.\nRun without arguments for the interactive shell.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RunShell(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.serverURL, "server", "", "server base URL (overrides config)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides config)")

	root.AddCommand(
		c.newLoginCommand(),
		c.newLogoutCommand(),
		c.newRegisterCommand(),
		c.newWhoamiCommand(),
		c.newDashboardCommand(),
		c.newBooksCommand(),
		c.newAuthorsCommand(),
		c.newStudentsCommand(),
		c.newTransactionsCommand(),
		c.newOverdueCommand(),
	)
	return root
}

func (c *console) newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for this process",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			a.loginDialog(cmd.Context())
			if a.session.State() == session.StateAuthenticated {
				return a.RunShell(cmd.Context())
			}
			return nil
		},
	}
}

func (c *console) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			a.session.Resolve(cmd.Context())
			if a.session.State() != session.StateAuthenticated {
				a.notify.Infof("Not logged in.")
				return nil
			}
			a.logout(cmd.Context())
			return nil
		},
	}
}

func (c *console) newRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a student account",
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.registerDialog(cmd.Context())
			return nil
		},
	}
}

func (c *console) newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			a.session.Resolve(cmd.Context())
			if msg := a.session.Err(); msg != "" {
				a.notify.Errorf("%s", msg)
				return nil
			}
			user := a.session.User()
			if user == nil {
				fmt.Fprintln(a.out, "Not logged in.")
				return nil
			}
			fmt.Fprintf(a.out, "%s <%s> (%s)\n", user.Name, user.EmailID, strings.Join(user.Roles, ", "))
			return nil
		},
	}
}

func (c *console) newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Render the dashboard for your role",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			ctx := cmd.Context()
			if !a.ensureAuthenticated(ctx) {
				return nil
			}
			if a.session.HasRole(api.RoleAdmin) {
				a.adminDashboard(ctx)
			} else {
				a.studentDashboard(ctx)
			}
			return nil
		},
	}
}

func (c *console) newBooksCommand() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List books",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			ctx := cmd.Context()
			if !a.ensureAuthenticated(ctx) {
				return nil
			}
			books, err := a.books.All(ctx)
			if err != nil {
				a.notify.Err(err)
				return nil
			}
			a.renderBooks(oneShotList(books, search, matchBook))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by title, genre, or author")
	return cmd
}

func (c *console) newAuthorsCommand() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "authors",
		Short: "List authors (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			ctx := cmd.Context()
			if !a.ensure(ctx, api.RoleAdmin) {
				return nil
			}
			authors, err := a.authors.All(ctx)
			if err != nil {
				a.notify.Err(err)
				return nil
			}
			a.renderAuthors(oneShotList(authors, search, matchAuthor))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name, email, or country")
	return cmd
}

func (c *console) newStudentsCommand() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "students",
		Short: "List students (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			ctx := cmd.Context()
			if !a.ensure(ctx, api.RoleAdmin) {
				return nil
			}
			students, err := a.students.All(ctx)
			if err != nil {
				a.notify.Err(err)
				return nil
			}
			a.renderStudents(oneShotList(students, search, matchStudent))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name, email, or country")
	return cmd
}

func (c *console) newTransactionsCommand() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			ctx := cmd.Context()
			if !a.ensure(ctx, api.RoleAdmin) {
				return nil
			}
			all, _ := a.transactions.All(ctx)
			a.renderTransactions(oneShotList(all, search, matchTransaction), "", "")
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by transaction id, student, or book")
	return cmd
}

func (c *console) newOverdueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List overdue transactions (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := c.app
			ctx := cmd.Context()
			if !a.ensure(ctx, api.RoleAdmin) {
				return nil
			}
			a.overdueView(ctx)
			return nil
		},
	}
}

// ensureAuthenticated is the guard for pages any signed-in role may see.
func (a *App) ensureAuthenticated(ctx context.Context) bool {
	if a.session.State() == session.StateUnresolved {
		a.session.Resolve(ctx)
		if msg := a.session.Err(); msg != "" {
			a.notify.Errorf("%s", msg)
		}
	}
	if a.session.State() == session.StateAuthenticated {
		return true
	}
	a.notify.Infof("Please log in.")
	if a.loginView(ctx) {
		_ = a.RunShell(ctx)
	}
	return false
}

// oneShotList wraps items for a single non-interactive rendering: one
// page holding every match.
func oneShotList[T any](items []T, search string, match func(T, string) bool) *ui.List[T] {
	size := len(items)
	if size == 0 {
		size = 1
	}
	list := ui.NewList[T](size, match)
	list.SetItems(items)
	list.SetSearch(search)
	return list
}
