package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"library-client/internal/api"
	"library-client/internal/forms"
	"library-client/internal/session"
)

// RunShell is the console entry point: resolve the session once, then
// keep dispatching to the view the guard allows until the user exits.
func (a *App) RunShell(ctx context.Context) error {
	if a.session.State() == session.StateUnresolved {
		a.session.Resolve(ctx)
		if msg := a.session.Err(); msg != "" {
			a.notify.Errorf("%s", msg)
		}
	}

	for !a.quit {
		switch {
		case a.session.State() != session.StateAuthenticated:
			if !a.loginView(ctx) {
				return nil
			}
		case a.session.HasRole(api.RoleAdmin):
			a.adminHome(ctx)
		case a.session.HasRole(api.RoleStudent):
			a.studentHome(ctx)
		default:
			// Authenticated but no recognized role: back to login.
			a.notify.Errorf("Your account has no recognized role. Signing out.")
			if err := a.session.Logout(ctx); err != nil {
				a.session.Expire()
			}
		}
	}
	return nil
}

func (a *App) header(title string) {
	fmt.Fprintf(a.out, "\n=== Library Management — %s ===\n", title)
	if user := a.session.User(); user != nil {
		fmt.Fprintf(a.out, "Signed in as %s (%s)\n", user.Name, strings.Join(user.Roles, ", "))
	}
}

// loginView is the unauthenticated screen. Returns false when the user
// is done with the program.
func (a *App) loginView(ctx context.Context) bool {
	a.loginActive = true
	defer func() { a.loginActive = false }()

	for a.session.State() != session.StateAuthenticated {
		fmt.Fprintln(a.out, "\n=== Library Management ===")
		fmt.Fprintln(a.out, "Commands: login, register, exit")
		cmd, ok := a.prompt.Prompt("> ")
		if !ok {
			return false
		}
		switch cmd {
		case "login":
			a.loginDialog(ctx)
		case "register":
			a.registerDialog(ctx)
		case "exit":
			a.quit = true
			return false
		case "":
		default:
			fmt.Fprintln(a.out, "Unknown command. Type one of: login, register, exit")
		}
	}
	return true
}

func (a *App) loginDialog(ctx context.Context) {
	username, ok := a.prompt.Line("Email")
	if !ok {
		return
	}
	password, err := a.prompt.Password("Password")
	if err != nil {
		a.notify.Err(err)
		return
	}
	if err := forms.Check(forms.LoginForm{Username: username, Password: password}); err != nil {
		a.notify.Err(err)
		return
	}
	if err := a.session.Login(ctx, username, password); err != nil {
		a.notify.Errorf("%s", a.session.Err())
		return
	}
	a.notify.Successf("Welcome back, %s.", a.session.User().Name)
}

func (a *App) registerDialog(ctx context.Context) {
	name, ok := a.prompt.Line("Name")
	if !ok {
		return
	}
	email, ok := a.prompt.Line("Email")
	if !ok {
		return
	}
	ageText, ok := a.prompt.Line("Age")
	if !ok {
		return
	}
	age, _ := strconv.Atoi(ageText)
	country, ok := a.prompt.Line("Country")
	if !ok {
		return
	}
	password, err := a.prompt.Password("Password")
	if err != nil {
		a.notify.Err(err)
		return
	}
	confirm, err := a.prompt.Password("Confirm password")
	if err != nil {
		a.notify.Err(err)
		return
	}

	form := forms.Registration{
		Name:            name,
		EmailID:         email,
		Age:             age,
		Country:         country,
		Password:        password,
		ConfirmPassword: confirm,
	}
	if err := forms.Check(form); err != nil {
		a.notify.Err(err)
		return
	}

	student := api.Student{
		Name:     name,
		EmailID:  email,
		Age:      age,
		Country:  country,
		Password: password,
	}
	if err := a.session.Register(ctx, student); err != nil {
		a.notify.Errorf("%s", a.session.Err())
		return
	}
	a.notify.Successf("Registration successful. Please log in.")
}

func (a *App) adminHome(ctx context.Context) {
	a.header("Admin")
	fmt.Fprintln(a.out, "Commands: dashboard, books, students, authors, transactions, logout, exit")
	cmd, ok := a.prompt.Prompt("> ")
	if !ok {
		a.quit = true
		return
	}
	switch cmd {
	case "dashboard":
		a.adminDashboard(ctx)
	case "books":
		a.booksPage(ctx, true)
	case "students":
		a.studentsPage(ctx)
	case "authors":
		a.authorsPage(ctx)
	case "transactions":
		a.transactionsPage(ctx)
	case "logout":
		a.logout(ctx)
	case "exit":
		a.quit = true
	case "":
	default:
		fmt.Fprintln(a.out, "Unknown command. Type one of the commands listed above.")
	}
}

func (a *App) studentHome(ctx context.Context) {
	a.header("Student")
	fmt.Fprintln(a.out, "Commands: dashboard, books, transactions, profile, logout, exit")
	cmd, ok := a.prompt.Prompt("> ")
	if !ok {
		a.quit = true
		return
	}
	switch cmd {
	case "dashboard":
		a.studentDashboard(ctx)
	case "books":
		a.booksPage(ctx, false)
	case "transactions":
		a.studentTransactionsPage(ctx)
	case "profile":
		a.profilePage(ctx)
	case "logout":
		a.logout(ctx)
	case "exit":
		a.quit = true
	case "":
	default:
		fmt.Fprintln(a.out, "Unknown command. Type one of the commands listed above.")
	}
}

func (a *App) logout(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		a.notify.Errorf("%s", a.session.Err())
		return
	}
	a.notify.Successf("Signed out.")
}

// ensure runs the route guard for one-shot commands. On a redirect it
// renders the substitute view; the original destination is lost, so the
// caller simply stops.
func (a *App) ensure(ctx context.Context, role string) bool {
	if a.session.State() == session.StateUnresolved {
		a.session.Resolve(ctx)
		if msg := a.session.Err(); msg != "" {
			a.notify.Errorf("%s", msg)
		}
	}
	switch decision, home := Decide(a.session, role); decision {
	case Allow:
		return true
	case RedirectHome:
		a.notify.Infof("This area requires the %s role. Showing your dashboard instead.", role)
		if home == api.RoleAdmin {
			a.adminDashboard(ctx)
		} else {
			a.studentDashboard(ctx)
		}
		return false
	default:
		a.notify.Infof("Please log in.")
		if a.loginView(ctx) {
			_ = a.RunShell(ctx)
		}
		return false
	}
}
