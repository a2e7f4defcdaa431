package cli

import (
	"context"
	"fmt"

	"library-client/internal/api"
	"library-client/internal/forms"
)

// profilePage is the student's own record: view it, edit it, change the
// password. The record is fetched fresh on entry and after every edit.
func (a *App) profilePage(ctx context.Context) {
	user := a.session.User()
	if user == nil {
		return
	}
	student, err := a.students.FindByID(ctx, user.ID)
	if err != nil {
		a.notify.Err(err)
		return
	}

	for {
		a.renderProfile(student)
		fmt.Fprintln(a.out, "Commands: edit, passwd, refresh, back")
		cmd, ok := a.prompt.Prompt("> ")
		if !ok {
			a.quit = true
			return
		}
		switch cmd {
		case "edit":
			if updated := a.editProfileDialog(ctx, *student); updated != nil {
				student = updated
			}
		case "passwd":
			a.changePasswordDialog(ctx)
		case "refresh":
			if fetched, err := a.students.FindByID(ctx, user.ID); err != nil {
				a.notify.Err(err)
			} else {
				student = fetched
			}
		case "back":
			return
		case "":
		default:
			fmt.Fprintln(a.out, "Unknown command. Type one of: edit, passwd, refresh, back")
		}
	}
}

func (a *App) renderProfile(student *api.Student) {
	fmt.Fprintf(a.out, "\n--- My profile ---\n")
	fmt.Fprintf(a.out, "Name:    %s\n", student.Name)
	if student.StudentID != "" {
		fmt.Fprintf(a.out, "ID:      %s\n", student.StudentID)
	}
	fmt.Fprintf(a.out, "Email:   %s\n", student.EmailID)
	fmt.Fprintf(a.out, "Age:     %d\n", student.Age)
	fmt.Fprintf(a.out, "Country: %s\n", student.Country)
	if student.CardStatus != "" {
		fmt.Fprintf(a.out, "Card:    %s\n", student.CardStatus)
	}
}

// editProfileDialog returns the merged record on success, nil otherwise.
func (a *App) editProfileDialog(ctx context.Context, student api.Student) *api.Student {
	var ok bool
	if student.Name, ok = a.prompt.LineDefault("Name", student.Name); !ok {
		return nil
	}
	if student.EmailID, ok = a.prompt.LineDefault("Email", student.EmailID); !ok {
		return nil
	}
	if student.Age, ok = a.prompt.IntDefault("Age", student.Age); !ok {
		return nil
	}
	if student.Country, ok = a.prompt.LineDefault("Country", student.Country); !ok {
		return nil
	}

	if err := forms.Check(forms.StudentForm{Name: student.Name, EmailID: student.EmailID, Age: student.Age, Country: student.Country}); err != nil {
		a.notify.Err(err)
		return nil
	}
	updated, err := a.students.Update(ctx, student)
	if err != nil {
		a.notify.Err(err)
		return nil
	}
	a.notify.Successf("Profile updated successfully")
	return updated
}

func (a *App) changePasswordDialog(ctx context.Context) {
	old, err := a.prompt.Password("Current password")
	if err != nil {
		a.notify.Err(err)
		return
	}
	newPassword, err := a.prompt.Password("New password")
	if err != nil {
		a.notify.Err(err)
		return
	}
	confirm, err := a.prompt.Password("Confirm new password")
	if err != nil {
		a.notify.Err(err)
		return
	}

	form := forms.PasswordChange{OldPassword: old, NewPassword: newPassword, ConfirmPassword: confirm}
	if err := forms.Check(form); err != nil {
		a.notify.Err(err)
		return
	}
	req := api.ChangePasswordRequest{OldPassword: old, NewPassword: newPassword}
	if err := a.session.ChangePassword(ctx, req); err != nil {
		a.notify.Errorf("%s", a.session.Err())
		return
	}
	a.notify.Successf("Password changed successfully")
}
