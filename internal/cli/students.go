package cli

import (
	"context"
	"fmt"
	"strconv"

	"library-client/internal/api"
	"library-client/internal/forms"
	"library-client/internal/ui"
)

// matchStudent mirrors the web page's filter fields: name, email,
// country.
func matchStudent(student api.Student, term string) bool {
	return ui.ContainsFold(student.Name, term) ||
		ui.ContainsFold(student.EmailID, term) ||
		ui.ContainsFold(student.Country, term)
}

// studentsPage is the admin student list view.
func (a *App) studentsPage(ctx context.Context) {
	list := ui.NewList[api.Student](a.cfg.PageSize, matchStudent)
	students, err := a.students.All(ctx)
	if err != nil {
		a.notify.Err(err)
		return
	}
	list.SetItems(students)

	for {
		a.renderStudents(list)
		fmt.Fprintln(a.out, "Commands: search <text>, clear, next, prev, page <n>, size <n>, view <id>, edit <id>, delete <id>, refresh, back")
		input, ok := a.prompt.Prompt("> ")
		if !ok {
			a.quit = true
			return
		}
		cmd, arg := splitCommand(input)
		if listCommand(a.out, list, cmd, arg) {
			continue
		}
		switch cmd {
		case "view":
			if id, err := strconv.Atoi(arg); err == nil {
				a.studentDetail(ctx, id)
			} else {
				fmt.Fprintf(a.out, "Invalid student ID: %s\n", arg)
			}
		case "edit":
			if id, err := strconv.Atoi(arg); err == nil {
				a.editStudentDialog(ctx, list, id)
			} else {
				fmt.Fprintf(a.out, "Invalid student ID: %s\n", arg)
			}
		case "delete":
			if id, err := strconv.Atoi(arg); err == nil {
				a.deleteStudentDialog(ctx, list, id)
			} else {
				fmt.Fprintf(a.out, "Invalid student ID: %s\n", arg)
			}
		case "refresh":
			if students, err := a.students.All(ctx); err != nil {
				a.notify.Err(err)
			} else {
				list.SetItems(students)
			}
		case "back":
			return
		case "":
		default:
			fmt.Fprintln(a.out, "Unknown command. Type one of the commands listed above.")
		}
	}
}

func (a *App) renderStudents(list *ui.List[api.Student]) {
	pageBanner(a.out, "Students", list)
	table := ui.NewTable(a.out,
		ui.Column{Header: "ID", Width: 5},
		ui.Column{Header: "Student ID", Width: 12},
		ui.Column{Header: "Name", Width: 25},
		ui.Column{Header: "Email", Width: 28},
		ui.Column{Header: "Country", Width: 15},
		ui.Column{Header: "Card", Width: 10},
	)
	table.Header()
	for _, student := range list.Rows() {
		table.Row(strconv.Itoa(student.ID), student.StudentID, student.Name, student.EmailID, student.Country, student.CardStatus)
	}
}

// studentDetail is the admin view of one student: identity plus the
// student's borrowed books and transaction history.
func (a *App) studentDetail(ctx context.Context, id int) {
	student, err := a.students.FindByID(ctx, id)
	if err != nil {
		a.notify.Err(err)
		return
	}
	fmt.Fprintf(a.out, "\n%s (ID %d)\n", student.Name, student.ID)
	if student.StudentID != "" {
		fmt.Fprintf(a.out, "Student ID: %s\n", student.StudentID)
	}
	fmt.Fprintf(a.out, "Email:      %s\n", student.EmailID)
	fmt.Fprintf(a.out, "Age:        %d\n", student.Age)
	fmt.Fprintf(a.out, "Country:    %s\n", student.Country)
	if student.CardStatus != "" {
		fmt.Fprintf(a.out, "Card:       %s\n", student.CardStatus)
	}

	borrowed, err := a.books.BorrowedByStudent(ctx, id)
	if err == nil && len(borrowed) > 0 {
		fmt.Fprintln(a.out, "\nCurrently borrowed:")
		for _, b := range borrowed {
			fmt.Fprintf(a.out, "  %d  %s\n", b.ID, b.Name)
		}
	}

	history, err := a.transactions.ByStudent(ctx, id)
	if err != nil {
		a.notify.Err(err)
		return
	}
	fmt.Fprintln(a.out, "\nTransaction history:")
	a.renderTransactionRows(history)
}

func (a *App) editStudentDialog(ctx context.Context, list *ui.List[api.Student], id int) {
	var current *api.Student
	for _, item := range list.Items() {
		if item.ID == id {
			student := item
			current = &student
			break
		}
	}
	if current == nil {
		fetched, err := a.students.FindByID(ctx, id)
		if err != nil {
			a.notify.Err(err)
			return
		}
		current = fetched
	}

	student := *current
	var ok bool
	if student.Name, ok = a.prompt.LineDefault("Name", student.Name); !ok {
		return
	}
	if student.EmailID, ok = a.prompt.LineDefault("Email", student.EmailID); !ok {
		return
	}
	if student.Age, ok = a.prompt.IntDefault("Age", student.Age); !ok {
		return
	}
	if student.Country, ok = a.prompt.LineDefault("Country", student.Country); !ok {
		return
	}

	if err := forms.Check(forms.StudentForm{Name: student.Name, EmailID: student.EmailID, Age: student.Age, Country: student.Country}); err != nil {
		a.notify.Err(err)
		return
	}
	updated, err := a.students.Update(ctx, student)
	if err != nil {
		a.notify.Err(err)
		return
	}
	list.Merge(*updated, func(item api.Student) bool { return item.ID == updated.ID })
	a.notify.Successf("Student updated successfully")
}

func (a *App) deleteStudentDialog(ctx context.Context, list *ui.List[api.Student], id int) {
	if !a.prompt.Confirm(fmt.Sprintf("Delete student %d?", id)) {
		return
	}
	if err := a.students.Delete(ctx, id); err != nil {
		a.notify.Err(err)
		return
	}
	list.Remove(func(item api.Student) bool { return item.ID == id })
	a.notify.Successf("Student deleted successfully")
}
