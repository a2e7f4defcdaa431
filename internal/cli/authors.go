package cli

import (
	"context"
	"fmt"
	"strconv"

	"library-client/internal/api"
	"library-client/internal/forms"
	"library-client/internal/ui"
)

func matchAuthor(author api.Author, term string) bool {
	return ui.ContainsFold(author.Name, term) ||
		ui.ContainsFold(author.Email, term) ||
		ui.ContainsFold(author.Country, term)
}

// authorsPage is the admin author list view.
func (a *App) authorsPage(ctx context.Context) {
	list := ui.NewList[api.Author](a.cfg.PageSize, matchAuthor)
	authors, err := a.authors.All(ctx)
	if err != nil {
		a.notify.Err(err)
		return
	}
	list.SetItems(authors)

	for {
		a.renderAuthors(list)
		fmt.Fprintln(a.out, "Commands: search <text>, clear, next, prev, page <n>, size <n>, add, edit <id>, delete <id>, refresh, back")
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
		case "add":
			a.addAuthorDialog(ctx, list)
		case "edit":
			if id, err := strconv.Atoi(arg); err == nil {
				a.editAuthorDialog(ctx, list, id)
			} else {
				fmt.Fprintf(a.out, "Invalid author ID: %s\n", arg)
			}
		case "delete":
			if id, err := strconv.Atoi(arg); err == nil {
				a.deleteAuthorDialog(ctx, list, id)
			} else {
				fmt.Fprintf(a.out, "Invalid author ID: %s\n", arg)
			}
		case "refresh":
			if authors, err := a.authors.All(ctx); err != nil {
				a.notify.Err(err)
			} else {
				list.SetItems(authors)
			}
		case "back":
			return
		case "":
		default:
			fmt.Fprintln(a.out, "Unknown command. Type one of the commands listed above.")
		}
	}
}

func (a *App) renderAuthors(list *ui.List[api.Author]) {
	pageBanner(a.out, "Authors", list)
	table := ui.NewTable(a.out,
		ui.Column{Header: "ID", Width: 5},
		ui.Column{Header: "Name", Width: 25},
		ui.Column{Header: "Email", Width: 28},
		ui.Column{Header: "Age", Width: 4},
		ui.Column{Header: "Country", Width: 15},
	)
	table.Header()
	for _, author := range list.Rows() {
		table.Row(strconv.Itoa(author.ID), author.Name, author.Email, strconv.Itoa(author.Age), author.Country)
	}
}

func (a *App) addAuthorDialog(ctx context.Context, list *ui.List[api.Author]) {
	author, ok := a.promptAuthor(api.Author{})
	if !ok {
		return
	}
	if err := forms.Check(forms.AuthorForm{Name: author.Name, Email: author.Email, Age: author.Age, Country: author.Country}); err != nil {
		a.notify.Err(err)
		return
	}
	created, err := a.authors.Create(ctx, author)
	if err != nil {
		a.notify.Err(err)
		return
	}
	list.Merge(*created, func(item api.Author) bool { return item.ID == created.ID })
	a.notify.Successf("Author created successfully")
}

func (a *App) editAuthorDialog(ctx context.Context, list *ui.List[api.Author], id int) {
	var current *api.Author
	for _, item := range list.Items() {
		if item.ID == id {
			author := item
			current = &author
			break
		}
	}
	if current == nil {
		fetched, err := a.authors.FindByID(ctx, id)
		if err != nil {
			a.notify.Err(err)
			return
		}
		current = fetched
	}

	author, ok := a.promptAuthorDefaults(*current)
	if !ok {
		return
	}
	if err := forms.Check(forms.AuthorForm{Name: author.Name, Email: author.Email, Age: author.Age, Country: author.Country}); err != nil {
		a.notify.Err(err)
		return
	}
	updated, err := a.authors.Update(ctx, author)
	if err != nil {
		a.notify.Err(err)
		return
	}
	list.Merge(*updated, func(item api.Author) bool { return item.ID == updated.ID })
	a.notify.Successf("Author updated successfully")
}

func (a *App) deleteAuthorDialog(ctx context.Context, list *ui.List[api.Author], id int) {
	if !a.prompt.Confirm(fmt.Sprintf("Delete author %d?", id)) {
		return
	}
	if err := a.authors.Delete(ctx, id); err != nil {
		a.notify.Err(err)
		return
	}
	list.Remove(func(item api.Author) bool { return item.ID == id })
	a.notify.Successf("Author deleted successfully")
}

func (a *App) promptAuthor(author api.Author) (api.Author, bool) {
	var ok bool
	if author.Name, ok = a.prompt.Line("Name"); !ok {
		return author, false
	}
	if author.Email, ok = a.prompt.Line("Email"); !ok {
		return author, false
	}
	// Blank or junk ages become zero so the form validator owns the
	// error message.
	ageText, ok := a.prompt.Line("Age")
	if !ok {
		return author, false
	}
	author.Age, _ = strconv.Atoi(ageText)
	if author.Country, ok = a.prompt.Line("Country"); !ok {
		return author, false
	}
	return author, true
}

func (a *App) promptAuthorDefaults(author api.Author) (api.Author, bool) {
	var ok bool
	if author.Name, ok = a.prompt.LineDefault("Name", author.Name); !ok {
		return author, false
	}
	if author.Email, ok = a.prompt.LineDefault("Email", author.Email); !ok {
		return author, false
	}
	if author.Age, ok = a.prompt.IntDefault("Age", author.Age); !ok {
		return author, false
	}
	if author.Country, ok = a.prompt.LineDefault("Country", author.Country); !ok {
		return author, false
	}
	return author, true
}
