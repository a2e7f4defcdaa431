package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"library-client/internal/api"
	"library-client/internal/forms"
	"library-client/internal/ui"
)

// matchBook mirrors the web page's filter fields: title, genre, author.
func matchBook(b api.Book, term string) bool {
	if ui.ContainsFold(b.Name, term) || ui.ContainsFold(b.Genre, term) {
		return true
	}
	return b.Author != nil && ui.ContainsFold(b.Author.Name, term)
}

// booksPage is the book list view. Admins get the full CRUD dialog set;
// students browse and view details only.
func (a *App) booksPage(ctx context.Context, admin bool) {
	list := ui.NewList[api.Book](a.cfg.PageSize, matchBook)
	books, err := a.books.All(ctx)
	if err != nil {
		a.notify.Err(err)
		return
	}
	list.SetItems(books)

	for {
		a.renderBooks(list)
		if admin {
			fmt.Fprintln(a.out, "Commands: search <text>, clear, next, prev, page <n>, size <n>, view <id>, add, edit <id>, delete <id>, refresh, back")
		} else {
			fmt.Fprintln(a.out, "Commands: search <text>, clear, next, prev, page <n>, size <n>, view <id>, refresh, back")
		}
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
				a.bookDetail(ctx, id, admin)
			} else {
				fmt.Fprintf(a.out, "Invalid book ID: %s\n", arg)
			}
		case "add":
			if admin {
				a.addBookDialog(ctx, list)
			} else {
				fmt.Fprintln(a.out, "Unknown command.")
			}
		case "edit":
			if !admin {
				fmt.Fprintln(a.out, "Unknown command.")
				break
			}
			if id, err := strconv.Atoi(arg); err == nil {
				a.editBookDialog(ctx, list, id)
			} else {
				fmt.Fprintf(a.out, "Invalid book ID: %s\n", arg)
			}
		case "delete":
			if !admin {
				fmt.Fprintln(a.out, "Unknown command.")
				break
			}
			if id, err := strconv.Atoi(arg); err == nil {
				a.deleteBookDialog(ctx, list, id)
			} else {
				fmt.Fprintf(a.out, "Invalid book ID: %s\n", arg)
			}
		case "refresh":
			if books, err := a.books.All(ctx); err != nil {
				a.notify.Err(err)
			} else {
				list.SetItems(books)
			}
		case "back":
			return
		case "":
		default:
			fmt.Fprintln(a.out, "Unknown command. Type one of the commands listed above.")
		}
	}
}

func (a *App) renderBooks(list *ui.List[api.Book]) {
	pageBanner(a.out, "Books", list)
	table := ui.NewTable(a.out,
		ui.Column{Header: "ID", Width: 5},
		ui.Column{Header: "Title", Width: 30},
		ui.Column{Header: "Genre", Width: 18},
		ui.Column{Header: "Author", Width: 22},
		ui.Column{Header: "Year", Width: 5},
		ui.Column{Header: "Available", Width: 9},
	)
	table.Header()
	for _, b := range list.Rows() {
		authorName := ""
		if b.Author != nil {
			authorName = b.Author.Name
		}
		year := ""
		if b.PublishedYear > 0 {
			year = strconv.Itoa(b.PublishedYear)
		}
		table.Row(strconv.Itoa(b.ID), b.Name, b.Genre, authorName, year, ui.YesNo(b.Available))
	}
}

// addBookDialog collects the create form. The author comes either from
// an existing record or from inline new-author fields; the toggle lives
// here, not in the service.
func (a *App) addBookDialog(ctx context.Context, list *ui.List[api.Book]) {
	name, ok := a.prompt.Line("Title")
	if !ok {
		return
	}
	fmt.Fprintf(a.out, "Genres: %s\n", strings.Join(api.Genres, ", "))
	genre, ok := a.prompt.Line("Genre")
	if !ok {
		return
	}
	description, ok := a.prompt.Line("Description (optional)")
	if !ok {
		return
	}
	yearText, ok := a.prompt.Line("Published year (optional)")
	if !ok {
		return
	}
	year := 0
	if yearText != "" {
		if n, err := strconv.Atoi(yearText); err == nil {
			year = n
		}
	}

	nb := api.NewBook{Name: name, Genre: genre, Description: description, PublishedYear: year}

	if a.prompt.Confirm("Use an existing author?") {
		authors, err := a.authors.All(ctx)
		if err != nil {
			a.notify.Err(err)
			return
		}
		a.renderAuthorChoices(authors)
		id, ok := a.prompt.Int("Author ID")
		if !ok {
			return
		}
		var picked *api.Author
		for i := range authors {
			if authors[i].ID == id {
				picked = &authors[i]
				break
			}
		}
		if picked == nil {
			a.notify.Errorf("Selected author not found")
			return
		}
		nb.AuthorName = picked.Name
		nb.AuthorEmail = picked.Email
		nb.AuthorAge = picked.Age
		nb.AuthorCountry = picked.Country
	} else {
		if nb.AuthorName, ok = a.prompt.Line("Author name"); !ok {
			return
		}
		if nb.AuthorEmail, ok = a.prompt.Line("Author email"); !ok {
			return
		}
		ageText, ok := a.prompt.Line("Author age")
		if !ok {
			return
		}
		if n, err := strconv.Atoi(ageText); err == nil {
			nb.AuthorAge = n
		}
		if nb.AuthorCountry, ok = a.prompt.Line("Author country"); !ok {
			return
		}
	}

	if nb.ImagePath, ok = a.prompt.Line("Cover image path (optional)"); !ok {
		return
	}

	form := forms.BookForm{
		Name:          nb.Name,
		Genre:         nb.Genre,
		AuthorName:    nb.AuthorName,
		AuthorEmail:   nb.AuthorEmail,
		AuthorAge:     nb.AuthorAge,
		AuthorCountry: nb.AuthorCountry,
	}
	if err := forms.Check(form); err != nil {
		a.notify.Err(err)
		return
	}

	created, err := a.books.Create(ctx, nb)
	if err != nil {
		a.notify.Err(err)
		return
	}
	list.Merge(*created, func(b api.Book) bool { return b.ID == created.ID })
	a.notify.Successf("Book created successfully")
}

func (a *App) editBookDialog(ctx context.Context, list *ui.List[api.Book], id int) {
	var current *api.Book
	for _, b := range list.Items() {
		if b.ID == id {
			book := b
			current = &book
			break
		}
	}
	if current == nil {
		fetched, err := a.books.FindByID(ctx, id)
		if err != nil {
			a.notify.Err(err)
			return
		}
		current = fetched
	}

	name, ok := a.prompt.LineDefault("Title", current.Name)
	if !ok {
		return
	}
	fmt.Fprintf(a.out, "Genres: %s\n", strings.Join(api.Genres, ", "))
	genre, ok := a.prompt.LineDefault("Genre", current.Genre)
	if !ok {
		return
	}
	description, ok := a.prompt.LineDefault("Description", current.Description)
	if !ok {
		return
	}
	year, ok := a.prompt.IntDefault("Published year", current.PublishedYear)
	if !ok {
		return
	}

	if name == "" || genre == "" {
		a.notify.Errorf("Please fill in all required fields")
		return
	}

	book := *current
	book.Name = name
	book.Genre = genre
	book.Description = description
	book.PublishedYear = year

	updated, err := a.books.Update(ctx, book)
	if err != nil {
		a.notify.Err(err)
		return
	}
	list.Merge(*updated, func(b api.Book) bool { return b.ID == updated.ID })
	a.notify.Successf("Book updated successfully")
}

func (a *App) deleteBookDialog(ctx context.Context, list *ui.List[api.Book], id int) {
	if !a.prompt.Confirm(fmt.Sprintf("Delete book %d?", id)) {
		return
	}
	if err := a.books.Delete(ctx, id); err != nil {
		a.notify.Err(err)
		return
	}
	// Local removal; no refetch.
	list.Remove(func(b api.Book) bool { return b.ID == id })
	a.notify.Successf("Book deleted successfully")
}

// bookDetail is the live detail view. The transaction history is an
// admin-context extra, exactly like the web route split.
func (a *App) bookDetail(ctx context.Context, id int, admin bool) {
	book, err := a.books.FindByID(ctx, id)
	if err != nil {
		a.notify.Err(err)
		return
	}
	fmt.Fprintf(a.out, "\n%s (ID %d)\n", book.Name, book.ID)
	fmt.Fprintf(a.out, "Genre:     %s\n", book.Genre)
	if book.Author != nil {
		fmt.Fprintf(a.out, "Author:    %s (%s)\n", book.Author.Name, book.Author.Country)
	}
	if book.PublishedYear > 0 {
		fmt.Fprintf(a.out, "Published: %d\n", book.PublishedYear)
	}
	fmt.Fprintf(a.out, "Available: %s\n", ui.YesNo(book.Available))
	if book.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", book.Description)
	}
	if book.HasImage {
		fmt.Fprintf(a.out, "Cover:     %s\n", a.books.ImageURL(book.ID))
	}

	if !admin {
		return
	}
	history, err := a.transactions.ByBook(ctx, id)
	if err != nil {
		a.notify.Err(err)
		return
	}
	fmt.Fprintln(a.out, "\nTransaction history:")
	a.renderTransactionRows(history)
}

func (a *App) renderAuthorChoices(authors []api.Author) {
	table := ui.NewTable(a.out,
		ui.Column{Header: "ID", Width: 5},
		ui.Column{Header: "Name", Width: 25},
		ui.Column{Header: "Email", Width: 28},
		ui.Column{Header: "Country", Width: 15},
	)
	table.Header()
	for _, author := range authors {
		table.Row(strconv.Itoa(author.ID), author.Name, author.Email, author.Country)
	}
}

func splitCommand(input string) (cmd, arg string) {
	parts := strings.SplitN(input, " ", 2)
	cmd = parts[0]
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}
