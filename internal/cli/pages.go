package cli

import (
	"fmt"
	"io"
	"strconv"

	"library-client/internal/ui"
)

// listCommand handles the search and pagination commands every list page
// shares. It reports whether cmd was one of them.
func listCommand[T any](out io.Writer, list *ui.List[T], cmd, arg string) bool {
	switch cmd {
	case "search":
		list.SetSearch(arg)
	case "clear":
		list.SetSearch("")
	case "next":
		list.Next()
	case "prev":
		list.Prev()
	case "page":
		if n, err := strconv.Atoi(arg); err == nil {
			list.SetPage(n)
		} else {
			fmt.Fprintf(out, "Invalid page: %s\n", arg)
		}
	case "size":
		if n, err := strconv.Atoi(arg); err == nil {
			list.SetPageSize(n)
		} else {
			fmt.Fprintf(out, "Invalid page size: %s\n", arg)
		}
	default:
		return false
	}
	return true
}

// pageBanner prints the list header line with match count, page
// position, and the active search term.
func pageBanner[T any](out io.Writer, title string, list *ui.List[T]) {
	page, pages, total := list.PageInfo()
	fmt.Fprintf(out, "\n%s — %d matching, page %d/%d", title, total, page, pages)
	if s := list.Search(); s != "" {
		fmt.Fprintf(out, " (search: %q)", s)
	}
	fmt.Fprintln(out)
}
