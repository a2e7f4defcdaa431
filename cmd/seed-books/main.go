// Command seed-books bulk-loads a book catalogue into the server from a
// CSV file. It signs in as an admin, creates each row through the same
// upload endpoint the interactive client uses, and prints a tally.
//
// CSV columns: name, genre, description, publishedYear, authorName,
// authorEmail, authorAge, authorCountry, imagePath. The first row is
// treated as a header. Description, publishedYear, and imagePath may be
// empty.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"library-client/internal/api"
	"library-client/internal/config"
	"library-client/internal/logging"
	"library-client/internal/ui"
)

func main() {
	file := flag.String("file", "books.csv", "CSV file with book rows")
	username := flag.String("username", os.Getenv("LIBRARY_ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("LIBRARY_ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening CSV file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	ctx := context.Background()
	client := api.NewClient(cfg.ServerURL, cfg.UploadTimeout(), log)
	auth := api.NewAuthService(client)
	books := api.NewBookService(client)

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Admin credentials required (flags or LIBRARY_ADMIN_EMAIL / LIBRARY_ADMIN_PASSWORD)")
		os.Exit(1)
	}
	if _, err := auth.Login(ctx, *username, *password); err != nil {
		fmt.Fprintf(os.Stderr, "Error logging in: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeding books from %s...\n", *file)

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	successCount := 0
	errorCount := 0
	var created []api.Book
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			fmt.Printf("Line %d: ERROR - %v\n", line, err)
			errorCount++
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "name") {
			continue
		}

		nb, err := rowToBook(record)
		if err != nil {
			fmt.Printf("Line %d: ERROR - %v\n", line, err)
			errorCount++
			continue
		}

		fmt.Printf("Creating: %s by %s... ", nb.Name, nb.AuthorName)
		book, err := books.Create(ctx, nb)
		if err != nil {
			fmt.Printf("ERROR - %v\n", err)
			errorCount++
			continue
		}
		fmt.Printf("SUCCESS (ID: %d)\n", book.ID)
		created = append(created, *book)
		successCount++
	}

	fmt.Printf("\nSeeding complete!\n")
	fmt.Printf("Successfully created: %d books\n", successCount)
	fmt.Printf("Errors: %d\n", errorCount)

	if len(created) > 0 {
		fmt.Println("\nCreated books:")
		table := ui.NewTable(os.Stdout,
			ui.Column{Header: "ID", Width: 5},
			ui.Column{Header: "Title", Width: 40},
			ui.Column{Header: "Genre", Width: 18},
			ui.Column{Header: "Author", Width: 25},
		)
		table.Header()
		for _, b := range created {
			authorName := ""
			if b.Author != nil {
				authorName = b.Author.Name
			}
			table.Row(strconv.Itoa(b.ID), b.Name, b.Genre, authorName)
		}
	}
	if errorCount > 0 {
		os.Exit(1)
	}
}

func rowToBook(record []string) (api.NewBook, error) {
	var nb api.NewBook
	if len(record) < 8 {
		return nb, fmt.Errorf("expected at least 8 columns, got %d", len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	nb.Name = record[0]
	nb.Genre = record[1]
	nb.Description = record[2]
	if record[3] != "" {
		year, err := strconv.Atoi(record[3])
		if err != nil {
			return nb, fmt.Errorf("invalid published year %q", record[3])
		}
		nb.PublishedYear = year
	}
	nb.AuthorName = record[4]
	nb.AuthorEmail = record[5]
	if record[6] != "" {
		age, err := strconv.Atoi(record[6])
		if err != nil {
			return nb, fmt.Errorf("invalid author age %q", record[6])
		}
		nb.AuthorAge = age
	}
	nb.AuthorCountry = record[7]
	if len(record) > 8 {
		nb.ImagePath = record[8]
	}

	if nb.Name == "" || nb.Genre == "" || nb.AuthorName == "" {
		return nb, fmt.Errorf("name, genre, and authorName are required")
	}
	return nb, nil
}
