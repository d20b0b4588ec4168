// Command adminctl bootstraps an admin account directly against the
// database file, prompting for the password without echo. Useful when the
// configured bootstrap credentials should never touch a config file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/filehost/internal/logging"
	"github.com/dmitrijs2005/filehost/internal/server/repositories/users"
	"github.com/dmitrijs2005/filehost/internal/server/services"
	"github.com/dmitrijs2005/filehost/internal/server/storage"
)

// readPassword is a seam for term.ReadPassword.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func promptPassword() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// piped input, e.g. from a secret manager
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Print("Password: ")
	pw, err := readPassword()
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Print("Repeat password: ")
	pw2, err := readPassword()
	fmt.Println()
	if err != nil {
		return "", err
	}

	if string(pw) != string(pw2) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(pw), nil
}

func main() {

	dbFile := flag.String("d", "database.json", "path to database file")
	username := flag.String("u", "admin", "admin username")
	email := flag.String("e", "admin@filehost.local", "admin email")
	flag.Parse()

	password, err := promptPassword()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if password == "" {
		log.Fatal("password must not be empty")
	}

	ctx := context.Background()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	store, err := storage.Open(*dbFile, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer store.Close()

	svc := services.NewUserService(users.NewStoreRepository(store), logger)

	created, err := svc.EnsureAdmin(ctx, *username, password, *email)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if created {
		fmt.Printf("admin account %q created\n", *username)
	} else {
		fmt.Printf("account %q already exists, nothing to do\n", *username)
	}
}
