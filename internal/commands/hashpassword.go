package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/klabast/wb-services/movement-calendar/internal/app"
)

var errInterrupted = errors.New("interrupted")

// HashPassword handles the hash-password subcommand
func HashPassword(args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ExitOnError)
	overwrite := fs.Bool("overwrite", false, "Overwrite existing auth file without asking")
	insecureUnmask := fs.Bool("insecure-unmask-password", false, "Show password as plain text (INSECURE!)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: movement-calendar hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates the auth file protecting edit mode (Argon2id hashed password).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  AUTH_FILE    Path to auth file (default: auth.secret next to the binary)\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Print("Enter username: ")
	var username string
	if _, err := fmt.Scanln(&username); err != nil {
		return fmt.Errorf("reading username: %w", err)
	}
	if username == "" {
		return errors.New("username cannot be empty")
	}

	read := readMasked
	if *insecureUnmask {
		fmt.Fprintf(os.Stderr, "⚠️  WARNING: Password will be visible on screen!\n")
		read = readPlain
	}

	password, err := read("Enter password:   ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	confirm, err := read("Confirm password: ")
	if err != nil {
		return fmt.Errorf("reading password confirmation: %w", err)
	}

	if err := checkPasswords(password, confirm); err != nil {
		return err
	}
	return app.CreateAuthFile(username, password, *overwrite)
}

// checkPasswords validates the entered password against its confirmation
func checkPasswords(password, confirm string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}
	return nil
}

func readPlain(prompt string) (string, error) {
	fmt.Print(prompt)
	var s string
	_, err := fmt.Scanln(&s)
	return s, err
}

// readMasked reads a password from the terminal echoing asterisks
func readMasked(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Not a terminal, fall back to hidden input
		password, err := term.ReadPassword(fd)
		fmt.Println()
		return string(password), err
	}
	defer term.Restore(fd, oldState)

	password, err := maskInput(bufio.NewReader(os.Stdin), os.Stdout)
	fmt.Print("\r\n")
	return password, err
}

// maskInput consumes keystrokes from r until enter, echoing one asterisk per
// accepted character to w. Backspace removes the last character.
func maskInput(r io.RuneReader, w io.Writer) (string, error) {
	var password []rune
	for {
		char, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return string(password), nil
		}
		if err != nil {
			return "", err
		}

		switch char {
		case '\n', '\r':
			return string(password), nil
		case 127, 8:
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Fprint(w, "\b \b")
			}
		case 3: // Ctrl+C
			return "", errInterrupted
		default:
			if char >= 32 && char <= 126 {
				password = append(password, char)
				fmt.Fprint(w, "*")
			}
		}
	}
}
