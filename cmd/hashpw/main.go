// Command hashpw prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"recruitment-tracker/internal/security"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errMismatch = errors.New("passwords do not match")

func main() {
	fd := int(os.Stdin.Fd())
	var err error
	if term.IsTerminal(fd) {
		err = runTerminal(fd, os.Stderr, os.Stdout)
	} else {
		err = runPiped(os.Stdin, os.Stdout)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
}

func runTerminal(fd int, prompt, out io.Writer) error {
	fmt.Fprint(prompt, "Admin password: ")
	first, err := readPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return err
	}
	fmt.Fprint(prompt, "Repeat password: ")
	second, err := readPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return err
	}
	if string(first) != string(second) {
		return errMismatch
	}
	return printHash(string(first), out)
}

// runPiped reads the password from the first line of in.
func runPiped(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return printHash(strings.TrimRight(line, "\r\n"), out)
}

func printHash(password string, out io.Writer) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
