// Command hashpw prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"bookcatalog/internal/platform/crypto"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("hashpw", flag.ContinueOnError)
	password := fs.String("password", "", "Password to hash (read from stdin when empty)")
	weak := fs.Bool("allow-weak", false, "Skip the password strength check")
	if err := fs.Parse(args); err != nil {
		return err
	}

	plain := *password
	if plain == "" {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		plain = strings.TrimRight(line, "\r\n")
	}
	if plain == "" {
		return errors.New("password is empty")
	}

	if !*weak {
		if err := crypto.ValidatePasswordStrength(plain); err != nil {
			return err
		}
	}

	hash, err := crypto.HashPassword(plain)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}
