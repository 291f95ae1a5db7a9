package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/basaltlabs/basalt/internal/db"
	"github.com/basaltlabs/basalt/internal/security"
	"github.com/basaltlabs/basalt/internal/services"
	"gorm.io/gorm"
)

const (
	temporaryPasswordLength = 12
	minManualPasswordLength = 8
)

// RunResetPasswordCommand replaces the stored password hash of one account.
// The new password is read from the terminal without echo; an empty entry
// (or an unreadable terminal) falls back to a generated temporary password
// that is printed once.
func RunResetPasswordCommand(dbPath string, username string) error {
	normalized := services.NormalizeUsername(username)
	if normalized == "" {
		return errors.New("username is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	users := db.NewUserRepository(database)
	user, err := users.FindByNormalizedUsername(normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalized)
		}
		return fmt.Errorf("load user: %w", err)
	}

	password, generated, err := resolveNewPassword(os.Stdin)
	if err != nil {
		return err
	}

	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.HashedPassword = hashedPassword
	if err := users.Save(&user); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Printf("Password reset for %s\n", user.Username)
	if generated {
		fmt.Printf("Temporary password: %s\n", password)
	}

	return nil
}

func resolveNewPassword(stdin *os.File) (string, bool, error) {
	fmt.Print("New password (leave empty to generate one): ")
	first, err := readPasswordNoEcho(stdin)
	fmt.Println()
	if err != nil || first == "" {
		password, genErr := generateTemporaryPassword(temporaryPasswordLength)
		if genErr != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", genErr)
		}
		return password, true, nil
	}

	if len(first) < minManualPasswordLength {
		return "", false, fmt.Errorf("password must be at least %d characters", minManualPasswordLength)
	}

	fmt.Print("Repeat password: ")
	second, err := readPasswordNoEcho(stdin)
	fmt.Println()
	if err != nil {
		return "", false, fmt.Errorf("read password confirmation: %w", err)
	}
	if first != second {
		return "", false, errors.New("passwords do not match")
	}

	return first, false, nil
}

func readTrimmedLine(stdin *os.File) (string, error) {
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return security.RandomString(length)
}
