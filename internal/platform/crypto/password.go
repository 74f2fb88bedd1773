package crypto

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

var (
	ErrPasswordTooShort      = errors.New("password must be at least 8 characters")
	ErrPasswordNoUpper       = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLower       = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoNumber      = errors.New("password must contain at least one number")
	ErrPasswordNoSpecialChar = errors.New("password must contain at least one special character")
)

var (
	upperRX   = regexp.MustCompile(`[A-Z]`)
	lowerRX   = regexp.MustCompile(`[a-z]`)
	numberRX  = regexp.MustCompile(`[0-9]`)
	specialRX = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// ValidatePasswordStrength returns the first rule password breaks, or nil.
func ValidatePasswordStrength(password string) error {
	switch {
	case len(password) < 8:
		return ErrPasswordTooShort
	case !upperRX.MatchString(password):
		return ErrPasswordNoUpper
	case !lowerRX.MatchString(password):
		return ErrPasswordNoLower
	case !numberRX.MatchString(password):
		return ErrPasswordNoNumber
	case !specialRX.MatchString(password):
		return ErrPasswordNoSpecialChar
	}
	return nil
}
