package authutil

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// GenerateOTP returns a 6-digit one-time password for the reset-password
// email, using crypto/rand.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateTempPassword builds the temporary password a newly provisioned
// account receives: the user's lowercased first name, "@", and four random
// digits (e.g. "minh@4821").
func GenerateTempPassword(firstName string) (string, error) {
	base := strings.ToLower(strings.TrimSpace(firstName))
	base = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, base)
	if base == "" {
		base = "user"
	}

	n, err := rand.Int(rand.Reader, big.NewInt(10_000))
	if err != nil {
		return "", fmt.Errorf("generate temp password: %w", err)
	}
	return fmt.Sprintf("%s@%04d", base, n.Int64()), nil
}
