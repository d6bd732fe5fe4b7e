package password

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// ErrPolicy marks a password that fails the complexity policy. Use errors.Is
// to detect it; the error text names the violated rules.
var ErrPolicy = errors.New("password does not meet complexity requirements")

const minLength = 8

// Hash produces a salted bcrypt digest. Every call salts freshly, so two
// hashes of the same plaintext differ.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the bcrypt digest. A mismatch is
// false, not an error.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// CheckPolicy enforces the registration password policy: at least 8
// characters, one uppercase letter, one digit and one special character.
// There is no upper length bound.
func CheckPolicy(plaintext string) error {
	var violations []string

	if len([]rune(plaintext)) < minLength {
		violations = append(violations, fmt.Sprintf("at least %d characters", minLength))
	}

	var upper, digit, special bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			special = true
		}
	}

	if !upper {
		violations = append(violations, "an uppercase letter")
	}
	if !digit {
		violations = append(violations, "a digit")
	}
	if !special {
		violations = append(violations, "a special character")
	}

	if len(violations) > 0 {
		return fmt.Errorf("%w: needs %s", ErrPolicy, strings.Join(violations, ", "))
	}

	return nil
}
