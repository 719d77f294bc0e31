// Package password bundles credential hashing, the account password policy,
// and temporary-password generation for admin-issued accounts.
package password

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SpecialChars is the set of symbols accepted (and required, at least one)
// by the password policy.
const SpecialChars = "@$!%*?&#^()-_=+<>"

const minLength = 6

// ErrWeakPassword is returned by Validate for any policy violation. The
// message doubles as the API response body, so it spells out the full rule.
var ErrWeakPassword = errors.New(
	"password must be at least 6 characters long and include a combination of lowercase, uppercase, number, and special character")

const hashCost = 10

// Hash derives a salted bcrypt digest from a plaintext secret.
func Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether secret matches the stored bcrypt digest. Plaintext
// secrets are never compared by equality anywhere else.
func Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}

// Validate checks a candidate password against the account policy: length of
// at least 6, one lowercase, one uppercase, one digit, one special character,
// and no characters outside those four classes.
func Validate(candidate string) error {
	if len(candidate) < minLength {
		return ErrWeakPassword
	}

	var lower, upper, digit, special bool
	for _, r := range candidate {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(SpecialChars, r):
			special = true
		default:
			return ErrWeakPassword
		}
	}

	if !lower || !upper || !digit || !special {
		return ErrWeakPassword
	}
	return nil
}

// GenerateTemporary returns a random 12-character hex password for
// admin-issued accounts. It intentionally does not satisfy Validate; the
// account is unusable until the holder completes the forced reset anyway.
func GenerateTemporary() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateStrong returns a random 12-character password guaranteed to
// satisfy Validate, for deployments that want temporary credentials held to
// the same policy as self-service ones.
func GenerateStrong() (string, error) {
	const (
		lower  = "abcdefghijklmnopqrstuvwxyz"
		upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		digits = "0123456789"
		length = 12
	)
	all := lower + upper + digits + SpecialChars

	// One pick from each class first so the result always validates.
	pools := []string{lower, upper, digits, SpecialChars}
	out := make([]byte, 0, length)
	for _, pool := range pools {
		c, err := pick(pool)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	for len(out) < length {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates so the class-guaranteed picks are not positionally fixed.
	for i := len(out) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("generate strong password: %w", err)
		}
		j := n.Int64()
		out[i], out[j] = out[j], out[i]
	}
	return string(out), nil
}

func pick(pool string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
	if err != nil {
		return 0, fmt.Errorf("generate strong password: %w", err)
	}
	return pool[n.Int64()], nil
}
