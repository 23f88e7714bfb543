package shortcode

import (
	"crypto/rand"
	"math/big"
	"net/url"
	"regexp"
)

// DefaultLength is the length of generated codes.
const DefaultLength = 6

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]{6,8}$`)

// IsValidCode reports whether code is 6-8 ASCII alphanumeric characters.
func IsValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// IsValidURL reports whether raw parses as an absolute URL with an http or
// https scheme. Opaque forms like "http:example.com" are rejected: without
// an authority there is no host to redirect to.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Generate returns a random code of the given length drawn uniformly from the
// 62-character alphanumeric alphabet. Codes are not guaranteed unique; the
// caller verifies uniqueness against the store.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}
	return string(b), nil
}
