package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

const (
	FunctionKeyHeader = "x-functions-key"
	FunctionKeyQuery  = "code"
)

var ErrNoFunctionKey = errors.New("function key or hash required")

// FunctionKey verifies the shared key callers present at function level.
// Either the plain key or its bcrypt hash is held, never both.
type FunctionKey struct {
	plain []byte
	hash  []byte
}

// NewFunctionKey prefers hash when both are given.
func NewFunctionKey(plain, hash string) (*FunctionKey, error) {
	switch {
	case hash != "":
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, err
		}
		return &FunctionKey{hash: []byte(hash)}, nil
	case plain != "":
		return &FunctionKey{plain: []byte(plain)}, nil
	default:
		return nil, ErrNoFunctionKey
	}
}

// Verify reports whether candidate matches the configured key
func (k *FunctionKey) Verify(candidate string) bool {
	if candidate == "" {
		return false
	}
	if k.hash != nil {
		return bcrypt.CompareHashAndPassword(k.hash, []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare(k.plain, []byte(candidate)) == 1
}

// KeyFromRequest reads the key from the x-functions-key header, then the code query parameter
func KeyFromRequest(r *http.Request) string {
	if key := r.Header.Get(FunctionKeyHeader); key != "" {
		return key
	}
	return r.URL.Query().Get(FunctionKeyQuery)
}
