// Package auth holds the yosemite.org session credential. The reservation
// backend has no token endpoint; access rides on the browser session cookie.
package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrNoCookie is returned when no session cookie could be obtained.
var ErrNoCookie = errors.New("no session cookie provided")

// Session carries the cookie string applied to outgoing requests.
type Session struct {
	cookie string
}

// NewSession wraps an already-known cookie string.
func NewSession(cookie string) *Session {
	return &Session{cookie: cookie}
}

// Load resolves the session cookie: the COOKIE environment variable first
// (a local .env file is honored), then an interactive prompt read from in.
func Load(in io.Reader) (*Session, error) {
	// Missing .env is fine; the variable may be set directly.
	_ = godotenv.Load()
	if c := os.Getenv("COOKIE"); c != "" {
		return NewSession(c), nil
	}
	fmt.Fprint(os.Stderr, "Cookie: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read cookie: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrNoCookie
	}
	return NewSession(line), nil
}

// SetAuthHeader applies the session cookie to the request.
func (s *Session) SetAuthHeader(r *http.Request) error {
	if s == nil || s.cookie == "" {
		return ErrNoCookie
	}
	r.Header.Set("Cookie", s.cookie)
	return nil
}
