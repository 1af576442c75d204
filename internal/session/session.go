package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/student-spending/spendboard/internal/backend"
)

var ErrNoSession = errors.New("not logged in")

// Session is the persisted login of the local user.
type Session struct {
	Token string       `json:"token"`
	User  backend.User `json:"user"`
}

// DefaultPath is the session file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}

	return filepath.Join(dir, "spendboard", "session.json"), nil
}

func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSession
	}

	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	if s.Token == "" {
		return nil, ErrNoSession
	}

	return &s, nil
}

// Save writes the session readable by the owner only.
func Save(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing session: %w", err)
	}

	return nil
}

func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}

	return nil
}

// Expired reports whether the token's exp claim has passed. Tokens that carry no
// readable expiry are left for the server to judge.
func (s *Session) Expired(now time.Time) bool {
	claims, err := ParseClaims(s.Token)
	if err != nil {
		return false
	}

	return claims.Expired(now)
}

// Claims are the parts of an access token shown to the user.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ParseClaims decodes a JWT without verifying its signature. The key lives on the
// server; the result is for display only.
func ParseClaims(token string) (Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("parsing token: %w", err)
	}

	var c Claims

	if sub, ok := mc["sub"]; ok && sub != nil {
		c.Subject = fmt.Sprint(sub)
	}

	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("reading exp: %w", err)
	}

	if exp != nil {
		c.ExpiresAt = exp.Time
	}

	return c, nil
}
