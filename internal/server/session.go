package server

import (
	"encoding/gob"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/abhisek/mathwhiz/internal/round"
)

const (
	sessionName = "mathwhiz-session"
	roundKey    = "round"

	sessionMaxAge = 86400
)

func init() {
	gob.Register(round.Round{})
}

// SessionConfig configures where browser rounds live and how their
// cookie is issued.
type SessionConfig struct {
	// Dir holds one file per session. The cookie carries only the ID.
	Dir string

	// Key signs the session ID cookie. Empty means a random per-process key.
	Key []byte

	// Secure marks the cookie HTTPS-only. Leave false when serving plain HTTP.
	Secure bool
}

// SessionConfigFromEnv reads MATHWHIZ_SESSION_DIR, MATHWHIZ_SESSION_KEY and
// MATHWHIZ_SECURE_COOKIES.
func SessionConfigFromEnv() (SessionConfig, error) {
	cfg := SessionConfig{
		Dir: os.Getenv("MATHWHIZ_SESSION_DIR"),
		Key: []byte(os.Getenv("MATHWHIZ_SESSION_KEY")),
	}
	if v := os.Getenv("MATHWHIZ_SECURE_COOKIES"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return SessionConfig{}, fmt.Errorf("MATHWHIZ_SECURE_COOKIES: %w", err)
		}
		cfg.Secure = secure
	}
	return cfg, nil
}

// NewSessionStore creates a filesystem-backed session store. Rounds are
// kept on the server so their size is not bounded by cookie limits.
func NewSessionStore(cfg SessionConfig) (*sessions.FilesystemStore, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "mathwhiz-sessions")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	key := cfg.Key
	if len(key) == 0 {
		log.Println("MATHWHIZ_SESSION_KEY not set; sessions will not survive a restart")
		key = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewFilesystemStore(dir, key)
	store.MaxLength(0)
	store.MaxAge(sessionMaxAge)
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.Secure
	if cfg.Secure {
		store.Options.SameSite = http.SameSiteNoneMode
	} else {
		store.Options.SameSite = http.SameSiteLaxMode
	}
	return store, nil
}

// loadRound returns the session and its round, or a nil round if the
// session has none. A cookie that fails to decode starts a fresh session.
func (s *Server) loadRound(r *http.Request) (*sessions.Session, *round.Round) {
	sess, err := s.sessions.Get(r, sessionName)
	if err != nil {
		log.Printf("session decode: %v", err)
	}
	rd, ok := sess.Values[roundKey].(round.Round)
	if !ok {
		return sess, nil
	}
	return sess, &rd
}

func (s *Server) saveRound(w http.ResponseWriter, r *http.Request, sess *sessions.Session, rd *round.Round) error {
	sess.Values[roundKey] = *rd
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save round %s: %w", rd.ID, err)
	}
	return nil
}
