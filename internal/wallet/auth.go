package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/slice-arcade/internal/config"
)

var (
	ErrNonceInvalid = errors.New("wallet: invalid nonce")
	ErrNonceExpired = errors.New("wallet: nonce expired")
	ErrNonceUsed    = errors.New("wallet: nonce already used")
	ErrBadSignature = errors.New("wallet: invalid signature")
	ErrMissingParam = errors.New("wallet: missing required parameters")
)

// Login is an authenticated wallet session.
type Login struct {
	Token   string
	Player  string
	Expires time.Time
}

type nonceEntry struct {
	issued time.Time
	used   bool
}

// Auth issues single-use nonces and exchanges a signed nonce message for a
// session token. State is held in memory.
type Auth struct {
	mu       sync.Mutex
	nonces   map[string]*nonceEntry
	logins   map[string]Login
	nonceTTL time.Duration
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuth creates an authenticator from wallet config.
func NewAuth(cfg config.WalletConfig) *Auth {
	nonceTTL := time.Duration(cfg.NonceExpirySecs) * time.Second
	if nonceTTL <= 0 {
		nonceTTL = 5 * time.Minute
	}
	tokenTTL := time.Duration(cfg.TokenExpiryHours) * time.Hour
	if tokenTTL <= 0 {
		tokenTTL = 4 * time.Hour
	}
	return &Auth{
		nonces:   make(map[string]*nonceEntry),
		logins:   make(map[string]Login),
		nonceTTL: nonceTTL,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// NonceTTL returns how long an issued nonce stays valid.
func (a *Auth) NonceTTL() time.Duration {
	return a.nonceTTL
}

// IssueNonce returns a fresh random nonce and sweeps expired ones.
func (a *Auth) IssueNonce() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("wallet: generate nonce: %w", err)
	}
	nonce := hex.EncodeToString(buf)

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	a.nonces[nonce] = &nonceEntry{issued: now}
	for n, e := range a.nonces {
		if now.Sub(e.issued) > a.nonceTTL {
			delete(a.nonces, n)
		}
	}
	return nonce, nil
}

// Verify checks that signature is an ed25519 signature of message by
// publicKey and consumes the nonce. publicKey is hex, signature is base64.
// The player identity of the login is the hex public key.
func (a *Auth) Verify(publicKey, message, signature, nonce string) (Login, error) {
	if publicKey == "" || message == "" || signature == "" || nonce == "" {
		return Login{}, ErrMissingParam
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	entry, ok := a.nonces[nonce]
	if !ok {
		return Login{}, ErrNonceInvalid
	}
	if now.Sub(entry.issued) > a.nonceTTL {
		delete(a.nonces, nonce)
		return Login{}, ErrNonceExpired
	}
	if entry.used {
		return Login{}, ErrNonceUsed
	}

	key, err := hex.DecodeString(publicKey)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return Login{}, ErrBadSignature
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return Login{}, ErrBadSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(key), []byte(message), sig) {
		return Login{}, ErrBadSignature
	}

	entry.used = true
	login := Login{
		Token:   uuid.NewString(),
		Player:  publicKey,
		Expires: now.Add(a.tokenTTL),
	}
	a.logins[login.Token] = login
	return login, nil
}

// Player resolves a session token to its player.
func (a *Auth) Player(token string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	login, ok := a.logins[token]
	if !ok {
		return "", ErrUnauthorized
	}
	if a.now().After(login.Expires) {
		delete(a.logins, token)
		return "", ErrUnauthorized
	}
	return login.Player, nil
}
