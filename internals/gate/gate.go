package gate

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/wib2/futsal-record/pkg/kvstore"
)

// The gate is a UX convenience for co-located scorekeepers, not a security
// boundary: one shared PIN, hashed, flipping the whole UI between read-only
// and editable.

var (
	ErrEmptyPin  = errors.New("pin is empty")
	ErrPinSet    = errors.New("pin is already set")
	ErrPinNotSet = errors.New("pin is not set")
	ErrPinWrong  = errors.New("pin mismatch")
)

const (
	pinHashKey = "futsal_admin_pin_hash"
	tokensKey  = "futsal_editor_tokens"
)

type Service struct {
	KV     kvstore.KVStore
	secret []byte
}

func New(kv kvstore.KVStore, secret string) *Service {
	return &Service{KV: kv, secret: []byte(secret)}
}

// HashPin hex-encodes the SHA-256 of the PIN; the stored hash format the
// previous frontend used, kept comparable.
func HashPin(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

func (g *Service) HasPin() bool {
	h, err := g.KV.Get(pinHashKey)
	return err == nil && h != ""
}

// SetPin stores the PIN hash once and unlocks the caller. Changing an
// existing PIN goes through ResetPin.
func (g *Service) SetPin(pin string) (string, error) {
	if pin == "" {
		return "", ErrEmptyPin
	}
	if g.HasPin() {
		return "", ErrPinSet
	}
	if err := g.KV.Set(pinHashKey, HashPin(pin)); err != nil {
		return "", err
	}
	return g.issueToken()
}

// Unlock compares the PIN against the stored hash and hands back a fresh
// editor token on match.
func (g *Service) Unlock(pin string) (string, error) {
	if pin == "" {
		return "", ErrEmptyPin
	}
	stored, err := g.KV.Get(pinHashKey)
	if err != nil || stored == "" {
		return "", ErrPinNotSet
	}
	if HashPin(pin) != stored {
		return "", ErrPinWrong
	}
	return g.issueToken()
}

// ResetPin replaces the PIN after verifying the current one. Every issued
// editor token is revoked; the caller gets a fresh one.
func (g *Service) ResetPin(oldPin, newPin string) (string, error) {
	if newPin == "" {
		return "", ErrEmptyPin
	}
	stored, err := g.KV.Get(pinHashKey)
	if err != nil || stored == "" {
		return "", ErrPinNotSet
	}
	if HashPin(oldPin) != stored {
		return "", ErrPinWrong
	}
	if err := g.KV.Delete(tokensKey); err != nil {
		return "", err
	}
	if err := g.KV.Set(pinHashKey, HashPin(newPin)); err != nil {
		return "", err
	}
	return g.issueToken()
}

// Lock revokes one editor token.
func (g *Service) Lock(token string) error {
	return g.KV.LRem(tokensKey, 1, token)
}

// Validate checks signature, expiry and the whitelist. Any failure reads as
// "viewer", never as an error surfaced to the caller.
func (g *Service) Validate(tokenString string) bool {
	if tokenString == "" {
		return false
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["editor"] != true {
		return false
	}

	tokens, err := g.KV.LRange(tokensKey, 0, -1)
	if err != nil {
		return false
	}
	for _, t := range tokens {
		if t == tokenString {
			return true
		}
	}
	return false
}

func (g *Service) issueToken() (string, error) {
	// jti keeps tokens issued in the same second distinct, so revoking one
	// editor session leaves the others whitelisted.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"editor": true,
		"jti":    uuid.NewString(),
		"exp":    time.Now().Add(time.Hour * 72).Unix(),
	})
	tokenString, err := token.SignedString(g.secret)
	if err != nil {
		return "", err
	}
	if err := g.KV.RPush(tokensKey, tokenString); err != nil {
		return "", err
	}
	return tokenString, nil
}
