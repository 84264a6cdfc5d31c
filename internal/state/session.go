package state

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Login sets the owner flag when password matches the owner secret.
func (s *Store) Login(password string) bool {
	if !s.checkSecret(password) {
		s.logger.Info("owner login rejected")
		return false
	}
	s.mu.Lock()
	s.owner = true
	s.persistOwnerLocked()
	s.mu.Unlock()
	s.logger.Info("owner logged in")
	s.notify()
	return true
}

// Logout clears the owner flag.
func (s *Store) Logout() {
	s.mu.Lock()
	s.owner = false
	s.persistOwnerLocked()
	s.mu.Unlock()
	s.notify()
}

// IsOwner reports whether the owner is logged in.
func (s *Store) IsOwner() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owner
}

func (s *Store) checkSecret(password string) bool {
	if isBcryptHash(s.secret) {
		return bcrypt.CompareHashAndPassword([]byte(s.secret), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.secret), []byte(password)) == 1
}

func isBcryptHash(secret string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(secret, prefix) {
			return true
		}
	}
	return false
}
