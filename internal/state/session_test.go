package state

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/five82/storefront/internal/localstore"
	"github.com/five82/storefront/internal/shop"
)

func TestLoginLogout_Scenario(t *testing.T) {
	s := newTestStore(t, nil, nil, nil)

	if s.Login("wrong") {
		t.Fatalf("Login(wrong) = true")
	}
	if s.IsOwner() {
		t.Fatalf("owner flag set after failed login")
	}
	if !s.Login(shop.OwnerPassword) {
		t.Fatalf("Login(correct) = false")
	}
	if !s.IsOwner() {
		t.Fatalf("owner flag not set after login")
	}
	s.Logout()
	if s.IsOwner() {
		t.Fatalf("owner flag still set after logout")
	}
}

func TestLogin_ConfiguredSecrets(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}

	tests := []struct {
		name   string
		secret string
	}{
		{"plain", "s3cret"},
		{"bcrypt", string(hash)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Options{OwnerSecret: tt.secret})
			if s.Login(shop.OwnerPassword) {
				t.Fatalf("default password accepted with a configured secret")
			}
			if s.Login(tt.secret + "x") {
				t.Fatalf("wrong password accepted")
			}
			if !s.Login("s3cret") {
				t.Fatalf("correct password rejected")
			}
		})
	}
}

func TestOwnerFlag_SurvivesReload(t *testing.T) {
	backend := localstore.NewMemory()
	s := newTestStore(t, backend, nil, nil)
	loginOwner(t, s)

	if !newTestStore(t, backend, nil, nil).IsOwner() {
		t.Fatalf("owner flag lost on reload")
	}
	s.Logout()
	if newTestStore(t, backend, nil, nil).IsOwner() {
		t.Fatalf("logout not persisted")
	}
}

func TestIsBcryptHash(t *testing.T) {
	tests := map[string]bool{
		"$2a$10$abc": true,
		"$2b$12$abc": true,
		"$2y$10$abc": true,
		"admin":      false,
		"$argon2id$": false,
	}
	for secret, want := range tests {
		if got := isBcryptHash(secret); got != want {
			t.Errorf("isBcryptHash(%q) = %v, want %v", secret, got, want)
		}
	}
}
