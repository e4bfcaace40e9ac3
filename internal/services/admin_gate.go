package services

import (
	"context"

	"housingbuddy/internal/uistate"

	"golang.org/x/crypto/bcrypt"
)

type SessionUnbinder interface {
	UnbindSession(sid string) error
}

// AdminGate switches a browser session into admin mode. Admin mode and a
// regular user login never coexist on one session.
type AdminGate struct {
	Store    uistate.Store
	Sessions SessionUnbinder
	// bcrypt hash of the admin credential; empty disables admin login.
	Hash []byte
}

// Login checks the credential. A wrong credential returns false and leaves
// the session untouched.
func (g *AdminGate) Login(ctx context.Context, sid, password string) (bool, error) {
	if len(g.Hash) == 0 || password == "" {
		return false, nil
	}
	if bcrypt.CompareHashAndPassword(g.Hash, []byte(password)) != nil {
		return false, nil
	}
	if err := g.Sessions.UnbindSession(sid); err != nil {
		return false, err
	}
	if err := g.Store.Set(ctx, sid, map[string]string{uistate.KeyAdmin: "true"}); err != nil {
		return false, err
	}
	return true, nil
}

func (g *AdminGate) Logout(ctx context.Context, sid string) error {
	return g.Store.Delete(ctx, sid, uistate.KeyAdmin)
}

// IsAdmin reports the session's admin flag; storage errors read as false.
func (g *AdminGate) IsAdmin(ctx context.Context, sid string) bool {
	if sid == "" {
		return false
	}
	v, ok, err := g.Store.Get(ctx, sid, uistate.KeyAdmin)
	return err == nil && ok && v == "true"
}
