// Package uistate holds per-session UI state: what a browser tab would keep
// in local storage, kept server-side under the session id.
package uistate

import "context"

// Keys shared with the frontend.
const (
	KeyTranslatedData   = "translatedData"
	KeyIsTranslated     = "isTranslated"
	KeySelectedLanguage = "selectedLanguage"
	KeyAdmin            = "housing-buddy-admin"
	KeyCustomCategories = "customCategories"
)

type Store interface {
	Get(ctx context.Context, sid, key string) (value string, ok bool, err error)
	// Set writes all pairs together.
	Set(ctx context.Context, sid string, kv map[string]string) error
	Delete(ctx context.Context, sid string, keys ...string) error
}
