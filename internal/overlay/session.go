// Package overlay substitutes translated text for source text without
// touching the underlying records. Each browser session owns one Session:
// a cache of translated strings for a single target language plus the
// flags the UI renders from.
package overlay

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	applog "housingbuddy/internal/log"
	"housingbuddy/internal/translate"
	"housingbuddy/internal/uistate"
)

type State struct {
	IsTranslated   bool   `json:"isTranslated"`
	IsTranslating  bool   `json:"isTranslating"`
	TargetLanguage string `json:"targetLanguage"`
}

type Session struct {
	sid   string
	store uistate.Store
	langs *translate.Languages

	mu          sync.RWMutex
	entries     map[string]string
	translated  bool
	translating bool
	target      string
	// gen identifies the latest language selection; responses carrying an
	// older generation are stale.
	gen uint64
}

func newSession(sid string, store uistate.Store, langs *translate.Languages) *Session {
	return &Session{
		sid:     sid,
		store:   store,
		langs:   langs,
		entries: map[string]string{},
		target:  langs.Source,
	}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{IsTranslated: s.translated, IsTranslating: s.translating, TargetLanguage: s.target}
}

// Get looks up a translated string.
func (s *Session) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// SetAll merges entries into the cache and persists the merged map.
func (s *Session) SetAll(ctx context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range entries {
		s.entries[k] = v
	}
	return s.persistLocked(ctx)
}

// Clear drops every translation and returns the session to the source language.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	return s.persistLocked(ctx)
}

func (s *Session) clearLocked() {
	s.entries = map[string]string{}
	s.translated = false
	s.target = s.langs.Source
}

func (s *Session) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.sid, map[string]string{
		uistate.KeyTranslatedData:   string(data),
		uistate.KeyIsTranslated:     strconv.FormatBool(s.translated),
		uistate.KeySelectedLanguage: s.target,
	})
}

// restoreLocked loads the persisted snapshot. Only a complete snapshot is
// accepted: translated flag set, a non-source supported language, and at
// least one entry. Anything else leaves the session on source text.
func (s *Session) restoreLocked(ctx context.Context) {
	flag, ok, err := s.store.Get(ctx, s.sid, uistate.KeyIsTranslated)
	if err != nil || !ok || flag != "true" {
		s.logRestoreErr(err)
		return
	}
	lang, ok, err := s.store.Get(ctx, s.sid, uistate.KeySelectedLanguage)
	if err != nil || !ok {
		s.logRestoreErr(err)
		return
	}
	lang, err = s.langs.Parse(lang)
	if err != nil || lang == s.langs.Source {
		s.logRestoreErr(err)
		return
	}
	raw, ok, err := s.store.Get(ctx, s.sid, uistate.KeyTranslatedData)
	if err != nil || !ok {
		s.logRestoreErr(err)
		return
	}
	entries := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logRestoreErr(err)
		return
	}
	if len(entries) == 0 {
		return
	}
	s.entries = entries
	s.translated = true
	s.target = lang
}

func (s *Session) logRestoreErr(err error) {
	if err != nil {
		applog.Event("warn", "overlay.restore.fail", err, map[string]any{"sid": s.sid[:min(8, len(s.sid))]})
	}
}

// begin marks a new language selection in flight and returns its generation.
func (s *Session) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.translating = true
	return s.gen
}

// reset switches back to the source language, superseding any in-flight call.
func (s *Session) reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.translating = false
	s.clearLocked()
	return s.persistLocked(ctx)
}

// abort ends a call that failed before producing results.
func (s *Session) abort(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.gen {
		s.translating = false
	}
}

// finish applies the result of the call tagged gen. Stale results are
// discarded untouched; failures leave the cache as it was.
func (s *Session) finish(ctx context.Context, gen uint64, lang string, got map[string]string, callErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrSuperseded
	}
	s.translating = false
	if callErr != nil {
		return callErr
	}
	if !s.translated || s.target != lang {
		s.entries = map[string]string{}
	}
	for k, v := range got {
		s.entries[k] = v
	}
	s.translated = len(s.entries) > 0
	if s.translated {
		s.target = lang
	} else {
		s.target = s.langs.Source
	}
	if err := s.persistLocked(ctx); err != nil {
		applog.Event("warn", "overlay.persist.fail", err, nil)
	}
	return nil
}

// mergeFor merges per-entity results only if the session still shows lang.
func (s *Session) mergeFor(ctx context.Context, lang string, got map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.translated || s.target != lang {
		return ErrSuperseded
	}
	for k, v := range got {
		s.entries[k] = v
	}
	return s.persistLocked(ctx)
}
