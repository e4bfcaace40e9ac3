package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"golang.org/x/crypto/bcrypt"

	"housingbuddy/internal/config"
	"housingbuddy/internal/http/handlers"
	"housingbuddy/internal/repos"
	"housingbuddy/internal/translate"
)

const adminPassword = "hb-admin-secret"

// fakeBatcher "translates" by tagging text with the target language.
type fakeBatcher struct {
	mu    sync.Mutex
	calls int
	fail  error
}

func (f *fakeBatcher) TranslateBatch(_ context.Context, items []translate.Item, target string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	out := make(map[string]string, len(items))
	for _, it := range items {
		out[it.Key] = "[" + target + "]" + it.Text
	}
	return out, nil
}

type mailbox struct {
	mu    sync.Mutex
	links []string
}

func (m *mailbox) SendVerification(_ context.Context, _, _, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = append(m.links, link)
	return nil
}

func (m *mailbox) lastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.links) == 0 {
		t.Fatal("no verification mail sent")
	}
	l := m.links[len(m.links)-1]
	return l[strings.Index(l, "token=")+len("token="):]
}

type testApp struct {
	app     *fiber.App
	batcher *fakeBatcher
	mail    *mailbox
	deps    *handlers.Deps
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{
		PublicBaseURL:     "http://housingbuddy.test",
		AdminPasswordHash: string(hash),
		TranslateTimeout:  5 * time.Second,
	}
	langs, err := translate.NewLanguages("ko", []string{"en", "ja"})
	if err != nil {
		t.Fatal(err)
	}
	b, mb := &fakeBatcher{}, &mailbox{}
	deps := handlers.NewDeps(db, cfg, repos.NewUIStateRepo(db), langs, b, mb)

	app := fiber.New(fiber.Config{Views: html.New("../../web/templates", ".html")})
	app.Use(requestid.New())
	handlers.Mount(app, deps)
	return &testApp{app: app, batcher: b, mail: mb, deps: deps}
}

// do sends a request as browser session sid and decodes a JSON reply.
func (a *testApp) do(t *testing.T, method, path, sid string, body any) (int, map[string]any) {
	t.Helper()
	resp, raw := a.raw(t, method, path, sid, body)
	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode, out
}

func (a *testApp) raw(t *testing.T, method, path, sid string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp, raw
}

func (a *testApp) login(t *testing.T, sid, email string) {
	t.Helper()
	if code, body := a.do(t, "POST", "/api/auth/login", sid, map[string]string{"email": email, "password": "Passw0rd!"}); code != 200 {
		t.Fatalf("login %s: %d %v", email, code, body)
	}
}

func (a *testApp) adminLogin(t *testing.T, sid string) {
	t.Helper()
	if code, body := a.do(t, "POST", "/api/admin/login", sid, map[string]string{"password": adminPassword}); code != 200 {
		t.Fatalf("admin login: %d %v", code, body)
	}
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Admin  bool           `json:"admin"`
	UserID string         `json:"user_id"`
	Fields map[string]any `json:"fields"`
}

type lockedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	w := &lockedWriter{}
	oldW, oldFlags := log.Writer(), log.Flags()
	log.SetOutput(w)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(w.buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) bool {
	for _, e := range entries {
		if e.Action == action {
			return true
		}
	}
	return false
}

func (a *testApp) rawWithHeader(t *testing.T, method, path, sid string, body any, key, value string) (*http.Response, []byte) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(key, value)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	return resp, raw
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
