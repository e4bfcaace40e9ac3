package handlers_test

import (
	"errors"
	"strings"
	"testing"

	"housingbuddy/internal/translate"
)

func displayTitle(t *testing.T, a *testApp, sid string) string {
	t.Helper()
	_, got := a.do(t, "GET", "/api/properties/1", sid, nil)
	return got["display"].(map[string]any)["title"].(string)
}

func TestLanguageSwitchOverlay(t *testing.T) {
	a := newTestApp(t)
	sid := "sid-lang"

	code, body := a.do(t, "POST", "/api/lang", sid, map[string]string{"language": "en"})
	if code != 200 {
		t.Fatalf("select en: %d %v", code, body)
	}
	st := body["state"].(map[string]any)
	if st["isTranslated"] != true || st["isTranslating"] != false || st["targetLanguage"] != "en" {
		t.Fatalf("state after en: %v", st)
	}
	if a.batcher.calls != 1 {
		t.Fatalf("want one batched call, got %d", a.batcher.calls)
	}

	if got := displayTitle(t, a, sid); got != "[en]역세권 풀옵션 원룸" {
		t.Fatalf("translated title: %q", got)
	}
	// Other sessions are unaffected.
	if got := displayTitle(t, a, "sid-other"); got != "역세권 풀옵션 원룸" {
		t.Fatalf("overlay leaked across sessions: %q", got)
	}
	_, cat := a.do(t, "GET", "/api/i18n", sid, nil)
	if cat["strings"].(map[string]any)["home"] != "[en]홈" {
		t.Fatalf("ui catalog: %v", cat["strings"])
	}

	code, res := a.do(t, "POST", "/api/resolve", sid, map[string]any{"items": []translate.Item{
		{Key: "title_1", Text: "역세권 풀옵션 원룸"},
		{Key: "title_404", Text: "없는 매물"},
	}})
	items := res["items"].([]any)
	if code != 200 || items[0].(map[string]any)["text"] != "[en]역세권 풀옵션 원룸" || items[1].(map[string]any)["text"] != "없는 매물" {
		t.Fatalf("resolve: %d %v", code, res)
	}

	// Back to the source language: no provider call, overlay cleared.
	_, body = a.do(t, "POST", "/api/lang", sid, map[string]string{"language": "ko"})
	if body["state"].(map[string]any)["isTranslated"] != false || a.batcher.calls != 1 {
		t.Fatalf("reset to ko: %v calls=%d", body, a.batcher.calls)
	}
	if got := displayTitle(t, a, sid); got != "역세권 풀옵션 원룸" {
		t.Fatalf("title after reset: %q", got)
	}

	if code, _ := a.do(t, "POST", "/api/lang", sid, map[string]string{"language": "xx-invalid-!"}); code != 400 {
		t.Fatalf("unsupported language: %d", code)
	}
}

func TestLanguageSwitchFailureKeepsPreviousState(t *testing.T) {
	a := newTestApp(t)
	sid := "sid-fail"
	a.do(t, "POST", "/api/lang", sid, map[string]string{"language": "en"})

	a.batcher.fail = errors.Join(translate.ErrUpstream, errors.New("quota exceeded"))
	var code int
	var body map[string]any
	entries := captureLogs(t, func() {
		code, body = a.do(t, "POST", "/api/lang", sid, map[string]string{"language": "ja"})
	})
	if code != 502 {
		t.Fatalf("want 502, got %d", code)
	}
	if strings.Contains(body["error"].(string), "quota") {
		t.Fatalf("provider detail leaked: %v", body)
	}
	st := body["state"].(map[string]any)
	if st["isTranslated"] != true || st["targetLanguage"] != "en" || st["isTranslating"] != false {
		t.Fatalf("state after failure: %v", st)
	}
	if got := displayTitle(t, a, sid); got != "[en]역세권 풀옵션 원룸" {
		t.Fatalf("cache changed by failed call: %q", got)
	}
	if !hasAction(entries, "translate.batch.fail") {
		t.Fatal("expected translate.batch.fail log")
	}
}

func TestNewPropertyTranslatedOnView(t *testing.T) {
	a := newTestApp(t)
	sid := "sid-view"
	a.do(t, "POST", "/api/lang", sid, map[string]string{"language": "en"})

	a.adminLogin(t, "sid-admin")
	_, created := a.do(t, "POST", "/api/properties", "sid-admin", newListing("새 매물"))
	id := int64(created["id"].(float64))

	_, got := a.do(t, "GET", "/api/properties/"+itoa(id), sid, nil)
	if got["display"].(map[string]any)["title"] != "[en]새 매물" {
		t.Fatalf("new property not translated on view: %v", got["display"])
	}
	if got["title"] != "새 매물" {
		t.Fatalf("source record changed: %v", got["title"])
	}
}

func TestTranslateBatchEndpoint(t *testing.T) {
	a := newTestApp(t)
	code, body := a.do(t, "POST", "/api/translate", "sid-t", map[string]any{
		"targetLang": "ja",
		"items":      []translate.Item{{Key: "home", Text: "홈"}},
	})
	if code != 200 || body["translations"].(map[string]any)["home"] != "[ja]홈" {
		t.Fatalf("translate: %d %v", code, body)
	}
	if code, _ := a.do(t, "POST", "/api/translate", "sid-t", map[string]any{"targetLang": "fr", "items": []translate.Item{{Key: "a", Text: "b"}}}); code != 400 {
		t.Fatalf("unsupported target: %d", code)
	}
	// The session overlay is untouched by raw batches.
	if _, st := a.do(t, "GET", "/api/lang", "sid-t", nil); st["state"].(map[string]any)["isTranslated"] != false {
		t.Fatalf("raw batch changed session: %v", st)
	}
}
