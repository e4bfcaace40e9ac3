package translate_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"housingbuddy/internal/translate"
)

func fakeGoogle(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		if r.URL.Query().Get("key") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var body struct {
			Q      []string `json:"q"`
			Target string   `json:"target"`
			Source string   `json:"source"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		type tr struct {
			TranslatedText string `json:"translatedText"`
		}
		var out struct {
			Data struct {
				Translations []tr `json:"translations"`
			} `json:"data"`
		}
		for _, q := range body.Q {
			out.Data.Translations = append(out.Data.Translations, tr{TranslatedText: "[" + body.Target + "]" + q})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}))
}

func TestGoogleClientTranslateBatch(t *testing.T) {
	var calls int
	srv := fakeGoogle(t, &calls)
	defer srv.Close()

	g := translate.NewGoogleClient(srv.URL, "test-key", "ko", 5*time.Second)
	got, err := g.TranslateBatch(context.Background(), []translate.Item{
		{Key: "home", Text: "홈"},
		{Key: "title_1", Text: "원룸"},
		{Key: "category_1", Text: "원룸"},
		{Key: "empty", Text: ""},
	}, "en")
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("want one upstream call, got %d", calls)
	}
	if got["home"] != "[en]홈" || got["title_1"] != "[en]원룸" || got["category_1"] != "[en]원룸" {
		t.Fatalf("unexpected translations: %v", got)
	}
	if _, ok := got["empty"]; ok {
		t.Fatalf("empty text should not be translated: %v", got)
	}
}

func TestGoogleClientChunksLargeBatches(t *testing.T) {
	var calls int
	srv := fakeGoogle(t, &calls)
	defer srv.Close()

	var items []translate.Item
	for i := 0; i < 250; i++ {
		items = append(items, translate.Item{Key: "k" + strings.Repeat("x", i), Text: "t" + strings.Repeat("y", i)})
	}
	g := translate.NewGoogleClient(srv.URL, "test-key", "ko", 5*time.Second)
	got, err := g.TranslateBatch(context.Background(), items, "ja")
	if err != nil {
		t.Fatal(err)
	}
	if calls != 3 {
		t.Fatalf("want 3 chunked calls, got %d", calls)
	}
	if len(got) != 250 {
		t.Fatalf("want 250 translations, got %d", len(got))
	}
}

func TestGoogleClientNon2xxIsUpstreamError(t *testing.T) {
	var calls int
	srv := fakeGoogle(t, &calls)
	defer srv.Close()

	g := translate.NewGoogleClient(srv.URL, "wrong-key", "ko", 5*time.Second)
	_, err := g.TranslateBatch(context.Background(), []translate.Item{{Key: "home", Text: "홈"}}, "en")
	if !errors.Is(err, translate.ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
}
