package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Google Translate v2 accepts at most 128 segments per request.
const googleMaxSegments = 100

// GoogleClient is a Batcher backed by the Google Cloud Translation v2 REST API.
type GoogleClient struct {
	URL    string
	APIKey string
	Source string
	http   *resty.Client
}

func NewGoogleClient(url, apiKey, source string, timeout time.Duration) *GoogleClient {
	c := resty.New().SetTimeout(timeout)
	return &GoogleClient{URL: url, APIKey: apiKey, Source: source, http: c}
}

type googleRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Source string   `json:"source,omitempty"`
	Format string   `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

func (g *GoogleClient) TranslateBatch(ctx context.Context, items []Item, target string) (map[string]string, error) {
	// Identical source texts are sent once and fanned back out to every key.
	var texts []string
	keysByText := map[string][]string{}
	for _, it := range items {
		if it.Text == "" {
			continue
		}
		if _, seen := keysByText[it.Text]; !seen {
			texts = append(texts, it.Text)
		}
		keysByText[it.Text] = append(keysByText[it.Text], it.Key)
	}

	out := make(map[string]string, len(items))
	for start := 0; start < len(texts); start += googleMaxSegments {
		end := min(start+googleMaxSegments, len(texts))
		chunk := texts[start:end]
		translated, err := g.call(ctx, chunk, target)
		if err != nil {
			return nil, err
		}
		for i, src := range chunk {
			for _, key := range keysByText[src] {
				out[key] = translated[i]
			}
		}
	}
	return out, nil
}

func (g *GoogleClient) call(ctx context.Context, texts []string, target string) ([]string, error) {
	var resp googleResponse
	r, err := g.http.R().SetContext(ctx).
		SetQueryParam("key", g.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(googleRequest{Q: texts, Target: target, Source: g.Source, Format: "text"}).
		SetResult(&resp).
		Post(g.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("%w: google translate: %s", ErrUpstream, r.Status())
	}
	got := resp.Data.Translations
	if len(got) != len(texts) {
		return nil, fmt.Errorf("%w: google translate returned %d of %d segments", ErrUpstream, len(got), len(texts))
	}
	out := make([]string, len(got))
	for i, t := range got {
		out[i] = t.TranslatedText
	}
	return out, nil
}
