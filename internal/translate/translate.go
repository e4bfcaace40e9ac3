// Package translate talks to the machine-translation provider.
package translate

import (
	"context"
	"errors"
)

var ErrUpstream = errors.New("translation provider failed")

// Item is one piece of text to translate. Key is either a semantic UI key
// ("home") or a "{field}_{entityId}" key ("title_42").
type Item struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Batcher translates a whole set of items in one logical call. The result
// maps each item key to its translated text.
type Batcher interface {
	TranslateBatch(ctx context.Context, items []Item, target string) (map[string]string, error)
}
