package overlay

import (
	"context"
	"errors"
	"sort"
	"time"

	applog "housingbuddy/internal/log"
	"housingbuddy/internal/translate"
)

var ErrSuperseded = errors.New("superseded by a newer language selection")

// FieldSource yields the entity fields currently visible to users, keyed
// "{field}_{entityId}".
type FieldSource interface {
	TranslatableItems(ctx context.Context) ([]translate.Item, error)
}

type Orchestrator struct {
	Batcher translate.Batcher
	Fields  FieldSource
	Catalog map[string]string
	Langs   *translate.Languages
	Timeout time.Duration
}

// TranslateAll switches s to target with one batched provider call.
// Selecting the source language clears the overlay without a call.
func (o *Orchestrator) TranslateAll(ctx context.Context, s *Session, target string) (State, error) {
	lang, err := o.Langs.Parse(target)
	if err != nil {
		return s.State(), err
	}
	if lang == o.Langs.Source {
		if err := s.reset(ctx); err != nil {
			applog.Event("warn", "overlay.persist.fail", err, nil)
		}
		return s.State(), nil
	}

	gen := s.begin()
	items := o.catalogItems()
	if o.Fields != nil {
		more, err := o.Fields.TranslatableItems(ctx)
		if err != nil {
			s.abort(gen)
			return s.State(), err
		}
		items = append(items, more...)
	}

	cctx, cancel := o.withTimeout(ctx)
	defer cancel()
	got, callErr := o.Batcher.TranslateBatch(cctx, items, lang)
	if callErr != nil {
		applog.Event("error", "translate.batch.fail", callErr, map[string]any{"target": lang, "items": len(items)})
	}
	err = s.finish(ctx, gen, lang, got, callErr)
	return s.State(), err
}

// TranslateFields translates the given fields into the session's current
// language if any are missing from the cache. Untranslated sessions are
// left alone.
func (o *Orchestrator) TranslateFields(ctx context.Context, s *Session, items []translate.Item) error {
	st := s.State()
	if !st.IsTranslated {
		return nil
	}
	var missing []translate.Item
	for _, it := range items {
		if it.Text == "" {
			continue
		}
		if _, ok := s.Get(it.Key); !ok {
			missing = append(missing, it)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	cctx, cancel := o.withTimeout(ctx)
	defer cancel()
	got, err := o.Batcher.TranslateBatch(cctx, missing, st.TargetLanguage)
	if err != nil {
		applog.Event("error", "translate.fields.fail", err, map[string]any{"target": st.TargetLanguage, "items": len(missing)})
		return err
	}
	return s.mergeFor(ctx, st.TargetLanguage, got)
}

func (o *Orchestrator) catalogItems() []translate.Item {
	keys := make([]string, 0, len(o.Catalog))
	for k := range o.Catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]translate.Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, translate.Item{Key: k, Text: o.Catalog[k]})
	}
	return items
}

func (o *Orchestrator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.Timeout)
}
