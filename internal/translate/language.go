package translate

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Languages is the set of selectable languages. Source is the language
// listings are written in.
type Languages struct {
	Source    string
	supported map[string]struct{}
	ordered   []string
}

func NewLanguages(source string, supported []string) (*Languages, error) {
	src, err := canonical(source)
	if err != nil {
		return nil, fmt.Errorf("source language: %w", err)
	}
	l := &Languages{Source: src, supported: map[string]struct{}{src: {}}, ordered: []string{src}}
	for _, code := range supported {
		c, err := canonical(code)
		if err != nil {
			return nil, fmt.Errorf("supported language %q: %w", code, err)
		}
		if _, dup := l.supported[c]; dup {
			continue
		}
		l.supported[c] = struct{}{}
		l.ordered = append(l.ordered, c)
	}
	return l, nil
}

// Parse canonicalizes code ("EN", "zh-cn") and checks it is selectable.
func (l *Languages) Parse(code string) (string, error) {
	c, err := canonical(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	if _, ok := l.supported[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return c, nil
}

func (l *Languages) List() []string { return append([]string(nil), l.ordered...) }

func canonical(code string) (string, error) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}
