package overlay

// Resolve returns the text to display for original. Translation is looked
// up under key, or under original itself when key is empty. A missing
// translation falls back to original so content is never blanked out.
func (s *Session) Resolve(original, key string) string {
	if original == "" {
		return original
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.translated {
		return original
	}
	if key == "" {
		key = original
	}
	if v, ok := s.entries[key]; ok && v != "" {
		return v
	}
	return original
}

// ResolveAll resolves a key→original map, e.g. the UI catalog.
func (s *Session) ResolveAll(texts map[string]string) map[string]string {
	out := make(map[string]string, len(texts))
	for k, v := range texts {
		out[k] = s.Resolve(v, k)
	}
	return out
}
