// Package formstate is the shared contact-form state the chat assistant
// writes into when it spots contact details in a conversation. It is an
// observable key-value store with no validation of its own; validation
// happens when the form is actually submitted.
package formstate

import (
	"maps"
	"sync"
)

// Fields mirrors the contact form: name, email, phone, company, subject,
// message.
type Fields map[string]string

type Store struct {
	mu          sync.Mutex
	fields      Fields
	subscribers []func(Fields)
}

func NewStore() *Store {
	return &Store{fields: Fields{}}
}

// Set merges a partial update into the current state and notifies
// subscribers with the applied partial. Empty values are skipped so a later
// extraction cannot blank out a field an earlier one filled.
func (s *Store) Set(partial Fields) {
	applied := Fields{}

	s.mu.Lock()
	for key, value := range partial {
		if value == "" {
			continue
		}
		s.fields[key] = value
		applied[key] = value
	}
	subs := make([]func(Fields), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	if len(applied) == 0 {
		return
	}
	for _, fn := range subs {
		fn(applied)
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.fields)
}

// Reset clears every field.
func (s *Store) Reset() {
	s.mu.Lock()
	s.fields = Fields{}
	s.mu.Unlock()
}

// Subscribe registers a callback invoked with each applied partial update.
func (s *Store) Subscribe(fn func(Fields)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}
