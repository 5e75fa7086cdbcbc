package identity

import "sync"

// Session holds the resolved signed-in identity and notifies subscribers
// on every change, including the initial resolution. Subscribers are only
// ever called with resolved values: an empty uid means signed out, never
// "still loading".
type Session struct {
	mu       sync.Mutex
	uid      string
	resolved bool
	subs     []func(uid string)
}

func NewSession() *Session {
	return &Session{}
}

// Subscribe registers fn for identity-change notifications. If the
// initial state is already resolved, fn fires immediately with it.
func (s *Session) Subscribe(fn func(uid string)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	resolved, uid := s.resolved, s.uid
	s.mu.Unlock()

	if resolved {
		fn(uid)
	}
}

// Set records the active identity and notifies subscribers when it
// changed. The first call resolves the session and always notifies.
func (s *Session) Set(uid string) {
	s.mu.Lock()
	changed := !s.resolved || uid != s.uid
	s.uid = uid
	s.resolved = true
	subs := s.subs
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(uid)
	}
}

func (s *Session) UID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uid
}
