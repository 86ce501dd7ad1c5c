// Package session holds the runtime record of which account is currently
// authenticated. A Session is handed out by the account service and passed
// explicitly into every note-collection call, so "who is logged in" is part
// of the interface rather than shared state.
package session

import "time"

type Session struct {
	username  string
	startedAt time.Time
	ended     bool
}

func New(username string) *Session {
	return &Session{
		username:  username,
		startedAt: time.Now(),
	}
}

func (s *Session) Username() string {
	if s == nil {
		return ""
	}
	return s.username
}

func (s *Session) StartedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.startedAt
}

// Active reports whether the session can still gate operations. A nil or
// ended session is inactive.
func (s *Session) Active() bool {
	return s != nil && !s.ended
}

// End deactivates the session. Idempotent. The stored last-user pointer is
// untouched so a later invocation can still offer trusted re-entry.
func (s *Session) End() {
	if s == nil {
		return
	}
	s.ended = true
}
