package handler

import (
	"mural/internal/core/port"
	"sync"
)

// Sessions keeps one pipeline per chat, created lazily by the factory.
type Sessions struct {
	mu        sync.Mutex
	pipelines map[int64]port.Pipeline
	factory   func(chatID int64) port.Pipeline
}

func NewSessions(factory func(chatID int64) port.Pipeline) *Sessions {
	return &Sessions{pipelines: make(map[int64]port.Pipeline), factory: factory}
}

func (s *Sessions) Session(chatID int64) port.Pipeline {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pipelines[chatID]
	if !ok {
		p = s.factory(chatID)
		s.pipelines[chatID] = p
	}

	return p
}
