package storage

import (
	"context"
	"sync"
	"time"

	"github.com/m-molecula741/tinyurl/internal/app/logger"
	"github.com/m-molecula741/tinyurl/internal/app/usecase"
)

type session struct {
	view     *usecase.View
	lastSeen time.Time
}

// InMemorySessionStorage хранит по одному представлению формы на сессию.
// Данные живут только в памяти процесса.
type InMemorySessionStorage struct {
	mu        sync.Mutex
	sessions  map[string]*session
	shortener usecase.Shortener
	now       func() time.Time
}

func NewInMemorySessionStorage(shortener usecase.Shortener) *InMemorySessionStorage {
	return &InMemorySessionStorage{
		sessions:  make(map[string]*session),
		shortener: shortener,
		now:       time.Now,
	}
}

// View возвращает представление сессии, создавая его при первом обращении
func (s *InMemorySessionStorage) View(sessionID string) *usecase.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[sessionID]
	if !exists {
		sess = &session{view: usecase.NewView(s.shortener)}
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = s.now()

	return sess.view
}

func (s *InMemorySessionStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Prune удаляет сессии, к которым не обращались дольше idle.
// Возвращает число удалённых сессий.
func (s *InMemorySessionStorage) Prune(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-idle)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(deadline) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunPruner раз в every удаляет сессии, неактивные дольше idle,
// пока не отменён ctx
func (s *InMemorySessionStorage) RunPruner(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.Prune(idle); removed > 0 {
				logger.Debug().Int("removed", removed).Msg("idle sessions pruned")
			}
		}
	}
}
