package middleware

import "context"

// Session сессия браузера, восстановленная из куки
type Session struct {
	ID  string
	New bool // кука выдана в этом запросе
}

type sessionKey struct{}

// WithSession кладёт сессию в контекст запроса
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext достаёт сессию, положенную SessionMiddleware
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.ID == "" {
		return Session{}, false
	}
	return s, true
}
