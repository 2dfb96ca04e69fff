package controller

import (
	"github.com/m-molecula741/tinyurl/internal/app/usecase"
)

// SessionStorage выдаёт представление формы для сессии
type SessionStorage interface {
	View(sessionID string) *usecase.View
}
