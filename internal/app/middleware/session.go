package middleware

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName       = "session_id"
	CookieExpiration = 24 * time.Hour
)

var (
	ErrInvalidCookie = errors.New("invalid session cookie")
)

// SessionMiddleware выдаёт браузеру зашифрованную куку с ID сессии
type SessionMiddleware struct {
	gcm    cipher.AEAD
	maxAge time.Duration
}

// NewSessionMiddleware создаёт middleware сессий. Ключ AES-256
// получается из secretKey через SHA-256, так что длина ключа любая.
func NewSessionMiddleware(secretKey string, maxAge time.Duration) (*SessionMiddleware, error) {
	key := sha256.Sum256([]byte(secretKey))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("cannot create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cannot create GCM: %w", err)
	}

	if maxAge <= 0 {
		maxAge = CookieExpiration
	}

	return &SessionMiddleware{gcm: gcm, maxAge: maxAge}, nil
}

// Middleware кладёт сессию в контекст запроса. Кука выдаётся заново на
// каждый запрос, так что срок maxAge отсчитывается от последнего обращения.
func (s *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := Session{}

		sessionID, err := s.GetSessionID(r)
		if err != nil {
			// Нет куки или она повреждена: начинаем новую сессию
			sessionID = uuid.New().String()
			session.New = true
		}
		session.ID = sessionID

		if err := s.SetSessionID(w, sessionID); err != nil {
			http.Error(w, "Failed to set session cookie", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// GetSessionID извлекает ID сессии из куки
func (s *SessionMiddleware) GetSessionID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}

	sessionID, err := s.decrypt(cookie.Value)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}

	if _, err := uuid.Parse(sessionID); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}

	return sessionID, nil
}

// SetSessionID записывает ID сессии в куку
func (s *SessionMiddleware) SetSessionID(w http.ResponseWriter, sessionID string) error {
	encryptedValue, err := s.encrypt(sessionID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encryptedValue,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *SessionMiddleware) encrypt(plaintext string) (string, error) {
	nonce := make([]byte, s.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := s.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(ciphertext), nil
}

func (s *SessionMiddleware) decrypt(ciphertext string) (string, error) {
	data, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	nonceSize := s.gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := s.gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
