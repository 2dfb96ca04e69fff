package controller

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/m-molecula741/tinyurl/internal/app/logger"
	appmiddleware "github.com/m-molecula741/tinyurl/internal/app/middleware"
	"github.com/m-molecula741/tinyurl/internal/app/render"
	"github.com/m-molecula741/tinyurl/internal/app/usecase"
)

// LongURLField имя поля формы с исходным URL
const LongURLField = "long_url"

type HTTPController struct {
	sessions SessionStorage
	session  *appmiddleware.SessionMiddleware
	timeout  time.Duration
	router   *chi.Mux
}

// NewHTTPController создаёт контроллер веб-формы. timeout ограничивает
// один запрос к сервису сокращения, 0 отключает ограничение.
func NewHTTPController(sessions SessionStorage, session *appmiddleware.SessionMiddleware, timeout time.Duration) *HTTPController {
	c := &HTTPController{
		sessions: sessions,
		session:  session,
		timeout:  timeout,
		router:   chi.NewRouter(),
	}
	c.setupRoutes()
	return c
}

func (c *HTTPController) setupRoutes() {
	c.router.Use(chimiddleware.RealIP)
	c.router.Use(appmiddleware.RequestLogger)
	c.router.Use(chimiddleware.Recoverer)
	c.router.Use(appmiddleware.GzipMiddleware)

	c.router.Get("/ping", c.handlePing)

	c.router.Group(func(r chi.Router) {
		r.Use(c.session.Middleware)
		r.Get("/", c.handleHome)
		r.Post("/", c.handleSubmit)
	})
}

func (c *HTTPController) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.router.ServeHTTP(w, r)
}

func (c *HTTPController) view(r *http.Request) (*usecase.View, bool) {
	session, ok := appmiddleware.SessionFromContext(r.Context())
	if !ok {
		return nil, false
	}
	if session.New {
		logger.Debug().Str("session", session.ID).Msg("new session")
	}
	return c.sessions.View(session.ID), true
}

func (c *HTTPController) handleHome(w http.ResponseWriter, r *http.Request) {
	view, ok := c.view(r)
	if !ok {
		http.Error(w, "No session", http.StatusInternalServerError)
		return
	}

	c.writePage(w, view.Snapshot())
}

func (c *HTTPController) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	view, ok := c.view(r)
	if !ok {
		http.Error(w, "No session", http.StatusInternalServerError)
		return
	}

	view.SetInput(r.PostForm.Get(LongURLField))

	// запрос к сервису доводится до конца, даже если браузер ушёл
	ctx := context.WithoutCancel(r.Context())
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	snap := view.Submit(ctx)
	if detail, failed := snap.State.Error(); failed {
		logger.Info().Str("detail", detail).Msg("submission failed")
	}

	c.writePage(w, snap)
}

func (c *HTTPController) writePage(w http.ResponseWriter, snap usecase.Snapshot) {
	var buf bytes.Buffer
	if err := render.HTML(&buf, snap); err != nil {
		logger.Error().Err(err).Msg("render failed")
		http.Error(w, "Render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (c *HTTPController) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
