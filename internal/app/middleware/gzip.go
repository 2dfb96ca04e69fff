package middleware

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"strings"
)

// compressibleTypes типы контента, которые нужно сжимать
var compressibleTypes = []string{
	"text/html",
	"text/plain",
}

func shouldCompress(headers http.Header) bool {
	contentType := headers.Get("Content-Type")
	for _, typ := range compressibleTypes {
		if strings.Contains(contentType, typ) {
			return true
		}
	}
	return false
}

// GzipMiddleware сжимает HTML и текстовые ответы, если клиент принимает gzip
func GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		writer := &gzipResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(writer, r)

		w.Header().Add("Vary", "Accept-Encoding")

		if !writer.compressible() {
			w.WriteHeader(writer.status)
			_, _ = w.Write(writer.data.Bytes())
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		w.WriteHeader(writer.status)

		gz := gzip.NewWriter(w)
		defer gz.Close()
		_, _ = gz.Write(writer.data.Bytes())
	})
}

// gzipResponseWriter копит ответ, чтобы решить о сжатии после обработчика
type gzipResponseWriter struct {
	http.ResponseWriter
	data   bytes.Buffer
	status int
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	return w.data.Write(b)
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	w.status = statusCode
}

func (w *gzipResponseWriter) compressible() bool {
	if w.data.Len() == 0 {
		return false
	}
	// Отключаем сжатие для специальных статусов
	if w.status == http.StatusNoContent ||
		w.status == http.StatusNotModified ||
		(w.status >= 300 && w.status < 400) {
		return false
	}
	return shouldCompress(w.Header())
}
