// Package render отрисовывает снимок формы сокращения в HTML или текст.
// Результат зависит только от переданного снимка.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/m-molecula741/tinyurl/internal/app/usecase"
)

//go:embed templates/home.html
var templatesFS embed.FS

var homeTemplate = template.Must(template.ParseFS(templatesFS, "templates/home.html"))

type page struct {
	Input    string
	HasError bool
	Error    string
	Result   *usecase.ShortenResult
}

func newPage(snap usecase.Snapshot) page {
	p := page{Input: snap.Input}

	if detail, ok := snap.State.Error(); ok {
		p.HasError = true
		p.Error = detail
	}
	if result, ok := snap.State.Result(); ok {
		p.Result = &result
	}

	return p
}

// HTML пишет страницу с формой и результатом последней отправки
func HTML(w io.Writer, snap usecase.Snapshot) error {
	return homeTemplate.Execute(w, newPage(snap))
}

// Text пишет результат без формы: поля ответа построчно либо текст
// ошибки без изменений, даже без перевода строки. Для Idle ничего не пишет.
func Text(w io.Writer, snap usecase.Snapshot) error {
	if detail, ok := snap.State.Error(); ok {
		_, err := io.WriteString(w, detail)
		return err
	}

	result, ok := snap.State.Result()
	if !ok {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s\nLink: %s\n", result.Message, result.ShortURL); err != nil {
		return err
	}
	if result.HasCode() {
		if _, err := fmt.Fprintf(w, "Code: %s\n", result.Code); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Reduced: %s\n", result.Reduced)
	return err
}
