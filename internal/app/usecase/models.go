package usecase

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ShortenRequest тело запроса к сервису сокращения
type ShortenRequest struct {
	LongURL string `json:"long_url"`
}

// ShortenResult ответ сервиса при успешном сокращении.
// Лишние поля ответа игнорируются, тип полей не проверяется.
type ShortenResult struct {
	Message  Text   `json:"message"`
	ShortURL Text   `json:"short_url"`
	Code     Text   `json:"code,omitempty"`
	Reduced  Truthy `json:"reduced"`
}

// HasCode сообщает, вернул ли сервис короткий код
func (r ShortenResult) HasCode() bool {
	return r.Code != ""
}

// Text строка для показа, которая принимает любой JSON.
// Строки берутся как есть, числа и булевы значения печатаются текстом,
// null даёт пустую строку, объекты и массивы сохраняются как JSON.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case float64:
		*t = Text(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(x))
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*t = Text(buf.String())
	}
	return nil
}

// Truthy булево значение, которое принимает любой JSON.
// false, null, 0 и пустая строка дают false, всё остальное true.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*t = false
		return nil
	case bytes.Equal(data, []byte("true")):
		*t = true
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case float64:
		*t = x != 0
	case string:
		*t = x != ""
	default:
		// объекты и массивы всегда истинны
		*t = true
	}
	return nil
}

// String возвращает "true" или "false"
func (t Truthy) String() string {
	if t {
		return "true"
	}
	return "false"
}

// StateKind вид состояния представления
type StateKind int

const (
	StateIdle StateKind = iota
	StateSuccess
	StateError
)

func (k StateKind) String() string {
	switch k {
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// State состояние представления: ровно одно из Idle, Success или Error.
// Поля закрыты, значение создаётся только конструкторами ниже,
// поэтому результат и ошибка не могут быть заданы одновременно.
type State struct {
	kind   StateKind
	result ShortenResult
	detail string
}

// Idle пустое состояние: нет ни результата, ни ошибки
func Idle() State {
	return State{kind: StateIdle}
}

// Succeeded состояние успешного сокращения
func Succeeded(result ShortenResult) State {
	return State{kind: StateSuccess, result: result}
}

// Failed состояние ошибки с текстом для показа пользователю
func Failed(detail string) State {
	return State{kind: StateError, detail: detail}
}

func (s State) Kind() StateKind {
	return s.kind
}

// Result возвращает результат, если состояние Success
func (s State) Result() (ShortenResult, bool) {
	if s.kind != StateSuccess {
		return ShortenResult{}, false
	}
	return s.result, true
}

// Error возвращает текст ошибки, если состояние Error
func (s State) Error() (string, bool) {
	if s.kind != StateError {
		return "", false
	}
	return s.detail, true
}

// Snapshot неизменяемый срез представления для отрисовки
type Snapshot struct {
	Input string
	State State
}
