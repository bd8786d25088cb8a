package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// DateParser разбирает дату YYYY-MM-DD в часовом поясе локации
type DateParser interface {
	ParseDate(s string) (time.Time, error)
}

// PathUUID читает UUID из переменной пути
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return id, nil
}

// PathString читает непустую переменную пути
func PathString(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(mux.Vars(r)[name])
	if value == "" {
		return "", fmt.Errorf("missing %s", name)
	}
	return value, nil
}

// QueryDate читает необязательную дату из query; nil, если параметра нет
func QueryDate(r *http.Request, name string, parser DateParser) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	date, err := parser.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// OptionalDate разбирает необязательную дату из тела запроса
func OptionalDate(raw *string, parser DateParser) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	date, err := parser.ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		return nil, err
	}
	return &date, nil
}
