package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/d3coo/car-rental-fastapi-vite/internal/domain"
)

// QueryString возвращает параметр запроса или nil, если он пуст
func QueryString(q url.Values, key string) *string {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return nil
	}
	return &v
}

// QueryInt разбирает необязательный целочисленный параметр
func QueryInt(q url.Values, key string) (*int, error) {
	v := QueryString(q, key)
	if v == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &n, nil
}

// QueryBool разбирает необязательный логический параметр
func QueryBool(q url.Values, key string) (*bool, error) {
	v := QueryString(q, key)
	if v == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(*v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &b, nil
}

// QueryDate разбирает необязательную дату YYYY-MM-DD или RFC3339
func QueryDate(q url.Values, key string) (*time.Time, error) {
	v := QueryString(q, key)
	if v == nil {
		return nil, nil
	}
	t, err := ParseDate(*v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &t, nil
}

// ParseDate принимает YYYY-MM-DD (полночь UTC) или полную метку RFC3339
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(domain.DateFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// QueryPage читает page и pageSize, пустые значения остаются нулями
func QueryPage(r *http.Request) (page, size int, err error) {
	q := r.URL.Query()
	p, err := QueryInt(q, "page")
	if err != nil {
		return 0, 0, err
	}
	s, err := QueryInt(q, "pageSize")
	if err != nil {
		return 0, 0, err
	}
	if p != nil {
		page = *p
	}
	if s != nil {
		size = *s
	}
	return page, size, nil
}
