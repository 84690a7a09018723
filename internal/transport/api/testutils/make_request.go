package testutils

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

type RequestOptions struct {
	headers map[string]string
}

type RequestArgs struct {
	Router http.Handler
	Method string
	URL    string
	// Body тело запроса в JSON. Пустая строка означает запрос без тела.
	Body string
}

// MakeRequest прогоняет запрос через роутер и возвращает ответ вместе с прочитанным телом.
func MakeRequest(args RequestArgs, opts ...func(*RequestOptions)) (*http.Response, []byte, error) {
	options := RequestOptions{headers: make(map[string]string)}
	for _, opt := range opts {
		opt(&options)
	}

	var body io.Reader
	if args.Body != "" {
		body = strings.NewReader(args.Body)
	}
	request := httptest.NewRequest(args.Method, args.URL, body)
	if args.Body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	for k, v := range options.headers {
		request.Header.Set(k, v)
	}

	recorder := httptest.NewRecorder()
	args.Router.ServeHTTP(recorder, request)

	res := recorder.Result()
	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}
	return res, resBody, nil
}

func WithHeader(name, value string) func(*RequestOptions) {
	return func(o *RequestOptions) {
		o.headers[name] = value
	}
}

// WithBearer добавляет заголовок авторизации. Пустой токен ничего не меняет.
func WithBearer(token string) func(*RequestOptions) {
	return func(o *RequestOptions) {
		if token != "" {
			o.headers["Authorization"] = "Bearer " + token
		}
	}
}
