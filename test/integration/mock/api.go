package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// ApiMock is an HTTP server that records requests and replies with canned JSON.
// Routes are keyed by method and path, e.g. "POST /emails".
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	requests  map[string][]Request
	responses map[string]Response
}

// Request is one recorded call.
type Request struct {
	Headers http.Header
	Query   map[string]string
	Body    map[string]any
}

// Response is the canned reply of a route.
type Response struct {
	Status int
	Body   any
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		requests:  map[string][]Request{},
		responses: map[string]Response{},
	}
}

func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) Close() {
	if a.server != nil {
		a.server.Close()
	}
}

func (a *ApiMock) GetUrl() string {
	return a.server.URL
}

func (a *ApiMock) SetResponse(method, path string, status int, body any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.responses[method+" "+path] = Response{Status: status, Body: body}
}

// Requests returns the calls received on a route, oldest first.
func (a *ApiMock) Requests(method, path string) []Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Request(nil), a.requests[method+" "+path]...)
}

// Reset forgets recorded calls and canned replies.
func (a *ApiMock) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests = map[string][]Request{}
	a.responses = map[string]Response{}
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	query := map[string]string{}
	for k, v := range r.URL.Query() {
		query[k] = v[0]
	}

	a.mu.Lock()
	a.requests[key] = append(a.requests[key], Request{Headers: r.Header.Clone(), Query: query, Body: body})
	resp, ok := a.responses[key]
	a.mu.Unlock()

	if !ok {
		resp = Response{Status: http.StatusOK, Body: map[string]any{}}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp.Body)
}
