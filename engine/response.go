package engine

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Response is returned by a Handler and written once the handler returns.
type Response interface {
	write(http.ResponseWriter) int
}

type jsonResponse struct {
	status int
	body   any
}

func (j *jsonResponse) write(w http.ResponseWriter) int {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(j.status)
	if err := json.NewEncoder(w).Encode(j.body); err != nil {
		slog.Error("error while encoding response", "error", err)
	}
	return j.status
}

// JSON responds 200 with the JSON encoding of body.
func JSON(body any) Response { return &jsonResponse{status: http.StatusOK, body: body} }

// JSONStatus responds with the given status and the JSON encoding of body.
func JSONStatus(status int, body any) Response { return &jsonResponse{status: status, body: body} }

type emptyResponse struct{ status int }

func (e *emptyResponse) write(w http.ResponseWriter) int {
	w.WriteHeader(e.status)
	return e.status
}

// Empty responds 204.
func Empty() Response { return &emptyResponse{status: http.StatusNoContent} }

// Accepted responds 202, used when work was handed off to a background worker.
func Accepted() Response { return &emptyResponse{status: http.StatusAccepted} }

type httpError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *httpError) write(w http.ResponseWriter) int {
	return (&jsonResponse{status: e.StatusCode, body: e}).write(w)
}

// Error logs err and returns a generic 500 to the client.
func Error(err error) Response {
	slog.Error("error while handling request", "error", err)
	return &httpError{StatusCode: http.StatusInternalServerError, Message: "Internal error - please try again later"}
}

// Errorf is like Error but formats the error first.
func Errorf(format string, args ...any) Response { return Error(fmt.Errorf(format, args...)) }

// ClientErrorf responds 400 with a message the client is expected to read.
func ClientErrorf(format string, args ...any) Response {
	return &httpError{StatusCode: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf responds 404.
func NotFoundf(format string, args ...any) Response {
	return &httpError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}
