package common

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

// HttpError carries the status a handler wants reported. Handlers returning
// one must not have written anything yet.
type HttpError struct {
	Status int
	Err    error
}

func (e *HttpError) Error() string {
	return e.Err.Error()
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func BadRequest(err error) error {
	return &HttpError{Status: http.StatusBadRequest, Err: err}
}

func NotFound(err error) error {
	return &HttpError{Status: http.StatusNotFound, Err: err}
}

type JsonHandlerFunc func(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error

func JsonHandler(trk SessionTracker, fn JsonHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		GenericHeaders(w, r)

		err := fn(w, r, sessionId, sonic.ConfigDefault.NewEncoder(w))
		if err == nil {
			return
		}
		var httpErr *HttpError
		if errors.As(err, &httpErr) {
			log.Debug().Err(err).Str("path", r.URL.Path).Int("status", httpErr.Status).Msg("request rejected")
			http.Error(w, httpErr.Error(), httpErr.Status)
			return
		}
		log.Error().Err(err).Str("path", r.URL.Path).Msg("error handling request")
	}
}

func GenericHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
