package common

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const SessionCookie = "sid"

type SessionTracker interface {
	TrackSession(sessionId string, r *http.Request)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(r.Host, "."),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   60 * 60 * 24 * 30,
		Path:     "/",
	})
}

// HandleSessionCookie returns the caller's session id, issuing a new one when
// the cookie is missing or malformed. New sessions are reported to tracker.
func HandleSessionCookie(tracker SessionTracker, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	sessionId := uuid.NewString()
	if tracker != nil {
		tracker.TrackSession(sessionId, r)
	}
	setSessionCookie(w, r, sessionId)
	return sessionId
}
