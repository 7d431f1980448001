package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// authTransport attaches the stored bearer token to every outgoing
// request. The token source is consulted per request, so a token that
// lapses mid-session stops being sent without any client rebuild.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.tokens != nil {
		if token, ok := t.tokens.Token(); ok {
			clone.Header.Set("Authorization", "Bearer "+token)
		} else {
			log.Debug().Str("path", clone.URL.Path).Msg("no valid token, sending unauthenticated request")
		}
	}
	clone.Header.Set("X-Request-Id", uuid.NewString())

	started := time.Now()
	resp, err := t.base.RoundTrip(clone)
	if err != nil {
		log.Debug().
			Err(err).
			Str("method", clone.Method).
			Str("path", clone.URL.Path).
			Dur("duration", time.Since(started)).
			Msg("api request failed")
		return nil, err
	}

	log.Debug().
		Str("method", clone.Method).
		Str("path", clone.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("api request")

	return resp, nil
}
