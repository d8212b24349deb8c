package notify

import (
	"bytes"
	"io"
	"net/http"

	goslack "github.com/slack-go/slack"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

// maxInteractionBytes caps the form body Slack posts for a button click.
const maxInteractionBytes = 1 << 20

// VerifyMiddleware checks the Slack request signature before handing the
// request on. Without a signing secret every request is rejected, unless
// devMode is set, in which case requests pass unverified.
func VerifyMiddleware(signingSecret string, devMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if signingSecret == "" {
				if devMode {
					next.ServeHTTP(w, r)
					return
				}
				httpserver.RespondError(w, http.StatusUnauthorized, httpserver.CodeUnauthorized, "slack signing secret not configured")
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInteractionBytes))
			if err != nil {
				httpserver.RespondError(w, http.StatusBadRequest, httpserver.CodeBadRequest, "unreadable request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			if !signed(r.Header, signingSecret, body) {
				httpserver.RespondError(w, http.StatusUnauthorized, httpserver.CodeUnauthorized, "invalid slack signature")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func signed(header http.Header, secret string, body []byte) bool {
	sv, err := goslack.NewSecretsVerifier(header, secret)
	if err != nil {
		return false
	}
	if _, err := sv.Write(body); err != nil {
		return false
	}
	return sv.Ensure() == nil
}
