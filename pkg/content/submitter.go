package content

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/adminclient"
)

// HTTPSubmitter sends sections to PUT /api/v1/admin/pages/{slug}.
type HTTPSubmitter struct {
	client *adminclient.Client
}

// NewHTTPSubmitter creates a Submitter backed by the admin API.
func NewHTTPSubmitter(client *adminclient.Client) *HTTPSubmitter {
	return &HTTPSubmitter{client: client}
}

// SubmitSection sends exactly one section. A 422 answer is returned as
// httpserver.ValidationErrors.
func (s *HTTPSubmitter) SubmitSection(ctx context.Context, slug, key string, p Payload) error {
	body := UpdateRequest{Sections: map[string]Payload{key: p}}
	err := s.client.Do(ctx, http.MethodPut, "/api/v1/admin/pages/"+url.PathEscape(slug), body, nil)

	var apiErr *adminclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnprocessableEntity && len(apiErr.Details) > 0 {
		return httpserver.ValidationErrors(apiErr.Details)
	}
	return err
}
