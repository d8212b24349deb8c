package console

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/adminclient"
)

// HTTPBridge sends console mutations to /api/v1/admin/{collection}/{id}.
type HTTPBridge struct {
	client     *adminclient.Client
	collection string
}

// NewHTTPBridge creates a bridge for collection ("meetings" or "callbacks").
func NewHTTPBridge(client *adminclient.Client, collection string) *HTTPBridge {
	return &HTTPBridge{client: client, collection: collection}
}

func (b *HTTPBridge) path(id uuid.UUID) string {
	return "/api/v1/admin/" + b.collection + "/" + id.String()
}

type statusBody struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

// UpdateStatus sends PUT {status, admin_notes}.
func (b *HTTPBridge) UpdateStatus(ctx context.Context, id uuid.UUID, status string, adminNotes *string) error {
	return mapError(b.client.Do(ctx, http.MethodPut, b.path(id), statusBody{Status: status, AdminNotes: adminNotes}, nil))
}

// Delete sends DELETE.
func (b *HTTPBridge) Delete(ctx context.Context, id uuid.UUID) error {
	return mapError(b.client.Do(ctx, http.MethodDelete, b.path(id), nil, nil))
}

func mapError(err error) error {
	var apiErr *adminclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnprocessableEntity && len(apiErr.Details) > 0 {
		return FieldErrors(apiErr.Details)
	}
	return err
}
