package api

import (
	"context"
	"net/http"

	"github.com/dentabook/booking-client/internal/model"
)

// ListDentists returns all dentists. The backend does not filter;
// callers narrow by office and service capability client-side.
func (c *Client) ListDentists(ctx context.Context) ([]model.Dentist, error) {
	var dentists []model.Dentist
	if err := c.do(ctx, http.MethodGet, "/dentists", nil, &dentists, ""); err != nil {
		return nil, err
	}
	return dentists, nil
}

func (c *Client) GetDentist(ctx context.Context, id string) (*model.Dentist, error) {
	var dentist model.Dentist
	if err := c.do(ctx, http.MethodGet, "/dentists/"+id, nil, &dentist, ""); err != nil {
		return nil, err
	}
	return &dentist, nil
}
