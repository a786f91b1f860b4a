package api

import (
	"context"
	"net/http"

	"github.com/dentabook/booking-client/internal/model"
)

// ListOffices returns offices in list form, without services or
// opening-hours detail.
func (c *Client) ListOffices(ctx context.Context) ([]model.Office, error) {
	var offices []model.Office
	if err := c.do(ctx, http.MethodGet, "/dental-offices", nil, &offices, ""); err != nil {
		return nil, err
	}
	return offices, nil
}

// GetOffice returns the full office record including services and
// opening hours.
func (c *Client) GetOffice(ctx context.Context, id string) (*model.Office, error) {
	var office model.Office
	if err := c.do(ctx, http.MethodGet, "/dental-offices/"+id, nil, &office, ""); err != nil {
		return nil, err
	}
	return &office, nil
}
