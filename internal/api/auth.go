package api

import (
	"context"
	"net/http"

	"github.com/dentabook/booking-client/internal/model"
)

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new account and logs it in.
func (c *Client) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &resp, ""); err != nil {
		return nil, err
	}
	return &resp, nil
}
