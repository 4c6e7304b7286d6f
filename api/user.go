package api

import (
	"context"
	"net/http"

	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

// Me fetches the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/user/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe applies a partial profile update and returns the updated user.
func (c *Client) UpdateMe(ctx context.Context, update models.UserUpdate) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPatch, "/api/user/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
