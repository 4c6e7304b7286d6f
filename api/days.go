package api

import (
	"context"
	"net/http"

	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

// Day fetches the full aggregate for one date key (yyyy-MM-dd).
func (c *Client) Day(ctx context.Context, date string) (*models.DayView, error) {
	var day models.DayView
	if err := c.do(ctx, http.MethodGet, "/api/days/"+date, nil, &day); err != nil {
		return nil, err
	}
	return &day, nil
}
