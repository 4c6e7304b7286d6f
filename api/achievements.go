package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

func (c *Client) CreateAchievement(ctx context.Context, date string, create models.AchievementCreate) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := c.do(ctx, http.MethodPost, "/api/achievements/"+date, create, &achievement); err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (c *Client) UpdateAchievement(ctx context.Context, id int, update models.AchievementUpdate) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := c.do(ctx, http.MethodPatch, "/api/achievements/"+strconv.Itoa(id), update, &achievement); err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (c *Client) DeleteAchievement(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/achievements/"+strconv.Itoa(id), nil, nil)
}
