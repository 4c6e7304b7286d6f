package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/JigneshCalidad/Achivement-Tracker/models"
)

func (c *Client) CreateTodo(ctx context.Context, date string, create models.TodoCreate) (*models.Todo, error) {
	var todo models.Todo
	if err := c.do(ctx, http.MethodPost, "/api/todos/"+date, create, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id int, update models.TodoUpdate) (*models.Todo, error) {
	var todo models.Todo
	if err := c.do(ctx, http.MethodPatch, "/api/todos/"+strconv.Itoa(id), update, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+strconv.Itoa(id), nil, nil)
}
