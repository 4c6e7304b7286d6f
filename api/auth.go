package api

import (
	"context"
	"net/http"
)

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. It does not store the
// token; the session layer decides when the credential becomes current.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	var token Token
	err := c.send(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &token, false)
	if err != nil {
		return nil, err
	}
	return &token, nil
}
