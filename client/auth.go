package client

import (
	"context"
	"net/http"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// Credentials is the POST /login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterForm is the POST /register payload. The backend requires the
// password to be confirmed.
type RegisterForm struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// Login authenticates and returns the normalized user+token payload.
func (c *Client) Login(ctx context.Context, creds Credentials) (AuthPayload, error) {
	raw, err := c.doRaw(ctx, http.MethodPost, "/login", nil, creds)
	if err != nil {
		return AuthPayload{}, err
	}
	return ParseAuthResponse(raw)
}

// Register creates an account. The returned payload carries a token only
// when the backend chose to authenticate the new account in the same
// response; a *ParseError here means "registered, but log in separately".
func (c *Client) Register(ctx context.Context, form RegisterForm) (AuthPayload, error) {
	raw, err := c.doRaw(ctx, http.MethodPost, "/register", nil, form)
	if err != nil {
		return AuthPayload{}, err
	}
	return ParseAuthResponse(raw)
}

// Logout notifies the backend that the session token should be invalidated.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil, nil)
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (models.User, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/user", nil, nil)
	if err != nil {
		return models.User{}, err
	}
	var u models.User
	if err := detailEnvelope(raw, &u); err != nil {
		return models.User{}, &APIError{Kind: KindTransport, Message: "malformed profile body", Err: err}
	}
	return u, nil
}
