package api

import (
	"context"

	"ev-marketplace/internal/httpclient"
	"ev-marketplace/internal/models"
)

// AuthAPI maps the Auth resource.
type AuthAPI struct {
	doer httpclient.Doer
}

// NewAuthAPI returns an AuthAPI sending through d.
func NewAuthAPI(d httpclient.Doer) *AuthAPI {
	return &AuthAPI{doer: d}
}

// Login exchanges credentials for a token and profile.
func (a *AuthAPI) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	return httpclient.Post[models.AuthResult](ctx, a.doer, "Auth/login", req)
}

// Register creates an account.
func (a *AuthAPI) Register(ctx context.Context, req models.RegisterRequest) (models.Profile, error) {
	return httpclient.Post[models.Profile](ctx, a.doer, "Auth/register", req)
}

// Me returns the profile bound to the attached token.
func (a *AuthAPI) Me(ctx context.Context) (models.Profile, error) {
	return httpclient.Get[models.Profile](ctx, a.doer, "Auth/me", nil)
}
