package remote

import (
	"context"
	"net/http"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/remote/wire"
	"github.com/msomdec/edunova/internal/result"
)

func (c *Client) Login(ctx context.Context, email, password string) result.Result[domain.AuthPayload] {
	res := call[wire.AuthResponse](ctx, c, http.MethodPost, "auth/login", "",
		wire.AuthRequest{Email: email, Password: password})
	return result.Map(res, wire.AuthResponse.ToDomain)
}

func (c *Client) Register(ctx context.Context, firstName, lastName, email, password string) result.Result[domain.AuthPayload] {
	res := call[wire.AuthResponse](ctx, c, http.MethodPost, "auth/register", "",
		wire.AuthRequest{FirstName: firstName, LastName: lastName, Email: email, Password: password})
	return result.Map(res, wire.AuthResponse.ToDomain)
}

func (c *Client) Logout(ctx context.Context, token string) result.Result[bool] {
	res := callEnvelope[struct{}](ctx, c, http.MethodPost, "auth/logout", token, nil, false)
	return result.Map(res, func(struct{}) bool { return true })
}

func (c *Client) RefreshToken(ctx context.Context, token string) result.Result[domain.AuthPayload] {
	res := call[wire.AuthResponse](ctx, c, http.MethodPost, "auth/refresh-token", token, nil)
	return result.Map(res, wire.AuthResponse.ToDomain)
}
