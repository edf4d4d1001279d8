package remote

import (
	"context"
	"errors"
	"net/http"

	"github.com/keilahoriye/tilapiasuprememobile/domain/user"
	apperrors "github.com/keilahoriye/tilapiasuprememobile/pkg/errors"
)

const (
	msgInvalidCredentials = "E-mail ou senha inválidos."
	msgLoginConnection    = "Erro ao conectar com o servidor. Verifique a URL"
)

// Login authenticates with POST /auth/login. A 401 surfaces the server's
// "error" text, or a generic invalid credentials message.
func (c *Client) Login(ctx context.Context, email, password string) (*user.User, error) {
	resp, err := c.send(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{Email: email, Senha: password},
	})
	if err != nil {
		return nil, apperrors.Connection(err, msgLoginConnection)
	}

	if resp.status == http.StatusUnauthorized {
		msg := errorField(resp.body)
		if msg == "" {
			msg = msgInvalidCredentials
		}
		return nil, apperrors.Unauthorized(msg)
	}
	if !resp.ok() {
		return nil, apperrors.Connection(statusError(resp.status), msgLoginConnection)
	}

	var dto userDTO
	if err := decodeBody(resp.body, &dto); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Message == "" {
				appErr.Message = msgInvalidCredentials
			}
			return nil, appErr
		}
		return nil, apperrors.Connection(err, msgLoginConnection)
	}
	return dto.toDomain(), nil
}
