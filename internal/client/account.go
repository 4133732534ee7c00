package client

import (
	"context"
	"net/http"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

const (
	authenticatePath = "api/authenticate"
	accountPath      = "api/account"
)

type credentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type jwtToken struct {
	IDToken string `json:"id_token"`
}

// Authenticate exchanges credentials for a bearer token and keeps it for all
// following calls.
func (c *Client) Authenticate(ctx context.Context, username, password string, rememberMe bool) error {
	raw, err := c.do(ctx, http.MethodPost, authenticatePath, nil, credentials{
		Username:   username,
		Password:   password,
		RememberMe: rememberMe,
	}, contentTypeJSON)
	if err != nil {
		switch statusOf(err) {
		case http.StatusBadRequest:
			c.log.Debugf("authenticate: bad request - %v", err)
		case http.StatusUnauthorized:
			c.log.Debugf("authenticate: wrong credentials for %s", username)
		default:
			c.log.Errorf("authenticate: %v", err)
		}
		return err
	}

	token, err := decodeBody[jwtToken](raw.body)
	if err != nil {
		return err
	}
	if token == nil || token.IDToken == "" {
		return NewError(JsonAppError, "authenticate failed", raw.status, errMissingToken)
	}

	c.SetToken(token.IDToken)
	c.log.Debugf("authenticate: success login - %s", username)

	return nil
}

// Account returns the signed-in user or an unauthorized error.
func (c *Client) Account(ctx context.Context) (*entity.Account, error) {
	res, err := send[entity.Account](ctx, c, http.MethodGet, accountPath, nil, "")
	if err != nil {
		return nil, err
	}
	if res.Body == nil {
		return nil, NewError(HttpError, "GET "+accountPath, http.StatusUnauthorized, nil)
	}
	return res.Body, nil
}

func (c *Client) Logout() {
	c.SetToken("")
}
