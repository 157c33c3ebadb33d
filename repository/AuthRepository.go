package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"storegate/entities"
	"storegate/models"
)

const (
	adminLoginPath   = "/api/v1/admin/login"
	userLoginPath    = "/api/v1/user/login"
	userRegisterPath = "/api/v1/user/register"
)

type AuthRepository interface {
	LoginAdmin(ctx context.Context, creds models.Credentials) (token string, user entities.User, err error)
	LoginUser(ctx context.Context, creds models.Credentials) (token string, user entities.User, err error)
	Register(ctx context.Context, req models.RegisterRequest) (token string, user entities.User, err error)
}

type AuthRepo struct {
	client *BackendClient
}

func NewAuthRepository(client *BackendClient) (AuthRepository, error) {
	if client == nil {
		return nil, errors.New("client must be non-nil")
	}
	return &AuthRepo{client: client}, nil
}

// loginBody tolerates the login endpoints' divergent payloads: the user
// record arrives as "user", "admin" or directly under "data", and the
// token as "token" or "accessToken".
type loginBody struct {
	Success     *bool               `json:"success"`
	Message     string              `json:"message"`
	Token       string              `json:"token"`
	AccessToken string              `json:"accessToken"`
	User        json.RawMessage     `json:"user"`
	Admin       json.RawMessage     `json:"admin"`
	Data        json.RawMessage     `json:"data"`
	Errors      map[string][]string `json:"errors"`
}

func (a *AuthRepo) LoginAdmin(ctx context.Context, creds models.Credentials) (string, entities.User, error) {
	return a.login(ctx, adminLoginPath, creds)
}

func (a *AuthRepo) LoginUser(ctx context.Context, creds models.Credentials) (string, entities.User, error) {
	return a.login(ctx, userLoginPath, creds)
}

func (a *AuthRepo) login(ctx context.Context, path string, creds models.Credentials) (token string, user entities.User, err error) {
	body, status, err := a.client.Send(ctx, http.MethodPost, path, creds)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("login: %v", err)
		return
	}
	token, user, err = parseAuthPayload(body)
	if err != nil {
		log.Printf("login: %v", err)
	}
	return
}

func (a *AuthRepo) Register(ctx context.Context, req models.RegisterRequest) (token string, user entities.User, err error) {
	body, status, err := a.client.Send(ctx, http.MethodPost, userRegisterPath, req)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = registrationError(status, body)
		log.Printf("Register: %v", err)
		return
	}
	token, user, err = parseAuthPayload(body)
	if err != nil {
		log.Printf("Register: %v", err)
	}
	return
}

func parseAuthPayload(body []byte) (token string, user entities.User, err error) {
	var lb loginBody
	if e := json.Unmarshal(bytes.TrimSpace(body), &lb); e != nil {
		err = models.NewRemoteError(models.ErrServerError, "invalid response from server")
		return
	}
	if lb.Success != nil && !*lb.Success {
		err = models.NewRemoteError(models.ErrUnauthorized, lb.Message)
		return
	}

	token = lb.Token
	if token == "" {
		token = lb.AccessToken
	}
	// A session without a token cannot authenticate requests or survive a
	// restart, so a token-less 2xx payload counts as invalid.
	if token == "" {
		err = models.NewRemoteError(models.ErrServerError, "invalid response from server")
		return
	}

	raw := lb.User
	if raw == nil {
		raw = lb.Admin
	}
	if raw == nil {
		raw = lb.Data
	}
	if raw == nil {
		err = models.NewRemoteError(models.ErrServerError, "invalid response from server")
		return
	}
	if e := json.Unmarshal(raw, &user); e != nil {
		err = models.NewRemoteError(models.ErrServerError, "invalid response from server")
	}
	return
}

// registrationError keeps per-field messages when the backend sends them,
// so form handlers can map them back onto inputs.
func registrationError(status int, body []byte) error {
	var lb loginBody
	if e := json.Unmarshal(bytes.TrimSpace(body), &lb); e == nil && len(lb.Errors) > 0 {
		return &models.ValidationError{Message: lb.Message, Fields: lb.Errors}
	}
	msg := envelopeMessage(body)
	if msg != "" && status >= 400 && status < 500 {
		return &models.ValidationError{Message: msg}
	}
	return remoteError(status, body)
}
