package services

import (
	"context"
	"log"

	"storegate/entities"
	"storegate/models"
	"storegate/repository"
	"storegate/state"
)

// AuthService owns the session lifecycle: login and register persist the
// token+user mirror and attach the bearer header, CheckAuthState rebuilds
// the session from that mirror at startup, Logout tears everything down.
type AuthService struct {
	ar       repository.AuthRepository
	sessions repository.SessionRepository
	client   *repository.BackendClient
	store    *state.AuthStore
}

func NewAuthService(authRepo repository.AuthRepository, sessionRepo repository.SessionRepository, client *repository.BackendClient, store *state.AuthStore) AuthService {
	return AuthService{
		ar:       authRepo,
		sessions: sessionRepo,
		client:   client,
		store:    store,
	}
}

func (as *AuthService) Store() *state.AuthStore {
	return as.store
}

func (as *AuthService) Session() entities.Session {
	return as.store.Session()
}

func (as *AuthService) LoginAdmin(ctx context.Context, creds models.Credentials) error {
	return as.login(ctx, creds, as.ar.LoginAdmin)
}

func (as *AuthService) LoginUser(ctx context.Context, creds models.Credentials) error {
	return as.login(ctx, creds, as.ar.LoginUser)
}

func (as *AuthService) login(ctx context.Context, creds models.Credentials, do func(context.Context, models.Credentials) (string, entities.User, error)) error {
	as.store.LoginStart()
	token, user, err := do(ctx, creds)
	if err != nil {
		as.store.LoginFailure(err.Error())
		return err
	}
	as.establish(token, user)
	return nil
}

func (as *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	as.store.LoginStart()
	token, user, err := as.ar.Register(ctx, req)
	if err != nil {
		as.store.LoginFailure(err.Error())
		return err
	}
	as.establish(token, user)
	return nil
}

func (as *AuthService) establish(token string, user entities.User) {
	if err := as.sessions.Save(token, user); err != nil {
		// The in-memory session still works; only the reload mirror is hurt.
		log.Printf("establish: %v", err)
	}
	as.client.SetToken(token)
	as.store.LoginSuccess(user)
}

// CheckAuthState hydrates the session from durable storage. Idempotent;
// runs once at startup.
func (as *AuthService) CheckAuthState() bool {
	as.store.LoginStart()
	token, user, ok, err := as.sessions.Load()
	if err != nil || !ok {
		as.store.LoginFailure("")
		return false
	}
	as.client.SetToken(token)
	as.store.LoginSuccess(user)
	return true
}

func (as *AuthService) Logout() {
	if err := as.sessions.Clear(); err != nil {
		log.Printf("Logout: %v", err)
	}
	as.client.ClearToken()
	as.store.Logout()
}
