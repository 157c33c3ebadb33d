package state

import (
	"sync"

	"storegate/entities"
)

// AuthStore owns the Session. All mutation goes through these entry points;
// nothing else in the program writes auth state.
type AuthStore struct {
	mu            sync.Mutex
	user          *entities.User
	authenticated bool
	loading       bool
	err           string
}

func NewAuthStore() *AuthStore {
	return &AuthStore{}
}

func (a *AuthStore) LoginStart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = true
	a.err = ""
}

func (a *AuthStore) LoginSuccess(user entities.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = &user
	a.authenticated = true
	a.loading = false
	a.err = ""
}

func (a *AuthStore) LoginFailure(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = nil
	a.authenticated = false
	a.loading = false
	a.err = message
}

func (a *AuthStore) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = nil
	a.authenticated = false
	a.loading = false
	a.err = ""
}

func (a *AuthStore) Session() entities.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := entities.Session{
		IsAuthenticated: a.authenticated,
		IsLoading:       a.loading,
		Error:           a.err,
	}
	if a.user != nil {
		u := *a.user
		s.User = &u
	}
	return s
}
