package services

import (
	"context"

	"storegate/entities"
	"storegate/models"
	"storegate/repository"
	"storegate/state"
)

// UserService keeps no on-disk snapshot: user rows carry emails and phone
// numbers, and those stay out of the plaintext cache file.
type UserService struct {
	ur    repository.UserRepository
	store *state.EntityStore[entities.User]
}

func NewUserService(userRepo repository.UserRepository, store *state.EntityStore[entities.User]) UserService {
	return UserService{
		ur:    userRepo,
		store: store,
	}
}

func (us *UserService) Store() *state.EntityStore[entities.User] {
	return us.store
}

func (us *UserService) FetchUsers(ctx context.Context) (users []entities.User, err error) {
	token := us.store.Start()
	users, err = us.ur.GetUsers(ctx)
	if err != nil {
		us.store.Failed(token, err.Error())
		return nil, err
	}
	us.store.Succeeded(token, users)
	return users, nil
}

func (us *UserService) FetchUserById(ctx context.Context, id int) (user entities.User, err error) {
	user, err = us.ur.GetUserById(ctx, id)
	if err != nil {
		return
	}
	us.store.Select(user)
	return
}

func (us *UserService) CreateUser(ctx context.Context, req models.UserRequest) (user entities.User, err error) {
	user, err = us.ur.CreateUser(ctx, req)
	if err != nil {
		return
	}
	us.store.Created(user)
	return
}

func (us *UserService) UpdateUser(ctx context.Context, id int, req models.UserRequest) (user entities.User, err error) {
	user, err = us.ur.UpdateUser(ctx, id, req)
	if err != nil {
		return
	}
	us.store.Updated(user)
	return
}

// DeleteUser refuses to remove Admin rows; the backoffice disables that
// action and the gateway backs it up.
func (us *UserService) DeleteUser(ctx context.Context, id int) (err error) {
	if user, ok := us.store.Find(id); ok && user.Role == entities.RoleAdmin {
		return models.NewRemoteError(models.ErrNotAllowed, "admin accounts can not be deleted")
	}
	err = us.ur.DeleteUser(ctx, id)
	if err != nil {
		return
	}
	us.store.Removed(id)
	return
}
