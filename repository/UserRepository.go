package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"storegate/entities"
	"storegate/models"
)

// User management is the least consistent part of the backend surface:
// list, read, update and delete all live under different prefixes.
const (
	adminUsersPath = "/api/v1/admin/users"
	adminUserPath  = "/api/admin/v1/user"
	manageUserPath = "/api/v1/admin/manage-user"
	deleteUserPath = "/api/v1/admin/user"
)

type UserRepository interface {
	GetUsers(ctx context.Context) ([]entities.User, error)
	GetUserById(ctx context.Context, id int) (entities.User, error)
	CreateUser(ctx context.Context, req models.UserRequest) (entities.User, error)
	UpdateUser(ctx context.Context, id int, req models.UserRequest) (entities.User, error)
	DeleteUser(ctx context.Context, id int) error
}

type UserRepo struct {
	client *BackendClient
}

func NewUserRepository(client *BackendClient) (UserRepository, error) {
	if client == nil {
		return nil, errors.New("client must be non-nil")
	}
	return &UserRepo{client: client}, nil
}

func (u *UserRepo) GetUsers(ctx context.Context) (users []entities.User, err error) {
	body, status, err := u.client.Get(ctx, adminUsersPath)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("GetUsers: %v", err)
		return
	}
	err = DecodeList(body, "users", &users)
	if err != nil {
		log.Printf("GetUsers: %v", err)
	}
	return
}

func (u *UserRepo) GetUserById(ctx context.Context, id int) (user entities.User, err error) {
	path := fmt.Sprintf("%s/%d", adminUserPath, id)
	body, status, err := u.client.Get(ctx, path)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("GetUserById: %v", err)
		return
	}
	err = DecodeItem(body, "user", &user)
	if err != nil {
		log.Printf("GetUserById: %v", err)
	}
	return
}

func (u *UserRepo) CreateUser(ctx context.Context, req models.UserRequest) (user entities.User, err error) {
	body, status, err := u.client.Send(ctx, http.MethodPost, adminUserPath, req)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("CreateUser: %v", err)
		return
	}
	err = DecodeItem(body, "user", &user)
	if err != nil {
		log.Printf("CreateUser: %v", err)
	}
	return
}

func (u *UserRepo) UpdateUser(ctx context.Context, id int, req models.UserRequest) (user entities.User, err error) {
	path := fmt.Sprintf("%s/%d", manageUserPath, id)
	body, status, err := u.client.Send(ctx, http.MethodPut, path, req)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("UpdateUser: %v", err)
		return
	}
	err = DecodeItem(body, "user", &user)
	if err != nil {
		log.Printf("UpdateUser: %v", err)
	}
	return
}

func (u *UserRepo) DeleteUser(ctx context.Context, id int) (err error) {
	path := fmt.Sprintf("%s/%d", deleteUserPath, id)
	body, status, err := u.client.Send(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return
	}
	if !isSuccess(status) {
		err = remoteError(status, body)
		log.Printf("DeleteUser: %v", err)
		return
	}
	err = CheckEnvelope(body)
	if err != nil {
		log.Printf("DeleteUser: %v", err)
	}
	return
}
