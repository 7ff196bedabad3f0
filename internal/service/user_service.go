package service

import (
	"context"
	"time"

	"github.com/FredrikEglese/learnApi/internal/apperr"
	"github.com/FredrikEglese/learnApi/internal/models"
	"github.com/FredrikEglese/learnApi/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// UserService es el CRUD de usuarios para admins. A diferencia del
// registro público, acá sí se puede asignar cualquier role.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, q repository.ListQuery) (*repository.Page[models.UserDoc], error) {
	return s.users.List(ctx, q)
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFoundf("User not found with id of: %s", id.Hex())
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, data RegisterData) (*models.UserDoc, error) {
	if data.Name == "" {
		return nil, apperr.Validationf("Please enter a name")
	}
	if !validEmail(data.Email) {
		return nil, apperr.Validationf("Please use a valid email address")
	}
	if len(data.Password) < 6 {
		return nil, apperr.Validationf("Password must be at least 6 characters")
	}

	role := data.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, apperr.Validationf("invalid role (must be user|publisher|admin)")
	}

	existing, err := s.users.FindByEmail(ctx, data.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validationf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.UserDoc{
		ID:           primitive.NewObjectID(),
		Name:         data.Name,
		Email:        data.Email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Insert(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Validationf("email already registered")
		}
		return nil, err
	}
	return u, nil
}

type UserUpdate struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
}

func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, in UserUpdate) (*models.UserDoc, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFoundf("User not found with id of: %s", id.Hex())
	}

	update := bson.M{}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.Validationf("Please enter a name")
		}
		update["name"] = *in.Name
		u.Name = *in.Name
	}
	if in.Email != nil {
		if !validEmail(*in.Email) {
			return nil, apperr.Validationf("Please use a valid email address")
		}
		existing, err := s.users.FindByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperr.Validationf("email already in use")
		}
		update["email"] = *in.Email
		u.Email = *in.Email
	}
	if in.Role != nil {
		if !models.ValidRole(*in.Role) {
			return nil, apperr.Validationf("invalid role (must be user|publisher|admin)")
		}
		update["role"] = *in.Role
		u.Role = *in.Role
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, apperr.Validationf("Password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		update["passwordHash"] = string(hash)
	}

	if len(update) == 0 {
		return nil, apperr.Validationf("no fields to update")
	}

	if err := s.users.UpdateByID(ctx, id, update); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.users.DeleteByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return apperr.NotFoundf("User not found with id of: %s", id.Hex())
	}
	return err
}
