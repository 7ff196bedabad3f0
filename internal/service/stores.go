package service

import (
	"context"

	"github.com/FredrikEglese/learnApi/internal/models"
	"github.com/FredrikEglese/learnApi/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Los stores se declaran acá, donde se consumen. Los repositorios de
// internal/repository los implementan; los tests usan fakes en memoria.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserDoc, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error)
	Insert(ctx context.Context, u *models.UserDoc) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q repository.ListQuery) (*repository.Page[models.UserDoc], error)
}

type BootcampStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.BootcampDoc, error)
	FindByName(ctx context.Context, name string) (*models.BootcampDoc, error)
	FindByOwner(ctx context.Context, userID primitive.ObjectID) (*models.BootcampDoc, error)
	Insert(ctx context.Context, b *models.BootcampDoc) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q repository.ListQuery) (*repository.Page[models.BootcampDoc], error)
	FindWithinRadius(ctx context.Context, lng, lat, radians float64) ([]models.BootcampDoc, error)
}

type CourseStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.CourseDoc, error)
	FindByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.CourseDoc, error)
	Insert(ctx context.Context, c *models.CourseDoc) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) (int64, error)
	List(ctx context.Context, q repository.ListQuery) (*repository.Page[models.CourseDoc], error)
}
