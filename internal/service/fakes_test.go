package service

import (
	"context"

	"github.com/FredrikEglese/learnApi/internal/geocoder"
	"github.com/FredrikEglese/learnApi/internal/models"
	"github.com/FredrikEglese/learnApi/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakes en memoria para los stores; suficientes para las reglas de
// negocio, sin mongo de por medio

type fakeUserStore struct {
	users []*models.UserDoc
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.UserDoc, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.UserDoc) error {
	f.users = append(f.users, u)
	return nil
}

func (f *fakeUserStore) UpdateByID(_ context.Context, id primitive.ObjectID, _ bson.M) error {
	for _, u := range f.users {
		if u.ID == id {
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeUserStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeUserStore) List(_ context.Context, q repository.ListQuery) (*repository.Page[models.UserDoc], error) {
	data := []models.UserDoc{}
	for _, u := range f.users {
		data = append(data, *u)
	}
	return &repository.Page[models.UserDoc]{
		Count:      len(data),
		Total:      int64(len(data)),
		Pagination: repository.BuildPagination(q.Page, q.Limit, int64(len(data))),
		Data:       data,
	}, nil
}

type radiusCall struct {
	lng, lat, radians float64
}

type fakeBootcampStore struct {
	bootcamps  []*models.BootcampDoc
	radiusSeen *radiusCall
	radiusOut  []models.BootcampDoc
}

func (f *fakeBootcampStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.BootcampDoc, error) {
	for _, b := range f.bootcamps {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBootcampStore) FindByName(_ context.Context, name string) (*models.BootcampDoc, error) {
	for _, b := range f.bootcamps {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBootcampStore) FindByOwner(_ context.Context, userID primitive.ObjectID) (*models.BootcampDoc, error) {
	for _, b := range f.bootcamps {
		if b.User == userID {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBootcampStore) Insert(_ context.Context, b *models.BootcampDoc) error {
	f.bootcamps = append(f.bootcamps, b)
	return nil
}

func (f *fakeBootcampStore) UpdateByID(_ context.Context, id primitive.ObjectID, _ bson.M) error {
	for _, b := range f.bootcamps {
		if b.ID == id {
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeBootcampStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	for i, b := range f.bootcamps {
		if b.ID == id {
			f.bootcamps = append(f.bootcamps[:i], f.bootcamps[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeBootcampStore) List(_ context.Context, q repository.ListQuery) (*repository.Page[models.BootcampDoc], error) {
	data := []models.BootcampDoc{}
	for _, b := range f.bootcamps {
		data = append(data, *b)
	}
	return &repository.Page[models.BootcampDoc]{
		Count:      len(data),
		Total:      int64(len(data)),
		Pagination: repository.BuildPagination(q.Page, q.Limit, int64(len(data))),
		Data:       data,
	}, nil
}

func (f *fakeBootcampStore) FindWithinRadius(_ context.Context, lng, lat, radians float64) ([]models.BootcampDoc, error) {
	f.radiusSeen = &radiusCall{lng: lng, lat: lat, radians: radians}
	return f.radiusOut, nil
}

type fakeCourseStore struct {
	courses []*models.CourseDoc
}

func (f *fakeCourseStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.CourseDoc, error) {
	for _, c := range f.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCourseStore) FindByBootcamp(_ context.Context, bootcampID primitive.ObjectID) ([]models.CourseDoc, error) {
	out := []models.CourseDoc{}
	for _, c := range f.courses {
		if c.Bootcamp == bootcampID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCourseStore) Insert(_ context.Context, c *models.CourseDoc) error {
	f.courses = append(f.courses, c)
	return nil
}

func (f *fakeCourseStore) UpdateByID(_ context.Context, id primitive.ObjectID, _ bson.M) error {
	for _, c := range f.courses {
		if c.ID == id {
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeCourseStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	for i, c := range f.courses {
		if c.ID == id {
			f.courses = append(f.courses[:i], f.courses[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeCourseStore) DeleteByBootcamp(_ context.Context, bootcampID primitive.ObjectID) (int64, error) {
	kept := f.courses[:0]
	var deleted int64
	for _, c := range f.courses {
		if c.Bootcamp == bootcampID {
			deleted++
			continue
		}
		kept = append(kept, c)
	}
	f.courses = kept
	return deleted, nil
}

func (f *fakeCourseStore) List(_ context.Context, q repository.ListQuery) (*repository.Page[models.CourseDoc], error) {
	data := []models.CourseDoc{}
	for _, c := range f.courses {
		if bid, ok := q.Filter["bootcamp"].(primitive.ObjectID); ok && c.Bootcamp != bid {
			continue
		}
		data = append(data, *c)
	}
	return &repository.Page[models.CourseDoc]{
		Count:      len(data),
		Total:      int64(len(data)),
		Pagination: repository.BuildPagination(q.Page, q.Limit, int64(len(data))),
		Data:       data,
	}, nil
}

type stubGeocoder struct {
	results []geocoder.Result
	err     error
	queries []string
}

func (s *stubGeocoder) Geocode(_ context.Context, query string) ([]geocoder.Result, error) {
	s.queries = append(s.queries, query)
	return s.results, s.err
}
