package service

import (
	"context"
	"testing"

	"github.com/FredrikEglese/learnApi/internal/apperr"
	"github.com/FredrikEglese/learnApi/internal/models"
	"github.com/FredrikEglese/learnApi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func validCourse() CourseInput {
	return CourseInput{
		Title:        "Full Stack Web Development",
		Description:  "A course",
		Weeks:        12,
		Tuition:      10000,
		MinimumSkill: models.SkillIntermediate,
	}
}

func newCourseService() (*CourseService, *fakeBootcampStore, *fakeCourseStore) {
	bootcamps := &fakeBootcampStore{}
	courses := &fakeCourseStore{}
	return NewCourseService(courses, bootcamps), bootcamps, courses
}

func seedBootcamp(t *testing.T, bootcamps *fakeBootcampStore, owner *models.UserDoc) *models.BootcampDoc {
	t.Helper()
	b := &models.BootcampDoc{
		ID:          primitive.NewObjectID(),
		Name:        "Camp",
		Description: "desc",
		User:        owner.ID,
	}
	require.NoError(t, bootcamps.Insert(context.Background(), b))
	return b
}

func TestCourseCreateRequiresExistingBootcamp(t *testing.T) {
	svc, _, _ := newCourseService()

	_, err := svc.Create(context.Background(), testUser(models.RolePublisher), primitive.NewObjectID(), validCourse())
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, e.Kind)
}

func TestCourseCreateOwnership(t *testing.T) {
	svc, bootcamps, _ := newCourseService()
	ctx := context.Background()

	owner := testUser(models.RolePublisher)
	b := seedBootcamp(t, bootcamps, owner)

	// otro publisher no puede agregar cursos a un bootcamp ajeno
	_, err := svc.Create(ctx, testUser(models.RolePublisher), b.ID, validCourse())
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindForbidden, e.Kind)

	c, err := svc.Create(ctx, owner, b.ID, validCourse())
	require.NoError(t, err)
	assert.Equal(t, b.ID, c.Bootcamp)
	assert.Equal(t, owner.ID, c.User)
}

func TestCourseCreateValidation(t *testing.T) {
	svc, bootcamps, _ := newCourseService()
	ctx := context.Background()

	owner := testUser(models.RolePublisher)
	b := seedBootcamp(t, bootcamps, owner)

	in := validCourse()
	in.MinimumSkill = "expert"

	_, err := svc.Create(ctx, owner, b.ID, in)
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
}

func TestListByBootcampFilters(t *testing.T) {
	svc, bootcamps, courses := newCourseService()
	ctx := context.Background()

	owner := testUser(models.RolePublisher)
	b := seedBootcamp(t, bootcamps, owner)
	other := &models.BootcampDoc{ID: primitive.NewObjectID(), Name: "Other", User: owner.ID}
	require.NoError(t, bootcamps.Insert(ctx, other))

	require.NoError(t, courses.Insert(ctx, &models.CourseDoc{ID: primitive.NewObjectID(), Title: "Mine", Bootcamp: b.ID}))
	require.NoError(t, courses.Insert(ctx, &models.CourseDoc{ID: primitive.NewObjectID(), Title: "Theirs", Bootcamp: other.ID}))

	page, err := svc.ListByBootcamp(ctx, b.ID, repository.ListQuery{Filter: bson.M{}, Page: 1, Limit: 25})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Mine", page.Data[0].Title)
}

func TestListByBootcampUnknownBootcamp(t *testing.T) {
	svc, _, _ := newCourseService()

	_, err := svc.ListByBootcamp(context.Background(), primitive.NewObjectID(), repository.ListQuery{Filter: bson.M{}, Page: 1, Limit: 25})
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, e.Kind)
}

func TestListAttachesBootcampInfo(t *testing.T) {
	svc, bootcamps, courses := newCourseService()
	ctx := context.Background()

	owner := testUser(models.RolePublisher)
	b := seedBootcamp(t, bootcamps, owner)
	require.NoError(t, courses.Insert(ctx, &models.CourseDoc{ID: primitive.NewObjectID(), Title: "Mine", Bootcamp: b.ID}))

	page, err := svc.List(ctx, repository.ListQuery{Filter: bson.M{}, Page: 1, Limit: 25})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.NotNil(t, page.Data[0].BootcampInfo)
	assert.Equal(t, "Camp", page.Data[0].BootcampInfo.Name)
	assert.Equal(t, "desc", page.Data[0].BootcampInfo.Description)
}

func TestCourseDelete(t *testing.T) {
	svc, bootcamps, courses := newCourseService()
	ctx := context.Background()

	owner := testUser(models.RolePublisher)
	b := seedBootcamp(t, bootcamps, owner)
	c, err := svc.Create(ctx, owner, b.ID, validCourse())
	require.NoError(t, err)

	// un tercero no puede borrar
	err = svc.Delete(ctx, testUser(models.RolePublisher), c.ID)
	require.Error(t, err)

	require.NoError(t, svc.Delete(ctx, owner, c.ID))

	left, err := courses.FindByBootcamp(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

// store que pierde el curso entre la lectura y el write
type vanishingCourseStore struct {
	*fakeCourseStore
}

func (s *vanishingCourseStore) UpdateByID(context.Context, primitive.ObjectID, bson.M) error {
	return mongo.ErrNoDocuments
}

func (s *vanishingCourseStore) DeleteByID(context.Context, primitive.ObjectID) error {
	return mongo.ErrNoDocuments
}

func TestCourseDeleteRemovedConcurrentlyIsNotFound(t *testing.T) {
	ctx := context.Background()
	owner := testUser(models.RolePublisher)
	c := &models.CourseDoc{ID: primitive.NewObjectID(), Title: "Full Stack", User: owner.ID}

	store := &vanishingCourseStore{&fakeCourseStore{courses: []*models.CourseDoc{c}}}
	svc := NewCourseService(store, &fakeBootcampStore{})

	err := svc.Delete(ctx, owner, c.ID)
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, e.Kind)
	assert.Equal(t, 404, e.Status())
}

func TestCourseUpdateRemovedConcurrentlyIsNotFound(t *testing.T) {
	ctx := context.Background()
	owner := testUser(models.RolePublisher)
	c := &models.CourseDoc{ID: primitive.NewObjectID(), Title: "Full Stack", User: owner.ID}

	store := &vanishingCourseStore{&fakeCourseStore{courses: []*models.CourseDoc{c}}}
	svc := NewCourseService(store, &fakeBootcampStore{})

	title := "Renamed"
	_, err := svc.Update(ctx, owner, c.ID, CourseUpdate{Title: &title})
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, e.Kind)
}
