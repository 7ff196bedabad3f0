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
)

type CourseService struct {
	courses   CourseStore
	bootcamps BootcampStore
}

func NewCourseService(courses CourseStore, bootcamps BootcampStore) *CourseService {
	return &CourseService{courses: courses, bootcamps: bootcamps}
}

// List corre el query genérico sobre todos los cursos y adjunta
// nombre y descripción del bootcamp padre.
func (s *CourseService) List(ctx context.Context, q repository.ListQuery) (*repository.Page[models.CourseDoc], error) {
	page, err := s.courses.List(ctx, q)
	if err != nil {
		return nil, err
	}

	// un fetch por bootcamp distinto, no por curso
	refs := map[primitive.ObjectID]*models.BootcampRef{}
	for i := range page.Data {
		bid := page.Data[i].Bootcamp
		ref, seen := refs[bid]
		if !seen {
			b, err := s.bootcamps.FindByID(ctx, bid)
			if err != nil {
				return nil, err
			}
			if b != nil {
				ref = &models.BootcampRef{ID: b.ID, Name: b.Name, Description: b.Description}
			}
			refs[bid] = ref
		}
		page.Data[i].BootcampInfo = ref
	}
	return page, nil
}

// ListByBootcamp lista los cursos de un bootcamp puntual. Reusa el
// query genérico con el filtro por bootcamp fijado por el servidor.
func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID, q repository.ListQuery) (*repository.Page[models.CourseDoc], error) {
	b, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFoundf("Bootcamp not found with id of: %s", bootcampID.Hex())
	}

	q.Filter["bootcamp"] = bootcampID
	return s.courses.List(ctx, q)
}

func (s *CourseService) Get(ctx context.Context, id primitive.ObjectID) (*models.CourseDoc, error) {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFoundf("No course with id of %s", id.Hex())
	}

	b, err := s.bootcamps.FindByID(ctx, c.Bootcamp)
	if err != nil {
		return nil, err
	}
	if b != nil {
		c.BootcampInfo = &models.BootcampRef{ID: b.ID, Name: b.Name, Description: b.Description}
	}
	return c, nil
}

type CourseInput struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         string
	ScholarshipAvailable bool
}

func validateCourseInput(in CourseInput) error {
	if in.Title == "" {
		return apperr.Validationf("Please add a course title")
	}
	if in.Description == "" {
		return apperr.Validationf("Please add a description")
	}
	if in.Weeks <= 0 {
		return apperr.Validationf("Please add number of weeks")
	}
	if in.Tuition < 0 {
		return apperr.Validationf("Tuition can not be negative")
	}
	if !models.ValidSkill(in.MinimumSkill) {
		return apperr.Validationf("minimumSkill must be beginner|intermediate|advanced")
	}
	return nil
}

// Create agrega un curso bajo un bootcamp. Solo el dueño del bootcamp
// o un admin pueden hacerlo.
func (s *CourseService) Create(ctx context.Context, actor *models.UserDoc, bootcampID primitive.ObjectID, in CourseInput) (*models.CourseDoc, error) {
	b, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFoundf("Bootcamp not found with id of: %s", bootcampID.Hex())
	}
	if err := canMutate(actor, b.User, "bootcamp"); err != nil {
		return nil, err
	}
	if err := validateCourseInput(in); err != nil {
		return nil, err
	}

	c := &models.CourseDoc{
		ID:                   primitive.NewObjectID(),
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
		Bootcamp:             bootcampID,
		User:                 actor.ID,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.courses.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

type CourseUpdate struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *float64
	MinimumSkill         *string
	ScholarshipAvailable *bool
}

func (s *CourseService) Update(ctx context.Context, actor *models.UserDoc, id primitive.ObjectID, in CourseUpdate) (*models.CourseDoc, error) {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFoundf("No course with id of %s", id.Hex())
	}
	if err := canMutate(actor, c.User, "course"); err != nil {
		return nil, err
	}

	update := bson.M{}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperr.Validationf("Please add a course title")
		}
		update["title"] = *in.Title
		c.Title = *in.Title
	}
	if in.Description != nil {
		if *in.Description == "" {
			return nil, apperr.Validationf("Please add a description")
		}
		update["description"] = *in.Description
		c.Description = *in.Description
	}
	if in.Weeks != nil {
		if *in.Weeks <= 0 {
			return nil, apperr.Validationf("Please add number of weeks")
		}
		update["weeks"] = *in.Weeks
		c.Weeks = *in.Weeks
	}
	if in.Tuition != nil {
		if *in.Tuition < 0 {
			return nil, apperr.Validationf("Tuition can not be negative")
		}
		update["tuition"] = *in.Tuition
		c.Tuition = *in.Tuition
	}
	if in.MinimumSkill != nil {
		if !models.ValidSkill(*in.MinimumSkill) {
			return nil, apperr.Validationf("minimumSkill must be beginner|intermediate|advanced")
		}
		update["minimumSkill"] = *in.MinimumSkill
		c.MinimumSkill = *in.MinimumSkill
	}
	if in.ScholarshipAvailable != nil {
		update["scholarshipAvailable"] = *in.ScholarshipAvailable
		c.ScholarshipAvailable = *in.ScholarshipAvailable
	}

	if len(update) == 0 {
		return nil, apperr.Validationf("no fields to update")
	}

	if err := s.courses.UpdateByID(ctx, id, update); err != nil {
		// el documento pudo desaparecer entre la lectura y el write
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFoundf("No course with id of %s", id.Hex())
		}
		return nil, err
	}
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, actor *models.UserDoc, id primitive.ObjectID) error {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.NotFoundf("No course with id of %s", id.Hex())
	}
	if err := canMutate(actor, c.User, "course"); err != nil {
		return err
	}
	if err := s.courses.DeleteByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFoundf("No course with id of %s", id.Hex())
		}
		return err
	}
	return nil
}
