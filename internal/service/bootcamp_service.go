package service

import (
	"context"
	"time"

	"github.com/FredrikEglese/learnApi/internal/apperr"
	"github.com/FredrikEglese/learnApi/internal/geocoder"
	"github.com/FredrikEglese/learnApi/internal/models"
	"github.com/FredrikEglese/learnApi/internal/repository"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Radio de la Tierra para pasar km a radianes en la búsqueda geo.
const earthRadiusKm = 6378.0

type BootcampService struct {
	bootcamps BootcampStore
	courses   CourseStore
	geo       geocoder.Geocoder
	// política cuando el geocoder no encuentra la dirección:
	// true = guardar sin location, false = rechazar el write
	geocodeFailOpen bool
}

func NewBootcampService(bootcamps BootcampStore, courses CourseStore, geo geocoder.Geocoder, failOpen bool) *BootcampService {
	return &BootcampService{
		bootcamps:       bootcamps,
		courses:         courses,
		geo:             geo,
		geocodeFailOpen: failOpen,
	}
}

type BootcampInput struct {
	Name          string
	Description   string
	Website       string
	Email         string
	Address       string
	Careers       []string
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
}

func validateBootcampInput(in BootcampInput) error {
	if in.Name == "" {
		return apperr.Validationf("Please add a name")
	}
	if len(in.Name) > 50 {
		return apperr.Validationf("Name can not be longer than 50 characters")
	}
	if in.Description == "" {
		return apperr.Validationf("Please add a description")
	}
	if len(in.Description) > 500 {
		return apperr.Validationf("Description can not be longer than 500 characters")
	}
	if in.Website != "" && !validURL(in.Website) {
		return apperr.Validationf("Please use a valid URL with http or https")
	}
	if in.Email != "" && !validEmail(in.Email) {
		return apperr.Validationf("Please use a valid email address")
	}
	if len(in.Careers) == 0 {
		return apperr.Validationf("Please add at least one career")
	}
	for _, c := range in.Careers {
		if !models.ValidCareer(c) {
			return apperr.Validationf("invalid career: %s", c)
		}
	}
	return nil
}

// Create publica un bootcamp a nombre del usuario autenticado.
// Un publisher solo puede tener uno; los admin no tienen límite.
func (s *BootcampService) Create(ctx context.Context, owner *models.UserDoc, in BootcampInput) (*models.BootcampDoc, error) {
	if err := validateBootcampInput(in); err != nil {
		return nil, err
	}

	if owner.Role != models.RoleAdmin {
		// check-then-act: un índice único parcial no puede expresar
		// la excepción para admins, el role vive en el usuario
		existing, err := s.bootcamps.FindByOwner(ctx, owner.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperr.Conflictf("user %s has already published a bootcamp", owner.ID.Hex())
		}
	}

	if dup, err := s.bootcamps.FindByName(ctx, in.Name); err != nil {
		return nil, err
	} else if dup != nil {
		return nil, apperr.Validationf("bootcamp name already in use")
	}

	b := &models.BootcampDoc{
		ID:            primitive.NewObjectID(),
		Name:          in.Name,
		Slug:          slug.Make(in.Name),
		Description:   in.Description,
		Website:       in.Website,
		Email:         in.Email,
		Address:       in.Address,
		Careers:       in.Careers,
		Photo:         "no-photo.jpg",
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		User:          owner.ID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.enrichLocation(ctx, b); err != nil {
		return nil, err
	}

	if err := s.bootcamps.Insert(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Validationf("bootcamp name already in use")
		}
		return nil, err
	}
	return b, nil
}

// enrichLocation resuelve la dirección en texto libre a un Point GeoJSON
// más la dirección estructurada, y descarta el texto original.
func (s *BootcampService) enrichLocation(ctx context.Context, b *models.BootcampDoc) error {
	if b.Address == "" {
		return nil
	}

	results, err := s.geo.Geocode(ctx, b.Address)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		if s.geocodeFailOpen {
			return nil
		}
		return apperr.Validationf("could not geocode address: %s", b.Address)
	}

	loc := results[0]
	b.Location = &models.Location{
		Type:             "Point",
		Coordinates:      []float64{loc.Lng, loc.Lat},
		FormattedAddress: loc.FormattedAddress,
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Postcode:         loc.Postcode,
		Country:          loc.Country,
	}
	b.Address = ""
	return nil
}

// List corre el query genérico y adjunta los cursos de cada bootcamp.
func (s *BootcampService) List(ctx context.Context, q repository.ListQuery) (*repository.Page[models.BootcampDoc], error) {
	page, err := s.bootcamps.List(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range page.Data {
		courses, err := s.courses.FindByBootcamp(ctx, page.Data[i].ID)
		if err != nil {
			return nil, err
		}
		page.Data[i].Courses = courses
	}
	return page, nil
}

func (s *BootcampService) Get(ctx context.Context, id primitive.ObjectID) (*models.BootcampDoc, error) {
	b, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFoundf("Bootcamp not found with id of: %s", id.Hex())
	}
	courses, err := s.courses.FindByBootcamp(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Courses = courses
	return b, nil
}

type BootcampUpdate struct {
	Name          *string
	Description   *string
	Website       *string
	Email         *string
	Address       *string
	Careers       *[]string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
}

func (s *BootcampService) Update(ctx context.Context, actor *models.UserDoc, id primitive.ObjectID, in BootcampUpdate) (*models.BootcampDoc, error) {
	b, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFoundf("Bootcamp not found with id of: %s", id.Hex())
	}
	if err := canMutate(actor, b.User, "bootcamp"); err != nil {
		return nil, err
	}

	update := bson.M{}

	if in.Name != nil {
		if *in.Name == "" || len(*in.Name) > 50 {
			return nil, apperr.Validationf("Name can not be empty or longer than 50 characters")
		}
		if dup, err := s.bootcamps.FindByName(ctx, *in.Name); err != nil {
			return nil, err
		} else if dup != nil && dup.ID != id {
			return nil, apperr.Validationf("bootcamp name already in use")
		}
		update["name"] = *in.Name
		update["slug"] = slug.Make(*in.Name)
		b.Name = *in.Name
	}
	if in.Description != nil {
		if *in.Description == "" || len(*in.Description) > 500 {
			return nil, apperr.Validationf("Description can not be empty or longer than 500 characters")
		}
		update["description"] = *in.Description
		b.Description = *in.Description
	}
	if in.Website != nil {
		if *in.Website != "" && !validURL(*in.Website) {
			return nil, apperr.Validationf("Please use a valid URL with http or https")
		}
		update["website"] = *in.Website
		b.Website = *in.Website
	}
	if in.Email != nil {
		if *in.Email != "" && !validEmail(*in.Email) {
			return nil, apperr.Validationf("Please use a valid email address")
		}
		update["email"] = *in.Email
		b.Email = *in.Email
	}
	if in.Careers != nil {
		if len(*in.Careers) == 0 {
			return nil, apperr.Validationf("Please add at least one career")
		}
		for _, c := range *in.Careers {
			if !models.ValidCareer(c) {
				return nil, apperr.Validationf("invalid career: %s", c)
			}
		}
		update["careers"] = *in.Careers
		b.Careers = *in.Careers
	}
	if in.Housing != nil {
		update["housing"] = *in.Housing
		b.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		update["jobAssistance"] = *in.JobAssistance
		b.JobAssistance = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		update["jobGuarantee"] = *in.JobGuarantee
		b.JobGuarantee = *in.JobGuarantee
	}

	// dirección nueva: volver a geocodificar
	if in.Address != nil && *in.Address != "" {
		b.Address = *in.Address
		b.Location = nil
		if err := s.enrichLocation(ctx, b); err != nil {
			return nil, err
		}
		update["address"] = b.Address
		update["location"] = b.Location
	}

	if len(update) == 0 {
		return nil, apperr.Validationf("no fields to update")
	}

	if err := s.bootcamps.UpdateByID(ctx, id, update); err != nil {
		// el documento pudo desaparecer entre la lectura y el write
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFoundf("Bootcamp not found with id of: %s", id.Hex())
		}
		return nil, err
	}
	return b, nil
}

// Delete borra el bootcamp y, en cascada, todos sus cursos.
// La cascada vive acá, en el camino de borrado, nunca en la capa de consulta.
func (s *BootcampService) Delete(ctx context.Context, actor *models.UserDoc, id primitive.ObjectID) error {
	b, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return apperr.NotFoundf("Bootcamp not found with id of: %s", id.Hex())
	}
	if err := canMutate(actor, b.User, "bootcamp"); err != nil {
		return err
	}

	if _, err := s.courses.DeleteByBootcamp(ctx, id); err != nil {
		return err
	}
	if err := s.bootcamps.DeleteByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFoundf("Bootcamp not found with id of: %s", id.Hex())
		}
		return err
	}
	return nil
}

// WithinRadius resuelve el postcode a coordenadas y filtra los bootcamps
// dentro del casquete esférico. El radio en radianes es distancia / radio
// de la Tierra (6378 km).
func (s *BootcampService) WithinRadius(ctx context.Context, postcode string, distanceKm float64) ([]models.BootcampDoc, error) {
	if distanceKm <= 0 {
		return nil, apperr.Validationf("distance must be a positive number of kilometers")
	}

	results, err := s.geo.Geocode(ctx, postcode)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperr.NotFoundf("Location not found for postcode: %s", postcode)
	}

	loc := results[0]
	radians := distanceKm / earthRadiusKm

	return s.bootcamps.FindWithinRadius(ctx, loc.Lng, loc.Lat, radians)
}

// canMutate deja pasar al dueño del recurso o a un admin.
func canMutate(actor *models.UserDoc, owner primitive.ObjectID, resource string) error {
	if actor.Role == models.RoleAdmin || actor.ID == owner {
		return nil
	}
	return apperr.Forbidden("user is not authorised to modify this " + resource)
}
