package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Careers permitidos para un bootcamp.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

func ValidCareer(c string) bool {
	for _, v := range Careers {
		if v == c {
			return true
		}
	}
	return false
}

// Location es un GeoJSON Point más la dirección estructurada
// que devuelve el geocoder.
type Location struct {
	Type             string    `json:"type" bson:"type"`
	Coordinates      []float64 `json:"coordinates" bson:"coordinates"` // [lng, lat]
	FormattedAddress string    `json:"formattedAddress,omitempty" bson:"formattedAddress,omitempty"`
	Street           string    `json:"street,omitempty" bson:"street,omitempty"`
	City             string    `json:"city,omitempty" bson:"city,omitempty"`
	State            string    `json:"state,omitempty" bson:"state,omitempty"`
	Postcode         string    `json:"postcode,omitempty" bson:"postcode,omitempty"`
	Country          string    `json:"country,omitempty" bson:"country,omitempty"`
}

type BootcampDoc struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description" bson:"description"`
	Website     string             `json:"website,omitempty" bson:"website,omitempty"`
	Email       string             `json:"email,omitempty" bson:"email,omitempty"`

	// Address es la dirección en texto libre; se vacía una vez
	// que el geocoder llenó Location.
	Address  string    `json:"address,omitempty" bson:"address,omitempty"`
	Location *Location `json:"location,omitempty" bson:"location,omitempty"`

	Careers       []string `json:"careers" bson:"careers"`
	AverageRating *float64 `json:"averageRating,omitempty" bson:"averageRating,omitempty"`
	AverageCost   *float64 `json:"averageCost,omitempty" bson:"averageCost,omitempty"`
	Photo         string   `json:"photo" bson:"photo"`
	Housing       bool     `json:"housing" bson:"housing"`
	JobAssistance bool     `json:"jobAssistance" bson:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee" bson:"jobGuarantee"`

	User      primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`

	// Relación inversa, se adjunta al listar/leer, nunca se persiste.
	Courses []CourseDoc `json:"courses,omitempty" bson:"-"`
}
