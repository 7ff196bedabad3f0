package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

func ValidSkill(s string) bool {
	return s == SkillBeginner || s == SkillIntermediate || s == SkillAdvanced
}

// BootcampRef es el resumen del bootcamp padre que se adjunta
// al listar cursos a nivel global.
type BootcampRef struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
}

type CourseDoc struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id"`
	Title                string             `json:"title" bson:"title"`
	Description          string             `json:"description" bson:"description"`
	Weeks                int                `json:"weeks" bson:"weeks"`
	Tuition              float64            `json:"tuition" bson:"tuition"`
	MinimumSkill         string             `json:"minimumSkill" bson:"minimumSkill"`
	ScholarshipAvailable bool               `json:"scholarshipAvailable" bson:"scholarshipAvailable"`

	Bootcamp  primitive.ObjectID `json:"bootcamp" bson:"bootcamp"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`

	// Se adjunta al listar, nunca se persiste.
	BootcampInfo *BootcampRef `json:"bootcampInfo,omitempty" bson:"-"`
}
