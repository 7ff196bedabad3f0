package repository

import (
	"context"

	"github.com/FredrikEglese/learnApi/internal/db"
	"github.com/FredrikEglese/learnApi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BootcampRepository struct {
	col *mongo.Collection
}

func NewBootcampRepository() *BootcampRepository {
	return &BootcampRepository{col: db.DB().Collection("bootcamps")}
}

func (r *BootcampRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.BootcampDoc, error) {
	var b models.BootcampDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &b, err
}

func (r *BootcampRepository) FindByName(ctx context.Context, name string) (*models.BootcampDoc, error) {
	var b models.BootcampDoc
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &b, err
}

// FindByOwner busca el bootcamp publicado por un usuario,
// la base de la regla "un bootcamp por publisher".
func (r *BootcampRepository) FindByOwner(ctx context.Context, userID primitive.ObjectID) (*models.BootcampDoc, error) {
	var b models.BootcampDoc
	err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &b, err
}

func (r *BootcampRepository) Insert(ctx context.Context, b *models.BootcampDoc) error {
	_, err := r.col.InsertOne(ctx, b)
	return err
}

func (r *BootcampRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *BootcampRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *BootcampRepository) List(ctx context.Context, q ListQuery) (*Page[models.BootcampDoc], error) {
	return FindPage[models.BootcampDoc](ctx, r.col, q)
}

// FindWithinRadius filtra bootcamps dentro del casquete esférico
// centrado en [lng lat] con radio en radianes.
func (r *BootcampRepository) FindWithinRadius(ctx context.Context, lng, lat, radians float64) ([]models.BootcampDoc, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radians},
			},
		},
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.BootcampDoc{}
	for cur.Next(ctx) {
		var b models.BootcampDoc
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, cur.Err()
}
