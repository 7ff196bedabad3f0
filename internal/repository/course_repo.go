package repository

import (
	"context"

	"github.com/FredrikEglese/learnApi/internal/db"
	"github.com/FredrikEglese/learnApi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{col: db.DB().Collection("courses")}
}

func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.CourseDoc, error) {
	var c models.CourseDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &c, err
}

func (r *CourseRepository) FindByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.CourseDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.CourseDoc{}
	for cur.Next(ctx) {
		var c models.CourseDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

func (r *CourseRepository) Insert(ctx context.Context, c *models.CourseDoc) error {
	_, err := r.col.InsertOne(ctx, c)
	return err
}

func (r *CourseRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, update bson.M) error {
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

func (r *CourseRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByBootcamp borra todos los cursos de un bootcamp (cascada).
func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"bootcamp": bootcampID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *CourseRepository) List(ctx context.Context, q ListQuery) (*Page[models.CourseDoc], error) {
	return FindPage[models.CourseDoc](ctx, r.col, q)
}
