package db

import (
	"context"
	"log"
	"time"

	"github.com/FredrikEglese/learnApi/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

func InitMongo(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("[mongo] error conectando: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("[mongo] ping falló: %v", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	log.Printf("[mongo] conectado a %s / DB=%s\n", cfg.MongoURI, cfg.MongoDB)
}

func DB() *mongo.Database {
	return mongoDB
}

// EnsureIndexes crea los índices que sostienen las invariantes del modelo:
// email único, nombre de bootcamp único y el índice 2dsphere para
// las búsquedas por radio.
func EnsureIndexes(ctx context.Context) {
	users := mongoDB.Collection("users").Indexes()
	if _, err := users.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		log.Fatalf("[mongo] índice users.email: %v", err)
	}

	bootcamps := mongoDB.Collection("bootcamps").Indexes()
	if _, err := bootcamps.CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
	}); err != nil {
		log.Fatalf("[mongo] índices bootcamps: %v", err)
	}

	courses := mongoDB.Collection("courses").Indexes()
	if _, err := courses.CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bootcamp", Value: 1}},
	}); err != nil {
		log.Fatalf("[mongo] índice courses.bootcamp: %v", err)
	}

	log.Println("[mongo] índices OK")
}
