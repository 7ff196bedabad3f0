package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/FredrikEglese/learnApi/internal/config"
	"github.com/FredrikEglese/learnApi/internal/db"
	"github.com/FredrikEglese/learnApi/internal/models"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
)

// Seeder de datos de ejemplo: `seeder -i` importa _data/*.json,
// `seeder -d` vacía las colecciones.
func main() {
	cfg := config.Load()
	db.InitMongo(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if len(os.Args) < 2 {
		log.Fatal("uso: seeder -i (importar) | -d (destruir)")
	}

	switch os.Args[1] {
	case "-i":
		importData(ctx)
	case "-d":
		deleteData(ctx)
	default:
		log.Fatal("uso: seeder -i (importar) | -d (destruir)")
	}
}

func importData(ctx context.Context) {
	var bootcamps []models.BootcampDoc
	loadJSON("_data/bootcamps.json", &bootcamps)

	var courses []models.CourseDoc
	loadJSON("_data/courses.json", &courses)

	now := time.Now().UTC()

	bootcampDocs := make([]any, 0, len(bootcamps))
	for i := range bootcamps {
		b := &bootcamps[i]
		if b.Slug == "" {
			b.Slug = slug.Make(b.Name)
		}
		if b.Photo == "" {
			b.Photo = "no-photo.jpg"
		}
		if b.CreatedAt.IsZero() {
			b.CreatedAt = now
		}
		bootcampDocs = append(bootcampDocs, b)
	}

	courseDocs := make([]any, 0, len(courses))
	for i := range courses {
		if courses[i].CreatedAt.IsZero() {
			courses[i].CreatedAt = now
		}
		courseDocs = append(courseDocs, &courses[i])
	}

	if _, err := db.DB().Collection("bootcamps").InsertMany(ctx, bootcampDocs); err != nil {
		log.Fatalf("[seeder] insert bootcamps: %v", err)
	}
	if _, err := db.DB().Collection("courses").InsertMany(ctx, courseDocs); err != nil {
		log.Fatalf("[seeder] insert courses: %v", err)
	}

	log.Printf("[seeder] importados %d bootcamps, %d cursos", len(bootcampDocs), len(courseDocs))
}

func deleteData(ctx context.Context) {
	for _, col := range []string{"bootcamps", "courses"} {
		if _, err := db.DB().Collection(col).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("[seeder] vaciando %s: %v", col, err)
		}
	}
	log.Println("[seeder] datos destruidos")
}

func loadJSON(path string, dest any) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("[seeder] leyendo %s: %v", path, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Fatalf("[seeder] parseando %s: %v", path, err)
	}
}
