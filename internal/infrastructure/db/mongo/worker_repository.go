package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

const collectionWorkers = "workers"

type WorkerRepository struct {
	col *mongo.Collection
}

func NewWorkerRepository(db *mongo.Database) *WorkerRepository {
	return &WorkerRepository{col: db.Collection(collectionWorkers)}
}

// Create inserts a new worker registry entry.
func (r *WorkerRepository) Create(ctx context.Context, w *domain.WorkerProfile) (*domain.WorkerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	if _, err := r.col.InsertOne(ctx, w); err != nil {
		return nil, fmt.Errorf("insert worker: %w", err)
	}
	return w, nil
}

func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*domain.WorkerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var w domain.WorkerProfile
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, fmt.Errorf("find worker: %w", err)
	}
	return &w, nil
}

// FindByIDs returns the profiles for the given ids. Missing ids are simply
// absent from the result; callers compare lengths to detect them.
func (r *WorkerRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.WorkerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find workers: %w", err)
	}
	defer cursor.Close(ctx)

	var workers []*domain.WorkerProfile
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("decode workers: %w", err)
	}
	return workers, nil
}

func (r *WorkerRepository) Update(ctx context.Context, w *domain.WorkerProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": w.ID}, w)
	if err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrWorkerNotFound
	}
	return nil
}

func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete worker: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrWorkerNotFound
	}
	return nil
}

// List returns all registry entries, newest first. The registry is small by
// design (one panchayat's workers); filtering happens in the service.
func (r *WorkerRepository) List(ctx context.Context) ([]*domain.WorkerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer cursor.Close(ctx)

	var workers []*domain.WorkerProfile
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("decode workers: %w", err)
	}
	return workers, nil
}

// EnsureIndexes creates necessary indexes on the workers collection.
func (r *WorkerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: 1}}},
		{Keys: bson.D{{Key: "skills", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
