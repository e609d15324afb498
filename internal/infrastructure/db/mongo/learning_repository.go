package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

const (
	collectionModules  = "learning_modules"
	collectionProgress = "learning_progress"
)

type LearningRepository struct {
	modules  *mongo.Collection
	progress *mongo.Collection
}

func NewLearningRepository(db *mongo.Database) *LearningRepository {
	return &LearningRepository{
		modules:  db.Collection(collectionModules),
		progress: db.Collection(collectionProgress),
	}
}

// Seed upserts the catalog entries, so repeated startups are safe.
func (r *LearningRepository) Seed(ctx context.Context, modules []domain.LearningModule) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for _, m := range modules {
		_, err := r.modules.ReplaceOne(ctx,
			bson.M{"_id": m.ID},
			m,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed module %s: %w", m.ID, err)
		}
	}
	return nil
}

// List returns the catalog, optionally scoped to one language.
func (r *LearningRepository) List(ctx context.Context, language string) ([]domain.LearningModule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if language != "" {
		query["language"] = language
	}

	cursor, err := r.modules.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list modules: %w", err)
	}
	defer cursor.Close(ctx)

	var modules []domain.LearningModule
	if err := cursor.All(ctx, &modules); err != nil {
		return nil, fmt.Errorf("decode modules: %w", err)
	}
	return modules, nil
}

func (r *LearningRepository) FindByID(ctx context.Context, id string) (*domain.LearningModule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.LearningModule
	err := r.modules.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrModuleNotFound
		}
		return nil, fmt.Errorf("find module: %w", err)
	}
	return &m, nil
}

// UpsertProgress records the user's progress through a module, overwriting
// any earlier value.
func (r *LearningRepository) UpsertProgress(ctx context.Context, p *domain.ModuleProgress) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.progress.UpdateOne(ctx,
		bson.M{"user_id": p.UserID, "module_id": p.ModuleID},
		bson.M{"$set": bson.M{"progress": p.Progress}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *LearningRepository) ProgressByUser(ctx context.Context, userID string) ([]domain.ModuleProgress, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.progress.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []domain.ModuleProgress
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return entries, nil
}
