package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vasaworks/vasa-api/internal/core/domain"
)

const collectionSOSAlerts = "sos_alerts"

type SOSRepository struct {
	col *mongo.Collection
}

func NewSOSRepository(db *mongo.Database) *SOSRepository {
	return &SOSRepository{col: db.Collection(collectionSOSAlerts)}
}

// Insert persists a safety alert. The service assigns the ID before calling.
func (r *SOSRepository) Insert(ctx context.Context, alert *domain.SOSAlert) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, alert); err != nil {
		return fmt.Errorf("insert sos alert: %w", err)
	}
	return nil
}

// List returns the most recent alerts.
func (r *SOSRepository) List(ctx context.Context, limit int) ([]*domain.SOSAlert, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list sos alerts: %w", err)
	}
	defer cursor.Close(ctx)

	var alerts []*domain.SOSAlert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("decode sos alerts: %w", err)
	}
	return alerts, nil
}

// EnsureIndexes creates necessary indexes on the sos_alerts collection.
func (r *SOSRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
