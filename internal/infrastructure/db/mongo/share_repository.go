package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

const sharesCollection = "shares"

// ShareRepository implements ports.ShareRepository using MongoDB.
type ShareRepository struct {
	coll *mongo.Collection
}

// NewShareRepository creates a new ShareRepository.
func NewShareRepository(db *mongo.Database) *ShareRepository {
	return &ShareRepository{coll: db.Collection(sharesCollection)}
}

var _ ports.ShareRepository = (*ShareRepository)(nil)

// Create inserts a new share document. Share.ID is caller-assigned.
func (r *ShareRepository) Create(ctx context.Context, s *domain.Share) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return fmt.Errorf("mongo: insert share: %w", err)
	}
	return nil
}

// ExistsShare reports whether processID has already been shared with
// partnerPublicKey.
func (r *ShareRepository) ExistsShare(ctx context.Context, processID, partnerPublicKey string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"process_id":         processID,
		"partner_public_key": partnerPublicKey,
	})
	if err != nil {
		return false, fmt.Errorf("mongo: count shares: %w", err)
	}
	return count > 0, nil
}

// EnsureIndexes creates the indexes the shares collection requires.
func (r *ShareRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*defaultTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "process_id", Value: 1}, {Key: "partner_public_key", Value: 1}}},
	})
	return err
}
