package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

const accessesCollection = "accesses"

// AccessRepository implements ports.AccessRepository using MongoDB.
type AccessRepository struct {
	coll      *mongo.Collection
	processes *mongo.Collection
	users     *mongo.Collection
}

// NewAccessRepository creates a new AccessRepository. It also needs the
// processes and users collections to build the owner-scoped audit
// projection with a single aggregation pipeline.
func NewAccessRepository(db *mongo.Database) *AccessRepository {
	return &AccessRepository{
		coll:      db.Collection(accessesCollection),
		processes: db.Collection(processesCollection),
		users:     db.Collection(usersCollection),
	}
}

var _ ports.AccessRepository = (*AccessRepository)(nil)

// Create inserts a new access document. Access is append-only: no update
// or delete operation is ever issued against this collection.
func (r *AccessRepository) Create(ctx context.Context, a *domain.Access) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("mongo: insert access: %w", err)
	}
	return nil
}

type accessNotificationDoc struct {
	AccessID           *string    `bson:"access_id"`
	ProcessID          string     `bson:"process_id"`
	PartnerID          *string    `bson:"partner_id"`
	AccessedAt         *time.Time `bson:"accessed_at"`
	ProcessTitle       string     `bson:"process_title"`
	ProcessDescription string     `bson:"process_description"`
	ProcessStatus      string     `bson:"process_status"`
	PartnerUsername    *string    `bson:"partner_username"`
}

// ListByOwner returns one row per (process, access) owned by ownerID, plus
// one row per process with no accesses yet, newest accessed_at first. A
// partner that has since been removed yields a nil PartnerUsername rather
// than dropping the row, per the audit projection's tolerance for deleted
// partners (SPEC_FULL.md §4.9).
func (r *AccessRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.AccessNotification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner_id": ownerID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         accessesCollection,
			"localField":   "_id",
			"foreignField": "process_id",
			"as":           "accesses",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$accesses",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "accesses.partner_id",
			"foreignField": "_id",
			"as":           "partner",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$partner",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$project", Value: bson.M{
			"access_id":           "$accesses._id",
			"process_id":          "$_id",
			"partner_id":          "$accesses.partner_id",
			"accessed_at":         "$accesses.accessed_at",
			"process_title":       "$title",
			"process_description": "$description",
			"process_status":      "$status",
			"partner_username":    "$partner.username",
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "accessed_at", Value: -1}}}},
	}

	cur, err := r.processes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo: aggregate access notifications: %w", err)
	}
	defer cur.Close(ctx)

	var docs []accessNotificationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode access notifications: %w", err)
	}

	out := make([]domain.AccessNotification, len(docs))
	for i, d := range docs {
		out[i] = domain.AccessNotification{
			AccessID:           d.AccessID,
			ProcessID:          d.ProcessID,
			PartnerID:          d.PartnerID,
			AccessedAt:         d.AccessedAt,
			ProcessTitle:       d.ProcessTitle,
			ProcessDescription: d.ProcessDescription,
			ProcessStatus:      domain.ProcessStatus(d.ProcessStatus),
			PartnerUsername:    d.PartnerUsername,
		}
	}
	return out, nil
}

// EnsureIndexes creates the indexes the accesses collection requires.
func (r *AccessRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*defaultTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "process_id", Value: 1}}},
		{Keys: bson.D{{Key: "partner_id", Value: 1}}},
	})
	return err
}
