package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ndavault/nda-vault/internal/core/domain"
	"github.com/ndavault/nda-vault/internal/core/ports"
)

const processesCollection = "processes"

// ProcessRepository implements ports.ProcessRepository using MongoDB.
type ProcessRepository struct {
	coll *mongo.Collection
}

// NewProcessRepository creates a new ProcessRepository.
func NewProcessRepository(db *mongo.Database) *ProcessRepository {
	return &ProcessRepository{coll: db.Collection(processesCollection)}
}

var _ ports.ProcessRepository = (*ProcessRepository)(nil)

// Create inserts a new process document. Process.ID is caller-assigned
// (domain.NewProcessID) rather than server-generated, so it is stored as
// the document's _id verbatim.
func (r *ProcessRepository) Create(ctx context.Context, p *domain.Process) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("mongo: insert process: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's processes, newest created_at first.
func (r *ProcessRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Process, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: list processes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []*domain.Process
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode processes: %w", err)
	}
	return docs, nil
}

// FindByID retrieves a process by id.
func (r *ProcessRepository) FindByID(ctx context.Context, id string) (*domain.Process, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Process
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProcessNotFound
		}
		return nil, fmt.Errorf("mongo: find process: %w", err)
	}
	return &p, nil
}

// EnsureIndexes creates the indexes the processes collection requires.
func (r *ProcessRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*defaultTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
