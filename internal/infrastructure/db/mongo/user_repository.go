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

const usersCollection = "users"

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

var _ ports.UserRepository = (*UserRepository)(nil)

// mongoUser stores User.ID (domain.NewEntityID) verbatim as _id, the same
// caller-assigned-id convention ProcessRepository uses.
type mongoUser struct {
	ID              string   `bson:"_id"`
	Username        string   `bson:"username"`
	DisplayName     string   `bson:"display_name"`
	PasswordDigest  string   `bson:"password_digest"`
	LedgerPublicKey string   `bson:"ledger_public_key"`
	LedgerSecretKey string   `bson:"ledger_secret_key"`
	Roles           []string `bson:"roles"`
	CreatedAt       int64    `bson:"created_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:              u.ID,
		Username:        u.Username,
		DisplayName:     u.DisplayName,
		PasswordDigest:  u.PasswordDigest,
		LedgerPublicKey: u.LedgerPublicKey,
		LedgerSecretKey: u.LedgerSecretKey,
		Roles:           u.Roles,
		CreatedAt:       u.CreatedAt.Unix(),
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:              mu.ID,
		Username:        mu.Username,
		DisplayName:     mu.DisplayName,
		PasswordDigest:  mu.PasswordDigest,
		LedgerPublicKey: mu.LedgerPublicKey,
		LedgerSecretKey: mu.LedgerSecretKey,
		Roles:           mu.Roles,
		CreatedAt:       unixToTime(mu.CreatedAt),
	}
}

// Create inserts a new user document. User.ID is caller-assigned
// (domain.NewEntityID) rather than server-generated, so it is stored as
// the document's _id verbatim.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoUser(user)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("mongo: insert user: %w", err)
	}

	created := *user
	return &created, nil
}

// FindByUsername retrieves a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&mu)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("mongo: find user by username: %w", err)
	}
	return mu.toDomain(), nil
}

// FindByID retrieves a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("mongo: find user by id: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the indexes the users collection requires.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*defaultTimeout)
	defer cancel()

	unique := true
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: &options.IndexOptions{Unique: &unique},
	})
	return err
}
