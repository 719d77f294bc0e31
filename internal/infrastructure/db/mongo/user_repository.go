package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tenantscore/rental-admin/internal/core/domain"
)

const usersCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty"`
	Firstname             string             `bson:"firstname"`
	Middlename            string             `bson:"middlename,omitempty"`
	Surname               string             `bson:"surname"`
	Email                 string             `bson:"email"`
	Phone                 string             `bson:"phone,omitempty"`
	Role                  string             `bson:"role"`
	PasswordHash          string             `bson:"password_hash"`
	PasswordResetRequired bool               `bson:"password_reset_required"`
	CreatedAt             int64              `bson:"created_at"`
	UpdatedAt             int64              `bson:"updated_at"`
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Firstname:             user.Firstname,
		Middlename:            user.Middlename,
		Surname:               user.Surname,
		Email:                 user.Email,
		Phone:                 user.Phone,
		Role:                  user.Role,
		PasswordHash:          user.PasswordHash,
		PasswordResetRequired: user.PasswordResetRequired,
		CreatedAt:             user.CreatedAt.Unix(),
		UpdatedAt:             user.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return toDomainUser(mu), nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return toDomainUser(mu), nil
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC().Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdatePasswordAndClearReset filters on the raised flag so the clear can
// succeed at most once per provisioning, even under concurrent calls.
func (r *MongoUserRepository) UpdatePasswordAndClearReset(ctx context.Context, id, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "password_reset_required": true},
		bson.M{"$set": bson.M{
			"password_hash":           passwordHash,
			"password_reset_required": false,
			"updated_at":              time.Now().UTC().Unix(),
		}},
	)
	if err != nil {
		return fmt.Errorf("clear reset flag: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrResetNotRequired
	}
	return nil
}

func toDomainUser(mu mongoUser) *domain.User {
	return &domain.User{
		ID:                    mu.ID.Hex(),
		Firstname:             mu.Firstname,
		Middlename:            mu.Middlename,
		Surname:               mu.Surname,
		Email:                 mu.Email,
		Phone:                 mu.Phone,
		Role:                  mu.Role,
		PasswordHash:          mu.PasswordHash,
		PasswordResetRequired: mu.PasswordResetRequired,
		CreatedAt:             unixToTime(mu.CreatedAt),
		UpdatedAt:             unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
