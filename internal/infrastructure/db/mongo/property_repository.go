package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tenantscore/rental-admin/internal/core/domain"
)

const propertiesCollection = "properties"

type MongoPropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *MongoPropertyRepository {
	return &MongoPropertyRepository{coll: db.Collection(propertiesCollection)}
}

type mongoProperty struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Location  string             `bson:"location"`
	Phone     string             `bson:"phone"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *MongoPropertyRepository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	doc := mongoProperty{
		Name:      property.Name,
		Location:  property.Location,
		Phone:     property.Phone,
		OwnerID:   property.OwnerID,
		CreatedAt: property.CreatedAt.Unix(),
		UpdatedAt: property.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}

	created := *property
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoPropertyRepository) FindAll(ctx context.Context) ([]domain.Property, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	return decodeProperties(ctx, cur)
}

func (r *MongoPropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}

	var mp mongoProperty
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return toDomainProperty(mp), nil
}

func (r *MongoPropertyRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("find properties by owner: %w", err)
	}
	return decodeProperties(ctx, cur)
}

func (r *MongoPropertyRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotPropertyOwner
	}

	var mp mongoProperty
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "owner_id": ownerID}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotPropertyOwner
		}
		return nil, fmt.Errorf("find property by owner: %w", err)
	}
	return toDomainProperty(mp), nil
}

func (r *MongoPropertyRepository) Update(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(property.ID)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"name":       property.Name,
		"location":   property.Location,
		"phone":      property.Phone,
		"updated_at": property.UpdatedAt.Unix(),
	}})
	if err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPropertyNotFound
	}
	return property, nil
}

func (r *MongoPropertyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func decodeProperties(ctx context.Context, cur *mongo.Cursor) ([]domain.Property, error) {
	defer cur.Close(ctx)

	properties := make([]domain.Property, 0)
	for cur.Next(ctx) {
		var mp mongoProperty
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode property: %w", err)
		}
		properties = append(properties, *toDomainProperty(mp))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return properties, nil
}

func toDomainProperty(mp mongoProperty) *domain.Property {
	return &domain.Property{
		ID:        mp.ID.Hex(),
		Name:      mp.Name,
		Location:  mp.Location,
		Phone:     mp.Phone,
		OwnerID:   mp.OwnerID,
		CreatedAt: unixToTime(mp.CreatedAt),
		UpdatedAt: unixToTime(mp.UpdatedAt),
	}
}
