package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/storefront/backend/internal/models"
)

// MongoStore handles products and contact messages in MongoDB.
type MongoStore struct {
	products *mongo.Collection
	messages *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		products: db.Collection("products"),
		messages: db.Collection("messages"),
	}
}

// ListProducts returns every product in natural order.
func (s *MongoStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	cur, err := s.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo find products: %w", err)
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("mongo decode products: %w", err)
	}
	return products, nil
}

func (s *MongoStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var p models.Product
	if err := s.products.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		return nil, notFound(err, "mongo find product")
	}
	return &p, nil
}

// CreateProduct inserts p, defaulting its duration, and returns it with the
// assigned id.
func (s *MongoStore) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p.Duration == "" {
		p.Duration = models.DefaultDuration
	}
	res, err := s.products.InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("mongo insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

// UpdateProduct replaces name, price, picture and category and returns the
// product as stored after the update.
func (s *MongoStore) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	return s.setProductFields(ctx, id, upd)
}

// SetProductPicture replaces only the picture reference.
func (s *MongoStore) SetProductPicture(ctx context.Context, id, picture string) (*models.Product, error) {
	return s.setProductFields(ctx, id, bson.M{"picture": picture})
}

func (s *MongoStore) setProductFields(ctx context.Context, id string, fields interface{}) (*models.Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Product
	err = s.products.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&p)
	if err != nil {
		return nil, notFound(err, "mongo update product")
	}
	return &p, nil
}

// CreateMessage stores a contact message and returns it with its id.
func (s *MongoStore) CreateMessage(ctx context.Context, m *models.Message) (*models.Message, error) {
	res, err := s.messages.InsertOne(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("mongo insert message: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return m, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
