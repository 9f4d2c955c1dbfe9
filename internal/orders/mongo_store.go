package orders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/haysnairpa/urbanwear/internal/domain"
)

type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("orders")}
}

// orderDoc keeps the ObjectID out of the domain type; domain orders carry
// the hex form only.
type orderDoc struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	UserID        string              `bson:"user_id"`
	Items         []domain.CartLine   `bson:"items"`
	Shipping      domain.ShippingInfo `bson:"shipping"`
	PaymentMethod string              `bson:"payment_method"`
	Subtotal      float64             `bson:"subtotal"`
	ShippingCost  float64             `bson:"shipping_cost"`
	Tax           float64             `bson:"tax"`
	Total         float64             `bson:"total"`
	Status        domain.OrderStatus  `bson:"status"`
	CreatedAt     time.Time           `bson:"created_at"`
}

func (s *MongoStore) Save(ctx context.Context, order *domain.Order) (string, error) {
	res, err := s.collection.InsertOne(ctx, docFromOrder(order))
	if err != nil {
		return "", fmt.Errorf("failed to save order: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoStore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	out := make([]domain.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toOrder())
	}
	return out, nil
}

func (s *MongoStore) CreateIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	}

	_, err := s.collection.Indexes().CreateOne(ctx, index)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func docFromOrder(o *domain.Order) orderDoc {
	return orderDoc{
		UserID:        o.UserID,
		Items:         o.Items,
		Shipping:      o.Shipping,
		PaymentMethod: o.PaymentMethod,
		Subtotal:      o.Subtotal,
		ShippingCost:  o.ShippingCost,
		Tax:           o.Tax,
		Total:         o.Total,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

func (d orderDoc) toOrder() domain.Order {
	return domain.Order{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		Items:         d.Items,
		Shipping:      d.Shipping,
		PaymentMethod: d.PaymentMethod,
		Subtotal:      d.Subtotal,
		ShippingCost:  d.ShippingCost,
		Tax:           d.Tax,
		Total:         d.Total,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
	}
}
