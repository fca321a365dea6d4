package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultDuration is the rental duration assigned to every new product.
const DefaultDuration = "day"

// Product is a catalog entry stored in MongoDB.
type Product struct {
	ID       primitive.ObjectID `json:"_id"      bson:"_id,omitempty"`
	Name     string             `json:"name"     bson:"name"`
	Price    float64            `json:"price"    bson:"price"`
	Duration string             `json:"duration" bson:"duration"`
	Picture  string             `json:"picture"  bson:"picture"`
	Category string             `json:"category" bson:"category"`
}

// ProductRequest is the JSON body for POST /newProduct and PUT /products/{id}.
type ProductRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Picture  string  `json:"picture"`
	Category string  `json:"category"`
}

// ProductUpdate holds the fields an update replaces. Duration is not
// editable after creation.
type ProductUpdate struct {
	Name     string  `bson:"name"`
	Price    float64 `bson:"price"`
	Picture  string  `bson:"picture"`
	Category string  `bson:"category"`
}
