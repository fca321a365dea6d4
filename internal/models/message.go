package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Message is a contact-form submission.
type Message struct {
	ID          primitive.ObjectID `json:"_id"         bson:"_id,omitempty"`
	Name        string             `json:"name"        bson:"name"`
	Email       string             `json:"email"       bson:"email"`
	Description string             `json:"description" bson:"description"`
}

// MessageRequest is the JSON body for POST /messages.
type MessageRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description"`
}
