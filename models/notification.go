package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	NotificationFollow = "follow"
	NotificationLike   = "like"
)

type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	From      primitive.ObjectID `bson:"from" json:"fromId"`
	To        primitive.ObjectID `bson:"to" json:"toId"`
	Type      string             `bson:"type" json:"type"` // follow, like
	Read      bool               `bson:"read" json:"read"`
	CreatedAt int64              `bson:"createdAt" json:"createdAt"`
	FromUser  *PublicUser        `bson:"-" json:"from,omitempty"` // Populated in response only
}
