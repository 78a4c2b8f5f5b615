package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment lives embedded in its parent post. Comments are append-only: no
// id, no edit, no delete.
type Comment struct {
	UserID primitive.ObjectID `bson:"user" json:"userId"`
	Text   string             `bson:"text" json:"text"`
	User   *PublicUser        `bson:"-" json:"user,omitempty"` // Populated in response only
}

type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"user" json:"userId"`
	Text      string               `bson:"text" json:"text"`
	Img       string               `bson:"img,omitempty" json:"img,omitempty"`
	Hashtags  []string             `bson:"hashtags" json:"hashtags"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	CreatedAt int64                `bson:"createdAt" json:"createdAt"`
	User      *PublicUser          `bson:"-" json:"user,omitempty"` // Populated in response only
}
