package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username        string               `bson:"username" json:"username"`
	FullName        string               `bson:"fullName" json:"fullName"`
	Email           string               `bson:"email" json:"email"`
	Password        string               `bson:"password" json:"-"`
	Bio             string               `bson:"bio" json:"bio"`
	Link            string               `bson:"link" json:"link"`
	ProfileImg      string               `bson:"profileImg" json:"profileImg"`
	CoverImg        string               `bson:"coverImg" json:"coverImg"`
	Following       []primitive.ObjectID `bson:"following" json:"following"`
	Followers       []primitive.ObjectID `bson:"followers" json:"followers"`
	LikedPosts      []primitive.ObjectID `bson:"likedPosts" json:"likedPosts"`
	BookmarkedPosts []primitive.ObjectID `bson:"bookmarkedPosts" json:"bookmarkedPosts"`
	CreatedAt       int64                `bson:"createdAt" json:"createdAt"`
}

// PublicUser is the credential-free projection embedded in feed responses
// and notification senders.
type PublicUser struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	FullName   string             `bson:"fullName" json:"fullName"`
	Bio        string             `bson:"bio" json:"bio"`
	Link       string             `bson:"link" json:"link"`
	ProfileImg string             `bson:"profileImg" json:"profileImg"`
	CoverImg   string             `bson:"coverImg" json:"coverImg"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		Bio:        u.Bio,
		Link:       u.Link,
		ProfileImg: u.ProfileImg,
		CoverImg:   u.CoverImg,
	}
}
