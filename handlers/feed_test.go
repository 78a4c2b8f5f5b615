package handlers

import (
	"testing"

	"pulse/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAttachAuthors(t *testing.T) {
	author := primitive.NewObjectID()
	commenter := primitive.NewObjectID()
	ghost := primitive.NewObjectID()

	posts := []models.Post{
		{
			UserID: author,
			Comments: []models.Comment{
				{UserID: commenter, Text: "nice"},
				{UserID: ghost, Text: "deleted account"},
			},
		},
		{UserID: ghost},
	}

	users := map[primitive.ObjectID]*models.PublicUser{
		author:    {ID: author, Username: "alice"},
		commenter: {ID: commenter, Username: "bob"},
	}

	attachAuthors(posts, users)

	assert.Equal(t, "alice", posts[0].User.Username)
	assert.Equal(t, "bob", posts[0].Comments[0].User.Username)
	assert.Nil(t, posts[0].Comments[1].User)
	assert.Nil(t, posts[1].User)
}

func TestPublicProjectionExcludesCredentials(t *testing.T) {
	user := models.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		FullName: "Alice A",
		Password: "$2a$10$hash",
		Bio:      "hi",
	}

	public := user.Public()

	assert.Equal(t, user.Username, public.Username)
	assert.Equal(t, user.FullName, public.FullName)
	assert.Equal(t, user.Bio, public.Bio)
}
