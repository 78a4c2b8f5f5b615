package handlers

import (
	"net/http"

	"pulse/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var imageStorage *storage.Cloudinary

// SetImageStorage wires the Cloudinary collaborator used for post images and
// profile pictures.
func SetImageStorage(s *storage.Cloudinary) {
	imageStorage = s
}

// requesterID returns the authenticated user's id placed in the context by
// the JWT middleware. Responds 401 and returns false if it is missing or
// malformed.
func requesterID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	result := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			result = append(result, v)
		}
	}
	return result
}
