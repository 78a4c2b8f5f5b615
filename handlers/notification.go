package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"pulse/database"
	"pulse/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetNotifications returns the requester's notifications newest-first with
// the sender populated, then marks them all read.
func GetNotifications(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Notifications.Find(ctx, bson.M{"to": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("GetNotifications error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		log.Printf("GetNotifications decode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := populateSenders(ctx, notifications); err != nil {
		log.Printf("GetNotifications populate error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if _, err := database.Notifications.UpdateMany(ctx, bson.M{"to": userID},
		bson.M{"$set": bson.M{"read": true}}); err != nil {
		log.Printf("GetNotifications mark-read error: %v", err)
	}

	c.JSON(http.StatusOK, notifications)
}

func populateSenders(ctx context.Context, notifications []models.Notification) error {
	idSet := make(map[primitive.ObjectID]struct{})
	for i := range notifications {
		idSet[notifications[i].From] = struct{}{}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	cursor, err := database.Users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	senders := make(map[primitive.ObjectID]*models.PublicUser, len(ids))
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return err
		}
		senders[user.ID] = user.Public()
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	for i := range notifications {
		notifications[i].FromUser = senders[notifications[i].From]
	}
	return nil
}

func DeleteNotifications(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.Notifications.DeleteMany(ctx, bson.M{"to": userID}); err != nil {
		log.Printf("DeleteNotifications error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notifications deleted successfully"})
}
