package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"pulse/database"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func GetStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userCount, err := database.Users.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("GetStats user count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	postCount, err := database.Posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("GetStats post count error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userCount": userCount,
		"postCount": postCount,
	})
}
