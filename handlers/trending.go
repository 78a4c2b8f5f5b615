package handlers

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"pulse/database"
	"pulse/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const trendingWindow = 24 * time.Hour
const trendingLimit = 5

type TrendingTopic struct {
	Tag   string `json:"tag"`
	Posts int    `json:"posts"`
}

// topHashtags frequency-counts every stored hashtag occurrence in the
// snapshot and returns the top tags, highest count first. Ties keep first-
// appearance order in the input. A post that stored the same tag twice
// contributes two counts.
func topHashtags(posts []models.Post, limit int) []TrendingTopic {
	counts := make(map[string]int)
	order := []string{}
	for _, post := range posts {
		for _, tag := range post.Hashtags {
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}

	topics := make([]TrendingTopic, len(order))
	for i, tag := range order {
		topics[i] = TrendingTopic{Tag: tag, Posts: counts[tag]}
	}
	return topics
}

// GetTrendingTopics ranks hashtags over the trailing 24 hours, computed
// fresh per request from a snapshot of qualifying posts.
func GetTrendingTopics(c *gin.Context) {
	cutoff := time.Now().Add(-trendingWindow).Unix()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Posts.Find(ctx, bson.M{
		"createdAt": bson.M{"$gte": cutoff},
		"hashtags":  bson.M{"$exists": true, "$ne": bson.A{}},
	}, newestFirst)
	if err != nil {
		log.Printf("GetTrendingTopics error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trending topics"})
		return
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		log.Printf("GetTrendingTopics decode error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trending topics"})
		return
	}

	c.JSON(http.StatusOK, topHashtags(posts, trendingLimit))
}
