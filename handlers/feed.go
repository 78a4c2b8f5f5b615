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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// attachAuthors fills in every post's author and comment authors from the
// given projection map. Posts whose author is unknown keep a nil user.
func attachAuthors(posts []models.Post, users map[primitive.ObjectID]*models.PublicUser) {
	for i := range posts {
		posts[i].User = users[posts[i].UserID]
		for j := range posts[i].Comments {
			posts[i].Comments[j].User = users[posts[i].Comments[j].UserID]
		}
	}
}

// populatePosts resolves author and comment-author profiles with a single
// batched query instead of one lookup per post.
func populatePosts(ctx context.Context, posts []models.Post) error {
	idSet := make(map[primitive.ObjectID]struct{})
	for i := range posts {
		idSet[posts[i].UserID] = struct{}{}
		for j := range posts[i].Comments {
			idSet[posts[i].Comments[j].UserID] = struct{}{}
		}
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

	users := make(map[primitive.ObjectID]*models.PublicUser, len(ids))
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return err
		}
		users[user.ID] = user.Public()
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	attachAuthors(posts, users)
	return nil
}

// fetchPosts runs a post query and returns the populated result. The slice
// is never nil so empty feeds serialize as [].
func fetchPosts(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Post, error) {
	cursor, err := database.Posts.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}

	if err := populatePosts(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

func GetAllPosts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	posts, err := fetchPosts(ctx, bson.M{}, newestFirst)
	if err != nil {
		log.Printf("GetAllPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

func GetFollowingPosts(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("GetFollowingPosts user lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Following nobody is an empty feed, not an error. $in with an empty
	// array matches nothing, which is exactly that.
	following := user.Following
	if following == nil {
		following = []primitive.ObjectID{}
	}

	posts, err := fetchPosts(ctx, bson.M{"user": bson.M{"$in": following}}, newestFirst)
	if err != nil {
		log.Printf("GetFollowingPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

func GetUserPosts(c *gin.Context) {
	username := c.Param("username")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := findUserByUsername(ctx, username)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("GetUserPosts user lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	posts, err := fetchPosts(ctx, bson.M{"user": user.ID}, newestFirst)
	if err != nil {
		log.Printf("GetUserPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

func GetLikedPosts(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = database.Users.FindOne(ctx, bson.M{"_id": targetID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("GetLikedPosts user lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Store default order, not like time.
	posts, err := fetchPosts(ctx, bson.M{"_id": bson.M{"$in": user.LikedPosts}})
	if err != nil {
		log.Printf("GetLikedPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

func GetBookmarkedPosts(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("GetBookmarkedPosts user lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Newest post first, not bookmark order.
	posts, err := fetchPosts(ctx, bson.M{"_id": bson.M{"$in": user.BookmarkedPosts}}, newestFirst)
	if err != nil {
		log.Printf("GetBookmarkedPosts error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, posts)
}
