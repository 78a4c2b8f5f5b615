package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"pulse/database"
	"pulse/models"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CreatePostRequest struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}

func CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

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
		log.Printf("CreatePost user lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if req.Text == "" && req.Img == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post must have text or image"})
		return
	}

	img := req.Img
	if img != "" {
		img, err = imageStorage.Upload(ctx, req.Img, uploader.UploadParams{})
		if err != nil {
			log.Printf("CreatePost upload error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
	}

	post := models.Post{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      req.Text,
		Img:       img,
		Hashtags:  ExtractHashtags(req.Text),
		Likes:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
		CreatedAt: time.Now().Unix(),
	}

	if _, err := database.Posts.InsertOne(ctx, post); err != nil {
		log.Printf("CreatePost insert error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

func DeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Printf("DeletePost lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this post"})
		return
	}

	// Best-effort asset cleanup: the post record goes away regardless.
	if post.Img != "" {
		if err := imageStorage.Destroy(ctx, post.Img); err != nil {
			log.Printf("DeletePost image destroy error for %s: %v", post.Img, err)
		}
	}

	if _, err := database.Posts.DeleteOne(ctx, bson.M{"_id": postID}); err != nil {
		log.Printf("DeletePost delete error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// LikeUnlikePost flips userID's membership in post.likes and mirrors it in
// user.likedPosts. The two writes are separate; a crash in between leaves a
// drift that the next toggle repairs, since the branch is chosen from
// post.likes alone.
func LikeUnlikePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var post models.Post
	err = database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		log.Printf("LikeUnlikePost lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if containsID(post.Likes, userID) {
		// Unlike
		if _, err := database.Posts.UpdateOne(ctx, bson.M{"_id": postID},
			bson.M{"$pull": bson.M{"likes": userID}}); err != nil {
			log.Printf("LikeUnlikePost unlike error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
			bson.M{"$pull": bson.M{"likedPosts": postID}}); err != nil {
			log.Printf("LikeUnlikePost likedPosts pull error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, removeID(post.Likes, userID))
		return
	}

	// Like
	if _, err := database.Posts.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$push": bson.M{"likes": userID}}); err != nil {
		log.Printf("LikeUnlikePost like error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$push": bson.M{"likedPosts": postID}}); err != nil {
		log.Printf("LikeUnlikePost likedPosts push error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// No notification for liking your own post. Outbox append failures are
	// logged, not surfaced: the like itself is already durable.
	if post.UserID != userID {
		notification := models.Notification{
			ID:        primitive.NewObjectID(),
			From:      userID,
			To:        post.UserID,
			Type:      models.NotificationLike,
			CreatedAt: time.Now().Unix(),
		}
		if _, err := database.Notifications.InsertOne(ctx, notification); err != nil {
			log.Printf("LikeUnlikePost notification error: %v", err)
		}
	}

	c.JSON(http.StatusOK, append(post.Likes, userID))
}

// ToggleBookmark flips postID's membership in the requester's bookmark set.
// Bookmarks are owned by the user document only; the post is untouched.
func ToggleBookmark(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("ToggleBookmark user lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := database.Posts.FindOne(ctx, bson.M{"_id": postID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		log.Printf("ToggleBookmark post lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if containsID(user.BookmarkedPosts, postID) {
		if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
			bson.M{"$pull": bson.M{"bookmarkedPosts": postID}}); err != nil {
			log.Printf("ToggleBookmark pull error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, removeID(user.BookmarkedPosts, postID))
		return
	}

	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$push": bson.M{"bookmarkedPosts": postID}}); err != nil {
		log.Printf("ToggleBookmark push error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, append(user.BookmarkedPosts, postID))
}

type CommentRequest struct {
	Text string `json:"text"`
}

func CommentOnPost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text field is required"})
		return
	}

	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	comment := models.Comment{UserID: userID, Text: req.Text}

	result, err := database.Posts.UpdateOne(ctx, bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		log.Printf("CommentOnPost update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var post models.Post
	if err := database.Posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&post); err != nil {
		log.Printf("CommentOnPost reload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	posts := []models.Post{post}
	if err := populatePosts(ctx, posts); err != nil {
		log.Printf("CommentOnPost populate error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, posts[0])
}
