package handlers

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"time"

	"pulse/database"
	"pulse/models"
	"pulse/storage"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func GetUserProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := findUserByUsername(ctx, c.Param("username"))
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		log.Printf("GetUserProfile error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// FollowUnfollowUser toggles the follow edge between the requester and the
// target, mirrored on both documents (me.following / target.followers). A
// "follow" notification is written on the follow path only.
func FollowUnfollowUser(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userID, ok := requesterID(c)
	if !ok {
		return
	}

	if targetID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You can't follow/unfollow yourself"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var me models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("FollowUnfollowUser requester lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := database.Users.FindOne(ctx, bson.M{"_id": targetID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("FollowUnfollowUser target lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if containsID(me.Following, targetID) {
		// Unfollow
		if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
			bson.M{"$pull": bson.M{"following": targetID}}); err != nil {
			log.Printf("FollowUnfollowUser unfollow error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": targetID},
			bson.M{"$pull": bson.M{"followers": userID}}); err != nil {
			log.Printf("FollowUnfollowUser followers pull error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User unfollowed successfully"})
		return
	}

	// Follow
	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$push": bson.M{"following": targetID}}); err != nil {
		log.Printf("FollowUnfollowUser follow error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": targetID},
		bson.M{"$push": bson.M{"followers": userID}}); err != nil {
		log.Printf("FollowUnfollowUser followers push error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		From:      userID,
		To:        targetID,
		Type:      models.NotificationFollow,
		CreatedAt: time.Now().Unix(),
	}
	if _, err := database.Notifications.InsertOne(ctx, notification); err != nil {
		log.Printf("FollowUnfollowUser notification error: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "User followed successfully"})
}

func GetSuggestedUsers(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var me models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("GetSuggestedUsers lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	exclude := append([]primitive.ObjectID{userID}, me.Following...)

	cursor, err := database.Users.Find(ctx,
		bson.M{"_id": bson.M{"$nin": exclude}},
		options.Find().SetLimit(4))
	if err != nil {
		log.Printf("GetSuggestedUsers error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer cursor.Close(ctx)

	suggested := []*models.PublicUser{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			log.Printf("GetSuggestedUsers decode error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		suggested = append(suggested, user.Public())
	}
	if err := cursor.Err(); err != nil {
		log.Printf("GetSuggestedUsers cursor error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, suggested)
}

type UpdateUserRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Bio             string `json:"bio"`
	Link            string `json:"link"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ProfileImg      string `json:"profileImg"`
	CoverImg        string `json:"coverImg"`
}

func UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
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

	var me models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&me); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("UpdateUser lookup error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	set := bson.M{}

	if (req.NewPassword == "") != (req.CurrentPassword == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide both current password and new password"})
		return
	}
	if req.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(me.Password), []byte(req.CurrentPassword)) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
			return
		}
		if len(req.NewPassword) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("UpdateUser hash error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		set["password"] = string(hashed)
	}

	if req.ProfileImg != "" {
		url, err := uploadReplacing(ctx, me.ProfileImg, req.ProfileImg, "pulse/avatars")
		if err != nil {
			log.Printf("UpdateUser profile image error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		set["profileImg"] = url
	}

	if req.CoverImg != "" {
		url, err := uploadReplacing(ctx, me.CoverImg, req.CoverImg, "pulse/covers")
		if err != nil {
			log.Printf("UpdateUser cover image error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}
		set["coverImg"] = url
	}

	if req.FullName != "" {
		set["fullName"] = req.FullName
	}
	if req.Email != "" {
		set["email"] = req.Email
	}
	if req.Username != "" {
		set["username"] = req.Username
	}
	if req.Bio != "" {
		set["bio"] = req.Bio
	}
	if req.Link != "" {
		set["link"] = req.Link
	}

	if len(set) == 0 {
		c.JSON(http.StatusOK, me)
		return
	}

	if _, err := database.Users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Username or email is already taken"})
			return
		}
		log.Printf("UpdateUser update error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var updated models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&updated); err != nil {
		log.Printf("UpdateUser reload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// uploadReplacing uploads a new image and destroys the previous asset
// best-effort.
func uploadReplacing(ctx context.Context, oldURL, image, folder string) (string, error) {
	url, err := imageStorage.Upload(ctx, image, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	if oldURL != "" {
		if err := imageStorage.Destroy(ctx, oldURL); err != nil {
			log.Printf("failed to destroy replaced asset %s: %v",
				storage.PublicIDFromURL(oldURL), err)
		}
	}
	return url, nil
}

func SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, []*models.PublicUser{})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	prefix := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(query), Options: "i"}

	cursor, err := database.Users.Find(ctx, bson.M{
		"$or": []bson.M{
			{"username": prefix},
			{"fullName": prefix},
		},
	}, options.Find().SetLimit(10))
	if err != nil {
		log.Printf("SearchUsers error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer cursor.Close(ctx)

	results := []*models.PublicUser{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			log.Printf("SearchUsers decode error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		results = append(results, user.Public())
	}
	if err := cursor.Err(); err != nil {
		log.Printf("SearchUsers cursor error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, results)
}
