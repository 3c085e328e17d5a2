package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"querynest/middlewares"
	"querynest/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FollowUser adds the caller to the target's followers and the target to
// the caller's following set, both in one transaction so the derived
// counts never disagree with the sets.
func FollowUser(c *gin.Context) {
	followerID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	followingID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if followerID == followingID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = store.WithTransaction(ctx, func(ctx context.Context) error {
		follower, err := store.ProfileByUserID(ctx, followerID)
		if err != nil {
			return err
		}
		target, err := store.ProfileByUserID(ctx, followingID)
		if err != nil {
			return err
		}

		for _, id := range follower.Following {
			if id == followingID {
				return services.ErrAlreadyFollowing
			}
		}

		follower.Following = append(follower.Following, followingID)
		target.Followers = append(target.Followers, followerID)
		follower.SyncCounts()
		target.SyncCounts()

		if err := store.UpdateProfile(ctx, follower); err != nil {
			return err
		}
		return store.UpdateProfile(ctx, target)
	})
	if err != nil {
		if errors.Is(err, services.ErrAlreadyFollowing) {
			c.JSON(http.StatusOK, gin.H{"message": "Already following"})
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User followed successfully"})
}

// UnfollowUser removes the follow edge from both profiles symmetrically.
func UnfollowUser(c *gin.Context) {
	followerID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	followingID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = store.WithTransaction(ctx, func(ctx context.Context) error {
		follower, err := store.ProfileByUserID(ctx, followerID)
		if err != nil {
			return err
		}
		target, err := store.ProfileByUserID(ctx, followingID)
		if err != nil {
			return err
		}

		found := false
		kept := follower.Following[:0]
		for _, id := range follower.Following {
			if id == followingID {
				found = true
				continue
			}
			kept = append(kept, id)
		}
		if !found {
			return services.ErrNotFollowing
		}
		follower.Following = kept

		keptFollowers := target.Followers[:0]
		for _, id := range target.Followers {
			if id != followerID {
				keptFollowers = append(keptFollowers, id)
			}
		}
		target.Followers = keptFollowers

		follower.SyncCounts()
		target.SyncCounts()

		if err := store.UpdateProfile(ctx, follower); err != nil {
			return err
		}
		return store.UpdateProfile(ctx, target)
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFollowing) {
			c.JSON(http.StatusOK, gin.H{"message": "Not following this user"})
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unfollowed successfully"})
}

// GetFollowers returns the follower list of a user's profile.
func GetFollowers(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := store.ProfileByUserID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": profile.Followers, "noOfFollowers": len(profile.Followers)})
}

// GetFollowing returns who a user's profile follows.
func GetFollowing(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := store.ProfileByUserID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": profile.Following, "noOfFollowing": len(profile.Following)})
}
