package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"querynest/db"
	"querynest/models"
	"querynest/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	otpValidity           = 5 * time.Minute
	otpDeletionGrace      = 2 * time.Minute
	resetPasscodeValidity = 20 * time.Minute
)

// Register creates an unverified user and emails an OTP.
func Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Username string `json:"username" binding:"required"`
		ClgEmail string `json:"clgEmail" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.GetCollection(db.UsersCollection)

	// Reject duplicate registrations
	var existing models.User
	err := users.FindOne(ctx, bson.M{"clgEmail": req.ClgEmail}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	otp := utils.GenerateRandomCode(6)
	now := time.Now()
	user := models.User{
		Name:            req.Name,
		Username:        req.Username,
		ClgEmail:        req.ClgEmail,
		Password:        hashed,
		Verified:        false,
		OTP:             otp,
		OTPExpires:      now.Add(otpValidity),
		OTPDeletionTime: now.Add(otpValidity + otpDeletionGrace),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := users.InsertOne(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if err := utils.SendOTPEmail(req.ClgEmail, otp); err != nil {
		log.Printf("Failed to send OTP email to %s: %v", req.ClgEmail, err)
	}

	c.JSON(http.StatusCreated, gin.H{"message": "OTP sent! Verify your email."})
}

// VerifyOTP confirms the registration code and marks the user verified.
func VerifyOTP(c *gin.Context) {
	var req struct {
		ClgEmail string `json:"clgEmail" binding:"required,email"`
		OTP      string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.GetCollection(db.UsersCollection)

	var user models.User
	if err := users.FindOne(ctx, bson.M{"clgEmail": req.ClgEmail}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.OTP != req.OTP || time.Now().After(user.OTPExpires) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	update := bson.M{
		"$set":   bson.M{"verified": true, "updatedAt": time.Now()},
		"$unset": bson.M{"otp": "", "otpExpires": "", "otpDeletionTime": ""},
	}
	if _, err := users.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	if err := utils.SendWelcomeEmail(req.ClgEmail, user.Name); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", req.ClgEmail, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Registration successful!"})
}

// ResendOTP issues a fresh code with extended expiry.
func ResendOTP(c *gin.Context) {
	var req struct {
		ClgEmail string `json:"clgEmail" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.GetCollection(db.UsersCollection)

	var user models.User
	if err := users.FindOne(ctx, bson.M{"clgEmail": req.ClgEmail}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	otp := utils.GenerateRandomCode(6)
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"otp":             otp,
		"otpExpires":      now.Add(otpValidity),
		"otpDeletionTime": now.Add(otpValidity + otpDeletionGrace),
		"updatedAt":       now,
	}}
	if _, err := users.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update OTP"})
		return
	}

	if err := utils.SendOTPEmail(req.ClgEmail, otp); err != nil {
		log.Printf("Failed to send OTP email to %s: %v", req.ClgEmail, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "New OTP sent to your email."})
}

// Login checks credentials and issues a JWT.
func Login(c *gin.Context) {
	var req struct {
		ClgEmail string `json:"clgEmail" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{"clgEmail": req.ClgEmail}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.ClgEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"userId":  user.ID.Hex(),
		"token":   token,
	})
}

// RequestPasswordReset emails a reset passcode.
func RequestPasswordReset(c *gin.Context) {
	var req struct {
		ClgEmail string `json:"clgEmail" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.GetCollection(db.UsersCollection)

	var user models.User
	if err := users.FindOne(ctx, bson.M{"clgEmail": req.ClgEmail}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	passcode := utils.GenerateRandomCode(6)
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"resetPasscode":        passcode,
		"resetPasscodeExpires": now.Add(resetPasscodeValidity),
		"updatedAt":            now,
	}}
	if _, err := users.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store passcode"})
		return
	}

	if err := utils.SendPasscodeEmail(req.ClgEmail, passcode); err != nil {
		log.Printf("Failed to send passcode email to %s: %v", req.ClgEmail, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Passcode sent to your email. It will expire in 20 minutes."})
}

// VerifyPasscode checks a reset passcode without consuming it.
func VerifyPasscode(c *gin.Context) {
	var req struct {
		ClgEmail string `json:"clgEmail" binding:"required,email"`
		Passcode string `json:"passcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{"clgEmail": req.ClgEmail}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.ResetPasscode != req.Passcode || time.Now().After(user.ResetPasscodeExpires) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired passcode"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Passcode verified successfully!"})
}

// ResetPassword sets a new password and clears the reset fields.
func ResetPassword(c *gin.Context) {
	var req struct {
		ClgEmail    string `json:"clgEmail" binding:"required,email"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := db.GetCollection(db.UsersCollection)

	var user models.User
	if err := users.FindOne(ctx, bson.M{"clgEmail": req.ClgEmail}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	update := bson.M{
		"$set":   bson.M{"password": hashed, "updatedAt": time.Now()},
		"$unset": bson.M{"resetPasscode": "", "resetPasscodeExpires": ""},
	}
	if _, err := users.UpdateOne(ctx, bson.M{"_id": user.ID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	if err := utils.SendPasswordResetConfirmation(req.ClgEmail); err != nil {
		log.Printf("Failed to send reset confirmation to %s: %v", req.ClgEmail, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful! You can now log in."})
}
