package handlers

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{
		db: database.DB,
	}
}

// requireAdmin loads the caller and rejects non-admins
func (h *AdminHandler) requireAdmin(c *fiber.Ctx) (*models.User, error) {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if !user.IsAdmin() {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin access required",
		})
	}

	return &user, nil
}

// InitializeFirstAdmin bootstraps the first admin account using the setup key
func (h *AdminHandler) InitializeFirstAdmin(c *fiber.Ctx) error {
	var req struct {
		SetupKey string `json:"setup_key" validate:"required"`
		FullName string `json:"full_name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Phone    string `json:"phone" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Validation failed: " + err.Error(),
		})
	}

	setupKey := os.Getenv("ADMIN_SETUP_KEY")
	if setupKey == "" || req.SetupKey != setupKey {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Invalid setup key",
		})
	}

	var adminCount int64
	h.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
	if adminCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Admin account already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	admin := models.User{
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        string(hashedPassword),
		Role:            models.RoleAdmin,
		IsEmailVerified: true,
	}

	if err := h.db.Create(&admin).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create admin",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Admin account created",
		"user": fiber.Map{
			"id":        admin.ID,
			"full_name": admin.FullName,
			"email":     admin.Email,
			"role":      admin.Role,
		},
	})
}

// GetAllUsers lists users for moderation
func (h *AdminHandler) GetAllUsers(c *fiber.Ctx) error {
	admin, err := h.requireAdmin(c)
	if admin == nil {
		return err
	}

	var users []models.User
	if err := h.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

// SuspendUser suspends an account
func (h *AdminHandler) SuspendUser(c *fiber.Ctx) error {
	admin, err := h.requireAdmin(c)
	if admin == nil {
		return err
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var user models.User
	if err := h.db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if user.IsAdmin() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot suspend an admin account",
		})
	}

	now := time.Now()
	user.IsSuspended = true
	user.SuspendedAt = &now
	user.SuspendReason = req.Reason

	if err := h.db.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to suspend user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User suspended",
		"user_id": user.ID,
	})
}

// UnsuspendUser lifts a suspension
func (h *AdminHandler) UnsuspendUser(c *fiber.Ctx) error {
	admin, err := h.requireAdmin(c)
	if admin == nil {
		return err
	}

	var user models.User
	if err := h.db.First(&user, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	user.IsSuspended = false
	user.SuspendedAt = nil
	user.SuspendReason = ""

	if err := h.db.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to unsuspend user",
		})
	}

	return c.JSON(fiber.Map{
		"message": "User unsuspended",
		"user_id": user.ID,
	})
}

// RemoveListing soft-deletes any listing, regardless of owner
func (h *AdminHandler) RemoveListing(c *fiber.Ctx) error {
	admin, err := h.requireAdmin(c)
	if admin == nil {
		return err
	}

	var listing models.Listing
	if err := h.db.First(&listing, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	}

	if err := h.db.Delete(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove listing",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Listing removed",
	})
}

// GetDashboardStats summarizes marketplace activity
func (h *AdminHandler) GetDashboardStats(c *fiber.Ctx) error {
	admin, err := h.requireAdmin(c)
	if admin == nil {
		return err
	}

	var userCount, listingCount, activeListings, claimCount, closedClaims, conversationCount int64

	h.db.Model(&models.User{}).Count(&userCount)
	h.db.Model(&models.Listing{}).Count(&listingCount)
	h.db.Model(&models.Listing{}).Where("status = ?", models.ListingActive).Count(&activeListings)
	h.db.Model(&models.BountyClaim{}).Count(&claimCount)
	h.db.Model(&models.BountyClaim{}).Where("status = ?", models.BountyClosed).Count(&closedClaims)
	h.db.Model(&models.Conversation{}).Count(&conversationCount)

	var totalPayouts float64
	h.db.Model(&models.Payout{}).
		Where("status <> ?", models.PayoutFailed).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalPayouts)

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"users":           userCount,
			"listings":        listingCount,
			"active_listings": activeListings,
			"bounty_claims":   claimCount,
			"closed_claims":   closedClaims,
			"conversations":   conversationCount,
			"total_payouts":   totalPayouts,
		},
	})
}
