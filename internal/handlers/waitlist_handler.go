package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
)

type WaitlistRequestBody struct {
	ListingID uint   `json:"listing_id" validate:"required"`
	Note      string `json:"note"`
}

type WaitlistDecisionRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

// RequestContact puts the caller on a listing's waitlist. The unique
// (user, listing) index plus the do-nothing upsert keep the request singular
// no matter how often the button is pressed.
func RequestContact(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	req := new(WaitlistRequestBody)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.ListingID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "listing_id is required",
		})
	}

	var listing models.Listing
	if err := database.DB.First(&listing, req.ListingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Listing not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if listing.UserID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "You already own this listing",
		})
	}

	request := models.WaitlistRequest{
		UserID:    userID,
		ListingID: req.ListingID,
		Status:    models.WaitlistPending,
		Note:      req.Note,
	}

	if err := database.DB.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create waitlist request",
		})
	}

	created := request.ID != 0

	if err := database.DB.
		Where("user_id = ? AND listing_id = ?", userID, req.ListingID).
		First(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load waitlist request",
		})
	}

	if created {
		var buyer models.User
		database.DB.First(&buyer, userID)
		if err := notificationService.NotifyWaitlistRequest(listing.UserID, buyer.FullName, listing.Title, listing.ID, request.ID); err != nil {
			log.Printf("Failed to create waitlist notification: %v", err)
		}
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Contact request recorded",
		"request": request,
	})
}

// GetListingWaitlist lists the requests on a listing; owner only
func GetListingWaitlist(c *fiber.Ctx) error {
	listingID := c.Params("id")
	userID := c.Locals("user_id").(uint)

	var listing models.Listing
	if err := database.DB.First(&listing, listingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Listing not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if listing.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the owner can view this waitlist",
		})
	}

	var requests []models.WaitlistRequest
	if err := database.DB.
		Where("listing_id = ?", listing.ID).
		Preload("User").
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve waitlist",
		})
	}

	return c.JSON(fiber.Map{
		"requests": requests,
		"count":    len(requests),
	})
}

// GetMyWaitlistRequests lists the caller's own contact requests
func GetMyWaitlistRequests(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var requests []models.WaitlistRequest
	if err := database.DB.
		Where("user_id = ?", userID).
		Preload("Listing").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve requests",
		})
	}

	return c.JSON(fiber.Map{
		"requests": requests,
		"count":    len(requests),
	})
}

// DecideWaitlistRequest accepts or declines a pending request; owner only.
// Any transition other than pending to accepted/declined is rejected.
func DecideWaitlistRequest(c *fiber.Ctx) error {
	requestID := c.Params("id")
	userID := c.Locals("user_id").(uint)

	req := new(WaitlistDecisionRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be accepted or declined",
		})
	}

	var request models.WaitlistRequest
	if err := database.DB.Preload("Listing").Preload("User").First(&request, requestID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Waitlist request not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if request.Listing.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the listing owner can decide this request",
		})
	}

	target := models.WaitlistStatus(req.Status)
	if !request.CanTransition(target) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only a pending request can be decided",
		})
	}

	now := time.Now()
	request.Status = target
	request.DecidedAt = &now

	if err := database.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update request",
		})
	}

	accepted := target == models.WaitlistAccepted

	if err := notificationService.NotifyWaitlistDecision(request.UserID, request.Listing.Title, request.ListingID, accepted); err != nil {
		log.Printf("Failed to create decision notification: %v", err)
	}

	if err := emailService.SendWaitlistDecisionEmail(request.User.Email, request.Listing.Title, accepted); err != nil {
		log.Printf("Failed to send decision email: %v", err)
	}

	return c.JSON(fiber.Map{
		"message": "Request " + req.Status,
		"request": request,
	})
}

// GetListingContact returns the seller's contact details, gated by the
// waitlist: the owner always sees them, everyone else needs an accepted
// request
func GetListingContact(c *fiber.Ctx) error {
	listingID := c.Params("id")
	userID := c.Locals("user_id").(uint)

	var listing models.Listing
	if err := database.DB.Preload("Owner").First(&listing, listingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Listing not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	var request models.WaitlistRequest
	found := database.DB.
		Where("user_id = ? AND listing_id = ?", userID, listing.ID).
		First(&request).Error == nil

	if !models.ContactVisible(request.Status, found, userID, listing.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":          "Contact information is locked",
			"waitlist_state": waitlistState(found, request.Status),
		})
	}

	return c.JSON(fiber.Map{
		"contact": fiber.Map{
			"full_name": listing.Owner.FullName,
			"email":     listing.Owner.Email,
			"phone":     listing.Owner.Phone,
			"company":   listing.Owner.Company,
		},
	})
}

func waitlistState(found bool, status models.WaitlistStatus) string {
	if !found {
		return "none"
	}
	return string(status)
}
