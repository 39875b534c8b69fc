package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
	"DealDoor/internal/services"
)

var paystackService *services.PaystackService

// InitPaystackService initializes the payout service
func InitPaystackService() {
	paystackService = services.NewPaystackService()
}

type ClaimBountyRequest struct {
	ListingID uint `json:"listing_id" validate:"required"`
}

type PayoutDetailsRequest struct {
	AccountName   string `json:"account_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	BankCode      string `json:"bank_code" validate:"required"`
}

// SetPayoutDetails stores the caller's bank account and registers it as a
// transfer recipient so closed claims can pay out without extra round trips
func SetPayoutDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	req := new(PayoutDetailsRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Validation failed: " + err.Error(),
		})
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	recipient, err := paystackService.CreateTransferRecipient(req.AccountName, req.AccountNumber, req.BankCode)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to verify bank account",
		})
	}

	user.AccountName = req.AccountName
	user.AccountNumber = req.AccountNumber
	user.BankCode = req.BankCode
	user.RecipientCode = recipient.Data.RecipientCode

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save payout details",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Payout details saved",
		"account": fiber.Map{
			"account_name":   user.AccountName,
			"account_number": user.AccountNumber,
			"bank_code":      user.BankCode,
		},
	})
}

// ClaimBounty registers the caller as the wholesaler working a listing's
// bounty. The reward amount is copied from the listing at claim time.
func ClaimBounty(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load user",
		})
	}

	if !user.IsWholesaler() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only wholesalers can claim bounties",
		})
	}

	req := new(ClaimBountyRequest)
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
			"error": "You cannot claim the bounty on your own listing",
		})
	}

	if !listing.HasReward() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This listing carries no bounty",
		})
	}

	var existing models.BountyClaim
	if err := database.DB.
		Where("listing_id = ? AND wholesaler_id = ?", listing.ID, userID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You already claimed this bounty",
			"claim": existing,
		})
	}

	claim := models.BountyClaim{
		ListingID:    listing.ID,
		WholesalerID: userID,
		RewardAmount: listing.RewardAmount,
		Status:       models.BountyClaimed,
	}

	if err := database.DB.Create(&claim).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to claim bounty",
		})
	}

	if err := notificationService.NotifyBountyClaimed(listing.UserID, user.FullName, listing.Title, listing.ID, claim.ID, claim.RewardAmount); err != nil {
		log.Printf("Failed to create bounty notification: %v", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Bounty claimed",
		"claim":   claim,
	})
}

// AdvanceBountyClaim moves a claim one step forward along the fixed
// progression. Skipping stages or advancing a closed claim is rejected at
// this boundary, not just in the UI. Closing the claim initiates the payout.
func AdvanceBountyClaim(c *fiber.Ctx) error {
	claimID := c.Params("id")
	userID := c.Locals("user_id").(uint)

	var claim models.BountyClaim
	if err := database.DB.Preload("Listing").Preload("Wholesaler").First(&claim, claimID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Claim not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	if claim.WholesalerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the claiming wholesaler can advance this claim",
		})
	}

	next, ok := claim.NextStatus()
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This claim is closed and cannot advance further",
		})
	}

	// An explicit target, when provided, must match the single allowed step
	if target := c.Query("status"); target != "" && !claim.CanAdvanceTo(models.BountyStatus(target)) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot move claim from %s to %s", claim.Status, target),
		})
	}

	claim.Status = next
	if next == models.BountyClosed {
		now := time.Now()
		claim.ClosedAt = &now
	}

	if err := database.DB.Save(&claim).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to advance claim",
		})
	}

	if err := notificationService.NotifyBountyAdvanced(claim.Listing.UserID, claim.Wholesaler.FullName, claim.Listing.Title, claim.ID, claim.Status); err != nil {
		log.Printf("Failed to create progress notification: %v", err)
	}

	response := fiber.Map{
		"message": "Claim advanced",
		"claim":   claim,
	}

	if next == models.BountyClosed {
		payout, err := initiateRewardPayout(&claim)
		if err != nil {
			// The claim stays closed; the payout can be retried from its record
			log.Printf("Failed to initiate payout for claim %d: %v", claim.ID, err)
			response["payout_error"] = "Payout could not be initiated and will be retried"
		} else {
			response["payout"] = payout
		}
	}

	return c.JSON(response)
}

// initiateRewardPayout records a payout row and pushes the transfer to
// Paystack. The reference is generated first so a duplicate transfer cannot
// slip through a retry.
func initiateRewardPayout(claim *models.BountyClaim) (*models.Payout, error) {
	reference := fmt.Sprintf("bounty-%d-%s", claim.ID, uuid.NewString())

	payout := models.Payout{
		ClaimID:      claim.ID,
		WholesalerID: claim.WholesalerID,
		Amount:       claim.RewardAmount,
		Reference:    reference,
		Status:       models.PayoutPending,
	}

	if err := database.DB.Create(&payout).Error; err != nil {
		return nil, fmt.Errorf("failed to record payout: %w", err)
	}

	claim.PayoutReference = reference
	database.DB.Model(claim).Update("payout_reference", reference)

	if claim.Wholesaler.RecipientCode == "" {
		payout.Status = models.PayoutFailed
		payout.FailureNote = "no payout details on file"
		database.DB.Save(&payout)
		return nil, fmt.Errorf("wholesaler %d has no payout details", claim.WholesalerID)
	}

	transfer, err := paystackService.InitiateTransfer(
		claim.Wholesaler.RecipientCode,
		reference,
		fmt.Sprintf("DealDoor bounty reward for claim %d", claim.ID),
		claim.RewardAmount,
	)
	if err != nil {
		payout.Status = models.PayoutFailed
		payout.FailureNote = err.Error()
		database.DB.Save(&payout)
		return nil, err
	}

	payout.TransferCode = transfer.Data.TransferCode
	if err := database.DB.Save(&payout).Error; err != nil {
		return nil, fmt.Errorf("failed to update payout: %w", err)
	}

	if err := notificationService.NotifyBountyClosed(claim.WholesalerID, claim.Listing.Title, claim.ID, claim.RewardAmount, reference); err != nil {
		log.Printf("Failed to create payout notification: %v", err)
	}

	return &payout, nil
}

// GetMyClaims lists the caller's bounty claims
func GetMyClaims(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var claims []models.BountyClaim
	if err := database.DB.
		Where("wholesaler_id = ?", userID).
		Preload("Listing").
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve claims",
		})
	}

	return c.JSON(fiber.Map{
		"claims": claims,
		"count":  len(claims),
	})
}

// GetListingClaims lists claims on a listing; owner only
func GetListingClaims(c *fiber.Ctx) error {
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
			"error": "Only the owner can view claims on this listing",
		})
	}

	var claims []models.BountyClaim
	if err := database.DB.
		Where("listing_id = ?", listing.ID).
		Preload("Wholesaler").
		Order("created_at DESC").
		Find(&claims).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve claims",
		})
	}

	return c.JSON(fiber.Map{
		"claims": claims,
		"count":  len(claims),
	})
}

// GetPayouts lists the caller's reward payouts. Pending transfers are
// verified against Paystack first so the list reflects their settled state.
func GetPayouts(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var pending []models.Payout
	database.DB.
		Where("wholesaler_id = ? AND status = ?", userID, models.PayoutPending).
		Find(&pending)
	for i := range pending {
		refreshPayoutStatus(&pending[i])
	}

	var payouts []models.Payout
	if err := database.DB.
		Where("wholesaler_id = ?", userID).
		Order("created_at DESC").
		Find(&payouts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve payouts",
		})
	}

	return c.JSON(fiber.Map{
		"payouts": payouts,
		"count":   len(payouts),
	})
}

// refreshPayoutStatus records the terminal outcome of a transfer. Transfers
// still in flight, and verification errors, leave the payout pending.
func refreshPayoutStatus(payout *models.Payout) {
	verification, err := paystackService.VerifyTransfer(payout.Reference)
	if err != nil {
		log.Printf("Failed to verify payout %s: %v", payout.Reference, err)
		return
	}

	switch verification.Data.Status {
	case "success":
		now := time.Now()
		payout.Status = models.PayoutCompleted
		payout.CompletedAt = &now
	case "failed", "reversed":
		payout.Status = models.PayoutFailed
		payout.FailureNote = "transfer " + verification.Data.Status
	default:
		return
	}

	if err := database.DB.Save(payout).Error; err != nil {
		log.Printf("Failed to update payout %s: %v", payout.Reference, err)
	}
}
