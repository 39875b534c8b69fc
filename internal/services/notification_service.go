package services

import (
	"encoding/json"
	"fmt"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
)

type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// CreateNotification creates a new notification
func (s *NotificationService) CreateNotification(userID uint, notifType models.NotificationType, title, message string, data map[string]interface{}) error {
	// Convert data to JSON string
	var dataJSON string
	if data != nil {
		jsonBytes, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal notification data: %w", err)
		}
		dataJSON = string(jsonBytes)
	}

	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    dataJSON,
		IsRead:  false,
	}

	if err := database.DB.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// NotifyNewMessage notifies the recipient of a fresh message
func (s *NotificationService) NotifyNewMessage(recipientID uint, senderName string, conversationID, messageID uint) error {
	return s.CreateNotification(
		recipientID,
		models.NotificationNewMessage,
		"New Message",
		fmt.Sprintf("%s sent you a message", senderName),
		map[string]interface{}{
			"conversation_id": conversationID,
			"message_id":      messageID,
			"sender_name":     senderName,
		},
	)
}

// NotifyWaitlistRequest notifies the seller that a buyer wants their contact info
func (s *NotificationService) NotifyWaitlistRequest(sellerID uint, buyerName, listingTitle string, listingID, requestID uint) error {
	return s.CreateNotification(
		sellerID,
		models.NotificationWaitlistRequest,
		"New Contact Request",
		fmt.Sprintf("%s wants to unlock your contact info for %s", buyerName, listingTitle),
		map[string]interface{}{
			"listing_id": listingID,
			"request_id": requestID,
			"buyer_name": buyerName,
		},
	)
}

// NotifyWaitlistDecision notifies the requester about an accept/decline
func (s *NotificationService) NotifyWaitlistDecision(buyerID uint, listingTitle string, listingID uint, accepted bool) error {
	notifType := models.NotificationWaitlistAccepted
	title := "Contact Request Approved"
	message := fmt.Sprintf("The seller approved your contact request for %s", listingTitle)
	if !accepted {
		notifType = models.NotificationWaitlistDeclined
		title = "Contact Request Declined"
		message = fmt.Sprintf("The seller declined your contact request for %s", listingTitle)
	}

	return s.CreateNotification(
		buyerID,
		notifType,
		title,
		message,
		map[string]interface{}{
			"listing_id": listingID,
			"accepted":   accepted,
		},
	)
}

// NotifyBountyClaimed notifies the listing owner that a wholesaler claimed the bounty
func (s *NotificationService) NotifyBountyClaimed(sellerID uint, wholesalerName, listingTitle string, listingID, claimID uint, reward float64) error {
	return s.CreateNotification(
		sellerID,
		models.NotificationBountyClaimed,
		"Bounty Claimed",
		fmt.Sprintf("%s claimed the $%.2f bounty on %s", wholesalerName, reward, listingTitle),
		map[string]interface{}{
			"listing_id":      listingID,
			"claim_id":        claimID,
			"wholesaler_name": wholesalerName,
			"reward_amount":   reward,
		},
	)
}

// NotifyBountyAdvanced notifies the listing owner of claim progress
func (s *NotificationService) NotifyBountyAdvanced(sellerID uint, wholesalerName, listingTitle string, claimID uint, status models.BountyStatus) error {
	return s.CreateNotification(
		sellerID,
		models.NotificationBountyAdvanced,
		"Bounty Progress",
		fmt.Sprintf("%s moved the claim on %s to %s", wholesalerName, listingTitle, status),
		map[string]interface{}{
			"claim_id": claimID,
			"status":   string(status),
		},
	)
}

// NotifyBountyClosed notifies the wholesaler that the deal closed and the
// reward payout was initiated
func (s *NotificationService) NotifyBountyClosed(wholesalerID uint, listingTitle string, claimID uint, reward float64, reference string) error {
	return s.CreateNotification(
		wholesalerID,
		models.NotificationBountyClosed,
		"Deal Closed - Payout Initiated",
		fmt.Sprintf("Your $%.2f reward for %s is on its way", reward, listingTitle),
		map[string]interface{}{
			"claim_id":         claimID,
			"reward_amount":    reward,
			"payout_reference": reference,
		},
	)
}

// NotifyOfferReceived notifies a seller that a message carries a property offer
func (s *NotificationService) NotifyOfferReceived(sellerID uint, senderName, listingTitle string, conversationID, listingID uint) error {
	return s.CreateNotification(
		sellerID,
		models.NotificationOfferReceived,
		"Offer Received",
		fmt.Sprintf("%s sent an offer on %s", senderName, listingTitle),
		map[string]interface{}{
			"conversation_id": conversationID,
			"listing_id":      listingID,
			"sender_name":     senderName,
		},
	)
}
