package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
)

type CreateListingRequest struct {
	Title        string  `json:"title" validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	MarketPrice  float64 `json:"market_price" validate:"required,gt=0"`
	Street       string  `json:"street" validate:"required"`
	City         string  `json:"city" validate:"required"`
	State        string  `json:"state" validate:"required"`
	Zip          string  `json:"zip" validate:"required"`
	Beds         int     `json:"beds" validate:"required,gte=0"`
	Baths        float64 `json:"baths" validate:"required,gte=0"`
	Sqft         int     `json:"sqft" validate:"required,gt=0"`
	RewardAmount float64 `json:"reward_amount" validate:"gte=0"`
	Images       []struct {
		URL      string `json:"url"`
		PublicID string `json:"public_id"`
	} `json:"images"`
}

type UpdateListingRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	MarketPrice  *float64 `json:"market_price"`
	Street       *string  `json:"street"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	Zip          *string  `json:"zip"`
	Beds         *int     `json:"beds"`
	Baths        *float64 `json:"baths"`
	Sqft         *int     `json:"sqft"`
	RewardAmount *float64 `json:"reward_amount"`
	Status       *string  `json:"status"`
}

// listingJSON builds the response shape shared by listing endpoints
func listingJSON(l *models.Listing) fiber.Map {
	return fiber.Map{
		"id":            l.ID,
		"user_id":       l.UserID,
		"title":         l.Title,
		"description":   l.Description,
		"price":         l.Price,
		"market_price":  l.MarketPrice,
		"below_market":  l.BelowMarketPercent(),
		"street":        l.Street,
		"city":          l.City,
		"state":         l.State,
		"zip":           l.Zip,
		"beds":          l.Beds,
		"baths":         l.Baths,
		"sqft":          l.Sqft,
		"reward_amount": l.RewardAmount,
		"has_reward":    l.HasReward(),
		"status":        l.Status,
		"images":        l.Images,
		"created_at":    l.CreatedAt,
		"updated_at":    l.UpdatedAt,
	}
}

// CreateListing creates a new property listing owned by the caller
func CreateListing(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	req := new(CreateListingRequest)
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

	listing := models.Listing{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		MarketPrice:  req.MarketPrice,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		Beds:         req.Beds,
		Baths:        req.Baths,
		Sqft:         req.Sqft,
		RewardAmount: req.RewardAmount,
		Status:       models.ListingActive,
	}

	// Listing and its images land together or not at all
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&listing).Error; err != nil {
			return err
		}

		for i, img := range req.Images {
			image := models.ListingImage{
				ListingID: listing.ID,
				URL:       img.URL,
				PublicID:  img.PublicID,
				Position:  i,
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create listing",
		})
	}

	database.DB.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&listing, listing.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Listing created successfully",
		"listing": listingJSON(&listing),
	})
}

// GetListings returns active listings with optional filters
func GetListings(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	query := database.DB.Model(&models.Listing{})

	if city := c.Query("city"); city != "" {
		query = query.Where("city ILIKE ?", city)
	}
	if state := c.Query("state"); state != "" {
		query = query.Where("state ILIKE ?", state)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}
	if beds := c.Query("beds"); beds != "" {
		if v, err := strconv.Atoi(beds); err == nil {
			query = query.Where("beds >= ?", v)
		}
	}
	if status := c.Query("status", string(models.ListingActive)); status != "all" {
		query = query.Where("status = ?", status)
	}
	if c.Query("with_reward") == "true" {
		query = query.Where("reward_amount > 0")
	}

	switch c.Query("sort", "newest") {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "below_market":
		query = query.Order("(market_price - price) / NULLIF(market_price, 0) DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var total int64
	query.Count(&total)

	var listings []models.Listing
	if err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Limit(limit).
		Offset(offset).
		Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listings",
		})
	}

	out := make([]fiber.Map, 0, len(listings))
	for i := range listings {
		out = append(out, listingJSON(&listings[i]))
	}

	return c.JSON(fiber.Map{
		"listings": out,
		"count":    len(out),
		"total":    total,
	})
}

// GetListing returns a single listing by id
func GetListing(c *fiber.Ctx) error {
	listingID := c.Params("id")

	var listing models.Listing
	if err := database.DB.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&listing, listingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Listing not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"listing": listingJSON(&listing),
	})
}

// GetMyListings returns the caller's own listings, any status
func GetMyListings(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var listings []models.Listing
	if err := database.DB.
		Where("user_id = ?", userID).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listings",
		})
	}

	out := make([]fiber.Map, 0, len(listings))
	for i := range listings {
		out = append(out, listingJSON(&listings[i]))
	}

	return c.JSON(fiber.Map{
		"listings": out,
		"count":    len(out),
	})
}

// UpdateListing mutates a listing; only the owner may do this
func UpdateListing(c *fiber.Ctx) error {
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
			"error": "Only the owner can update this listing",
		})
	}

	req := new(UpdateListingRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		listing.Title = *req.Title
	}
	if req.Description != nil {
		listing.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Price must be greater than zero",
			})
		}
		listing.Price = *req.Price
	}
	if req.MarketPrice != nil {
		if *req.MarketPrice <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Market price must be greater than zero",
			})
		}
		listing.MarketPrice = *req.MarketPrice
	}
	if req.Street != nil {
		listing.Street = *req.Street
	}
	if req.City != nil {
		listing.City = *req.City
	}
	if req.State != nil {
		listing.State = *req.State
	}
	if req.Zip != nil {
		listing.Zip = *req.Zip
	}
	if req.Beds != nil {
		listing.Beds = *req.Beds
	}
	if req.Baths != nil {
		listing.Baths = *req.Baths
	}
	if req.Sqft != nil {
		listing.Sqft = *req.Sqft
	}
	if req.RewardAmount != nil {
		listing.RewardAmount = *req.RewardAmount
	}
	if req.Status != nil {
		switch models.ListingStatus(*req.Status) {
		case models.ListingActive, models.ListingPending, models.ListingSold:
			listing.Status = models.ListingStatus(*req.Status)
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid listing status: %s", *req.Status),
			})
		}
	}

	if err := database.DB.Save(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update listing",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Listing updated successfully",
		"listing": listingJSON(&listing),
	})
}

// AddListingImages uploads photos and appends them to the listing in order
func AddListingImages(c *fiber.Ctx) error {
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
			"error": "Only the owner can add images to this listing",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse form",
		})
	}

	files := form.File["images"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No images provided",
		})
	}

	results, err := cloudinaryService.UploadMultipleFiles(files, "dealdoor/listings")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to upload images: %v", err),
		})
	}

	var lastPosition int
	database.DB.Model(&models.ListingImage{}).
		Where("listing_id = ?", listing.ID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&lastPosition)

	images := make([]models.ListingImage, 0, len(results))
	for i, result := range results {
		images = append(images, models.ListingImage{
			ListingID: listing.ID,
			URL:       result.SecureURL,
			PublicID:  result.PublicID,
			Position:  lastPosition + 1 + i,
		})
	}

	if err := database.DB.Create(&images).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save images",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("%d image(s) added", len(images)),
		"images":  images,
	})
}

// DeleteListing soft-deletes a listing; only the owner may do this
func DeleteListing(c *fiber.Ctx) error {
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
			"error": "Only the owner can delete this listing",
		})
	}

	if err := database.DB.Delete(&listing).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete listing",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Listing deleted successfully",
	})
}
