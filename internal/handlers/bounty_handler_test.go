package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DealDoor/internal/database"
	"DealDoor/internal/models"
	"DealDoor/internal/services"
)

// fakePaystack answers transfer verification with a canned status per
// reference
func fakePaystack(t *testing.T, statusByRef map[string]string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reference := strings.TrimPrefix(r.URL.Path, "/transfer/verify/")
		status, ok := statusByRef[reference]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"status": false, "message": "Transfer not found"}`)
			return
		}
		fmt.Fprintf(w, `{"status": true, "message": "Transfer retrieved", "data": {"reference": %q, "status": %q, "transfer_code": "TRF_test"}}`, reference, status)
	}))
}

func TestGetPayoutsSettlesPendingTransfers(t *testing.T) {
	setupTestDB(t)

	wholesaler := createTestUser(t, "Wendy", "wendy@example.com", models.RoleWholesaler)

	srv := fakePaystack(t, map[string]string{
		"bounty-1-settled":  "success",
		"bounty-2-bounced":  "failed",
		"bounty-3-inflight": "pending",
	})
	defer srv.Close()

	previous := paystackService
	paystackService = &services.PaystackService{SecretKey: "sk_test", BaseURL: srv.URL}
	t.Cleanup(func() { paystackService = previous })

	seed := []models.Payout{
		{ClaimID: 1, WholesalerID: wholesaler.ID, Amount: 5000, Reference: "bounty-1-settled", Status: models.PayoutPending},
		{ClaimID: 2, WholesalerID: wholesaler.ID, Amount: 3000, Reference: "bounty-2-bounced", Status: models.PayoutPending},
		{ClaimID: 3, WholesalerID: wholesaler.ID, Amount: 2000, Reference: "bounty-3-inflight", Status: models.PayoutPending},
	}
	for i := range seed {
		require.NoError(t, database.DB.Create(&seed[i]).Error)
	}

	app := fiber.New()
	app.Get("/api/bounties/payouts", withUser(wholesaler.ID), GetPayouts)

	status, _ := doJSON(t, app, "GET", "/api/bounties/payouts", "")
	require.Equal(t, fiber.StatusOK, status)

	var settled models.Payout
	require.NoError(t, database.DB.Where("reference = ?", "bounty-1-settled").First(&settled).Error)
	assert.Equal(t, models.PayoutCompleted, settled.Status)
	require.NotNil(t, settled.CompletedAt)

	var bounced models.Payout
	require.NoError(t, database.DB.Where("reference = ?", "bounty-2-bounced").First(&bounced).Error)
	assert.Equal(t, models.PayoutFailed, bounced.Status)
	assert.Equal(t, "transfer failed", bounced.FailureNote)

	var inflight models.Payout
	require.NoError(t, database.DB.Where("reference = ?", "bounty-3-inflight").First(&inflight).Error)
	assert.Equal(t, models.PayoutPending, inflight.Status)
	assert.Nil(t, inflight.CompletedAt)
}

func TestGetPayoutsLeavesPendingOnVerifyError(t *testing.T) {
	setupTestDB(t)

	wholesaler := createTestUser(t, "Wendy", "wendy@example.com", models.RoleWholesaler)

	srv := fakePaystack(t, nil)
	defer srv.Close()

	previous := paystackService
	paystackService = &services.PaystackService{SecretKey: "sk_test", BaseURL: srv.URL}
	t.Cleanup(func() { paystackService = previous })

	payout := models.Payout{ClaimID: 1, WholesalerID: wholesaler.ID, Amount: 5000, Reference: "bounty-1-unknown", Status: models.PayoutPending}
	require.NoError(t, database.DB.Create(&payout).Error)

	app := fiber.New()
	app.Get("/api/bounties/payouts", withUser(wholesaler.ID), GetPayouts)

	status, _ := doJSON(t, app, "GET", "/api/bounties/payouts", "")
	require.Equal(t, fiber.StatusOK, status)

	var reloaded models.Payout
	require.NoError(t, database.DB.First(&reloaded, payout.ID).Error)
	assert.Equal(t, models.PayoutPending, reloaded.Status)
}
