package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

type PaystackService struct {
	SecretKey string
	BaseURL   string
}

// Paystack API Response structures
type PaystackResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type TransferRecipientResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Active        bool   `json:"active"`
		CreatedAt     string `json:"createdAt"`
		Currency      string `json:"currency"`
		Domain        string `json:"domain"`
		ID            int64  `json:"id"`
		Integration   int64  `json:"integration"`
		Name          string `json:"name"`
		RecipientCode string `json:"recipient_code"`
		Type          string `json:"type"`
		UpdatedAt     string `json:"updatedAt"`
		IsDeleted     bool   `json:"is_deleted"`
		Details       struct {
			AuthorizationCode string `json:"authorization_code"`
			AccountNumber     string `json:"account_number"`
			AccountName       string `json:"account_name"`
			BankCode          string `json:"bank_code"`
			BankName          string `json:"bank_name"`
		} `json:"details"`
	} `json:"data"`
}

type InitiateTransferResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Integration  int64   `json:"integration"`
		Domain       string  `json:"domain"`
		Amount       float64 `json:"amount"`
		Currency     string  `json:"currency"`
		Reference    string  `json:"reference"`
		Source       string  `json:"source"`
		Reason       string  `json:"reason"`
		Recipient    int64   `json:"recipient"`
		Status       string  `json:"status"`
		TransferCode string  `json:"transfer_code"`
		ID           int64   `json:"id"`
	} `json:"data"`
}

type VerifyTransferResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID           int64   `json:"id"`
		Amount       float64 `json:"amount"`
		Currency     string  `json:"currency"`
		Reference    string  `json:"reference"`
		Status       string  `json:"status"`
		TransferCode string  `json:"transfer_code"`
	} `json:"data"`
}

// NewPaystackService creates a new Paystack service instance
func NewPaystackService() *PaystackService {
	return &PaystackService{
		SecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		BaseURL:   "https://api.paystack.co",
	}
}

// makeRequest makes HTTP request to Paystack API
func (ps *PaystackService) makeRequest(method, endpoint string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, ps.BaseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+ps.SecretKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	return client.Do(req)
}

// CreateTransferRecipient registers the wholesaler's bank account as a
// transfer recipient
func (ps *PaystackService) CreateTransferRecipient(name, accountNumber, bankCode string) (*TransferRecipientResponse, error) {
	payload := map[string]interface{}{
		"type":           "nuban",
		"name":           name,
		"account_number": accountNumber,
		"bank_code":      bankCode,
		"currency":       "NGN",
	}

	resp, err := ps.makeRequest("POST", "/transferrecipient", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result TransferRecipientResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.Status {
		return nil, fmt.Errorf("paystack error: %s", result.Message)
	}

	return &result, nil
}

// InitiateTransfer pays out a bounty reward to a recipient. Amount is in the
// major currency unit; Paystack wants the minor unit.
func (ps *PaystackService) InitiateTransfer(recipientCode, reference, reason string, amount float64) (*InitiateTransferResponse, error) {
	payload := map[string]interface{}{
		"source":    "balance",
		"amount":    int(amount * 100),
		"recipient": recipientCode,
		"reference": reference,
		"reason":    reason,
	}

	resp, err := ps.makeRequest("POST", "/transfer", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result InitiateTransferResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.Status {
		return nil, fmt.Errorf("paystack error: %s", result.Message)
	}

	return &result, nil
}

// VerifyTransfer checks the state of a previously initiated payout
func (ps *PaystackService) VerifyTransfer(reference string) (*VerifyTransferResponse, error) {
	resp, err := ps.makeRequest("GET", "/transfer/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result VerifyTransferResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !result.Status {
		return nil, fmt.Errorf("paystack error: %s", result.Message)
	}

	return &result, nil
}
