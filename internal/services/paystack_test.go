package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyTransfer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transfer/verify/bounty-7-ref", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"status": true, "message": "Transfer retrieved", "data": {"id": 42, "amount": 500000, "currency": "NGN", "reference": "bounty-7-ref", "status": "success", "transfer_code": "TRF_abc"}}`)
	}))
	defer srv.Close()

	ps := &PaystackService{SecretKey: "sk_test", BaseURL: srv.URL}

	result, err := ps.VerifyTransfer("bounty-7-ref")
	require.NoError(t, err)
	assert.Equal(t, "success", result.Data.Status)
	assert.Equal(t, "bounty-7-ref", result.Data.Reference)
	assert.Equal(t, "TRF_abc", result.Data.TransferCode)
}

func TestVerifyTransferSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status": false, "message": "Transfer not found"}`)
	}))
	defer srv.Close()

	ps := &PaystackService{SecretKey: "sk_test", BaseURL: srv.URL}

	_, err := ps.VerifyTransfer("no-such-ref")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transfer not found")
}
