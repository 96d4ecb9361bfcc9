package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment_intents", r.URL.Path)

		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "sk_test_123", user)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1000", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "ref-42", r.PostForm.Get("metadata[application_ref]"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "pi_123",
			"client_secret": "pi_123_secret_abc",
			"amount": 1000,
			"currency": "usd",
			"status": "requires_payment_method",
			"metadata": {"application_ref": "ref-42"}
		}`)
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_123")
	intent, err := client.CreatePaymentIntent(1000, "usd", "ref-42")
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.Equal(t, "requires_payment_method", intent.Status)
}

func TestGetPaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "pi_123", "amount": 1000, "currency": "usd", "status": "succeeded"}`)
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_123")
	intent, err := client.GetPaymentIntent("pi_123")
	require.NoError(t, err)

	assert.Equal(t, "succeeded", intent.Status)
	assert.EqualValues(t, 1000, intent.Amount)
}

func TestStripeErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		fmt.Fprint(w, `{"error": {"type": "card_error", "code": "card_declined", "message": "Your card was declined."}}`)
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_123")
	_, err := client.CreatePaymentIntent(1000, "usd", "ref-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your card was declined.")
}
