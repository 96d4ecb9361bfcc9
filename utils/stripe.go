package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"loanlink/config"

	"github.com/go-resty/resty/v2"
)

// PaymentIntent is the subset of the processor's intent object the
// portal cares about.
type PaymentIntent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata"`
}

type stripeErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// StripeClient talks to the Stripe payment-intents API.
type StripeClient struct {
	client    *resty.Client
	secretKey string
}

// Stripe is the global payment-processor client, initialized at startup.
var Stripe *StripeClient

// InitStripe wires the global client from configuration.
func InitStripe() {
	if config.AppConfig.StripeSecretKey == "" {
		log.Println("Stripe not configured, payment processing disabled.")
		return
	}
	Stripe = NewStripeClient(config.AppConfig.StripeAPIBase, config.AppConfig.StripeSecretKey)
}

func NewStripeClient(baseURL, secretKey string) *StripeClient {
	return &StripeClient{
		client:    resty.New().SetBaseURL(baseURL),
		secretKey: secretKey,
	}
}

// CreatePaymentIntent creates an intent for the processing fee, scoped
// to one application through metadata.
func (s *StripeClient) CreatePaymentIntent(amount int64, currency, applicationRef string) (*PaymentIntent, error) {
	resp, err := s.client.R().
		SetBasicAuth(s.secretKey, "").
		SetFormData(map[string]string{
			"amount":                    strconv.FormatInt(amount, 10),
			"currency":                  currency,
			"metadata[application_ref]": applicationRef,
			"payment_method_types[]":    "card",
		}).
		Post("/v1/payment_intents")
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment processor: %w", err)
	}

	return parseIntentResponse(resp)
}

// GetPaymentIntent retrieves an intent so the server can verify the
// processor's view of a charge instead of trusting the client.
func (s *StripeClient) GetPaymentIntent(intentID string) (*PaymentIntent, error) {
	resp, err := s.client.R().
		SetBasicAuth(s.secretKey, "").
		Get("/v1/payment_intents/" + intentID)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment processor: %w", err)
	}

	return parseIntentResponse(resp)
}

func parseIntentResponse(resp *resty.Response) (*PaymentIntent, error) {
	if resp.StatusCode() >= 400 {
		var errBody stripeErrorBody
		if err := json.Unmarshal(resp.Body(), &errBody); err == nil && errBody.Error.Message != "" {
			return nil, fmt.Errorf("payment processor error: %s", errBody.Error.Message)
		}
		return nil, fmt.Errorf("payment processor error: status %d", resp.StatusCode())
	}

	var intent PaymentIntent
	if err := json.Unmarshal(resp.Body(), &intent); err != nil {
		return nil, fmt.Errorf("invalid payment processor response: %w", err)
	}
	return &intent, nil
}
