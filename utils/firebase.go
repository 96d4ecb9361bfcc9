package utils

import (
	"context"
	"fmt"
	"log"
	"strings"

	"loanlink/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseAuth verifies identity-provider ID tokens. Nil when no
// credentials are configured; the token exchange then trusts the caller
// (development mode only).
var FirebaseAuth *auth.Client

// InitFirebase loads the Firebase Admin credentials if configured.
func InitFirebase() {
	if config.AppConfig.FirebaseCredFile == "" {
		log.Println("Warning: FIREBASE_CREDENTIALS_FILE not set. ID tokens will not be verified.")
		return
	}

	app, err := firebase.NewApp(context.Background(),
		nil,
		option.WithCredentialsFile(config.AppConfig.FirebaseCredFile),
	)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	client, err := app.Auth(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize Firebase auth client: %v", err)
	}

	FirebaseAuth = client
	log.Println("Firebase ID-token verification enabled.")
}

// VerifyFirebaseToken checks an ID token and returns the email it was
// issued for.
func VerifyFirebaseToken(ctx context.Context, idToken string) (string, error) {
	if FirebaseAuth == nil {
		return "", fmt.Errorf("firebase not configured")
	}

	token, err := FirebaseAuth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("invalid ID token: %w", err)
	}

	email, _ := token.Claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("ID token has no email claim")
	}
	return strings.ToLower(email), nil
}
