package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/the3dsandwich/csci3100-grp31/config"
)

// InitializeFirebase initializes the Firebase Admin SDK and returns the app
// plus an Auth client for ID-token verification.
func InitializeFirebase(cfg *config.FirebaseConfig) (*firebase.App, *auth.Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	fbCfg := &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(context.Background(), fbCfg, opt)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return app, authClient, nil
}
