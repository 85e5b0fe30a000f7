package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebaseauth "firebase.google.com/go/v4/auth"

	"github.com/the3dsandwich/csci3100-grp31/config"
	"github.com/the3dsandwich/csci3100-grp31/internal/auth"
)

// FirebaseClients bundles the Admin SDK handles the service runs on.
type FirebaseClients struct {
	Auth      *firebaseauth.Client
	Firestore *firestore.Client
	Bucket    *storage.BucketHandle
}

// OpenFirebase initializes the Admin SDK and opens the Auth, Firestore and
// default Storage bucket handles.
func OpenFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*FirebaseClients, error) {
	app, authClient, err := auth.InitializeFirebase(cfg)
	if err != nil {
		return nil, err
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("storage client: %w", err)
	}
	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("default bucket: %w", err)
	}

	return &FirebaseClients{
		Auth:      authClient,
		Firestore: fs,
		Bucket:    bucket,
	}, nil
}

// Close releases the underlying clients.
func (f *FirebaseClients) Close() error {
	return f.Firestore.Close()
}
