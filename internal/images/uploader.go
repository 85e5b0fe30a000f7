package images

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const profileImagePrefix = "profile_image/"

// Uploader writes profile images to the Firebase default Cloud Storage bucket
// and hands back a durable download URL.
type Uploader struct {
	bucket *storage.BucketHandle
}

func NewUploader(bucket *storage.BucketHandle) *Uploader {
	return &Uploader{bucket: bucket}
}

// UploadProfileImage streams the image into the bucket under
// profile_image/{uid}{filename} and attaches a download token, so the
// resulting URL keeps working without signed-URL churn.
func (u *Uploader) UploadProfileImage(ctx context.Context, uid, filename string, r io.Reader) (string, error) {
	if uid == "" || filename == "" {
		return "", fmt.Errorf("uid and filename are required")
	}

	key := profileImagePrefix + uid + filename
	token := uuid.New().String()

	obj := u.bucket.Object(key)
	w := obj.NewWriter(ctx)
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload profile image: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize profile image: %w", err)
	}

	src := fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		obj.BucketName(),
		url.PathEscape(key),
		token,
	)
	return src, nil
}
