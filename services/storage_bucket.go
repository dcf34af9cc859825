package services

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
)

type StorageBucket struct {
	*storage.BucketHandle
	name string
}

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		bucketHandle,
		bucketName,
	}, nil
}

// Upload stores contents under blobName and returns the blob's public URL
func (sb *StorageBucket) Upload(ctx context.Context, blobName string, contents io.Reader) (string, error) {
	writer := sb.Object(blobName).NewWriter(ctx)
	if _, err := io.Copy(writer, contents); err != nil {
		writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%v/%v", sb.name, blobName), nil
}
