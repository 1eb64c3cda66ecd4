// Copyright (c) Larder (dev@larderapp.com)
// SPDX-License-Identifier: BUSL-1.1

// Package images mirrors externally hosted images into the public bucket so
// saved dishes do not hotlink the source site.
package images

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/storage"
)

// Fetcher fetches the bytes of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Mirror struct {
	fetcher Fetcher
	storage *storage.Client
	bucket  string
}

func NewMirror(fetcher Fetcher, storage *storage.Client, bucket string) *Mirror {
	return &Mirror{
		fetcher: fetcher,
		storage: storage,
		bucket:  bucket,
	}
}

// MirrorImage copies the image at srcURL to the public bucket under the
// dish's path and returns its public URL.
func (m *Mirror) MirrorImage(ctx context.Context, dishID string, srcURL string) (string, error) {
	data, err := m.fetcher.Fetch(ctx, srcURL)
	if err != nil {
		return "", fmt.Errorf("images: fetching source image: %w", err)
	}

	path := fmt.Sprintf("dishes/%s/main-image", dishID)
	wc := m.storage.Bucket(m.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = http.DetectContentType(data)
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("images: writing image: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("images: writing image: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", m.bucket, path), nil
}