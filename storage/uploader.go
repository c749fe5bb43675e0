package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

var ErrUploadsDisabled = errors.New("object storage is not configured")

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// TeamLogoKey is the object key for a team logo.
func TeamLogoKey(teamID, ext string) string {
	return fmt.Sprintf("teams/%s/logo%s", teamID, ext)
}

// publicURL joins a public bucket base with an object key.
func publicURL(base, key string) string {
	if base == "" || key == "" {
		return ""
	}
	baseURL, err := url.Parse(strings.TrimSuffix(base, "/") + "/")
	if err != nil {
		return ""
	}
	pathURL, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(pathURL).String()
}

// readOnlyStore resolves existing logo keys but refuses writes. It is used
// when no bucket credentials are configured.
type readOnlyStore struct {
	publicBaseURL string
}

func NewReadOnlyStore(publicBaseURL string) FileUploader {
	return &readOnlyStore{publicBaseURL: publicBaseURL}
}

func (s *readOnlyStore) Upload(context.Context, string, string, io.Reader) (*UploadResult, error) {
	return nil, ErrUploadsDisabled
}

func (s *readOnlyStore) Delete(context.Context, string) error {
	return ErrUploadsDisabled
}

func (s *readOnlyStore) GetPublicURL(key string) string {
	return publicURL(s.publicBaseURL, key)
}
