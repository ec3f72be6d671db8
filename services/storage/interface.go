package storage

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService is the document/media collaborator. It accepts uploaded
// files and returns stable retrievable URLs that are stored on seller
// requests and profiles.
type StorageService interface {
	// UploadFile uploads a local file into the destination folder and
	// returns its permanent URL.
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	// DeleteFile removes a previously uploaded file by its public ID.
	DeleteFile(ctx context.Context, publicID string) error
}

// StorageServiceImpl implements StorageService on Cloudinary.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}
