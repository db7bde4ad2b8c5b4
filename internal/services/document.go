package services

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitalink-health/vitalink-backend/internal/errordata"
	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/repos"
	"github.com/vitalink-health/vitalink-backend/internal/requestdata"
	"github.com/vitalink-health/vitalink-backend/internal/types"
)

type DocumentService interface {
	Upload(ctx context.Context, name, contentType string, size int64, r io.Reader) (*types.Document, error)
	GetMine(ctx context.Context) ([]*types.Document, error)
	// Delete removes the stored object first, then the row.
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	db            *gorm.DB
	log           *logger.Logger
	documentRepo  repos.DocumentRepo
	bucketService BucketService
}

func NewDocumentService(db *gorm.DB, log *logger.Logger, documentRepo repos.DocumentRepo, bucketService BucketService) DocumentService {
	serviceLog := log.With("service", "DocumentService")
	return &documentService{
		db:            db,
		log:           serviceLog,
		documentRepo:  documentRepo,
		bucketService: bucketService,
	}
}

func (ds *documentService) Upload(ctx context.Context, name, contentType string, size int64, r io.Reader) (*types.Document, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	if name == "" {
		return nil, fmt.Errorf("a document name is required")
	}
	if ds.bucketService == nil {
		return nil, fmt.Errorf("document storage is not configured")
	}

	bucketKey := fmt.Sprintf("documents/%s/%s%s", rd.UserID, uuid.NewString(), path.Ext(name))
	if err := ds.bucketService.UploadFile(ctx, bucketKey, r, contentType); err != nil {
		if ed := errordata.GetErrorData(ctx); ed != nil {
			ed.SetMessage("could not store the uploaded file")
		}
		return nil, fmt.Errorf("uploading document: %w", err)
	}

	document := &types.Document{
		UserID:      rd.UserID,
		Name:        name,
		ContentType: contentType,
		SizeBytes:   size,
		BucketKey:   bucketKey,
		URL:         ds.bucketService.GetPublicURL(bucketKey),
	}
	if err := ds.documentRepo.Create(ctx, nil, document); err != nil {
		if delErr := ds.bucketService.DeleteFile(ctx, bucketKey); delErr != nil {
			ds.log.Warn("Failed to remove orphaned document object", "error", delErr, "bucketKey", bucketKey)
		}
		return nil, err
	}
	return document, nil
}

func (ds *documentService) GetMine(ctx context.Context) ([]*types.Document, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("not authenticated")
	}
	return ds.documentRepo.GetByUserID(ctx, nil, rd.UserID)
}

func (ds *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("not authenticated")
	}
	document, err := ds.documentRepo.GetByID(ctx, nil, id)
	if err != nil || document.UserID != rd.UserID {
		return fmt.Errorf("document not found")
	}
	if ds.bucketService != nil {
		if err := ds.bucketService.DeleteFile(ctx, document.BucketKey); err != nil {
			ds.log.Warn("Failed to delete document object, removing row anyway", "error", err, "bucketKey", document.BucketKey)
		}
	}
	return ds.documentRepo.Delete(ctx, nil, id)
}
