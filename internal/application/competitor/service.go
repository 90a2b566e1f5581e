// Package competitor scrapes product images off competitor pages and
// stashes them in object storage for later review.
package competitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/scraper"
	"github.com/poolcrm/backend/internal/infrastructure/storage"
	"github.com/poolcrm/backend/internal/infrastructure/telemetry"
)

// Download links stay valid long enough to review a batch the same day
const downloadURLTTL = 24 * time.Hour

// Service orchestrates a scrape run: collect images, upload them, hand
// back presigned download links.
type Service struct {
	scraper scraper.ImageScraper
	storage storage.ObjectStorage
	metrics *telemetry.CRMMetrics
	logger  *zap.Logger
}

// NewService creates a new competitor research service. metrics may be nil.
func NewService(
	imageScraper scraper.ImageScraper,
	objectStorage storage.ObjectStorage,
	metrics *telemetry.CRMMetrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		scraper: imageScraper,
		storage: objectStorage,
		metrics: metrics,
		logger:  logger,
	}
}

// ScrapeImages runs one scrape against the given page. Images that fail
// to upload are skipped rather than failing the whole run.
func (s *Service) ScrapeImages(ctx context.Context, req ScrapeRequest) (*ScrapeResult, error) {
	images, err := s.scraper.ScrapeImages(ctx, req.URL)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordScrapeRun(ctx, "failure", 0)
		}
		return nil, s.mapScrapeError(req.URL, err)
	}

	scrapedAt := time.Now().UTC()
	prefix := fmt.Sprintf("competitors/%s", scrapedAt.Format("20060102-150405"))

	stored := make([]*StoredImage, 0, len(images))
	for i, img := range images {
		key := fmt.Sprintf("%s/%03d%s", prefix, i+1, extensionFor(img.ContentType))

		if err := s.storage.Upload(ctx, key, img.Data, img.ContentType); err != nil {
			s.logger.Warn("Failed to upload scraped image",
				zap.String("storage_key", key),
				zap.String("source", img.SourceURL),
				zap.Error(err))
			continue
		}

		downloadURL, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, downloadURLTTL)
		if err != nil {
			s.logger.Warn("Failed to presign scraped image",
				zap.String("storage_key", key),
				zap.Error(err))
			continue
		}

		stored = append(stored, &StoredImage{
			SourceURL:   img.SourceURL,
			StorageKey:  key,
			ContentType: img.ContentType,
			SizeBytes:   len(img.Data),
			DownloadURL: downloadURL,
			ExpiresAt:   expiresAt,
		})
	}

	if len(stored) == 0 {
		if s.metrics != nil {
			s.metrics.RecordScrapeRun(ctx, "failure", 0)
		}
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to store scraped images")
	}

	if s.metrics != nil {
		s.metrics.RecordScrapeRun(ctx, "success", len(stored))
	}

	s.logger.Info("Competitor scrape completed",
		zap.String("page", req.URL),
		zap.Int("scraped", len(images)),
		zap.Int("stored", len(stored)))

	return &ScrapeResult{
		PageURL:    req.URL,
		ImageCount: len(stored),
		Images:     stored,
		ScrapedAt:  scrapedAt,
	}, nil
}

func (s *Service) mapScrapeError(pageURL string, err error) error {
	switch {
	case errors.Is(err, scraper.ErrScraperDisabled):
		return shared.NewDomainError(shared.CodeForbidden, "Competitor scraping is disabled")
	case errors.Is(err, scraper.ErrInvalidPageURL):
		return shared.NewValidationError("url must be an absolute http or https URL")
	case errors.Is(err, scraper.ErrNoImagesFound):
		return shared.NewNotFoundError("product images")
	default:
		s.logger.Error("Scrape failed",
			zap.String("page", pageURL),
			zap.Error(err))
		return shared.NewDomainError(shared.CodeInternal, "Failed to scrape page")
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "image/avif":
		return ".avif"
	default:
		return ".bin"
	}
}
