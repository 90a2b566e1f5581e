package competitor

import "time"

// ScrapeRequest asks for the product images on a competitor page
type ScrapeRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// StoredImage describes one scraped image after upload
type StoredImage struct {
	SourceURL   string    `json:"source_url"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int       `json:"size_bytes"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ScrapeResult is the outcome of a scrape run
type ScrapeResult struct {
	PageURL    string         `json:"page_url"`
	ImageCount int            `json:"image_count"`
	Images     []*StoredImage `json:"images"`
	ScrapedAt  time.Time      `json:"scraped_at"`
}
