// Package scraper collects product images from competitor pages using
// headless Chrome.
package scraper

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/poolcrm/backend/internal/infrastructure/config"
)

const (
	defaultTimeout   = 45 * time.Second
	defaultMaxImages = 20
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	// Images smaller than this are almost always icons or tracking pixels
	minImageBytes = 4 * 1024

	maxImageBytes = 20 << 20
)

// ScrapedImage is one image pulled off a competitor page
type ScrapedImage struct {
	SourceURL   string
	Data        []byte
	ContentType string
}

// ImageScraper collects product images from a page URL
type ImageScraper interface {
	ScrapeImages(ctx context.Context, pageURL string) ([]ScrapedImage, error)
}

var (
	ErrScraperDisabled = errors.New("scraper is disabled")
	ErrInvalidPageURL  = errors.New("page URL must be absolute http or https")
	ErrNoImagesFound   = errors.New("no product images found on page")
)

// ChromedpScraper drives a headless Chrome instance via the DevTools
// protocol to load a page, let its scripts run, and read the rendered
// image elements. A plain HTTP fetch misses images injected client-side,
// which is the norm on competitor storefronts.
type ChromedpScraper struct {
	cfg         *config.ScraperConfig
	logger      *zap.Logger
	httpClient  *http.Client
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

var _ ImageScraper = (*ChromedpScraper)(nil)

// NewChromedpScraper creates a scraper from configuration
func NewChromedpScraper(cfg *config.ScraperConfig, logger *zap.Logger) (*ChromedpScraper, error) {
	if cfg == nil {
		cfg = &config.ScraperConfig{Enabled: true}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &ChromedpScraper{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	s.initAllocator()
	return s, nil
}

func (s *ChromedpScraper) initAllocator() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(s.userAgent()),
	)

	for _, flag := range s.cfg.ChromeFlags {
		name, value, found := strings.Cut(strings.TrimPrefix(flag, "--"), "=")
		if found {
			opts = append(opts, chromedp.Flag(name, value))
		} else {
			opts = append(opts, chromedp.Flag(name, true))
		}
	}

	s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

func (s *ChromedpScraper) userAgent() string {
	if s.cfg.UserAgent != "" {
		return s.cfg.UserAgent
	}
	return defaultUserAgent
}

func (s *ChromedpScraper) timeout() time.Duration {
	if s.cfg.Timeout > 0 {
		return s.cfg.Timeout
	}
	return defaultTimeout
}

func (s *ChromedpScraper) maxImages() int {
	if s.cfg.MaxImages > 0 {
		return s.cfg.MaxImages
	}
	return defaultMaxImages
}

// ScrapeImages loads the page in headless Chrome, collects the rendered
// image sources, and downloads each one.
func (s *ChromedpScraper) ScrapeImages(ctx context.Context, pageURL string) ([]ScrapedImage, error) {
	if !s.cfg.Enabled {
		return nil, ErrScraperDisabled
	}
	base, err := url.Parse(pageURL)
	if err != nil || !base.IsAbs() || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, ErrInvalidPageURL
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	sources, err := s.collectImageSources(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	candidates := normalizeImageSources(base, sources)
	if len(candidates) == 0 {
		return nil, ErrNoImagesFound
	}

	limit := s.maxImages()
	images := make([]ScrapedImage, 0, limit)
	for _, src := range candidates {
		if len(images) >= limit {
			break
		}

		img, err := s.fetchImage(ctx, src)
		if err != nil {
			s.logger.Debug("Skipping image",
				zap.String("source", src),
				zap.Error(err))
			continue
		}
		images = append(images, img)
	}

	if len(images) == 0 {
		return nil, ErrNoImagesFound
	}

	s.logger.Info("Scraped competitor images",
		zap.String("page", pageURL),
		zap.Int("found", len(candidates)),
		zap.Int("downloaded", len(images)))

	return images, nil
}

// collectImageSources runs the browser and reads every rendered <img> src
// plus any srcset entries.
func (s *ChromedpScraper) collectImageSources(ctx context.Context, pageURL string) ([]string, error) {
	browserCtx, browserCancel := chromedp.NewContext(s.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			s.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, s.timeout())
	defer timeoutCancel()

	const collectJS = `(() => {
		const out = [];
		for (const img of document.images) {
			if (img.currentSrc) out.push(img.currentSrc);
			else if (img.src) out.push(img.src);
		}
		return out;
	})()`

	var sources []string
	err := chromedp.Run(browserCtx,
		network.Enable(),
		// Storefronts serve region-specific image sets; pin the locale
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": "en-US,en;q=0.9",
		}),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		// Give lazy loaders a moment to populate srcs
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(collectJS, &sources),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded || browserCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("page load timed out after %v: %w", s.timeout(), err)
		}
		return nil, fmt.Errorf("failed to load page: %w", err)
	}

	return sources, nil
}

// fetchImage downloads a single image. Inline data URLs are decoded
// without a network round trip.
func (s *ChromedpScraper) fetchImage(ctx context.Context, src string) (ScrapedImage, error) {
	if strings.HasPrefix(src, "data:") {
		data, contentType, err := decodeDataURL(src)
		if err != nil {
			return ScrapedImage{}, err
		}
		if len(data) < minImageBytes {
			return ScrapedImage{}, fmt.Errorf("image too small (%d bytes)", len(data))
		}
		return ScrapedImage{SourceURL: src, Data: data, ContentType: contentType}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return ScrapedImage{}, err
	}
	req.Header.Set("User-Agent", s.userAgent())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return ScrapedImage{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ScrapedImage{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return ScrapedImage{}, err
	}
	if len(data) > maxImageBytes {
		return ScrapedImage{}, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	if len(data) < minImageBytes {
		return ScrapedImage{}, fmt.Errorf("image too small (%d bytes)", len(data))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return ScrapedImage{}, fmt.Errorf("not an image: %s", contentType)
	}

	return ScrapedImage{SourceURL: src, Data: data, ContentType: contentType}, nil
}

// Close releases the Chrome allocator
func (s *ChromedpScraper) Close() error {
	if s.allocCancel != nil {
		s.allocCancel()
	}
	return nil
}

// normalizeImageSources resolves sources against the page URL, drops
// non-HTTP schemes (data URLs pass through) and deduplicates while
// preserving document order.
func normalizeImageSources(base *url.URL, sources []string) []string {
	seen := make(map[string]struct{}, len(sources))
	out := make([]string, 0, len(sources))

	for _, src := range sources {
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}

		if strings.HasPrefix(src, "data:") {
			if _, ok := seen[src]; ok {
				continue
			}
			seen[src] = struct{}{}
			out = append(out, src)
			continue
		}

		ref, err := url.Parse(src)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			continue
		}
		resolved.Fragment = ""

		key := resolved.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}

	return out
}

// decodeDataURL converts a data URL (data:image/png;base64,...) into raw
// bytes and its content type.
func decodeDataURL(dataURL string) ([]byte, string, error) {
	meta, encoded, found := strings.Cut(strings.TrimPrefix(dataURL, "data:"), ",")
	if !found {
		return nil, "", errors.New("invalid data URL format")
	}

	contentType := "application/octet-stream"
	if semi := strings.Index(meta, ";"); semi >= 0 {
		if meta[:semi] != "" {
			contentType = meta[:semi]
		}
		if !strings.Contains(meta, "base64") {
			return nil, "", errors.New("only base64 data URLs are supported")
		}
	} else if meta != "" {
		return nil, "", errors.New("only base64 data URLs are supported")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("invalid data URL payload: %w", err)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("not an image: %s", contentType)
	}
	return data, contentType, nil
}
