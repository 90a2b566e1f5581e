package scraper

import (
	"context"
	"encoding/base64"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolcrm/backend/internal/infrastructure/config"
)

func TestNormalizeImageSources(t *testing.T) {
	base, err := url.Parse("https://competitor.example.com/products/pool-pump")
	require.NoError(t, err)

	t.Run("resolves relative URLs against the page", func(t *testing.T) {
		out := normalizeImageSources(base, []string{
			"/images/pump-front.jpg",
			"pump-side.jpg",
			"//cdn.example.com/pump-top.jpg",
		})
		assert.Equal(t, []string{
			"https://competitor.example.com/images/pump-front.jpg",
			"https://competitor.example.com/products/pump-side.jpg",
			"https://cdn.example.com/pump-top.jpg",
		}, out)
	})

	t.Run("deduplicates preserving document order", func(t *testing.T) {
		out := normalizeImageSources(base, []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
			"https://cdn.example.com/a.jpg",
		})
		assert.Equal(t, []string{
			"https://cdn.example.com/a.jpg",
			"https://cdn.example.com/b.jpg",
		}, out)
	})

	t.Run("drops non-http schemes and blanks", func(t *testing.T) {
		out := normalizeImageSources(base, []string{
			"javascript:void(0)",
			"blob:https://competitor.example.com/uuid",
			"",
			"   ",
			"https://cdn.example.com/keep.jpg",
		})
		assert.Equal(t, []string{"https://cdn.example.com/keep.jpg"}, out)
	})

	t.Run("passes data URLs through", func(t *testing.T) {
		dataURL := "data:image/png;base64,aGVsbG8="
		out := normalizeImageSources(base, []string{dataURL, dataURL})
		assert.Equal(t, []string{dataURL}, out)
	})

	t.Run("strips fragments", func(t *testing.T) {
		out := normalizeImageSources(base, []string{"https://cdn.example.com/a.jpg#zoom"})
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, out)
	})
}

func TestDecodeDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("pngbytes"))

	t.Run("decodes base64 image payload", func(t *testing.T) {
		data, contentType, err := decodeDataURL("data:image/png;base64," + payload)
		require.NoError(t, err)
		assert.Equal(t, []byte("pngbytes"), data)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		_, _, err := decodeDataURL("data:text/html;base64," + payload)
		assert.Error(t, err)
	})

	t.Run("rejects unencoded payloads", func(t *testing.T) {
		_, _, err := decodeDataURL("data:image/svg+xml,<svg/>")
		assert.Error(t, err)
	})

	t.Run("rejects malformed URLs", func(t *testing.T) {
		_, _, err := decodeDataURL("data:image/png;base64")
		assert.Error(t, err)

		_, _, err = decodeDataURL("data:image/png;base64,!!!")
		assert.Error(t, err)
	})
}

func TestChromedpScraper_ScrapeImages_Validation(t *testing.T) {
	t.Run("disabled scraper refuses work", func(t *testing.T) {
		s, err := NewChromedpScraper(&config.ScraperConfig{Enabled: false}, nil)
		require.NoError(t, err)
		defer func() { _ = s.Close() }()

		_, err = s.ScrapeImages(context.Background(), "https://competitor.example.com")
		assert.ErrorIs(t, err, ErrScraperDisabled)
	})

	t.Run("rejects relative and non-http URLs", func(t *testing.T) {
		s, err := NewChromedpScraper(&config.ScraperConfig{Enabled: true}, nil)
		require.NoError(t, err)
		defer func() { _ = s.Close() }()

		for _, pageURL := range []string{"", "/products", "ftp://host/file", "not a url\x00"} {
			_, err := s.ScrapeImages(context.Background(), pageURL)
			assert.ErrorIs(t, err, ErrInvalidPageURL, "url %q", pageURL)
		}
	})
}

func TestChromedpScraper_ConfigDefaults(t *testing.T) {
	s, err := NewChromedpScraper(&config.ScraperConfig{Enabled: true}, nil)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	assert.Equal(t, defaultTimeout, s.timeout())
	assert.Equal(t, defaultMaxImages, s.maxImages())
	assert.Equal(t, defaultUserAgent, s.userAgent())

	custom, err := NewChromedpScraper(&config.ScraperConfig{
		Enabled:   true,
		Timeout:   10 * time.Second,
		MaxImages: 5,
		UserAgent: "poolcrm-bot/1.0",
	}, nil)
	require.NoError(t, err)
	defer func() { _ = custom.Close() }()

	assert.Equal(t, 5, custom.maxImages())
	assert.Equal(t, "poolcrm-bot/1.0", custom.userAgent())
}
