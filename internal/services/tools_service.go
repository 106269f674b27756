package services

import (
	"context"

	"meridian/internal/clients/vectorizer"
	apperrors "meridian/internal/errors"
	"meridian/internal/extract"
	"meridian/internal/metrics"
)

// toolsService backs the admin extraction tools: pulling a logo off a
// company website, pulling episode details off a podcast page, and
// converting a raster logo to SVG.
type toolsService struct {
	fetcher    *extract.Fetcher
	vectorizer *vectorizer.Client
}

// NewToolsService creates a new ToolsServicer.
func NewToolsService(fetcher *extract.Fetcher, vectorizerClient *vectorizer.Client) ToolsServicer {
	return &toolsService{fetcher: fetcher, vectorizer: vectorizerClient}
}

// ExtractLogo fetches the page and returns the best logo candidate URL.
func (s *toolsService) ExtractLogo(ctx context.Context, pageURL string) (string, error) {
	doc, base, err := s.fetcher.FetchHTML(ctx, pageURL)
	if err != nil {
		metrics.RecordExtraction("logo", false)
		return "", apperrors.Wrap(apperrors.ErrFetchFailed, err)
	}
	logoURL, err := extract.Logo(doc, base)
	if err != nil {
		metrics.RecordExtraction("logo", false)
		return "", apperrors.Wrap(apperrors.ErrExtractFailed, err)
	}
	metrics.RecordExtraction("logo", true)
	return logoURL, nil
}

// ExtractEpisode fetches the episode page and parses its details.
func (s *toolsService) ExtractEpisode(ctx context.Context, episodeURL string) (*extract.Episode, error) {
	doc, _, err := s.fetcher.FetchHTML(ctx, episodeURL)
	if err != nil {
		metrics.RecordExtraction("episode", false)
		return nil, apperrors.Wrap(apperrors.ErrFetchFailed, err)
	}
	episode, err := extract.ParseEpisode(doc)
	if err != nil {
		metrics.RecordExtraction("episode", false)
		return nil, apperrors.Wrap(apperrors.ErrExtractFailed, err)
	}
	metrics.RecordExtraction("episode", true)
	return episode, nil
}

// VectorizeLogo converts a raster logo into SVG via the vectorizer API.
func (s *toolsService) VectorizeLogo(ctx context.Context, imageURL string) (string, error) {
	svg, err := s.vectorizer.Vectorize(ctx, imageURL)
	if err != nil {
		metrics.RecordExtraction("vectorize", false)
		return "", apperrors.Wrap(apperrors.ErrVectorizeFailed, err)
	}
	metrics.RecordExtraction("vectorize", true)
	return svg, nil
}
