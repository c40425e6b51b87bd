// Copyright (c) 2026 MangaMirror. All rights reserved.
// Author: duc.lehoang.vn@gmail.com

package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoData reports that the upstream answered with a non-retryable error
// status. The pipeline treats it as "skip this unit", never as fatal.
var ErrNoData = errors.New("importer: upstream returned no data")

const requestTimeout = 30 * time.Second

// ClientConfig tunes the upstream catalog client.
type ClientConfig struct {
	// BaseURL is the upstream API root, e.g. https://api.mangadex.org.
	BaseURL string

	// ListBackoff, FeedBackoff and PagesBackoff are the per-endpoint sleep
	// durations applied after a 429 before retrying.
	ListBackoff  time.Duration
	FeedBackoff  time.Duration
	PagesBackoff time.Duration
}

// Client talks to the upstream catalog API. On 429 it backs off and retries
// the same request until it succeeds or the context is cancelled; any other
// non-2xx status yields [ErrNoData].
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	listBackoff  time.Duration
	feedBackoff  time.Duration
	pagesBackoff time.Duration
}

// NewClient constructs a [Client] from its configuration.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:      cfg.BaseURL,
		http:         &http.Client{Timeout: requestTimeout},
		logger:       logger,
		listBackoff:  cfg.ListBackoff,
		feedBackoff:  cfg.FeedBackoff,
		pagesBackoff: cfg.PagesBackoff,
	}
}

// ListManga fetches one page of the catalog listing, cover art included.
func (client *Client) ListManga(ctx context.Context, limit, offset int) ([]MangaData, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	query.Add("includes[]", "cover_art")
	query.Add("includes[]", "tag")

	endpoint := fmt.Sprintf("%s/manga?%s", client.baseURL, query.Encode())

	var payload mangaListResponse
	if err := client.getJSON(ctx, endpoint, client.listBackoff, &payload); err != nil {
		return nil, err
	}

	return payload.Data, nil
}

// ChapterFeed fetches the English-language chapter list of one catalog entry.
func (client *Client) ChapterFeed(ctx context.Context, mangaID string) ([]ChapterData, error) {
	// The exclusion flags keep unpublished and externally-hosted (pageless)
	// chapters out of the feed server-side.
	query := url.Values{}
	query.Set("limit", "500")
	query.Add("translatedLanguage[]", "en")
	query.Set("order[chapter]", "asc")
	query.Set("includeFuturePublishAt", "0")
	query.Set("includeExternalUrl", "0")

	endpoint := fmt.Sprintf("%s/manga/%s/feed?%s", client.baseURL, mangaID, query.Encode())

	var payload chapterFeedResponse
	if err := client.getJSON(ctx, endpoint, client.feedBackoff, &payload); err != nil {
		return nil, err
	}

	return payload.Data, nil
}

// ReaderSession fetches the page-server session for one chapter.
func (client *Client) ReaderSession(ctx context.Context, chapterID string) (*ReaderSession, error) {
	endpoint := fmt.Sprintf("%s/at-home/server/%s", client.baseURL, chapterID)

	var payload ReaderSession
	if err := client.getJSON(ctx, endpoint, client.pagesBackoff, &payload); err != nil {
		return nil, err
	}

	return &payload, nil
}

// getJSON performs a GET and decodes the body into out. Rate-limit responses
// sleep for backoff and retry indefinitely; the context is the only way out.
func (client *Client) getJSON(ctx context.Context, endpoint string, backoff time.Duration, out any) error {
	for {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}

		response, err := client.http.Do(request)
		if err != nil {
			return fmt.Errorf("perform request: %w", err)
		}

		if response.StatusCode == http.StatusTooManyRequests {
			_, _ = io.Copy(io.Discard, response.Body)
			_ = response.Body.Close()

			client.logger.Warn("upstream rate limited, backing off",
				slog.String("endpoint", endpoint),
				slog.Duration("backoff", backoff),
			)

			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			continue
		}

		if response.StatusCode < 200 || response.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, response.Body)
			_ = response.Body.Close()
			return fmt.Errorf("%w: status %d from %s", ErrNoData, response.StatusCode, endpoint)
		}

		err = json.NewDecoder(response.Body).Decode(out)
		_ = response.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}

		return nil
	}
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
