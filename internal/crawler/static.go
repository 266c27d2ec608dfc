package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sjsage522/jackpotworker/helpers"
	"sjsage522/jackpotworker/internal/jackpot"
	"sjsage522/jackpotworker/logger"
	"sjsage522/jackpotworker/services/cache"

	checkerrors "sjsage522/jackpotworker/pkg/errors"
)

var errNotLoaded = errors.New("page not loaded")

// HTTPLauncher fetches pages with plain GET requests. Pages rendered by
// JavaScript only expose their server-side markup.
type HTTPLauncher struct {
	Client *http.Client
	Guard  *cache.RateGuard
}

// Name implements Launcher
func (l *HTTPLauncher) Name() string {
	return "http"
}

// Launch implements Launcher
func (l *HTTPLauncher) Launch(ctx context.Context) (Browser, error) {
	return &httpBrowser{client: l.Client, guard: l.Guard}, ctx.Err()
}

type httpBrowser struct {
	client *http.Client
	guard  *cache.RateGuard
}

func (b *httpBrowser) NewPage(ctx context.Context) (Page, error) {
	return &httpPage{client: b.client, guard: b.guard}, nil
}

func (b *httpBrowser) Close() error {
	return nil
}

type httpPage struct {
	client *http.Client
	guard  *cache.RateGuard
	doc    *jackpot.HTMLDocument
}

func (p *httpPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if p.guard.Blocked(url) {
		return checkerrors.NewRateLimit(url, p.guard.BlockTime())
	}

	body, err := helpers.FetchWithRandomHeaders(ctx, url, helpers.FetchOptions{Client: p.client, Timeout: timeout})
	if err != nil {
		var statusErr *helpers.StatusError
		if errors.As(err, &statusErr) && statusErr.IsRateLimit() {
			if blockErr := p.guard.Block(url); blockErr != nil {
				logger.ForComponent("crawler").Warn().Err(blockErr).Str("url", url).Msg("Failed to store rate limit")
			}
			return checkerrors.NewRateLimit(url, p.guard.BlockTime())
		}
		return err
	}

	doc, err := jackpot.NewHTMLDocument(body)
	if err != nil {
		return fmt.Errorf("parse %s: %w", url, err)
	}
	p.doc = doc
	return nil
}

func (p *httpPage) Scroll(ctx context.Context) error {
	return nil
}

func (p *httpPage) Texts(selector string) ([]string, error) {
	if p.doc == nil {
		return nil, errNotLoaded
	}
	return p.doc.Texts(selector)
}

func (p *httpPage) HTML() (string, error) {
	if p.doc == nil {
		return "", errNotLoaded
	}
	return p.doc.HTML()
}

func (p *httpPage) Close() error {
	p.doc = nil
	return nil
}
