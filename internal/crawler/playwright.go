package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightLauncher drives headless Chromium through playwright
type PlaywrightLauncher struct {
	ExecutablePath string
}

// Name implements Launcher
func (l *PlaywrightLauncher) Name() string {
	return "playwright"
}

// Launch implements Launcher
func (l *PlaywrightLauncher) Launch(ctx context.Context) (Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     []string{"--no-sandbox"},
	}
	if l.ExecutablePath != "" {
		opts.ExecutablePath = playwright.String(l.ExecutablePath)
	}

	browser, err := pw.Chromium.Launch(opts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}
	return &playwrightBrowser{pw: pw, browser: browser}, nil
}

type playwrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

func (b *playwrightBrowser) NewPage(ctx context.Context) (Page, error) {
	bctx, err := b.browser.NewContext()
	if err != nil {
		return nil, fmt.Errorf("could not create context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return &playwrightPage{context: bctx, page: page}, nil
}

func (b *playwrightBrowser) Close() error {
	browserErr := b.browser.Close()
	if err := b.pw.Stop(); err != nil {
		return err
	}
	return browserErr
}

type playwrightPage struct {
	context playwright.BrowserContext
	page    playwright.Page
}

func (p *playwrightPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return fmt.Errorf("goto %s: %w", url, context.DeadlineExceeded)
		}
		return fmt.Errorf("goto %s: %w", url, err)
	}
	return nil
}

func (p *playwrightPage) Scroll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Evaluate(scrollScript)
	return err
}

func (p *playwrightPage) Texts(selector string) ([]string, error) {
	return p.page.Locator(selector).AllTextContents()
}

func (p *playwrightPage) HTML() (string, error) {
	return p.page.Content()
}

func (p *playwrightPage) Close() error {
	pageErr := p.page.Close()
	if err := p.context.Close(); err != nil {
		return err
	}
	return pageErr
}
