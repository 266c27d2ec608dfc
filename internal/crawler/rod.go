package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// RodLauncher drives headless Chromium through go-rod
type RodLauncher struct {
	ChromePath string
}

// Name implements Launcher
func (l *RodLauncher) Name() string {
	return "rod"
}

// Launch implements Launcher
func (l *RodLauncher) Launch(ctx context.Context) (Browser, error) {
	lnch := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)
	if l.ChromePath != "" {
		lnch = lnch.Bin(l.ChromePath)
	}

	controlURL, err := lnch.Launch()
	if err != nil {
		return nil, fmt.Errorf("could not launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		lnch.Kill()
		return nil, fmt.Errorf("could not connect to chromium: %w", err)
	}
	return &rodBrowser{launcher: lnch, browser: browser}, nil
}

type rodBrowser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

func (b *rodBrowser) NewPage(ctx context.Context) (Page, error) {
	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("could not create incognito context: %w", err)
	}
	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = incognito.Close()
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return &rodPage{context: incognito, page: page}, nil
}

func (b *rodBrowser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	return err
}

type rodPage struct {
	context *rod.Browser
	page    *rod.Page
}

func (p *rodPage) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	page := p.page.Context(ctx).Timeout(timeout)
	defer page.CancelTimeout()

	wait := page.WaitNavigation(proto.PageLifecycleEventNameNetworkIdle)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	wait()

	// WaitNavigation does not report errors; a cancelled context is the only signal
	if err := page.GetContext().Err(); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (p *rodPage) Scroll(ctx context.Context) error {
	_, err := p.page.Context(ctx).Eval(scrollScript)
	return err
}

func (p *rodPage) Texts(selector string) ([]string, error) {
	elements, err := p.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	return textContents(elements), nil
}

// propertyReader is the part of *rod.Element used to read DOM properties
type propertyReader interface {
	Property(name string) (gson.JSON, error)
}

// textContents reads textContent, which includes hidden descendants, matching
// what the playwright engine returns
func textContents[E propertyReader](elements []E) []string {
	texts := make([]string, 0, len(elements))
	for _, el := range elements {
		prop, err := el.Property("textContent")
		if err != nil || prop.Nil() {
			continue
		}
		texts = append(texts, prop.Str())
	}
	return texts
}

func (p *rodPage) HTML() (string, error) {
	return p.page.HTML()
}

func (p *rodPage) Close() error {
	pageErr := p.page.Close()
	if err := p.context.Close(); err != nil {
		return err
	}
	return pageErr
}
