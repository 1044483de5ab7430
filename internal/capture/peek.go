// Package capture resolves a page URL into prefill hints for the capture
// form, standing in for the browser-extension's active-tab inspection.
package capture

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"jobtrack/internal/config"

	"github.com/gocolly/colly/v2"
)

type PagePeek struct {
	Title string
	Site  string
	URL   string
}

type Peeker struct {
	cfg    config.PeekConfig
	logger *log.Logger
}

func NewPeeker(cfg config.PeekConfig, logger *log.Logger) *Peeker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Peeker{cfg: cfg, logger: logger}
}

// Peek fetches the page statically and extracts its title. When the static
// fetch yields nothing and headless mode is on, it retries with a browser
// (some job boards render the title client-side).
func (p *Peeker) Peek(ctx context.Context, rawURL string) (PagePeek, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return PagePeek{}, fmt.Errorf("invalid url")
	}

	out := PagePeek{URL: u.String(), Site: u.Hostname()}

	title, err := p.fetchTitleStatic(ctx, u.String())
	if err != nil && p.logger != nil {
		p.logger.Printf("[Peek] static fetch failed | url=%s error=%v", u.String(), err)
	}

	if title == "" && p.cfg.Headless {
		title, err = p.fetchTitleHeadless(ctx, u.String())
		if err != nil && p.logger != nil {
			p.logger.Printf("[Peek] headless fetch failed | url=%s error=%v", u.String(), err)
		}
	}

	if title == "" {
		if err != nil {
			return PagePeek{}, err
		}
		return PagePeek{}, fmt.Errorf("no title found")
	}

	out.Title = title
	return out, nil
}

func (p *Peeker) fetchTitleStatic(ctx context.Context, pageURL string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(p.cfg.Timeout)

	var title string
	c.OnHTML("title", func(e *colly.HTMLElement) {
		if title == "" {
			title = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML(`meta[property="og:title"]`, func(e *colly.HTMLElement) {
		if t := strings.TrimSpace(e.Attr("content")); t != "" {
			title = t
		}
	})

	var fetchErr error
	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	c.OnRequest(func(r *colly.Request) {
		select {
		case <-ctx.Done():
			r.Abort()
		default:
		}
	})

	if err := c.Visit(pageURL); err != nil {
		return "", err
	}
	c.Wait()

	if fetchErr != nil {
		return title, fetchErr
	}
	return title, nil
}
