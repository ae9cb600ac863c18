package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"regexp"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/avrhm/m3usift/internal/sanitize"
)

// DefaultSourceURL is the listing page the playlist links are scraped
// from when no other source is configured.
const DefaultSourceURL = "https://raw.githubusercontent.com/iptv-org/iptv/master/README.md"

// linkRE matches a table cell holding a category name followed by a
// <code>-wrapped playlist link on the same row.
var linkRE = regexp.MustCompile(`<td>(.+?)</td>.*?<code>(https://[^\s]+\.m3u8?)</code>`)

// Source is one named playlist discovered on the listing page.
type Source struct {
	Name string
	URL  string
}

// Client downloads the listing page and the playlist files themselves.
type Client struct {
	client  *fasthttp.Client
	timeout time.Duration
}

func NewClient(timeout time.Duration, insecure bool) *Client {
	return &Client{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			TLSConfig: &tls.Config{
				InsecureSkipVerify: insecure,
			},
			MaxIdleConnDuration: 2 * time.Second,
		},
		timeout: timeout,
	}
}

// Get fetches one URL and returns the response body. Non-2xx statuses
// are errors here: a listing page or playlist that cannot be
// downloaded is a run-level failure, unlike a dead stream.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return nil, fmt.Errorf("fetching %s: status %d", url, code)
	}

	body := append([]byte(nil), resp.Body()...)
	return body, nil
}

// ExtractSources pulls named playlist links out of the listing page.
// Names are sanitized; when the same name appears twice the later link
// wins but the first-seen position is kept.
func ExtractSources(page []byte, clean *sanitize.Sanitizer) []Source {
	var order []string
	byName := make(map[string]string)

	for _, m := range linkRE.FindAllSubmatch(page, -1) {
		name := clean.Clean(string(m[1]))
		if name == "" {
			continue
		}
		if _, seen := byName[name]; !seen {
			order = append(order, name)
		}
		byName[name] = string(m[2])
	}

	sources := make([]Source, 0, len(order))
	for _, name := range order {
		sources = append(sources, Source{Name: name, URL: byName[name]})
	}
	return sources
}
