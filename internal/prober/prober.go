package prober

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/avrhm/m3usift/internal/types"
)

const userAgent = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:15.0) Gecko/20100101 Firefox/15.0.1"

type Config struct {
	Timeout  time.Duration
	Insecure bool
	MaxConns int
}

// Prober issues bounded reachability checks against stream URLs. A
// probe is a single HEAD request, never a content download, and never
// blocks past the configured timeout.
type Prober struct {
	client  *fasthttp.Client
	timeout time.Duration
}

func New(config Config) *Prober {
	client := &fasthttp.Client{
		ReadTimeout:     config.Timeout,
		WriteTimeout:    config.Timeout,
		MaxConnsPerHost: config.MaxConns,
		TLSConfig: &tls.Config{
			InsecureSkipVerify: config.Insecure,
		},
		MaxIdleConnDuration: 2 * time.Second,
	}

	return &Prober{client: client, timeout: config.Timeout}
}

// Probe classifies a single URL:
//
//   - StatusAvailable: a success-range response arrived in time
//   - StatusUnavailable: refused, DNS failure, timeout, or a
//     non-success status — the server side is at fault
//   - StatusError: the playlist entry itself is broken (malformed URL
//     or a scheme we cannot check)
func (p *Prober) Probe(ctx context.Context, rawURL string) (types.ProbeStatus, string, time.Duration) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return types.StatusError, fmt.Sprintf("malformed url: %v", err), 0
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return types.StatusError, fmt.Sprintf("unsupported scheme %q", u.Scheme), 0
	}
	if u.Host == "" {
		return types.StatusError, "malformed url: missing host", 0
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rawURL)
	req.Header.SetMethod(fasthttp.MethodHead)
	req.Header.Set("User-Agent", userAgent)

	// The transport does not take a context, so the run deadline is
	// folded into the per-probe deadline instead.
	deadline := time.Now().Add(p.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	start := time.Now()
	err = p.client.DoDeadline(req, resp, deadline)
	latency := time.Since(start)
	if err != nil {
		return types.StatusUnavailable, err.Error(), latency
	}

	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return types.StatusAvailable, "", latency
	}
	return types.StatusUnavailable, fmt.Sprintf("status %d", code), latency
}
