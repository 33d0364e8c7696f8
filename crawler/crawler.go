package crawler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"streamit/logger"
	"streamit/types"

	"github.com/valyala/fasthttp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StatusError is returned for any non-2xx reply from the listing endpoint.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

type Client struct {
	client    *fasthttp.Client
	userAgent string
	timeout   time.Duration
	retries   int
	log       logger.Logger
}

func NewClient(config types.Config, log logger.Logger) *Client {
	timeout := config.ClientTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		client: &fasthttp.Client{
			Name:                     config.App.Client.UserAgent,
			ReadTimeout:              timeout,
			WriteTimeout:             timeout,
			MaxIdleConnDuration:      30 * time.Second,
			NoDefaultUserAgentHeader: config.App.Client.UserAgent == "",
		},
		userAgent: config.App.Client.UserAgent,
		timeout:   timeout,
		retries:   config.App.Client.Retries,
		log:       log,
	}
}

// Get fetches uri and returns the body of a 2xx reply. Transport errors are
// retried up to the configured count; a non-2xx reply is returned at once.
func (c *Client) Get(ctx context.Context, uri string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.log.Debug("Making request",
			logger.String("method", fasthttp.MethodGet),
			logger.String("uri", uri),
			logger.Int("attempt", attempt+1))
		body, status, err := c.do(ctx, uri)
		if err != nil {
			lastErr = fmt.Errorf("request %s: %w", uri, err)
			continue
		}
		if status < 200 || status > 299 {
			return nil, &StatusError{URL: uri, StatusCode: status}
		}
		return body, nil
	}
	return nil, lastErr
}

// maxRedirects bounds how many Location hops one attempt follows.
const maxRedirects = 5

// do performs one attempt, following redirects until a non-redirect reply or
// maxRedirects hops. Every hop shares one deadline.
func (c *Client) do(ctx context.Context, uri string) ([]byte, int, error) {
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if !time.Now().Before(deadline) {
		return nil, 0, context.DeadlineExceeded
	}

	request := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(request)
	response := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(response)

	request.SetRequestURI(uri)
	request.Header.SetMethod(fasthttp.MethodGet)
	request.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		request.Header.Set("User-Agent", c.userAgent)
	}
	for hop := 0; ; hop++ {
		if err := c.client.DoDeadline(request, response, deadline); err != nil {
			return nil, 0, err
		}
		status := response.StatusCode()
		location := response.Header.Peek(fasthttp.HeaderLocation)
		if !fasthttp.StatusCodeIsRedirect(status) || len(location) == 0 || hop == maxRedirects {
			break
		}
		c.log.Debug("Following redirect",
			logger.String("from", request.URI().String()),
			logger.String("location", string(location)))
		request.URI().UpdateBytes(location)
		response.Reset()
	}
	// The response is released on return, so the body must be copied out.
	body := append([]byte(nil), response.Body()...)
	return body, response.StatusCode(), nil
}

type MatcherFunc func(node *html.Node) (keep bool, exit bool)

// PlainText reduces an upstream string to its text: markup is dropped,
// entities are decoded and runs of whitespace collapse to one space.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	nodes := traverse(doc, func(node *html.Node) (keep bool, exit bool) {
		if node.Type == html.ElementNode && (node.DataAtom == atom.Script || node.DataAtom == atom.Style) {
			exit = true
			return
		}
		keep = node.Type == html.TextNode
		return
	})
	var b strings.Builder
	for _, node := range nodes {
		b.WriteString(node.Data)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// traverse collects the nodes matcher keeps. exit stops the descent below
// the current node.
func traverse(doc *html.Node, matcher MatcherFunc) (nodes []*html.Node) {
	var sifter func(*html.Node)
	sifter = func(node *html.Node) {
		keep, exit := matcher(node)
		if keep {
			nodes = append(nodes, node)
		}
		if exit {
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			sifter(child)
		}
	}
	sifter(doc)
	return nodes
}
