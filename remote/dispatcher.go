// Package remote forwards commands to a Kodi JSON-RPC endpoint over HTTP.
//
// Delivery is at most once and unconfirmed: every Send issues a single GET in
// the background and discards the outcome.
package remote

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"kodikey/command"

	"github.com/hashicorp/go-retryablehttp"
)

const requestTimeout = 10 * time.Second

type Dispatcher struct {
	client  *retryablehttp.Client
	baseURL string
	wg      sync.WaitGroup
}

func NewDispatcher() *Dispatcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.HTTPClient.Timeout = requestTimeout
	client.Logger = log.Default()

	return &Dispatcher{client: client}
}

// SetEndpoint recomputes the cached base URL. Port 80 is left implicit.
func (d *Dispatcher) SetEndpoint(host string, port int, path string) {
	d.baseURL = BaseURL(host, port, path)
	log.Println(d.baseURL)
}

func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// URL returns the request URL for c, or false if c has no payload.
func (d *Dispatcher) URL(c command.Command) (string, bool) {
	payload, ok := command.Payload(c)
	if !ok {
		return "", false
	}
	return d.baseURL + "?request=" + encodeURIComponent(payload), true
}

// Send fires a GET for c and returns immediately. The response is ignored.
func (d *Dispatcher) Send(c command.Command) {
	target, ok := d.URL(c)
	if !ok {
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.get(target)
	}()
}

// Wait blocks until every in-flight Send has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) get(target string) {
	req, err := retryablehttp.NewRequestWithContext(context.Background(), http.MethodGet, target, nil)
	if err != nil {
		log.Printf("Invalid request URL %s: %v", target, err)
		return
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func BaseURL(host string, port int, path string) string {
	var b strings.Builder
	b.WriteString("http://")
	b.WriteString(host)
	if port != 80 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(port))
	}
	b.WriteString("/")
	b.WriteString(path)
	return b.String()
}

var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes s the way browsers escape a URI component.
func encodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
