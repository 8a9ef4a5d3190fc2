// Package transport performs the plain HTTP GETs the price and inventory
// sources need.
package transport

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Getter fetches url and returns the status code and body. A non-2xx status
// is not an error; err is reserved for transport failures and cancellation.
type Getter interface {
	Get(ctx context.Context, url string) (status int, body []byte, err error)
}

type Client struct {
	client *resty.Client
}

func NewClient(timeout time.Duration, userAgent string) *Client {
	client := resty.New()
	client.SetTimeout(timeout)
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}

	return &Client{client: client}
}

func (c *Client) Get(ctx context.Context, url string) (int, []byte, error) {
	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, ctx.Err()
		}
		return 0, nil, err
	}
	return resp.StatusCode(), resp.Body(), nil
}
