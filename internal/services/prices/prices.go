// Package prices fetches and parses the backpack.tf IGetPrices v4 feed.
package prices

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"tf2-trader/internal/config"
	"tf2-trader/internal/jsonfile"
	"tf2-trader/internal/services/transport"
)

const (
	SourceBackpackTF = "backpack.tf"
	SourceMirror     = "prices.tf"

	StatusMissing = "prices missing (check key / cache)"
)

// Meta records where the cached raw payload came from.
type Meta struct {
	SavedAt time.Time `json:"saved_at"`
	Source  string    `json:"source"`
}

type Service struct {
	http       transport.Getter
	paths      config.Paths
	primaryURL string
	mirrorURL  string
	now        func() time.Time
}

func NewService(http transport.Getter, paths config.Paths, primaryURL, mirrorURL string) *Service {
	return &Service{
		http:       http,
		paths:      paths,
		primaryURL: primaryURL,
		mirrorURL:  mirrorURL,
		now:        time.Now,
	}
}

// FetchRaw walks backpack.tf (only with an API key), the mirror, then the
// local cache, and returns the first payload it gets. Source failures only
// show up in the status text; err is non-nil only when ctx is done.
func (s *Service) FetchRaw(ctx context.Context, apiKey string) ([]byte, string, error) {
	apiKey = strings.TrimSpace(apiKey)

	if apiKey != "" {
		u := s.primaryURL + "?" + url.Values{"appid": {"440"}, "key": {apiKey}}.Encode()
		body, ok, err := s.fetchLive(ctx, u, SourceBackpackTF)
		if err != nil {
			return nil, "", err
		}
		if ok {
			return body, fmt.Sprintf("prices loaded (%s)", SourceBackpackTF), nil
		}
	}

	u := s.mirrorURL + "?" + url.Values{"appid": {"440"}}.Encode()
	body, ok, err := s.fetchLive(ctx, u, SourceMirror)
	if err != nil {
		return nil, "", err
	}
	if ok {
		return body, fmt.Sprintf("prices loaded (%s)", SourceMirror), nil
	}

	raw, meta, err := s.ReadCache()
	if err != nil {
		log.Printf("prices: reading cache failed: %v", err)
	}
	if raw != nil {
		source := "unknown"
		if meta != nil && meta.Source != "" {
			source = meta.Source
		}
		return raw, fmt.Sprintf("prices loaded (cache: %s)", source), nil
	}
	return nil, StatusMissing, nil
}

func (s *Service) fetchLive(ctx context.Context, u, source string) ([]byte, bool, error) {
	status, body, err := s.http.Get(ctx, u)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, ctxErr
		}
		log.Printf("prices: %s request failed: %v", source, err)
		return nil, false, nil
	}
	if status != http.StatusOK {
		log.Printf("prices: %s returned HTTP %d", source, status)
		return nil, false, nil
	}
	if err := s.writeCache(body, Meta{SavedAt: s.now().UTC(), Source: source}); err != nil {
		log.Printf("prices: caching %s payload failed: %v", source, err)
	}
	return body, true, nil
}

func (s *Service) writeCache(raw []byte, meta Meta) error {
	if err := jsonfile.WriteRaw(s.paths.PricesRawPath(), raw); err != nil {
		return err
	}
	return jsonfile.Write(s.paths.PricesMetaPath(), meta)
}

// ReadCache returns the last payload saved by a live fetch. A missing or
// blank cache returns nil without error; meta is nil when its file is gone.
func (s *Service) ReadCache() ([]byte, *Meta, error) {
	raw, err := os.ReadFile(s.paths.PricesRawPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil, nil
	}

	var meta Meta
	found, err := jsonfile.Read(s.paths.PricesMetaPath(), &meta)
	if err != nil || !found {
		return raw, nil, err
	}
	return raw, &meta, nil
}
