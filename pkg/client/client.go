// Package client is a typed façade over the asset-service HTTP API. It
// mirrors fetched records into local state so callers can read the derived
// active/inactive views without re-querying.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

type Asset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AssetInfo struct {
	ID      string   `json:"id"`
	AssetID string   `json:"assetId"`
	Tags    []string `json:"tags"`
	Status  string   `json:"status"`
	Notes   string   `json:"notes,omitempty"`
	OwnerID string   `json:"ownerId"`
}

type AssetLog struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"assetId"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	OwnerID   string    `json:"ownerId"`
	Details   string    `json:"details,omitempty"`
}

type ListFilter struct {
	Category string
	Search   string
}

var ErrNotFound = errors.New("not found")

type Client struct {
	base  string
	token string
	http  *http.Client
	cb    *gobreaker.CircuitBreaker

	mu     sync.RWMutex
	assets []Asset
	infos  map[string]AssetInfo // assetID -> first info record
}

func New(baseURL, token string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "asset-service",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: 10 * time.Second},
		cb:    cb,
		infos: map[string]AssetInfo{},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	_, err := c.cb.Execute(func() (any, error) {
		var rd io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			if err != nil {
				return nil, err
			}
			rd = bytes.NewReader(b)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if resp.StatusCode >= 400 {
			var e struct {
				Error string `json:"error"`
			}
			_ = json.NewDecoder(resp.Body).Decode(&e)
			if e.Error == "" {
				e.Error = resp.Status
			}
			return nil, fmt.Errorf("asset-service: %s", e.Error)
		}
		if out != nil {
			return nil, json.NewDecoder(resp.Body).Decode(out)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	})
	return err
}

// FetchAssets lists assets and refreshes the local mirror, including the
// info records backing the active/inactive views.
func (c *Client) FetchAssets(ctx context.Context, f ListFilter) ([]Asset, error) {
	path := "/assets"
	sep := "?"
	if f.Category != "" {
		path += sep + "category=" + f.Category
		sep = "&"
	}
	if f.Search != "" {
		path += sep + "search=" + f.Search
	}
	var assets []Asset
	if err := c.do(ctx, http.MethodGet, path, nil, &assets); err != nil {
		return nil, err
	}

	infos := map[string]AssetInfo{}
	for _, a := range assets {
		var info AssetInfo
		err := c.do(ctx, http.MethodGet, "/assets/"+a.ID+"/info", nil, &info)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		infos[a.ID] = info
	}

	c.mu.Lock()
	c.assets = assets
	c.infos = infos
	c.mu.Unlock()
	return assets, nil
}

func (c *Client) GetAsset(ctx context.Context, id string) (*Asset, error) {
	var a Asset
	if err := c.do(ctx, http.MethodGet, "/assets/"+id, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) CreateAsset(ctx context.Context, name, description, category, imageURL string) (*Asset, error) {
	body := map[string]string{
		"name":        name,
		"description": description,
		"category":    category,
		"imageUrl":    imageURL,
	}
	var a Asset
	if err := c.do(ctx, http.MethodPost, "/assets", body, &a); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.assets = append(c.assets, a)
	c.mu.Unlock()
	return &a, nil
}

func (c *Client) UpdateAsset(ctx context.Context, id string, patch map[string]any) (*Asset, error) {
	var a Asset
	if err := c.do(ctx, http.MethodPut, "/assets/"+id, patch, &a); err != nil {
		return nil, err
	}
	c.mu.Lock()
	for i := range c.assets {
		if c.assets[i].ID == id {
			c.assets[i] = a
			break
		}
	}
	c.mu.Unlock()
	return &a, nil
}

func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/assets/"+id, nil, nil); err != nil {
		return err
	}
	c.mu.Lock()
	kept := c.assets[:0]
	for _, a := range c.assets {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	c.assets = kept
	delete(c.infos, id)
	c.mu.Unlock()
	return nil
}

func (c *Client) UpsertInfo(ctx context.Context, assetID string, tags []string, status, notes string) (*AssetInfo, error) {
	body := map[string]any{"tags": tags, "status": status, "notes": notes}
	var info AssetInfo
	if err := c.do(ctx, http.MethodPost, "/assets/"+assetID+"/info", body, &info); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.infos[assetID] = info
	c.mu.Unlock()
	return &info, nil
}

func (c *Client) ListLogs(ctx context.Context, assetID string) ([]AssetLog, error) {
	var logs []AssetLog
	if err := c.do(ctx, http.MethodGet, "/assets/"+assetID+"/logs", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// ImageURL exchanges the stored object key for a short-lived signed URL.
func (c *Client) ImageURL(ctx context.Context, assetID string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/assets/"+assetID+"/image/url", nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// ActiveAssets returns the mirrored assets classified active: no info record
// or status "active".
func (c *Client) ActiveAssets() []Asset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []Asset{}
	for _, a := range c.assets {
		info, ok := c.infos[a.ID]
		if !ok || info.Status == "active" {
			out = append(out, a)
		}
	}
	return out
}

// InactiveAssets returns the mirrored assets whose info status is "inactive".
func (c *Client) InactiveAssets() []Asset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []Asset{}
	for _, a := range c.assets {
		if info, ok := c.infos[a.ID]; ok && info.Status == "inactive" {
			out = append(out, a)
		}
	}
	return out
}
