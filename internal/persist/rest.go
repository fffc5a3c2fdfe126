package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/biomintech/labstock/internal/model"
)

const selectColumns = "id,category,name,qty,unit,status,location,checked_by,last_updated"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// RESTBackend talks to a PostgREST-style hosted table API.
type RESTBackend struct {
	base   string
	key    string
	client *http.Client
	log    zerolog.Logger
}

// NewRESTBackend creates a backend for table under endpoint, authenticating
// with the access key.
func NewRESTBackend(endpoint, key, table string, client *http.Client, log zerolog.Logger) *RESTBackend {
	if client == nil {
		client = http.DefaultClient
	}
	return &RESTBackend{
		base:   strings.TrimRight(endpoint, "/") + "/rest/v1/" + url.PathEscape(table),
		key:    key,
		client: client,
		log:    log.With().Str("backend", "rest").Logger(),
	}
}

// Mode implements Backend.
func (b *RESTBackend) Mode() Mode { return ModeRemote }

// List implements Backend. Rows that cannot be decoded are skipped.
func (b *RESTBackend) List(ctx context.Context) ([]model.Item, error) {
	q := url.Values{}
	q.Set("select", selectColumns)
	q.Set("order", "id.asc")

	body, err := b.do(ctx, http.MethodGet, b.base+"?"+q.Encode(), nil, "")
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	rows, err := model.DecodeRows(body)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	items := make([]model.Item, 0, len(rows))
	for _, r := range rows {
		item, err := model.ItemFromRow(r)
		if err != nil {
			b.log.Warn().Err(err).Msg("skipping undecodable row")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Insert implements Backend. The returned item carries the assigned id.
func (b *RESTBackend) Insert(ctx context.Context, item model.Item) (model.Item, error) {
	row := model.ToRow(item)
	delete(row, "id")

	payload, err := json.Marshal(row)
	if err != nil {
		return model.Item{}, fmt.Errorf("encoding item: %w", err)
	}

	body, err := b.do(ctx, http.MethodPost, b.base+"?select="+selectColumns, payload, "return=representation")
	if err != nil {
		return model.Item{}, fmt.Errorf("inserting item: %w", err)
	}

	rows, err := model.DecodeRows(body)
	if err != nil {
		return model.Item{}, fmt.Errorf("inserting item: %w", err)
	}
	if len(rows) != 1 {
		return model.Item{}, fmt.Errorf("inserting item: expected 1 row, got %d", len(rows))
	}
	return model.ItemFromRow(rows[0])
}

// Update implements Backend.
func (b *RESTBackend) Update(ctx context.Context, id int64, patch model.Patch) error {
	payload, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encoding patch: %w", err)
	}
	if _, err := b.do(ctx, http.MethodPatch, b.base+"?id=eq."+strconv.FormatInt(id, 10), payload, "return=minimal"); err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// Delete implements Backend.
func (b *RESTBackend) Delete(ctx context.Context, id int64) error {
	if _, err := b.do(ctx, http.MethodDelete, b.base+"?id=eq."+strconv.FormatInt(id, 10), nil, "return=minimal"); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

func (b *RESTBackend) do(ctx context.Context, method, target string, payload []byte, prefer string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", b.key)
	req.Header.Set("Authorization", "Bearer "+b.key)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}
