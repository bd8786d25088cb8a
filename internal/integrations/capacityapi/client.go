package capacityapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBodySize ограничение на размер читаемого ответа
const maxBodySize = 4 << 20

// Client клиент для работы с capacity backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	recorder   Recorder
}

// NewClient создает новый экземпляр клиента capacity backend
func NewClient(baseURL string, timeout time.Duration, log Logger, recorder Recorder) *Client {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:      log,
		recorder: recorder,
	}
}

// ListCapacities получает все записи вместимости локации
func (c *Client) ListCapacities(ctx context.Context, locationID string) ([]Capacity, error) {
	query := url.Values{}
	query.Set("locationId", locationID)

	var capacities []Capacity
	if err := c.do(ctx, "list", http.MethodGet, "/capacities?"+query.Encode(), nil, &capacities); err != nil {
		return nil, err
	}
	if capacities == nil {
		capacities = []Capacity{}
	}

	c.log.Info("Fetched %d capacities for location=%s", len(capacities), locationID)
	return capacities, nil
}

// CreateCapacity создает одну запись вместимости
func (c *Client) CreateCapacity(ctx context.Context, req *CreateCapacityRequest) (*Capacity, error) {
	var created Capacity
	if err := c.do(ctx, "create", http.MethodPost, "/capacities", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCapacity частично обновляет запись вместимости
func (c *Client) UpdateCapacity(ctx context.Context, id string, req *UpdateCapacityRequest) (*Capacity, error) {
	var updated Capacity
	if err := c.do(ctx, "update", http.MethodPut, "/capacities/"+url.PathEscape(id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCapacity удаляет запись вместимости
func (c *Client) DeleteCapacity(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, "/capacities/"+url.PathEscape(id), nil, nil)
}

// BulkCreateCapacities создает записи для диапазона дней недели одной командой.
// Разбиение на записи выполняет backend.
func (c *Client) BulkCreateCapacities(ctx context.Context, req *BulkCreateCapacityRequest) ([]Capacity, error) {
	var created []Capacity
	if err := c.do(ctx, "bulk_create", http.MethodPost, "/capacities/bulk", req, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// SubmitDonationRequest отправляет заявку на донацию
func (c *Client) SubmitDonationRequest(ctx context.Context, req *DonationRequest) (*DonationRequestResult, error) {
	var result DonationRequestResult
	if err := c.do(ctx, "submit_donation", http.MethodPost, "/donation-requests", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, body, out interface{}) error {
	start := time.Now()
	err := c.doRequest(ctx, method, path, body, out)
	c.recorder.ObserveCapacityAPI(operation, outcomeOf(err), time.Since(start))
	if err != nil {
		c.log.Warn("Capacity API %s %s failed: %v", method, path, err)
	}
	return err
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
	}

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	default:
		return NewAPIError(resp.StatusCode, extractMessage(resp.StatusCode, data))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	// Парсим ответ
	if err := decodeData(data, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// decodeData разбирает тело ответа, поддерживая обертку {"data": ...}
func decodeData(data []byte, out interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(data, out)
}

// extractMessage достает сообщение сервера без изменений
func extractMessage(status int, data []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(data, &resp); err == nil {
		switch msg := resp.Message.(type) {
		case string:
			if msg != "" {
				return msg
			}
		case []interface{}:
			parts := make([]string, 0, len(msg))
			for _, m := range msg {
				parts = append(parts, fmt.Sprint(m))
			}
			if len(parts) > 0 {
				return strings.Join(parts, "; ")
			}
		}
		if resp.Error != "" {
			return resp.Error
		}
	}

	if text := strings.TrimSpace(string(data)); text != "" {
		return text
	}
	return http.StatusText(status)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict):
		return "rejected"
	default:
		return "error"
	}
}
