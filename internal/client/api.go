package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fieldops/internal/delivery/http/response"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/errors"
	"fieldops/internal/usecase"
)

// API is the REST side of the client: the source of truth fetched on
// connect and the channel for mutations.
type API struct {
	baseURL  string
	identity Identity
	http     *http.Client
}

// NewAPI creates a REST client that identifies itself with gateway headers.
func NewAPI(baseURL string, identity Identity, timeout time.Duration) *API {
	return &API{
		baseURL:  strings.TrimRight(baseURL, "/"),
		identity: identity,
		http:     &http.Client{Timeout: timeout},
	}
}

// PendingRequests fetches REQUESTED discounts (administrators only).
func (a *API) PendingRequests(ctx context.Context) ([]*entity.DiscountRequest, error) {
	var out []*entity.DiscountRequest
	if err := a.do(ctx, http.MethodGet, "/discounts/requests/pending", nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Inbox fetches the caller's notifications.
func (a *API) Inbox(ctx context.Context, limit int) (*usecase.Inbox, error) {
	path := "/notifications"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var out usecase.Inbox
	if err := a.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SubmitDiscount files a discount request as the client's field agent.
func (a *API) SubmitDiscount(ctx context.Context, clientID string, percentage float64, justification string) (*entity.DiscountRequest, error) {
	body := usecase.SubmitDiscountInput{
		ClientID:      clientID,
		Percentage:    &percentage,
		Justification: justification,
	}

	var out entity.DiscountRequest
	if err := a.do(ctx, http.MethodPost, "/discounts/requests", body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request body")
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header = a.identity.header()
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return errors.Wrap(domainerrors.ErrTransientNetwork, err.Error())
	}
	defer resp.Body.Close()

	var envelope struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrapf(err, "decode %s %s response", method, path)
	}

	if !envelope.Success {
		code, details := "", ""
		if envelope.Error != nil {
			code, details = envelope.Error.Code, envelope.Error.Details
		}

		return domainerrors.NewBaseError(resp.StatusCode, code, envelope.Message, details)
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}

	return errors.Wrapf(json.Unmarshal(envelope.Data, out), "decode %s %s data", method, path)
}
