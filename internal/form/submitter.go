package form

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/provtrack/bidwatch/internal/config"
	"github.com/provtrack/bidwatch/internal/model"
	"github.com/provtrack/bidwatch/internal/service"
)

// ConfigFrom maps the service settings onto the workflow configuration.
func ConfigFrom(cfg config.SubmitConfig) Config {
	return Config{
		SubmitTimeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		RetryOnce:     cfg.RetryOnce,
	}
}

// APISubmitter sends drafts to the contract creation endpoint. A 422
// response with per-field messages comes back as fieldErrors; anything
// the server did not accept or reject cleanly is a transport error.
type APISubmitter struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewAPISubmitter(baseURL, token string) *APISubmitter {
	return &APISubmitter{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{},
	}
}

func (s *APISubmitter) Submit(ctx context.Context, draft service.ContractDraft) (*model.Contract, map[string]string, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, nil, fmt.Errorf("encode draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/contracts", bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var contract model.Contract
		if err := json.NewDecoder(resp.Body).Decode(&contract); err != nil {
			return nil, nil, fmt.Errorf("decode contract: %w", err)
		}
		return &contract, nil, nil
	case http.StatusUnprocessableEntity:
		var rejection struct {
			Errors map[string]string `json:"errors"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&rejection); err != nil || len(rejection.Errors) == 0 {
			return nil, nil, fmt.Errorf("submission rejected with status %d", resp.StatusCode)
		}
		return nil, rejection.Errors, nil
	default:
		return nil, nil, fmt.Errorf("submission failed with status %d", resp.StatusCode)
	}
}
