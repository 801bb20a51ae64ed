// Package sms provides delivery adapters for one-time codes.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/logger"
	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

// LogSender writes messages to the log instead of delivering them. Used in
// development where no gateway is configured.
type LogSender struct {
	logger *logger.Logger
}

var _ model.SMSSender = (*LogSender)(nil)

func NewLogSender(logger *logger.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, mobile, message string) error {
	s.logger.Info("SMS sender: delivery skipped, logging only",
		"mobile", mobile,
		"message", message)
	return nil
}

// GatewaySender delivers messages through an HTTP SMS gateway with an API
// key.
type GatewaySender struct {
	url    string
	apiKey string
	sender string
	client *http.Client
	logger *logger.Logger
}

var _ model.SMSSender = (*GatewaySender)(nil)

func NewGatewaySender(url, apiKey, sender string, logger *logger.Logger) *GatewaySender {
	return &GatewaySender{
		url:    url,
		apiKey: apiKey,
		sender: sender,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type gatewayRequest struct {
	Receptor string `json:"receptor"`
	Sender   string `json:"sender"`
	Message  string `json:"message"`
}

func (s *GatewaySender) Send(ctx context.Context, mobile, message string) error {
	body, err := json.Marshal(gatewayRequest{
		Receptor: mobile,
		Sender:   s.sender,
		Message:  message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "ApiKey "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sms gateway: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.logger.Error("SMS sender: failed to close gateway response body", "error", err.Error())
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	return nil
}
