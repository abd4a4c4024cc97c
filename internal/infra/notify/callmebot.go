// Package notify holds the messaging bridges a notification can be delivered through.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"venue-booking/internal/pkg/errs"
)

var ErrBridgeRejected = errs.New("messaging bridge rejected the request")

const maxLoggedBody = 512

// CallMeBotSender relays a text to a WhatsApp number through the CallMeBot HTTP bridge.
type CallMeBotSender struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

func NewCallMeBotSender(client *http.Client, baseURL, apiKey string, logger *slog.Logger) *CallMeBotSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &CallMeBotSender{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

func (s *CallMeBotSender) Send(ctx context.Context, message, destination string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(message, destination), nil)
	if err != nil {
		return errs.Wrap(err, "build callmebot request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "callmebot request")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Warn("callmebot returned non-2xx",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return errs.Mark(fmt.Errorf("callmebot status %d", resp.StatusCode), ErrBridgeRejected)
	}

	s.logger.Debug("callmebot accepted message", slog.String("body", string(body)))
	return nil
}

// requestURL keeps the parameter order phone, text, apikey and encodes spaces as %20.
func (s *CallMeBotSender) requestURL(message, destination string) string {
	var b strings.Builder
	b.WriteString(s.baseURL)
	if strings.Contains(s.baseURL, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	b.WriteString("phone=")
	b.WriteString(encodeComponent(destination))
	b.WriteString("&text=")
	b.WriteString(encodeComponent(message))
	b.WriteString("&apikey=")
	b.WriteString(encodeComponent(s.apiKey))
	return b.String()
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
