package sync

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

// Transport delivers a serialized payload to the paired peers over two
// independent channels. Neither call is ordered relative to the other
// and neither aborts on the other's failure; the agent invokes both per
// attempt.
type Transport interface {
	// SendData writes the payload as a bulk data object: one write per
	// known peer plus one broadcast write.
	SendData(ctx context.Context, payload []byte) error
	// SendMessage pushes the payload as a message to each known peer.
	SendMessage(ctx context.Context, payload []byte) error
}

// HTTPTransport posts the payload to each peer's /data and /message
// endpoints. Best effort: per-peer errors are collected, not fatal.
type HTTPTransport struct {
	Peers     []string // base URLs
	Broadcast string   // optional broadcast base URL for the data channel
	Client    *http.Client
}

func (t *HTTPTransport) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return http.DefaultClient
}

func (t *HTTPTransport) SendData(ctx context.Context, payload []byte) error {
	targets := append([]string{}, t.Peers...)
	if t.Broadcast != "" {
		targets = append(targets, t.Broadcast)
	}
	return t.post(ctx, targets, "/data", payload)
}

func (t *HTTPTransport) SendMessage(ctx context.Context, payload []byte) error {
	return t.post(ctx, t.Peers, "/message", payload)
}

func (t *HTTPTransport) post(ctx context.Context, targets []string, path string, payload []byte) error {
	var firstErr error
	for _, base := range targets {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+path, bytes.NewReader(payload))
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client().Do(req)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		resp.Body.Close()
		if resp.StatusCode >= 400 && firstErr == nil {
			firstErr = fmt.Errorf("peer %s%s: status %d", base, path, resp.StatusCode)
		}
	}
	return firstErr
}
