package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrTokenInvalid is returned by a Gateway when the push provider
// reports the device token as no longer registered. The service
// prunes such tokens from the user record.
var ErrTokenInvalid = errors.New("device token no longer registered")

// Gateway delivers one push message to one device token.
type Gateway interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// fcmGateway implements Gateway against the FCM HTTP v1 API.
type fcmGateway struct {
	projectID  string
	baseURL    string
	httpClient *http.Client
}

const fcmBaseURL = "https://fcm.googleapis.com"

// NewFCMGateway builds a Gateway authenticated with a Firebase
// service-account credentials JSON blob.
func NewFCMGateway(ctx context.Context, projectID string, credentialsJSON []byte) (Gateway, error) {
	if projectID == "" {
		return nil, errors.New("FCM project id is required")
	}
	cfg, err := google.JWTConfigFromJSON(credentialsJSON, "https://www.googleapis.com/auth/firebase.messaging")
	if err != nil {
		return nil, fmt.Errorf("failed to parse FCM credentials: %w", err)
	}
	client := oauth2.NewClient(ctx, cfg.TokenSource(ctx))
	client.Timeout = 10 * time.Second
	return &fcmGateway{projectID: projectID, baseURL: fcmBaseURL, httpClient: client}, nil
}

type fcmMessage struct {
	Message struct {
		Token        string            `json:"token"`
		Notification map[string]string `json:"notification"`
		Data         map[string]string `json:"data,omitempty"`
	} `json:"message"`
}

func (g *fcmGateway) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	var msg fcmMessage
	msg.Message.Token = token
	msg.Message.Notification = map[string]string{"title": title, "body": body}
	if data != nil {
		msg.Message.Data = data
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode FCM message: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/messages:send", g.baseURL, g.projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create FCM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send FCM request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	// FCM reports dead registrations as 404 with an UNREGISTERED error code
	if resp.StatusCode == http.StatusNotFound || strings.Contains(string(respBody), "UNREGISTERED") {
		return ErrTokenInvalid
	}
	return fmt.Errorf("FCM API returned non-success status: %d - %s", resp.StatusCode, string(respBody))
}
