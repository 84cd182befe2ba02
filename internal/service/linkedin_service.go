package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	config "socialdesk/configs"
	"socialdesk/internal/models"
	"socialdesk/internal/transfer"
)

type linkedinService struct {
	cfg    config.Config
	client *http.Client
}

func NewLinkedinService(cfg config.Config) Deliverer {
	return &linkedinService{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Deliver creates a UGC share for the organization. Attached media
// would need LinkedIn's upload-registration flow, which is not wired,
// so posts with media degrade to a text-only share.
func (li *linkedinService) Deliver(ctx context.Context, post *models.Post, account *models.SocialAccount) (string, error) {
	payload := map[string]any{
		"author":         "urn:li:organization:" + account.PlatformID,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary": map[string]any{
					"text": post.Content,
				},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := li.cfg.LinkedinAPIBase + "/ugcPosts"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := li.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("linkedin request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var apiErr transfer.LinkedinErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return "", fmt.Errorf("linkedin: %s", apiErr.Message)
		}
		return "", fmt.Errorf("linkedin: unexpected status %d", resp.StatusCode)
	}

	var out transfer.LinkedinPostResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", err
	}

	return out.ID, nil
}
