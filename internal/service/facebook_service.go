package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	config "socialdesk/configs"
	"socialdesk/internal/models"
	"socialdesk/internal/transfer"
)

type facebookService struct {
	cfg    config.Config
	client *http.Client
}

func NewFacebookService(cfg config.Config) Deliverer {
	return &facebookService{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Deliver posts to the page's feed. Single images go through /photos;
// video upload is not wired, so video posts degrade to a text update.
func (fb *facebookService) Deliver(ctx context.Context, post *models.Post, account *models.SocialAccount) (string, error) {
	data := url.Values{}
	data.Set("access_token", account.AccessToken)

	endpoint := fmt.Sprintf("%s/%s/feed", fb.cfg.FacebookAPIBase, account.PlatformID)

	if post.MediaType == models.MediaTypeImage && len(post.MediaURLs) > 0 {
		endpoint = fmt.Sprintf("%s/%s/photos", fb.cfg.FacebookAPIBase, account.PlatformID)
		data.Set("url", post.MediaURLs[0])
		data.Set("caption", post.Content)
	} else {
		data.Set("message", post.Content)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := fb.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("facebook request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr transfer.FacebookErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("facebook: %s", apiErr.Error.Message)
		}
		return "", fmt.Errorf("facebook: unexpected status %d", resp.StatusCode)
	}

	var out transfer.FacebookPostResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}

	if out.PostID != "" {
		return out.PostID, nil
	}
	return out.ID, nil
}
