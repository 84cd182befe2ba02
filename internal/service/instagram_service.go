package service

import (
	"context"
	"encoding/json"
	"errors"
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

type instagramService struct {
	cfg    config.Config
	client *http.Client
}

func NewInstagramService(cfg config.Config) Deliverer {
	return &instagramService{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Deliver publishes through the two-step container flow: create a media
// container, then publish it. Instagram has no text-only post type, so
// a post without media is a delivery error rather than a degrade.
func (ig *instagramService) Deliver(ctx context.Context, post *models.Post, account *models.SocialAccount) (string, error) {
	if len(post.MediaURLs) == 0 {
		return "", errors.New("instagram requires at least one media url")
	}

	containerID, err := ig.createContainer(ctx, post, account)
	if err != nil {
		return "", err
	}

	return ig.publishContainer(ctx, account, containerID)
}

func (ig *instagramService) createContainer(ctx context.Context, post *models.Post, account *models.SocialAccount) (string, error) {
	data := url.Values{}
	data.Set("access_token", account.AccessToken)
	data.Set("caption", post.Content)

	if post.MediaType == models.MediaTypeVideo {
		data.Set("media_type", "REELS")
		data.Set("video_url", post.MediaURLs[0])
	} else {
		data.Set("image_url", post.MediaURLs[0])
	}

	endpoint := fmt.Sprintf("%s/%s/media", ig.cfg.InstagramAPIBase, account.PlatformID)

	body, err := ig.post(ctx, endpoint, data)
	if err != nil {
		return "", err
	}

	var container transfer.InstagramContainerResponse
	if err := json.Unmarshal(body, &container); err != nil {
		return "", err
	}
	if container.ID == "" {
		return "", errors.New("instagram: empty container id")
	}

	return container.ID, nil
}

func (ig *instagramService) publishContainer(ctx context.Context, account *models.SocialAccount, containerID string) (string, error) {
	data := url.Values{}
	data.Set("access_token", account.AccessToken)
	data.Set("creation_id", containerID)

	endpoint := fmt.Sprintf("%s/%s/media_publish", ig.cfg.InstagramAPIBase, account.PlatformID)

	body, err := ig.post(ctx, endpoint, data)
	if err != nil {
		return "", err
	}

	var published transfer.InstagramPublishResponse
	if err := json.Unmarshal(body, &published); err != nil {
		return "", err
	}

	return published.ID, nil
}

func (ig *instagramService) post(ctx context.Context, endpoint string, data url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ig.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("instagram request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr transfer.FacebookErrorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("instagram: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("instagram: unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
