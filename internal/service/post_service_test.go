package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdesk/internal/models"
	"socialdesk/internal/transfer"
	"socialdesk/pkg/apperrors"
)

type postFixture struct {
	svc    PostService
	posts  *fakePostRepo
	client *models.Client
	grants *fakeClientAccessRepo
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()

	posts := newFakePostRepo()
	clients := newFakeClientRepo()
	grants := newFakeClientAccessRepo()
	history := newFakePostingHistoryRepo()

	client := clients.add("Acme", "Tech")
	access := NewAccessService(grants)

	return &postFixture{
		svc:    NewPostService(access, posts, clients, history),
		posts:  posts,
		client: client,
		grants: grants,
	}
}

var (
	adminActor    = transfer.Actor{UserID: 1, Role: models.RoleSuperAdmin}
	employeeActor = transfer.Actor{UserID: 2, Role: models.RoleEmployee}
)

func TestCreatePostStatusResolution(t *testing.T) {
	future := time.Now().Add(2 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name      string
		actor     transfer.Actor
		scheduled string
		want      string
	}{
		{"no schedule is a draft", adminActor, "", models.PostStatusDraft},
		{"admin schedule goes straight to scheduled", adminActor, future, models.PostStatusScheduled},
		{"employee schedule needs approval", employeeActor, future, models.PostStatusPendingApproval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostFixture(t)
			f.grants.grant(employeeActor.UserID, f.client.ID, models.PermissionContent)

			post, err := f.svc.Create(context.Background(), tt.actor, &transfer.PostCreation{
				ClientID:    f.client.ID,
				Content:     "hello world",
				MediaType:   models.MediaTypeText,
				Platforms:   []string{models.PlatformFacebook},
				ScheduledAt: tt.scheduled,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, post.Status)
			assert.Equal(t, tt.actor.UserID, post.CreatorID)
		})
	}
}

func TestCreatePostValidation(t *testing.T) {
	f := newPostFixture(t)

	tests := []struct {
		name string
		req  transfer.PostCreation
	}{
		{"empty content", transfer.PostCreation{ClientID: f.client.ID, Content: "  ", MediaType: models.MediaTypeText}},
		{"unknown media type", transfer.PostCreation{ClientID: f.client.ID, Content: "x", MediaType: "AUDIO"}},
		{"unknown platform", transfer.PostCreation{ClientID: f.client.ID, Content: "x", MediaType: models.MediaTypeText, Platforms: []string{"MYSPACE"}}},
		{"bad schedule format", transfer.PostCreation{ClientID: f.client.ID, Content: "x", MediaType: models.MediaTypeText, ScheduledAt: "tomorrow"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), adminActor, &tt.req)
			require.Error(t, err)
			assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
		})
	}
}

func TestCreatePostUnknownClient(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Create(context.Background(), adminActor, &transfer.PostCreation{
		ClientID:  999,
		Content:   "x",
		MediaType: models.MediaTypeText,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestApproveRejectLifecycle(t *testing.T) {
	f := newPostFixture(t)
	f.grants.grant(employeeActor.UserID, f.client.ID, models.PermissionContent)

	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	post, err := f.svc.Create(context.Background(), employeeActor, &transfer.PostCreation{
		ClientID:    f.client.ID,
		Content:     "pending content",
		MediaType:   models.MediaTypeText,
		Platforms:   []string{models.PlatformFacebook},
		ScheduledAt: future,
	})
	require.NoError(t, err)
	require.Equal(t, models.PostStatusPendingApproval, post.Status)

	approved, err := f.svc.Approve(context.Background(), adminActor, post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, adminActor.UserID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	// A second decision on the same post loses the race.
	_, err = f.svc.Reject(context.Background(), adminActor, post.ID, "too late")
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))

	final, err := f.posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusApproved, final.Status)
	assert.Empty(t, final.RejectionReason)
}

func TestRejectRequiresReason(t *testing.T) {
	f := newPostFixture(t)
	f.grants.grant(employeeActor.UserID, f.client.ID, models.PermissionContent)

	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	post, err := f.svc.Create(context.Background(), employeeActor, &transfer.PostCreation{
		ClientID:    f.client.ID,
		Content:     "pending content",
		MediaType:   models.MediaTypeText,
		ScheduledAt: future,
	})
	require.NoError(t, err)

	_, err = f.svc.Reject(context.Background(), adminActor, post.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))

	unchanged, err := f.posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPendingApproval, unchanged.Status)
}

func TestRejectRecordsReason(t *testing.T) {
	f := newPostFixture(t)
	f.grants.grant(employeeActor.UserID, f.client.ID, models.PermissionContent)

	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	post, err := f.svc.Create(context.Background(), employeeActor, &transfer.PostCreation{
		ClientID:    f.client.ID,
		Content:     "pending content",
		MediaType:   models.MediaTypeText,
		ScheduledAt: future,
	})
	require.NoError(t, err)

	rejected, err := f.svc.Reject(context.Background(), adminActor, post.ID, "off brand")
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusRejected, rejected.Status)
	assert.Equal(t, "off brand", rejected.RejectionReason)
	require.NotNil(t, rejected.RejectedBy)
	assert.Equal(t, adminActor.UserID, *rejected.RejectedBy)
}

func TestApproveDeniedForEmployee(t *testing.T) {
	f := newPostFixture(t)
	f.grants.grant(employeeActor.UserID, f.client.ID, models.PermissionFull)

	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	post, err := f.svc.Create(context.Background(), employeeActor, &transfer.PostCreation{
		ClientID:    f.client.ID,
		Content:     "pending content",
		MediaType:   models.MediaTypeText,
		ScheduledAt: future,
	})
	require.NoError(t, err)

	// Full client access is not enough, approval is an admin call.
	_, err = f.svc.Approve(context.Background(), employeeActor, post.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))
}

func TestPostLookupHidesOtherClientsPosts(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), adminActor, &transfer.PostCreation{
		ClientID:  f.client.ID,
		Content:   "private to another client",
		MediaType: models.MediaTypeText,
	})
	require.NoError(t, err)

	// An employee with no grant on the client gets the same answer for
	// an existing post and for an id that was never assigned.
	outsider := transfer.Actor{UserID: 7, Role: models.RoleEmployee}

	_, existingErr := f.svc.Info(context.Background(), outsider, post.ID)
	require.Error(t, existingErr)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(existingErr))

	_, missingErr := f.svc.Info(context.Background(), outsider, 9999)
	require.Error(t, missingErr)
	assert.Equal(t, apperrors.KindOf(missingErr), apperrors.KindOf(existingErr))
	assert.Equal(t, missingErr.Error(), existingErr.Error())

	content := "edit attempt"
	_, err = f.svc.Update(context.Background(), outsider, post.ID, &transfer.PostUpdate{Content: &content})
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	_, err = f.svc.Approve(context.Background(), outsider, post.ID)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	err = f.svc.Remove(context.Background(), outsider, post.ID)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestUpdateTerminalPostFails(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), adminActor, &transfer.PostCreation{
		ClientID:  f.client.ID,
		Content:   "published content",
		MediaType: models.MediaTypeText,
	})
	require.NoError(t, err)
	require.NoError(t, f.posts.UpdateStatus(context.Background(), models.PostStatusPublished, post.ID))

	content := "edited"
	_, err = f.svc.Update(context.Background(), adminActor, post.ID, &transfer.PostUpdate{Content: &content})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))
}

func TestUpdateAppliesPatch(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), adminActor, &transfer.PostCreation{
		ClientID:  f.client.ID,
		Content:   "original",
		MediaType: models.MediaTypeText,
	})
	require.NoError(t, err)

	content := "revised"
	mediaType := models.MediaTypeImage
	urls := []string{"https://cdn.example.com/a.jpg"}
	updated, err := f.svc.Update(context.Background(), adminActor, post.ID, &transfer.PostUpdate{
		Content:   &content,
		MediaType: &mediaType,
		MediaURLs: &urls,
	})
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Content)
	assert.Equal(t, models.MediaTypeImage, updated.MediaType)
	assert.Equal(t, urls, updated.MediaURLs)
	assert.Equal(t, models.PostStatusDraft, updated.Status)
}

func TestUpdateLosesRaceToDecision(t *testing.T) {
	f := newPostFixture(t)
	f.grants.grant(employeeActor.UserID, f.client.ID, models.PermissionContent)

	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	post, err := f.svc.Create(context.Background(), employeeActor, &transfer.PostCreation{
		ClientID:    f.client.ID,
		Content:     "pending content",
		MediaType:   models.MediaTypeText,
		ScheduledAt: future,
	})
	require.NoError(t, err)
	require.Equal(t, models.PostStatusPendingApproval, post.Status)

	// A reject lands between the editor's read and write.
	f.posts.beforeUpdate = func() {
		stored := f.posts.posts[post.ID]
		stored.Status = models.PostStatusRejected
		stored.RejectionReason = "off brand"
	}

	content := "edited after rejection"
	_, err = f.svc.Update(context.Background(), employeeActor, post.ID, &transfer.PostUpdate{Content: &content})
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))

	f.posts.beforeUpdate = nil
	final, err := f.posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusRejected, final.Status)
	assert.Equal(t, "pending content", final.Content)
}

func TestForPublishStateGate(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), adminActor, &transfer.PostCreation{
		ClientID:  f.client.ID,
		Content:   "draft",
		MediaType: models.MediaTypeText,
	})
	require.NoError(t, err)

	got, err := f.svc.ForPublish(context.Background(), adminActor, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	require.NoError(t, f.posts.UpdateStatus(context.Background(), models.PostStatusRejected, post.ID))
	_, err = f.svc.ForPublish(context.Background(), adminActor, post.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.InvalidState, apperrors.KindOf(err))
}

func TestRemovePost(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Create(context.Background(), adminActor, &transfer.PostCreation{
		ClientID:  f.client.ID,
		Content:   "short lived",
		MediaType: models.MediaTypeText,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Remove(context.Background(), adminActor, post.ID))

	_, err = f.svc.Info(context.Background(), adminActor, post.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
