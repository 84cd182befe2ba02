package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "socialdesk/configs"
	"socialdesk/internal/models"
	"socialdesk/internal/transfer"
	"socialdesk/pkg/apperrors"
	"socialdesk/pkg/utils"
)

type accountFixture struct {
	svc      AccountService
	accounts *fakeSocialAccountRepo
	grants   *fakeClientAccessRepo
	client   *models.Client
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	accounts := newFakeSocialAccountRepo()
	clients := newFakeClientRepo()
	grants := newFakeClientAccessRepo()
	access := NewAccessService(grants)
	cfg := config.Config{TokenCryptKey: testCryptKey}

	return &accountFixture{
		svc:      NewAccountService(cfg, access, accounts, clients),
		accounts: accounts,
		grants:   grants,
		client:   clients.add("Acme", "Tech"),
	}
}

func TestConnectAccountEncryptsToken(t *testing.T) {
	f := newAccountFixture(t)

	account, err := f.svc.Create(context.Background(), adminActor, &transfer.AccountCreation{
		ClientID:    f.client.ID,
		Platform:    models.PlatformFacebook,
		PlatformID:  "page-1",
		AccessToken: "plain-token",
		ProfileName: "Acme Page",
	})
	require.NoError(t, err)
	assert.Empty(t, account.AccessToken)

	stored, err := f.accounts.GetByID(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotEqual(t, "plain-token", stored.AccessToken)

	decrypted, err := utils.Decrypt(stored.AccessToken, []byte(testCryptKey))
	require.NoError(t, err)
	assert.Equal(t, "plain-token", decrypted)
}

func TestConnectAccountDuplicatePlatform(t *testing.T) {
	f := newAccountFixture(t)
	f.accounts.add(f.client.ID, models.PlatformFacebook, "page-1", "enc")

	_, err := f.svc.Create(context.Background(), adminActor, &transfer.AccountCreation{
		ClientID:    f.client.ID,
		Platform:    models.PlatformFacebook,
		PlatformID:  "page-2",
		AccessToken: "t",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.Conflict, apperrors.KindOf(err))
}

func TestConnectAccountValidation(t *testing.T) {
	f := newAccountFixture(t)

	t.Run("invalid platform", func(t *testing.T) {
		_, err := f.svc.Create(context.Background(), adminActor, &transfer.AccountCreation{
			ClientID:    f.client.ID,
			Platform:    "MYSPACE",
			PlatformID:  "x",
			AccessToken: "t",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.InvalidArgument, apperrors.KindOf(err))
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := f.svc.Create(context.Background(), adminActor, &transfer.AccountCreation{
			ClientID:    999,
			Platform:    models.PlatformFacebook,
			PlatformID:  "x",
			AccessToken: "t",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
	})
}

func TestConnectAccountNeedsFullAccess(t *testing.T) {
	f := newAccountFixture(t)
	f.grants.grant(employeeActor.UserID, f.client.ID, models.PermissionContent)

	_, err := f.svc.Create(context.Background(), employeeActor, &transfer.AccountCreation{
		ClientID:    f.client.ID,
		Platform:    models.PlatformFacebook,
		PlatformID:  "page-1",
		AccessToken: "t",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.Forbidden, apperrors.KindOf(err))
}

func TestListAccountsOmitsTokens(t *testing.T) {
	f := newAccountFixture(t)
	f.accounts.add(f.client.ID, models.PlatformFacebook, "page-1", "enc")
	f.grants.grant(employeeActor.UserID, f.client.ID, models.PermissionAnalytics)

	accounts, err := f.svc.List(context.Background(), employeeActor, f.client.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Empty(t, accounts[0].AccessToken)
}

func TestDisconnectAccount(t *testing.T) {
	f := newAccountFixture(t)
	account := f.accounts.add(f.client.ID, models.PlatformFacebook, "page-1", "enc")

	require.NoError(t, f.svc.Remove(context.Background(), adminActor, account.ID))

	err := f.svc.Remove(context.Background(), adminActor, account.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
