package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"socialdesk/internal/models"
)

type fakePostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*models.Post

	updateStatusErr error

	// beforeUpdate runs inside Update with the lock held, letting a
	// test land a competing transition between a service's read and
	// its write.
	beforeUpdate func()
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{nextID: 1, posts: make(map[int64]*models.Post)}
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	cp := *post
	cp.ID = id
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.posts[id] = &cp
	return id, nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *post
	return &cp, nil
}

func (r *fakePostRepo) List(ctx context.Context, clientID int64, status string) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Post
	for _, post := range r.posts {
		if clientID != 0 && post.ClientID != clientID {
			continue
		}
		if status != "" && post.Status != status {
			continue
		}
		cp := *post
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePostRepo) ListRecentByClient(ctx context.Context, clientID int64, limit int) ([]*models.Post, error) {
	posts, err := r.List(ctx, clientID, "")
	if err != nil {
		return nil, err
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (r *fakePostRepo) ListDue(ctx context.Context, before time.Time) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Post
	for _, post := range r.posts {
		if post.Status != models.PostStatusScheduled || post.ScheduledAt == nil {
			continue
		}
		if post.ScheduledAt.Before(before) {
			cp := *post
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePostRepo) Update(ctx context.Context, post *models.Post, fromStatus string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.beforeUpdate != nil {
		r.beforeUpdate()
	}
	current, ok := r.posts[post.ID]
	if !ok || current.Status != fromStatus {
		return false, nil
	}
	cp := *post
	cp.UpdatedAt = time.Now()
	r.posts[post.ID] = &cp
	return true, nil
}

func (r *fakePostRepo) UpdateStatus(ctx context.Context, status string, postID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	post, ok := r.posts[postID]
	if !ok {
		return errors.New("post not found")
	}
	post.Status = status
	return nil
}

func (r *fakePostRepo) Approve(ctx context.Context, postID, approverID int64, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok || post.Status != models.PostStatusPendingApproval {
		return false, nil
	}
	post.Status = models.PostStatusApproved
	post.ApprovedBy = &approverID
	post.ApprovedAt = &at
	return true, nil
}

func (r *fakePostRepo) Reject(ctx context.Context, postID, rejecterID int64, reason string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok || post.Status != models.PostStatusPendingApproval {
		return false, nil
	}
	post.Status = models.PostStatusRejected
	post.RejectedBy = &rejecterID
	post.RejectedAt = &at
	post.RejectionReason = reason
	return true, nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

type fakeClientRepo struct {
	nextID  int64
	clients map[int64]*models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{nextID: 1, clients: make(map[int64]*models.Client)}
}

func (r *fakeClientRepo) add(name, industry string) *models.Client {
	client := &models.Client{ID: r.nextID, Name: name, Industry: industry, Timezone: "UTC"}
	r.clients[r.nextID] = client
	r.nextID++
	return client
}

func (r *fakeClientRepo) Create(ctx context.Context, client *models.Client) (int64, error) {
	cp := *client
	cp.ID = r.nextID
	r.clients[r.nextID] = &cp
	r.nextID++
	return cp.ID, nil
}

func (r *fakeClientRepo) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *client
	return &cp, nil
}

func (r *fakeClientRepo) List(ctx context.Context) ([]*models.Client, error) {
	var out []*models.Client
	for _, client := range r.clients {
		cp := *client
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *models.Client) error {
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

func (r *fakeClientRepo) Remove(ctx context.Context, id int64) error {
	delete(r.clients, id)
	return nil
}

type accessKey struct {
	userID   int64
	clientID int64
}

type fakeClientAccessRepo struct {
	grants map[accessKey]*models.ClientAccess
}

func newFakeClientAccessRepo() *fakeClientAccessRepo {
	return &fakeClientAccessRepo{grants: make(map[accessKey]*models.ClientAccess)}
}

func (r *fakeClientAccessRepo) grant(userID, clientID int64, level string) {
	r.grants[accessKey{userID, clientID}] = &models.ClientAccess{
		UserID:          userID,
		ClientID:        clientID,
		PermissionLevel: level,
	}
}

func (r *fakeClientAccessRepo) Upsert(ctx context.Context, ca *models.ClientAccess) error {
	cp := *ca
	r.grants[accessKey{ca.UserID, ca.ClientID}] = &cp
	return nil
}

func (r *fakeClientAccessRepo) Get(ctx context.Context, userID, clientID int64) (*models.ClientAccess, error) {
	grant, ok := r.grants[accessKey{userID, clientID}]
	if !ok {
		return nil, nil
	}
	cp := *grant
	return &cp, nil
}

func (r *fakeClientAccessRepo) ListByUser(ctx context.Context, userID int64) ([]*models.ClientAccess, error) {
	var out []*models.ClientAccess
	for key, grant := range r.grants {
		if key.userID == userID {
			cp := *grant
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeSocialAccountRepo struct {
	nextID   int64
	accounts map[int64]*models.SocialAccount
}

func newFakeSocialAccountRepo() *fakeSocialAccountRepo {
	return &fakeSocialAccountRepo{nextID: 1, accounts: make(map[int64]*models.SocialAccount)}
}

func (r *fakeSocialAccountRepo) add(clientID int64, platform, platformID, token string) *models.SocialAccount {
	account := &models.SocialAccount{
		ID:          r.nextID,
		ClientID:    clientID,
		Platform:    platform,
		PlatformID:  platformID,
		AccessToken: token,
	}
	r.accounts[r.nextID] = account
	r.nextID++
	return account
}

func (r *fakeSocialAccountRepo) Create(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	cp := *sa
	cp.ID = r.nextID
	r.accounts[r.nextID] = &cp
	r.nextID++
	return cp.ID, nil
}

func (r *fakeSocialAccountRepo) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *account
	return &cp, nil
}

func (r *fakeSocialAccountRepo) FindByClient(ctx context.Context, clientID int64, platform string) (*models.SocialAccount, error) {
	var found *models.SocialAccount
	for _, account := range r.accounts {
		if account.ClientID != clientID || account.Platform != platform {
			continue
		}
		if found == nil || account.ID < found.ID {
			found = account
		}
	}
	if found == nil {
		return nil, nil
	}
	cp := *found
	return &cp, nil
}

func (r *fakeSocialAccountRepo) ListInfoByClient(ctx context.Context, clientID int64) ([]*models.SocialAccount, error) {
	var out []*models.SocialAccount
	for _, account := range r.accounts {
		if account.ClientID == clientID {
			cp := *account
			cp.AccessToken = ""
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSocialAccountRepo) Exists(ctx context.Context, clientID int64, platform string) (bool, error) {
	account, err := r.FindByClient(ctx, clientID, platform)
	if err != nil {
		return false, err
	}
	return account != nil, nil
}

func (r *fakeSocialAccountRepo) Remove(ctx context.Context, id int64) error {
	delete(r.accounts, id)
	return nil
}

type fakePostingHistoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	entries []*models.PostingHistory
}

func newFakePostingHistoryRepo() *fakePostingHistoryRepo {
	return &fakePostingHistoryRepo{nextID: 1}
}

func (r *fakePostingHistoryRepo) Create(ctx context.Context, ph *models.PostingHistory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ph
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	r.nextID++
	r.entries = append(r.entries, &cp)
	return cp.ID, nil
}

func (r *fakePostingHistoryRepo) ListByPostID(ctx context.Context, postID int64) ([]*models.PostingHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PostingHistory
	for _, entry := range r.entries {
		if entry.PostID == postID {
			cp := *entry
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeAuditLogRepo struct {
	mu        sync.Mutex
	nextID    int64
	logs      []*models.AuditLog
	createErr error
}

func newFakeAuditLogRepo() *fakeAuditLogRepo {
	return &fakeAuditLogRepo{nextID: 1}
}

func (r *fakeAuditLogRepo) Create(ctx context.Context, entry *models.AuditLog) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return 0, r.createErr
	}
	cp := *entry
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	r.nextID++
	r.logs = append(r.logs, &cp)
	return cp.ID, nil
}

func (r *fakeAuditLogRepo) List(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.AuditLog, 0, len(r.logs))
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		cp := *r.logs[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAuditLogRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.logs)
}

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) add(email, password, role string) *models.User {
	user := &models.User{
		ID:       r.nextID,
		Email:    email,
		Password: password,
		Name:     email,
		Role:     role,
		IsActive: true,
	}
	r.users[r.nextID] = user
	r.nextID++
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	cp := *user
	cp.ID = r.nextID
	r.users[r.nextID] = &cp
	r.nextID++
	return cp.ID, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role string) ([]*models.User, error) {
	var out []*models.User
	for _, user := range r.users {
		if user.Role == role {
			cp := *user
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeDeliverer records delivery calls and returns a canned result.
type fakeDeliverer struct {
	mu       sync.Mutex
	calls    int
	lastPost *models.Post
	lastAcct *models.SocialAccount

	externalID string
	err        error
}

func (d *fakeDeliverer) Deliver(ctx context.Context, post *models.Post, account *models.SocialAccount) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	cp := *post
	d.lastPost = &cp
	ca := *account
	d.lastAcct = &ca
	if d.err != nil {
		return "", d.err
	}
	return d.externalID, nil
}
