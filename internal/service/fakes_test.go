package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"storefront-server/internal/config"
	"storefront-server/internal/interfaces"
	"storefront-server/internal/models"

	"github.com/google/uuid"
)

// In-memory двойники репозиториев и мейлера для unit-тестов сервисов.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User

	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

var _ interfaces.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return models.ErrUserAlreadyExists
		}
		if user.Username != "" && existing.Username == user.Username {
			return models.ErrUsernameTaken
		}
		if existing.Slug == user.Slug {
			return models.ErrUserAlreadyExists
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserRepo) GetUserBySlug(_ context.Context, slug string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Slug == slug {
			clone := *user
			return &clone, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context, page, limit int, search string) ([]models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := make([]models.User, 0, len(f.users))
	for _, user := range f.users {
		if search == "" || strings.Contains(strings.ToLower(user.Name), strings.ToLower(search)) {
			matched = append(matched, *user)
		}
	}
	count := int64(len(matched))
	_, offset, _ := models.ClampPage(page, limit, count)
	if offset >= len(matched) {
		return []models.User{}, count, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], count, nil
}

func (f *fakeUserRepo) UpdateUserBySlug(_ context.Context, slug string, upd models.UserUpdate, newSlug string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Slug != slug {
			continue
		}
		if upd.Name != nil {
			user.Name = *upd.Name
		}
		if upd.Username != nil {
			user.Username = *upd.Username
		}
		if newSlug != "" {
			user.Slug = newSlug
		}
		if upd.Address != nil {
			user.Address = *upd.Address
		}
		if upd.Phone != nil {
			user.Phone = *upd.Phone
		}
		if upd.Image != nil {
			user.Image = *upd.Image
		}
		user.UpdatedAt = time.Now()
		clone := *user
		return &clone, nil
	}
	return nil, models.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePasswordHashByEmail(_ context.Context, email, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return models.ErrUserNotFound
}

func (f *fakeUserRepo) SetUserBanStatus(_ context.Context, userID uuid.UUID, isBanned bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[userID]; ok {
		user.IsBanned = isBanned
		return nil
	}
	return models.ErrUserNotFound
}

func (f *fakeUserRepo) DeleteUserBySlug(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, user := range f.users {
		if user.Slug == slug {
			delete(f.users, id)
			return nil
		}
	}
	return models.ErrUserNotFound
}

type sentMail struct {
	To      string
	Subject string
	HTML    string
}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	failWith error
}

var _ interfaces.Mailer = (*fakeMailer)(nil)

func (f *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, HTML: html})
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func testConfig() *config.Config {
	return &config.Config{
		Env:                "development",
		PublicURL:          "http://localhost:3000",
		SessionSecret:      "session-secret",
		ActivationSecret:   "activation-secret",
		PasswordPepper:     "pepper",
		SessionTokenTTL:    15 * time.Minute,
		ActivationTokenTTL: 10 * time.Minute,
		ResetTokenTTL:      10 * time.Minute,
		DefaultUserImage:   "public/images/users/default.png",
	}
}

var (
	errRepoDown = errors.New("repository unavailable")
	errSMTPDown = errors.New("smtp relay unavailable")
)
