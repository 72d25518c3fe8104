package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
	"github.com/oksasatya/campus-doctor-directory/internal/domain/repository"
)

// UserRepository is an in-memory repository.UserRepository. Any *Func field
// that is set replaces the in-memory behavior of that method.
type UserRepository struct {
	CreateFunc       func(ctx context.Context, u *entity.User) error
	GetByEmailFunc   func(ctx context.Context, email string) (*entity.User, error)
	MarkVerifiedFunc func(ctx context.Context, email, code string) (*entity.User, error)

	mu     sync.Mutex
	nextID int64
	users  map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: map[string]entity.User{}}
}

func (m *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return repository.ErrDuplicate
	}
	m.nextID++
	u.ID = m.nextID
	u.IsVerified = false
	u.CreatedAt = time.Now()
	m.users[u.Email] = *u
	return nil
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (m *UserRepository) MarkVerified(ctx context.Context, email, code string) (*entity.User, error) {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, email, code)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok || u.VerificationCode != code {
		return nil, repository.ErrNotFound
	}
	u.IsVerified = true
	m.users[email] = u
	return &u, nil
}

// Count returns the number of stored accounts.
func (m *UserRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

var _ repository.UserRepository = (*UserRepository)(nil)
