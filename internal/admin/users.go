// Package admin backs the user management fragments of the admin panel.
// Users live in the local store under the same key the panel always used.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/banho/internal/content"
	"github.com/MrSnakeDoc/banho/internal/localstore"
	"github.com/MrSnakeDoc/banho/internal/logger"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// User is one panel account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

var rolePermissions = map[Role][]string{
	RoleAdmin:  {"users.manage", "content.create", "content.edit", "content.delete", "content.publish"},
	RoleEditor: {"content.create", "content.edit", "content.publish"},
}

// Permissions lists what a role may do. Unknown roles can only read.
func Permissions(r Role) []string {
	if p, ok := rolePermissions[r]; ok {
		return append([]string(nil), p...)
	}
	return []string{"content.view"}
}

// Service manages the stored user list.
type Service struct {
	mu    sync.Mutex
	store localstore.Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(store localstore.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: store, log: log, now: time.Now}
}

// SeedIfEmpty stores the given JSON user list unless users already exist.
// It reports whether the seed was written.
func (s *Service) SeedIfEmpty(ctx context.Context, raw []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing []User
	found, err := localstore.ReadJSON(ctx, s.store, localstore.AdminUsersKey, &existing)
	if err != nil {
		var malformed *content.MalformedLocalDataError
		if !errors.As(err, &malformed) {
			return false, err
		}
		s.log.Warn("replacing malformed admin users", logger.Error(err))
	}
	if found && len(existing) > 0 {
		return false, nil
	}

	var seed []User
	if err := json.Unmarshal(raw, &seed); err != nil {
		return false, fmt.Errorf("failed to decode admin users seed: %w", err)
	}
	now := s.now().UTC()
	for i := range seed {
		if seed[i].CreatedAt.IsZero() {
			seed[i].CreatedAt = now
		}
	}
	if err := localstore.WriteJSON(ctx, s.store, localstore.AdminUsersKey, seed); err != nil {
		return false, err
	}
	s.log.Info("admin users seeded", logger.Int("count", len(seed)))
	return true, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, content.ErrNotFound
}

func (s *Service) Activate(ctx context.Context, id string) (User, error) {
	return s.setActive(ctx, id, true)
}

func (s *Service) Deactivate(ctx context.Context, id string) (User, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.update(ctx, id, func(users []User, i int) []User {
		return append(users[:i], users[i+1:]...)
	})
}

func (s *Service) setActive(ctx context.Context, id string, active bool) (User, error) {
	var out User
	err := s.update(ctx, id, func(users []User, i int) []User {
		users[i].Active = active
		out = users[i]
		return users
	})
	return out, err
}

func (s *Service) update(ctx context.Context, id string, fn func([]User, int) []User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID == id {
			return localstore.WriteJSON(ctx, s.store, localstore.AdminUsersKey, fn(users, i))
		}
	}
	return content.ErrNotFound
}

// load reads the user list. Corrupt data reads as no users.
func (s *Service) load(ctx context.Context) ([]User, error) {
	users := []User{}
	_, err := localstore.ReadJSON(ctx, s.store, localstore.AdminUsersKey, &users)
	if err != nil {
		var malformed *content.MalformedLocalDataError
		if errors.As(err, &malformed) {
			s.log.Warn("discarding malformed admin users", logger.Error(err))
			return []User{}, nil
		}
		return nil, err
	}
	return users, nil
}
