// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-admin-auth/internal/store"
	"github.com/MKhiriev/go-admin-auth/models"
)

// memStore is an in-memory store.Transactor. Every WithinTx call works on a
// copy of the state that replaces the committed state only when fn returns
// nil, so a failed call leaves no trace.
type memStore struct {
	mu    sync.Mutex
	state *memState
	// commits counts successful transactions.
	commits int
}

type pair struct{ a, b int64 }

type memState struct {
	nextID int64

	users           map[int64]models.User
	roles           map[int64]models.Role
	permissions     map[int64]models.Permission
	userRoles       map[pair]struct{}
	rolePermissions map[pair]struct{}
	tokens          map[int64]models.RefreshToken
}

func newMemStore() *memStore {
	return &memStore{state: &memState{
		users:           map[int64]models.User{},
		roles:           map[int64]models.Role{},
		permissions:     map[int64]models.Permission{},
		userRoles:       map[pair]struct{}{},
		rolePermissions: map[pair]struct{}{},
		tokens:          map[int64]models.RefreshToken{},
	}}
}

func (s *memState) clone() *memState {
	return &memState{
		nextID:          s.nextID,
		users:           maps.Clone(s.users),
		roles:           maps.Clone(s.roles),
		permissions:     maps.Clone(s.permissions),
		userRoles:       maps.Clone(s.userRoles),
		rolePermissions: maps.Clone(s.rolePermissions),
		tokens:          maps.Clone(s.tokens),
	}
}

func (s *memState) id() int64 {
	s.nextID++
	return s.nextID
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, uow store.UnitOfWork) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	draft := m.state.clone()
	if err := fn(ctx, &memUoW{s: draft}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.state = draft
	m.commits++
	return nil
}

// snapshot returns the committed state for assertions.
func (m *memStore) snapshot() *memState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// seed runs fn against the committed state outside of any transaction.
func (m *memStore) seed(fn func(uow store.UnitOfWork)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&memUoW{s: m.state})
}

type memUoW struct{ s *memState }

func (u *memUoW) Users() store.UserRepository { return memUsers{u.s} }
func (u *memUoW) Roles() store.RoleRepository { return memRoles{u.s} }
func (u *memUoW) Permissions() store.PermissionRepository { return memPermissions{u.s} }
func (u *memUoW) RefreshTokens() store.RefreshTokenRepository { return memTokens{u.s} }

// ── users ─────────────────────────────────────────────────────────────────────

type memUsers struct{ s *memState }

func (r memUsers) Create(_ context.Context, user models.User) (models.User, error) {
	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return models.User{}, store.ErrAlreadyExists
		}
	}
	user.UserID = r.s.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.UserID] = user
	return user, nil
}

func (r memUsers) GetByID(_ context.Context, userID int64) (models.User, error) {
	u, ok := r.s.users[userID]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (r memUsers) Update(_ context.Context, user models.User) (models.User, error) {
	existing, ok := r.s.users[user.UserID]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	user.Username = existing.Username
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	r.s.users[user.UserID] = user
	return user, nil
}

func (r memUsers) Delete(_ context.Context, userID int64) error {
	if _, ok := r.s.users[userID]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.users, userID)
	for p := range r.s.userRoles {
		if p.a == userID {
			delete(r.s.userRoles, p)
		}
	}
	for id, t := range r.s.tokens {
		if t.UserID == userID {
			delete(r.s.tokens, id)
		}
	}
	return nil
}

func (r memUsers) Search(_ context.Context, query models.UserSearchQuery) ([]models.User, int64, error) {
	var matched []models.User
	needle := strings.ToLower(query.Search)
	for _, u := range r.s.users {
		if query.IsActive != nil && u.IsActive != *query.IsActive {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(u.Username+" "+u.Email+" "+u.FullName), needle) {
			continue
		}
		matched = append(matched, u)
	}
	slices.SortFunc(matched, func(a, b models.User) int { return int(a.UserID - b.UserID) })

	total := int64(len(matched))
	start := min(query.Offset(), len(matched))
	end := min(start+query.PageSize, len(matched))
	return matched[start:end], total, nil
}

// ── roles ─────────────────────────────────────────────────────────────────────

type memRoles struct{ s *memState }

func (r memRoles) Create(_ context.Context, role models.Role) (models.Role, error) {
	for _, existing := range r.s.roles {
		if existing.Name == role.Name {
			return models.Role{}, store.ErrAlreadyExists
		}
	}
	role.RoleID = r.s.id()
	r.s.roles[role.RoleID] = role
	return role, nil
}

func (r memRoles) GetByID(_ context.Context, roleID int64) (models.Role, error) {
	role, ok := r.s.roles[roleID]
	if !ok {
		return models.Role{}, store.ErrNotFound
	}
	return role, nil
}

func (r memRoles) GetByName(_ context.Context, name string) (models.Role, error) {
	for _, role := range r.s.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return models.Role{}, store.ErrNotFound
}

func (r memRoles) GetByNames(_ context.Context, names []string) ([]models.Role, error) {
	return r.filter(func(role models.Role) bool { return slices.Contains(names, role.Name) }), nil
}

func (r memRoles) GetByIDs(_ context.Context, roleIDs []int64) ([]models.Role, error) {
	return r.filter(func(role models.Role) bool { return slices.Contains(roleIDs, role.RoleID) }), nil
}

func (r memRoles) List(_ context.Context) ([]models.Role, error) {
	return r.filter(func(models.Role) bool { return true }), nil
}

func (r memRoles) filter(keep func(models.Role) bool) []models.Role {
	out := []models.Role{}
	for _, role := range r.s.roles {
		if keep(role) {
			out = append(out, role)
		}
	}
	slices.SortFunc(out, func(a, b models.Role) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (r memRoles) Update(_ context.Context, role models.Role) (models.Role, error) {
	if _, ok := r.s.roles[role.RoleID]; !ok {
		return models.Role{}, store.ErrNotFound
	}
	r.s.roles[role.RoleID] = role
	return role, nil
}

func (r memRoles) Delete(_ context.Context, roleID int64) error {
	if _, ok := r.s.roles[roleID]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.roles, roleID)
	return nil
}

func (r memRoles) AssignToUser(_ context.Context, userID, roleID int64) error {
	_, userOK := r.s.users[userID]
	_, roleOK := r.s.roles[roleID]
	if !userOK || !roleOK {
		return store.ErrNotFound
	}
	r.s.userRoles[pair{userID, roleID}] = struct{}{}
	return nil
}

func (r memRoles) RemoveFromUser(_ context.Context, userID, roleID int64) error {
	delete(r.s.userRoles, pair{userID, roleID})
	return nil
}

func (r memRoles) ClearForUser(_ context.Context, userID int64) error {
	for p := range r.s.userRoles {
		if p.a == userID {
			delete(r.s.userRoles, p)
		}
	}
	return nil
}

func (r memRoles) GetByUser(_ context.Context, userID int64) ([]models.Role, error) {
	return r.filter(func(role models.Role) bool {
		_, ok := r.s.userRoles[pair{userID, role.RoleID}]
		return ok
	}), nil
}

// ── permissions ───────────────────────────────────────────────────────────────

type memPermissions struct{ s *memState }

func (r memPermissions) Create(_ context.Context, perm models.Permission) (models.Permission, error) {
	for _, existing := range r.s.permissions {
		if existing.Name == perm.Name {
			return models.Permission{}, store.ErrAlreadyExists
		}
	}
	perm.PermissionID = r.s.id()
	r.s.permissions[perm.PermissionID] = perm
	return perm, nil
}

func (r memPermissions) GetByID(_ context.Context, permissionID int64) (models.Permission, error) {
	perm, ok := r.s.permissions[permissionID]
	if !ok {
		return models.Permission{}, store.ErrNotFound
	}
	return perm, nil
}

func (r memPermissions) GetByNames(_ context.Context, names []string) ([]models.Permission, error) {
	return r.filter(func(p models.Permission) bool { return slices.Contains(names, p.Name) }), nil
}

func (r memPermissions) List(_ context.Context) ([]models.Permission, error) {
	return r.filter(func(models.Permission) bool { return true }), nil
}

func (r memPermissions) filter(keep func(models.Permission) bool) []models.Permission {
	out := []models.Permission{}
	for _, p := range r.s.permissions {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Permission) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (r memPermissions) Update(_ context.Context, perm models.Permission) (models.Permission, error) {
	if _, ok := r.s.permissions[perm.PermissionID]; !ok {
		return models.Permission{}, store.ErrNotFound
	}
	r.s.permissions[perm.PermissionID] = perm
	return perm, nil
}

func (r memPermissions) Delete(_ context.Context, permissionID int64) error {
	if _, ok := r.s.permissions[permissionID]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.permissions, permissionID)
	return nil
}

func (r memPermissions) AssignToRole(_ context.Context, roleID, permissionID int64) error {
	_, roleOK := r.s.roles[roleID]
	_, permOK := r.s.permissions[permissionID]
	if !roleOK || !permOK {
		return store.ErrNotFound
	}
	r.s.rolePermissions[pair{roleID, permissionID}] = struct{}{}
	return nil
}

func (r memPermissions) RemoveFromRole(_ context.Context, roleID, permissionID int64) error {
	delete(r.s.rolePermissions, pair{roleID, permissionID})
	return nil
}

func (r memPermissions) GetByRole(ctx context.Context, roleID int64) ([]models.Permission, error) {
	return r.GetByRoles(ctx, []int64{roleID})
}

func (r memPermissions) GetByRoles(_ context.Context, roleIDs []int64) ([]models.Permission, error) {
	return r.filter(func(p models.Permission) bool {
		for _, roleID := range roleIDs {
			if _, ok := r.s.rolePermissions[pair{roleID, p.PermissionID}]; ok {
				return true
			}
		}
		return false
	}), nil
}

// ── refresh tokens ────────────────────────────────────────────────────────────

type memTokens struct{ s *memState }

func (r memTokens) Add(_ context.Context, token models.RefreshToken) (models.RefreshToken, error) {
	for _, t := range r.s.tokens {
		if t.Token == token.Token {
			return models.RefreshToken{}, store.ErrAlreadyExists
		}
	}
	if _, ok := r.s.users[token.UserID]; !ok {
		return models.RefreshToken{}, store.ErrNotFound
	}
	token.TokenID = r.s.id()
	token.CreatedAt = time.Now()
	r.s.tokens[token.TokenID] = token
	return token, nil
}

func (r memTokens) GetByToken(_ context.Context, token string) (models.RefreshToken, error) {
	for _, t := range r.s.tokens {
		if t.Token == token {
			return t, nil
		}
	}
	return models.RefreshToken{}, store.ErrNotFound
}

func (r memTokens) Revoke(_ context.Context, tokenID int64, replacedBy *string, revokedAt time.Time) error {
	t, ok := r.s.tokens[tokenID]
	if !ok || t.IsRevoked {
		return store.ErrAlreadyRevoked
	}
	t.IsRevoked = true
	t.RevokedAt = &revokedAt
	t.ReplacedByToken = replacedBy
	r.s.tokens[tokenID] = t
	return nil
}

func (r memTokens) RevokeAllForUser(_ context.Context, userID int64, revokedAt time.Time) (int64, error) {
	var n int64
	for id, t := range r.s.tokens {
		if t.UserID == userID && !t.IsRevoked {
			t.IsRevoked = true
			t.RevokedAt = &revokedAt
			r.s.tokens[id] = t
			n++
		}
	}
	return n, nil
}

func (r memTokens) GetValidTokensForUser(_ context.Context, userID int64, now time.Time) ([]models.RefreshToken, error) {
	out := []models.RefreshToken{}
	for _, t := range r.s.tokens {
		if t.UserID == userID && t.IsValid(now) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b models.RefreshToken) int { return int(b.TokenID - a.TokenID) })
	return out, nil
}

func (r memTokens) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for id, t := range r.s.tokens {
		if t.ExpiresAt.Before(before) {
			delete(r.s.tokens, id)
			n++
		}
	}
	return n, nil
}
