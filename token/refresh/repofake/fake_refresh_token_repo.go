package refreshrepofake

import (
	"sync"

	"github.com/jrsteele09/go-legal-client/internal/errors"
	"github.com/jrsteele09/go-legal-client/token/refresh"
)

var _ refresh.Repo = (*FakeRefreshTokenRepo)(nil)

// FakeRefreshTokenRepo keeps at most one refresh token per user in memory.
type FakeRefreshTokenRepo struct {
	byToken map[string]refresh.StoredRefreshToken
	byUser  map[string]string // user ID to token
	lock    sync.RWMutex
}

func NewFakeRefreshTokenRepo() refresh.Repo {
	return &FakeRefreshTokenRepo{
		byToken: make(map[string]refresh.StoredRefreshToken),
		byUser:  make(map[string]string),
	}
}

func (r *FakeRefreshTokenRepo) Upsert(rt *refresh.StoredRefreshToken) error {
	if rt == nil || rt.Token == "" {
		return errors.New("refresh token is required")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if previous, ok := r.byUser[rt.UserID]; ok && previous != rt.Token {
		delete(r.byToken, previous)
	}
	r.byToken[rt.Token] = *rt
	r.byUser[rt.UserID] = rt.Token
	return nil
}

func (r *FakeRefreshTokenRepo) Delete(token string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	rt, ok := r.byToken[token]
	if !ok {
		return errors.ErrNotFound
	}
	r.remove(rt)
	return nil
}

func (r *FakeRefreshTokenRepo) Get(token string) (*refresh.StoredRefreshToken, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	rt, ok := r.byToken[token]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &rt, nil
}

func (r *FakeRefreshTokenRepo) GetByUserID(userID string) (*refresh.StoredRefreshToken, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	rt, ok := r.byToken[r.byUser[userID]]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return &rt, nil
}

// DeleteByUserID is a no-op when the user holds no token.
func (r *FakeRefreshTokenRepo) DeleteByUserID(userID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if rt, ok := r.byToken[r.byUser[userID]]; ok {
		r.remove(rt)
	}
	return nil
}

func (r *FakeRefreshTokenRepo) remove(rt refresh.StoredRefreshToken) {
	delete(r.byToken, rt.Token)
	if r.byUser[rt.UserID] == rt.Token {
		delete(r.byUser, rt.UserID)
	}
}
