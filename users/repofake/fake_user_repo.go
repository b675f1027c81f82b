package fakeuserrepo

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-legal-client/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

var ErrNotFound = errors.New("not found")

type FakeUserRepo struct {
	users    map[string]*users.Account
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewFakeUserRepo() users.UserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*users.Account),
		emailIds: make(map[string]string),
	}
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (ur *FakeUserRepo) Upsert(account *users.Account) error {
	if account == nil || account.Email == "" {
		return errors.New("account email is required")
	}

	ur.lock.Lock()
	defer ur.lock.Unlock()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	c := *account
	ur.users[c.ID] = &c
	ur.emailIds[normaliseEmail(c.Email)] = c.ID
	return nil
}

func (ur *FakeUserRepo) GetByEmail(email string) (*users.Account, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.emailIds[normaliseEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	c := *ur.users[id]
	return &c, nil
}

func (ur *FakeUserRepo) GetByID(id string) (*users.Account, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	a, ok := ur.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *a
	return &c, nil
}

func (ur *FakeUserRepo) SetBlocked(email string, blocked bool) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	id, ok := ur.emailIds[normaliseEmail(email)]
	if !ok {
		return ErrNotFound
	}
	ur.users[id].Blocked = blocked
	return nil
}
