package users

type UserRepo interface {
	Upsert(account *Account) error
	GetByEmail(email string) (*Account, error)
	GetByID(ID string) (*Account, error)
	SetBlocked(email string, blocked bool) error
}
