package users_test

import (
	"testing"

	"github.com/jrsteele09/go-legal-client/api"
	"github.com/jrsteele09/go-legal-client/internal/utils"
	"github.com/jrsteele09/go-legal-client/users"
	fakeuserrepo "github.com/jrsteele09/go-legal-client/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestFromServer_MapsFieldNames(t *testing.T) {
	u := users.FromServer(&api.ServerUser{
		ID:        "u-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      "client",
	})

	require.Equal(t, &users.User{
		ID:        "u-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}, u)
	require.Nil(t, u.ProfilePictureURL)
	require.Nil(t, u.CityID)
	require.Equal(t, "Jane Doe", u.FullName())
}

func TestFromServer_Nil(t *testing.T) {
	require.Nil(t, users.FromServer(nil))
}

func TestUser_CloneIsDeep(t *testing.T) {
	u := &users.User{ID: "u-1", Email: "a@b.c", CityID: utils.Ptr("c-1")}
	c := u.Clone()
	require.Equal(t, u, c)

	*c.CityID = "c-2"
	c.FirstName = "changed"
	require.Equal(t, "c-1", *u.CityID)
	require.Empty(t, u.FirstName)
}

func TestAccount_Passwords(t *testing.T) {
	hash, err := users.HashPassword("Secret123")
	require.NoError(t, err)

	a := &users.Account{Email: "a@b.c", PasswordHash: hash}
	require.True(t, a.CheckPassword("Secret123"))
	require.False(t, a.CheckPassword("secret123"))
}

func TestAccount_ServerUserOmitsProfileFields(t *testing.T) {
	a := &users.Account{ID: "u-1", Email: "a@b.c", CityID: utils.Ptr("c-1"), ProfilePictureURL: utils.Ptr("https://img")}
	require.Nil(t, a.ServerUser().CityID)
	require.Equal(t, "c-1", utils.Value(a.ProfileUser().CityID))
}

func TestFakeUserRepo(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()

	acc := &users.Account{Email: "Jane@Example.com", FirstName: "Jane"}
	require.NoError(t, repo.Upsert(acc))
	require.NotEmpty(t, acc.ID)

	got, err := repo.GetByEmail("jane@example.com")
	require.NoError(t, err)
	require.Equal(t, "Jane", got.FirstName)

	byID, err := repo.GetByID(acc.ID)
	require.NoError(t, err)
	require.Equal(t, got, byID)

	require.NoError(t, repo.SetBlocked("jane@example.com", true))
	got, err = repo.GetByEmail("jane@example.com")
	require.NoError(t, err)
	require.True(t, got.Blocked)

	_, err = repo.GetByEmail("nobody@example.com")
	require.ErrorIs(t, err, fakeuserrepo.ErrNotFound)
	require.Error(t, repo.SetBlocked("nobody@example.com", true))
}
