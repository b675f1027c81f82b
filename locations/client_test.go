package locations_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-legal-client/auth"
	"github.com/jrsteele09/go-legal-client/internal/errors"
	"github.com/jrsteele09/go-legal-client/locations"
	"github.com/jrsteele09/go-legal-client/server"
	"github.com/jrsteele09/go-legal-client/server/servertest"
	"github.com/jrsteele09/go-legal-client/session"
	"github.com/jrsteele09/go-legal-client/tokenstore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// signedIn returns a location client authorized through a signed-in session.
func signedIn(t *testing.T) (*locations.Client, *session.Controller) {
	t.Helper()
	ctx := context.Background()
	b := servertest.New(t, nil)

	svc, err := auth.NewService(b.AuthURL(), auth.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	store, err := tokenstore.New(tokenstore.NewInMemoryBackend(), tokenstore.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	ctrl, err := session.NewController(store, session.WithAuthService(svc), session.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	ctrl.Init(ctx)
	require.NoError(t, ctrl.SignIn(ctx, auth.Credentials{Email: server.DemoUserEmail, Password: server.DemoUserPassword}))

	client, err := locations.NewClient(b.URL, ctrl.HTTPClient(ctx), locations.WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return client, ctrl
}

func TestNewClient_Validation(t *testing.T) {
	_, err := locations.NewClient("", http.DefaultClient)
	require.Error(t, err)
	_, err = locations.NewClient("http://localhost", nil)
	require.Error(t, err)
}

func TestStates(t *testing.T) {
	client, _ := signedIn(t)

	p, err := client.States(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, p.Items, 2)
	require.Equal(t, 5, p.Total)
	require.True(t, p.HasMore)

	p, err = client.States(context.Background(), 3, 2)
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	require.False(t, p.HasMore)

	found, err := client.SearchStates(context.Background(), "lag", 1, 10)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	require.Equal(t, "LA", found.Items[0].Code)
}

func TestAllStates(t *testing.T) {
	client, _ := signedIn(t)

	all, err := client.AllStates(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestCities(t *testing.T) {
	client, _ := signedIn(t)

	p, err := client.Cities(context.Background(), "st-la", 1, 20)
	require.NoError(t, err)
	require.Len(t, p.Items, 3)
	for _, c := range p.Items {
		require.Equal(t, "st-la", c.StateID)
	}

	_, err = client.Cities(context.Background(), "st-zz", 1, 20)
	require.True(t, errors.Is(err, errors.ErrNotFound))

	_, err = client.Cities(context.Background(), "", 1, 20)
	require.Error(t, err)
}

func TestAfterLogoutRequestsFail(t *testing.T) {
	client, ctrl := signedIn(t)

	_, err := client.States(context.Background(), 1, 20)
	require.NoError(t, err)

	ctrl.Logout(context.Background())
	_, err = client.States(context.Background(), 1, 20)
	require.True(t, errors.Is(err, errors.ErrNoAccessToken))
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: errors.ErrUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, want: errors.ErrUnexpectedStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer ts.Close()

			client, err := locations.NewClient(ts.URL, ts.Client(), locations.WithLogger(zerolog.Nop()))
			require.NoError(t, err)
			_, err = client.States(context.Background(), 1, 20)
			require.True(t, errors.Is(err, tt.want))
		})
	}
}
