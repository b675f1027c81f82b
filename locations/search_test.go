package locations_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-legal-client/locations"
	"github.com/stretchr/testify/require"
)

func TestStateSearch_OnlyLastQueryIsSent(t *testing.T) {
	client, _ := signedIn(t)

	var (
		mu      sync.Mutex
		results []locations.SearchResult
	)
	search := client.NewStateSearch(context.Background(), 30*time.Millisecond, 10, func(r locations.SearchResult) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	})
	defer search.Stop()

	search.Type("r")
	search.Type("ri")
	search.Type(" riv ")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(results) == 1
	}, 2*time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, results, 1)
	require.Equal(t, "riv", results[0].Query)
	require.NoError(t, results[0].Err)
	require.Len(t, results[0].Page.Items, 1)
	require.Equal(t, "Rivers", results[0].Page.Items[0].Name)
}
