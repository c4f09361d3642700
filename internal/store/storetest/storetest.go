// Package storetest builds stores seeded from the embedded fixtures with a
// fixed clock and predictable ids.
package storetest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fanclub/internal/catalog"
	"fanclub/internal/store"
)

// Now is the clock every test store reports.
var Now = time.Date(2025, time.March, 25, 10, 0, 0, 0, time.UTC)

// New returns a store for user-1 whose generated ids are test-1, test-2, ...
func New(t testing.TB, opts ...store.Option) *store.Store {
	t.Helper()
	snap, err := catalog.LoadFixtures("")
	require.NoError(t, err)

	seq := 0
	base := []store.Option{
		store.WithClock(func() time.Time { return Now }),
		store.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("test-%d", seq)
		}),
	}
	s, err := store.New(snap, "user-1", append(base, opts...)...)
	require.NoError(t, err)
	return s
}
