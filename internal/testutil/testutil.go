// Package testutil holds helpers shared by package tests
package testutil

import (
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/ayoisaiah/eyestrain/internal/osutil"
)

// AssertGolden verifies that got matches testdata/<name>.golden. Run the
// tests with -update to rewrite the fixtures.
func AssertGolden(t *testing.T, name string, got []byte) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: need to sort out line endings
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	g.Assert(t, name, got)
}
