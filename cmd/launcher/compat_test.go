package main

// Test helper standing in for testing.T.Chdir, which is unavailable on the
// Go toolchain used to build this module.

import (
	"os"
	"testing"
)

// testChdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir.
func testChdir(t testing.TB, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
