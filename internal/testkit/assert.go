// Package testkit holds small test-only helpers shared across this
// module's package tests. It is internal because the comparison it
// performs (structural JSON equality via go-cmp) is a diagnostic aid for
// this repository's own tests, not a general-purpose API.
package testkit

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// T is the subset of *testing.T (or a subtest helper) AssertJSONEqual
// needs, so callers never have to import this package's production code
// alongside the standard testing package under the same name.
type T interface {
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Helper()
}

// JSONEqual reports whether expectBytes and actualBytes decode to the same
// JSON value, ignoring formatting differences (key order, whitespace).
// Used to compare msgpack.ConvertToJSON output against a hand-written
// expectation without tying the test to the renderer's exact byte layout.
func JSONEqual(expectBytes, actualBytes []byte) error {
	var expect interface{}
	if err := json.Unmarshal(expectBytes, &expect); err != nil {
		return fmt.Errorf("failed to unmarshal expected bytes: %w", err)
	}

	var actual interface{}
	if err := json.Unmarshal(actualBytes, &actual); err != nil {
		return fmt.Errorf("failed to unmarshal actual bytes: %w", err)
	}

	if diff := cmp.Diff(expect, actual); len(diff) != 0 {
		return fmt.Errorf("JSON mismatch (-expect +actual):\n%s", diff)
	}
	return nil
}

// AssertJSONEqual fails t if expect and actual are not structurally equal
// JSON documents.
func AssertJSONEqual(t T, expect, actual []byte) bool {
	t.Helper()
	if err := JSONEqual(expect, actual); err != nil {
		t.Errorf("expected JSON equal: %v", err)
		return false
	}
	return true
}
