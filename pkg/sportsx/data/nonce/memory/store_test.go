package memory

import (
	"testing"

	"github.com/sportsx/sportsx-server/pkg/sportsx/data/nonce/tests"
)

func TestUsedNonceMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}
