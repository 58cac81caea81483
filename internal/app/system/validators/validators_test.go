package validators

import (
	"context"
	"testing"
	"time"

	"github.com/Foragefoxoffice/Cotco-backend/internal/testutil"
)

func TestEnsureAllIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Running twice must not fail: collections already exist the second time.
	if err := EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll() first run: %v", err)
	}
	if err := EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll() second run: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("ListCollectionNames: %v", err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"users", "roles", "page_documents", "blogs", "contact_entries"} {
		if !have[want] {
			t.Errorf("collection %q missing after EnsureAll", want)
		}
	}
}
