package blogstore

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Foragefoxoffice/Cotco-backend/internal/domain/models"
	"github.com/Foragefoxoffice/Cotco-backend/internal/testutil"
)

func TestCreateDefaultsAndSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, err := store.Create(ctx, models.Blog{
		Title:    models.Lang{EN: "Cotton Market Outlook", VI: "Triển vọng thị trường bông"},
		Category: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Slug != "cotton-market-outlook" {
		t.Errorf("slug: got %q", b.Slug)
	}
	if b.Status != models.BlogDraft {
		t.Errorf("status: got %q, want draft", b.Status)
	}
	if b.PublishedAt == nil {
		t.Error("expected publishedAt to be stamped for sort stability")
	}

	// Duplicate title gets a suffixed slug.
	b2, err := store.Create(ctx, models.Blog{
		Title:    models.Lang{EN: "Cotton Market Outlook"},
		Category: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if b2.Slug != "cotton-market-outlook-1" {
		t.Errorf("suffixed slug: got %q", b2.Slug)
	}
}

func TestCreateSanitizesRichText(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, err := store.Create(ctx, models.Blog{
		Title:    models.Lang{EN: "Post"},
		Category: primitive.NewObjectID(),
		Blocks: []models.BlogBlock{{
			Type: "richtext",
			Content: map[string]any{
				"en": `<p>hello</p><script>alert(1)</script>`,
			},
		}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	en, _ := got.Blocks[0].Content["en"].(string)
	if en != "<p>hello</p>" {
		t.Errorf("sanitized content: got %q", en)
	}
}

func TestPublishStampsPublishedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b, err := store.Create(ctx, models.Blog{
		Title:    models.Lang{EN: "Draft Post"},
		Status:   models.BlogDraft,
		Category: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	createdStamp := *b.PublishedAt

	time.Sleep(5 * time.Millisecond)
	updated, err := store.Update(ctx, b.ID, models.Blog{Status: models.BlogPublished})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if updated.Status != models.BlogPublished {
		t.Errorf("status: got %q", updated.Status)
	}
	if !updated.PublishedAt.After(createdStamp) {
		t.Error("expected publishedAt to be re-stamped on draft -> published")
	}

	// Publishing an already-published post keeps the stamp.
	stamp := *updated.PublishedAt
	again, err := store.Update(ctx, b.ID, models.Blog{Status: models.BlogPublished})
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if !again.PublishedAt.Equal(stamp) {
		t.Error("expected publishedAt to survive a no-op publish")
	}
}

func TestListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	catA := primitive.NewObjectID()
	catB := primitive.NewObjectID()

	mk := func(title, status, author string, cat primitive.ObjectID, tags ...string) {
		t.Helper()
		if _, err := store.Create(ctx, models.Blog{
			Title:    models.Lang{EN: title},
			Status:   status,
			Author:   author,
			Category: cat,
			Tags:     tags,
		}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}
	mk("One", models.BlogPublished, "an", catA, "cotton")
	mk("Two", models.BlogPublished, "binh", catA, "viscose")
	mk("Three", models.BlogDraft, "an", catB, "cotton")

	cases := []struct {
		name string
		f    Filter
		want int
	}{
		{"all", Filter{}, 3},
		{"published", Filter{Status: models.BlogPublished}, 2},
		{"category", Filter{Category: catA}, 2},
		{"tag", Filter{Tag: "cotton"}, 2},
		{"author", Filter{Author: "binh"}, 1},
		{"combined", Filter{Status: models.BlogPublished, Tag: "cotton"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := store.List(ctx, tc.f)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tc.want {
				t.Errorf("got %d blogs, want %d", len(got), tc.want)
			}
		})
	}
}

func TestUpdateSlugConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Blog{Title: models.Lang{EN: "First"}, Category: primitive.NewObjectID()}); err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := store.Create(ctx, models.Blog{Title: models.Lang{EN: "Second"}, Category: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := store.Update(ctx, b.ID, models.Blog{Slug: "first"}); err != ErrDuplicateSlug {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
}
