package store_test

import (
	"context"
	"testing"

	"nmjcat/internal/store"
)

func TestInsertAssignsSequentialIDs(t *testing.T) {
	st := mustOpen(t)
	ctx := context.Background()

	first, err := st.Insert(ctx, store.Videos, store.Values{"path": "a.avi"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	second, err := st.Insert(ctx, store.Videos, store.Values{"path": "b.avi"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if second != first+1 {
		t.Fatalf("ids = %d, %d; want consecutive", first, second)
	}
}

func TestInsertHonorsExplicitID(t *testing.T) {
	st := mustOpen(t)
	ctx := context.Background()

	id, err := st.Insert(ctx, store.Synopsises, store.Values{"id": 42, "summary": "about a movie"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
	rec, err := st.First(ctx, store.Synopsises, store.Query{Eq: store.Values{"id": 42}})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if rec == nil || rec.Text("summary") != "about a movie" {
		t.Fatalf("record = %v, want stored summary", rec)
	}
}

func TestInsertFillsTypeDefaults(t *testing.T) {
	st := mustOpen(t)
	ctx := context.Background()

	id, err := st.Insert(ctx, store.Videos, store.Values{"path": "c.avi"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	rec, err := st.First(ctx, store.Videos, store.Query{Eq: store.Values{"id": id}})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if rec.Int("size") != 0 {
		t.Errorf("size = %d, want integer zero default", rec.Int("size"))
	}
	if rec.Text("hash") != "" {
		t.Errorf("hash = %q, want empty text default", rec.Text("hash"))
	}
}

func TestInsertRejectsUnknownField(t *testing.T) {
	st := mustOpen(t)
	if _, err := st.Insert(context.Background(), store.Videos, store.Values{"nope": 1}); err == nil {
		t.Fatal("insert with unknown field succeeded, want error")
	}
}

func TestQueryFilters(t *testing.T) {
	st := mustOpen(t)
	ctx := context.Background()

	for _, path := range []string{"one.avi", "two.avi", "three.avi"} {
		if _, err := st.Insert(ctx, store.Videos, store.Values{"path": path, "file_type": "1"}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	records, err := st.Query(ctx, store.Videos, store.Query{Eq: store.Values{"path": "two.avi"}})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(records) != 1 || records[0].Text("path") != "two.avi" {
		t.Fatalf("eq filter returned %d records", len(records))
	}

	records, err = st.Query(ctx, store.Videos, store.Query{Where: "PATH LIKE 't%'", OrderBy: "PATH"})
	if err != nil {
		t.Fatalf("raw where query: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("raw where returned %d records, want 2", len(records))
	}
	if records[0].Text("path") != "three.avi" {
		t.Errorf("order by ignored, first = %q", records[0].Text("path"))
	}

	records, err = st.Query(ctx, store.Videos, store.Query{Limit: 1})
	if err != nil {
		t.Fatalf("limited query: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("limit ignored, got %d records", len(records))
	}

	missing, err := st.First(ctx, store.Videos, store.Query{Eq: store.Values{"path": "absent.avi"}})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if missing != nil {
		t.Fatal("miss should return nil record, not error")
	}
}

func TestUpdateMutatesRecord(t *testing.T) {
	st := mustOpen(t)
	ctx := context.Background()

	id, err := st.Insert(ctx, store.Shows, store.Values{"title": "Avatar", "total_item": 1})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	rec, err := st.First(ctx, store.Shows, store.Query{Eq: store.Values{"id": id}})
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	if err := st.Update(ctx, rec, store.Values{"total_item": 2}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Int("total_item") != 2 {
		t.Errorf("in-memory record not mutated, total_item = %d", rec.Int("total_item"))
	}

	reread, err := st.First(ctx, store.Shows, store.Query{Eq: store.Values{"id": id}})
	if err != nil {
		t.Fatalf("requery: %v", err)
	}
	if reread.Int("total_item") != 2 {
		t.Errorf("stored total_item = %d, want 2", reread.Int("total_item"))
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	st := mustOpen(t)
	ctx := context.Background()

	id, err := st.Insert(ctx, store.Videos, store.Values{"path": "gone.avi"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	rec, err := st.First(ctx, store.Videos, store.Query{Eq: store.Values{"id": id}})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if err := st.Delete(ctx, rec); err != nil {
		t.Fatalf("delete: %v", err)
	}
	exists, err := st.Contains(ctx, store.Videos, store.Values{"id": id})
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if exists {
		t.Fatal("row still present after delete")
	}
}
