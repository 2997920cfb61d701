package telemetry

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "telemetry.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndSummarize(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	recs := []Suggestion{
		{Source: "claude", Type: "feat", Scope: "api", SubjectLen: 20, Files: 3},
		{Source: "claude", Type: "fix", SubjectLen: 12, Files: 1},
		{Source: "rules", Type: "feat", SubjectLen: 18, Files: 5, Split: true},
	}
	for _, r := range recs {
		if err := s.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	sum, err := s.Summarize(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Total != 3 {
		t.Errorf("Total = %d, want 3", sum.Total)
	}
	if sum.BySource["claude"] != 2 || sum.BySource["rules"] != 1 {
		t.Errorf("BySource = %v", sum.BySource)
	}
	if sum.ByType["feat"] != 2 || sum.ByType["fix"] != 1 {
		t.Errorf("ByType = %v", sum.ByType)
	}
	if sum.Splits != 1 {
		t.Errorf("Splits = %d, want 1", sum.Splits)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := openTestStore(t)
	sum, err := s.Summarize(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Total != 0 || sum.Splits != 0 {
		t.Errorf("empty ledger summary = %+v", sum)
	}
}

func TestOpenIdempotentSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "telemetry.db")

	first, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Record(ctx, Suggestion{Source: "rules", Type: "chore"}); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	sum, err := second.Summarize(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Total != 1 {
		t.Errorf("reopened ledger Total = %d, want 1", sum.Total)
	}
}
