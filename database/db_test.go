package database

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/models"
)

func init() {
	log.SetOutput(io.Discard)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open("mysql", ""); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("got %v, want ErrUnknownDriver", err)
	}
}

func TestInsertAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		rec := models.QuestionRecord{
			ID:        uuid.New(),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Source:    "web",
			CharCount: 10 + i,
			Removed:   []string{"좀", "혹시"},
			Score:     90 - i,
			Question:  "질문",
			Model:     "Gemini",
			Replied:   i%2 == 0,
		}
		if i == 4 {
			rec.Removed = nil
			rec.Error = "⚠️ Gemini API 오류: timeout"
		}
		if err := s.InsertQuestion(ctx, rec); err != nil {
			t.Fatalf("InsertQuestion: %v", err)
		}
	}

	page, total, err := s.ListQuestions(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if total != 5 {
		t.Errorf("total: got %d, want 5", total)
	}
	if len(page) != 2 {
		t.Fatalf("page size: got %d, want 2", len(page))
	}
	// новые первыми
	if page[0].Score != 86 || page[1].Score != 87 {
		t.Errorf("order: got scores %d, %d", page[0].Score, page[1].Score)
	}
	if len(page[0].Removed) != 0 {
		t.Errorf("removed: got %v, want empty", page[0].Removed)
	}
	if !reflect.DeepEqual(page[1].Removed, []string{"좀", "혹시"}) {
		t.Errorf("removed: got %v", page[1].Removed)
	}
	if !page[1].CreatedAt.Equal(base.Add(3 * time.Minute)) {
		t.Errorf("created_at: got %v", page[1].CreatedAt)
	}

	last, _, err := s.ListQuestions(ctx, 3, 2)
	if err != nil {
		t.Fatalf("ListQuestions page 3: %v", err)
	}
	if len(last) != 1 || last[0].Score != 90 {
		t.Errorf("last page: got %+v", last)
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.Stats(ctx, 5)
	if err != nil {
		t.Fatalf("Stats on empty: %v", err)
	}
	if empty.Total != 0 || empty.AverageScore != 0 || len(empty.TopPhrases) != 0 {
		t.Errorf("empty stats: %+v", empty)
	}

	recs := []models.QuestionRecord{
		{Score: 90, Removed: []string{"좀"}, Replied: true},
		{Score: 80, Removed: []string{"좀", "또"}, Replied: true},
		{Score: 70, Removed: []string{"혹시", "좀"}, Error: "fail"},
	}
	for i, rec := range recs {
		rec.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		rec.Source = "api"
		if err := s.InsertQuestion(ctx, rec); err != nil {
			t.Fatalf("InsertQuestion: %v", err)
		}
	}

	st, err := s.Stats(ctx, 2)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Total != 3 || st.AverageScore != 80 || st.Replied != 2 || st.Failed != 1 {
		t.Errorf("stats: %+v", st)
	}
	want := []models.PhraseCount{{Phrase: "좀", Count: 3}, {Phrase: "또", Count: 1}}
	if !reflect.DeepEqual(st.TopPhrases, want) {
		t.Errorf("top phrases: got %+v, want %+v", st.TopPhrases, want)
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct{ page, size, wantPage, wantSize int }{
		{0, 0, 1, DefaultPageSize},
		{2, 10, 2, 10},
		{-1, MaxPageSize + 1, 1, DefaultPageSize},
	}
	for _, tt := range tests {
		p, s := NormalizePage(tt.page, tt.size)
		if p != tt.wantPage || s != tt.wantSize {
			t.Errorf("NormalizePage(%d,%d): got %d,%d", tt.page, tt.size, p, s)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	if got := pg.rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Errorf("postgres: got %q", got)
	}
	lite := &Store{driver: DriverSQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite: got %q", got)
	}
}

func TestListQuestions_ScanErrorWrapped(t *testing.T) {
	s := openTestStore(t)
	_, err := s.db.Exec(`
		INSERT INTO questions
			(id, created_at, source, char_count, removed, score, question, model, replied, error)
		VALUES (?, ?, 'web', 'много', '', 90, 'q', '', 0, '')`,
		uuid.NewString(), time.Now().UTC())
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, _, err = s.ListQuestions(context.Background(), 1, 10)
	if err == nil || !strings.HasPrefix(err.Error(), "ListQuestions scan: ") {
		t.Errorf("got %v, want wrapped scan error", err)
	}
}
