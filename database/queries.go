package database

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/egor/ecoprompt/models"
)

// фразы не содержат перевода строки
const removedSep = "\n"

// statsWindow — по скольким последним записям считаются частые фразы.
const statsWindow = 1000

// ─────────────────────────── InsertQuestion

func (s *Store) InsertQuestion(ctx context.Context, rec models.QuestionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	q := s.rebind(`
		INSERT INTO questions
			(id, created_at, source, char_count, removed, score, question, model, replied, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, q,
		rec.ID.String(), rec.CreatedAt.UTC(), rec.Source, rec.CharCount,
		strings.Join(rec.Removed, removedSep), rec.Score, rec.Question,
		rec.Model, rec.Replied, rec.Error,
	)
	if err != nil {
		return fmt.Errorf("InsertQuestion: %w", err)
	}
	return nil
}

// ─────────────────────────── ListQuestions

// ListQuestions возвращает страницу журнала (новые первыми) и общее количество.
func (s *Store) ListQuestions(ctx context.Context, page, size int) ([]models.QuestionRecord, int, error) {
	page, size = NormalizePage(page, size)

	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListQuestions count: %w", err)
	}

	q := s.rebind(`
		SELECT id, created_at, source, char_count, removed, score, question, model, replied, error
		FROM questions
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`)
	rows, err := s.db.QueryContext(ctx, q, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("ListQuestions: %w", err)
	}
	defer rows.Close()

	result := []models.QuestionRecord{}
	for rows.Next() {
		var (
			rec     models.QuestionRecord
			id      string
			removed string
		)
		if err := rows.Scan(
			&id, &rec.CreatedAt, &rec.Source, &rec.CharCount, &removed,
			&rec.Score, &rec.Question, &rec.Model, &rec.Replied, &rec.Error,
		); err != nil {
			return nil, 0, fmt.Errorf("ListQuestions scan: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, 0, fmt.Errorf("ListQuestions: bad id %q: %w", id, err)
		}
		rec.Removed = splitRemoved(removed)
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListQuestions rows: %w", err)
	}
	return result, total, nil
}

// ─────────────────────────── Stats

func (s *Store) Stats(ctx context.Context, top int) (models.QuestionStats, error) {
	ctx, cancel := context.WithTimeout(ctx, dbQueryTimeout)
	defer cancel()

	var st models.QuestionStats
	const aggQ = `
		SELECT COUNT(*),
		       COALESCE(CAST(AVG(score) AS DOUBLE PRECISION), 0),
		       COALESCE(SUM(CASE WHEN replied THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN error <> '' THEN 1 ELSE 0 END), 0)
		FROM questions`
	if err := s.db.QueryRowContext(ctx, aggQ).Scan(&st.Total, &st.AverageScore, &st.Replied, &st.Failed); err != nil {
		return st, fmt.Errorf("Stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT removed FROM questions
		WHERE removed <> ''
		ORDER BY created_at DESC
		LIMIT ?`), statsWindow)
	if err != nil {
		return st, fmt.Errorf("Stats phrases: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var removed string
		if err := rows.Scan(&removed); err != nil {
			return st, fmt.Errorf("Stats phrases scan: %w", err)
		}
		for _, p := range splitRemoved(removed) {
			counts[p]++
		}
	}
	if err := rows.Err(); err != nil {
		return st, fmt.Errorf("Stats phrases rows: %w", err)
	}
	st.TopPhrases = topPhrases(counts, top)
	return st, nil
}

// NormalizePage приводит параметры пагинации к допустимым значениям.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}

func splitRemoved(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, removedSep)
}

func topPhrases(counts map[string]int, top int) []models.PhraseCount {
	out := make([]models.PhraseCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, models.PhraseCount{Phrase: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Phrase < out[j].Phrase
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}
