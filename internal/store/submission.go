package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const tableSubmissions = "submissions"

var submissionColumns = []string{
	"id",
	"submission_id",
	"created_at",
	"answers",
	"prediction",
	"success",
	"error_message",
	"latency_ms",
}

// submissionRow is the scanned shape of a submissions row.
type submissionRow struct {
	ID           int64  `db:"id"`
	SubmissionID string `db:"submission_id"`
	CreatedAt    int64  `db:"created_at"`
	Answers      string `db:"answers"`
	Prediction   string `db:"prediction"`
	Success      bool   `db:"success"`
	ErrorMessage string `db:"error_message"`
	LatencyMs    int64  `db:"latency_ms"`
}

// submissionRepo implements SubmissionRepo with ent's SQL builder and sqlx scanning.
type submissionRepo struct {
	db *sqlx.DB
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *submissionRepo) Append(ctx context.Context, sub *Submission) error {
	if sub.SubmissionID == "" {
		sub.SubmissionID = uuid.New().String()
	}
	if sub.Timestamp.IsZero() {
		sub.Timestamp = time.Now().UTC()
	}

	answers, err := json.Marshal(sub.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	query, args := builder().
		Insert(tableSubmissions).
		Columns("submission_id", "created_at", "answers", "prediction", "success", "error_message", "latency_ms").
		Values(sub.SubmissionID, sub.Timestamp.UnixMilli(), string(answers), sub.Prediction, sub.Success, sub.ErrorMessage, sub.LatencyMs).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save submission: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		sub.ID = id
	}
	return nil
}

func (r *submissionRepo) List(ctx context.Context, opts QueryOpts) ([]Submission, error) {
	sel := builder().
		Select(submissionColumns...).
		From(entsql.Table(tableSubmissions)).
		OrderBy(entsql.Desc("id"))

	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows []submissionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}

	out := make([]Submission, 0, len(rows))
	for _, row := range rows {
		sub, err := row.toSubmission()
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

func (r *submissionRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(tableSubmissions)).
		Query()

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

func (r *submissionRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(tableSubmissions).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear submissions: %w", err)
	}
	return nil
}

func (r *submissionRepo) Prune(ctx context.Context, keep int) error {
	// Find the ID threshold: the first row past the ones we keep.
	query, args := builder().
		Select("id").
		From(entsql.Table(tableSubmissions)).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Offset(keep).
		Query()

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return fmt.Errorf("query submissions for prune: %w", err)
	}
	if len(ids) == 0 {
		return nil // fewer than keep submissions exist
	}

	query, args = builder().
		Delete(tableSubmissions).
		Where(entsql.LTE("id", ids[0])).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune submissions: %w", err)
	}
	return nil
}

func (row submissionRow) toSubmission() (Submission, error) {
	var answers map[string]string
	if row.Answers != "" {
		if err := json.Unmarshal([]byte(row.Answers), &answers); err != nil {
			return Submission{}, fmt.Errorf("unmarshal answers for %s: %w", row.SubmissionID, err)
		}
	}
	return Submission{
		ID:           row.ID,
		SubmissionID: row.SubmissionID,
		Timestamp:    time.UnixMilli(row.CreatedAt).UTC(),
		Answers:      answers,
		Prediction:   row.Prediction,
		Success:      row.Success,
		ErrorMessage: row.ErrorMessage,
		LatencyMs:    row.LatencyMs,
	}, nil
}
