package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Categories() store.Categories { return &categories{db: s.db} }
func (s *pgStore) Notes() store.Notes           { return &notes{db: s.db} }

func (s *pgStore) ParseID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidReference, raw)
	}
	return id.String(), nil
}

// HealthPing implements health.HealthPinger for Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *pgStore) Close() error { return s.db.Close() }

// Bootstrap applies the schema. Statements are idempotent so every start runs them.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
            category_id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            name VARCHAR(50) NOT NULL,
            description TEXT,
            color_code TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            CONSTRAINT categories_user_name_key UNIQUE (user_id, name)
        )`,
		`CREATE TABLE IF NOT EXISTS notes (
            note_id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            category_id TEXT NOT NULL REFERENCES categories(category_id),
            content VARCHAR(1000) NOT NULL,
            tags JSONB NOT NULL DEFAULT '[]'::jsonb,
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            archived BOOLEAN NOT NULL DEFAULT false,
            is_reminder BOOLEAN NOT NULL DEFAULT false,
            llm_ref TEXT
        )`,
		`CREATE INDEX IF NOT EXISTS idx_notes_user_archived ON notes (user_id, archived, updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_category ON notes (category_id)`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("postgres schema: %w", err)
		}
	}
	return nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

type rowScanner interface {
	Scan(dest ...any) error
}

// setList accumulates "col=$n" assignments for partial updates.
type setList struct {
	sets []string
	args []any
}

func (l *setList) add(col string, v any) {
	l.args = append(l.args, v)
	l.sets = append(l.sets, fmt.Sprintf("%s=$%d", col, len(l.args)))
}

// where appends the trailing argument and returns its placeholder.
func (l *setList) where(v any) string {
	l.args = append(l.args, v)
	return fmt.Sprintf("$%d", len(l.args))
}

// --- Categories ---
type categories struct{ db *sql.DB }

const categoryCols = `category_id, user_id, name, description, color_code`

func scanCategory(r rowScanner) (*model.Category, error) {
	var c model.Category
	if err := r.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.ColorCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (c *categories) Create(ctx context.Context, in *model.Category) (*model.Category, error) {
	out := *in
	out.ID = uuid.New().String()
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO categories (category_id, user_id, name, description, color_code)
        VALUES ($1,$2,$3,$4,$5)
    `, out.ID, out.UserID, out.Name, out.Description, out.ColorCode)
	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return nil, fmt.Errorf("%w: %q", model.ErrDuplicateName, in.Name)
		}
		return nil, err
	}
	return &out, nil
}

func (c *categories) GetByID(ctx context.Context, categoryID string) (*model.Category, error) {
	return scanCategory(c.db.QueryRowContext(ctx,
		`SELECT `+categoryCols+` FROM categories WHERE category_id=$1`, categoryID))
}

func (c *categories) GetByName(ctx context.Context, userID, name string) (*model.Category, error) {
	return scanCategory(c.db.QueryRowContext(ctx,
		`SELECT `+categoryCols+` FROM categories WHERE user_id=$1 AND name=$2`, userID, name))
}

func (c *categories) List(ctx context.Context, userID string) ([]*model.Category, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT `+categoryCols+` FROM categories WHERE user_id=$1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []*model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, cat)
	}
	return res, rows.Err()
}

func (c *categories) Update(ctx context.Context, categoryID string, p model.CategoryPatch) (*model.Category, error) {
	if p.Empty() {
		return c.GetByID(ctx, categoryID)
	}
	var l setList
	if p.Name != nil {
		l.add("name", *p.Name)
	}
	if p.Description != nil {
		l.add("description", *p.Description)
	}
	if p.ColorCode != nil {
		l.add("color_code", *p.ColorCode)
	}
	q := `UPDATE categories SET ` + strings.Join(l.sets, ", ") +
		` WHERE category_id=` + l.where(categoryID) + ` RETURNING ` + categoryCols
	out, err := scanCategory(c.db.QueryRowContext(ctx, q, l.args...))
	if pgCode(err) == codeUniqueViolation {
		return nil, fmt.Errorf("%w: %q", model.ErrDuplicateName, *p.Name)
	}
	return out, err
}

func (c *categories) Delete(ctx context.Context, categoryID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM categories WHERE category_id=$1`, categoryID)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return model.ErrCategoryInUse
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Notes ---
type notes struct{ db *sql.DB }

const noteCols = `note_id, user_id, category_id, content, tags, created_at, updated_at, archived, is_reminder, llm_ref`

func scanNote(r rowScanner) (*model.Note, error) {
	var n model.Note
	var tags []byte
	if err := r.Scan(&n.ID, &n.UserID, &n.CategoryID, &n.Content, &tags,
		&n.CreatedAt, &n.UpdatedAt, &n.Archived, &n.IsReminder, &n.LLMRef); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(tags, &n.Tags); err != nil {
		return nil, fmt.Errorf("decode tags for note %s: %w", n.ID, err)
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.CreatedAt = n.CreatedAt.UTC()
	n.UpdatedAt = n.UpdatedAt.UTC()
	return &n, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	return string(b), err
}

func (s *notes) Create(ctx context.Context, in *model.Note) (*model.Note, error) {
	out := *in
	out.ID = uuid.New().String()
	if out.Tags == nil {
		out.Tags = []string{}
	}
	tags, err := encodeTags(out.Tags)
	if err != nil {
		return nil, err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO notes (note_id, user_id, category_id, content, tags, created_at, updated_at, archived, is_reminder, llm_ref)
        VALUES ($1,$2,$3,$4,$5::jsonb,$6,$7,$8,$9,$10)
    `, out.ID, out.UserID, out.CategoryID, out.Content, tags,
		out.CreatedAt, out.UpdatedAt, out.Archived, out.IsReminder, out.LLMRef)
	if err != nil {
		if pgCode(err) == codeForeignKeyViolation {
			return nil, fmt.Errorf("category %s: %w", out.CategoryID, model.ErrNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (s *notes) GetByID(ctx context.Context, noteID string) (*model.Note, error) {
	return scanNote(s.db.QueryRowContext(ctx, `SELECT `+noteCols+` FROM notes WHERE note_id=$1`, noteID))
}

func (s *notes) List(ctx context.Context, userID string, archived bool) ([]*model.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+noteCols+` FROM notes
        WHERE user_id=$1 AND archived=$2
        ORDER BY updated_at DESC, created_at DESC, note_id
    `, userID, archived)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := []*model.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, rows.Err()
}

func (s *notes) Update(ctx context.Context, noteID string, p model.NotePatch, now time.Time) (*model.Note, error) {
	var l setList
	l.add("updated_at", now)
	if p.CategoryID != nil {
		l.add("category_id", *p.CategoryID)
	}
	if p.Content != nil {
		l.add("content", *p.Content)
	}
	if p.Tags != nil {
		tags, err := encodeTags(*p.Tags)
		if err != nil {
			return nil, err
		}
		l.args = append(l.args, tags)
		l.sets = append(l.sets, fmt.Sprintf("tags=$%d::jsonb", len(l.args)))
	}
	if p.Archived != nil {
		l.add("archived", *p.Archived)
	}
	if p.IsReminder != nil {
		l.add("is_reminder", *p.IsReminder)
	}
	if p.LLMRef != nil {
		l.add("llm_ref", *p.LLMRef)
	}
	q := `UPDATE notes SET ` + strings.Join(l.sets, ", ") +
		` WHERE note_id=` + l.where(noteID) + ` RETURNING ` + noteCols
	n, err := scanNote(s.db.QueryRowContext(ctx, q, l.args...))
	if pgCode(err) == codeForeignKeyViolation {
		return nil, fmt.Errorf("category %s: %w", *p.CategoryID, model.ErrNotFound)
	}
	return n, err
}

func (s *notes) SetArchived(ctx context.Context, noteID, userID string, archived bool, now time.Time) (*model.Note, error) {
	q := `UPDATE notes SET archived=$1, updated_at=$2 WHERE note_id=$3`
	args := []any{archived, now, noteID}
	if userID != "" {
		q += ` AND user_id=$4`
		args = append(args, userID)
	}
	return scanNote(s.db.QueryRowContext(ctx, q+` RETURNING `+noteCols, args...))
}

func (s *notes) Delete(ctx context.Context, noteID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE note_id=$1`, noteID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (s *notes) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE category_id=$1`, categoryID).Scan(&n)
	return n, err
}

func (s *notes) Reassign(ctx context.Context, from, to string, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET category_id=$1, updated_at=$2 WHERE category_id=$3`, to, now, from)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *notes) ActiveCountsByCategory(ctx context.Context, userID string) ([]model.CategoryCount, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT c.category_id, c.name, c.color_code, COUNT(n.note_id)
        FROM notes n
        JOIN categories c ON c.category_id = n.category_id
        WHERE n.user_id=$1 AND NOT n.archived
        GROUP BY c.category_id, c.name, c.color_code
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := []model.CategoryCount{}
	for rows.Next() {
		var cc model.CategoryCount
		if err := rows.Scan(&cc.CategoryID, &cc.CategoryName, &cc.ColorCode, &cc.NoteCount); err != nil {
			return nil, err
		}
		res = append(res, cc)
	}
	return res, rows.Err()
}
