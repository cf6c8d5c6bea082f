package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MohammedPathariya/NoteNest/internal/model"
	"github.com/MohammedPathariya/NoteNest/internal/store"
)

// NewWithDB constructs a SQLite-backed store. The schema must already exist (see Open).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Categories() store.Categories { return &categories{db: s.db} }
func (s *sqliteStore) Notes() store.Notes           { return &notes{db: s.db} }

// ParseID accepts any textual UUID form and returns its canonical lowercase spelling.
func (s *sqliteStore) ParseID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidReference, raw)
	}
	return id.String(), nil
}

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close() error { return s.db.Close() }

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

type rowScanner interface {
	Scan(dest ...any) error
}

// --- Categories ---
type categories struct{ db *sql.DB }

const categoryCols = `category_id, user_id, name, description, color_code`

func scanCategory(r rowScanner) (*model.Category, error) {
	var c model.Category
	var desc sql.NullString
	if err := r.Scan(&c.ID, &c.UserID, &c.Name, &desc, &c.ColorCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		c.Description = &d
	}
	return &c, nil
}

func (c *categories) Create(ctx context.Context, in *model.Category) (*model.Category, error) {
	out := *in
	out.ID = uuid.New().String()
	_, err := c.db.ExecContext(ctx, `
        INSERT INTO categories (category_id, user_id, name, description, color_code, created_at)
        VALUES (?,?,?,?,?,?)
    `, out.ID, out.UserID, out.Name, out.Description, out.ColorCode, time.Now().UTC().UnixNano())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", model.ErrDuplicateName, in.Name)
		}
		return nil, err
	}
	return &out, nil
}

func (c *categories) GetByID(ctx context.Context, categoryID string) (*model.Category, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+categoryCols+` FROM categories WHERE category_id=?`, categoryID)
	return scanCategory(row)
}

func (c *categories) GetByName(ctx context.Context, userID, name string) (*model.Category, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+categoryCols+` FROM categories WHERE user_id=? AND name=?`, userID, name)
	return scanCategory(row)
}

func (c *categories) List(ctx context.Context, userID string) ([]*model.Category, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT `+categoryCols+` FROM categories WHERE user_id=? ORDER BY name`, userID)
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
	var sets []string
	var args []any
	if p.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *p.Name)
	}
	if p.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *p.Description)
	}
	if p.ColorCode != nil {
		sets = append(sets, "color_code=?")
		args = append(args, *p.ColorCode)
	}
	args = append(args, categoryID)
	row := c.db.QueryRowContext(ctx,
		`UPDATE categories SET `+strings.Join(sets, ", ")+` WHERE category_id=? RETURNING `+categoryCols, args...)
	out, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %q", model.ErrDuplicateName, *p.Name)
	}
	return out, err
}

func (c *categories) Delete(ctx context.Context, categoryID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM categories WHERE category_id=?`, categoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
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
	var tags string
	var created, updated int64
	var ref sql.NullString
	if err := r.Scan(&n.ID, &n.UserID, &n.CategoryID, &n.Content, &tags, &created, &updated, &n.Archived, &n.IsReminder, &ref); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &n.Tags); err != nil {
		return nil, fmt.Errorf("decode tags for note %s: %w", n.ID, err)
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	n.CreatedAt = time.Unix(0, created).UTC()
	n.UpdatedAt = time.Unix(0, updated).UTC()
	if ref.Valid {
		v := ref.String
		n.LLMRef = &v
	}
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
        VALUES (?,?,?,?,?,?,?,?,?,?)
    `, out.ID, out.UserID, out.CategoryID, out.Content, tags,
		out.CreatedAt.UnixNano(), out.UpdatedAt.UnixNano(), out.Archived, out.IsReminder, out.LLMRef)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("category %s: %w", out.CategoryID, model.ErrNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (s *notes) GetByID(ctx context.Context, noteID string) (*model.Note, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+noteCols+` FROM notes WHERE note_id=?`, noteID)
	return scanNote(row)
}

func (s *notes) List(ctx context.Context, userID string, archived bool) ([]*model.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT `+noteCols+` FROM notes
        WHERE user_id=? AND archived=?
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
	sets := []string{"updated_at=?"}
	args := []any{now.UnixNano()}
	if p.CategoryID != nil {
		sets = append(sets, "category_id=?")
		args = append(args, *p.CategoryID)
	}
	if p.Content != nil {
		sets = append(sets, "content=?")
		args = append(args, *p.Content)
	}
	if p.Tags != nil {
		tags, err := encodeTags(*p.Tags)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "tags=?")
		args = append(args, tags)
	}
	if p.Archived != nil {
		sets = append(sets, "archived=?")
		args = append(args, *p.Archived)
	}
	if p.IsReminder != nil {
		sets = append(sets, "is_reminder=?")
		args = append(args, *p.IsReminder)
	}
	if p.LLMRef != nil {
		sets = append(sets, "llm_ref=?")
		args = append(args, *p.LLMRef)
	}
	args = append(args, noteID)
	row := s.db.QueryRowContext(ctx,
		`UPDATE notes SET `+strings.Join(sets, ", ")+` WHERE note_id=? RETURNING `+noteCols, args...)
	n, err := scanNote(row)
	if isForeignKeyViolation(err) {
		return nil, fmt.Errorf("category %s: %w", *p.CategoryID, model.ErrNotFound)
	}
	return n, err
}

func (s *notes) SetArchived(ctx context.Context, noteID, userID string, archived bool, now time.Time) (*model.Note, error) {
	q := `UPDATE notes SET archived=?, updated_at=? WHERE note_id=?`
	args := []any{archived, now.UnixNano(), noteID}
	if userID != "" {
		q += ` AND user_id=?`
		args = append(args, userID)
	}
	return scanNote(s.db.QueryRowContext(ctx, q+` RETURNING `+noteCols, args...))
}

func (s *notes) Delete(ctx context.Context, noteID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE note_id=?`, noteID)
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
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE category_id=?`, categoryID).Scan(&n)
	return n, err
}

func (s *notes) Reassign(ctx context.Context, from, to string, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE notes SET category_id=?, updated_at=? WHERE category_id=?`, to, now.UnixNano(), from)
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
        WHERE n.user_id=? AND n.archived=0
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
