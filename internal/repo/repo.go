package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type Repository interface {
	CreateUser(ctx context.Context, u User) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)
	GetProfileByID(ctx context.Context, id int) (Profile, error)
	UpdateProfile(ctx context.Context, id int, institution, description string) error

	SavePrediction(ctx context.Context, rec PredictionRecord) (int, error)
	ListPredictions(ctx context.Context, userID, limit int) ([]PredictionRecord, error)

	CreateTicket(ctx context.Context, t Ticket) (int, error)
	GetTicket(ctx context.Context, id int) (Ticket, error)
	UpdateTicketStatus(ctx context.Context, id int, status string) error
}

type User struct {
	Login       string
	Email       string
	Password    string
	Institution string
}

type Profile struct {
	ID          int       `json:"id"`
	Login       string    `json:"login"`
	Email       string    `json:"email,omitempty"`
	Institution string    `json:"institution"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type PredictionRecord struct {
	ID                 int       `json:"id"`
	UserID             int       `json:"user_id"`
	Porosity           int       `json:"porosity"`
	MechanicalStrength float64   `json:"mechanical_strength"`
	CellMigration      float64   `json:"cell_migration"`
	BestTissue         string    `json:"best_tissue"`
	BestScore          float64   `json:"best_score"`
	CreatedAt          time.Time `json:"created_at"`
}

const (
	TicketOpen     = "open"
	TicketResolved = "resolved"
	TicketRejected = "rejected"
)

type Ticket struct {
	ID        int       `json:"id"`
	Reference string    `json:"reference"`
	UserID    int       `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SQLRepository implements Repository over Postgres or SQLite.
type SQLRepository struct {
	db      *sql.DB
	dialect Dialect
	sb      sq.StatementBuilderType
}

var _ Repository = (*SQLRepository)(nil)

func New(db *sql.DB, dialect Dialect) *SQLRepository {
	format := sq.PlaceholderFormat(sq.Question)
	if dialect == Postgres {
		format = sq.Dollar
	}
	return &SQLRepository{db: db, dialect: dialect, sb: sq.StatementBuilder.PlaceholderFormat(format)}
}

func (r *SQLRepository) insertReturningID(ctx context.Context, b sq.InsertBuilder) (int, error) {
	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}
	var id int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (r *SQLRepository) CreateUser(ctx context.Context, u User) (int, error) {
	return r.insertReturningID(ctx, r.sb.Insert("users").
		Columns("login", "email", "password", "institution", "description", "created_at").
		Values(u.Login, u.Email, u.Password, u.Institution, "", time.Now().UTC()))
}

// GetBylogin returns id 0 and no error when the login is unknown.
func (r *SQLRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	query, args, err := r.sb.Select("id", "password").From("users").Where(sq.Eq{"login": login}).ToSql()
	if err != nil {
		return 0, "", err
	}
	var id int
	var hash string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *SQLRepository) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	query, args, err := r.sb.Select("id", "login", "email", "institution", "description", "created_at").
		From("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Profile{}, err
	}
	var p Profile
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.Login, &p.Email, &p.Institution, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (r *SQLRepository) UpdateProfile(ctx context.Context, id int, institution, description string) error {
	query, args, err := r.sb.Update("users").
		Set("institution", institution).
		Set("description", description).
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, query, args...)
}

func (r *SQLRepository) SavePrediction(ctx context.Context, rec PredictionRecord) (int, error) {
	return r.insertReturningID(ctx, r.sb.Insert("predictions").
		Columns("user_id", "porosity", "mechanical_strength", "cell_migration", "best_tissue", "best_score", "created_at").
		Values(rec.UserID, rec.Porosity, rec.MechanicalStrength, rec.CellMigration, rec.BestTissue, rec.BestScore, time.Now().UTC()))
}

// ListPredictions returns the newest records first.
func (r *SQLRepository) ListPredictions(ctx context.Context, userID, limit int) ([]PredictionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query, args, err := r.sb.
		Select("id", "user_id", "porosity", "mechanical_strength", "cell_migration", "best_tissue", "best_score", "created_at").
		From("predictions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	out := []PredictionRecord{}
	for rows.Next() {
		var rec PredictionRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Porosity, &rec.MechanicalStrength,
			&rec.CellMigration, &rec.BestTissue, &rec.BestScore, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLRepository) CreateTicket(ctx context.Context, t Ticket) (int, error) {
	if t.Status == "" {
		t.Status = TicketOpen
	}
	return r.insertReturningID(ctx, r.sb.Insert("support_tickets").
		Columns("reference", "user_id", "name", "email", "subject", "message", "status", "created_at").
		Values(t.Reference, t.UserID, t.Name, t.Email, t.Subject, t.Message, t.Status, time.Now().UTC()))
}

func (r *SQLRepository) GetTicket(ctx context.Context, id int) (Ticket, error) {
	query, args, err := r.sb.
		Select("id", "reference", "user_id", "name", "email", "subject", "message", "status", "created_at").
		From("support_tickets").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return Ticket{}, err
	}
	var t Ticket
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&t.ID, &t.Reference, &t.UserID, &t.Name, &t.Email, &t.Subject, &t.Message, &t.Status, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Ticket{}, ErrNotFound
	}
	return t, err
}

func (r *SQLRepository) UpdateTicketStatus(ctx context.Context, id int, status string) error {
	query, args, err := r.sb.Update("support_tickets").Set("status", status).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, query, args...)
}

func (r *SQLRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
