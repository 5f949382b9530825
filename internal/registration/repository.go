package registration

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists registrants.
type Repository interface {
	Create(ctx context.Context, reg Registrant) (Registrant, error)
	List(ctx context.Context) ([]Registrant, error)
}

// PoolSource provides the shared database pool handle.
type PoolSource interface {
	Acquire(ctx context.Context) (*pgxpool.Pool, error)
}

// PostgresRepository implements Repository using PostgreSQL. The pool is
// acquired per call so a dropped connection is re-established transparently.
type PostgresRepository struct {
	pools PoolSource
}

// NewPostgresRepository builds a Postgres-backed registrant repository.
func NewPostgresRepository(pools PoolSource) *PostgresRepository {
	return &PostgresRepository{pools: pools}
}

// Create inserts a new registrant and returns it with the server-generated
// id and registration timestamp filled in.
func (r *PostgresRepository) Create(ctx context.Context, reg Registrant) (Registrant, error) {
	pool, err := r.pools.Acquire(ctx)
	if err != nil {
		return Registrant{}, fmt.Errorf("acquire pool: %w", err)
	}

	row := pool.QueryRow(ctx, `INSERT INTO registrants (nombre, apellido, email, telefono, pais)
        VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))
        RETURNING id, fecha_registro`,
		reg.Nombre, reg.Apellido, reg.Email, reg.Telefono, reg.Pais)
	if err := row.Scan(&reg.ID, &reg.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return Registrant{}, ErrDuplicateEmail
		}
		return Registrant{}, fmt.Errorf("insert registrant: %w", err)
	}
	reg.CreatedAt = reg.CreatedAt.UTC()
	return reg, nil
}

// List returns all registrants, most recently registered first.
func (r *PostgresRepository) List(ctx context.Context) ([]Registrant, error) {
	pool, err := r.pools.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire pool: %w", err)
	}

	rows, err := pool.Query(ctx, `SELECT id, nombre, apellido, email,
        COALESCE(telefono, ''), COALESCE(pais, ''), fecha_registro
        FROM registrants ORDER BY fecha_registro DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query registrants: %w", err)
	}
	defer rows.Close()

	var regs []Registrant
	for rows.Next() {
		var reg Registrant
		if err := rows.Scan(&reg.ID, &reg.Nombre, &reg.Apellido, &reg.Email,
			&reg.Telefono, &reg.Pais, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registrant: %w", err)
		}
		reg.CreatedAt = reg.CreatedAt.UTC()
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrants: %w", err)
	}
	return regs, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
