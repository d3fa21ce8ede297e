package dbrepo

import (
	"context"
	"errors"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users
		(username, name, password, roles, branches, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRow(ctx, query,
		u.Username, u.Name, u.Password, u.Roles, u.Branches, u.Active,
	)

	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			switch pgErr.ConstraintName {
			case "users_username_key":
				return errors.New("Duplicate Username")
			}
		}
		return err
	}

	return nil
}

// GetUserByUsername fetches one user for sign-in.
func (r *UserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, name, password, roles, branches, active, created_at, updated_at
		FROM users
		WHERE username = $1
		LIMIT 1
	`
	u := &models.User{}
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Name, &u.Password,
		&u.Roles, &u.Branches, &u.Active,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("No user found")
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, name, password, roles, branches, active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	u := &models.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Name, &u.Password,
		&u.Roles, &u.Branches, &u.Active,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.New("No user found")
		}
		return nil, err
	}
	return u, nil
}

// UpdateUserPassword updates the password only
func (r *UserRepo) UpdateUserPassword(ctx context.Context, userID int64, newPassword string) error {
	query := `
		UPDATE users SET password = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID, newPassword)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("no user found with the given id")
	}
	return nil
}

// UpdateUserAccess updates roles, branch access, and active flag.
func (r *UserRepo) UpdateUserAccess(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users
		SET roles = $1, branches = $2, active = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		u.Roles,
		u.Branches,
		u.Active,
		u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return errors.New("no user found with the given id")
		}
		return err
	}
	return nil
}

// ListUsers returns every account, password hashes omitted.
func (r *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, username, name, roles, branches, active, created_at, updated_at
		FROM users
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.ID, &u.Username, &u.Name,
			&u.Roles, &u.Branches, &u.Active,
			&u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
