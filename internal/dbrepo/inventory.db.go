package dbrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InventoryRepo struct {
	db *pgxpool.Pool
}

func NewInventoryRepo(db *pgxpool.Pool) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// AddMovement appends one stock-register line. Sale lines are written
// by finalization, not through here.
func (r *InventoryRepo) AddMovement(ctx context.Context, m *models.InventoryMovement) error {
	switch m.MovementType {
	case models.MOVEMENT_HMSI, models.MOVEMENT_INWARD, models.MOVEMENT_OUTWARD:
	default:
		return fmt.Errorf("invalid movement type %q", m.MovementType)
	}
	if m.Quantity <= 0 {
		return fmt.Errorf("movement quantity must be positive")
	}

	query := `
		INSERT INTO inventory_movements
		(movement_date, movement_type, branch_id, model, variant, color, quantity, remarks, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,CURRENT_TIMESTAMP)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		m.MovementDate, m.MovementType, m.BranchID,
		m.Model, m.Variant, m.Color, m.Quantity, m.Remarks,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert inventory movement: %w", err)
	}
	return nil
}

// GetMovements returns the register for a branch and date range,
// newest first, optionally filtered by movement type.
func (r *InventoryRepo) GetMovements(ctx context.Context, branchID string, startDate, endDate time.Time, movementType string) ([]models.InventoryMovement, error) {
	query := `
		SELECT id, movement_date, movement_type, branch_id, model, variant, color, quantity, remarks, created_at
		FROM inventory_movements
		WHERE branch_id = $1
		  AND movement_date BETWEEN $2::date AND $3::date
	`
	args := []interface{}{branchID, startDate, endDate}
	argPos := 4

	if movementType != "" {
		query += fmt.Sprintf(" AND movement_type = $%d", argPos)
		args = append(args, movementType)
		argPos++
	}

	query += " ORDER BY movement_date DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inventory movements: %w", err)
	}
	defer rows.Close()

	movements := make([]models.InventoryMovement, 0)
	for rows.Next() {
		var m models.InventoryMovement
		if err := rows.Scan(
			&m.ID, &m.MovementDate, &m.MovementType, &m.BranchID,
			&m.Model, &m.Variant, &m.Color, &m.Quantity, &m.Remarks, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}
