package dbrepo

import (
	"context"
	"fmt"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepo struct {
	db *pgxpool.Pool
}

func NewCatalogRepo(db *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{db: db}
}

// GetVehicles returns the full price sheet.
func (r *CatalogRepo) GetVehicles(ctx context.Context) ([]*models.VehiclePrice, error) {
	query := `
		SELECT id, model, variant, ex_showroom, life_tax, insurance_1_4, orp,
		       accessories, ew_3_1, hc, pr_charges, final_price, color_list
		FROM vehicle_prices
		ORDER BY model, variant`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.VehiclePrice
	for rows.Next() {
		var v models.VehiclePrice
		if err := rows.Scan(
			&v.ID, &v.Model, &v.Variant, &v.ExShowroom, &v.LifeTax, &v.Insurance14, &v.ORP,
			&v.Accessories, &v.EW31, &v.HC, &v.PRCharges, &v.FinalPrice, &v.ColorList,
		); err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, nil
}

// GetVehicle resolves one model+variant price row.
func (r *CatalogRepo) GetVehicle(ctx context.Context, model, variant string) (*models.VehiclePrice, error) {
	query := `
		SELECT id, model, variant, ex_showroom, life_tax, insurance_1_4, orp,
		       accessories, ew_3_1, hc, pr_charges, final_price, color_list
		FROM vehicle_prices
		WHERE model = $1 AND variant = $2`

	var v models.VehiclePrice
	err := r.db.QueryRow(ctx, query, model, variant).Scan(
		&v.ID, &v.Model, &v.Variant, &v.ExShowroom, &v.LifeTax, &v.Insurance14, &v.ORP,
		&v.Accessories, &v.EW31, &v.HC, &v.PRCharges, &v.FinalPrice, &v.ColorList,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("vehicle %s %s not found", model, variant)
		}
		return nil, fmt.Errorf("reading vehicle %s %s: %w", model, variant, err)
	}
	return &v, nil
}

// GetFirms returns the firm master keyed by id, the shape the bill
// splitter consumes.
func (r *CatalogRepo) GetFirms(ctx context.Context) (map[int64]models.Firm, error) {
	query := `SELECT id, name, invoice_prefix, gst_no, COALESCE(address, '') FROM firm_master ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing firms: %w", err)
	}
	defer rows.Close()

	firms := make(map[int64]models.Firm)
	for rows.Next() {
		var f models.Firm
		if err := rows.Scan(&f.ID, &f.Name, &f.InvoicePrefix, &f.GSTNo, &f.Address); err != nil {
			return nil, fmt.Errorf("scanning firm: %w", err)
		}
		firms[f.ID] = f
	}
	return firms, nil
}

// GetAccessoryPackage resolves a model's package into priced items with
// their billing slot derived from the package position: the first four
// positions bill through slot 1, the rest through slot 2. Models without
// a package get an empty list, never an error.
func (r *CatalogRepo) GetAccessoryPackage(ctx context.Context, model string) ([]models.AccessoryItem, error) {
	// Step 1: read the package's ten position slots
	packageQuery := `
		SELECT acc_master_id_1, acc_master_id_2, acc_master_id_3, acc_master_id_4,
		       acc_master_id_5, acc_master_id_6, acc_master_id_7, acc_master_id_8,
		       acc_master_id_9, acc_master_id_10
		FROM accessory_packages
		WHERE model = $1`

	positions := make([]*int64, 10)
	err := r.db.QueryRow(ctx, packageQuery, model).Scan(
		&positions[0], &positions[1], &positions[2], &positions[3], &positions[4],
		&positions[5], &positions[6], &positions[7], &positions[8], &positions[9],
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return []models.AccessoryItem{}, nil
		}
		return nil, fmt.Errorf("reading accessory package for %s: %w", model, err)
	}

	// Step 2: collect the referenced item ids
	ids := make([]int64, 0, 10)
	for _, p := range positions {
		if p != nil {
			ids = append(ids, *p)
		}
	}
	if len(ids) == 0 {
		return []models.AccessoryItem{}, nil
	}

	// Step 3: load the items and index them by id
	itemQuery := `SELECT id, item_name, COALESCE(price, 0) FROM accessory_master WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, itemQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("loading accessory items: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]models.AccessoryItem, len(ids))
	for rows.Next() {
		var item models.AccessoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning accessory item: %w", err)
		}
		byID[item.ID] = item
	}

	// Step 4: emit in package order with the slot derived from position
	items := make([]models.AccessoryItem, 0, len(ids))
	for i, p := range positions {
		if p == nil {
			continue
		}
		item, ok := byID[*p]
		if !ok {
			continue
		}
		if i < 4 {
			item.Slot = 1
		} else {
			item.Slot = 2
		}
		items = append(items, item)
	}
	return items, nil
}

// GetBranchConfig bundles the reference lists a sales terminal needs for
// one branch: sales staff and finance executives by role, the global
// financier list, and the incentive rules for financiers that have one.
// Empty lists are valid configuration.
func (r *CatalogRepo) GetBranchConfig(ctx context.Context, branchID string) (*models.BranchConfig, error) {
	cfg := &models.BranchConfig{
		StaffNames:     []string{},
		ExecutiveNames: []string{},
		FinancierNames: []string{},
		IncentiveRules: map[string]models.IncentiveRule{},
	}

	// Step 1: branch staff split by role
	staffQuery := `SELECT name, role FROM executives WHERE branch_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, staffQuery, branchID)
	if err != nil {
		return nil, fmt.Errorf("listing executives for branch %q: %w", branchID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, role string
		if err := rows.Scan(&name, &role); err != nil {
			return nil, fmt.Errorf("scanning executive: %w", err)
		}
		switch role {
		case models.EXEC_ROLE_SALES:
			cfg.StaffNames = append(cfg.StaffNames, name)
		case models.EXEC_ROLE_FINANCE:
			cfg.ExecutiveNames = append(cfg.ExecutiveNames, name)
		}
	}
	rows.Close()

	// Step 2: financiers are global, incentive rules only where defined
	financierQuery := `SELECT company_name, COALESCE(incentive_type, ''), COALESCE(incentive_value, 0) FROM financiers ORDER BY company_name`
	finRows, err := r.db.Query(ctx, financierQuery)
	if err != nil {
		return nil, fmt.Errorf("listing financiers: %w", err)
	}
	defer finRows.Close()

	for finRows.Next() {
		var f models.Financier
		if err := finRows.Scan(&f.CompanyName, &f.IncentiveType, &f.IncentiveValue); err != nil {
			return nil, fmt.Errorf("scanning financier: %w", err)
		}
		cfg.FinancierNames = append(cfg.FinancierNames, f.CompanyName)
		if f.IncentiveType != "" {
			cfg.IncentiveRules[f.CompanyName] = models.IncentiveRule{Type: f.IncentiveType, Value: f.IncentiveValue}
		}
	}
	return cfg, nil
}
