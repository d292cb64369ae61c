package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación append-only del libro de movimientos sobre
// PostgreSQL (usable con pool o tx). No expone update ni delete.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, stock_record_id, product_id, warehouse_id, lot, type,
		quantity, quantity_before, quantity_after, observation, document_number, actor_id, created_at`

// Create persiste un movimiento del libro.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	docNumber := (*string)(nil)
	if m.DocumentNumber != "" {
		docNumber = &m.DocumentNumber
	}
	actorID := (*string)(nil)
	if m.ActorID != "" {
		actorID = &m.ActorID
	}
	_, err := r.q.Exec(ctx, query,
		m.ID, m.StockRecordID, m.ProductID, m.WarehouseID, m.Lot, string(m.Type),
		m.Quantity, m.QuantityBefore, m.QuantityAfter, m.Observation, docNumber, actorID, m.CreatedAt,
	)
	if err != nil {
		return translateError("create movement", err)
	}
	return nil
}

func scanMovement(scan func(dest ...any) error) (*entity.Movement, error) {
	var m entity.Movement
	var movType string
	var docNumber, actorID *string
	err := scan(&m.ID, &m.StockRecordID, &m.ProductID, &m.WarehouseID, &m.Lot, &movType,
		&m.Quantity, &m.QuantityBefore, &m.QuantityAfter, &m.Observation, &docNumber, &actorID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(movType)
	if docNumber != nil {
		m.DocumentNumber = *docNumber
	}
	if actorID != nil {
		m.ActorID = *actorID
	}
	return &m, nil
}

// GetByID obtiene un movimiento; nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError("get movement", err)
	}
	return m, nil
}

// ListByDocument movimientos ligados a un documento, en orden de creación.
func (r *MovementRepo) ListByDocument(ctx context.Context, documentNumber string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE document_number = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, documentNumber)
	if err != nil {
		return nil, translateError("list movements by document", err)
	}
	return collectMovements(rows)
}

// List historial filtrado por fecha/bodega/producto/tipo.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	var args []any
	pos := 1
	if f.WarehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, f.WarehouseID)
		pos++
	}
	if f.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, f.ProductID)
		pos++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, string(f.Type))
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("list movements", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows.Scan)
		if err != nil {
			return nil, translateError("scan movement", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
