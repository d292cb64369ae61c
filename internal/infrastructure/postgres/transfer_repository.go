package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/kardex-api/internal/domain/entity"
	"github.com/tu-usuario/kardex-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL
// (usable con pool o tx). El consecutivo number lo asigna la secuencia de la tabla.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, number, origin_warehouse_id, destination_warehouse_id, status,
		vehicle, driver, cancel_reason, total_lines, total_quantity, created_by, created_at, sent_at, received_at`

// Create persiste cabecera y líneas; la secuencia asigna el consecutivo.
func (r *TransferRepo) Create(ctx context.Context, t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, origin_warehouse_id, destination_warehouse_id, status,
			vehicle, driver, total_lines, total_quantity, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING number`
	createdBy := (*string)(nil)
	if t.CreatedBy != "" {
		createdBy = &t.CreatedBy
	}
	err := r.q.QueryRow(ctx, query,
		t.ID, t.OriginWarehouseID, t.DestinationWarehouseID, string(t.Status),
		t.Vehicle, t.Driver, t.TotalLines, t.TotalQuantity, createdBy, t.CreatedAt,
	).Scan(&t.Number)
	if err != nil {
		return translateError("create transfer", err)
	}
	for _, line := range t.Lines {
		if err := r.insertLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *TransferRepo) insertLine(ctx context.Context, line *entity.TransferLine) error {
	query := `
		INSERT INTO transfer_lines (id, transfer_id, product_id, requested_qty, sent_qty, received_qty, lot, expiration)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.TransferID, line.ProductID, line.RequestedQty,
		line.SentQty, line.ReceivedQty, line.Lot, line.Expiration,
	)
	if err != nil {
		return translateError("insert transfer line", err)
	}
	return nil
}

func (r *TransferRepo) scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var status string
	var createdBy *string
	err := row.Scan(&t.ID, &t.Number, &t.OriginWarehouseID, &t.DestinationWarehouseID, &status,
		&t.Vehicle, &t.Driver, &t.CancelReason, &t.TotalLines, &t.TotalQuantity,
		&createdBy, &t.CreatedAt, &t.SentAt, &t.ReceivedAt)
	if err != nil {
		return nil, err
	}
	t.Status = entity.TransferStatus(status)
	if createdBy != nil {
		t.CreatedBy = *createdBy
	}
	return &t, nil
}

// GetByID devuelve el traslado con líneas; nil si no existe.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	t, err := r.scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError("get transfer", err)
	}
	if err := r.loadLines(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetForUpdate bloquea la cabecera del traslado para serializar transiciones
// concurrentes; nil si no existe.
func (r *TransferRepo) GetForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`
	t, err := r.scanTransfer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError("get transfer for update", err)
	}
	if err := r.loadLines(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TransferRepo) loadLines(ctx context.Context, t *entity.Transfer) error {
	query := `
		SELECT id, transfer_id, product_id, requested_qty, sent_qty, received_qty, lot, expiration
		FROM transfer_lines WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, t.ID)
	if err != nil {
		return translateError("load transfer lines", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ProductID, &l.RequestedQty,
			&l.SentQty, &l.ReceivedQty, &l.Lot, &l.Expiration); err != nil {
			return translateError("scan transfer line", err)
		}
		t.Lines = append(t.Lines, &l)
	}
	return rows.Err()
}

// Update escribe la cabecera (estado, timestamps, razón, totales).
func (r *TransferRepo) Update(ctx context.Context, t *entity.Transfer) error {
	query := `
		UPDATE transfers SET status = $2, cancel_reason = $3, total_lines = $4,
			total_quantity = $5, sent_at = $6, received_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		t.ID, string(t.Status), t.CancelReason, t.TotalLines, t.TotalQuantity, t.SentAt, t.ReceivedAt,
	)
	if err != nil {
		return translateError("update transfer", err)
	}
	return nil
}

// UpdateLine escribe las cantidades enviada/recibida de una línea.
func (r *TransferRepo) UpdateLine(ctx context.Context, line *entity.TransferLine) error {
	query := `UPDATE transfer_lines SET sent_qty = $2, received_qty = $3 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, line.ID, line.SentQty, line.ReceivedQty)
	if err != nil {
		return translateError("update transfer line", err)
	}
	return nil
}

// ReplaceLines borra las líneas actuales e inserta las nuevas (edición en borrador).
func (r *TransferRepo) ReplaceLines(ctx context.Context, transferID string, lines []*entity.TransferLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM transfer_lines WHERE transfer_id = $1`, transferID); err != nil {
		return translateError("delete transfer lines", err)
	}
	for _, line := range lines {
		if err := r.insertLine(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// List lista traslados, opcionalmente por estado, con paginación.
func (r *TransferRepo) List(ctx context.Context, status entity.TransferStatus, limit, offset int) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers`
	var args []any
	if status != "" {
		query += ` WHERE status = $1 ORDER BY number DESC LIMIT $2 OFFSET $3`
		args = []any{string(status), limit, offset}
	} else {
		query += ` ORDER BY number DESC LIMIT $1 OFFSET $2`
		args = []any{limit, offset}
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("list transfers", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		t, err := r.scanTransfer(rows)
		if err != nil {
			return nil, translateError("scan transfer", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
