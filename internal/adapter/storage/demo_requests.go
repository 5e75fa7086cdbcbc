package storage

import (
	"context"
	"fmt"

	"github.com/toytopia/toystore/internal/core/domain"
	"github.com/toytopia/toystore/internal/core/port"
)

var _ port.DemoRequestsStorage = (*DemoRequestsRepository)(nil)

type DemoRequestsRepository struct {
	sqldb sqldb
}

func NewDemoRequestsRepository(sqldb sqldb) DemoRequestsRepository {
	return DemoRequestsRepository{sqldb}
}

func (r DemoRequestsRepository) StoreDemoRequest(
	ctx context.Context, v domain.DemoRequest,
) error {
	const op = "DemoRequestsRepository.StoreDemoRequest"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `
		INSERT INTO demo_requests (
			request_id, toy_id, name, contact, created_at
		)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.sqldb.ExecContext(ctx, query,
		v.RequestID, v.ToyID, v.Name, v.Contact, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to exec: %w", op, err)
	}
	return nil
}
