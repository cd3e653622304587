package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"recruitment-tracker/internal/domain"
	"recruitment-tracker/internal/logger"
	"recruitment-tracker/internal/repository"
)

type recruitmentRepository struct {
	db *sql.DB
}

func NewRecruitmentRepository(db *sql.DB) repository.RecruitmentRepository {
	return &recruitmentRepository{db: db}
}

func (r *recruitmentRepository) List(ctx context.Context) ([]domain.Recruitment, error) {
	query := `SELECT id, hstl_member, recruited_member, paid_out, created_at
	          FROM recruitments ORDER BY created_at DESC, id DESC`
	logger.StoreCall("list", query)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.StoreResult("list", 0, err)
		return nil, err
	}
	defer rows.Close()

	out := []domain.Recruitment{}
	for rows.Next() {
		var rec domain.Recruitment
		var status string
		if err := rows.Scan(&rec.ID, &rec.HSTLMember, &rec.RecruitedMember, &status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.PaidOut = domain.PayoutStatus(status)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.StoreResult("list", int64(len(out)), nil)
	return out, nil
}

func (r *recruitmentRepository) Create(ctx context.Context, rec *domain.Recruitment) error {
	id := uuid.NewString()
	query := `INSERT INTO recruitments (id, hstl_member, recruited_member, paid_out, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	logger.StoreCall("create", query)
	_, err := r.db.ExecContext(ctx, query, id, rec.HSTLMember, rec.RecruitedMember, string(rec.PaidOut), rec.CreatedAt)
	if err != nil {
		logger.StoreResult("create", 0, err)
		return err
	}
	rec.ID = id
	logger.StoreResult("create", 1, nil)
	return nil
}

func (r *recruitmentRepository) UpdatePayout(ctx context.Context, id string, status domain.PayoutStatus) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	query := `UPDATE recruitments SET paid_out = $1 WHERE id = $2`
	logger.StoreCall("update_payout", query)
	res, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		logger.StoreResult("update_payout", 0, err)
		return err
	}
	n, _ := res.RowsAffected()
	logger.StoreResult("update_payout", n, nil)
	return nil
}

func (r *recruitmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	query := `DELETE FROM recruitments WHERE id = $1`
	logger.StoreCall("delete", query)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.StoreResult("delete", 0, err)
		return err
	}
	n, _ := res.RowsAffected()
	logger.StoreResult("delete", n, nil)
	return nil
}
