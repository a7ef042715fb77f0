package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"samedayramps-backend/internal/apperror"
	"samedayramps-backend/internal/domain"
	"samedayramps-backend/internal/repository"

	"github.com/google/uuid"
)

type rentalRequestRepository struct {
	db *sql.DB
}

func NewRentalRequestRepository(db *sql.DB) repository.RentalRequestRepository {
	return &rentalRequestRepository{db: db}
}

const rentalRequestColumns = `id, customer_info, ramp_details, install_address, status, sales_stage,
	job_id, created_on, updated_on`

func (r *rentalRequestRepository) Create(ctx context.Context, req *domain.RentalRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = domain.RentalRequestStatusPending
	}
	if req.SalesStage == "" {
		req.SalesStage = domain.SalesStageRentalRequest
	}

	customerInfo, err := json.Marshal(req.CustomerInfo)
	if err != nil {
		return err
	}
	rampDetails, err := json.Marshal(req.RampDetails)
	if err != nil {
		return err
	}

	query := `INSERT INTO rental_requests (id, customer_info, ramp_details, install_address, status,
	          sales_stage, job_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING created_on, updated_on`
	now := time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		req.ID, customerInfo, rampDetails, req.InstallAddress, req.Status,
		req.SalesStage, nullString(req.JobID), now, now,
	).Scan(&req.CreatedOn, &req.UpdatedOn)
}

func (r *rentalRequestRepository) GetByID(ctx context.Context, id string) (*domain.RentalRequest, error) {
	query := `SELECT ` + rentalRequestColumns + ` FROM rental_requests WHERE id = $1`
	req, err := scanRentalRequest(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("Rental request not found")
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *rentalRequestRepository) Update(ctx context.Context, req *domain.RentalRequest) error {
	customerInfo, err := json.Marshal(req.CustomerInfo)
	if err != nil {
		return err
	}
	rampDetails, err := json.Marshal(req.RampDetails)
	if err != nil {
		return err
	}

	query := `UPDATE rental_requests SET customer_info=$1, ramp_details=$2, install_address=$3,
	          status=$4, sales_stage=$5, job_id=$6, updated_on=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query,
		customerInfo, rampDetails, req.InstallAddress,
		req.Status, req.SalesStage, nullString(req.JobID), time.Now().UTC(), req.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("Rental request not found")
	}
	return nil
}

func (r *rentalRequestRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rental_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("Rental request not found")
	}
	return nil
}

func (r *rentalRequestRepository) List(ctx context.Context) ([]domain.RentalRequest, error) {
	query := `SELECT ` + rentalRequestColumns + ` FROM rental_requests ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.RentalRequest
	for rows.Next() {
		req, err := scanRentalRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}

func scanRentalRequest(row rowScanner) (*domain.RentalRequest, error) {
	var (
		req          domain.RentalRequest
		customerInfo []byte
		rampDetails  []byte
		jobID        sql.NullString
	)
	err := row.Scan(
		&req.ID, &customerInfo, &rampDetails, &req.InstallAddress, &req.Status,
		&req.SalesStage, &jobID, &req.CreatedOn, &req.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(customerInfo, &req.CustomerInfo); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(rampDetails, &req.RampDetails); err != nil {
		return nil, err
	}
	if jobID.Valid {
		req.JobID = jobID.String
	}
	return &req, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
