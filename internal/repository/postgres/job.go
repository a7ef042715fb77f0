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

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `id, stage, customer_info, ramp_configuration, pricing, installation_schedule,
	removal_schedule, communication_log, payment_link_url, agreement_link, quote_html,
	removal_cost_estimate, created_on, updated_on`

func jsonOrNull[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.Stage == "" {
		job.Stage = domain.JobStageRequested
	}
	if job.CommunicationLog == nil {
		job.CommunicationLog = []domain.CommunicationEntry{}
	}

	customerInfo, err := jsonOrNull(job.CustomerInfo)
	if err != nil {
		return err
	}
	rampConfig, err := jsonOrNull(job.RampConfiguration)
	if err != nil {
		return err
	}
	pricing, err := jsonOrNull(job.Pricing)
	if err != nil {
		return err
	}
	installSchedule, err := jsonOrNull(job.InstallationSchedule)
	if err != nil {
		return err
	}
	removalSchedule, err := jsonOrNull(job.RemovalSchedule)
	if err != nil {
		return err
	}
	commLog, err := json.Marshal(job.CommunicationLog)
	if err != nil {
		return err
	}

	query := `INSERT INTO jobs (id, stage, customer_info, ramp_configuration, pricing, installation_schedule,
	          removal_schedule, communication_log, payment_link_url, agreement_link, quote_html,
	          removal_cost_estimate, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	          RETURNING created_on, updated_on`
	now := time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		job.ID, job.Stage, customerInfo, rampConfig, pricing, installSchedule,
		removalSchedule, commLog, job.PaymentLinkURL, job.AgreementLink, job.QuoteHTML,
		nullFloat(job.RemovalCostEstimate), now, now,
	).Scan(&job.CreatedOn, &job.UpdatedOn)
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("Job not found")
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	customerInfo, err := jsonOrNull(job.CustomerInfo)
	if err != nil {
		return err
	}
	rampConfig, err := jsonOrNull(job.RampConfiguration)
	if err != nil {
		return err
	}
	pricing, err := jsonOrNull(job.Pricing)
	if err != nil {
		return err
	}
	installSchedule, err := jsonOrNull(job.InstallationSchedule)
	if err != nil {
		return err
	}
	removalSchedule, err := jsonOrNull(job.RemovalSchedule)
	if err != nil {
		return err
	}
	if job.CommunicationLog == nil {
		job.CommunicationLog = []domain.CommunicationEntry{}
	}
	commLog, err := json.Marshal(job.CommunicationLog)
	if err != nil {
		return err
	}

	query := `UPDATE jobs SET stage=$1, customer_info=$2, ramp_configuration=$3, pricing=$4,
	          installation_schedule=$5, removal_schedule=$6, communication_log=$7,
	          payment_link_url=$8, agreement_link=$9, quote_html=$10, removal_cost_estimate=$11,
	          updated_on=$12 WHERE id=$13`
	res, err := r.db.ExecContext(ctx, query,
		job.Stage, customerInfo, rampConfig, pricing,
		installSchedule, removalSchedule, commLog,
		job.PaymentLinkURL, job.AgreementLink, job.QuoteHTML, nullFloat(job.RemovalCostEstimate),
		time.Now().UTC(), job.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("Job not found")
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("Job not found")
	}
	return nil
}

func (r *jobRepository) List(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY created_on DESC`
	return r.queryJobs(ctx, query)
}

func (r *jobRepository) ListByStage(ctx context.Context, stage domain.JobStage) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE stage = $1 ORDER BY created_on DESC`
	return r.queryJobs(ctx, query, stage)
}

func (r *jobRepository) ListInstallationsBetween(ctx context.Context, from, to time.Time) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs
	          WHERE stage = $1
	            AND (installation_schedule->>'date')::timestamptz >= $2
	            AND (installation_schedule->>'date')::timestamptz < $3
	          ORDER BY created_on DESC`
	return r.queryJobs(ctx, query, domain.JobStageScheduled, from, to)
}

func (r *jobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job             domain.Job
		customerInfo    []byte
		rampConfig      []byte
		pricing         []byte
		installSchedule []byte
		removalSchedule []byte
		commLog         []byte
		removalEstimate sql.NullFloat64
	)
	err := row.Scan(
		&job.ID, &job.Stage, &customerInfo, &rampConfig, &pricing, &installSchedule,
		&removalSchedule, &commLog, &job.PaymentLinkURL, &job.AgreementLink, &job.QuoteHTML,
		&removalEstimate, &job.CreatedOn, &job.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}

	if len(customerInfo) > 0 {
		job.CustomerInfo = &domain.CustomerInfo{}
		if err := unmarshalJSON(customerInfo, job.CustomerInfo); err != nil {
			return nil, err
		}
	}
	if len(rampConfig) > 0 {
		job.RampConfiguration = &domain.RampConfiguration{}
		if err := unmarshalJSON(rampConfig, job.RampConfiguration); err != nil {
			return nil, err
		}
	}
	if len(pricing) > 0 {
		job.Pricing = &domain.Pricing{}
		if err := unmarshalJSON(pricing, job.Pricing); err != nil {
			return nil, err
		}
	}
	if len(installSchedule) > 0 {
		job.InstallationSchedule = &domain.Schedule{}
		if err := unmarshalJSON(installSchedule, job.InstallationSchedule); err != nil {
			return nil, err
		}
	}
	if len(removalSchedule) > 0 {
		job.RemovalSchedule = &domain.Schedule{}
		if err := unmarshalJSON(removalSchedule, job.RemovalSchedule); err != nil {
			return nil, err
		}
	}
	job.CommunicationLog = []domain.CommunicationEntry{}
	if err := unmarshalJSON(commLog, &job.CommunicationLog); err != nil {
		return nil, err
	}
	if removalEstimate.Valid {
		job.RemovalCostEstimate = &removalEstimate.Float64
	}
	return &job, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
