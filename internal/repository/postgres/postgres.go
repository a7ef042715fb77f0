package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"samedayramps-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.JobRepository
	repository.RentalRequestRepository
	repository.PricingVariablesRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                         db,
		JobRepository:              NewJobRepository(db),
		RentalRequestRepository:    NewRentalRequestRepository(db),
		PricingVariablesRepository: NewPricingVariablesRepository(db),
	}
}

// unmarshalJSON decodes a JSONB column into dst, leaving dst untouched for NULL.
func unmarshalJSON(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode jsonb value: %w", err)
	}
	return nil
}
