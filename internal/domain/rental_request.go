package domain

import "time"

type RentalRequestStatus string

const (
	RentalRequestStatusPending    RentalRequestStatus = "pending"
	RentalRequestStatusJobCreated RentalRequestStatus = "job created"
	RentalRequestStatusRejected   RentalRequestStatus = "rejected"
	RentalRequestStatusArchived   RentalRequestStatus = "archived"
)

type SalesStage string

const (
	SalesStageRentalRequest SalesStage = "Rental Request"
	SalesStageContacted     SalesStage = "Contacted"
	SalesStageQuoteSent     SalesStage = "Quote Sent"
	SalesStageJobCreated    SalesStage = "Job Created"
)

// RequestCustomerInfo is the intake subset of CustomerInfo; the install
// address lives on the request itself.
type RequestCustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type RampDetails struct {
	KnowRampLength     bool     `json:"know_ramp_length"`
	RampLength         *float64 `json:"ramp_length,omitempty"`
	KnowRentalDuration bool     `json:"know_rental_duration"`
	RentalDuration     *int     `json:"rental_duration,omitempty"`
	InstallTimeframe   string   `json:"install_timeframe"`
	MobilityAids       []string `json:"mobility_aids,omitempty"`
}

// RentalRequest is a customer lead. It may produce at most one Job; once
// JobID is set, conversion must be rejected.
type RentalRequest struct {
	ID             string              `json:"id"`
	CustomerInfo   RequestCustomerInfo `json:"customer_info"`
	RampDetails    RampDetails         `json:"ramp_details"`
	InstallAddress string              `json:"install_address"`
	Status         RentalRequestStatus `json:"status"`
	SalesStage     SalesStage          `json:"sales_stage"`
	JobID          string              `json:"job_id,omitempty"`
	CreatedOn      time.Time           `json:"created_on"`
	UpdatedOn      time.Time           `json:"updated_on"`
}
