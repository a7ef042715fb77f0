package domain

import "time"

type JobStage string

const (
	JobStageRequested        JobStage = "REQUESTED"
	JobStageContacted        JobStage = "CONTACTED"
	JobStageQuoteSent        JobStage = "QUOTE_SENT"
	JobStageQuoteAccepted    JobStage = "QUOTE_ACCEPTED"
	JobStagePaid             JobStage = "PAID"
	JobStageScheduled        JobStage = "SCHEDULED"
	JobStageInstalled        JobStage = "INSTALLED"
	JobStageRemovalScheduled JobStage = "REMOVAL_SCHEDULED"
	JobStageRemoved          JobStage = "REMOVED"
	JobStageCompleted        JobStage = "COMPLETED"
)

// JobStages lists every stage in pipeline order.
var JobStages = []JobStage{
	JobStageRequested,
	JobStageContacted,
	JobStageQuoteSent,
	JobStageQuoteAccepted,
	JobStagePaid,
	JobStageScheduled,
	JobStageInstalled,
	JobStageRemovalScheduled,
	JobStageRemoved,
	JobStageCompleted,
}

func (s JobStage) Valid() bool {
	for _, stage := range JobStages {
		if s == stage {
			return true
		}
	}
	return false
}

type RampComponentType string

const (
	RampComponentTypeRamp    RampComponentType = "ramp"
	RampComponentTypeLanding RampComponentType = "landing"
)

type RampComponent struct {
	Type     RampComponentType `json:"type"`
	Size     string            `json:"size"`
	Quantity int               `json:"quantity"`
	Width    *float64          `json:"width,omitempty"`
}

type RampConfiguration struct {
	Components     []RampComponent `json:"components"`
	TotalLength    float64         `json:"total_length"`
	RentalDuration int             `json:"rental_duration"` // months
}

// ComponentCount returns the total quantity across all components.
func (c RampConfiguration) ComponentCount() int {
	total := 0
	for _, comp := range c.Components {
		total += comp.Quantity
	}
	return total
}

// LandingCount returns the total quantity of landing components.
func (c RampConfiguration) LandingCount() int {
	total := 0
	for _, comp := range c.Components {
		if comp.Type == RampComponentTypeLanding {
			total += comp.Quantity
		}
	}
	return total
}

type CustomerInfo struct {
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	InstallAddress string   `json:"install_address"`
	MobilityAids   []string `json:"mobility_aids,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

func (c CustomerInfo) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Pricing is the computed fee breakdown. All amounts are whole dollars.
type Pricing struct {
	DeliveryFee float64 `json:"delivery_fee"`
	InstallFee  float64 `json:"install_fee"`
	MonthlyRate float64 `json:"monthly_rate"`
	UpfrontFee  float64 `json:"upfront_fee"`
}

type Schedule struct {
	Date     time.Time `json:"date"`
	TimeSlot string    `json:"time_slot"`
}

type CommunicationChannel string

const (
	CommunicationChannelEmail    CommunicationChannel = "email"
	CommunicationChannelPhone    CommunicationChannel = "phone"
	CommunicationChannelInPerson CommunicationChannel = "in-person"
	CommunicationChannelSystem   CommunicationChannel = "system"
)

type CommunicationEntry struct {
	Date    time.Time            `json:"date"`
	Channel CommunicationChannel `json:"channel"`
	Notes   string               `json:"notes"`
}

type Job struct {
	ID                   string               `json:"id"`
	Stage                JobStage             `json:"stage"`
	CustomerInfo         *CustomerInfo        `json:"customer_info,omitempty"`
	RampConfiguration    *RampConfiguration   `json:"ramp_configuration,omitempty"`
	Pricing              *Pricing             `json:"pricing,omitempty"`
	InstallationSchedule *Schedule            `json:"installation_schedule,omitempty"`
	RemovalSchedule      *Schedule            `json:"removal_schedule,omitempty"`
	CommunicationLog     []CommunicationEntry `json:"communication_log"`
	PaymentLinkURL       string               `json:"payment_link_url,omitempty"`
	AgreementLink        string               `json:"agreement_link,omitempty"`
	QuoteHTML            string               `json:"quote_html,omitempty"`
	RemovalCostEstimate  *float64             `json:"removal_cost_estimate,omitempty"`
	CreatedOn            time.Time            `json:"created_on"`
	UpdatedOn            time.Time            `json:"updated_on"`
}

// CustomerEmail returns the customer's email address, or "" when not on file.
func (j *Job) CustomerEmail() string {
	if j.CustomerInfo == nil {
		return ""
	}
	return j.CustomerInfo.Email
}

// AppendLog appends a communication log entry timestamped now.
func (j *Job) AppendLog(channel CommunicationChannel, notes string) {
	j.CommunicationLog = append(j.CommunicationLog, CommunicationEntry{
		Date:    time.Now().UTC(),
		Channel: channel,
		Notes:   notes,
	})
}
