package models

// BillingCycle defines whether a student pays before or after the month.
type BillingCycle string

const (
	BillingPrePaid  BillingCycle = "PRE"
	BillingPostPaid BillingCycle = "POS"
)

// ModalityBilling defines how a modality is charged.
type ModalityBilling string

const (
	ModalityMonthly ModalityBilling = "MONTHLY"
	ModalitySession ModalityBilling = "SESSION"
)

// CommissionStatus defines the status of a commission payout.
type CommissionStatus string

const (
	CommissionAwaitingApproval CommissionStatus = "awaiting_approval"
	CommissionApproved         CommissionStatus = "approved"
)
