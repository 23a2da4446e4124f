package model

import "time"

// TopupStatus is the state of a top-up verification receipt
type TopupStatus string

const (
	TopupPending TopupStatus = "pending"
	TopupSuccess TopupStatus = "success"
	TopupFailed  TopupStatus = "failed"
)

// Terminal reports whether the status will not change again
func (s TopupStatus) Terminal() bool {
	return s == TopupSuccess || s == TopupFailed
}

// TopupReceipt records the outcome of verifying a gateway payment reference.
// One receipt exists per reference; the wallet is credited at most once,
// on the pending -> success transition.
type TopupReceipt struct {
	Reference string
	UserID    UserID
	Amount    int64 // minor units credited (0 until confirmed)
	Status    TopupStatus
	Message   string // user-facing outcome message from the gateway
	CreatedAt time.Time
	UpdatedAt time.Time
}
