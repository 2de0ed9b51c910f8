package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment sources distinguish which frontend flow initiated a transaction so
// the gateway callbacks can redirect to the right page.
const (
	PaymentSourceMyApplications = "myApplications"
	PaymentSourceAppliedTutors  = "appliedTutors"
)

// Payment records a transaction against the external payment gateway.
// A payment is created with PaidStatus false when the gateway session is
// opened and flipped to true by the gateway's success callback. Failed
// transactions are deleted rather than kept.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	JobID         string             `bson:"jobId" json:"jobId"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Amount        float64            `bson:"amount" json:"amount"`
	Email         string             `bson:"email" json:"email"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	Source        string             `bson:"source,omitempty" json:"source,omitempty"`
	PaidStatus    bool               `bson:"paidStatus" json:"paidStatus"`
	PaymentTime   time.Time          `bson:"paymentTime" json:"paymentTime"`
}

// PaidJob pairs a completed payment with the tutor request it paid for.
// JobDetails is nil when the underlying request has since been deleted.
type PaidJob struct {
	Payment    `bson:",inline"`
	JobDetails *TutorRequest `json:"jobDetails"`
}
