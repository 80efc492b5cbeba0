package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy and LastUpdatedBy hold the actor id supplied by the caller.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// NewAuditFields stamps creation and update with the same actor and time.
func NewAuditFields(actorID string, at time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     at,
		CreatedBy:     actorID,
		LastUpdatedAt: at,
		LastUpdatedBy: actorID,
	}
}

// Touch records an update by actorID.
func (a *AuditFields) Touch(actorID string, at time.Time) {
	a.LastUpdatedAt = at
	a.LastUpdatedBy = actorID
}
