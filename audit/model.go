// audit/model.go
package audit

import "time"

// DecisionLog is one authorization decision as recorded in the audit trail.
type DecisionLog struct {
	Timestamp      time.Time `json:"timestamp"`
	PrincipalUUID  string    `json:"principal_uuid"`
	PrincipalLogin string    `json:"principal_login"`
	Action         string    `json:"action"`
	ResourceOwner  string    `json:"resource_owner"`
	Allowed        bool      `json:"allowed"`
	Reason         string    `json:"reason,omitempty"`
}
