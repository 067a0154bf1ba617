package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Authentication events
	CodeSentEvent     AuditEventType = "CODE_SENT"
	UserLoginEvent    AuditEventType = "USER_LOGIN"
	AdminLoginEvent   AuditEventType = "ADMIN_LOGIN"
	LoginFailureEvent AuditEventType = "LOGIN_FAILED"
	TokenRefreshEvent AuditEventType = "TOKEN_REFRESHED"
	UserLogoutEvent   AuditEventType = "USER_LOGOUT"

	// Moderation events
	PostSubmittedEvent AuditEventType = "POST_SUBMITTED"
	PostReviewedEvent  AuditEventType = "POST_REVIEWED"

	// Administration events
	UserStatusChangedEvent AuditEventType = "USER_STATUS_CHANGED"
	RolesAssignedEvent     AuditEventType = "ROLES_ASSIGNED"
	MatrixUpdatedEvent     AuditEventType = "PERMISSION_MATRIX_UPDATED"
)

// AuditEvent records a security-relevant business event.
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    string                 `json:"user_id,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated.
func NewAuditEvent(eventType AuditEventType, userID string) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event.
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithPhone sets the phone field.
func (e *AuditEvent) WithPhone(phone string) *AuditEvent {
	e.Phone = phone
	return e
}

// WithMetadata adds metadata to the event.
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
