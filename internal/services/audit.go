package services

import (
	"encoding/json"
	"log"

	"github.com/you/communitysvc/domain"
)

// logAudit writes a structured audit line for security-relevant events.
func logAudit(event *domain.AuditEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("AUDIT %s user_id=%s (marshal failed: %v)", event.EventType, event.UserID, err)
		return
	}
	log.Printf("AUDIT %s", data)
}
