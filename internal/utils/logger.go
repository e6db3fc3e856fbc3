package utils

import (
	"log"
	"strings"
)

// LogEvent prints one line per service-level event. Module and action form
// the bracketed tag; message stays short and free of request payloads.
func LogEvent(requestID, module, action, message string) {
	tag := strings.ToUpper(strings.TrimSpace(module)) + "." + strings.TrimSpace(action)
	if requestID == "" {
		requestID = "-"
	}
	log.Printf("[%s] request_id=%s %s", tag, requestID, message)
}
