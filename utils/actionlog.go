package utils

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"
)

// LogAction appends a newline-delimited JSON entry for sensitive mutations
// (category deletion, customer deletion). Write failures are logged and
// swallowed; the audit trail is best-effort by design of the data flow,
// never a reason to fail the operation itself.
func LogAction(dir, action string, details map[string]interface{}) {
	entry := map[string]interface{}{
		"timestamp": time.Now().Format(time.RFC3339),
		"action":    action,
	}
	for k, v := range details {
		entry[k] = v
	}

	line, err := json.Marshal(entry)
	if err != nil {
		log.Printf("Failed to encode action log entry: %v", err)
		return
	}

	path := filepath.Join(dir, "pos-actions.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Failed to write action log: %v", err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		log.Printf("Failed to write action log: %v", err)
	}
}
