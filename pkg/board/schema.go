package board

import "fmt"

// Redis key pattern helpers
//
// All Redis keys and Pub/Sub channels are namespaced by profile name so that several
// independent kanban documents can share one Redis server.
//
// Key pattern: kanban:{profile}:{storage_key}
// Channel pattern: kanban:{profile}:{event_type}

// DefaultStorageKey is the well-known key holding the whole document.
const DefaultStorageKey = "kanban.v1"

// DocumentKey returns the Redis key holding the document.
// Pattern: kanban:{profile}:{storage_key}
func DocumentKey(profile, storageKey string) string {
	return fmt.Sprintf("kanban:%s:%s", profile, storageKey)
}

// RequestNameChannel returns the Pub/Sub channel used to ask a visible surface
// to prompt for a board name.
// Pattern: kanban:{profile}:request_name
func RequestNameChannel(profile string) string {
	return fmt.Sprintf("kanban:%s:request_name", profile)
}

// DocumentEventsChannel returns the Pub/Sub channel that carries every saved document.
// Pattern: kanban:{profile}:document_events
func DocumentEventsChannel(profile string) string {
	return fmt.Sprintf("kanban:%s:document_events", profile)
}

// RequestNameMessage is the payload-free request-name signal.
const RequestNameMessage = "kanban/request-name"
