package logging

// Standardized attribute keys used across relink log records.
const (
	FieldComponent = "component"
	FieldRecordID  = "record_id"
	FieldTitle     = "title"
	FieldScore     = "score"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
)
