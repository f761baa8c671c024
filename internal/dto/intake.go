package dto

// IntakeResponse is returned to the form platform after a processed submission.
type IntakeResponse struct {
	Success       bool   `json:"success"`
	Matched       bool   `json:"matched"`
	ParticipantID string `json:"participantId"`
}

// IntakeError is the error body returned to the form platform.
type IntakeError struct {
	Error string `json:"error"`
}
