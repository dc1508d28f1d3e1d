package server

// StartReviewRequest names the version pair to review and the review
// context that drives section visibility.
type StartReviewRequest struct {
	ReportID            string `json:"report_id" example:"rep-2024-0183"`
	BaseVersion         string `json:"base_version" example:"3"`
	HeadVersion         string `json:"head_version" example:"4"`
	Flow                string `json:"flow,omitempty" example:"SFO"`
	RegistrationPurpose string `json:"registration_purpose,omitempty" example:"OBPS Regulated Operation"`
	RequestedBy         string `json:"requested_by,omitempty" example:"reviewer@example.com"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
