package dto

import "time"

// APIResponse is the success envelope every handler writes
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewSuccessResponse wraps data in a success envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data, Timestamp: time.Now()}
}

// MessageResponse is returned by operations with nothing else to report
type MessageResponse struct {
	Message string `json:"message"`
}
