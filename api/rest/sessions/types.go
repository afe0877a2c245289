package sessions

// response payload for session creation
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	ExpiresAt string `json:"expires_at"`
}

// generic status response
type StatusResponse struct {
	Status string `json:"status"`
}
