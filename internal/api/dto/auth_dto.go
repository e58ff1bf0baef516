package dto

// TokenRequest is the issuance payload. Role and zone are validated in the
// auth service so the credential gate runs first and the dedicated error
// codes are preserved.
type TokenRequest struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
	Zone    string `json:"zone"`
}

// TokenResponse is the successful issuance payload.
type TokenResponse struct {
	Token            string `json:"token"`
	TokenType        string `json:"tokenType"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
}
