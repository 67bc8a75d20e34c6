package otp

// IssueRequest asks for a login code to be sent to a van's phone.
type IssueRequest struct {
	Phone       string `json:"phone" validate:"required,max=20"`
	CountryCode string `json:"country_code" validate:"required,max=8"`
}

// VerifyRequest exchanges a received code for a driver token.
type VerifyRequest struct {
	Phone       string `json:"phone" validate:"required,max=20"`
	CountryCode string `json:"country_code" validate:"required,max=8"`
	Code        string `json:"otp" validate:"required,max=10"`
}

// VerifyResponse carries the minted driver token and the van it belongs to.
type VerifyResponse struct {
	Token     string `json:"token"`
	VanID     int64  `json:"van_id"`
	VanNumber string `json:"van_number"`
	Region    string `json:"region"`
}
