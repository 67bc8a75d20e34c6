package auth

import "github.com/golang-jwt/jwt/v5"

// RoleDriver is the only role the driver API accepts.
const RoleDriver = "driver"

// DriverTokenPayload captures the data available when minting a driver JWT.
type DriverTokenPayload struct {
	VanID     int64
	VanNumber string
	RegionID  int64
	Phone     string
}

// DriverTokenClaims represents the typed JWT issued to drivers after OTP
// verification.
type DriverTokenClaims struct {
	VanID     int64  `json:"van_id"`
	VanNumber string `json:"van_number"`
	RegionID  int64  `json:"region_id"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}
