package handler

type panRequest struct {
	PANNumber string `json:"pan_number"`
}

type aadhaarRequest struct {
	AadhaarNumber string `json:"aadhaar_number"`
}

type verificationStatusResponse struct {
	PANVerified     bool `json:"pan_verified"`
	AadhaarVerified bool `json:"aadhaar_verified"`
	Verified        bool `json:"verified"`
}
