package domain

import (
	"errors"
	"time"
)

const (
	RoleSeeker    = "seeker"
	RoleRecruiter = "recruiter"
	RolePanchayat = "panchayat"
	RoleAdmin     = "admin"
)

// Membership is the user's loyalty tier. Tiers only move forward.
type Membership string

const (
	MembershipRise    Membership = "Rise"
	MembershipBloom   Membership = "Bloom"
	MembershipEmpower Membership = "Empower"
)

// membershipRank orders tiers so upgrades can be validated.
var membershipRank = map[Membership]int{
	MembershipRise:    0,
	MembershipBloom:   1,
	MembershipEmpower: 2,
}

// Rank returns the tier's position in the upgrade ladder, or -1 for an
// unknown tier.
func (m Membership) Rank() int {
	r, ok := membershipRank[m]
	if !ok {
		return -1
	}
	return r
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMembershipDowngrade = errors.New("membership tier cannot be downgraded")

// User models an authenticated actor: job seeker, recruiter, panchayat
// administrator or platform admin. Wallet balances live on the user document;
// money movement goes through the wallet service, which also writes the
// transaction ledger.
type User struct {
	ID                  string     `json:"id" bson:"_id,omitempty"`
	Name                string     `json:"name" bson:"name"`
	Email               string     `json:"email" bson:"email"`
	PasswordHash        string     `json:"-" bson:"password_hash"`
	Role                string     `json:"role" bson:"role"`
	AvatarURL           string     `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	Skills              []string   `json:"skills" bson:"skills"`
	Experience          string     `json:"experience,omitempty" bson:"experience,omitempty"`
	DesiredJobType      string     `json:"desired_job_type,omitempty" bson:"desired_job_type,omitempty"`
	LocationPreference  string     `json:"location_preference,omitempty" bson:"location_preference,omitempty"`
	IndustryPreferences []string   `json:"industry_preferences" bson:"industry_preferences"`
	Rating              float64    `json:"rating" bson:"rating"`
	Membership          Membership `json:"membership" bson:"membership"`
	WalletBalance       int64      `json:"wallet_balance" bson:"wallet_balance"`
	PinkTokens          int64      `json:"pink_tokens" bson:"pink_tokens"`
	PINHash             string     `json:"-" bson:"pin_hash,omitempty"`
	MobileNumber        string     `json:"mobile_number,omitempty" bson:"mobile_number,omitempty"`
	Address             string     `json:"address,omitempty" bson:"address,omitempty"`
	PANVerified         bool       `json:"pan_verified" bson:"pan_verified"`
	AadhaarVerified     bool       `json:"aadhaar_verified" bson:"aadhaar_verified"`
	CreatedAt           time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" bson:"updated_at"`
}

// Verified reports whether the user has cleared the document gate: both PAN
// and Aadhaar must be attested.
func (u *User) Verified() bool {
	return u.PANVerified && u.AadhaarVerified
}

// HasPIN reports whether the user has set a wallet PIN.
func (u *User) HasPIN() bool {
	return u.PINHash != ""
}
