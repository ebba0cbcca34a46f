package model

import "workgate/internal/domain"

type Role string

const (
	RoleJobSeeker  Role = "job_seeker"
	RoleJoiner     Role = "joiner"
	RolePartTime   Role = "part_time"
	RoleEmployer   Role = "employer"
	RoleFreelancer Role = "freelancer"
)

// Currency is fixed; Razorpay amounts are expressed in paise.
const Currency = "INR"

// signupFees maps a role to its one-time signup fee in paise.
// The client never supplies an amount; this table is the only source.
var signupFees = map[Role]int64{
	RoleJobSeeker:  19900,
	RoleJoiner:     19900,
	RolePartTime:   24900,
	RoleEmployer:   42900,
	RoleFreelancer: 29900,
}

// PriceFor returns the signup fee in paise for a role.
func PriceFor(role Role) (int64, error) {
	fee, ok := signupFees[role]
	if !ok {
		return 0, domain.ErrInvalidRole
	}
	return fee, nil
}

func (r Role) Valid() bool {
	_, ok := signupFees[r]
	return ok
}
