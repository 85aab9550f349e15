package entity

// UserStatus is the lifecycle state of a user account.
type UserStatus string

const (
	// UserStatusActive mean user is verified and allowed to use the app.
	UserStatusActive UserStatus = "active"

	// UserStatusInactive mean user exists but has not been activated yet.
	UserStatusInactive UserStatus = "inactive"

	// UserStatusDisabled mean user is blocked from using the app.
	UserStatusDisabled UserStatus = "disabled"
)

func (us UserStatus) String() string {
	return string(us)
}

// Ensure normalizes unknown values to inactive, the creation default.
func (us UserStatus) Ensure() UserStatus {
	switch us {
	case UserStatusActive, UserStatusInactive, UserStatusDisabled:
		return us
	default:
		return UserStatusInactive
	}
}
