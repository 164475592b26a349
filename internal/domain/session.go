package domain

// Role describes the self-selected user role captured at login.
type Role string

const (
	RoleStudent    Role = "Student"
	RoleFreelancer Role = "Freelancer"
	RoleFounder    Role = "Founder"
)

// Valid returns true if the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFreelancer, RoleFounder:
		return true
	}
	return false
}

// Session is the locally persisted identity record gating access to the
// analysis workflow. At most one session exists per installation; a
// re-login overwrites it wholesale.
type Session struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}
