package auth

// Role is the closed set of account roles. Every permission check in the
// report lifecycle matches on these constants, never on free-form strings.
type Role string

const (
	RoleMother       Role = "mother"
	RoleAunt         Role = "aunt"
	RoleEducator     Role = "educator"
	RolePsychologist Role = "psychologist"
	RoleDirector     Role = "director"
	RoleAdmin        Role = "admin"
)

// AllRoles lists every valid role, used for input validation.
var AllRoles = []Role{RoleMother, RoleAunt, RoleEducator, RolePsychologist, RoleDirector, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleMother, RoleAunt, RoleEducator, RolePsychologist, RoleDirector, RoleAdmin:
		return true
	}
	return false
}

// IsDeclarant reports whether the role is a front-line reporter: sees only
// its own submissions.
func (r Role) IsDeclarant() bool {
	switch r {
	case RoleMother, RoleAunt, RoleEducator:
		return true
	}
	return false
}

// IsAnalyst reports whether the role can be assigned a report and drive
// the workflow.
func (r Role) IsAnalyst() bool {
	return r == RolePsychologist
}

// IsDecisionMaker reports whether the role issues final dispositions.
func (r Role) IsDecisionMaker() bool {
	return r == RoleDirector || r == RoleAdmin
}

// CanClassify reports whether the role may classify or assign reports.
func (r Role) CanClassify() bool {
	switch r {
	case RolePsychologist, RoleDirector, RoleAdmin:
		return true
	}
	return false
}

// CanDecide reports whether the role may issue a decision.
func (r Role) CanDecide() bool {
	return r.IsDecisionMaker()
}

// CanViewIdentity reports whether the role sees the declarant behind an
// anonymous report.
func (r Role) CanViewIdentity() bool {
	switch r {
	case RolePsychologist, RoleDirector, RoleAdmin:
		return true
	}
	return false
}

// AnalystNotifyRoles are the roles alerted when a new report is filed.
// The fan-out is global, not village-scoped.
var AnalystNotifyRoles = []Role{RolePsychologist, RoleDirector}
