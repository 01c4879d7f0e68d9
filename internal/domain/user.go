package domain

type User struct {
	ID           int32  `json:"id"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

type CommunityRole string

const (
	CommunityRoleResident   CommunityRole = "RESIDENT"
	CommunityRoleJanitorial CommunityRole = "JANITORIAL"
	CommunityRoleAdmin      CommunityRole = "ADMIN"
)

// ParseCommunityRole rejects unknown role strings at the boundary.
func ParseCommunityRole(s string) (CommunityRole, error) {
	switch CommunityRole(s) {
	case CommunityRoleResident, CommunityRoleJanitorial, CommunityRoleAdmin:
		return CommunityRole(s), nil
	}
	return "", NewValidationError("unknown community role: " + s)
}

// CanActAsJanitorial reports whether the role covers janitorial duties.
// Admin implies janitorial capability within the community.
func (r CommunityRole) CanActAsJanitorial() bool {
	return r == CommunityRoleJanitorial || r == CommunityRoleAdmin
}

type Membership struct {
	UserID      int32         `json:"user_id"`
	CommunityID int32         `json:"community_id"`
	Role        CommunityRole `json:"role"`
	Active      bool          `json:"active"`
	JoinedOn    string        `json:"joined_on"`
}
