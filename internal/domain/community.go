package domain

type Community struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	CreatedOn    string `json:"created_on"`
	MemberCount  int32  `json:"member_count"`
}
