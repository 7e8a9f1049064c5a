package entity

// Customer is an entry in the store's customer roster. The membership flag
// gates discount eligibility; the gateway fetches customers and never
// writes them.
type Customer struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	IsMember   bool   `json:"isMember"`
	MemberCode string `json:"memberCode,omitempty"`
}
