package dto

type ContactRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
}

type ContactView struct {
	Index        int    `json:"index"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Relationship string `json:"relationship"`
}

type ContactListResponse struct {
	Contacts []ContactView `json:"contacts"`
}
