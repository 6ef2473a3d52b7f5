package domain

import "time"

// LeadFormSubmission são os dados de contato informados ao solicitar um benefício.
// AvailableDates só é usado na solicitação de sessão executiva.
type LeadFormSubmission struct {
	FullName       string `json:"full_name" validate:"min=2,max=100"`
	CompanyName    string `json:"company_name" validate:"min=2,max=100"`
	Phone          string `json:"phone" validate:"min=10,max=20"`
	Email          string `json:"email" validate:"required,email,max=255"`
	AvailableDates string `json:"available_dates,omitempty"`
}

type ContactMessage struct {
	Name    string `json:"nome" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	CNPJ    string `json:"cnpj" validate:"omitempty,max=20"`
	Message string `json:"mensagem" validate:"required,max=2000"`
}

type LeadKind string

const (
	LeadKindBenefit LeadKind = "benefit_request"
	LeadKindSession LeadKind = "session_request"
	LeadKindContact LeadKind = "contact"
)

// Lead é o que chega ao time comercial. Nunca é persistido.
type Lead struct {
	Kind        LeadKind            `json:"kind"`
	SubjectID   string              `json:"subject_id,omitempty"`
	SubjectName string              `json:"subject_name,omitempty"`
	Submission  *LeadFormSubmission `json:"submission,omitempty"`
	Contact     *ContactMessage     `json:"contact,omitempty"`
	ReceivedAt  time.Time           `json:"received_at"`
}
