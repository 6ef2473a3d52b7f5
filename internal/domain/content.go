package domain

// ExecutiveSession é uma sessão de mentoria com um executivo convidado
type ExecutiveSession struct {
	ID                 string   `json:"id"`
	HostName           string   `json:"host_name"`
	HostTitle          string   `json:"host_title"`
	HostPhoto          string   `json:"host_photo"`
	Theme              string   `json:"theme"`
	Pitch              string   `json:"pitch"`
	ValuePropositions  []string `json:"value_propositions"`
	ExampleDeliverable string   `json:"example_deliverable"`
}

func (s ExecutiveSession) SubjectID() string   { return s.ID }
func (s ExecutiveSession) SubjectName() string { return s.HostName }

// RedirectURL é vazio: a solicitação de sessão não leva a um parceiro externo
func (s ExecutiveSession) RedirectURL() string { return "" }

type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
