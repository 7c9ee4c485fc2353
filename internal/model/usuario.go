package model

// Usuario mirrors the 'usuarios' table. Emails are stored normalized
// (lowercase, trimmed). Senha is kept verbatim because the hosted store
// performs the credential match; it is stripped from every response by
// Sanitized.
//
// Blocked is derived from ContractEnd at the moment of the last contract
// update, never re-evaluated on read.
type Usuario struct {
	ID          int64  `json:"id,omitempty"`
	Email       string `json:"email"`
	Senha       string `json:"senha,omitempty"`
	Nome        string `json:"nome"`
	Role        string `json:"role"`
	CriadoPor   string `json:"criado_por,omitempty"`
	ContractEnd string `json:"contract_end,omitempty"`
	Blocked     bool   `json:"blocked"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Roles accepted in usuarios.role.
const (
	RoleAdmin     = "admin"
	RoleProfessor = "professor"
	RoleAluno     = "aluno"
)

// Sanitized returns a copy safe for responses.
func (u Usuario) Sanitized() Usuario {
	u.Senha = ""
	return u
}
