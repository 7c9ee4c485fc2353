package model

// Aluno is the student profile row in 'alunos', keyed by email. It exists
// alongside the usuarios row and is created opportunistically: on first
// login or when a role=aluno user is created.
type Aluno struct {
	ID             int64  `json:"id,omitempty"`
	Email          string `json:"email"`
	Nome           string `json:"nome"`
	DataNascimento string `json:"data_nascimento,omitempty"`
	Bio            string `json:"bio,omitempty"`
	FotoURL        string `json:"foto_url,omitempty"`
}
