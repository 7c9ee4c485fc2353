package model

// Treino mirrors the 'treinos' table. Treino (the payload) is opaque
// structured data assembled by the client; the server never validates it.
type Treino struct {
	ID         int64  `json:"id,omitempty"`
	AlunoEmail string `json:"aluno_email"`
	Treino     any    `json:"treino"`
	Data       string `json:"data,omitempty"`
}

// Progresso is one append-only progress entry in 'progresso'.
type Progresso struct {
	ID           int64   `json:"id,omitempty"`
	AlunoEmail   string  `json:"aluno_email"`
	TreinoID     int64   `json:"treino_id,omitempty"`
	PesoCorporal float64 `json:"peso_corporal,omitempty"`
	Cargas       any     `json:"cargas,omitempty"`
	Dados        any     `json:"dados,omitempty"`
	CreatedAt    string  `json:"created_at,omitempty"`
}
