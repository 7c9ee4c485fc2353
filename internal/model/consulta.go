package model

// Consulta is an assessment/consultation row in 'consultas', referencing
// the client by usuarios.id. Dados is opaque JSON.
type Consulta struct {
	ID        int64  `json:"id,omitempty"`
	ClienteID int64  `json:"cliente_id"`
	Tipo      string `json:"tipo,omitempty"`
	Dados     any    `json:"dados,omitempty"`
	CriadoPor string `json:"criado_por,omitempty"`
	Data      string `json:"data,omitempty"`
}
