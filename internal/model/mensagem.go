package model

// Mensagem mirrors the 'mensagens' table. Rows are produced both by
// explicit user action and as best-effort side effects of contract and
// workout mutations.
type Mensagem struct {
	ID        int64  `json:"id,omitempty"`
	De        string `json:"de"`
	Para      string `json:"para"`
	Texto     string `json:"texto"`
	CreatedAt string `json:"created_at,omitempty"`
}
