package model

// Produto mirrors the 'produtos' table. Deletion is soft (ativo=false);
// ordem values are not contiguous, only their relative order matters.
type Produto struct {
	ID        int64  `json:"id,omitempty"`
	Titulo    string `json:"titulo"`
	ImagemURL string `json:"imagem_url,omitempty"`
	Link      string `json:"link,omitempty"`
	Ordem     int64  `json:"ordem"`
	Ativo     bool   `json:"ativo"`
}

// Configuracao is a generic key/value row in 'configuracoes'.
type Configuracao struct {
	ID        int64  `json:"id,omitempty"`
	Chave     string `json:"chave"`
	Valor     string `json:"valor"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
