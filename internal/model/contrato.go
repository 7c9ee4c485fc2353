package model

// ContratoConfig is the per-pair contract settings row in
// 'contrato_config'. The pair (professor_email, aluno_email) is the
// logical key; the destination schema may or may not carry the matching
// unique constraint, which is why the repository implements an explicit
// upsert fallback.
type ContratoConfig struct {
	ID             int64  `json:"id,omitempty"`
	ProfessorEmail string `json:"professor_email"`
	AlunoEmail     string `json:"aluno_email"`
	ProfessorNome  string `json:"professor_nome,omitempty"`
	ProfessorCref  string `json:"professor_cref,omitempty"`
	Opcao1         int64  `json:"opcao1,omitempty"`
	Opcao2         int64  `json:"opcao2,omitempty"`
	UpdatedAt      string `json:"updated_at,omitempty"`
}

// ContratoAdmin mirrors 'contratos_admin'. It tracks the professor/admin
// contract window independently of usuarios.contract_end; both are updated
// in parallel for compatibility with older clients.
type ContratoAdmin struct {
	ID             int64  `json:"id,omitempty"`
	ProfessorEmail string `json:"professor_email"`
	AdminEmail     string `json:"admin_email,omitempty"`
	ContractStart  string `json:"contract_start,omitempty"`
	ContractEnd    string `json:"contract_end,omitempty"`
	Status         string `json:"status,omitempty"`
}

// Contrato is a signed contract document row in 'contratos'. Binary
// content lives on disk; only relative paths are stored.
type Contrato struct {
	ID             int64  `json:"id,omitempty"`
	AlunoEmail     string `json:"aluno_email"`
	ProfessorEmail string `json:"professor_email"`
	ArquivoPath    string `json:"arquivo_path,omitempty"`
	Dados          any    `json:"dados,omitempty"`
	AssinaturaPath string `json:"assinatura_path,omitempty"`
	AssinadoEm     string `json:"assinado_em,omitempty"`
}
