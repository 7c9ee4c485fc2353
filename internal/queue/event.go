// Package queue defines message payloads exchanged over the message broker.
package queue

// DomainEvent is published best-effort after selected mutations (contract
// renewal or expiry, workout completion). It carries enough information
// for downstream consumers to log, notify, or trigger analytics without
// querying the primary store. Publication failures never affect the
// triggering request.
type DomainEvent struct {
	Type           string `json:"type"` // "contract.updated" | "workout.completed"
	AlunoEmail     string `json:"aluno_email"`
	ProfessorEmail string `json:"professor_email,omitempty"`
	ContractEnd    string `json:"contract_end,omitempty"`
	Blocked        bool   `json:"blocked,omitempty"`
	TreinoID       int64  `json:"treino_id,omitempty"`
	OccurredAt     string `json:"occurred_at"`
}

// Event type values.
const (
	EventContractUpdated  = "contract.updated"
	EventWorkoutCompleted = "workout.completed"
)
