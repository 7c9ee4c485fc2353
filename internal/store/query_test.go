package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryEncodeKeepsInsertionOrder(t *testing.T) {
	q := NewQuery().
		Eq("aluno_email", "ana@x.com").
		Eq("ativo", true).
		OrderDesc("created_at").
		Limit(10).
		Offset(20)
	assert.Equal(t,
		"aluno_email=eq.ana%40x.com&ativo=eq.true&order=created_at.desc&limit=10&offset=20",
		q.Encode())
}

func TestQueryOrRendersDisjunction(t *testing.T) {
	q := NewQuery().Or("de", "a@x.com", "para", "a@x.com").OrderDesc("created_at")
	assert.Equal(t, "or=%28de.eq.a%40x.com%2Cpara.eq.a%40x.com%29&order=created_at.desc", q.Encode())
}

func TestQuerySelectComesFirst(t *testing.T) {
	q := NewQuery().Eq("id", 3).Select("id,email")
	assert.Equal(t, "select=id%2Cemail&id=eq.3", q.Encode())
}

func TestQueryZeroValueEncodesEmpty(t *testing.T) {
	assert.Equal(t, "", NewQuery().Encode())
}

func TestRecordGetters(t *testing.T) {
	r := Record{"id": float64(42), "nome": "Ana", "ativo": true}
	assert.EqualValues(t, 42, r.Int64("id"))
	assert.Equal(t, "Ana", r.String("nome"))
	assert.True(t, r.Bool("ativo"))
	assert.True(t, r.Has("nome"))
	assert.False(t, r.Has("senha"))
}
