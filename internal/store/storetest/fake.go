// Package storetest provides in-memory Store implementations for tests.
// Mem emulates the store's query dialect closely enough to exercise the
// handlers end to end: eq filters, or-disjunctions, ordering, limit and
// offset, plus the schema failure modes the real store can report
// (missing relation, missing conflict target).
package storetest

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/meutreino/backend/internal/store"
)

// Mem is an in-memory Store keyed by table name.
type Mem struct {
	mu  sync.Mutex
	seq int64

	Tables map[string][]store.Record

	// Missing marks tables that report "relation does not exist".
	Missing map[string]bool
	// NoConflictTarget marks tables whose upsert fails with the
	// missing-unique-constraint error, forcing the manual fallback.
	NoConflictTarget map[string]bool
	// Err, when set, fails every operation. Used to simulate outages.
	Err error
}

// NewMem returns an empty Mem store.
func NewMem() *Mem {
	return &Mem{
		Tables:           map[string][]store.Record{},
		Missing:          map[string]bool{},
		NoConflictTarget: map[string]bool{},
	}
}

// Seed replaces the rows of a table.
func (m *Mem) Seed(table string, rows ...store.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tables[table] = append([]store.Record{}, rows...)
}

// Rows returns a copy of a table's rows.
func (m *Mem) Rows(table string) []store.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.Record{}, m.Tables[table]...)
}

func (m *Mem) check(table string) error {
	if m.Err != nil {
		return m.Err
	}
	if m.Missing[table] {
		return &store.Error{
			Kind:    store.KindRelationNotFound,
			Code:    "42P01",
			Message: fmt.Sprintf("relation %q does not exist", table),
		}
	}
	return nil
}

func (m *Mem) Select(ctx context.Context, table string, q store.Query) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(table); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &store.Error{Kind: store.KindTimeout, Message: "store request timed out"}
	}
	p := parseQuery(q)
	out := p.apply(m.Tables[table])
	return out, nil
}

func (m *Mem) Insert(ctx context.Context, table string, body any) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(table); err != nil {
		return nil, err
	}
	rows, err := toRecords(body)
	if err != nil {
		return nil, &store.Error{Message: err.Error()}
	}
	inserted := make([]store.Record, 0, len(rows))
	for _, r := range rows {
		row := store.Record{}
		for k, v := range r {
			row[k] = v
		}
		if !row.Has("id") {
			m.seq++
			row["id"] = float64(m.seq)
		}
		m.Tables[table] = append(m.Tables[table], row)
		inserted = append(inserted, row)
	}
	return inserted, nil
}

func (m *Mem) Update(ctx context.Context, table string, q store.Query, changes store.Record) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(table); err != nil {
		return nil, err
	}
	p := parseQuery(q)
	var out []store.Record
	for _, row := range m.Tables[table] {
		if !p.match(row) {
			continue
		}
		for k, v := range changes {
			row[k] = v
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *Mem) Delete(ctx context.Context, table string, q store.Query) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(table); err != nil {
		return nil, err
	}
	p := parseQuery(q)
	var kept, removed []store.Record
	for _, row := range m.Tables[table] {
		if p.match(row) {
			removed = append(removed, row)
		} else {
			kept = append(kept, row)
		}
	}
	m.Tables[table] = kept
	return removed, nil
}

func (m *Mem) Upsert(ctx context.Context, table string, onConflict string, body any) ([]store.Record, error) {
	m.mu.Lock()
	if err := m.check(table); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if m.NoConflictTarget[table] {
		m.mu.Unlock()
		return nil, &store.Error{
			Kind:    store.KindNoMatchingConstraint,
			Code:    "42P10",
			Message: "there is no unique or exclusion constraint matching the ON CONFLICT specification",
		}
	}
	rows, err := toRecords(body)
	if err != nil {
		m.mu.Unlock()
		return nil, &store.Error{Message: err.Error()}
	}
	keys := strings.Split(onConflict, ",")
	var out []store.Record
	for _, r := range rows {
		existing := m.findByKeys(table, keys, r)
		if existing != nil {
			for k, v := range r {
				existing[k] = v
			}
			out = append(out, existing)
			continue
		}
		row := store.Record{}
		for k, v := range r {
			row[k] = v
		}
		if !row.Has("id") {
			m.seq++
			row["id"] = float64(m.seq)
		}
		m.Tables[table] = append(m.Tables[table], row)
		out = append(out, row)
	}
	m.mu.Unlock()
	return out, nil
}

func (m *Mem) findByKeys(table string, keys []string, r store.Record) store.Record {
	for _, row := range m.Tables[table] {
		all := true
		for _, k := range keys {
			k = strings.TrimSpace(k)
			if fmt.Sprint(row[k]) != fmt.Sprint(r[k]) {
				all = false
				break
			}
		}
		if all {
			return row
		}
	}
	return nil
}

func toRecords(body any) ([]store.Record, error) {
	switch v := body.(type) {
	case store.Record:
		return []store.Record{v}, nil
	case []store.Record:
		return v, nil
	case map[string]any:
		return []store.Record{store.Record(v)}, nil
	}
	var one store.Record
	if err := store.Decode(body, &one); err != nil {
		return nil, fmt.Errorf("unsupported body type %T", body)
	}
	return []store.Record{one}, nil
}

// parsed holds the interpreted query. Mem interprets the encoded form so
// the Query type stays opaque outside the store package.
type parsed struct {
	eq      map[string]string
	or      [][2]string // column, value alternatives
	orderBy string
	desc    bool
	limit   int
	offset  int
	hasLim  bool
}

func parseQuery(q store.Query) parsed {
	p := parsed{eq: map[string]string{}, limit: -1}
	for _, part := range strings.Split(q.Encode(), "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		v, _ = url.QueryUnescape(v)
		switch k {
		case "select":
		case "order":
			first, _, _ := strings.Cut(v, ",")
			col, dir, _ := strings.Cut(first, ".")
			p.orderBy = col
			p.desc = dir == "desc"
		case "limit":
			p.limit, _ = strconv.Atoi(v)
			p.hasLim = true
		case "offset":
			p.offset, _ = strconv.Atoi(v)
		case "or":
			body := strings.TrimSuffix(strings.TrimPrefix(v, "("), ")")
			for _, alt := range strings.Split(body, ",") {
				col, rest, _ := strings.Cut(alt, ".")
				val := strings.TrimPrefix(rest, "eq.")
				p.or = append(p.or, [2]string{col, val})
			}
		default:
			p.eq[k] = strings.TrimPrefix(v, "eq.")
		}
	}
	return p
}

func (p parsed) match(row store.Record) bool {
	for col, want := range p.eq {
		if fmt.Sprint(row[col]) != want {
			return false
		}
	}
	if len(p.or) > 0 {
		any := false
		for _, alt := range p.or {
			if fmt.Sprint(row[alt[0]]) == alt[1] {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

func (p parsed) apply(rows []store.Record) []store.Record {
	out := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		if p.match(row) {
			out = append(out, row)
		}
	}
	if p.orderBy != "" {
		col, desc := p.orderBy, p.desc
		sort.SliceStable(out, func(i, j int) bool {
			less := lessValue(out[i][col], out[j][col])
			if desc {
				return !less && fmt.Sprint(out[i][col]) != fmt.Sprint(out[j][col])
			}
			return less
		})
	}
	if p.offset > 0 {
		if p.offset >= len(out) {
			return []store.Record{}
		}
		out = out[p.offset:]
	}
	if p.hasLim && p.limit >= 0 && p.limit < len(out) {
		out = out[:p.limit]
	}
	return out
}

func lessValue(a, b any) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af < bf
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}
