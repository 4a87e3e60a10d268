package memstore

import (
	"maps"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// row wraps a stored value with its insertion sequence, used to order
// listings when timestamps tie
type row[T any] struct {
	seq   int64
	value T
}

// table is a copy-on-write map. Once shared between two states, the first
// write on either side copies the map, so untouched tables cost nothing to
// snapshot. Stored values are replaced on write and never mutated in place.
type table[V any] struct {
	rows   map[string]V
	shared bool
}

func newTable[V any]() table[V] {
	return table[V]{rows: make(map[string]V)}
}

func (t *table[V]) get(id string) (V, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[V]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[V]) set(id string, v V) {
	t.own()
	t.rows[id] = v
}

func (t *table[V]) remove(id string) {
	t.own()
	delete(t.rows, id)
}

func (t *table[V]) own() {
	if t.shared {
		t.rows = maps.Clone(t.rows)
		t.shared = false
	}
}

// share hands out a second reference to the rows and marks both sides
func (t *table[V]) share() table[V] {
	t.shared = true
	return *t
}

type state struct {
	seq         int64
	accounts    table[row[*entity.Account]]
	usernames   table[string]
	deposits    table[row[entity.DepositRequest]]
	withdrawals table[row[entity.WithdrawalRequest]]
	rounds      table[row[entity.Round]]
	bets        table[row[entity.Bet]]
	outbox      table[row[entity.LedgerEvent]]
}

func newState() *state {
	return &state{
		accounts:    newTable[row[*entity.Account]](),
		usernames:   newTable[string](),
		deposits:    newTable[row[entity.DepositRequest]](),
		withdrawals: newTable[row[entity.WithdrawalRequest]](),
		rounds:      newTable[row[entity.Round]](),
		bets:        newTable[row[entity.Bet]](),
		outbox:      newTable[row[entity.LedgerEvent]](),
	}
}

func (s *state) nextSeq() int64 {
	s.seq++
	return s.seq
}

// clone shares every table with the copy. Account rows hold pointers, which
// is safe because writers always store a fresh copyAccount.
func (s *state) clone() *state {
	return &state{
		seq:         s.seq,
		accounts:    s.accounts.share(),
		usernames:   s.usernames.share(),
		deposits:    s.deposits.share(),
		withdrawals: s.withdrawals.share(),
		rounds:      s.rounds.share(),
		bets:        s.bets.share(),
		outbox:      s.outbox.share(),
	}
}

func copyAccount(a *entity.Account) *entity.Account {
	return entity.RestoreAccount(a.ID, a.Username, a.PasswordHash, a.Balance(), a.IsAdmin, a.CreatedAt, a.UpdatedAt)
}
