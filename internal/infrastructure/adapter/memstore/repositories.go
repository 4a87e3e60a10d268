package memstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

type accountRepository struct {
	view  view
	clock coreport.TimeProvider
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	return r.view(ctx, func(st *state) error {
		if st.usernames.has(account.Username) {
			return errs.ErrDuplicateUser
		}
		if st.accounts.has(account.ID) {
			return errs.ErrDuplicateUser
		}
		st.accounts.set(account.ID, row[*entity.Account]{seq: st.nextSeq(), value: copyAccount(account)})
		st.usernames.set(account.Username, account.ID)
		return nil
	})
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var found *entity.Account
	err := r.view(ctx, func(st *state) error {
		stored, ok := st.accounts.get(id)
		if !ok {
			return errs.ErrUserNotFound
		}
		found = copyAccount(stored.value)
		return nil
	})
	return found, err
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var found *entity.Account
	err := r.view(ctx, func(st *state) error {
		id, ok := st.usernames.get(username)
		if !ok {
			return errs.ErrUserNotFound
		}
		found = copyAccount(st.accounts.rows[id].value)
		return nil
	})
	return found, err
}

func (r *accountRepository) Credit(ctx context.Context, id string, amount int64) (int64, error) {
	return r.apply(ctx, id, amount, true)
}

func (r *accountRepository) Debit(ctx context.Context, id string, amount int64) (int64, error) {
	return r.apply(ctx, id, amount, false)
}

func (r *accountRepository) apply(ctx context.Context, id string, amount int64, credit bool) (int64, error) {
	if err := entity.ValidateAmount(amount); err != nil {
		return 0, err
	}

	var balance int64
	err := r.view(ctx, func(st *state) error {
		stored, ok := st.accounts.get(id)
		if !ok {
			return errs.ErrUserNotFound
		}
		current := stored.value.Balance()

		var next int64
		if credit {
			sum, err := entity.AddAmounts(current, amount)
			if err != nil {
				return err
			}
			next = sum
		} else {
			if current < amount {
				return errs.NewInsufficientBalanceError(id, amount, current)
			}
			next = current - amount
		}

		updated := copyAccount(stored.value)
		updated.SetBalance(next, r.clock)
		st.accounts.set(id, row[*entity.Account]{seq: stored.seq, value: updated})
		balance = next
		return nil
	})
	return balance, err
}

func (r *accountRepository) SetAdmin(ctx context.Context, id string) error {
	return r.view(ctx, func(st *state) error {
		stored, ok := st.accounts.get(id)
		if !ok {
			return errs.ErrUserNotFound
		}
		updated := copyAccount(stored.value)
		updated.Promote(r.clock)
		st.accounts.set(id, row[*entity.Account]{seq: stored.seq, value: updated})
		return nil
	})
}

type depositRepository struct {
	view view
}

func (r *depositRepository) Create(ctx context.Context, deposit *entity.DepositRequest) error {
	return r.view(ctx, func(st *state) error {
		if !st.accounts.has(deposit.UserID) {
			return errs.ErrUserNotFound
		}
		if st.deposits.has(deposit.ID) {
			return fmt.Errorf("%w: deposits %s", errs.ErrConflict, deposit.ID)
		}
		st.deposits.set(deposit.ID, row[entity.DepositRequest]{seq: st.nextSeq(), value: *deposit})
		return nil
	})
}

func (r *depositRepository) GetByID(ctx context.Context, id string) (*entity.DepositRequest, error) {
	var found *entity.DepositRequest
	err := r.view(ctx, func(st *state) error {
		stored, ok := st.deposits.get(id)
		if !ok {
			return errs.ErrDepositNotFound
		}
		v := stored.value
		found = &v
		return nil
	})
	return found, err
}

func (r *depositRepository) Resolve(ctx context.Context, deposit *entity.DepositRequest) error {
	return r.view(ctx, func(st *state) error {
		stored, ok := st.deposits.get(deposit.ID)
		if !ok {
			return errs.ErrDepositNotFound
		}
		if stored.value.Status != entity.StatusPending {
			return errs.NewStateTransitionError("deposit", deposit.ID, string(stored.value.Status), string(deposit.Status), errs.ErrAlreadyProcessed)
		}
		st.deposits.set(deposit.ID, row[entity.DepositRequest]{seq: stored.seq, value: *deposit})
		return nil
	})
}

func (r *depositRepository) List(ctx context.Context, filter entity.RequestFilter) ([]*entity.DepositRequest, error) {
	var out []*entity.DepositRequest
	err := r.view(ctx, func(st *state) error {
		rows := make([]row[entity.DepositRequest], 0, len(st.deposits.rows))
		for _, d := range st.deposits.rows {
			if matches(filter, d.value.UserID, d.value.Status) {
				rows = append(rows, d)
			}
		}
		newestFirst(rows, func(d entity.DepositRequest) int64 { return d.CreatedAt.UnixNano() })
		for _, d := range limitRows(rows, filter.Limit) {
			v := d.value
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}

type withdrawalRepository struct {
	view view
}

func (r *withdrawalRepository) Create(ctx context.Context, withdrawal *entity.WithdrawalRequest) error {
	return r.view(ctx, func(st *state) error {
		if !st.accounts.has(withdrawal.UserID) {
			return errs.ErrUserNotFound
		}
		if st.withdrawals.has(withdrawal.ID) {
			return fmt.Errorf("%w: withdrawals %s", errs.ErrConflict, withdrawal.ID)
		}
		st.withdrawals.set(withdrawal.ID, row[entity.WithdrawalRequest]{seq: st.nextSeq(), value: *withdrawal})
		return nil
	})
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error) {
	var found *entity.WithdrawalRequest
	err := r.view(ctx, func(st *state) error {
		stored, ok := st.withdrawals.get(id)
		if !ok {
			return errs.ErrWithdrawalNotFound
		}
		v := stored.value
		found = &v
		return nil
	})
	return found, err
}

func (r *withdrawalRepository) Resolve(ctx context.Context, withdrawal *entity.WithdrawalRequest) error {
	return r.view(ctx, func(st *state) error {
		stored, ok := st.withdrawals.get(withdrawal.ID)
		if !ok {
			return errs.ErrWithdrawalNotFound
		}
		if stored.value.Status != entity.StatusPending {
			return errs.NewStateTransitionError("withdrawal", withdrawal.ID, string(stored.value.Status), string(withdrawal.Status), errs.ErrAlreadyProcessed)
		}
		st.withdrawals.set(withdrawal.ID, row[entity.WithdrawalRequest]{seq: stored.seq, value: *withdrawal})
		return nil
	})
}

func (r *withdrawalRepository) List(ctx context.Context, filter entity.RequestFilter) ([]*entity.WithdrawalRequest, error) {
	var out []*entity.WithdrawalRequest
	err := r.view(ctx, func(st *state) error {
		rows := make([]row[entity.WithdrawalRequest], 0, len(st.withdrawals.rows))
		for _, w := range st.withdrawals.rows {
			if matches(filter, w.value.UserID, w.value.Status) {
				rows = append(rows, w)
			}
		}
		newestFirst(rows, func(w entity.WithdrawalRequest) int64 { return w.CreatedAt.UnixNano() })
		for _, w := range limitRows(rows, filter.Limit) {
			v := w.value
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}

type roundRepository struct {
	view view
}

func (r *roundRepository) Create(ctx context.Context, round *entity.Round) error {
	return r.view(ctx, func(st *state) error {
		if st.rounds.has(round.ID) {
			return fmt.Errorf("%w: rounds %s", errs.ErrConflict, round.ID)
		}
		st.rounds.set(round.ID, row[entity.Round]{seq: st.nextSeq(), value: *round})
		return nil
	})
}

func (r *roundRepository) GetByID(ctx context.Context, id string) (*entity.Round, error) {
	var found *entity.Round
	err := r.view(ctx, func(st *state) error {
		stored, ok := st.rounds.get(id)
		if !ok {
			return errs.ErrRoundNotFound
		}
		v := stored.value
		found = &v
		return nil
	})
	return found, err
}

// GetForBet needs no extra locking here since transactions never overlap
func (r *roundRepository) GetForBet(ctx context.Context, id string) (*entity.Round, error) {
	return r.GetByID(ctx, id)
}

func (r *roundRepository) Settle(ctx context.Context, round *entity.Round) error {
	return r.view(ctx, func(st *state) error {
		stored, ok := st.rounds.get(round.ID)
		if !ok {
			return errs.ErrRoundNotFound
		}
		if !stored.value.IsOpen() {
			return errs.NewStateTransitionError("round", round.ID, string(entity.RoundSettled), string(entity.RoundSettled), errs.ErrAlreadySettled)
		}
		st.rounds.set(round.ID, row[entity.Round]{seq: stored.seq, value: *round})
		return nil
	})
}

func (r *roundRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Round, error) {
	var out []*entity.Round
	err := r.view(ctx, func(st *state) error {
		rows := make([]row[entity.Round], 0, len(st.rounds.rows))
		for _, rd := range st.rounds.rows {
			rows = append(rows, rd)
		}
		newestFirst(rows, func(rd entity.Round) int64 { return rd.CreatedAt.UnixNano() })
		for _, rd := range limitRows(rows, limit) {
			v := rd.value
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}

type betRepository struct {
	view view
}

func (r *betRepository) Create(ctx context.Context, bet *entity.Bet) error {
	return r.view(ctx, func(st *state) error {
		if !st.rounds.has(bet.RoundID) {
			return errs.ErrRoundNotFound
		}
		if !st.accounts.has(bet.UserID) {
			return errs.ErrUserNotFound
		}
		if st.bets.has(bet.ID) {
			return fmt.Errorf("%w: bets %s", errs.ErrConflict, bet.ID)
		}
		st.bets.set(bet.ID, row[entity.Bet]{seq: st.nextSeq(), value: *bet})
		return nil
	})
}

func (r *betRepository) ListByRound(ctx context.Context, roundID string) ([]*entity.Bet, error) {
	var out []*entity.Bet
	err := r.view(ctx, func(st *state) error {
		rows := make([]row[entity.Bet], 0)
		for _, b := range st.bets.rows {
			if b.value.RoundID == roundID {
				rows = append(rows, b)
			}
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
		for _, b := range rows {
			v := b.value
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}

func (r *betRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Bet, error) {
	var out []*entity.Bet
	err := r.view(ctx, func(st *state) error {
		rows := make([]row[entity.Bet], 0)
		for _, b := range st.bets.rows {
			if b.value.UserID == userID {
				rows = append(rows, b)
			}
		}
		newestFirst(rows, func(b entity.Bet) int64 { return b.CreatedAt.UnixNano() })
		for _, b := range limitRows(rows, limit) {
			v := b.value
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}

func (r *betRepository) Settle(ctx context.Context, bet *entity.Bet) error {
	return r.view(ctx, func(st *state) error {
		stored, ok := st.bets.get(bet.ID)
		if !ok {
			return errs.ErrNotFound
		}
		if stored.value.IsSettled() {
			return errs.NewStateTransitionError("bet", bet.ID, "settled", "settled", errs.ErrAlreadySettled)
		}
		st.bets.set(bet.ID, row[entity.Bet]{seq: stored.seq, value: *bet})
		return nil
	})
}

type outboxRepository struct {
	view view
}

func (r *outboxRepository) Append(ctx context.Context, event *entity.LedgerEvent) error {
	return r.view(ctx, func(st *state) error {
		if st.outbox.has(event.ID) {
			return fmt.Errorf("%w: outbox %s", errs.ErrConflict, event.ID)
		}
		st.outbox.set(event.ID, row[entity.LedgerEvent]{seq: st.nextSeq(), value: *event})
		return nil
	})
}

func (r *outboxRepository) FetchPending(ctx context.Context, limit int) ([]*entity.LedgerEvent, error) {
	var out []*entity.LedgerEvent
	err := r.view(ctx, func(st *state) error {
		rows := make([]row[entity.LedgerEvent], 0)
		for _, e := range st.outbox.rows {
			if e.value.Status == entity.OutboxPending {
				rows = append(rows, e)
			}
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
		for _, e := range limitRows(rows, limit) {
			v := e.value
			out = append(out, &v)
		}
		return nil
	})
	return out, err
}

func (r *outboxRepository) UpdateDelivery(ctx context.Context, event *entity.LedgerEvent) error {
	return r.view(ctx, func(st *state) error {
		stored, ok := st.outbox.get(event.ID)
		if !ok {
			return errs.ErrNotFound
		}
		if event.Status == entity.OutboxSent {
			// only pending events are ever read back
			st.outbox.remove(event.ID)
			return nil
		}
		st.outbox.set(event.ID, row[entity.LedgerEvent]{seq: stored.seq, value: *event})
		return nil
	})
}

func matches(filter entity.RequestFilter, userID string, status entity.RequestStatus) bool {
	if filter.UserID != "" && filter.UserID != userID {
		return false
	}
	if filter.Status != "" && filter.Status != status {
		return false
	}
	return true
}

func newestFirst[T any](rows []row[T], createdAt func(T) int64) {
	sort.Slice(rows, func(i, j int) bool {
		ti, tj := createdAt(rows[i].value), createdAt(rows[j].value)
		if ti != tj {
			return ti > tj
		}
		return rows[i].seq > rows[j].seq
	})
}

func limitRows[T any](rows []row[T], limit int) []row[T] {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
