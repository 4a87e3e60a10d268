package settlement

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/outbox"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/round"
	"github.com/amirhossein-jamali/wager-ledger/internal/testkit"
	coremocks "github.com/amirhossein-jamali/wager-ledger/mocks/port/core"
)

type fixture struct {
	h       *testkit.Harness
	rounds  usecase.RoundUseCase
	settler usecase.SettlementUseCase
	metrics *coremocks.MockMetrics
}

func newFixture(t *testing.T, payouts *entity.PayoutTable) *fixture {
	h := testkit.NewHarness(t)
	metrics := coremocks.NewMockMetrics(t)
	metrics.EXPECT().RecordSettlement(mock.Anything, mock.Anything, mock.Anything).Maybe()

	h.SeedAccount(t, "admin", 0, true)
	return &fixture{
		h:       h,
		rounds:  round.NewRoundUseCase(h.TxManager, h.Recorder, payouts, h.IDs, h.Clock, h.Logger, entity.DefaultListLimits()),
		settler: NewSettlementUseCase(h.TxManager, h.Recorder, payouts, h.Clock, h.Logger, metrics),
		metrics: metrics,
	}
}

func (f *fixture) bet(t *testing.T, userID, roundID, color string, amount int64) *entity.Bet {
	t.Helper()
	res, err := f.rounds.PlaceBet(context.Background(), testkit.User(userID), roundID, color, amount)
	require.NoError(t, err)
	return res.Bet
}

func TestSettlementUseCase_SettleRound(t *testing.T) {
	ctx := context.Background()
	admin := testkit.Admin("admin")

	t.Run("Winning bet is paid twice the stake", func(t *testing.T) {
		f := newFixture(t, entity.DefaultPayoutTable())
		f.h.SeedAccount(t, "u1", 1000, false)
		f.h.SeedRound(t, "r1")
		f.bet(t, "u1", "r1", "red", 400)
		require.Equal(t, int64(600), f.h.Balance(t, "u1"))

		report, err := f.settler.SettleRound(ctx, admin, "r1", "red")
		require.NoError(t, err)
		assert.Equal(t, int64(1400), f.h.Balance(t, "u1"))
		assert.Equal(t, 1, report.BetsSettled)
		assert.Equal(t, 1, report.Winners)
		assert.Equal(t, int64(800), report.TotalPayout)
		assert.Equal(t, int64(400), report.TotalStaked)
		assert.Empty(t, report.Failures)
		assert.Equal(t, "red", report.Round.Result())
	})

	t.Run("Losing bet keeps the debit", func(t *testing.T) {
		f := newFixture(t, entity.DefaultPayoutTable())
		f.h.SeedAccount(t, "u1", 1000, false)
		f.h.SeedRound(t, "r1")
		f.bet(t, "u1", "r1", "red", 400)

		report, err := f.settler.SettleRound(ctx, admin, "r1", "black")
		require.NoError(t, err)
		assert.Equal(t, int64(600), f.h.Balance(t, "u1"))
		assert.Equal(t, 1, report.BetsSettled)
		assert.Equal(t, 0, report.Winners)
		assert.Equal(t, int64(0), report.TotalPayout)

		bets, err := f.rounds.ListBetsForUser(ctx, testkit.User("u1"), 0)
		require.NoError(t, err)
		require.Len(t, bets, 1)
		assert.True(t, bets[0].IsSettled())
		assert.Equal(t, int64(0), bets[0].Payout)
	})

	t.Run("Second settlement fails and pays nothing more", func(t *testing.T) {
		f := newFixture(t, entity.DefaultPayoutTable())
		f.h.SeedAccount(t, "u1", 1000, false)
		f.h.SeedRound(t, "r1")
		f.bet(t, "u1", "r1", "red", 400)

		_, err := f.settler.SettleRound(ctx, admin, "r1", "red")
		require.NoError(t, err)

		_, err = f.settler.SettleRound(ctx, admin, "r1", "red")
		assert.ErrorIs(t, err, errs.ErrAlreadySettled)
		_, err = f.settler.SettleRound(ctx, admin, "r1", "black")
		assert.ErrorIs(t, err, errs.ErrAlreadySettled)

		assert.Equal(t, int64(1400), f.h.Balance(t, "u1"))
		stored, err := f.rounds.GetRound(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "red", stored.Result())
	})

	t.Run("Concurrent settlements pay once", func(t *testing.T) {
		f := newFixture(t, entity.DefaultPayoutTable())
		f.h.SeedAccount(t, "u1", 1000, false)
		f.h.SeedRound(t, "r1")
		f.bet(t, "u1", "r1", "green", 100)

		const workers = 6
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			settled int
		)
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				if _, err := f.settler.SettleRound(ctx, admin, "r1", "green"); err == nil {
					mu.Lock()
					settled++
					mu.Unlock()
				} else {
					assert.ErrorIs(t, err, errs.ErrAlreadySettled)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, settled)
		assert.Equal(t, int64(1100), f.h.Balance(t, "u1"))
	})

	t.Run("Bets racing a settlement are either paid or refused", func(t *testing.T) {
		f := newFixture(t, entity.DefaultPayoutTable())
		f.h.SeedRound(t, "r1")

		const bettors = 12
		for i := 0; i < bettors; i++ {
			f.h.SeedAccount(t, fmt.Sprintf("u%d", i), 1000, false)
		}

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			accepted = map[string]bool{}
			report   *usecase.SettlementReport
		)
		start := make(chan struct{})
		wg.Add(bettors + 1)
		for i := 0; i < bettors; i++ {
			userID := fmt.Sprintf("u%d", i)
			go func() {
				defer wg.Done()
				<-start
				_, err := f.rounds.PlaceBet(ctx, testkit.User(userID), "r1", "red", 100)
				if err != nil {
					assert.ErrorIs(t, err, errs.ErrRoundClosed)
					return
				}
				mu.Lock()
				accepted[userID] = true
				mu.Unlock()
			}()
		}
		go func() {
			defer wg.Done()
			<-start
			var err error
			report, err = f.settler.SettleRound(ctx, admin, "r1", "red")
			assert.NoError(t, err)
		}()
		close(start)
		wg.Wait()

		require.NotNil(t, report)
		assert.Empty(t, report.Failures)
		assert.Equal(t, len(accepted), report.BetsSettled)
		assert.Equal(t, len(accepted), report.Winners)
		assert.Equal(t, int64(200*len(accepted)), report.TotalPayout)

		var total int64
		for i := 0; i < bettors; i++ {
			userID := fmt.Sprintf("u%d", i)
			balance := f.h.Balance(t, userID)
			total += balance

			bets, err := f.rounds.ListBetsForUser(ctx, testkit.User(userID), 0)
			require.NoError(t, err)
			if accepted[userID] {
				require.Len(t, bets, 1, userID)
				assert.True(t, bets[0].IsSettled(), userID)
				assert.Equal(t, int64(200), bets[0].Payout, userID)
				assert.Equal(t, int64(1100), balance, userID)
			} else {
				assert.Empty(t, bets, userID)
				assert.Equal(t, int64(1000), balance, userID)
			}
		}
		assert.Equal(t, int64(1000*bettors)+int64(100*len(accepted)), total)
	})

	t.Run("Mixed round with several bettors", func(t *testing.T) {
		f := newFixture(t, entity.DefaultPayoutTable())
		f.h.SeedAccount(t, "u1", 1000, false)
		f.h.SeedAccount(t, "u2", 1000, false)
		f.h.SeedRound(t, "r1")
		f.bet(t, "u1", "r1", "red", 100)
		f.bet(t, "u1", "r1", "black", 200)
		f.bet(t, "u2", "r1", "red", 300)

		report, err := f.settler.SettleRound(ctx, admin, "r1", "RED")
		require.NoError(t, err)
		assert.Equal(t, 3, report.BetsSettled)
		assert.Equal(t, 2, report.Winners)
		assert.Equal(t, int64(800), report.TotalPayout)
		assert.Equal(t, int64(600), report.TotalStaked)
		assert.Equal(t, int64(900), f.h.Balance(t, "u1"))
		assert.Equal(t, int64(1300), f.h.Balance(t, "u2"))
	})

	t.Run("Failing payout is isolated from its siblings", func(t *testing.T) {
		f := newFixture(t, entity.DefaultPayoutTable())
		f.h.SeedAccount(t, "whale", math.MaxInt64, false)
		f.h.SeedAccount(t, "u1", 1000, false)
		f.h.SeedRound(t, "r1")
		whaleBet := f.bet(t, "whale", "r1", "red", 1)
		f.bet(t, "u1", "r1", "red", 400)

		report, err := f.settler.SettleRound(ctx, admin, "r1", "red")
		require.NoError(t, err)

		require.Len(t, report.Failures, 1)
		assert.Equal(t, whaleBet.ID, report.Failures[0].BetID)
		assert.Equal(t, int64(2), report.Failures[0].Payout)
		assert.ErrorIs(t, report.Failures[0], errs.ErrAmountOverflow)
		assert.Equal(t, 1, report.BetsSettled)
		assert.Equal(t, 1, report.Winners)

		assert.Equal(t, int64(math.MaxInt64-1), f.h.Balance(t, "whale"))
		assert.Equal(t, int64(1400), f.h.Balance(t, "u1"))

		whaleBets, err := f.rounds.ListBetsForUser(ctx, testkit.User("whale"), 0)
		require.NoError(t, err)
		require.Len(t, whaleBets, 1)
		assert.False(t, whaleBets[0].IsSettled())

		stored, err := f.rounds.GetRound(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, entity.RoundSettled, stored.Status())

		events := f.h.PendingEvents(t)
		last := events[len(events)-1]
		require.Equal(t, entity.EventRoundSettled, last.Type)
		var payload outbox.SettlementPayload
		require.NoError(t, json.Unmarshal(last.Payload, &payload))
		assert.Equal(t, []string{whaleBet.ID}, payload.FailedBets)
	})

	t.Run("Per-color multipliers apply", func(t *testing.T) {
		payouts, err := entity.NewPayoutTable(2, entity.DefaultColors, map[string]int64{"green": 14})
		require.NoError(t, err)
		f := newFixture(t, payouts)
		f.h.SeedAccount(t, "u1", 100, false)
		f.h.SeedRound(t, "r1")
		f.bet(t, "u1", "r1", "green", 10)

		report, err := f.settler.SettleRound(ctx, admin, "r1", "green")
		require.NoError(t, err)
		assert.Equal(t, int64(140), report.TotalPayout)
		assert.Equal(t, int64(230), f.h.Balance(t, "u1"))
	})

	t.Run("Round without bets", func(t *testing.T) {
		f := newFixture(t, entity.DefaultPayoutTable())
		f.h.SeedRound(t, "r1")

		report, err := f.settler.SettleRound(ctx, admin, "r1", "black")
		require.NoError(t, err)
		assert.Zero(t, report.BetsSettled)
		assert.Zero(t, report.TotalPayout)
	})

	t.Run("Input and authorization errors", func(t *testing.T) {
		f := newFixture(t, entity.DefaultPayoutTable())
		f.h.SeedRound(t, "r1")

		_, err := f.settler.SettleRound(ctx, testkit.User("u1"), "r1", "red")
		assert.ErrorIs(t, err, errs.ErrForbidden)
		_, err = f.settler.SettleRound(ctx, admin, "r1", "")
		assert.ErrorIs(t, err, errs.ErrInvalidColor)
		_, err = f.settler.SettleRound(ctx, admin, "r1", "blue")
		assert.ErrorIs(t, err, errs.ErrInvalidColor)
		_, err = f.settler.SettleRound(ctx, admin, "", "red")
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
		_, err = f.settler.SettleRound(ctx, admin, "nope", "red")
		assert.ErrorIs(t, err, errs.ErrRoundNotFound)

		stored, err := f.rounds.GetRound(ctx, "r1")
		require.NoError(t, err)
		assert.True(t, stored.IsOpen())
	})
}

func TestSettlementUseCase_RecordsMetrics(t *testing.T) {
	h := testkit.NewHarness(t)
	metrics := coremocks.NewMockMetrics(t)
	metrics.EXPECT().RecordSettlement(1, 0, int64(200)).Once()

	payouts := entity.DefaultPayoutTable()
	rounds := round.NewRoundUseCase(h.TxManager, h.Recorder, payouts, h.IDs, h.Clock, h.Logger, entity.DefaultListLimits())
	settler := NewSettlementUseCase(h.TxManager, h.Recorder, payouts, h.Clock, h.Logger, metrics)

	h.SeedAccount(t, "u1", 100, false)
	h.SeedRound(t, "r1")
	_, err := rounds.PlaceBet(context.Background(), testkit.User("u1"), "r1", "black", 100)
	require.NoError(t, err)

	_, err = settler.SettleRound(context.Background(), testkit.Admin("admin"), "r1", "black")
	require.NoError(t, err)
}
