package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const reservePath = "../reserve"

const reserveLockMillis = 7 * 24 * 60 * 60 * 1000

func deployReserveContract(t *testing.T, e *neotest.Executor, token util.Uint160, lockMillis int64) *neotest.ContractInvoker {
	ctr := neotest.CompileFile(t, e.CommitteeHash, reservePath,
		path.Join(reservePath, "config.yml"))
	e.DeployContract(t, ctr, []interface{}{e.CommitteeHash, token, lockMillis})
	return e.CommitteeInvoker(ctr.Hash)
}

func TestReserveDeploy(t *testing.T) {
	e := newExecutor(t)
	gold := deployGoldContract(t, e)
	c := deployReserveContract(t, e, gold.Hash, reserveLockMillis)

	b := e.TopBlock(t)
	c.Invoke(t, gold.Hash.BytesBE(), "token")
	c.Invoke(t, int64(b.Timestamp)+reserveLockMillis, "unlockTime")
	c.Invoke(t, 0, "lockedBalance")
}

func TestReserveDeposit(t *testing.T) {
	e := newExecutor(t)
	gold := deployGoldContract(t, e)
	c := deployReserveContract(t, e, gold.Hash, reserveLockMillis)

	gold.Invoke(t, true, "transfer", gold.CommitteeHash, c.Hash, int64(500), nil)
	c.Invoke(t, 500, "lockedBalance")

	// deposits go exclusively through the configured token
	acc := e.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, "unexpected token", "onNEP17Payment",
		acc.ScriptHash(), int64(1), nil)
}

func TestReserveWithdraw(t *testing.T) {
	e := newExecutor(t)
	gold := deployGoldContract(t, e)
	c := deployReserveContract(t, e, gold.Hash, reserveLockMillis)
	gold.Invoke(t, true, "transfer", gold.CommitteeHash, c.Hash, int64(500), nil)

	recipient := e.NewAccount(t)
	s, err := c.TestInvoke(t, "unlockTime")
	require.NoError(t, err)
	unlockAt := s.Top().BigInt().Uint64()

	c.InvokeFail(t, "reserve is still locked", "withdrawTo",
		recipient.ScriptHash(), int64(100))

	b := c.NewUnsignedBlock(t)
	b.Timestamp = unlockAt - 2 // the next invocation lands at +1
	require.NoError(t, c.Chain.AddBlock(c.SignBlock(b)))
	c.InvokeFail(t, "reserve is still locked", "withdrawTo",
		recipient.ScriptHash(), int64(100))

	b = c.NewUnsignedBlock(t)
	b.Timestamp = unlockAt - 1
	require.NoError(t, c.Chain.AddBlock(c.SignBlock(b)))

	// a block timestamped exactly at the unlock time is already unlocked
	cAcc := c.WithSigners(recipient)
	cAcc.InvokeFail(t, "owner witness check failed", "withdrawTo",
		recipient.ScriptHash(), int64(100))
	c.InvokeFail(t, "zero address", "withdrawTo", util.Uint160{}, int64(100))
	c.InvokeFail(t, "non-positive amount", "withdrawTo", recipient.ScriptHash(), int64(0))
	c.InvokeFail(t, "amount exceeds reserve balance", "withdrawTo",
		recipient.ScriptHash(), int64(501))

	tx := c.Invoke(t, stackitem.Null{}, "withdrawTo", recipient.ScriptHash(), int64(200))
	c.CheckTxNotificationEvent(t, tx, 0,
		goldTransferEvent(gold.Hash, c.Hash, recipient.ScriptHash(), 200))
	c.CheckTxNotificationEvent(t, tx, 1, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "Withdraw",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray(recipient.ScriptHash().BytesBE()),
			stackitem.Make(200),
		}),
	})

	c.Invoke(t, 300, "lockedBalance")
	gold.Invoke(t, 200, "balanceOf", recipient.ScriptHash())
}

func TestReserveDefaultLock(t *testing.T) {
	e := newExecutor(t)
	gold := deployGoldContract(t, e)
	// zero duration falls back to the one-week default
	c := deployReserveContract(t, e, gold.Hash, 0)

	b := e.TopBlock(t)
	c.Invoke(t, int64(b.Timestamp)+reserveLockMillis, "unlockTime")
}

func TestReserveAsFeeRecipient(t *testing.T) {
	m := newMarketplaceInvoker(t, 0, 10)
	e := m.market.Executor

	c := deployReserveContract(t, e, m.gold.Hash, reserveLockMillis)
	m.market.Invoke(t, stackitem.Null{}, "updateFeeRecipient", c.Hash)

	seller := m.market.NewAccount(t)
	buyer := m.market.NewAccount(t)
	m.listToken(t, seller, []byte("1"), 1, 1000)
	m.fundBuyer(t, buyer, 1000)

	// the sale fee lands in the time-locked reserve
	m.market.WithSigners(buyer).Invoke(t, stackitem.Null{}, "executeOrder",
		buyer.ScriptHash(), int64(1))
	c.Invoke(t, 100, "lockedBalance")
	m.gold.Invoke(t, 900, "balanceOf", seller.ScriptHash())

	s, err := c.TestInvoke(t, "unlockTime")
	require.NoError(t, err)
	unlockAt := s.Top().BigInt().Uint64()

	treasury := e.NewAccount(t)
	c.InvokeFail(t, "reserve is still locked", "withdrawTo",
		treasury.ScriptHash(), int64(100))

	b := c.NewUnsignedBlock(t)
	b.Timestamp = unlockAt - 1
	require.NoError(t, c.Chain.AddBlock(c.SignBlock(b)))

	c.Invoke(t, stackitem.Null{}, "withdrawTo", treasury.ScriptHash(), int64(100))
	m.gold.Invoke(t, 100, "balanceOf", treasury.ScriptHash())
	c.Invoke(t, 0, "lockedBalance")
}
