package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const pettyPath = "../petty"

func deployPettyContract(t *testing.T, e *neotest.Executor) *neotest.ContractInvoker {
	ctr := neotest.CompileFile(t, e.CommitteeHash, pettyPath, path.Join(pettyPath, "config.yml"))
	e.DeployContract(t, ctr, []interface{}{e.CommitteeHash})
	return e.CommitteeInvoker(ctr.Hash)
}

func newPettyInvoker(t *testing.T) *neotest.ContractInvoker {
	return deployPettyContract(t, newExecutor(t))
}

func pettyTransferEvent(contract util.Uint160, from, to util.Uint160, tokenID []byte) state.NotificationEvent {
	var fromItem stackitem.Item = stackitem.Null{}
	if !from.Equals(util.Uint160{}) {
		fromItem = stackitem.NewByteArray(from.BytesBE())
	}
	return state.NotificationEvent{
		ScriptHash: contract,
		Name:       "Transfer",
		Item: stackitem.NewArray([]stackitem.Item{
			fromItem,
			stackitem.NewByteArray(to.BytesBE()),
			stackitem.Make(1),
			stackitem.Make(tokenID),
		}),
	}
}

func TestPettyGeneric(t *testing.T) {
	c := newPettyInvoker(t)

	c.Invoke(t, "PETTY", "symbol")
	c.Invoke(t, 0, "decimals")
	c.Invoke(t, 0, "totalSupply")
}

func TestPettyMint(t *testing.T) {
	c := newPettyInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	cAcc.InvokeFail(t, "owner witness check failed", "mint", acc.ScriptHash())
	c.InvokeFail(t, "invalid receiver", "mint", util.Uint160{})

	tx := c.Invoke(t, []byte("1"), "mint", acc.ScriptHash())
	c.CheckTxNotificationEvent(t, tx, 0,
		pettyTransferEvent(c.Hash, util.Uint160{}, acc.ScriptHash(), []byte("1")))

	// token numbers are sequential
	c.Invoke(t, []byte("2"), "mint", acc.ScriptHash())
	c.Invoke(t, 2, "totalSupply")
	c.Invoke(t, 2, "balanceOf", acc.ScriptHash())
	c.Invoke(t, acc.ScriptHash().BytesBE(), "ownerOf", []byte("1"))

	s, err := c.TestInvoke(t, "properties", []byte("1"))
	require.NoError(t, err)
	expected := stackitem.NewMapWithValue([]stackitem.MapElement{
		{Key: stackitem.Make("name"), Value: stackitem.Make("Petty #1")},
	})
	require.Equal(t, expected.Value(), s.Top().Item().Value())

	s, err = c.TestInvoke(t, "tokensOf", acc.ScriptHash())
	require.NoError(t, err)
	items := iteratorToArray(s.Pop().Value().(*storage.Iterator))
	require.Equal(t, []stackitem.Item{
		stackitem.Make([]byte("1")),
		stackitem.Make([]byte("2")),
	}, items)

	s, err = c.TestInvoke(t, "tokens")
	require.NoError(t, err)
	items = iteratorToArray(s.Pop().Value().(*storage.Iterator))
	require.Equal(t, 2, len(items))
}

func TestPettyTransfer(t *testing.T) {
	c := newPettyInvoker(t)

	acc1 := c.NewAccount(t)
	acc2 := c.NewAccount(t)
	c.Invoke(t, []byte("1"), "mint", acc1.ScriptHash())

	cAcc1 := c.WithSigners(acc1)
	cAcc2 := c.WithSigners(acc2)

	// plain transfer quietly refuses without the owner witness
	cAcc2.Invoke(t, false, "transfer", acc2.ScriptHash(), []byte("1"), nil)
	cAcc1.InvokeFail(t, "invalid receiver", "transfer", util.Uint160{}, []byte("1"), nil)
	cAcc1.InvokeFail(t, "token not found", "transfer", acc2.ScriptHash(), []byte("99"), nil)

	tx := cAcc1.Invoke(t, true, "transfer", acc2.ScriptHash(), []byte("1"), nil)
	c.CheckTxNotificationEvent(t, tx, 0,
		pettyTransferEvent(c.Hash, acc1.ScriptHash(), acc2.ScriptHash(), []byte("1")))

	c.Invoke(t, acc2.ScriptHash().BytesBE(), "ownerOf", []byte("1"))
	c.Invoke(t, 0, "balanceOf", acc1.ScriptHash())
	c.Invoke(t, 1, "balanceOf", acc2.ScriptHash())

	// self-transfer is a notification, not a state change
	cAcc2.Invoke(t, true, "transfer", acc2.ScriptHash(), []byte("1"), nil)
	c.Invoke(t, 1, "balanceOf", acc2.ScriptHash())

	s, err := c.TestInvoke(t, "tokensOf", acc2.ScriptHash())
	require.NoError(t, err)
	items := iteratorToArray(s.Pop().Value().(*storage.Iterator))
	require.Equal(t, []stackitem.Item{stackitem.Make([]byte("1"))}, items)
}

func TestPettyApprovalForAll(t *testing.T) {
	c := newPettyInvoker(t)

	owner := c.NewAccount(t)
	operator := c.NewAccount(t)
	other := c.NewAccount(t)
	c.Invoke(t, []byte("1"), "mint", owner.ScriptHash())

	cOwner := c.WithSigners(owner)
	cOperator := c.WithSigners(operator)

	c.InvokeFail(t, "owner witness check failed", "setApprovalForAll",
		owner.ScriptHash(), operator.ScriptHash(), true)
	cOwner.InvokeFail(t, "invalid operator", "setApprovalForAll",
		owner.ScriptHash(), util.Uint160{}, true)

	tx := cOwner.Invoke(t, stackitem.Null{}, "setApprovalForAll",
		owner.ScriptHash(), operator.ScriptHash(), true)
	c.CheckTxNotificationEvent(t, tx, 0, state.NotificationEvent{
		ScriptHash: c.Hash,
		Name:       "ApprovalForAll",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray(owner.ScriptHash().BytesBE()),
			stackitem.NewByteArray(operator.ScriptHash().BytesBE()),
			stackitem.Make(true),
		}),
	})
	c.Invoke(t, true, "isApprovedForAll", owner.ScriptHash(), operator.ScriptHash())

	// operator approvals serve contract callers, a plain transaction still
	// needs the owner witness
	cOperator.InvokeFail(t, "transfer not allowed", "transferFrom",
		owner.ScriptHash(), other.ScriptHash(), []byte("1"), nil)
	cOperator.InvokeFail(t, "from account does not own the token", "transferFrom",
		other.ScriptHash(), operator.ScriptHash(), []byte("1"), nil)

	cOwner.Invoke(t, true, "transferFrom",
		owner.ScriptHash(), other.ScriptHash(), []byte("1"), nil)
	c.Invoke(t, other.ScriptHash().BytesBE(), "ownerOf", []byte("1"))

	cOwner.Invoke(t, stackitem.Null{}, "setApprovalForAll",
		owner.ScriptHash(), operator.ScriptHash(), false)
	c.Invoke(t, false, "isApprovedForAll", owner.ScriptHash(), operator.ScriptHash())
}
