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

const marketplacePath = "../marketplace"

// Order statuses as stored by the marketplace contract.
const (
	orderOpen      = 0
	orderSold      = 1
	orderCancelled = 2
)

type marketplaceInvoker struct {
	gold   *neotest.ContractInvoker
	petty  *neotest.ContractInvoker
	market *neotest.ContractInvoker

	feeRecipient neotest.Signer
}

func newMarketplaceInvoker(t *testing.T, feeDecimals, feeRate int64) *marketplaceInvoker {
	e := newExecutor(t)
	gold := deployGoldContract(t, e)
	petty := deployPettyContract(t, e)
	feeRecipient := e.NewAccount(t)

	ctr := neotest.CompileFile(t, e.CommitteeHash, marketplacePath,
		path.Join(marketplacePath, "config.yml"))
	e.DeployContract(t, ctr, []interface{}{
		e.CommitteeHash, petty.Hash, feeDecimals, feeRate, feeRecipient.ScriptHash(),
	})

	market := e.CommitteeInvoker(ctr.Hash)
	market.Invoke(t, stackitem.Null{}, "addPaymentToken", gold.Hash)
	return &marketplaceInvoker{gold, petty, market, feeRecipient}
}

// listToken mints a fresh token to the seller, approves the marketplace as
// its operator and lists it at the given price. The allocated order ID must
// be passed by the caller, IDs are sequential.
func (m *marketplaceInvoker) listToken(t *testing.T, seller neotest.Signer, tokenID []byte, orderID, price int64) {
	m.petty.Invoke(t, tokenID, "mint", seller.ScriptHash())
	m.petty.WithSigners(seller).Invoke(t, stackitem.Null{}, "setApprovalForAll",
		seller.ScriptHash(), m.market.Hash, true)
	m.market.WithSigners(seller).Invoke(t, orderID, "addOrder",
		seller.ScriptHash(), tokenID, m.gold.Hash, price)
}

// fundBuyer moves payment tokens to the buyer and approves the marketplace
// to spend them.
func (m *marketplaceInvoker) fundBuyer(t *testing.T, buyer neotest.Signer, amount int64) {
	m.gold.Invoke(t, true, "transfer",
		m.gold.CommitteeHash, buyer.ScriptHash(), amount, nil)
	m.gold.WithSigners(buyer).Invoke(t, stackitem.Null{}, "approve",
		buyer.ScriptHash(), m.market.Hash, amount)
}

func expectedOrder(seller util.Uint160, tokenID []byte, paymentToken util.Uint160, orderID, price, status int64) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(orderID),
		stackitem.NewByteArray(seller.BytesBE()),
		stackitem.NewByteArray(tokenID),
		stackitem.NewByteArray(paymentToken.BytesBE()),
		stackitem.Make(price),
		stackitem.Make(status),
	})
}

func TestMarketplaceDeploy(t *testing.T) {
	e := newExecutor(t)
	gold := deployGoldContract(t, e)
	petty := deployPettyContract(t, e)
	recipient := e.NewAccount(t)

	ctr := neotest.CompileFile(t, e.CommitteeHash, marketplacePath,
		path.Join(marketplacePath, "config.yml"))
	e.DeployContractCheckFAULT(t, ctr, []interface{}{
		e.CommitteeHash, util.Uint160{}, int64(0), int64(10), recipient.ScriptHash(),
	}, "zero address")
	e.DeployContractCheckFAULT(t, ctr, []interface{}{
		e.CommitteeHash, petty.Hash, int64(0), int64(100), recipient.ScriptHash(),
	}, "bad fee rate")
	e.DeployContractCheckFAULT(t, ctr, []interface{}{
		e.CommitteeHash, petty.Hash, int64(0), int64(10), util.Uint160{},
	}, "zero address")

	e.DeployContract(t, ctr, []interface{}{
		e.CommitteeHash, petty.Hash, int64(0), int64(10), recipient.ScriptHash(),
	})

	c := e.CommitteeInvoker(ctr.Hash)
	c.Invoke(t, petty.Hash.BytesBE(), "assetContract")
	c.Invoke(t, 0, "feeDecimals")
	c.Invoke(t, 10, "feeRate")
	c.Invoke(t, recipient.ScriptHash().BytesBE(), "feeRecipient")
	c.Invoke(t, false, "isPaymentTokenSupported", gold.Hash)
}

func TestMarketplaceAddOrder(t *testing.T) {
	m := newMarketplaceInvoker(t, 0, 10)

	seller := m.market.NewAccount(t)
	m.petty.Invoke(t, []byte("1"), "mint", seller.ScriptHash())

	cSeller := m.market.WithSigners(seller)
	m.market.InvokeFail(t, "owner witness check failed", "addOrder",
		seller.ScriptHash(), []byte("1"), m.gold.Hash, int64(100))
	cSeller.InvokeFail(t, "payment token is not supported", "addOrder",
		seller.ScriptHash(), []byte("1"), m.petty.Hash, int64(100))
	cSeller.InvokeFail(t, "marketplace is not an approved operator", "addOrder",
		seller.ScriptHash(), []byte("1"), m.gold.Hash, int64(100))

	m.petty.WithSigners(seller).Invoke(t, stackitem.Null{}, "setApprovalForAll",
		seller.ScriptHash(), m.market.Hash, true)
	cSeller.InvokeFail(t, "zero price", "addOrder",
		seller.ScriptHash(), []byte("1"), m.gold.Hash, int64(0))
	cSeller.InvokeFail(t, "zero price", "addOrder",
		seller.ScriptHash(), []byte("1"), m.gold.Hash, int64(-5))

	other := m.market.NewAccount(t)
	m.market.WithSigners(other).InvokeFail(t, "seller does not own the token", "addOrder",
		other.ScriptHash(), []byte("1"), m.gold.Hash, int64(100))

	tx := cSeller.Invoke(t, 1, "addOrder",
		seller.ScriptHash(), []byte("1"), m.gold.Hash, int64(100))
	// the token moves into custody first, then the listing event fires
	m.market.CheckTxNotificationEvent(t, tx, 0,
		pettyTransferEvent(m.petty.Hash, seller.ScriptHash(), m.market.Hash, []byte("1")))
	m.market.CheckTxNotificationEvent(t, tx, 1, state.NotificationEvent{
		ScriptHash: m.market.Hash,
		Name:       "OrderAdded",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.Make(1),
			stackitem.NewByteArray(seller.ScriptHash().BytesBE()),
			stackitem.NewByteArray([]byte("1")),
			stackitem.NewByteArray(m.gold.Hash.BytesBE()),
			stackitem.Make(100),
		}),
	})

	m.petty.Invoke(t, m.market.Hash.BytesBE(), "ownerOf", []byte("1"))
	m.market.Invoke(t,
		expectedOrder(seller.ScriptHash(), []byte("1"), m.gold.Hash, 1, 100, orderOpen),
		"getOrder", int64(1))
	m.market.InvokeFail(t, "order not found", "getOrder", int64(99))

	// a token in custody cannot be listed again
	cSeller.InvokeFail(t, "seller does not own the token", "addOrder",
		seller.ScriptHash(), []byte("1"), m.gold.Hash, int64(100))
}

func TestMarketplaceCancelOrder(t *testing.T) {
	m := newMarketplaceInvoker(t, 0, 10)

	seller := m.market.NewAccount(t)
	m.listToken(t, seller, []byte("1"), 1, 100)

	cSeller := m.market.WithSigners(seller)
	other := m.market.NewAccount(t)
	m.market.WithSigners(other).InvokeFail(t, "owner witness check failed",
		"cancelOrder", int64(1))
	cSeller.InvokeFail(t, "order not found", "cancelOrder", int64(2))

	tx := cSeller.Invoke(t, stackitem.Null{}, "cancelOrder", int64(1))
	m.market.CheckTxNotificationEvent(t, tx, 0,
		pettyTransferEvent(m.petty.Hash, m.market.Hash, seller.ScriptHash(), []byte("1")))
	m.market.CheckTxNotificationEvent(t, tx, 1, state.NotificationEvent{
		ScriptHash: m.market.Hash,
		Name:       "OrderCancelled",
		Item:       stackitem.NewArray([]stackitem.Item{stackitem.Make(1)}),
	})

	m.petty.Invoke(t, seller.ScriptHash().BytesBE(), "ownerOf", []byte("1"))
	m.market.Invoke(t,
		expectedOrder(seller.ScriptHash(), []byte("1"), m.gold.Hash, 1, 100, orderCancelled),
		"getOrder", int64(1))
	cSeller.InvokeFail(t, "order is already finalized", "cancelOrder", int64(1))

	// re-listing the same token allocates a fresh order ID
	cSeller.Invoke(t, 2, "addOrder",
		seller.ScriptHash(), []byte("1"), m.gold.Hash, int64(150))
	m.market.Invoke(t,
		expectedOrder(seller.ScriptHash(), []byte("1"), m.gold.Hash, 2, 150, orderOpen),
		"getOrder", int64(2))
}

func TestMarketplaceExecuteOrder(t *testing.T) {
	m := newMarketplaceInvoker(t, 0, 10)

	seller := m.market.NewAccount(t)
	buyer := m.market.NewAccount(t)
	m.listToken(t, seller, []byte("1"), 1, 1000)
	m.fundBuyer(t, buyer, 5000)

	cSeller := m.market.WithSigners(seller)
	cBuyer := m.market.WithSigners(buyer)

	cSeller.InvokeFail(t, "witness check failed", "executeOrder",
		buyer.ScriptHash(), int64(1))
	cSeller.InvokeFail(t, "seller cannot execute own order", "executeOrder",
		seller.ScriptHash(), int64(1))
	cBuyer.InvokeFail(t, "order not found", "executeOrder",
		buyer.ScriptHash(), int64(9))

	tx := cBuyer.Invoke(t, stackitem.Null{}, "executeOrder", buyer.ScriptHash(), int64(1))
	m.market.CheckTxNotificationEvent(t, tx, 0,
		goldTransferEvent(m.gold.Hash, buyer.ScriptHash(), m.feeRecipient.ScriptHash(), 100))
	m.market.CheckTxNotificationEvent(t, tx, 1,
		goldTransferEvent(m.gold.Hash, buyer.ScriptHash(), seller.ScriptHash(), 900))
	m.market.CheckTxNotificationEvent(t, tx, 2,
		pettyTransferEvent(m.petty.Hash, m.market.Hash, buyer.ScriptHash(), []byte("1")))
	m.market.CheckTxNotificationEvent(t, tx, 3, state.NotificationEvent{
		ScriptHash: m.market.Hash,
		Name:       "OrderExecuted",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.Make(1),
			stackitem.NewByteArray(buyer.ScriptHash().BytesBE()),
			stackitem.Make(100),
		}),
	})

	m.gold.Invoke(t, 4000, "balanceOf", buyer.ScriptHash())
	m.gold.Invoke(t, 900, "balanceOf", seller.ScriptHash())
	m.gold.Invoke(t, 100, "balanceOf", m.feeRecipient.ScriptHash())
	m.gold.Invoke(t, 4000, "allowance", buyer.ScriptHash(), m.market.Hash)
	m.petty.Invoke(t, buyer.ScriptHash().BytesBE(), "ownerOf", []byte("1"))
	m.market.Invoke(t,
		expectedOrder(seller.ScriptHash(), []byte("1"), m.gold.Hash, 1, 1000, orderSold),
		"getOrder", int64(1))

	cBuyer.InvokeFail(t, "order is already finalized", "executeOrder",
		buyer.ScriptHash(), int64(1))
}

func TestMarketplaceExecuteOrderAtomicity(t *testing.T) {
	m := newMarketplaceInvoker(t, 0, 10)

	seller := m.market.NewAccount(t)
	buyer := m.market.NewAccount(t)
	m.listToken(t, seller, []byte("1"), 1, 1000)
	cBuyer := m.market.WithSigners(buyer)

	checkUntouched := func(t *testing.T, buyerBalance int64) {
		m.market.Invoke(t,
			expectedOrder(seller.ScriptHash(), []byte("1"), m.gold.Hash, 1, 1000, orderOpen),
			"getOrder", int64(1))
		m.petty.Invoke(t, m.market.Hash.BytesBE(), "ownerOf", []byte("1"))
		m.gold.Invoke(t, buyerBalance, "balanceOf", buyer.ScriptHash())
		m.gold.Invoke(t, 0, "balanceOf", seller.ScriptHash())
		m.gold.Invoke(t, 0, "balanceOf", m.feeRecipient.ScriptHash())
	}

	// the fee leg alone is covered, the seller leg is not, nothing sticks
	m.gold.Invoke(t, true, "transfer",
		m.gold.CommitteeHash, buyer.ScriptHash(), int64(500), nil)
	m.gold.WithSigners(buyer).Invoke(t, stackitem.Null{}, "approve",
		buyer.ScriptHash(), m.market.Hash, int64(1000))
	cBuyer.InvokeFail(t, "insufficient balance", "executeOrder",
		buyer.ScriptHash(), int64(1))
	checkUntouched(t, 500)

	m.gold.Invoke(t, true, "transfer",
		m.gold.CommitteeHash, buyer.ScriptHash(), int64(500), nil)
	m.gold.WithSigners(buyer).Invoke(t, stackitem.Null{}, "approve",
		buyer.ScriptHash(), m.market.Hash, int64(999))
	cBuyer.InvokeFail(t, "insufficient allowance", "executeOrder",
		buyer.ScriptHash(), int64(1))
	checkUntouched(t, 1000)

	m.gold.WithSigners(buyer).Invoke(t, stackitem.Null{}, "approve",
		buyer.ScriptHash(), m.market.Hash, int64(1000))
	m.gold.Invoke(t, stackitem.Null{}, "pause")
	cBuyer.InvokeFail(t, "token transfers are paused", "executeOrder",
		buyer.ScriptHash(), int64(1))
	checkUntouched(t, 1000)
	m.gold.Invoke(t, stackitem.Null{}, "unpause")

	m.gold.Invoke(t, stackitem.Null{}, "addToBlacklist", seller.ScriptHash())
	cBuyer.InvokeFail(t, "account is blacklisted", "executeOrder",
		buyer.ScriptHash(), int64(1))
	checkUntouched(t, 1000)
	m.gold.Invoke(t, stackitem.Null{}, "removeFromBlacklist", seller.ScriptHash())

	cBuyer.Invoke(t, stackitem.Null{}, "executeOrder", buyer.ScriptHash(), int64(1))
	m.gold.Invoke(t, 900, "balanceOf", seller.ScriptHash())
	m.gold.Invoke(t, 100, "balanceOf", m.feeRecipient.ScriptHash())
}

func TestMarketplaceFees(t *testing.T) {
	check := func(t *testing.T, feeDecimals, feeRate, price, wantFee int64) {
		m := newMarketplaceInvoker(t, feeDecimals, feeRate)

		seller := m.market.NewAccount(t)
		buyer := m.market.NewAccount(t)
		m.listToken(t, seller, []byte("1"), 1, price)
		m.fundBuyer(t, buyer, price)

		tx := m.market.WithSigners(buyer).Invoke(t, stackitem.Null{}, "executeOrder",
			buyer.ScriptHash(), int64(1))

		m.gold.Invoke(t, 0, "balanceOf", buyer.ScriptHash())
		m.gold.Invoke(t, price-wantFee, "balanceOf", seller.ScriptHash())
		m.gold.Invoke(t, wantFee, "balanceOf", m.feeRecipient.ScriptHash())

		// the zero fee leg is skipped entirely
		eventIndex := 3
		if wantFee == 0 {
			eventIndex = 2
		}
		m.market.CheckTxNotificationEvent(t, tx, eventIndex, state.NotificationEvent{
			ScriptHash: m.market.Hash,
			Name:       "OrderExecuted",
			Item: stackitem.NewArray([]stackitem.Item{
				stackitem.Make(1),
				stackitem.NewByteArray(buyer.ScriptHash().BytesBE()),
				stackitem.Make(wantFee),
			}),
		})
	}

	t.Run("zero rate", func(t *testing.T) { check(t, 0, 0, 1000, 0) })
	t.Run("default rate", func(t *testing.T) { check(t, 0, 10, 1000, 100) })
	t.Run("steep rate", func(t *testing.T) { check(t, 0, 99, 101, 99) })
	t.Run("fractional rate", func(t *testing.T) { check(t, 5, 1011111, 10000000, 10111) })
	t.Run("rounded to zero", func(t *testing.T) { check(t, 0, 10, 5, 0) })
}

func TestMarketplaceFeeAdmin(t *testing.T) {
	m := newMarketplaceInvoker(t, 0, 10)

	acc := m.market.NewAccount(t)
	cAcc := m.market.WithSigners(acc)
	cAcc.InvokeFail(t, "owner witness check failed", "updateFeeRate", int64(0), int64(1))
	cAcc.InvokeFail(t, "owner witness check failed", "updateFeeRecipient", acc.ScriptHash())
	cAcc.InvokeFail(t, "owner witness check failed", "addPaymentToken", acc.ScriptHash())

	// the rate must stay strictly below 100%
	m.market.InvokeFail(t, "bad fee rate", "updateFeeRate", int64(0), int64(100))
	m.market.InvokeFail(t, "bad fee rate", "updateFeeRate", int64(0), int64(-1))
	m.market.InvokeFail(t, "bad fee rate", "updateFeeRate", int64(-1), int64(0))
	m.market.InvokeFail(t, "bad fee rate", "updateFeeRate", int64(2), int64(10000))

	tx := m.market.Invoke(t, stackitem.Null{}, "updateFeeRate", int64(0), int64(99))
	m.market.CheckTxNotificationEvent(t, tx, 0, state.NotificationEvent{
		ScriptHash: m.market.Hash,
		Name:       "FeeRateUpdated",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.Make(0),
			stackitem.Make(99),
		}),
	})
	m.market.Invoke(t, 99, "feeRate")

	m.market.InvokeFail(t, "zero address", "updateFeeRecipient", util.Uint160{})
	tx = m.market.Invoke(t, stackitem.Null{}, "updateFeeRecipient", acc.ScriptHash())
	m.market.CheckTxNotificationEvent(t, tx, 0, state.NotificationEvent{
		ScriptHash: m.market.Hash,
		Name:       "FeeRecipientUpdated",
		Item: stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray(acc.ScriptHash().BytesBE()),
		}),
	})
	m.market.Invoke(t, acc.ScriptHash().BytesBE(), "feeRecipient")

	m.market.InvokeFail(t, "zero address", "addPaymentToken", util.Uint160{})
	m.market.InvokeFail(t, "payment token is already supported", "addPaymentToken", m.gold.Hash)
	m.market.Invoke(t, false, "isPaymentTokenSupported", util.Uint160{0xde, 0xad})
}

func TestMarketplaceFeeRateAtExecutionTime(t *testing.T) {
	m := newMarketplaceInvoker(t, 0, 10)

	seller := m.market.NewAccount(t)
	buyer := m.market.NewAccount(t)
	m.listToken(t, seller, []byte("1"), 1, 1000)
	m.fundBuyer(t, buyer, 1000)

	// open orders are charged the configuration current at execution time
	m.market.Invoke(t, stackitem.Null{}, "updateFeeRate", int64(0), int64(0))
	m.market.WithSigners(buyer).Invoke(t, stackitem.Null{}, "executeOrder",
		buyer.ScriptHash(), int64(1))

	m.gold.Invoke(t, 1000, "balanceOf", seller.ScriptHash())
	m.gold.Invoke(t, 0, "balanceOf", m.feeRecipient.ScriptHash())
}

func TestMarketplaceOrders(t *testing.T) {
	m := newMarketplaceInvoker(t, 0, 10)

	seller := m.market.NewAccount(t)
	m.listToken(t, seller, []byte("1"), 1, 100)
	m.listToken(t, seller, []byte("2"), 2, 200)
	m.market.WithSigners(seller).Invoke(t, stackitem.Null{}, "cancelOrder", int64(1))

	// terminal orders stay on the book
	s, err := m.market.TestInvoke(t, "orders")
	require.NoError(t, err)
	items := iteratorToArray(s.Pop().Value().(*storage.Iterator))
	require.Equal(t, []stackitem.Item{
		expectedOrder(seller.ScriptHash(), []byte("1"), m.gold.Hash, 1, 100, orderCancelled),
		expectedOrder(seller.ScriptHash(), []byte("2"), m.gold.Hash, 2, 200, orderOpen),
	}, items)
}

func TestMarketplaceNEP11PaymentGuard(t *testing.T) {
	m := newMarketplaceInvoker(t, 0, 10)

	acc := m.market.NewAccount(t)
	m.market.WithSigners(acc).InvokeFail(t, "unexpected NFT contract", "onNEP11Payment",
		acc.ScriptHash(), int64(1), []byte("1"), nil)
}
