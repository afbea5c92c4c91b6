// Package marketplace contains RPC wrappers for Marketplace contract.
package marketplace

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// MarketplaceOrder is a contract-specific marketplace.Order type used by its methods.
type MarketplaceOrder struct {
	ID *big.Int
	Seller util.Uint160
	TokenID []byte
	PaymentToken util.Uint160
	Price *big.Int
	Status *big.Int
}

// OrderAddedEvent represents "OrderAdded" event emitted by the contract.
type OrderAddedEvent struct {
	OrderId *big.Int
	Seller util.Uint160
	TokenId []byte
	PaymentToken util.Uint160
	Price *big.Int
}

// OrderCancelledEvent represents "OrderCancelled" event emitted by the contract.
type OrderCancelledEvent struct {
	OrderId *big.Int
}

// OrderExecutedEvent represents "OrderExecuted" event emitted by the contract.
type OrderExecutedEvent struct {
	OrderId *big.Int
	Buyer util.Uint160
	Fee *big.Int
}

// FeeRateUpdatedEvent represents "FeeRateUpdated" event emitted by the contract.
type FeeRateUpdatedEvent struct {
	FeeDecimals *big.Int
	FeeRate *big.Int
}

// FeeRecipientUpdatedEvent represents "FeeRecipientUpdated" event emitted by the contract.
type FeeRecipientUpdatedEvent struct {
	FeeRecipient util.Uint160
}

// PaymentTokenAddedEvent represents "PaymentTokenAdded" event emitted by the contract.
type PaymentTokenAddedEvent struct {
	PaymentToken util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// AssetContract invokes `assetContract` method of contract.
func (c *ContractReader) AssetContract() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "assetContract"))
}

// FeeDecimals invokes `feeDecimals` method of contract.
func (c *ContractReader) FeeDecimals() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "feeDecimals"))
}

// FeeRate invokes `feeRate` method of contract.
func (c *ContractReader) FeeRate() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "feeRate"))
}

// FeeRecipient invokes `feeRecipient` method of contract.
func (c *ContractReader) FeeRecipient() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "feeRecipient"))
}

// GetOrder invokes `getOrder` method of contract.
func (c *ContractReader) GetOrder(id *big.Int) (*MarketplaceOrder, error) {
	return itemToMarketplaceOrder(unwrap.Item(c.invoker.Call(c.hash, "getOrder", id)))
}

// IsPaymentTokenSupported invokes `isPaymentTokenSupported` method of contract.
func (c *ContractReader) IsPaymentTokenSupported(token util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isPaymentTokenSupported", token))
}

// Orders invokes `orders` method of contract.
func (c *ContractReader) Orders() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "orders"))
}

// OrdersExpanded is similar to Orders (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) OrdersExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "orders", _numOfIteratorItems))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AddOrder creates a transaction invoking `addOrder` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddOrder(seller util.Uint160, tokenID []byte, paymentToken util.Uint160, price *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addOrder", seller, tokenID, paymentToken, price)
}

// AddOrderTransaction creates a transaction invoking `addOrder` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddOrderTransaction(seller util.Uint160, tokenID []byte, paymentToken util.Uint160, price *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addOrder", seller, tokenID, paymentToken, price)
}

// AddOrderUnsigned creates a transaction invoking `addOrder` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddOrderUnsigned(seller util.Uint160, tokenID []byte, paymentToken util.Uint160, price *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addOrder", nil, seller, tokenID, paymentToken, price)
}

// AddPaymentToken creates a transaction invoking `addPaymentToken` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddPaymentToken(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addPaymentToken", addr)
}

// AddPaymentTokenTransaction creates a transaction invoking `addPaymentToken` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddPaymentTokenTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addPaymentToken", addr)
}

// AddPaymentTokenUnsigned creates a transaction invoking `addPaymentToken` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddPaymentTokenUnsigned(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addPaymentToken", nil, addr)
}

// CancelOrder creates a transaction invoking `cancelOrder` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CancelOrder(id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "cancelOrder", id)
}

// CancelOrderTransaction creates a transaction invoking `cancelOrder` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CancelOrderTransaction(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "cancelOrder", id)
}

// CancelOrderUnsigned creates a transaction invoking `cancelOrder` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CancelOrderUnsigned(id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "cancelOrder", nil, id)
}

// ExecuteOrder creates a transaction invoking `executeOrder` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ExecuteOrder(buyer util.Uint160, id *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "executeOrder", buyer, id)
}

// ExecuteOrderTransaction creates a transaction invoking `executeOrder` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ExecuteOrderTransaction(buyer util.Uint160, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "executeOrder", buyer, id)
}

// ExecuteOrderUnsigned creates a transaction invoking `executeOrder` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ExecuteOrderUnsigned(buyer util.Uint160, id *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "executeOrder", nil, buyer, id)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// UpdateFeeRate creates a transaction invoking `updateFeeRate` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateFeeRate(feeDecimals *big.Int, feeRate *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateFeeRate", feeDecimals, feeRate)
}

// UpdateFeeRateTransaction creates a transaction invoking `updateFeeRate` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateFeeRateTransaction(feeDecimals *big.Int, feeRate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateFeeRate", feeDecimals, feeRate)
}

// UpdateFeeRateUnsigned creates a transaction invoking `updateFeeRate` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateFeeRateUnsigned(feeDecimals *big.Int, feeRate *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateFeeRate", nil, feeDecimals, feeRate)
}

// UpdateFeeRecipient creates a transaction invoking `updateFeeRecipient` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateFeeRecipient(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateFeeRecipient", addr)
}

// UpdateFeeRecipientTransaction creates a transaction invoking `updateFeeRecipient` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateFeeRecipientTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateFeeRecipient", addr)
}

// UpdateFeeRecipientUnsigned creates a transaction invoking `updateFeeRecipient` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateFeeRecipientUnsigned(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateFeeRecipient", nil, addr)
}

// itemToMarketplaceOrder converts stack item into *MarketplaceOrder.
func itemToMarketplaceOrder(item stackitem.Item, err error) (*MarketplaceOrder, error) {
	if err != nil {
		return nil, err
	}
	var res = new(MarketplaceOrder)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of MarketplaceOrder from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *MarketplaceOrder) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 6 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.Seller, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Seller: %w", err)
	}

	index++
	res.TokenID, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field TokenID: %w", err)
	}

	index++
	res.PaymentToken, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field PaymentToken: %w", err)
	}

	index++
	res.Price, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Price: %w", err)
	}

	index++
	res.Status, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	return nil
}

// OrderAddedEventsFromApplicationLog retrieves a set of all emitted events
// with "OrderAdded" name from the provided [result.ApplicationLog].
func OrderAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*OrderAddedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OrderAddedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OrderAdded" {
				continue
			}
			event := new(OrderAddedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OrderAddedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OrderAddedEvent or
// returns an error if it's not possible to do to so.
func (e *OrderAddedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.OrderId, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field OrderId: %w", err)
	}

	index++
	e.Seller, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Seller: %w", err)
	}

	index++
	e.TokenId, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field TokenId: %w", err)
	}

	index++
	e.PaymentToken, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field PaymentToken: %w", err)
	}

	index++
	e.Price, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Price: %w", err)
	}

	return nil
}

// OrderCancelledEventsFromApplicationLog retrieves a set of all emitted events
// with "OrderCancelled" name from the provided [result.ApplicationLog].
func OrderCancelledEventsFromApplicationLog(log *result.ApplicationLog) ([]*OrderCancelledEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OrderCancelledEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OrderCancelled" {
				continue
			}
			event := new(OrderCancelledEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OrderCancelledEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OrderCancelledEvent or
// returns an error if it's not possible to do to so.
func (e *OrderCancelledEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.OrderId, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field OrderId: %w", err)
	}

	return nil
}

// OrderExecutedEventsFromApplicationLog retrieves a set of all emitted events
// with "OrderExecuted" name from the provided [result.ApplicationLog].
func OrderExecutedEventsFromApplicationLog(log *result.ApplicationLog) ([]*OrderExecutedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OrderExecutedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OrderExecuted" {
				continue
			}
			event := new(OrderExecutedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OrderExecutedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OrderExecutedEvent or
// returns an error if it's not possible to do to so.
func (e *OrderExecutedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.OrderId, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field OrderId: %w", err)
	}

	index++
	e.Buyer, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Buyer: %w", err)
	}

	index++
	e.Fee, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Fee: %w", err)
	}

	return nil
}

// FeeRateUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "FeeRateUpdated" name from the provided [result.ApplicationLog].
func FeeRateUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*FeeRateUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*FeeRateUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "FeeRateUpdated" {
				continue
			}
			event := new(FeeRateUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize FeeRateUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to FeeRateUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *FeeRateUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.FeeDecimals, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field FeeDecimals: %w", err)
	}

	index++
	e.FeeRate, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field FeeRate: %w", err)
	}

	return nil
}

// FeeRecipientUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "FeeRecipientUpdated" name from the provided [result.ApplicationLog].
func FeeRecipientUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*FeeRecipientUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*FeeRecipientUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "FeeRecipientUpdated" {
				continue
			}
			event := new(FeeRecipientUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize FeeRecipientUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to FeeRecipientUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *FeeRecipientUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.FeeRecipient, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field FeeRecipient: %w", err)
	}

	return nil
}

// PaymentTokenAddedEventsFromApplicationLog retrieves a set of all emitted events
// with "PaymentTokenAdded" name from the provided [result.ApplicationLog].
func PaymentTokenAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*PaymentTokenAddedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*PaymentTokenAddedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "PaymentTokenAdded" {
				continue
			}
			event := new(PaymentTokenAddedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize PaymentTokenAddedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to PaymentTokenAddedEvent or
// returns an error if it's not possible to do to so.
func (e *PaymentTokenAddedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.PaymentToken, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field PaymentToken: %w", err)
	}

	return nil
}
