package reserve

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/pettyverse/marketplace-contract/common"
)

// Storage layout.
const (
	// keyToken contains the hash of the NEP-17 token held here. Fixed at
	// deploy.
	keyToken byte = 0x01
	// keyUnlockAt contains the millisecond timestamp withdrawals become
	// possible at.
	keyUnlockAt byte = 0x02
)

// DefaultLockDuration is one week in milliseconds, the lock period used
// when the deployer does not specify one.
const DefaultLockDuration = 7 * 24 * 60 * 60 * 1000

// Failure messages.
const (
	// ErrLocked is returned by withdrawTo before the unlock time.
	ErrLocked = "reserve is still locked"
	// ErrZeroAddress is returned for a malformed or zero account hash.
	ErrZeroAddress = "zero address"
	// ErrNegativeAmount is returned by withdrawTo for a non-positive amount.
	ErrNegativeAmount = "non-positive amount"
	// ErrExceedsBalance is returned by withdrawTo for an amount larger than
	// the held balance.
	ErrExceedsBalance = "amount exceeds reserve balance"
	// ErrTransferFailed is returned when the token reports a failed transfer.
	ErrTransferFailed = "token transfer failed"
	// ErrUnexpectedToken is returned by onNEP17Payment for transfers of any
	// token other than the configured one.
	ErrUnexpectedToken = "unexpected token"
)

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner        interop.Hash160
		token        interop.Hash160
		lockDuration int
	})

	if !common.IsValidAddress(args.token) {
		panic(ErrZeroAddress)
	}
	lock := args.lockDuration
	if lock <= 0 {
		lock = DefaultLockDuration
	}

	ctx := storage.GetContext()
	common.SetOwner(ctx, args.owner)
	storage.Put(ctx, []byte{keyToken}, args.token)
	storage.Put(ctx, []byte{keyUnlockAt}, runtime.GetTime()+lock)

	runtime.Log("reserve contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckContractOwner(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("reserve contract updated")
}

// Token returns the hash of the token held by the reserve.
func Token() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return token(ctx)
}

// UnlockTime returns the millisecond timestamp withdrawals become possible
// at.
func UnlockTime() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{keyUnlockAt}).(int)
}

// LockedBalance returns the current token balance of the reserve.
func LockedBalance() int {
	ctx := storage.GetReadOnlyContext()
	me := runtime.GetExecutingScriptHash()
	return contract.Call(token(ctx), "balanceOf", contract.ReadOnly, me).(int)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// OnNEP17Payment accepts deposits of the configured token. Transfers of any
// other token are rejected, which faults the offending transaction, so
// foreign tokens cannot get stuck here.
func OnNEP17Payment(from interop.Hash160, amount int, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	if !common.BytesEqual(runtime.GetCallingScriptHash(), token(ctx)) {
		panic(ErrUnexpectedToken)
	}
}

// WithdrawTo sends the specified amount of the held token to the specified
// account. Can be invoked only by the contract owner and only after the
// unlock time has passed. The timestamp comparison uses the persisting
// block, so a block timestamped exactly at the unlock time is already
// unlocked.
//
// Produces Withdraw notification.
func WithdrawTo(to interop.Hash160, amount int) {
	ctx := storage.GetReadOnlyContext()
	common.CheckContractOwner(ctx)

	if runtime.GetTime() < storage.Get(ctx, []byte{keyUnlockAt}).(int) {
		panic(ErrLocked)
	}
	if !common.IsValidAddress(to) {
		panic(ErrZeroAddress)
	}
	if amount <= 0 {
		panic(ErrNegativeAmount)
	}

	tok := token(ctx)
	me := runtime.GetExecutingScriptHash()
	balance := contract.Call(tok, "balanceOf", contract.ReadOnly, me).(int)
	if amount > balance {
		panic(ErrExceedsBalance)
	}

	ok := contract.Call(tok, "transfer", contract.All, me, to, amount, nil).(bool)
	if !ok {
		panic(ErrTransferFailed)
	}
	runtime.Notify("Withdraw", to, amount)
}

func token(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{keyToken}).(interop.Hash160)
}
