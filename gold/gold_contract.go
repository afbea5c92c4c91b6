package gold

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/pettyverse/marketplace-contract/common"
)

const (
	symbol   = "GOLD"
	decimals = 8

	// totalSupply is minted to the owner on deploy and never changes
	// afterwards, there is no mint or burn.
	totalSupply = 1_000_000 * 1_0000_0000
)

// Storage layout.
const (
	prefixBalance   byte = 0x01
	prefixAllowance byte = 0x02
	prefixBlacklist byte = 0x03
	keyPaused       byte = 0x04
	keyPauser       byte = 0x05
)

// Failure messages. Each gate of a mutating method aborts the transaction
// with one of these, so a faulted invocation leaves no partial state.
const (
	// ErrPaused is returned by transfers while the pause flag is set.
	ErrPaused = "token transfers are paused"
	// ErrAlreadyPaused is returned by a redundant pause call.
	ErrAlreadyPaused = "token transfers are already paused"
	// ErrNotPaused is returned by unpause when the flag is not set.
	ErrNotPaused = "token transfers are not paused"
	// ErrBlacklisted is returned when either transfer side is blacklisted.
	ErrBlacklisted = "account is blacklisted"
	// ErrAlreadyBlacklisted is returned by a redundant addToBlacklist call.
	ErrAlreadyBlacklisted = "account is already blacklisted"
	// ErrNotBlacklisted is returned by removeFromBlacklist for a clean account.
	ErrNotBlacklisted = "account is not blacklisted"
	// ErrSelfBlacklist is returned when the admin blacklists own account.
	ErrSelfBlacklist = "cannot blacklist contract owner"
	// ErrInvalidRecipient is returned on transfers to a malformed or zero hash.
	ErrInvalidRecipient = "invalid recipient"
	// ErrInvalidSpender is returned by approve for a malformed spender hash.
	ErrInvalidSpender = "invalid spender"
	// ErrNegativeAmount is returned for any negative token amount.
	ErrNegativeAmount = "negative amount"
	// ErrInsufficientBalance is returned when the sender balance is too low.
	ErrInsufficientBalance = "insufficient balance"
	// ErrInsufficientAllowance is returned by transferFrom when the spender
	// allowance does not cover the amount.
	ErrInsufficientAllowance = "insufficient allowance"
)

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner interop.Hash160
	})

	ctx := storage.GetContext()
	common.SetOwner(ctx, args.owner)
	storage.Put(ctx, []byte{keyPauser}, args.owner)
	storage.Put(ctx, balanceKey(args.owner), totalSupply)

	runtime.Notify("Transfer", interop.Hash160(nil), args.owner, totalSupply)
	runtime.Log("gold contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckContractOwner(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("gold contract updated")
}

// Symbol is a NEP-17 standard method that returns the token symbol.
func Symbol() string {
	return symbol
}

// Decimals is a NEP-17 standard method that returns the token precision.
func Decimals() int {
	return decimals
}

// TotalSupply is a NEP-17 standard method that returns the fixed amount of
// token parts in circulation.
func TotalSupply() int {
	return totalSupply
}

// BalanceOf is a NEP-17 standard method that returns the token balance of
// the specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return balanceOf(ctx, account)
}

// Allowance returns the amount the spender is still allowed to transfer
// from the owner account via transferFrom.
func Allowance(owner, spender interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return allowance(ctx, owner, spender)
}

// IsPaused returns true if token transfers are currently suspended.
func IsPaused() bool {
	ctx := storage.GetReadOnlyContext()
	return isPaused(ctx)
}

// IsBlacklisted returns true if the account is barred from transfers.
func IsBlacklisted(account interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isBlacklisted(ctx, account)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// Transfer is a NEP-17 standard method that moves tokens between accounts.
// It can be invoked by the account owner or by the contract that is the
// account. Unlike the baseline NEP-17 behaviour every violated precondition
// aborts the transaction, so the caller always learns the exact reason.
//
// Produces Transfer notification.
func Transfer(from, to interop.Hash160, amount int, data interface{}) bool {
	if !isInvokedByAccount(from) {
		panic(common.ErrOwnerWitnessFailed)
	}

	ctx := storage.GetContext()
	transferInternal(ctx, from, to, amount, data)
	return true
}

// Approve sets the spender allowance over the owner tokens to the given
// amount, overwriting any previous value. Approvals are deliberately not
// gated by the pause flag or the blacklist, only spending is.
//
// Produces Approval notification.
func Approve(owner, spender interop.Hash160, amount int) {
	common.CheckOwnerWitness(owner)
	if !common.IsValidAddress(spender) {
		panic(ErrInvalidSpender)
	}
	if amount < 0 {
		panic(ErrNegativeAmount)
	}

	ctx := storage.GetContext()
	setAllowance(ctx, owner, spender, amount)
	runtime.Notify("Approval", owner, spender, amount)
}

// TransferFrom spends the allowance the from account granted to the spender:
// it performs the same gated transfer as Transfer and additionally decreases
// the allowance by the amount. The spender must witness the invocation, a
// calling contract is its own witness.
//
// Produces Transfer notification.
func TransferFrom(spender, from, to interop.Hash160, amount int, data interface{}) bool {
	if !isInvokedByAccount(spender) {
		panic(common.ErrWitnessFailed)
	}

	ctx := storage.GetContext()
	allowed := allowance(ctx, from, spender)
	if allowed < amount {
		panic(ErrInsufficientAllowance)
	}

	transferInternal(ctx, from, to, amount, data)
	setAllowance(ctx, from, spender, allowed-amount)
	return true
}

// Pause suspends all balance-mutating operations. Can be invoked only by
// the pauser account.
//
// Produces Paused notification.
func Pause() {
	ctx := storage.GetContext()
	pauser := checkPauser(ctx)
	if isPaused(ctx) {
		panic(ErrAlreadyPaused)
	}

	storage.Put(ctx, []byte{keyPaused}, 1)
	runtime.Notify("Paused", pauser)
}

// Unpause resumes balance-mutating operations. Can be invoked only by the
// pauser account.
//
// Produces Unpaused notification.
func Unpause() {
	ctx := storage.GetContext()
	pauser := checkPauser(ctx)
	if !isPaused(ctx) {
		panic(ErrNotPaused)
	}

	storage.Delete(ctx, []byte{keyPaused})
	runtime.Notify("Unpaused", pauser)
}

// AddToBlacklist bars the account from being either side of a transfer.
// Can be invoked only by the contract owner, who cannot blacklist itself.
//
// Produces Blacklisted notification.
func AddToBlacklist(account interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	if !common.IsValidAddress(account) {
		panic(ErrInvalidRecipient)
	}
	if common.BytesEqual(account, common.Owner(ctx)) {
		panic(ErrSelfBlacklist)
	}
	if isBlacklisted(ctx, account) {
		panic(ErrAlreadyBlacklisted)
	}

	storage.Put(ctx, blacklistKey(account), 1)
	runtime.Notify("Blacklisted", account)
}

// RemoveFromBlacklist restores the account transfer capabilities. Can be
// invoked only by the contract owner.
//
// Produces UnBlacklisted notification.
func RemoveFromBlacklist(account interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	if !isBlacklisted(ctx, account) {
		panic(ErrNotBlacklisted)
	}

	storage.Delete(ctx, blacklistKey(account))
	runtime.Notify("UnBlacklisted", account)
}

// transferInternal checks every transfer gate and then moves the tokens.
// A panic anywhere here faults the whole transaction, which is what keeps
// the sum of balances equal to totalSupply.
func transferInternal(ctx storage.Context, from, to interop.Hash160, amount int, data interface{}) {
	if amount < 0 {
		panic(ErrNegativeAmount)
	}
	if !common.IsValidAddress(to) {
		panic(ErrInvalidRecipient)
	}
	if isPaused(ctx) {
		panic(ErrPaused)
	}
	if isBlacklisted(ctx, from) || isBlacklisted(ctx, to) {
		panic(ErrBlacklisted)
	}

	fromBalance := balanceOf(ctx, from)
	if fromBalance < amount {
		panic(ErrInsufficientBalance)
	}

	setBalance(ctx, from, fromBalance-amount)
	setBalance(ctx, to, balanceOf(ctx, to)+amount)

	runtime.Notify("Transfer", from, to, amount)
	postTransfer(from, to, amount, data)
}

// postTransfer calls onNEP17Payment method of the recipient if it is
// a deployed contract.
func postTransfer(from, to interop.Hash160, amount int, data interface{}) {
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

// isInvokedByAccount returns true if the account witnessed the transaction
// or the account is the directly calling contract.
func isInvokedByAccount(account interop.Hash160) bool {
	if len(account) != interop.Hash160Len {
		return false
	}
	if runtime.CheckWitness(account) {
		return true
	}
	return common.BytesEqual(runtime.GetCallingScriptHash(), account)
}

func checkPauser(ctx storage.Context) interop.Hash160 {
	pauser := storage.Get(ctx, []byte{keyPauser}).(interop.Hash160)
	common.CheckWitness(pauser)
	return pauser
}

func balanceOf(ctx storage.Context, account interop.Hash160) int {
	val := storage.Get(ctx, balanceKey(account))
	if val == nil {
		return 0
	}
	return val.(int)
}

func setBalance(ctx storage.Context, account interop.Hash160, amount int) {
	key := balanceKey(account)
	if amount == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, amount)
	}
}

func allowance(ctx storage.Context, owner, spender interop.Hash160) int {
	val := storage.Get(ctx, allowanceKey(owner, spender))
	if val == nil {
		return 0
	}
	return val.(int)
}

func setAllowance(ctx storage.Context, owner, spender interop.Hash160, amount int) {
	key := allowanceKey(owner, spender)
	if amount == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, amount)
	}
}

func isPaused(ctx storage.Context) bool {
	return storage.Get(ctx, []byte{keyPaused}) != nil
}

func isBlacklisted(ctx storage.Context, account interop.Hash160) bool {
	return storage.Get(ctx, blacklistKey(account)) != nil
}

func balanceKey(account interop.Hash160) []byte {
	return append([]byte{prefixBalance}, account...)
}

func allowanceKey(owner, spender interop.Hash160) []byte {
	return append(append([]byte{prefixAllowance}, owner...), spender...)
}

func blacklistKey(account interop.Hash160) []byte {
	return append([]byte{prefixBlacklist}, account...)
}
