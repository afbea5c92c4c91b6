package petty

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/pettyverse/marketplace-contract/common"
)

const symbol = "PETTY"

// Prefixes used for contract data storage.
const (
	// keyTotalSupply contains the number of minted tokens.
	keyTotalSupply byte = 0x00
	// prefixBalance contains map from the owner to their token count.
	prefixBalance byte = 0x01
	// prefixAccountToken contains map from (owner + token ID) to token ID,
	// the per-account token index.
	prefixAccountToken byte = 0x02
	// prefixToken contains map from token ID to the TokenState structure.
	prefixToken byte = 0x03
	// prefixOperator contains map from (owner + operator) to the
	// operator approval flag.
	prefixOperator byte = 0x04
	// keyTokenCounter contains the last allocated token number.
	keyTokenCounter byte = 0x05
)

// Failure messages.
const (
	// ErrTokenNotFound is returned for a token ID that was never minted.
	ErrTokenNotFound = "token not found"
	// ErrNotTokenOwner is returned by transferFrom when the from account
	// does not own the token.
	ErrNotTokenOwner = "from account does not own the token"
	// ErrTransferNotAllowed is returned by transferFrom when neither the
	// token owner witnessed the call nor an approved operator made it.
	ErrTransferNotAllowed = "transfer not allowed"
	// ErrInvalidReceiver is returned on transfers to a malformed or zero hash.
	ErrInvalidReceiver = "invalid receiver"
	// ErrInvalidOperator is returned by setApprovalForAll for a malformed
	// operator hash.
	ErrInvalidOperator = "invalid operator"
)

// TokenState is the stored description of a single minted token.
type TokenState struct {
	// Owner is the current holder of the token.
	Owner interop.Hash160
	// ID is the decimal string the token was minted under.
	ID []byte
}

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
	storage.Put(ctx, []byte{keyTotalSupply}, 0)
	storage.Put(ctx, []byte{keyTokenCounter}, 0)

	runtime.Log("petty contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckContractOwner(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("petty contract updated")
}

// Symbol returns the token symbol.
func Symbol() string {
	return symbol
}

// Decimals returns 0, the token is non-divisible.
func Decimals() int {
	return 0
}

// TotalSupply returns the overall number of minted tokens.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{keyTotalSupply}).(int)
}

// BalanceOf returns the number of tokens owned by the specified account.
func BalanceOf(owner interop.Hash160) int {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}
	ctx := storage.GetReadOnlyContext()
	return balanceOf(ctx, owner)
}

// OwnerOf returns the owner of the specified token.
func OwnerOf(tokenID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return getToken(ctx, tokenID).Owner
}

// Properties returns properties of the specified token.
func Properties(tokenID []byte) map[string]interface{} {
	ctx := storage.GetReadOnlyContext()
	ts := getToken(ctx, tokenID)
	return map[string]interface{}{
		"name": "Petty #" + string(ts.ID),
	}
}

// Tokens returns iterator over the IDs of all minted tokens.
func Tokens() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixToken},
		storage.ValuesOnly|storage.DeserializeValues|storage.PickField1)
}

// TokensOf returns iterator over the IDs of tokens owned by the specified
// account.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...),
		storage.ValuesOnly)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// Mint creates the next token and assigns it to the specified account.
// Token numbers are allocated sequentially starting from 1 and the token ID
// is the decimal string of the number. Can be invoked only by the contract
// owner.
//
// Produces Transfer notification with empty from.
func Mint(to interop.Hash160) []byte {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	if !common.IsValidAddress(to) {
		panic(ErrInvalidReceiver)
	}

	num := storage.Get(ctx, []byte{keyTokenCounter}).(int) + 1
	storage.Put(ctx, []byte{keyTokenCounter}, num)

	tokenID := []byte(std.Itoa(num, 10))
	common.SetSerialized(ctx, tokenKey(tokenID), TokenState{
		Owner: to,
		ID:    tokenID,
	})
	updateBalance(ctx, tokenID, to, +1)

	supply := storage.Get(ctx, []byte{keyTotalSupply}).(int)
	storage.Put(ctx, []byte{keyTotalSupply}, supply+1)

	postTransfer(nil, to, tokenID, nil)
	return tokenID
}

// Transfer is a NEP-11 standard method that transfers the token to the new
// owner. It returns false if the current owner did not witness the
// invocation.
//
// Produces Transfer notification.
func Transfer(to interop.Hash160, tokenID []byte, data interface{}) bool {
	if !common.IsValidAddress(to) {
		panic(ErrInvalidReceiver)
	}

	ctx := storage.GetContext()
	ts := getToken(ctx, tokenID)
	if !runtime.CheckWitness(ts.Owner) {
		return false
	}

	move(ctx, ts, to, data)
	return true
}

// TransferFrom transfers the token from its current owner to the new one on
// behalf of the from account. It can be invoked with the owner witness or by
// a contract the owner approved via setApprovalForAll; this is the method
// custody-taking contracts use.
//
// Produces Transfer notification.
func TransferFrom(from, to interop.Hash160, tokenID []byte, data interface{}) bool {
	if !common.IsValidAddress(to) {
		panic(ErrInvalidReceiver)
	}

	ctx := storage.GetContext()
	ts := getToken(ctx, tokenID)
	if !common.BytesEqual(ts.Owner, from) {
		panic(ErrNotTokenOwner)
	}
	if !isTransferAllowed(ctx, from) {
		panic(ErrTransferNotAllowed)
	}

	move(ctx, ts, to, data)
	return true
}

// SetApprovalForAll lets the operator transfer any token of the owner via
// transferFrom, or revokes that right. The owner must witness the call.
//
// Produces ApprovalForAll notification.
func SetApprovalForAll(owner, operator interop.Hash160, approved bool) {
	common.CheckOwnerWitness(owner)
	if !common.IsValidAddress(operator) {
		panic(ErrInvalidOperator)
	}

	ctx := storage.GetContext()
	key := operatorKey(owner, operator)
	if approved {
		storage.Put(ctx, key, 1)
	} else {
		storage.Delete(ctx, key)
	}
	runtime.Notify("ApprovalForAll", owner, operator, approved)
}

// IsApprovedForAll returns true if the operator is currently approved to
// transfer the owner tokens.
func IsApprovedForAll(owner, operator interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isApprovedForAll(ctx, owner, operator)
}

// isTransferAllowed reports whether the current invocation may move a token
// of the specified owner: the owner witnessed the transaction, the owner is
// the directly calling contract, or the calling contract is an approved
// operator.
func isTransferAllowed(ctx storage.Context, owner interop.Hash160) bool {
	if runtime.CheckWitness(owner) {
		return true
	}
	caller := runtime.GetCallingScriptHash()
	if common.BytesEqual(caller, owner) {
		return true
	}
	return isApprovedForAll(ctx, owner, caller)
}

func isApprovedForAll(ctx storage.Context, owner, operator interop.Hash160) bool {
	return storage.Get(ctx, operatorKey(owner, operator)) != nil
}

// move reassigns the token and updates both account indexes.
func move(ctx storage.Context, ts TokenState, to interop.Hash160, data interface{}) {
	from := ts.Owner
	if !common.BytesEqual(from, to) {
		updateBalance(ctx, ts.ID, from, -1)
		ts.Owner = to
		common.SetSerialized(ctx, tokenKey(ts.ID), ts)
		updateBalance(ctx, ts.ID, to, +1)
	}
	postTransfer(from, to, ts.ID, data)
}

// updateBalance updates the account's token count and token index.
func updateBalance(ctx storage.Context, tokenID []byte, acc interop.Hash160, diff int) {
	key := append([]byte{prefixBalance}, acc...)
	balance := balanceOf(ctx, acc) + diff
	if balance == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, balance)
	}

	accountTokenKey := append(append([]byte{prefixAccountToken}, acc...), tokenID...)
	if diff < 0 {
		storage.Delete(ctx, accountTokenKey)
	} else {
		storage.Put(ctx, accountTokenKey, tokenID)
	}
}

// postTransfer sends Transfer notification to the network and calls
// onNEP11Payment method of contract recipients.
func postTransfer(from, to interop.Hash160, tokenID []byte, data interface{}) {
	runtime.Notify("Transfer", from, to, 1, tokenID)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP11Payment", contract.All, from, 1, tokenID, data)
	}
}

func balanceOf(ctx storage.Context, acc interop.Hash160) int {
	val := storage.Get(ctx, append([]byte{prefixBalance}, acc...))
	if val == nil {
		return 0
	}
	return val.(int)
}

func getToken(ctx storage.Context, tokenID []byte) TokenState {
	data := storage.Get(ctx, tokenKey(tokenID))
	if data == nil {
		panic(ErrTokenNotFound)
	}
	return std.Deserialize(data.([]byte)).(TokenState)
}

func tokenKey(tokenID []byte) []byte {
	return append([]byte{prefixToken}, tokenID...)
}

func operatorKey(owner, operator interop.Hash160) []byte {
	return append(append([]byte{prefixOperator}, owner...), operator...)
}
