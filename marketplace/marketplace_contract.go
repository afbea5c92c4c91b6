package marketplace

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

// Storage layout.
const (
	// keyNFTContract contains the hash of the NFT contract whose tokens
	// are listed here. Fixed at deploy.
	keyNFTContract byte = 0x01
	// keyFeeDecimals and keyFeeRate contain the current fee
	// configuration, the effective fraction is rate / 10^(decimals+2).
	keyFeeDecimals byte = 0x02
	keyFeeRate     byte = 0x03
	// keyFeeRecipient contains the account the fee part of every sale
	// is paid to.
	keyFeeRecipient byte = 0x04
	// keyOrderCounter contains the last allocated order ID.
	keyOrderCounter byte = 0x05
	// prefixPaymentToken contains the set of accepted payment token
	// hashes.
	prefixPaymentToken byte = 0x10
	// prefixOrder contains map from order ID to the Order structure.
	prefixOrder byte = 0x20
)

// Order statuses. An order starts Open and ends in exactly one of the two
// terminal states, records are never deleted or reused.
const (
	StatusOpen      = 0
	StatusSold      = 1
	StatusCancelled = 2
)

// Failure messages.
const (
	// ErrUnsupportedToken is returned by addOrder for a payment token
	// outside the admin-curated set.
	ErrUnsupportedToken = "payment token is not supported"
	// ErrAlreadySupported is returned by a redundant addPaymentToken call.
	ErrAlreadySupported = "payment token is already supported"
	// ErrZeroAddress is returned for a malformed or zero account hash.
	ErrZeroAddress = "zero address"
	// ErrBadFeeRate is returned when rate >= 10^(decimals+2), i.e. the fee
	// would reach 100%.
	ErrBadFeeRate = "bad fee rate"
	// ErrZeroPrice is returned by addOrder for a non-positive price.
	ErrZeroPrice = "zero price"
	// ErrNotTokenOwner is returned by addOrder when the seller does not
	// own the listed token.
	ErrNotTokenOwner = "seller does not own the token"
	// ErrNotApproved is returned by addOrder when the marketplace is not
	// an approved operator of the seller.
	ErrNotApproved = "marketplace is not an approved operator"
	// ErrOrderNotFound is returned for an order ID that was never created.
	ErrOrderNotFound = "order not found"
	// ErrOrderFinalized is returned when the order is already Sold or
	// Cancelled.
	ErrOrderFinalized = "order is already finalized"
	// ErrSellerCannotBuy is returned when the seller executes own order.
	ErrSellerCannotBuy = "seller cannot execute own order"
	// ErrPaymentFailed is returned when the payment token call reports a
	// failed transfer.
	ErrPaymentFailed = "payment transfer failed"
	// ErrAssetTransferFailed is returned when the NFT contract reports a
	// failed transfer.
	ErrAssetTransferFailed = "asset transfer failed"
	// ErrUnexpectedNFT is returned by onNEP11Payment for tokens of any
	// contract other than the configured one.
	ErrUnexpectedNFT = "unexpected NFT contract"
)

// Order is a seller's standing offer to exchange one token for a fixed
// amount of a payment token. Everything but Status is immutable after
// creation.
type Order struct {
	ID           int
	Seller       interop.Hash160
	TokenID      []byte
	PaymentToken interop.Hash160
	Price        int
	Status       int
}

func _deploy(data interface{}, isUpdate bool) {
	if isUpdate {
		args := data.([]interface{})
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner        interop.Hash160
		nftContract  interop.Hash160
		feeDecimals  int
		feeRate      int
		feeRecipient interop.Hash160
	})

	if !common.IsValidAddress(args.nftContract) {
		panic(ErrZeroAddress)
	}
	checkFeeRate(args.feeDecimals, args.feeRate)
	if !common.IsValidAddress(args.feeRecipient) {
		panic(ErrZeroAddress)
	}

	ctx := storage.GetContext()
	common.SetOwner(ctx, args.owner)
	storage.Put(ctx, []byte{keyNFTContract}, args.nftContract)
	storage.Put(ctx, []byte{keyFeeDecimals}, args.feeDecimals)
	storage.Put(ctx, []byte{keyFeeRate}, args.feeRate)
	storage.Put(ctx, []byte{keyFeeRecipient}, args.feeRecipient)
	storage.Put(ctx, []byte{keyOrderCounter}, 0)

	runtime.Log("marketplace contract initialized")
}

// Update method updates contract source code and manifest. Can be invoked
// only by the contract owner.
func Update(script []byte, manifest []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	common.CheckContractOwner(ctx)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("marketplace contract updated")
}

// AssetContract returns the hash of the NFT contract traded here.
func AssetContract() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return nftContract(ctx)
}

// FeeDecimals returns the decimals part of the fee configuration.
func FeeDecimals() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{keyFeeDecimals}).(int)
}

// FeeRate returns the rate part of the fee configuration.
func FeeRate() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{keyFeeRate}).(int)
}

// FeeRecipient returns the account sale fees are paid to.
func FeeRecipient() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{keyFeeRecipient}).(interop.Hash160)
}

// IsPaymentTokenSupported returns true if orders may be priced in the
// specified token.
func IsPaymentTokenSupported(token interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return isPaymentTokenSupported(ctx, token)
}

// GetOrder returns the order with the specified ID.
func GetOrder(id int) Order {
	ctx := storage.GetReadOnlyContext()
	return getOrder(ctx, id)
}

// Orders returns iterator over all orders ever created, terminal ones
// included.
func Orders() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixOrder},
		storage.ValuesOnly|storage.DeserializeValues)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// UpdateFeeRecipient changes the account sale fees are paid to. Can be
// invoked only by the contract owner.
//
// Produces FeeRecipientUpdated notification.
func UpdateFeeRecipient(addr interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	if !common.IsValidAddress(addr) {
		panic(ErrZeroAddress)
	}

	storage.Put(ctx, []byte{keyFeeRecipient}, addr)
	runtime.Notify("FeeRecipientUpdated", addr)
}

// UpdateFeeRate changes the fee configuration. The new effective fraction
// rate / 10^(decimals+2) must stay strictly below 100%. Can be invoked only
// by the contract owner. Open orders are charged the configuration that is
// current at execution time.
//
// Produces FeeRateUpdated notification.
func UpdateFeeRate(feeDecimals, feeRate int) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	checkFeeRate(feeDecimals, feeRate)

	storage.Put(ctx, []byte{keyFeeDecimals}, feeDecimals)
	storage.Put(ctx, []byte{keyFeeRate}, feeRate)
	runtime.Notify("FeeRateUpdated", feeDecimals, feeRate)
}

// AddPaymentToken adds the token to the set orders may be priced in. Can be
// invoked only by the contract owner. Tokens cannot be removed, delisting a
// token would strand its open orders.
//
// Produces PaymentTokenAdded notification.
func AddPaymentToken(addr interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckContractOwner(ctx)
	if !common.IsValidAddress(addr) {
		panic(ErrZeroAddress)
	}
	if isPaymentTokenSupported(ctx, addr) {
		panic(ErrAlreadySupported)
	}

	storage.Put(ctx, paymentTokenKey(addr), 1)
	runtime.Notify("PaymentTokenAdded", addr)
}

// AddOrder lists the specified token for sale at a fixed price and takes it
// into marketplace custody, so a token can have at most one open order. The
// seller must witness the invocation, own the token and have the
// marketplace approved as an operator. Order IDs are allocated
// sequentially starting from 1; after cancellation a token can be listed
// again under a fresh ID.
//
// Produces OrderAdded notification and returns the new order ID.
func AddOrder(seller interop.Hash160, tokenID []byte, paymentToken interop.Hash160, price int) int {
	common.CheckOwnerWitness(seller)

	ctx := storage.GetContext()
	if !isPaymentTokenSupported(ctx, paymentToken) {
		panic(ErrUnsupportedToken)
	}

	nft := nftContract(ctx)
	tokenOwner := contract.Call(nft, "ownerOf", contract.ReadOnly, tokenID).(interop.Hash160)
	if !common.BytesEqual(tokenOwner, seller) {
		panic(ErrNotTokenOwner)
	}

	me := runtime.GetExecutingScriptHash()
	approved := contract.Call(nft, "isApprovedForAll", contract.ReadOnly, seller, me).(bool)
	if !approved {
		panic(ErrNotApproved)
	}

	if price <= 0 {
		panic(ErrZeroPrice)
	}

	ok := contract.Call(nft, "transferFrom", contract.All, seller, me, tokenID, nil).(bool)
	if !ok {
		panic(ErrAssetTransferFailed)
	}

	id := storage.Get(ctx, []byte{keyOrderCounter}).(int) + 1
	storage.Put(ctx, []byte{keyOrderCounter}, id)

	putOrder(ctx, Order{
		ID:           id,
		Seller:       seller,
		TokenID:      tokenID,
		PaymentToken: paymentToken,
		Price:        price,
		Status:       StatusOpen,
	})

	runtime.Notify("OrderAdded", id, seller, tokenID, paymentToken, price)
	return id
}

// CancelOrder takes the open order off the book and returns the token to
// the seller. Only the seller may cancel and only while the order is Open.
//
// Produces OrderCancelled notification.
func CancelOrder(id int) {
	ctx := storage.GetContext()
	order := getOrder(ctx, id)
	common.CheckOwnerWitness(order.Seller)
	if order.Status != StatusOpen {
		panic(ErrOrderFinalized)
	}

	me := runtime.GetExecutingScriptHash()
	nft := nftContract(ctx)
	ok := contract.Call(nft, "transferFrom", contract.All, me, order.Seller, order.TokenID, nil).(bool)
	if !ok {
		panic(ErrAssetTransferFailed)
	}

	order.Status = StatusCancelled
	putOrder(ctx, order)
	runtime.Notify("OrderCancelled", id)
}

// ExecuteOrder settles the open order atomically: the fee part of the price
// moves from the buyer to the fee recipient, the remainder moves to the
// seller and the token leaves custody for the buyer. The buyer pays through
// the payment token allowance previously granted to the marketplace. Any
// failing leg faults the whole transaction.
//
// The fee is price * rate / 10^(decimals+2) with truncating division and
// the seller share is the subtraction remainder, so fee + share always
// reconstructs the price exactly. Zero-value legs are skipped, not
// attempted.
//
// Produces OrderExecuted notification carrying the realized fee.
func ExecuteOrder(buyer interop.Hash160, id int) {
	common.CheckWitness(buyer)

	ctx := storage.GetContext()
	order := getOrder(ctx, id)
	if order.Status != StatusOpen {
		panic(ErrOrderFinalized)
	}
	if common.BytesEqual(buyer, order.Seller) {
		panic(ErrSellerCannotBuy)
	}

	feeDecimals := storage.Get(ctx, []byte{keyFeeDecimals}).(int)
	feeRate := storage.Get(ctx, []byte{keyFeeRate}).(int)
	fee := order.Price * feeRate / feeDenominator(feeDecimals)
	sellerShare := order.Price - fee

	me := runtime.GetExecutingScriptHash()
	if fee > 0 {
		recipient := storage.Get(ctx, []byte{keyFeeRecipient}).(interop.Hash160)
		payFrom(order.PaymentToken, me, buyer, recipient, fee)
	}
	if sellerShare > 0 {
		payFrom(order.PaymentToken, me, buyer, order.Seller, sellerShare)
	}

	nft := nftContract(ctx)
	ok := contract.Call(nft, "transferFrom", contract.All, me, buyer, order.TokenID, nil).(bool)
	if !ok {
		panic(ErrAssetTransferFailed)
	}

	order.Status = StatusSold
	putOrder(ctx, order)
	runtime.Notify("OrderExecuted", id, buyer, fee)
}

// OnNEP11Payment accepts tokens taken into custody by addOrder. Anything
// not coming from the configured NFT contract is rejected, which faults the
// offending transfer.
func OnNEP11Payment(from interop.Hash160, amount int, tokenID []byte, data interface{}) {
	ctx := storage.GetReadOnlyContext()
	if !common.BytesEqual(runtime.GetCallingScriptHash(), nftContract(ctx)) {
		panic(ErrUnexpectedNFT)
	}
}

// payFrom spends the buyer's allowance granted to the marketplace.
func payFrom(token interop.Hash160, spender, from, to interop.Hash160, amount int) {
	ok := contract.Call(token, "transferFrom", contract.All, spender, from, to, amount, nil).(bool)
	if !ok {
		panic(ErrPaymentFailed)
	}
}

// checkFeeRate panics unless rate / 10^(decimals+2) is a valid fee
// fraction below 100%.
func checkFeeRate(feeDecimals, feeRate int) {
	if feeDecimals < 0 || feeRate < 0 || feeRate >= feeDenominator(feeDecimals) {
		panic(ErrBadFeeRate)
	}
}

// feeDenominator returns 10^(feeDecimals+2). VM integers are 256 bit wide,
// the loop below cannot realistically overflow for a valid configuration.
func feeDenominator(feeDecimals int) int {
	d := 100
	for i := 0; i < feeDecimals; i++ {
		d *= 10
	}
	return d
}

func nftContract(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{keyNFTContract}).(interop.Hash160)
}

func isPaymentTokenSupported(ctx storage.Context, token interop.Hash160) bool {
	return storage.Get(ctx, paymentTokenKey(token)) != nil
}

func getOrder(ctx storage.Context, id int) Order {
	data := storage.Get(ctx, orderKey(id))
	if data == nil {
		panic(ErrOrderNotFound)
	}
	return std.Deserialize(data.([]byte)).(Order)
}

func putOrder(ctx storage.Context, order Order) {
	common.SetSerialized(ctx, orderKey(order.ID), order)
}

func orderKey(id int) []byte {
	return append([]byte{prefixOrder}, []byte(std.Itoa(id, 10))...)
}

func paymentTokenKey(token interop.Hash160) []byte {
	return append([]byte{prefixPaymentToken}, token...)
}
