/*
Marketplace contract implements fixed-price trading of Petty tokens for
NEP-17 payment tokens from an admin-curated set.

A seller lists a token with addOrder, which takes it into marketplace
custody, so at most one open order per token can exist. The order can then
be cancelled by the seller (the token goes back) or executed by any other
account. Execution settles atomically in a single transaction: the fee part
of the price goes to the configured fee recipient, the rest goes to the
seller and the token goes to the buyer. The buyer pays via a payment token
allowance granted to the marketplace beforehand.

The fee fraction is rate / 10^(decimals+2), configured at deploy and
adjustable by the contract owner. Orders are charged the configuration
current at execution time, not at listing time.

# Contract notifications

OrderAdded notification. Produced on every successful listing.

	OrderAdded:
	  - name: orderId
	    type: Integer
	  - name: seller
	    type: Hash160
	  - name: tokenId
	    type: ByteArray
	  - name: paymentToken
	    type: Hash160
	  - name: price
	    type: Integer

OrderCancelled notification.

	OrderCancelled:
	  - name: orderId
	    type: Integer

OrderExecuted notification. Fee is the realized fee amount in payment token
units.

	OrderExecuted:
	  - name: orderId
	    type: Integer
	  - name: buyer
	    type: Hash160
	  - name: fee
	    type: Integer

FeeRateUpdated notification.

	FeeRateUpdated:
	  - name: feeDecimals
	    type: Integer
	  - name: feeRate
	    type: Integer

FeeRecipientUpdated notification.

	FeeRecipientUpdated:
	  - name: feeRecipient
	    type: Hash160

PaymentTokenAdded notification.

	PaymentTokenAdded:
	  - name: paymentToken
	    type: Hash160
*/
package marketplace
