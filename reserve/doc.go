/*
Reserve contract is a time-locked vault for a single NEP-17 token,
typically used as the marketplace fee recipient. Anyone can deposit the
configured token with a regular NEP-17 transfer, transfers of any other
token are rejected. Withdrawals are owner-only and become possible after
the lock period (one week by default) counted from deployment.

# Contract notifications

Withdraw notification. Produced on every successful withdrawal.

	Withdraw:
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package reserve
