/*
Gold contract is the NEP-17 compatible payment token of the marketplace
contract suite.

The whole supply is minted to the contract owner on deploy and stays
constant afterwards. On top of the NEP-17 surface the contract keeps
ERC-20 style allowances (approve, allowance, transferFrom) so that other
contracts, the marketplace in particular, can move tokens on behalf of a
buyer, and two administrative gates: a global pause flag held by the pauser
account and a blacklist managed by the contract owner. While the pause flag
is set or either transfer side is blacklisted, every balance-mutating call
faults without touching state.

# Contract notifications

Transfer notification. This is the NEP-17 standard notification.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer

Approval notification. Produced when an owner sets a spender allowance.

	Approval:
	  - name: owner
	    type: Hash160
	  - name: spender
	    type: Hash160
	  - name: amount
	    type: Integer

Paused and Unpaused notifications carry the pauser account.

	Paused:
	  - name: by
	    type: Hash160

	Unpaused:
	  - name: by
	    type: Hash160

Blacklisted and UnBlacklisted notifications carry the affected account.

	Blacklisted:
	  - name: account
	    type: Hash160

	UnBlacklisted:
	  - name: account
	    type: Hash160
*/
package gold
