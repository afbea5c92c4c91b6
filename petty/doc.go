/*
Petty contract is the non-divisible NEP-11 compatible token whose items are
traded on the marketplace contract.

Tokens are minted by the contract owner with sequential numeric IDs. Besides
the standard NEP-11 surface the contract keeps ERC-721 style operator
approvals: an owner may allow another account or contract to move any of its
tokens via transferFrom, which is how the marketplace takes and releases
custody of listed items.

# Contract notifications

Transfer notification. This is the NEP-11 standard notification, amount is
always 1.

	Transfer:
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tokenId
	    type: ByteArray

ApprovalForAll notification. Produced when an owner grants or revokes an
operator.

	ApprovalForAll:
	  - name: owner
	    type: Hash160
	  - name: operator
	    type: Hash160
	  - name: approved
	    type: Boolean
*/
package petty
