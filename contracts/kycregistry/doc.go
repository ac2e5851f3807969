/*
Package kycregistry implements the KYC Registry contract.

KYC Registry stores the restriction attributes of fund participants: a ban
flag, a KYC approval flag and a US-person flag per address, plus the global
strict switch. The flags are written by an external compliance authority
and only read by the Fund Vault contract, which evaluates them on every
share movement.

The registry deliberately knows nothing about the vault or the policy
algorithm, it is a plain attribute store. Policy evaluation order lives in
the vault's detectTransferRestriction.

# Contract notifications

KycStatusUpdated notification.

	KycStatusUpdated:
	  - name: addr
	    type: Hash160
	  - name: kyc
	    type: Boolean
	  - name: us
	    type: Boolean

Banned and Unbanned notifications.

	Banned:
	  - name: addr
	    type: Hash160

	Unbanned:
	  - name: addr
	    type: Hash160

StrictModeSet notification.

	StrictModeSet:
	  - name: on
	    type: Boolean

AuthorityChanged notification.

	AuthorityChanged:
	  - name: authority
	    type: Hash160
*/
package kycregistry

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'authority' -> interop.Hash160
   address of the compliance authority controlling the registry
 - 'strict' -> int
   presence of the key turns the global strict mode on
 - f<interop.Hash160> -> std.Serialize(Flags)
   restriction attributes of fund participants (here Flags is a structure
   defined in current package)
*/
