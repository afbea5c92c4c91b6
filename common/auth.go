package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by the contract owner or an asset owner but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// on behalf of a certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// ownerKey is the storage key all contracts of the suite keep their
// owner account under.
const ownerKey = "contractOwner"

// SetOwner writes the owner account to the contract storage. It is called
// once from _deploy and never again, ownership is not transferable.
func SetOwner(ctx storage.Context, owner interop.Hash160) {
	if !IsValidAddress(owner) {
		panic("invalid owner")
	}
	storage.Put(ctx, ownerKey, owner)
}

// Owner returns the owner account of the contract.
func Owner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

// CheckContractOwner panics with ErrOwnerWitnessFailed unless the stored
// contract owner witnessed the invocation.
func CheckContractOwner(ctx storage.Context) {
	CheckOwnerWitness(Owner(ctx))
}

// CheckOwnerWitness checks witness of the passed caller.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(caller interop.Hash160) {
	if !runtime.CheckWitness(caller) {
		panic(ErrOwnerWitnessFailed)
	}
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller interop.Hash160) {
	if !runtime.CheckWitness(caller) {
		panic(ErrWitnessFailed)
	}
}

// IsValidAddress reports whether addr is a proper 20-byte account hash.
// The all-zero hash is not considered valid, it is the conventional
// "no account" value.
func IsValidAddress(addr interop.Hash160) bool {
	if len(addr) != interop.Hash160Len {
		return false
	}
	for i := 0; i < interop.Hash160Len; i++ {
		if addr[i] != 0 {
			return true
		}
	}
	return false
}

// BytesEqual compares two slices of bytes by wrapping them into strings,
// which is necessary with new util.Equals interop behaviour, see neo-go#1176.
func BytesEqual(a []byte, b []byte) bool {
	return util.Equals(string(a), string(b))
}
