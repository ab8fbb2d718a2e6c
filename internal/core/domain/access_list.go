package domain

// AccessTuple is one access list entry: an address and the storage keys it will touch.
type AccessTuple struct {
	Address     Address
	StorageKeys []StorageKey
}

// AccessList is an ordered list of access tuples. Entry order and key order are significant.
type AccessList []AccessTuple

// Copy returns a deep copy. The result and every StorageKeys slice in it are non-nil.
func (al AccessList) Copy() AccessList {
	cpy := make(AccessList, len(al))
	for i, tuple := range al {
		keys := make([]StorageKey, len(tuple.StorageKeys))
		copy(keys, tuple.StorageKeys)
		cpy[i] = AccessTuple{Address: tuple.Address, StorageKeys: keys}
	}
	return cpy
}

// StorageKeyCount returns the total number of storage keys across all entries.
func (al AccessList) StorageKeyCount() int {
	n := 0
	for _, tuple := range al {
		n += len(tuple.StorageKeys)
	}
	return n
}
