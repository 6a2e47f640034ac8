package common

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Address is a 20-byte account identifier.
type Address [20]byte

// Slot is a 32-byte storage cell identifier within an account.
type Slot [32]byte

// FlatKey is the 64-bit identifier under which a storage location is kept
// in a flat store. It is derived from a Key via FlatKeyOf.
type FlatKey uint64

// FlatValue is the 64-bit value type of a flat store.
type FlatValue uint64

// Key identifies a single storage location as the combination of an account
// address and a storage slot. Keys compare by byte content.
type Key struct {
	Address Address
	Slot    Slot
}

// ErrMalformedKey is returned when decoding a key whose address or slot
// payload does not have the exact required byte length.
const ErrMalformedKey = ConstError("malformed key")

// FlatKeyOf derives the flat store key for the given structured key. The
// derivation is a pure function of the key's bytes: it hashes the address
// followed by the slot with a fresh Keccak256 instance and folds the first
// eight bytes of the digest into a 64-bit value. Identical keys yield
// identical flat keys within and across processes.
func FlatKeyOf(key Key) FlatKey {
	hash := Keccak256(key.Address[:], key.Slot[:])
	return FlatKey(binary.BigEndian.Uint64(hash[:8]))
}

// DecodeAddress parses a 0x-prefixed hex string into an Address. Any payload
// length other than 20 bytes is rejected with ErrMalformedKey.
func DecodeAddress(s string) (Address, error) {
	data, err := hexutil.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: address %q: %v", ErrMalformedKey, s, err)
	}
	if len(data) != len(Address{}) {
		return Address{}, fmt.Errorf("%w: address must be %d bytes, got %d", ErrMalformedKey, len(Address{}), len(data))
	}
	var res Address
	copy(res[:], data)
	return res, nil
}

// DecodeSlot parses a 0x-prefixed hex string into a Slot. Any payload length
// other than 32 bytes is rejected with ErrMalformedKey.
func DecodeSlot(s string) (Slot, error) {
	data, err := hexutil.Decode(s)
	if err != nil {
		return Slot{}, fmt.Errorf("%w: slot %q: %v", ErrMalformedKey, s, err)
	}
	if len(data) != len(Slot{}) {
		return Slot{}, fmt.Errorf("%w: slot must be %d bytes, got %d", ErrMalformedKey, len(Slot{}), len(data))
	}
	var res Slot
	copy(res[:], data)
	return res, nil
}

func (a Address) String() string {
	return hexutil.Encode(a[:])
}

func (s Slot) String() string {
	return hexutil.Encode(s[:])
}

// keyJson is the wire form of a Key in batch files: two 0x-prefixed hex
// strings for the address and the slot.
type keyJson struct {
	Address string `json:"address"`
	Slot    string `json:"slot"`
}

func (k Key) MarshalJSON() ([]byte, error) {
	return json.Marshal(keyJson{
		Address: k.Address.String(),
		Slot:    k.Slot.String(),
	})
}

func (k *Key) UnmarshalJSON(data []byte) error {
	var helper keyJson
	if err := json.Unmarshal(data, &helper); err != nil {
		return err
	}
	address, err := DecodeAddress(helper.Address)
	if err != nil {
		return err
	}
	slot, err := DecodeSlot(helper.Slot)
	if err != nil {
		return err
	}
	k.Address = address
	k.Slot = slot
	return nil
}
