// Package felt implements arithmetic over the Starknet prime field.
//
// The field is the one used throughout the Cairo ecosystem: elements are
// residues modulo a 252-bit prime. The original lambdaworks-backed
// implementation shelled out to a Rust library through cgo; no such library
// is available here, so the same surface is reimplemented on top of
// math/big while keeping the representation a plain, comparable value:
// four 64-bit limbs, little-endian, always held in canonical (reduced) form
// so that Go's built-in == works the way callers expect it to.
package felt

import (
	"errors"
	"math/big"
)

// P is the Starknet prime: 2**251 + 17*2**192 + 1.
var P *big.Int

func init() {
	P = new(big.Int)
	P.SetString("800000000000011000000000000000000000000000000000000000000000001", 16)
}

// Felt is an element of the Starknet prime field, stored as four 64-bit
// limbs in little-endian order. A Felt value is always kept reduced modulo
// P, so two Felts can be compared directly with ==.
type Felt struct {
	limbs [4]uint64
}

func fromBig(v *big.Int) Felt {
	var r big.Int
	r.Mod(v, P)

	// math/big.Word size is platform dependent (32 or 64 bit); go through
	// a fixed big-endian byte buffer instead of Bits() to stay portable.
	var buf [32]byte
	r.FillBytes(buf[:])

	var f Felt
	for i := 0; i < 4; i++ {
		limb := buf[32-8*(i+1) : 32-8*i]
		var v uint64
		for _, b := range limb {
			v = v<<8 | uint64(b)
		}
		f.limbs[i] = v
	}
	return f
}

func (f Felt) toBig() *big.Int {
	var buf [32]byte
	for i := 0; i < 4; i++ {
		v := f.limbs[i]
		for j := 0; j < 8; j++ {
			buf[32-8*i-1-j] = byte(v)
			v >>= 8
		}
	}
	r := new(big.Int)
	r.SetBytes(buf[:])
	return r
}

// FeltZero returns the additive identity of the field.
func FeltZero() Felt {
	return Felt{}
}

// FeltOne returns the multiplicative identity of the field.
func FeltOne() Felt {
	return FeltFromUint64(1)
}

// FeltFromUint64 builds a Felt representing the given unsigned integer.
func FeltFromUint64(value uint64) Felt {
	return Felt{limbs: [4]uint64{value, 0, 0, 0}}
}

// FeltFromInt64 builds a Felt representing the given signed integer, wrapping
// negative values around the field's modulus.
func FeltFromInt64(value int64) Felt {
	return fromBig(big.NewInt(value))
}

// FeltFromHex parses a hexadecimal string (without a leading "0x") into a Felt.
func FeltFromHex(value string) Felt {
	v, _ := new(big.Int).SetString(value, 16)
	if v == nil {
		v = new(big.Int)
	}
	return fromBig(v)
}

// FeltFromDecString parses a base-10 string, possibly negative, into a Felt.
func FeltFromDecString(value string) Felt {
	v, _ := new(big.Int).SetString(value, 10)
	if v == nil {
		v = new(big.Int)
	}
	return fromBig(v)
}

// FeltFromLeBytes interprets a 32-byte little-endian buffer as a Felt.
func FeltFromLeBytes(b *[32]byte) Felt {
	be := reverse(*b)
	return FeltFromBeBytes(&be)
}

// FeltFromBeBytes interprets a 32-byte big-endian buffer as a Felt.
func FeltFromBeBytes(b *[32]byte) Felt {
	v := new(big.Int).SetBytes(b[:])
	return fromBig(v)
}

func reverse(b [32]byte) [32]byte {
	var out [32]byte
	for i := range b {
		out[i] = b[32-1-i]
	}
	return out
}

// ToLeBytes renders the field element as a 32-byte little-endian buffer.
func (f Felt) ToLeBytes() *[32]byte {
	be := f.ToBeBytes()
	out := reverse(*be)
	return &out
}

// ToBeBytes renders the field element as a 32-byte big-endian buffer.
func (f Felt) ToBeBytes() *[32]byte {
	var out [32]byte
	f.toBig().FillBytes(out[:])
	return &out
}

// IsZero reports whether the field element is the additive identity.
func (f Felt) IsZero() bool {
	return f == Felt{}
}

// Add returns a + b in the field.
func (a Felt) Add(b Felt) Felt {
	var r big.Int
	r.Add(a.toBig(), b.toBig())
	return fromBig(&r)
}

// Sub returns a - b in the field.
func (a Felt) Sub(b Felt) Felt {
	var r big.Int
	r.Sub(a.toBig(), b.toBig())
	return fromBig(&r)
}

// Mul returns a * b in the field.
func (a Felt) Mul(b Felt) Felt {
	var r big.Int
	r.Mul(a.toBig(), b.toBig())
	return fromBig(&r)
}

// ErrDivideByZero is returned by Div when the divisor is the field's zero element.
var ErrDivideByZero = errors.New("felt: division by zero")

// Div returns a / b in the field, computed as a multiplied by the modular
// inverse of b. It returns ErrDivideByZero when b is zero.
func (a Felt) Div(b Felt) (Felt, error) {
	if b.IsZero() {
		return Felt{}, ErrDivideByZero
	}
	var inv big.Int
	inv.ModInverse(b.toBig(), P)
	var r big.Int
	r.Mul(a.toBig(), &inv)
	return fromBig(&r), nil
}

// ToU64 converts the field element to a uint64, failing if the value does not
// fit (i.e. it is not representable without loss).
func (f Felt) ToU64() (uint64, error) {
	if f.limbs[1] != 0 || f.limbs[2] != 0 || f.limbs[3] != 0 {
		return 0, errors.New("felt: value does not fit in a u64")
	}
	return f.limbs[0], nil
}

// ToUsize converts the field element to a non-negative machine-sized integer,
// failing if the value is too large to be a plausible memory offset.
func (f Felt) ToUsize() (uint, error) {
	u, err := f.ToU64()
	if err != nil {
		return 0, err
	}
	if uint64(uint(u)) != u {
		return 0, errors.New("felt: value does not fit in a usize")
	}
	return uint(u), nil
}

// String renders the field element in decimal.
func (f Felt) String() string {
	return f.toBig().String()
}
