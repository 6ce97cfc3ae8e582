package felt_test

import (
	"reflect"
	"testing"

	"github.com/KasarLabs/rayquaza/pkg/felt"
)

func TestFromHex(t *testing.T) {
	var h_one = "1a"
	expected := felt.FeltFromUint64(26)

	result := felt.FeltFromHex(h_one)
	if result != expected {
		t.Errorf("TestFromHex failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestFromDecString(t *testing.T) {
	var s_one = "435"
	expected := felt.FeltFromUint64(435)

	result := felt.FeltFromDecString(s_one)
	if result != expected {
		t.Errorf("TestFromDecString failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestFromNegDecString(t *testing.T) {
	var s_one = "-1"
	expected := felt.FeltFromHex("800000000000011000000000000000000000000000000000000000000000000")

	result := felt.FeltFromDecString(s_one)
	if result != expected {
		t.Errorf("TestFromNegDecString failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestToLeBytes(t *testing.T) {
	expected := [32]uint8{
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	actual := *felt.FeltOne().ToLeBytes()

	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("TestToLeBytes failed. Expected: %v, Got: %v", expected, actual)
	}
}

func TestToBeBytes(t *testing.T) {
	expected := [32]uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
	}
	actual := *felt.FeltOne().ToBeBytes()

	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("TestToBeBytes failed. Expected: %v, Got: %v", expected, actual)
	}
}

func TestFromLeBytes(t *testing.T) {
	bytes := [32]uint8{
		1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	felt_from_bytes := felt.FeltFromLeBytes(&bytes)

	if !reflect.DeepEqual(felt_from_bytes, felt.FeltOne()) {
		t.Errorf("TestFromLeBytes failed. Expected 1, Got: %v", felt_from_bytes)
	}
}

func TestFromBeBytes(t *testing.T) {
	bytes := [32]uint8{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1,
	}
	felt_from_bytes := felt.FeltFromBeBytes(&bytes)

	if !reflect.DeepEqual(felt_from_bytes, felt.FeltOne()) {
		t.Errorf("TestFromBeBytes failed. Expected 1, Got: %v", felt_from_bytes)
	}
}

func TestFeltSub(t *testing.T) {
	f_one := felt.FeltOne()
	expected := felt.FeltZero()

	result := f_one.Sub(f_one)
	if result != expected {
		t.Errorf("TestFeltSub failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestFeltSubWraps(t *testing.T) {
	f_zero := felt.FeltZero()
	f_one := felt.FeltOne()
	expected := felt.FeltFromHex("800000000000011000000000000000000000000000000000000000000000000")

	result := f_zero.Sub(f_one)
	if result != expected {
		t.Errorf("TestFeltSubWraps failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestFeltAdd(t *testing.T) {
	f_zero := felt.FeltZero()
	f_one := felt.FeltOne()
	expected := felt.FeltOne()

	result := f_zero.Add(f_one)
	if result != expected {
		t.Errorf("TestFeltAdd failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestFeltMul1(t *testing.T) {
	f_one := felt.FeltOne()
	expected := felt.FeltOne()

	result := f_one.Mul(f_one)
	if result != expected {
		t.Errorf("TestFeltMul1 failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestFeltMul0(t *testing.T) {
	f_one := felt.FeltOne()
	f_zero := felt.FeltZero()
	expected := felt.FeltZero()

	result := f_zero.Mul(f_one)
	if result != expected {
		t.Errorf("TestFeltMul0 failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestFeltMul9(t *testing.T) {
	f_three := felt.FeltFromUint64(3)
	expected := felt.FeltFromUint64(9)

	result := f_three.Mul(f_three)
	if result != expected {
		t.Errorf("TestFeltMul9 failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestFeltDiv3(t *testing.T) {
	f_three := felt.FeltFromUint64(3)
	expected := felt.FeltFromUint64(1)

	result, err := f_three.Div(f_three)
	if err != nil {
		t.Fatalf("TestFeltDiv3: unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("TestFeltDiv3 failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestFeltDiv4(t *testing.T) {
	f_four := felt.FeltFromUint64(4)
	f_two := felt.FeltFromUint64(2)

	expected := felt.FeltFromUint64(2)

	result, err := f_four.Div(f_two)
	if err != nil {
		t.Fatalf("TestFeltDiv4: unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("TestFeltDiv4 failed. Expected: %v, Got: %v", expected, result)
	}
}

func TestFeltDivByZero(t *testing.T) {
	f_four := felt.FeltFromUint64(4)

	_, err := f_four.Div(felt.FeltZero())
	if err != felt.ErrDivideByZero {
		t.Errorf("TestFeltDivByZero failed. Expected ErrDivideByZero, Got: %v", err)
	}
}

func TestToU64Overflow(t *testing.T) {
	big := felt.FeltFromHex("800000000000011000000000000000000000000000000000000000000000000")
	if _, err := big.ToU64(); err == nil {
		t.Errorf("TestToU64Overflow failed. Expected an error, got none")
	}
}
