package emit_test

import (
	"bytes"
	"testing"

	"github.com/arc-language/core-cast/emit"
)

func TestMOVSBLEncoding(t *testing.T) {
	x := emit.NewX86Emitter()
	x.MOVSBL(emit.EAX, emit.ECX)
	want := []byte{0x0F, 0xBE, 0xC1}
	if got := x.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("MOVSBL(EAX, ECX) = % X, want % X", got, want)
	}
}

func TestMOVZWLEncoding(t *testing.T) {
	x := emit.NewX86Emitter()
	x.MOVZWL(emit.EDX, emit.EBX)
	want := []byte{0x0F, 0xB7, 0xD3}
	if got := x.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("MOVZWL(EDX, EBX) = % X, want % X", got, want)
	}
}

func TestConvertLongToFloatPushesAndRestoresStack(t *testing.T) {
	x := emit.NewX86Emitter()
	x.CGenConvertLongToFloat(emit.EAX, false)
	got := x.Bytes()
	if len(got) == 0 {
		t.Fatal("expected some bytes to be emitted")
	}
	if got[0] != 0x50 {
		t.Errorf("expected a PUSH eax (0x50) first, got 0x%02X", got[0])
	}
	if got[len(got)-3] != 0x83 || got[len(got)-1] != 0x04 {
		t.Errorf("expected the sequence to end by restoring esp by 4, got % X", got)
	}
}

func TestConvertFloatToLongRoundTripsThroughScratch(t *testing.T) {
	x := emit.NewX86Emitter()
	x.CGenConvertFloatToLong(emit.ECX)
	got := x.Bytes()
	if len(got) == 0 {
		t.Fatal("expected some bytes to be emitted")
	}
	if got[len(got)-1] != 0x58+byte(emit.ECX) {
		t.Errorf("expected a POP ecx at the end, got 0x%02X", got[len(got)-1])
	}
}

func TestRegisterString(t *testing.T) {
	if emit.EAX.String() != "eax" {
		t.Errorf("EAX.String() = %q, want %q", emit.EAX.String(), "eax")
	}
	var bogus emit.Reg = 99
	if bogus.String() != "?" {
		t.Errorf("out-of-range Reg.String() = %q, want %q", bogus.String(), "?")
	}
}
