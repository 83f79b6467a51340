package convert_test

import (
	"testing"

	"github.com/arc-language/core-cast/convert"
	"github.com/arc-language/core-cast/ctypes"
	"github.com/arc-language/core-cast/env"
	"github.com/arc-language/core-cast/expr"
)

func TestIntegralPromotionWidensCharAndShort(t *testing.T) {
	c := expr.NewValue("c", ctypes.TChar(ctypes.Qualifiers{}), env.Zero)
	out, err := convert.IntegralPromotion(c)
	if err != nil {
		t.Fatal(err)
	}
	if out.Type().Kind() != ctypes.LONG {
		t.Errorf("char should promote to long, got %s", out.Type().Kind())
	}

	uc := expr.NewValue("uc", ctypes.TUChar(ctypes.Qualifiers{}), env.Zero)
	out2, err := convert.IntegralPromotion(uc)
	if err != nil {
		t.Fatal(err)
	}
	if out2.Type().Kind() != ctypes.ULONG {
		t.Errorf("unsigned char should promote to unsigned long, got %s", out2.Type().Kind())
	}
}

func TestIntegralPromotionFixpoint(t *testing.T) {
	l := expr.NewValue("l", ctypes.TLong(ctypes.Qualifiers{}), env.Zero)
	once, err := convert.IntegralPromotion(l)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := convert.IntegralPromotion(once)
	if err != nil {
		t.Fatal(err)
	}
	if once.Type().Kind() != twice.Type().Kind() {
		t.Errorf("promoting an already-promoted long should be a fixpoint, got %s then %s", once.Type().Kind(), twice.Type().Kind())
	}
}

func TestIntegralPromotionRejectsNonIntegral(t *testing.T) {
	f := expr.NewValue("f", ctypes.TFloat(ctypes.Qualifiers{}), env.Zero)
	_, err := convert.IntegralPromotion(f)
	if err == nil {
		t.Fatal("expected an error promoting a float")
	}
}

func TestUsualArithmeticConversionSymmetry(t *testing.T) {
	a := expr.NewValue("a", ctypes.TLong(ctypes.Qualifiers{}), env.Zero)
	b := expr.NewValue("b", ctypes.TULong(ctypes.Qualifiers{}), env.Zero)

	ca, cb, err := convert.UsualArithmeticConversion(a, b)
	if err != nil {
		t.Fatal(err)
	}
	cb2, ca2, err := convert.UsualArithmeticConversion(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if ca.Type().Kind() != ca2.Type().Kind() || cb.Type().Kind() != cb2.Type().Kind() {
		t.Fatalf("usual arithmetic conversion should pick the same result type regardless of argument order: got (%s,%s) and (%s,%s)",
			ca.Type().Kind(), cb.Type().Kind(), ca2.Type().Kind(), cb2.Type().Kind())
	}
	if ca.Type().Kind() != ctypes.ULONG {
		t.Errorf("long and unsigned long should convert to unsigned long, got %s", ca.Type().Kind())
	}
}

func TestUsualArithmeticConversionDoublePriority(t *testing.T) {
	a := expr.NewValue("a", ctypes.TFloat(ctypes.Qualifiers{}), env.Zero)
	b := expr.NewValue("b", ctypes.TDouble(ctypes.Qualifiers{}), env.Zero)

	ca, cb, err := convert.UsualArithmeticConversion(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if ca.Type().Kind() != ctypes.DOUBLE || cb.Type().Kind() != ctypes.DOUBLE {
		t.Errorf("float and double should both convert to double, got %s and %s", ca.Type().Kind(), cb.Type().Kind())
	}
}

func TestUsualScalarConversionUsesOtherOperandEnvironment(t *testing.T) {
	scopeA := env.New(1, "a")
	scopeB := env.New(2, "b")

	ptrType := ctypes.TPointer(ctypes.TLong(ctypes.Qualifiers{}), ctypes.Qualifiers{})
	p := expr.NewValue("p", ptrType, scopeA)
	n := expr.NewValue("n", ctypes.TLong(ctypes.Qualifiers{}), scopeB)

	cp, cn, err := convert.UsualScalarConversion(p, n)
	if err != nil {
		t.Fatal(err)
	}
	if cp.Type().Kind() != ctypes.ULONG {
		t.Errorf("pointer operand should reduce to unsigned long, got %s", cp.Type().Kind())
	}
	if cn.Type().Kind() != ctypes.ULONG {
		t.Errorf("integral operand should convert to unsigned long alongside the pointer, got %s", cn.Type().Kind())
	}
	if cp.Env() != scopeB {
		t.Errorf("pointer operand should be reduced in the other operand's environment %v, got %v", scopeB, cp.Env())
	}
}
