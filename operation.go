package bitmap

import (
	"fmt"

	"github.com/gogpu/bitmap/internal/ops"
)

// BinaryOp is a two-operand pixel operator.
type BinaryOp = ops.Binary

// Binary operators. Integer channels saturate; Multiply and Divide treat the
// channel maximum as one, and an integer division by zero yields the maximum.
// The bitwise operators work on channel bits, and on IEEE bits for floats.
const (
	OpAdd      = ops.Add
	OpSubtract = ops.Subtract
	OpMultiply = ops.Multiply
	OpDivide   = ops.Divide
	OpAnd      = ops.And
	OpOr       = ops.Or
	OpXor      = ops.Xor
)

// UnaryOp is a one-operand pixel operator.
type UnaryOp = ops.Unary

// Unary operators. Negate wraps integer channels like two's-complement
// negation and flips the sign of floats; Invert computes max - value.
const (
	OpNegate = ops.Negate
	OpNot    = ops.Not
	OpInvert = ops.Invert
)

// ParseBinaryOp returns the binary operator with the given name.
func ParseBinaryOp(name string) (BinaryOp, bool) { return ops.ParseBinary(name) }

// ParseUnaryOp returns the unary operator with the given name.
func ParseUnaryOp(name string) (UnaryOp, bool) { return ops.ParseUnary(name) }

// BinaryOperation returns a new bitmap holding a op b. Both operands must
// have the same type, size and format.
func BinaryOperation(a, b *Bitmap, op BinaryOp) (*Bitmap, error) {
	if err := checkOperands(a, b, op, false); err != nil {
		return nil, err
	}
	out, err := a.derive(a.size, a.format, nil)
	if err != nil {
		return nil, err
	}
	if err := ops.ApplyBinary(a.format, op, out.pix, a.data(), b.data(), a.size); err != nil {
		out.Release()
		return nil, fmt.Errorf("bitmap: %v: %w", op, err)
	}
	return out, nil
}

// BinaryOperationInPlace overwrites a with a op b.
func BinaryOperationInPlace(a, b *Bitmap, op BinaryOp) error {
	if err := checkOperands(a, b, op, true); err != nil {
		return err
	}
	if err := ops.ApplyBinary(a.format, op, a.data(), a.data(), b.data(), a.size); err != nil {
		return fmt.Errorf("bitmap: %v: %w", op, err)
	}
	return nil
}

func checkOperands(a, b *Bitmap, op BinaryOp, inPlace bool) error {
	if err := a.checkAccess(inPlace); err != nil {
		return err
	}
	if err := b.checkAccess(false); err != nil {
		return err
	}
	if a.typ != b.typ || a.size != b.size || a.format != b.format {
		return fmt.Errorf("bitmap: %v of %v %v and %v %v: %w", op, a.format, a.size, b.format, b.size, ErrInvalidArgs)
	}
	if _, ok := ops.LookupBinary(a.format, op); !ok {
		Logger().Warn("bitmap: no operator kernel", "op", op, "format", a.format)
		return fmt.Errorf("bitmap: %v on %v: %w", op, a.format, ErrNotSupported)
	}
	return nil
}

// UnaryOperation returns a new bitmap holding op a.
func UnaryOperation(a *Bitmap, op UnaryOp) (*Bitmap, error) {
	if err := checkUnary(a, op, false); err != nil {
		return nil, err
	}
	out, err := a.derive(a.size, a.format, nil)
	if err != nil {
		return nil, err
	}
	if err := ops.ApplyUnary(a.format, op, out.pix, a.data(), a.size); err != nil {
		out.Release()
		return nil, fmt.Errorf("bitmap: %v: %w", op, err)
	}
	return out, nil
}

// UnaryOperationInPlace overwrites a with op a.
func UnaryOperationInPlace(a *Bitmap, op UnaryOp) error {
	if err := checkUnary(a, op, true); err != nil {
		return err
	}
	if err := ops.ApplyUnary(a.format, op, a.data(), a.data(), a.size); err != nil {
		return fmt.Errorf("bitmap: %v: %w", op, err)
	}
	return nil
}

func checkUnary(a *Bitmap, op UnaryOp, inPlace bool) error {
	if err := a.checkAccess(inPlace); err != nil {
		return err
	}
	if _, ok := ops.LookupUnary(a.format, op); !ok {
		Logger().Warn("bitmap: no operator kernel", "op", op, "format", a.format)
		return fmt.Errorf("bitmap: %v on %v: %w", op, a.format, ErrNotSupported)
	}
	return nil
}
