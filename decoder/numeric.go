package decoder

import (
	"math"
	"math/big"

	"github.com/dvstate/cbor/errs"
)

// ToInt64 converts item's numeric value to int64, reporting
// ErrConversionUnderOverFlow if the value cannot be represented,
// ErrFloatException for a NaN or infinite float, or ErrUnexpectedType for
// a non-numeric item (spec §4.12's numeric-conversion façade). Every numeric
// Item type is accepted, including bignums (arbitrary precision, via
// math/big, the one stdlib-only concern the numeric façade needs) and
// decimal-fraction/bigfloat values whose mantissa*10^exponent or
// mantissa*2^exponent happens to be an exact integer in range.
func (d *Decoder) ToInt64(item *Item) (int64, error) {
	switch item.Type {
	case TypeInt64:
		return item.Int64, nil

	case TypeUint64:
		if item.Uint64 > 1<<63-1 {
			return 0, errs.ErrConversionUnderOverFlow
		}
		return int64(item.Uint64), nil

	case TypeNegInt65:
		return 0, errs.ErrConversionUnderOverFlow

	case TypeFloat, TypeDouble:
		return floatToInt64(item.Float64)

	case TypePosBignum, TypeNegBignum:
		bi := bignumToBigInt(item.Type == TypeNegBignum, item.Bytes)
		if !bi.IsInt64() {
			return 0, errs.ErrConversionUnderOverFlow
		}
		return bi.Int64(), nil

	case TypeDecimalFraction, TypeBigFloat:
		bi, ok := expMantissaToBigInt(item.Type, item.ExpMantissa)
		if !ok || !bi.IsInt64() {
			return 0, errs.ErrConversionUnderOverFlow
		}
		return bi.Int64(), nil

	default:
		return 0, errs.ErrUnexpectedType
	}
}

// ToUint64 is ToInt64's unsigned counterpart; negative sources report
// ErrNumberSignConversion.
func (d *Decoder) ToUint64(item *Item) (uint64, error) {
	switch item.Type {
	case TypeInt64:
		if item.Int64 < 0 {
			return 0, errs.ErrNumberSignConversion
		}
		return uint64(item.Int64), nil

	case TypeUint64:
		return item.Uint64, nil

	case TypeNegInt65:
		return 0, errs.ErrNumberSignConversion

	case TypeFloat, TypeDouble:
		if item.Float64 < 0 {
			return 0, errs.ErrNumberSignConversion
		}
		i, err := floatToInt64(item.Float64)
		if err != nil {
			return 0, err
		}
		return uint64(i), nil

	case TypePosBignum:
		bi := bignumToBigInt(false, item.Bytes)
		if !bi.IsUint64() {
			return 0, errs.ErrConversionUnderOverFlow
		}
		return bi.Uint64(), nil

	case TypeNegBignum:
		return 0, errs.ErrNumberSignConversion

	default:
		return 0, errs.ErrUnexpectedType
	}
}

// ToFloat64 widens item's numeric value to float64. Bignums and
// decimal-fraction/bigfloat values convert via math/big's rational
// arithmetic, which may lose precision for very large magnitudes exactly
// the way converting any arbitrary-precision number to a 64-bit float
// does.
func (d *Decoder) ToFloat64(item *Item) (float64, error) {
	switch item.Type {
	case TypeInt64:
		return float64(item.Int64), nil

	case TypeUint64:
		return float64(item.Uint64), nil

	case TypeNegInt65:
		// value is -1 - NegOffset; NegOffset > MaxInt64 here by construction.
		bi := new(big.Int).SetUint64(item.NegOffset)
		bi.Add(bi, big.NewInt(1))
		bi.Neg(bi)
		f, _ := new(big.Float).SetInt(bi).Float64()
		return f, nil

	case TypeFloat, TypeDouble:
		return item.Float64, nil

	case TypePosBignum, TypeNegBignum:
		bi := bignumToBigInt(item.Type == TypeNegBignum, item.Bytes)
		f, _ := new(big.Float).SetInt(bi).Float64()
		return f, nil

	case TypeDecimalFraction:
		return expMantissaToFloat64(item.ExpMantissa, 10), nil

	case TypeBigFloat:
		return expMantissaToFloat64(item.ExpMantissa, 2), nil

	default:
		return 0, errs.ErrUnexpectedType
	}
}

// ToBigInt converts item to an arbitrary-precision integer, the only
// conversion target that can exactly represent every integral Item type
// this decoder produces, including TypeNegInt65 and the bignum tags.
func (d *Decoder) ToBigInt(item *Item) (*big.Int, error) {
	switch item.Type {
	case TypeInt64:
		return big.NewInt(item.Int64), nil

	case TypeUint64:
		return new(big.Int).SetUint64(item.Uint64), nil

	case TypeNegInt65:
		bi := new(big.Int).SetUint64(item.NegOffset)
		bi.Add(bi, big.NewInt(1))
		bi.Neg(bi)
		return bi, nil

	case TypePosBignum, TypeNegBignum:
		return bignumToBigInt(item.Type == TypeNegBignum, item.Bytes), nil

	case TypeDecimalFraction, TypeBigFloat:
		bi, ok := expMantissaToBigInt(item.Type, item.ExpMantissa)
		if !ok {
			return nil, errs.ErrConversionUnderOverFlow
		}
		return bi, nil

	default:
		return nil, errs.ErrUnexpectedType
	}
}

// floatToInt64 rounds f to the nearest integer (spec §4.12's
// "float-to-integer: reject NaN/∞, round to nearest, reject out-of-range"),
// rather than requiring f already be an exact integer.
func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errs.ErrFloatException
	}

	r := math.Round(f)
	if r < -9223372036854775808.0 || r >= 9223372036854775808.0 {
		return 0, errs.ErrConversionUnderOverFlow
	}

	return int64(r), nil
}

func bignumToBigInt(neg bool, magnitude []byte) *big.Int {
	bi := new(big.Int).SetBytes(magnitude)
	if neg {
		bi.Add(bi, big.NewInt(1))
		bi.Neg(bi)
	}

	return bi
}

func expMantissaMantissaBigInt(em ExpMantissa) *big.Int {
	if em.MantissaIsBig {
		return bignumToBigInt(em.MantissaNeg, em.MantissaBig)
	}

	return big.NewInt(em.MantissaInt)
}

// expMantissaToBigInt returns mantissa * base^exponent as an exact integer
// when the exponent is non-negative (or the division is exact); ok is
// false when the result is not an integer.
func expMantissaToBigInt(typ ItemType, em ExpMantissa) (*big.Int, bool) {
	base := int64(10)
	if typ == TypeBigFloat {
		base = 2
	}

	mant := expMantissaMantissaBigInt(em)

	if em.Exponent >= 0 {
		pow := new(big.Int).Exp(big.NewInt(base), big.NewInt(em.Exponent), nil)
		return new(big.Int).Mul(mant, pow), true
	}

	pow := new(big.Int).Exp(big.NewInt(base), big.NewInt(-em.Exponent), nil)
	q, r := new(big.Int).QuoRem(mant, pow, new(big.Int))
	if r.Sign() != 0 {
		return nil, false
	}

	return q, true
}

func expMantissaToFloat64(em ExpMantissa, base float64) float64 {
	mant := expMantissaMantissaBigInt(em)
	mf, _ := new(big.Float).SetInt(mant).Float64()

	return mf * math.Pow(base, float64(em.Exponent))
}
