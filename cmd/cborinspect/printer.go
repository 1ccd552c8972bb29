package main

import (
	"bufio"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/dvstate/cbor/decoder"
)

// printer walks a Decoder with plain GetNext calls (no bounded Enter/Exit)
// and renders each item in RFC 8949 diagnostic notation, using the item's
// NestLevel/NextNestLevel to decide indentation and where a container's
// closing bracket belongs — the pre-order dump spec §B.4 describes.
type printer struct {
	w    *bufio.Writer
	open []decoder.ItemType // one entry per currently-open container, outermost first
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: bufio.NewWriter(w)}
}

func (p *printer) dump(d *decoder.Decoder, dataLen int) error {
	defer p.w.Flush()

	for {
		item, err := d.GetNext()
		if err != nil {
			return err
		}

		if err := p.printItem(d, item); err != nil {
			return err
		}

		if d.Tell() >= dataLen && item.NextNestLevel == 0 {
			break
		}
	}

	return nil
}

func (p *printer) indent(level int) {
	for i := 0; i < level; i++ {
		p.w.WriteString("  ")
	}
}

func (p *printer) printItem(d *decoder.Decoder, item decoder.Item) error {
	level := int(item.NestLevel)
	p.indent(level)

	if item.Label.Type != decoder.LabelNone {
		fmt.Fprintf(p.w, "%s: ", labelToken(item.Label))
	}

	switch item.Type {
	case decoder.TypeArray, decoder.TypeMapAsArray:
		if item.Count == 0 {
			p.w.WriteString("[]\n")
		} else {
			p.w.WriteString("[\n")
			p.open = append(p.open, decoder.TypeArray)
		}

	case decoder.TypeMap:
		if item.Count == 0 {
			p.w.WriteString("{}\n")
		} else {
			p.w.WriteString("{\n")
			p.open = append(p.open, decoder.TypeMap)
		}

	default:
		tok, err := scalarToken(d, item)
		if err != nil {
			return err
		}
		p.w.WriteString(tok)
		p.w.WriteString("\n")
	}

	// len(p.open) now equals the depth the next item will be printed at,
	// unless one or more containers closed on this item (spec §4.6):
	// item.NextNestLevel says how many should actually remain open.
	for len(p.open) > int(item.NextNestLevel) {
		closeLevel := len(p.open) - 1
		p.indent(closeLevel)
		switch p.open[closeLevel] {
		case decoder.TypeArray:
			p.w.WriteString("]\n")
		default:
			p.w.WriteString("}\n")
		}
		p.open = p.open[:closeLevel]
	}

	return nil
}

func labelToken(l decoder.Label) string {
	switch l.Type {
	case decoder.LabelInt64:
		return strconv.FormatInt(l.Int64, 10)
	case decoder.LabelUint64:
		return strconv.FormatUint(l.Uint64, 10)
	case decoder.LabelTextString:
		return strconv.Quote(string(l.Bytes))
	case decoder.LabelByteString:
		return "h'" + hex.EncodeToString(l.Bytes) + "'"
	default:
		return "?"
	}
}

func scalarToken(d *decoder.Decoder, item decoder.Item) (string, error) {
	switch item.Type {
	case decoder.TypeInt64:
		return strconv.FormatInt(item.Int64, 10), nil
	case decoder.TypeUint64:
		return strconv.FormatUint(item.Uint64, 10), nil
	case decoder.TypeNegInt65:
		bi, err := d.ToBigInt(&item)
		if err != nil {
			return "", err
		}
		return bi.String(), nil
	case decoder.TypeByteString:
		return "h'" + hex.EncodeToString(item.Bytes) + "'", nil
	case decoder.TypeTextString:
		return strconv.Quote(string(item.Bytes)), nil
	case decoder.TypeBoolFalse:
		return "false", nil
	case decoder.TypeBoolTrue:
		return "true", nil
	case decoder.TypeNull:
		return "null", nil
	case decoder.TypeUndefined:
		return "undefined", nil
	case decoder.TypeFloat, decoder.TypeDouble:
		return strconv.FormatFloat(item.Float64, 'g', -1, 64), nil
	case decoder.TypeUnknownSimple:
		return fmt.Sprintf("simple(%d)", item.Simple), nil
	case decoder.TypeDateString:
		return strconv.Quote(string(item.Bytes)), nil
	case decoder.TypeDateEpoch, decoder.TypeDateEpochDays:
		if item.Epoch.HasFrac {
			return fmt.Sprintf("epoch(%d.%v)", item.Epoch.Seconds, item.Epoch.Frac), nil
		}
		return fmt.Sprintf("epoch(%d)", item.Epoch.Seconds), nil
	case decoder.TypePosBignum, decoder.TypeNegBignum:
		bi, err := d.ToBigInt(&item)
		if err != nil {
			return "", err
		}
		return bi.String(), nil
	case decoder.TypeDecimalFraction, decoder.TypeBigFloat:
		f, err := d.ToFloat64(&item)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case decoder.TypeURI, decoder.TypeRegex, decoder.TypeMIME:
		return strconv.Quote(string(item.Bytes)), nil
	case decoder.TypeBase64URL:
		return base64.URLEncoding.EncodeToString(item.Bytes), nil
	case decoder.TypeBase64:
		return base64.StdEncoding.EncodeToString(item.Bytes), nil
	case decoder.TypeUUID:
		return hex.EncodeToString(item.Bytes), nil
	case decoder.TypeWrappedCBOR, decoder.TypeWrappedCBORSeq:
		return "h'" + hex.EncodeToString(item.Bytes) + "'", nil
	default:
		return item.Type.String(), nil
	}
}
