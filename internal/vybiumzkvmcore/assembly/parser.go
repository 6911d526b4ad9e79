package assembly

import (
	"strconv"

	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/ops"
)

// AdviceReadLimit is the inclusive upper bound on push.adv.n's n.
const AdviceReadLimit = 16

const adviceReasonOutOfRange = "parameter value must be greater than or equal to 1 and less than or equal to 16"

// Sink is the mutable ordered sequence of primitive operations a parse
// function appends to.
type Sink = *[]ops.Op

func emit(sink Sink, kinds ...ops.Kind) {
	for _, k := range kinds {
		*sink = append(*sink, ops.Simple(k))
	}
}

func emitRepeat(sink Sink, k ops.Kind, n int) {
	for i := 0; i < n; i++ {
		*sink = append(*sink, ops.Simple(k))
	}
}

func emitPush(sink Sink, v field.Element) {
	*sink = append(*sink, ops.NewPush(v))
}

// validateOpLen checks that tok has exactly requiredPrefixParts mandatory
// leading segments, followed by between minParams and maxParams further
// parameter segments.
func validateOpLen(tok Token, requiredPrefixParts, minParams, maxParams int) error {
	paramCount := tok.NumParts() - requiredPrefixParts
	if paramCount < minParams {
		return missingParam(tok)
	}
	if paramCount > maxParams {
		return extraParam(tok)
	}
	return nil
}

// Parse dispatches tok to the appropriate mnemonic family and appends the
// lowered primitive operations to sink.
func Parse(sink Sink, tok Token) error {
	switch tok.Part(0) {
	case "push":
		return ParsePush(sink, tok)
	case "pushw":
		return ParsePushw(sink, tok)
	case "popw":
		return ParsePopw(sink, tok)
	case "loadw":
		return ParseLoadw(sink, tok)
	case "storew":
		return ParseStorew(sink, tok)
	default:
		return invalidOp(tok)
	}
}

// PUSH

func ParsePush(sink Sink, tok Token) error {
	if tok.Part(0) != "push" {
		return unexpectedToken(tok, "push.*")
	}
	if tok.NumParts() < 2 {
		return missingParam(tok)
	}
	switch tok.Part(1) {
	case "adv":
		return parsePushAdv(sink, tok)
	case "env":
		return parsePushEnv(sink, tok)
	default:
		return parsePushConstant(sink, tok)
	}
}

func parsePushConstant(sink Sink, tok Token) error {
	if tok.NumParts() > 2 {
		return extraParam(tok)
	}
	v, err := field.ParseLiteral(tok.Part(1))
	if err != nil {
		return invalidParam(tok, 1)
	}
	switch {
	case v == field.Zero:
		emit(sink, ops.Pad)
	case v == field.One:
		emit(sink, ops.Pad, ops.Incr)
	default:
		emitPush(sink, v)
	}
	return nil
}

func parsePushEnv(sink Sink, tok Token) error {
	if tok.NumParts() > 3 {
		return extraParam(tok)
	}
	if tok.NumParts() < 3 {
		return missingParam(tok)
	}
	if tok.Part(2) != "sdepth" {
		return invalidOp(tok)
	}
	emit(sink, ops.SDepth)
	return nil
}

func parsePushAdv(sink Sink, tok Token) error {
	if tok.NumParts() < 3 {
		return missingParam(tok)
	}
	if tok.NumParts() > 3 {
		return extraParam(tok)
	}
	n, err := strconv.ParseUint(tok.Part(2), 10, 64)
	if err != nil {
		return invalidParam(tok, 2)
	}
	if n < 1 || n > AdviceReadLimit {
		return invalidParamWithReason(tok, 2, adviceReasonOutOfRange)
	}
	emitRepeat(sink, ops.Read, int(n))
	return nil
}

// PUSHW / POPW / LOADW / STOREW (memory and advice word ops)

func ParsePushw(sink Sink, tok Token) error {
	if tok.Part(0) != "pushw" {
		return unexpectedToken(tok, "pushw.*")
	}
	if tok.NumParts() < 2 {
		return invalidOp(tok)
	}
	switch tok.Part(1) {
	case "mem":
		if err := validateOpLen(tok, 2, 0, 1); err != nil {
			return err
		}
		emit(sink, ops.Pad, ops.Pad, ops.Pad, ops.Pad)
		if tok.NumParts() == 3 {
			v, err := field.ParseLiteral(tok.Part(2))
			if err != nil {
				return invalidParam(tok, 2)
			}
			emitPush(sink, v)
		} else {
			emit(sink, ops.MovUp4)
		}
		emit(sink, ops.LoadW)
		return nil
	case "local":
		return notImplemented(tok)
	default:
		return invalidOp(tok)
	}
}

func ParsePopw(sink Sink, tok Token) error {
	if tok.Part(0) != "popw" {
		return unexpectedToken(tok, "popw.*")
	}
	if tok.NumParts() < 2 {
		return invalidOp(tok)
	}
	switch tok.Part(1) {
	case "mem":
		if err := validateOpLen(tok, 2, 0, 1); err != nil {
			return err
		}
		if tok.NumParts() == 3 {
			v, err := field.ParseLiteral(tok.Part(2))
			if err != nil {
				return invalidParam(tok, 2)
			}
			emitPush(sink, v)
		}
		emit(sink, ops.StoreW)
		emit(sink, ops.Drop, ops.Drop, ops.Drop, ops.Drop)
		return nil
	case "local":
		return notImplemented(tok)
	default:
		return invalidOp(tok)
	}
}

func ParseLoadw(sink Sink, tok Token) error {
	if tok.Part(0) != "loadw" {
		return unexpectedToken(tok, "loadw.*")
	}
	if tok.NumParts() < 2 {
		return invalidOp(tok)
	}
	switch tok.Part(1) {
	case "adv":
		// Resolved open question: loadw.adv is validated through the same
		// validate_op_len gate as the other variants, strictly rejecting any
		// trailing parameter rather than only checking NumParts() > 2.
		if err := validateOpLen(tok, 2, 0, 0); err != nil {
			return err
		}
		emit(sink, ops.ReadW)
		return nil
	case "mem":
		if err := validateOpLen(tok, 2, 0, 1); err != nil {
			return err
		}
		if tok.NumParts() == 3 {
			v, err := field.ParseLiteral(tok.Part(2))
			if err != nil {
				return invalidParam(tok, 2)
			}
			emitPush(sink, v)
		}
		emit(sink, ops.LoadW)
		return nil
	case "local":
		return notImplemented(tok)
	default:
		return invalidOp(tok)
	}
}

func ParseStorew(sink Sink, tok Token) error {
	if tok.Part(0) != "storew" {
		return unexpectedToken(tok, "storew.*")
	}
	if tok.NumParts() < 2 {
		return invalidOp(tok)
	}
	switch tok.Part(1) {
	case "mem":
		if err := validateOpLen(tok, 2, 0, 1); err != nil {
			return err
		}
		if tok.NumParts() == 3 {
			v, err := field.ParseLiteral(tok.Part(2))
			if err != nil {
				return invalidParam(tok, 2)
			}
			emitPush(sink, v)
		}
		emit(sink, ops.StoreW)
		return nil
	case "local":
		return notImplemented(tok)
	default:
		return invalidOp(tok)
	}
}
