package assembly

import "fmt"

// ErrorCode identifies which member of the assembler's error taxonomy an
// AssemblyError represents.
type ErrorCode int

const (
	ErrInvalidOp ErrorCode = iota
	ErrUnexpectedToken
	ErrInvalidParam
	ErrInvalidParamWithReason
	ErrMissingParam
	ErrExtraParam
	ErrNotImplemented
)

// AssemblyError is a parse-time error. It always carries the offending
// Token so callers can report source position alongside the message.
type AssemblyError struct {
	Code ErrorCode
	Tok  Token

	// ExpectedShape describes the mnemonic shape an UnexpectedToken error
	// expected instead, e.g. "pushw.*".
	ExpectedShape string

	// ParamIndex is the index (into Tok.Parts()) of the offending segment,
	// set for InvalidParam and InvalidParamWithReason.
	ParamIndex int

	// Reason is a human-readable explanation, set for InvalidParamWithReason.
	Reason string
}

func (e *AssemblyError) Error() string {
	switch e.Code {
	case ErrInvalidOp:
		return fmt.Sprintf("assembly error: invalid operation %q at position %d", e.Tok.Text(), e.Tok.Pos())
	case ErrUnexpectedToken:
		return fmt.Sprintf("assembly error: unexpected token %q at position %d, expected %s", e.Tok.Text(), e.Tok.Pos(), e.ExpectedShape)
	case ErrInvalidParam:
		return fmt.Sprintf("assembly error: invalid parameter %d in %q at position %d", e.ParamIndex, e.Tok.Text(), e.Tok.Pos())
	case ErrInvalidParamWithReason:
		return fmt.Sprintf("assembly error: invalid parameter %d in %q at position %d: %s", e.ParamIndex, e.Tok.Text(), e.Tok.Pos(), e.Reason)
	case ErrMissingParam:
		return fmt.Sprintf("assembly error: missing parameter in %q at position %d", e.Tok.Text(), e.Tok.Pos())
	case ErrExtraParam:
		return fmt.Sprintf("assembly error: extra parameter in %q at position %d", e.Tok.Text(), e.Tok.Pos())
	case ErrNotImplemented:
		return fmt.Sprintf("assembly error: %q at position %d is not implemented", e.Tok.Text(), e.Tok.Pos())
	default:
		return fmt.Sprintf("assembly error [%d] in %q at position %d", e.Code, e.Tok.Text(), e.Tok.Pos())
	}
}

// Is allows errors.Is(err, &AssemblyError{Code: ErrMissingParam}) style
// matching by error code alone.
func (e *AssemblyError) Is(target error) bool {
	t, ok := target.(*AssemblyError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func invalidOp(tok Token) *AssemblyError {
	return &AssemblyError{Code: ErrInvalidOp, Tok: tok}
}

func unexpectedToken(tok Token, expectedShape string) *AssemblyError {
	return &AssemblyError{Code: ErrUnexpectedToken, Tok: tok, ExpectedShape: expectedShape}
}

func invalidParam(tok Token, index int) *AssemblyError {
	return &AssemblyError{Code: ErrInvalidParam, Tok: tok, ParamIndex: index}
}

func invalidParamWithReason(tok Token, index int, reason string) *AssemblyError {
	return &AssemblyError{Code: ErrInvalidParamWithReason, Tok: tok, ParamIndex: index, Reason: reason}
}

func missingParam(tok Token) *AssemblyError {
	return &AssemblyError{Code: ErrMissingParam, Tok: tok}
}

func extraParam(tok Token) *AssemblyError {
	return &AssemblyError{Code: ErrExtraParam, Tok: tok}
}

func notImplemented(tok Token) *AssemblyError {
	return &AssemblyError{Code: ErrNotImplemented, Tok: tok}
}
