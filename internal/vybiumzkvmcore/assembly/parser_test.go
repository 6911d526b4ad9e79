package assembly

import (
	"errors"
	"testing"

	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/field"
	"github.com/vybium/vybium-zkvm-core/internal/vybiumzkvmcore/ops"
)

func tok(text string) Token { return NewToken(text, 0) }

func assembleAll(t *testing.T, texts ...string) []ops.Op {
	t.Helper()
	var sink []ops.Op
	for _, text := range texts {
		if err := Parse(&sink, tok(text)); err != nil {
			t.Fatalf("Parse(%q) failed: %v", text, err)
		}
	}
	return sink
}

func wantOps(t *testing.T, got []ops.Op, want ...ops.Op) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d ops %v, want %d ops %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("op %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func assertCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var ae *AssemblyError
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not *AssemblyError", err)
	}
	if ae.Code != code {
		t.Errorf("error code = %v, want %v", ae.Code, code)
	}
}

func TestPushConstantLowering(t *testing.T) {
	wantOps(t, assembleAll(t, "push.0"), ops.Simple(ops.Pad))
	wantOps(t, assembleAll(t, "push.1"), ops.Simple(ops.Pad), ops.Simple(ops.Incr))
	wantOps(t, assembleAll(t, "push.135"), ops.NewPush(field.New(135)))
	wantOps(t, assembleAll(t, "push.0x7b"), ops.NewPush(field.New(123)))
}

func TestPushEnv(t *testing.T) {
	wantOps(t, assembleAll(t, "push.env.sdepth"), ops.Simple(ops.SDepth))

	var sink []ops.Op
	err := Parse(&sink, tok("push.env.invalid"))
	assertCode(t, err, ErrInvalidOp)

	sink = nil
	err = Parse(&sink, tok("push.env.sdepth.0"))
	assertCode(t, err, ErrExtraParam)
}

func TestPushAdvice(t *testing.T) {
	wantOps(t, assembleAll(t, "push.adv.4"),
		ops.Simple(ops.Read), ops.Simple(ops.Read), ops.Simple(ops.Read), ops.Simple(ops.Read))

	cases := []struct {
		text string
		code ErrorCode
	}{
		{"push.adv.0", ErrInvalidParamWithReason},
		{"push.adv.17", ErrInvalidParamWithReason},
		{"push.adv.a", ErrInvalidParam},
		{"push.adv.0x10", ErrInvalidParam},
		{"push.adv", ErrMissingParam},
	}
	for _, c := range cases {
		var sink []ops.Op
		err := Parse(&sink, tok(c.text))
		assertCode(t, err, c.code)
	}
}

func TestPushAdviceReasonString(t *testing.T) {
	var sink []ops.Op
	err := Parse(&sink, tok("push.adv.0"))
	var ae *AssemblyError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AssemblyError, got %v", err)
	}
	if ae.Reason != adviceReasonOutOfRange {
		t.Errorf("reason = %q, want %q", ae.Reason, adviceReasonOutOfRange)
	}
}

func TestPushwMem(t *testing.T) {
	wantOps(t, assembleAll(t, "pushw.mem"),
		ops.Simple(ops.Pad), ops.Simple(ops.Pad), ops.Simple(ops.Pad), ops.Simple(ops.Pad),
		ops.Simple(ops.MovUp4), ops.Simple(ops.LoadW))

	wantOps(t, assembleAll(t, "pushw.mem.0"),
		ops.Simple(ops.Pad), ops.Simple(ops.Pad), ops.Simple(ops.Pad), ops.Simple(ops.Pad),
		ops.NewPush(field.Zero), ops.Simple(ops.LoadW))
}

func TestPopwMem(t *testing.T) {
	wantOps(t, assembleAll(t, "popw.mem"),
		ops.Simple(ops.StoreW), ops.Simple(ops.Drop), ops.Simple(ops.Drop), ops.Simple(ops.Drop), ops.Simple(ops.Drop))

	wantOps(t, assembleAll(t, "popw.mem.0"),
		ops.NewPush(field.Zero), ops.Simple(ops.StoreW),
		ops.Simple(ops.Drop), ops.Simple(ops.Drop), ops.Simple(ops.Drop), ops.Simple(ops.Drop))
}

func TestLoadwAdv(t *testing.T) {
	wantOps(t, assembleAll(t, "loadw.adv"), ops.Simple(ops.ReadW))

	var sink []ops.Op
	err := Parse(&sink, tok("loadw.adv.0"))
	assertCode(t, err, ErrExtraParam)
}

func TestLoadwMem(t *testing.T) {
	wantOps(t, assembleAll(t, "loadw.mem"), ops.Simple(ops.LoadW))
	wantOps(t, assembleAll(t, "loadw.mem.0"), ops.NewPush(field.Zero), ops.Simple(ops.LoadW))
}

func TestStorewMem(t *testing.T) {
	wantOps(t, assembleAll(t, "storew.mem"), ops.Simple(ops.StoreW))
	wantOps(t, assembleAll(t, "storew.mem.0"), ops.NewPush(field.Zero), ops.Simple(ops.StoreW))
}

func TestMemoryFamilyErrorShapes(t *testing.T) {
	families := []struct {
		name  string
		parse func(Sink, Token) error
	}{
		{"pushw", ParsePushw},
		{"popw", ParsePopw},
		{"loadw", ParseLoadw},
		{"storew", ParseStorew},
	}

	for _, fam := range families {
		t.Run(fam.name+" missing variant", func(t *testing.T) {
			var sink []ops.Op
			err := fam.parse(&sink, tok(fam.name))
			assertCode(t, err, ErrInvalidOp)
		})
		t.Run(fam.name+" unknown variant", func(t *testing.T) {
			var sink []ops.Op
			err := fam.parse(&sink, tok(fam.name+".bogus"))
			assertCode(t, err, ErrInvalidOp)
		})
		t.Run(fam.name+" wrong family token", func(t *testing.T) {
			var sink []ops.Op
			err := fam.parse(&sink, tok("none.mem"))
			assertCode(t, err, ErrUnexpectedToken)
		})
		t.Run(fam.name+" bad address literal", func(t *testing.T) {
			var sink []ops.Op
			err := fam.parse(&sink, tok(fam.name+".mem.abc"))
			assertCode(t, err, ErrInvalidParam)
		})
		t.Run(fam.name+" extra address segment", func(t *testing.T) {
			var sink []ops.Op
			err := fam.parse(&sink, tok(fam.name+".mem.0.1"))
			assertCode(t, err, ErrExtraParam)
		})
		t.Run(fam.name+" local not implemented", func(t *testing.T) {
			var sink []ops.Op
			err := fam.parse(&sink, tok(fam.name+".local.3"))
			assertCode(t, err, ErrNotImplemented)
		})
	}
}

func TestEndToEndSequence(t *testing.T) {
	got := assembleAll(t, "push.0", "push.1", "push.135", "push.0x7b")
	wantOps(t, got,
		ops.Simple(ops.Pad),
		ops.Simple(ops.Pad), ops.Simple(ops.Incr),
		ops.NewPush(field.New(135)),
		ops.NewPush(field.New(123)),
	)
}
