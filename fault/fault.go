package fault

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrInternal is matched by every *Fault via errors.Is.
var ErrInternal = stderrors.New("fault: internal fault")

// Kind classifies a fault.
type Kind int

const (
	// KindPrecondition marks a broken caller contract.
	KindPrecondition Kind = iota + 1
	// KindInvariant marks corrupted internal state.
	KindInvariant
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Field is one diagnostic key/value attached to a fault.
type Field struct {
	Key   string
	Value any
}

// Fault is a precondition or invariant violation detected inside the core.
type Fault struct {
	Kind   Kind
	Op     string
	Msg    string
	Fields []Field

	// cause carries the stack trace of the raise site.
	cause error
}

// New builds a Fault without raising it. kv is read as alternating key/value
// pairs; a trailing key without value is recorded with a nil value.
func New(kind Kind, op, msg string, kv ...any) *Fault {
	f := &Fault{Kind: kind, Op: op, Msg: msg}
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		var val any
		if i+1 < len(kv) {
			val = kv[i+1]
		}
		f.Fields = append(f.Fields, Field{Key: key, Value: val})
	}
	f.cause = errors.WithStack(stderrors.New(f.describe()))

	return f
}

// Precondition panics with a KindPrecondition fault.
func Precondition(op, msg string, kv ...any) {
	panic(New(KindPrecondition, op, msg, kv...))
}

// Invariant panics with a KindInvariant fault.
func Invariant(op, msg string, kv ...any) {
	panic(New(KindInvariant, op, msg, kv...))
}

func (f *Fault) describe() string {
	var b strings.Builder
	b.WriteString(f.Op)
	b.WriteString(": ")
	b.WriteString(f.Msg)
	if len(f.Fields) > 0 {
		b.WriteString(" (")
		for i, fld := range f.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", fld.Key, fld.Value)
		}
		b.WriteString(")")
	}

	return b.String()
}

// Error implements error.
func (f *Fault) Error() string {
	return fmt.Sprintf("fault: %s: %s", f.Kind, f.describe())
}

// Is reports true for ErrInternal.
func (f *Fault) Is(target error) bool {
	return target == ErrInternal
}

// Unwrap exposes the stack-carrying cause.
func (f *Fault) Unwrap() error {
	return f.cause
}

// Format prints the stack trace of the raise site with %+v.
func (f *Fault) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s\n%+v", f.Error(), f.StackTrace())
			return
		}
		fallthrough
	case 's':
		_, _ = s.Write([]byte(f.Error()))
	case 'q':
		fmt.Fprintf(s, "%q", f.Error())
	}
}

// StackTrace returns the frames captured when the fault was built.
func (f *Fault) StackTrace() errors.StackTrace {
	type stackTracer interface {
		StackTrace() errors.StackTrace
	}
	if st, ok := f.cause.(stackTracer); ok {
		return st.StackTrace()
	}

	return nil
}

// Field returns the value recorded under key.
func (f *Fault) Field(key string) (any, bool) {
	for _, fld := range f.Fields {
		if fld.Key == key {
			return fld.Value, true
		}
	}

	return nil, false
}

// As extracts a *Fault from err's chain.
func As(err error) (*Fault, bool) {
	var f *Fault
	if stderrors.As(err, &f) {
		return f, true
	}

	return nil, false
}

// Recover converts a panicking *Fault into *errp. Other panics propagate.
// It must be called directly by a deferred statement.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	f, ok := r.(*Fault)
	if !ok {
		panic(r)
	}
	if errp != nil {
		*errp = f
	}
}

// Catch runs fn and returns the fault it raised, if any.
func Catch(fn func()) (err error) {
	defer Recover(&err)
	fn()

	return nil
}
