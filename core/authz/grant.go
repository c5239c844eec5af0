// Package authz implements the scoped sub-invocation authorization grants
// described in spec.md §9's design notes. A Grant is a tree of
// {contract, function, args, children} nodes: a contract that wants to let
// a callee move its tokens constructs a Grant describing exactly the
// sub-call it is permitting, attaches it to the current call frame, and the
// Verifier checks every sub-invocation the callee actually makes against
// that tree before allowing it through. This is the discipline that
// replaces ambient authority: a callee can only do what its caller
// explicitly described in advance, and only for the duration of that one
// call.
//
// Flattening this into a single boolean "is the caller authorized" check
// would defeat its purpose — spec.md's design notes call this out
// explicitly — so Verifier always walks the tree and matches on
// contract+function+args, never just presence.
package authz

import (
	"fmt"
	"reflect"

	"orbit/crypto"
)

// Grant describes a single sub-invocation a contract is pre-authorizing,
// plus the sub-invocations that call is itself allowed to make.
type Grant struct {
	Contract crypto.Address
	Function string
	Args     []any
	Children []*Grant
}

// NewGrant constructs a leaf grant with no nested authorization.
func NewGrant(contract crypto.Address, function string, args ...any) *Grant {
	return &Grant{Contract: contract, Function: function, Args: args}
}

// WithChildren attaches nested grants authorized within the scope of g.
func (g *Grant) WithChildren(children ...*Grant) *Grant {
	g.Children = children
	return g
}

// Call describes a sub-invocation a callee is attempting to make, checked
// against a Grant tree by Verifier.Require.
type Call struct {
	Contract crypto.Address
	Function string
	Args     []any
}

// matches reports whether c is exactly the sub-invocation g describes:
// same contract, same function symbol, same argument list.
func (g *Grant) matches(c Call) bool {
	if g == nil {
		return false
	}
	if !g.Contract.Equal(c.Contract) {
		return false
	}
	if g.Function != c.Function {
		return false
	}
	if len(g.Args) != len(c.Args) {
		return false
	}
	for i := range g.Args {
		if !reflect.DeepEqual(g.Args[i], c.Args[i]) {
			return false
		}
	}
	return true
}

// Verifier checks sub-invocations against a standing Grant tree. A fresh
// Verifier is created per top-level call (one per fl_receive invocation,
// per spec.md §4.2) so that grants never outlive the frame that created
// them.
type Verifier struct {
	root *Grant
}

// NewVerifier roots a verifier at the given grant.
func NewVerifier(root *Grant) *Verifier {
	return &Verifier{root: root}
}

// ErrScopeMismatch is returned when a sub-invocation does not match any node
// of the authorized grant tree — the auth-check failure spec.md §4.2
// describes as aborting the transaction.
type ErrScopeMismatch struct {
	Call Call
}

func (e *ErrScopeMismatch) Error() string {
	return fmt.Sprintf("authz: sub-invocation %s.%s not authorized by the current grant scope", e.Call.Contract.String(), e.Call.Function)
}

// Require checks that call matches the verifier's current scope. On success
// it returns a narrowed Verifier rooted at the matched node's children, so a
// caller can continue verifying calls nested one level deeper (mirroring
// the host ledger's sub-invocation tree walk). On failure it returns
// ErrScopeMismatch and the transaction must abort.
func (v *Verifier) Require(call Call) (*Verifier, error) {
	if v == nil || v.root == nil {
		return nil, &ErrScopeMismatch{Call: call}
	}
	if v.root.matches(call) {
		return &Verifier{root: &Grant{Children: v.root.Children}}, nil
	}
	for _, child := range v.root.Children {
		if child.matches(call) {
			return &Verifier{root: &Grant{Children: child.Children}}, nil
		}
	}
	return nil, &ErrScopeMismatch{Call: call}
}
