// Package reduce implements the mutation operations on a shelf plan as pure
// reducers: each operation takes a Plan snapshot plus arguments and returns
// a new Plan, leaving the input untouched.
//
// Every operation that changes module membership or position encodings also
// writes the change back into the tabular record mirror (the bidirectional
// sync contract) and relayouts every module it touched, so product
// coordinates and module sizes are always consistent with the committed
// snapshot when a reducer returns.
//
// Operations are total: malformed numeric input is coerced at the boundary,
// missing module references self-heal through EnsureModule, and no reducer
// panics or returns a plan violating the model invariants.
package reduce
