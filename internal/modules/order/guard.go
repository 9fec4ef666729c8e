package order

import (
	"github.com/matthews-wong/setaside-be/internal/apperr"
	"github.com/matthews-wong/setaside-be/internal/authn"
)

// guardOpts controls the access guard.
type guardOpts struct {
	// requirePending restricts the owning customer to the order's pending
	// window. Staff are never subject to it; actor-independent pending rules
	// (such as delete) are enforced by the caller instead.
	requirePending bool
}

// authorize decides whether an actor may act on an order. Staff always pass;
// customers must own the order, and with requirePending set the order must
// still be pending.
func authorize(o *Order, actor authn.Identity, opts guardOpts) error {
	if actor.Role.IsStaff() {
		return nil
	}
	if o.CustomerID != actor.ID {
		return apperr.New(apperr.KindForbidden, "you do not have access to this order")
	}
	if opts.requirePending && o.Status != StatusPending {
		return apperr.New(apperr.KindInvalidState, "order can no longer be modified")
	}
	return nil
}
