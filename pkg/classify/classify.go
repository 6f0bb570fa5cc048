// Package classify decides, for one instant, whether an offer is free now,
// free soon, expired or paid. It is the only place classification happens.
package classify

import (
	"time"

	"github.com/freegames-hub/freegames/pkg/offers"
)

// Reasons recorded on the offer for each branch of Classify.
const (
	ReasonOverrideActive    = "vendor_guaranteed_free_until_end"
	ReasonOverrideOpenEnded = "vendor_guaranteed_free"
	ReasonOverrideEnded     = "vendor_guaranteed_window_ended"
	ReasonWindowActive      = "full_discount_window_active"
	ReasonWindowUpcoming    = "full_discount_window_upcoming"
	ReasonWindowEnded       = "full_discount_window_ended"
	ReasonZeroPrice         = "price_is_zero"
	ReasonPaid              = "no_free_signal"
)

// Classify is a pure function of the offer's windows, override flag, price and
// now. It never mutates o.
func Classify(o offers.Offer, now time.Time) offers.Classification {
	if o.FreeOverride() {
		if len(o.PromotionWindows) == 0 {
			return offers.Classification{State: offers.StateFreeNow, Reason: ReasonOverrideOpenEnded}
		}
		end := o.PromotionWindows[0].EndTime
		if now.Before(end) {
			return offers.Classification{
				State:     offers.StateFreeNow,
				Remaining: offers.RemainingFrom(end.Sub(now)),
				Reason:    ReasonOverrideActive,
			}
		}
		return offers.Classification{State: offers.StateExpired, Reason: ReasonOverrideEnded}
	}

	if w, ok := activeFreeWindow(o.PromotionWindows, now); ok {
		return offers.Classification{
			State:     offers.StateFreeNow,
			Remaining: offers.RemainingFrom(w.EndTime.Sub(now)),
			Reason:    ReasonWindowActive,
		}
	}

	if w, ok := upcomingFreeWindow(o.PromotionWindows, now); ok {
		return offers.Classification{
			State:     offers.StateFreeSoon,
			Remaining: offers.RemainingFrom(w.StartTime.Sub(now)),
			Reason:    ReasonWindowUpcoming,
		}
	}

	// A zero price recorded during a promotion that has since lapsed is
	// stale; it must not keep the offer free after the window closes.
	if lapsedFreeWindow(o.PromotionWindows, now) {
		return offers.Classification{State: offers.StateExpired, Reason: ReasonWindowEnded}
	}

	if o.Price != nil && o.Price.DiscountedAmount == 0 {
		return offers.Classification{State: offers.StateFreeNow, Reason: ReasonZeroPrice}
	}

	return offers.Classification{State: offers.StatePaid, Reason: ReasonPaid}
}

// Apply classifies o at now and stores the result on it.
func Apply(o *offers.Offer, now time.Time) {
	c := Classify(*o, now)
	o.Classification = c.State
	o.RemainingDuration = c.Remaining
	o.StatusReason = c.Reason
}

// activeFreeWindow returns the 100% window containing now that ends soonest.
// Windows with Start == End carry no time and never match.
func activeFreeWindow(ws []offers.Window, now time.Time) (offers.Window, bool) {
	var (
		best  offers.Window
		found bool
	)
	for _, w := range ws {
		if !w.IsFree() || w.Elapsed() {
			continue
		}
		if now.Before(w.StartTime) || now.After(w.EndTime) {
			continue
		}
		if !found || w.EndTime.Before(best.EndTime) {
			best, found = w, true
		}
	}
	return best, found
}

// upcomingFreeWindow returns the 100% window that starts soonest after now.
func upcomingFreeWindow(ws []offers.Window, now time.Time) (offers.Window, bool) {
	var (
		best  offers.Window
		found bool
	)
	for _, w := range ws {
		if !w.IsFree() || w.Elapsed() || !w.StartTime.After(now) {
			continue
		}
		if !found || w.StartTime.Before(best.StartTime) {
			best, found = w, true
		}
	}
	return best, found
}

// lapsedFreeWindow reports whether a 100% window is over: it ended before now
// or never spanned any time.
func lapsedFreeWindow(ws []offers.Window, now time.Time) bool {
	for _, w := range ws {
		if w.IsFree() && (w.Elapsed() || w.EndTime.Before(now)) {
			return true
		}
	}
	return false
}
