package booking

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Slot labels have the form "HH:00 - HH+2:00", e.g. "09:00 - 11:00".
// Each slot covers a fixed two-hour block identified by its starting hour.
const SlotHours = 2

// ParseSlotStart returns the starting hour of a slot label, i.e. the integer
// before the first colon.
func ParseSlotStart(label string) (int, error) {
	head, _, found := strings.Cut(label, ":")
	if !found {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(strings.TrimSpace(head))
}

// ValidateConsecutive reports whether the slot sequence, in the order given,
// forms contiguous two-hour blocks: every adjacent pair must start exactly
// two hours apart. Empty and single-element sequences trivially pass.
//
// The check is order-sensitive: a contiguous set submitted out of
// chronological order is rejected. Callers wanting order-insensitive
// behavior should pass the slots through NormalizeSlots first.
func ValidateConsecutive(slots []string) bool {
	if len(slots) <= 1 {
		return true
	}

	prev, err := ParseSlotStart(slots[0])
	if err != nil {
		return false
	}
	for _, s := range slots[1:] {
		hour, err := ParseSlotStart(s)
		if err != nil {
			return false
		}
		if hour != prev+SlotHours {
			return false
		}
		prev = hour
	}
	return true
}

// NormalizeSlots returns a copy of the slots sorted by starting hour.
// Labels that fail to parse sort after all valid ones, keeping their
// relative order, so they still fail the contiguity check.
func NormalizeSlots(slots []string) []string {
	out := make([]string, len(slots))
	copy(out, slots)
	sort.SliceStable(out, func(i, j int) bool {
		hi, erri := ParseSlotStart(out[i])
		hj, errj := ParseSlotStart(out[j])
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		return hi < hj
	})
	return out
}

// IntersectSlots returns the requested slots that appear in existing,
// preserving request order and dropping duplicates.
func IntersectSlots(requested, existing []string) []string {
	taken := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		taken[s] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{}, len(requested))
	for _, s := range requested {
		if _, ok := taken[s]; !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// NormalizeDate truncates a timestamp to midnight UTC. Bookings match on the
// calendar day only; any time-of-day component in the request is ignored.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
