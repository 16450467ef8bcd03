package achievement

import (
	"encoding/json"
	"strconv"
)

// SlotCount is the number of equipped-badge slots on a profile.
const SlotCount = 3

// Slots holds the equipped badges in slot order. Empty slots are zero BadgeIDs.
type Slots [SlotCount]BadgeID

// Strings returns the serialized slot values, "" for empty slots.
func (s Slots) Strings() [SlotCount]string {
	var out [SlotCount]string
	for i, id := range s {
		out[i] = id.String()
	}
	return out
}

// Positions returns the 1-based slots holding id.
func (s Slots) Positions(id BadgeID) []int {
	var out []int
	if id.IsZero() {
		return out
	}
	for i, v := range s {
		if v == id {
			out = append(out, i+1)
		}
	}
	return out
}

// Equip returns a copy of s with slot (1-based) set to id. Invalid badges
// clear the slot.
func (s Slots) Equip(slot int, id BadgeID) (Slots, bool) {
	if slot < 1 || slot > SlotCount {
		return s, false
	}
	if !id.Valid() {
		id = BadgeID{}
	}
	s[slot-1] = id
	return s, true
}

// MarshalJSON writes the storage shape {"slot1": ..., "slot2": ..., "slot3": ...}
// with null for empty slots.
func (s Slots) MarshalJSON() ([]byte, error) {
	m := make(map[string]*string, SlotCount)
	for i, id := range s {
		key := "slot" + strconv.Itoa(i+1)
		if id.IsZero() {
			m[key] = nil
			continue
		}
		v := id.String()
		m[key] = &v
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts any shape NormalizeSlots accepts.
func (s *Slots) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = NormalizeSlots(raw, Slots{})
	return nil
}

// NormalizeSlots maps an externally shaped slot selection onto Slots.
//
// value may be an array ([]any, []string, Slots) or an object keyed by
// slot1..slot3 or badge_slot_1..badge_slot_3. Each slot value may be a badge
// ID string, a BadgeID, or an object carrying "badgeId" or "id". For every
// slot, a value that is absent falls back to the same slot of fallback; a
// value that is present but not a valid badge becomes empty. Normalizing an
// already normalized Slots returns it unchanged.
func NormalizeSlots(value any, fallback Slots) Slots {
	var out Slots
	for i := range out {
		raw, present := slotValue(value, i)
		if !present {
			if fallback[i].Valid() {
				out[i] = fallback[i]
			}
			continue
		}
		out[i] = sanitizeSlotValue(raw)
	}
	return out
}

func slotValue(value any, i int) (any, bool) {
	switch v := value.(type) {
	case Slots:
		return v[i], true
	case *Slots:
		if v == nil {
			return nil, false
		}
		return v[i], true
	case [SlotCount]string:
		return v[i], true
	case []string:
		if i < len(v) {
			return v[i], true
		}
	case []any:
		if i < len(v) {
			return v[i], true
		}
	case map[string]any:
		for _, key := range slotKeys(i) {
			if raw, ok := v[key]; ok {
				return raw, true
			}
		}
	case map[string]string:
		for _, key := range slotKeys(i) {
			if raw, ok := v[key]; ok {
				return raw, true
			}
		}
	}
	return nil, false
}

func slotKeys(i int) []string {
	n := strconv.Itoa(i + 1)
	return []string{"slot" + n, "badge_slot_" + n}
}

func sanitizeSlotValue(raw any) BadgeID {
	switch v := raw.(type) {
	case BadgeID:
		if v.Valid() {
			return v
		}
	case *BadgeID:
		if v != nil && v.Valid() {
			return *v
		}
	case string:
		id, _ := ParseBadgeID(v)
		return id
	case *string:
		if v != nil {
			id, _ := ParseBadgeID(*v)
			return id
		}
	case map[string]any:
		for _, key := range []string{"badgeId", "id"} {
			if s, ok := v[key].(string); ok {
				if id, valid := ParseBadgeID(s); valid {
					return id
				}
			}
		}
	case Badge:
		if v.ID.Valid() {
			return v.ID
		}
	}
	return BadgeID{}
}
