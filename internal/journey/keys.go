package journey

import "strings"

// DefaultUserID namespaces storage when no identity is known.
const DefaultUserID = "default"

// ResolveUserID picks the first non-blank id from the auth id, the profile
// id and the profile's own user-id field.
func ResolveUserID(authID, profileID, profileUserID string) string {
	for _, id := range []string{authID, profileID, profileUserID} {
		if id = strings.TrimSpace(id); id != "" {
			return id
		}
	}
	return DefaultUserID
}

// Storage keys in the kv table.
func StateKey(userID string) string      { return "weight_manager_state:" + userID }
func HistoryKey(userID string) string    { return "weight_manager_journey_history:" + userID }
func CheckInsKey(userID string) string   { return "weight_manager_checkins:" + userID }
func BadgeSlotsKey(userID string) string { return "badge_slots:" + userID }
