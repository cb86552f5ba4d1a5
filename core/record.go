package core

import (
	"encoding/json"
	"strconv"
)

// Record is an open string-keyed JSON map. Every domain entity is handled
// defensively through this shape; named fields are read with the accessors
// below and unknown fields ride along untouched.
type Record map[string]interface{}

// Owner-identifying synonym keys, checked in priority order. First key
// present on the record wins, even when its value is blank.
var (
	ownerIDKeys   = []string{"usuario_id", "autor_id", "criador_id", "owner_id", "user_id", "created_by"}
	ownerNameKeys = []string{"autor", "autor_nome", "usuario_nome", "criador_nome", "owner_nome"}
)

// AsString renders any JSON value the way a list row would: nil as "",
// numbers without a trailing ".0", everything else via its JSON encoding.
func AsString(x interface{}) string {
	switch v := x.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// ID returns the record's identifier coerced to string, or "" when the
// record carries no usable id (only strings and numbers qualify).
func (r Record) ID() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case float64, int, int64, json.Number:
		return AsString(v)
	default:
		return ""
	}
}

func (r Record) Str(key string) string {
	return AsString(r[key])
}

func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// TriBool reads a tri-state flag: nil when the field is absent or not a
// boolean (the "ungraded"/"unmarked" state), a real pointer otherwise.
func (r Record) TriBool(key string) *bool {
	if b, ok := r[key].(bool); ok {
		return &b
	}
	return nil
}

func (r Record) Clone() Record {
	dup := make(Record, len(r))
	for k, v := range r {
		dup[k] = v
	}
	return dup
}

// OwnerIdentity resolves whichever owner fields are present on the record:
// the owner id (trimmed) and the owner display name (trimmed, lowered).
func OwnerIdentity(rec Record) (ownerID, ownerName string) {
	for _, key := range ownerIDKeys {
		if v, ok := rec[key]; ok && v != nil {
			ownerID = CleanString(AsString(v))
			break
		}
	}
	for _, key := range ownerNameKeys {
		if v, ok := rec[key]; ok && v != nil {
			ownerName = CleanString(AsString(v), true /* lower */)
			break
		}
	}
	return ownerID, ownerName
}

// CanMutate reports whether the session identity may edit or delete rec.
// A record with no owner field is mutable by any logged-in user; otherwise
// the session user's id or normalized name must match the owner fields.
// Evaluated per call, never cached.
func CanMutate(rec Record, userID, userName string) bool {
	if userID == "" && CleanString(userName) == "" {
		return false
	}
	ownerID, ownerName := OwnerIdentity(rec)
	if ownerID == "" && ownerName == "" {
		return true
	}
	if ownerID != "" && ownerID == userID {
		return true
	}
	if ownerName != "" && ownerName == CleanString(userName, true /* lower */) {
		return true
	}
	return false
}
