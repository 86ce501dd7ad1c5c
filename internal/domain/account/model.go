package account

// Profile is the stored credential record for one account. Field names match
// the persisted JSON layout; the PIN itself is never stored, only its bcrypt
// hash.
type Profile struct {
	Username  string `json:"username"`
	PINHash   string `json:"pinHash"`
	CreatedAt int64  `json:"createdAt"` // milliseconds since epoch
}
