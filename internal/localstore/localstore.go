// Package localstore defines the contract of the browser-side local store
// used before a durable account session exists. The server never reads the
// browser's storage directly; when a guest signs in, the client replays the
// mirrored entries against the sync endpoint using the shapes below.
package localstore

import "time"

// Key names used by the client. Fixed: renaming any of these orphans
// existing guest data.
const (
	KeyGuestID        = "duitku:guest_id"
	KeyGuestName      = "duitku:guest_name"
	KeyGuestEmail     = "duitku:guest_email"
	KeyGuestCreatedAt = "duitku:guest_created_at"
	KeyTransactions   = "duitku:transactions"
	KeySavings        = "duitku:savings"
)

// GuestIdentity is the locally generated identity created lazily on first
// access. It has no server-side row until synced.
type GuestIdentity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransactionRecord mirrors one locally held transaction. IDs are assigned
// client-side and must stay stable across the guest-to-cloud transition so
// replaying a record twice upserts instead of duplicating.
type TransactionRecord struct {
	ID          int64  `json:"id"`
	Title       string `json:"judul"`
	Amount      string `json:"jumlah"`
	Description string `json:"deskripsi,omitempty"`
	Date        string `json:"tanggal"`
	Type        string `json:"tipe"`
	CategoryID  *int64 `json:"kategoriId,omitempty"`
}

// SavingsRecord mirrors one locally held savings pool.
type SavingsRecord struct {
	ID             int64  `json:"id"`
	Name           string `json:"nama"`
	InitialBalance string `json:"saldoAwal"`
	CurrentAmount  string `json:"jumlahSaatIni"`
}

// Mirror is the full local-store payload replayed on sign-in.
type Mirror struct {
	Guest        GuestIdentity       `json:"guest"`
	Transactions []TransactionRecord `json:"transactions"`
	Savings      []SavingsRecord     `json:"savings"`
}
