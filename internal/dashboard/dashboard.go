// Package dashboard maps a resolved role to its landing card.
package dashboard

import (
	"encoding/json"

	"klinik-sentosa-server/internal/access"
	"klinik-sentosa-server/internal/models"
)

// Icon is the closed set of glyphs a dashboard card can show.
type Icon int

const (
	IconUser Icon = iota
	IconUsers
	IconStethoscope
	IconHeart
	IconPill
	IconCreditCard
)

func (i Icon) String() string {
	switch i {
	case IconUsers:
		return "users"
	case IconStethoscope:
		return "stethoscope"
	case IconHeart:
		return "heart"
	case IconPill:
		return "pill"
	case IconCreditCard:
		return "credit-card"
	default:
		return "user"
	}
}

func (i Icon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// Entry describes the card shown for one role.
type Entry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
	Route       string `json:"route"`
}

// Navigable reports whether the card leads to a role page.
func (e Entry) Navigable() bool {
	return e.Route != ""
}

// EnterLabel is the caption of the single card action, empty when there is none.
func (e Entry) EnterLabel() string {
	if !e.Navigable() {
		return ""
	}
	return "Masuk ke " + e.Title
}

var fallback = Entry{Title: "Dashboard", Description: "Selamat datang", Icon: IconUser}

// EntryFor returns the card for role. Unknown or empty roles get the
// non-navigable fallback.
func EntryFor(role models.Role) Entry {
	switch role {
	case models.RoleAdminPendaftaran:
		return Entry{Title: "Admin Pendaftaran", Description: "Kelola pendaftaran pasien", Icon: IconUsers, Route: "/admin-pendaftaran"}
	case models.RoleDokter:
		return Entry{Title: "Dokter", Description: "Pemeriksaan dan diagnosis pasien", Icon: IconStethoscope, Route: "/dokter"}
	case models.RolePasien:
		return Entry{Title: "Pasien", Description: "Lihat data diri dan riwayat pemeriksaan", Icon: IconHeart, Route: "/pasien"}
	case models.RoleApoteker:
		return Entry{Title: "Apoteker", Description: "Kelola obat dan resep", Icon: IconPill, Route: "/apoteker"}
	case models.RolePembayaran:
		return Entry{Title: "Kasir", Description: "Proses pembayaran pasien", Icon: IconCreditCard, Route: "/pembayaran"}
	}
	return fallback
}

// RolelessMessage replaces the action for callers without a role.
const RolelessMessage = "Akun Anda belum memiliki role. Silakan hubungi administrator untuk mendapatkan akses."

// Action is the card's navigation button.
type Action struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// View is everything the dashboard page renders.
type View struct {
	AppTitle     string      `json:"app_title"`
	Role         models.Role `json:"role,omitempty"`
	Card         Entry       `json:"card"`
	DisplayName  string      `json:"display_name,omitempty"`
	Action       *Action     `json:"action,omitempty"`
	Placeholder  string      `json:"placeholder,omitempty"`
	SignOutLabel string      `json:"sign_out_label"`
}

// BuildView renders a resolution. The display name appears only when a
// profile row exists.
func BuildView(res *access.Resolution) View {
	entry := EntryFor(res.Role)
	view := View{
		AppTitle:     "Klinik Sentosa",
		Role:         res.Role,
		Card:         entry,
		SignOutLabel: "Keluar",
	}
	if res.Profile != nil {
		view.DisplayName = res.Profile.DisplayName()
	}
	if res.HasRole() && entry.Navigable() {
		view.Action = &Action{Label: entry.EnterLabel(), Route: entry.Route}
	} else {
		view.Placeholder = RolelessMessage
	}
	return view
}
