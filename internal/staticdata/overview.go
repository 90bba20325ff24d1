package staticdata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Tone is the colour family of a queue status badge.
type Tone int

const (
	ToneMuted Tone = iota
	ToneInfo
	ToneWarning
	ToneSuccess
)

func (t Tone) String() string {
	switch t {
	case ToneInfo:
		return "info"
	case ToneWarning:
		return "warning"
	case ToneSuccess:
		return "success"
	default:
		return "muted"
	}
}

func (t Tone) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// StatusTone maps a queue status to its badge tone, ignoring case.
func StatusTone(status string) Tone {
	switch strings.ToLower(status) {
	case "sedang diperiksa":
		return ToneInfo
	case "menunggu":
		return ToneWarning
	case "selesai":
		return ToneSuccess
	}
	return ToneMuted
}

// Selection names at most one element of each list by its key.
type Selection struct {
	Antrian string
	Dokter  string
	Layanan string
}

type StatCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type QueueCard struct {
	Badge       string `json:"badge"`
	Title       string `json:"title"`
	Complaint   string `json:"keluhan"`
	Registered  string `json:"terdaftar"`
	Status      string `json:"status"`
	StatusTone  Tone   `json:"status_tone"`
	SelectValue string `json:"select"`
}

type Header struct {
	Name     string `json:"nama"`
	Tagline  string `json:"tagline"`
	Location string `json:"lokasi"`
	Phone    string `json:"telepon"`
	Email    string `json:"email"`
}

type Team struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Members  []TeamMember `json:"kelompok"`
}

// Overview is the clinic overview page. Sections absent from the document
// are omitted.
type Overview struct {
	Header         *Header         `json:"header,omitempty"`
	Stats          []StatCard      `json:"statistik,omitempty"`
	Queue          []QueueCard     `json:"antrian"`
	Doctors        []Doctor        `json:"dokter"`
	Services       []Service       `json:"layanan"`
	OperatingHours *OperatingHours `json:"jam_operasional,omitempty"`
	Team           *Team           `json:"tim,omitempty"`

	SelectedQueue   *QueueEntry `json:"selected_antrian,omitempty"`
	SelectedDoctor  *Doctor     `json:"selected_dokter,omitempty"`
	SelectedService *Service    `json:"selected_layanan,omitempty"`
}

// ErrorView replaces a page whose document could not be loaded.
type ErrorView struct {
	Message      string `json:"message"`
	ReloadAction string `json:"reload_action"`
}

const (
	OverviewErrorMessage = "Gagal memuat data klinik"
	ReloadLabel          = "Muat Ulang"
)

// QueueTitle is the heading of a queue card, e.g. "Budi (30 tahun)".
func QueueTitle(e QueueEntry) string {
	return fmt.Sprintf("%s (%d tahun)", e.Nama, e.Umur)
}

// BuildOverview renders the document. Selected elements point into the
// document; the document itself is not modified.
func BuildOverview(doc *Document, sel Selection) Overview {
	view := Overview{
		Queue:    make([]QueueCard, 0, len(doc.PasienHariIni)),
		Doctors:  doc.Dokter,
		Services: []Service{},
	}
	if view.Doctors == nil {
		view.Doctors = []Doctor{}
	}

	if k := doc.Klinik; k != nil {
		view.Header = &Header{
			Name:     k.Nama,
			Tagline:  "Melayani Dengan Sepenuh Hati",
			Location: k.Lokasi,
			Phone:    k.Telepon,
			Email:    k.Email,
		}
		if k.Layanan != nil {
			view.Services = k.Layanan
		}
		view.OperatingHours = &k.JamOperasional
	}

	if s := doc.Statistik; s != nil {
		view.Stats = []StatCard{
			{Label: "Pasien Hari Ini", Value: strconv.Itoa(s.PasienHariIni)},
			{Label: "Minggu Ini", Value: strconv.Itoa(s.PasienMingguIni)},
			{Label: "Bulan Ini", Value: strconv.Itoa(s.PasienBulanIni)},
			{Label: "Kepuasan", Value: s.TingkatKepuasan},
			{Label: "Waktu Tunggu", Value: s.WaktuTungguRataRata},
		}
	}

	for i := range doc.PasienHariIni {
		e := &doc.PasienHariIni[i]
		view.Queue = append(view.Queue, QueueCard{
			Badge:       e.NomorAntrian,
			Title:       QueueTitle(*e),
			Complaint:   e.Keluhan,
			Registered:  e.WaktuDaftar,
			Status:      e.Status,
			StatusTone:  StatusTone(e.Status),
			SelectValue: e.NomorAntrian,
		})
		if sel.Antrian != "" && e.NomorAntrian == sel.Antrian && view.SelectedQueue == nil {
			view.SelectedQueue = e
		}
	}

	for i := range view.Doctors {
		if sel.Dokter != "" && strconv.Itoa(view.Doctors[i].ID) == sel.Dokter {
			view.SelectedDoctor = &view.Doctors[i]
			break
		}
	}
	for i := range view.Services {
		if sel.Layanan != "" && strconv.Itoa(view.Services[i].ID) == sel.Layanan {
			view.SelectedService = &view.Services[i]
			break
		}
	}

	if t := doc.TeamInfo; t != nil {
		members := t.Kelompok
		if members == nil {
			members = []TeamMember{}
		}
		view.Team = &Team{
			Title:    "Tim Pengembang Sistem",
			Subtitle: t.MataKuliah + " - " + t.JudulTugas,
			Members:  members,
		}
	}
	return view
}

// NewOverviewError is the error view of the overview page.
func NewOverviewError() ErrorView {
	return ErrorView{Message: OverviewErrorMessage, ReloadAction: ReloadLabel}
}
