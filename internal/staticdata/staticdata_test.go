package staticdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleDocument = `{
  "klinik": {
    "nama": "Klinik Sentosa",
    "lokasi": "Jl. Sudirman No. 1",
    "telepon": "021-555",
    "email": "info@klinik.test",
    "jamOperasional": {"senin_jumat": "08:00 - 20:00", "sabtu": "08:00 - 14:00", "minggu": "Tutup"},
    "layanan": [
      {"id": 1, "nama": "Pemeriksaan Umum", "deskripsi": "Konsultasi", "durasi": "30 menit", "harga": "Rp 100.000"},
      {"id": 2, "nama": "Vaksinasi", "deskripsi": "Imunisasi", "durasi": "15 menit", "harga": "Rp 150.000"}
    ]
  },
  "dokter": [
    {"id": 1, "nama": "dr. Andi", "spesialisasi": "Umum", "pengalaman": "10 tahun", "jadwal": ["Senin"], "foto": "a.jpg"},
    {"id": 2, "nama": "dr. Sari", "spesialisasi": "Anak", "pengalaman": "5 tahun", "jadwal": ["Rabu"], "foto": "s.jpg"}
  ],
  "pasienHariIni": [
    {"nomorAntrian": "A01", "nama": "Budi", "umur": 30, "keluhan": "Demam", "status": "Menunggu", "waktuDaftar": "08:00"},
    {"nomorAntrian": "A02", "nama": "Sri", "umur": 25, "keluhan": "Batuk", "status": "Sedang Diperiksa", "waktuDaftar": "08:10"}
  ],
  "statistik": {"pasienHariIni": 24, "pasienMingguIni": 150, "pasienBulanIni": 600, "tingkatKepuasan": "95%", "waktuTungguRataRata": "15 menit"},
  "teamInfo": {"kelompok": [{"nama": "Rina", "nim": "123", "peran": "Ketua"}, {"nama": "Dodi", "peran": "Anggota"}], "mataKuliah": "Pemrograman Web", "judulTugas": "Sistem Klinik"},
  "student": {
    "id": "1", "name": "Rina Putri", "faculty": "Teknik", "major": "Informatika",
    "semester": 5, "level": 3, "dateOfBirth": "2004-01-02", "email": "rina@kampus.test", "phone": "0812",
    "academicInfo": {"studentId": "123", "enrollmentYear": 2022, "expectedGraduation": 2026, "gpa": "3.80"},
    "organizations": [{"id": 1, "name": "BEM", "position": "Sekretaris", "period": "2023-2024", "description": "Badan Eksekutif"}],
    "hobbies": [{"id": 1, "name": "Menulis", "icon": "PenTool"}, {"id": 2, "name": "Melukis", "icon": "Palette"}, {"id": 3, "name": "Membaca", "icon": "Book"}]
  }
}`

func serveDocument(t *testing.T, status int, body string) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewFetcher(srv.URL+"/db.json", 5*time.Second, zap.NewNop())
}

func TestStatusTone(t *testing.T) {
	tests := map[string]Tone{
		"Sedang Diperiksa": ToneInfo,
		"sedang diperiksa": ToneInfo,
		"Menunggu":         ToneWarning,
		"MENUNGGU":         ToneWarning,
		"Selesai":          ToneSuccess,
		"Batal":            ToneMuted,
		"":                 ToneMuted,
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusTone(status), status)
	}
}

func TestFetcher_SingleQueueEntry(t *testing.T) {
	f := serveDocument(t, http.StatusOK,
		`{"pasienHariIni":[{"nomorAntrian":"A01","nama":"Budi","umur":30,"keluhan":"Demam","status":"Menunggu","waktuDaftar":"08:00"}]}`)

	doc, err := f.Fetch(context.Background())
	require.NoError(t, err)

	view := BuildOverview(doc, Selection{})
	require.Len(t, view.Queue, 1)
	card := view.Queue[0]
	assert.Equal(t, "A01", card.Badge)
	assert.Equal(t, "Budi (30 tahun)", card.Title)
	assert.Equal(t, "Menunggu", card.Status)
	assert.Equal(t, ToneWarning, card.StatusTone)
	assert.Nil(t, view.Header)
	assert.Empty(t, view.Stats)
}

func TestFetcher_Failures(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		f := serveDocument(t, http.StatusNotFound, `not found`)
		_, err := f.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrDocumentUnavailable)
	})

	t.Run("server error is not retried", func(t *testing.T) {
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewFetcher(srv.URL, time.Second, zap.NewNop()).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrDocumentUnavailable)
		assert.Equal(t, 1, calls)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewFetcher(url, time.Second, zap.NewNop()).Fetch(context.Background())
		assert.ErrorIs(t, err, ErrDocumentUnavailable)
	})

	t.Run("wrong types", func(t *testing.T) {
		f := serveDocument(t, http.StatusOK, `{"pasienHariIni":[{"nomorAntrian":"A01","nama":"Budi","umur":"tiga puluh"}]}`)
		_, err := f.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})

	t.Run("missing required element field", func(t *testing.T) {
		f := serveDocument(t, http.StatusOK, `{"dokter":[{"id":1}]}`)
		_, err := f.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}

func TestBuildOverview_FullDocument(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	require.NoError(t, err)

	view := BuildOverview(doc, Selection{})
	require.NotNil(t, view.Header)
	assert.Equal(t, "Klinik Sentosa", view.Header.Name)
	require.Len(t, view.Stats, 5)
	assert.Equal(t, StatCard{Label: "Pasien Hari Ini", Value: "24"}, view.Stats[0])
	assert.Equal(t, StatCard{Label: "Waktu Tunggu", Value: "15 menit"}, view.Stats[4])
	assert.Equal(t, ToneInfo, view.Queue[1].StatusTone)
	assert.Len(t, view.Doctors, 2)
	assert.Len(t, view.Services, 2)
	assert.Equal(t, "Tutup", view.OperatingHours.Minggu)
	require.NotNil(t, view.Team)
	assert.Equal(t, "Pemrograman Web - Sistem Klinik", view.Team.Subtitle)
	assert.Nil(t, view.SelectedQueue)
	assert.Nil(t, view.SelectedDoctor)
	assert.Nil(t, view.SelectedService)
}

func TestBuildOverview_Selection(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	require.NoError(t, err)
	before, err := json.Marshal(doc)
	require.NoError(t, err)

	view := BuildOverview(doc, Selection{Antrian: "A02", Dokter: "2", Layanan: "1"})
	require.NotNil(t, view.SelectedQueue)
	assert.Equal(t, "Sri", view.SelectedQueue.Nama)
	require.NotNil(t, view.SelectedDoctor)
	assert.Equal(t, "dr. Sari", view.SelectedDoctor.Nama)
	require.NotNil(t, view.SelectedService)
	assert.Equal(t, "Pemeriksaan Umum", view.SelectedService.Nama)

	unknown := BuildOverview(doc, Selection{Antrian: "Z99", Dokter: "9", Layanan: "x"})
	assert.Nil(t, unknown.SelectedQueue)
	assert.Nil(t, unknown.SelectedDoctor)
	assert.Nil(t, unknown.SelectedService)

	after, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestNewOverviewError(t *testing.T) {
	v := NewOverviewError()
	assert.Equal(t, "Gagal memuat data klinik", v.Message)
	assert.Equal(t, "Muat Ulang", v.ReloadAction)
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "2 Januari 2004", FormatLongDate("2004-01-02"))
	assert.Equal(t, "31 Desember 1999", FormatLongDate("1999-12-31"))
	assert.Equal(t, "17 Agustus 1945", FormatLongDate("1945-08-17"))
	assert.Equal(t, "kemarin", FormatLongDate("kemarin"))
}

func TestBuildStudentProfile(t *testing.T) {
	doc, err := Decode([]byte(sampleDocument))
	require.NoError(t, err)

	view, err := BuildStudentProfile(doc)
	require.NoError(t, err)
	assert.Equal(t, "Rina Putri", view.Header.Name)
	assert.Equal(t, []string{"Semester 5", "Tingkat 3", "IPK 3.80"}, view.Header.Badges)
	assert.Equal(t, "2 Januari 2004", view.Personal.DateOfBirth)
	assert.Equal(t, "2022 - 2026", view.Academic.Period)
	require.Len(t, view.Organizations, 1)
	assert.Equal(t, "Periode: 2023-2024", view.Organizations[0].PeriodLabel)

	require.Len(t, view.Hobbies, 3)
	assert.Equal(t, HobbyIconPenTool, view.Hobbies[0].Icon)
	assert.Equal(t, HobbyIconPalette, view.Hobbies[1].Icon)
	assert.Equal(t, HobbyIconBookOpen, view.Hobbies[2].Icon)

	data, err := json.Marshal(view.Hobbies[2])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"Membaca","icon":"BookOpen"}`, string(data))
}

func TestBuildStudentProfile_NoStudent(t *testing.T) {
	_, err := BuildStudentProfile(&Document{})
	assert.ErrorIs(t, err, ErrMalformedDocument)
}
