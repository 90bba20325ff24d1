// Package staticdata renders the clinic overview and student profile pages
// from the demo JSON document.
package staticdata

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrDocumentUnavailable covers transport failures and non-2xx replies.
	ErrDocumentUnavailable = errors.New("document unavailable")
	// ErrMalformedDocument covers bodies that do not decode into a valid Document.
	ErrMalformedDocument = errors.New("malformed document")
)

// Document mirrors db.json. Every top-level section is optional.
type Document struct {
	Klinik        *Clinic      `json:"klinik,omitempty" validate:"omitempty"`
	Dokter        []Doctor     `json:"dokter,omitempty" validate:"dive"`
	PasienHariIni []QueueEntry `json:"pasienHariIni,omitempty" validate:"dive"`
	Statistik     *Statistics  `json:"statistik,omitempty" validate:"omitempty"`
	TeamInfo      *TeamInfo    `json:"teamInfo,omitempty" validate:"omitempty"`
	Student       *Student     `json:"student,omitempty" validate:"omitempty"`
}

type Clinic struct {
	Nama           string         `json:"nama" validate:"required"`
	Lokasi         string         `json:"lokasi"`
	Telepon        string         `json:"telepon"`
	Email          string         `json:"email"`
	JamOperasional OperatingHours `json:"jamOperasional"`
	Layanan        []Service      `json:"layanan" validate:"dive"`
}

type OperatingHours struct {
	SeninJumat string `json:"senin_jumat"`
	Sabtu      string `json:"sabtu"`
	Minggu     string `json:"minggu"`
}

type Service struct {
	ID        int    `json:"id" validate:"required"`
	Nama      string `json:"nama" validate:"required"`
	Deskripsi string `json:"deskripsi"`
	Durasi    string `json:"durasi"`
	Harga     string `json:"harga"`
}

type Doctor struct {
	ID           int      `json:"id" validate:"required"`
	Nama         string   `json:"nama" validate:"required"`
	Spesialisasi string   `json:"spesialisasi"`
	Pengalaman   string   `json:"pengalaman"`
	Jadwal       []string `json:"jadwal"`
	Foto         string   `json:"foto"`
}

// QueueEntry is one patient in today's queue.
type QueueEntry struct {
	NomorAntrian string `json:"nomorAntrian" validate:"required"`
	Nama         string `json:"nama" validate:"required"`
	Umur         int    `json:"umur" validate:"gte=0"`
	Keluhan      string `json:"keluhan"`
	Status       string `json:"status"`
	WaktuDaftar  string `json:"waktuDaftar"`
}

type Statistics struct {
	PasienHariIni       int    `json:"pasienHariIni"`
	PasienMingguIni     int    `json:"pasienMingguIni"`
	PasienBulanIni      int    `json:"pasienBulanIni"`
	TingkatKepuasan     string `json:"tingkatKepuasan"`
	WaktuTungguRataRata string `json:"waktuTungguRataRata"`
}

type TeamInfo struct {
	Kelompok   []TeamMember `json:"kelompok" validate:"dive"`
	MataKuliah string       `json:"mataKuliah"`
	JudulTugas string       `json:"judulTugas"`
}

type TeamMember struct {
	Nama  string `json:"nama" validate:"required"`
	NIM   string `json:"nim,omitempty"`
	Peran string `json:"peran"`
}

type Student struct {
	ID            string         `json:"id" validate:"required"`
	Name          string         `json:"name" validate:"required"`
	Faculty       string         `json:"faculty"`
	Major         string         `json:"major"`
	Semester      int            `json:"semester"`
	Level         int            `json:"level"`
	DateOfBirth   string         `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	AcademicInfo  AcademicInfo   `json:"academicInfo"`
	Organizations []Organization `json:"organizations" validate:"dive"`
	Hobbies       []Hobby        `json:"hobbies" validate:"dive"`
}

type AcademicInfo struct {
	StudentID          string `json:"studentId"`
	EnrollmentYear     int    `json:"enrollmentYear"`
	ExpectedGraduation int    `json:"expectedGraduation"`
	GPA                string `json:"gpa"`
}

type Organization struct {
	ID          int    `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Position    string `json:"position"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

type Hobby struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon"`
}

var documentValidator = validator.New()

// Decode parses and validates a document body.
func Decode(body []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := documentValidator.Struct(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &doc, nil
}
