package staticdata

import (
	"encoding/json"
	"fmt"
	"time"
)

// HobbyIcon is the closed set of hobby glyphs.
type HobbyIcon int

const (
	HobbyIconBookOpen HobbyIcon = iota
	HobbyIconPenTool
	HobbyIconPalette
)

// ParseHobbyIcon maps the document's icon name; unknown names fall back to BookOpen.
func ParseHobbyIcon(name string) HobbyIcon {
	switch name {
	case "PenTool":
		return HobbyIconPenTool
	case "Palette":
		return HobbyIconPalette
	}
	return HobbyIconBookOpen
}

func (i HobbyIcon) String() string {
	switch i {
	case HobbyIconPenTool:
		return "PenTool"
	case HobbyIconPalette:
		return "Palette"
	default:
		return "BookOpen"
	}
}

func (i HobbyIcon) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatLongDate renders "2004-01-02" as "2 Januari 2004". Unparseable input
// is returned unchanged.
func FormatLongDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

type ProfileHeader struct {
	Name   string   `json:"name"`
	Major  string   `json:"major"`
	Badges []string `json:"badges"`
}

type PersonalInfo struct {
	DateOfBirth string `json:"tanggal_lahir"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type AcademicView struct {
	Faculty   string `json:"faculty"`
	StudentID string `json:"student_id"`
	Period    string `json:"period"`
}

type HobbyView struct {
	ID   int       `json:"id"`
	Name string    `json:"name"`
	Icon HobbyIcon `json:"icon"`
}

type OrganizationView struct {
	Organization
	PeriodLabel string `json:"period_label"`
}

// StudentProfile is the student profile page.
type StudentProfile struct {
	Header        ProfileHeader      `json:"header"`
	Personal      PersonalInfo       `json:"informasi_pribadi"`
	Academic      AcademicView       `json:"informasi_akademik"`
	Organizations []OrganizationView `json:"organisasi"`
	Hobbies       []HobbyView        `json:"hobi"`
}

// ErrNoStudent is returned when the document carries no student section.
var ErrNoStudent = fmt.Errorf("%w: no student section", ErrMalformedDocument)

// BuildStudentProfile renders the student section of the document.
func BuildStudentProfile(doc *Document) (StudentProfile, error) {
	s := doc.Student
	if s == nil {
		return StudentProfile{}, ErrNoStudent
	}

	view := StudentProfile{
		Header: ProfileHeader{
			Name:  s.Name,
			Major: s.Major,
			Badges: []string{
				fmt.Sprintf("Semester %d", s.Semester),
				fmt.Sprintf("Tingkat %d", s.Level),
				"IPK " + s.AcademicInfo.GPA,
			},
		},
		Personal: PersonalInfo{
			DateOfBirth: FormatLongDate(s.DateOfBirth),
			Email:       s.Email,
			Phone:       s.Phone,
		},
		Academic: AcademicView{
			Faculty:   s.Faculty,
			StudentID: s.AcademicInfo.StudentID,
			Period:    fmt.Sprintf("%d - %d", s.AcademicInfo.EnrollmentYear, s.AcademicInfo.ExpectedGraduation),
		},
		Organizations: make([]OrganizationView, 0, len(s.Organizations)),
		Hobbies:       make([]HobbyView, 0, len(s.Hobbies)),
	}
	for _, org := range s.Organizations {
		view.Organizations = append(view.Organizations, OrganizationView{Organization: org, PeriodLabel: "Periode: " + org.Period})
	}
	for _, h := range s.Hobbies {
		view.Hobbies = append(view.Hobbies, HobbyView{ID: h.ID, Name: h.Name, Icon: ParseHobbyIcon(h.Icon)})
	}
	return view, nil
}

// NewProfileError is the error view of the student profile page.
func NewProfileError(err error) ErrorView {
	return ErrorView{Message: "Error: " + err.Error(), ReloadAction: ReloadLabel}
}
