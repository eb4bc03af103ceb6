package models

import "time"

type ReportStatus string

const (
	StatusOpen       ReportStatus = "open"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
	StatusDenied     ReportStatus = "denied"
)

var ReportStatuses = []ReportStatus{StatusOpen, StatusInProgress, StatusResolved, StatusDenied}

func (s ReportStatus) Valid() bool {
	for _, status := range ReportStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Category string

const (
	CategoryPothole       Category = "pothole"
	CategoryStreetLight   Category = "street_light"
	CategoryTrafficSignal Category = "traffic_signal"
	CategoryRoadDamage    Category = "road_damage"
	CategorySanitation    Category = "sanitation"
	CategoryOther         Category = "other"
)

var Categories = []Category{
	CategoryPothole,
	CategoryStreetLight,
	CategoryTrafficSignal,
	CategoryRoadDamage,
	CategorySanitation,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, category := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Department string

const (
	DepartmentDTOP Department = "DTOP"
	DepartmentLUMA Department = "LUMA"
	DepartmentAAA  Department = "AAA"
	DepartmentDDS  Department = "DDS"
)

var Departments = []Department{DepartmentDTOP, DepartmentLUMA, DepartmentAAA, DepartmentDDS}

func (d Department) Valid() bool {
	for _, department := range Departments {
		if d == department {
			return true
		}
	}
	return false
}

type Report struct {
	ID          int64        `db:"id" json:"id"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description"`
	Status      ReportStatus `db:"status" json:"status"`
	Category    Category     `db:"category" json:"category"`
	CreatedBy   int64        `db:"created_by" json:"created_by"`
	ValidatedBy *int64       `db:"validated_by" json:"validated_by"`
	ResolvedBy  *int64       `db:"resolved_by" json:"resolved_by"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	ResolvedAt  *time.Time   `db:"resolved_at" json:"resolved_at"`
	LocationID  *int64       `db:"location" json:"location"`
	ImageURL    *string      `db:"image_url" json:"image_url"`
	Rating      *int         `db:"rating" json:"rating"`
}

// ReportPatch carries the fields of a partial report update. A nil field was not
// supplied and is left untouched.
type ReportPatch struct {
	Status      *ReportStatus `json:"status"`
	Rating      *int          `json:"rating"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Category    *Category     `json:"category"`
	ValidatedBy *int64        `json:"validated_by" validate:"omitempty,dbid"`
	ResolvedBy  *int64        `json:"resolved_by" validate:"omitempty,dbid"`
	ResolvedAt  *time.Time    `json:"resolved_at"`
	LocationID  *int64        `json:"location_id" validate:"omitempty,dbid"`
	ImageURL    *string       `json:"image_url"`
}

func (p ReportPatch) Empty() bool {
	return p.Status == nil && p.Rating == nil && p.Title == nil && p.Description == nil &&
		p.Category == nil && p.ValidatedBy == nil && p.ResolvedBy == nil && p.ResolvedAt == nil &&
		p.LocationID == nil && p.ImageURL == nil
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	Admin        bool      `db:"admin" json:"admin"`
	Suspended    bool      `db:"suspended" json:"suspended"`
	Pinned       bool      `db:"pinned" json:"pinned"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	TotalReports int       `db:"total_reports" json:"total_reports"`
}

type Administrator struct {
	ID            int64      `db:"id" json:"id"`
	Department    Department `db:"department" json:"department"`
	Email         *string    `db:"email" json:"email,omitempty"`
	Suspended     *bool      `db:"suspended" json:"suspended,omitempty"`
	UserCreatedAt *time.Time `db:"user_created_at" json:"user_created_at,omitempty"`
}

type DepartmentAssignment struct {
	Department Department `db:"department" json:"department"`
	AdminID    *int64     `db:"admin_id" json:"admin_id"`
	AdminEmail *string    `db:"admin_email" json:"admin_email,omitempty"`
}

type PinnedReport struct {
	UserID   int64     `db:"user_id" json:"user_id"`
	ReportID int64     `db:"report_id" json:"report_id"`
	PinnedAt time.Time `db:"pinned_at" json:"pinned_at"`
}

type PinnedReportDetail struct {
	PinnedReport
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description"`
	Status      ReportStatus `db:"status" json:"status"`
	Category    Category     `db:"category" json:"category"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}

type Location struct {
	ID        int64    `db:"id" json:"id"`
	Latitude  float64  `db:"latitude" json:"latitude"`
	Longitude float64  `db:"longitude" json:"longitude"`
	Distance  *float64 `db:"distance" json:"distance_km,omitempty"`
}
