// Package catalog holds the fixed enumerations shared by the complaint and
// identity contexts: complaint statuses and types, governorates, and
// government agencies. Agency is the tenancy boundary between employees and
// the complaints they may see.
package catalog

import (
	"github.com/shakwa/backend/internal/domain/shared"
)

// ComplaintStatus represents the processing state of a complaint
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "PENDING"
	StatusInProgress ComplaintStatus = "IN_PROGRESS"
	StatusResolved   ComplaintStatus = "RESOLVED"
	StatusRejected   ComplaintStatus = "REJECTED"
)

// ComplaintStatuses lists all valid complaint statuses
var ComplaintStatuses = []ComplaintStatus{
	StatusPending,
	StatusInProgress,
	StatusResolved,
	StatusRejected,
}

// IsValid reports whether the status is a member of the catalog
func (s ComplaintStatus) IsValid() bool {
	for _, v := range ComplaintStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseComplaintStatus parses a status string, failing with a domain error
func ParseComplaintStatus(s string) (ComplaintStatus, error) {
	status := ComplaintStatus(s)
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown complaint status: "+s)
	}
	return status, nil
}

// ComplaintType represents the category of a filed complaint
type ComplaintType string

const (
	TypeServiceDelay     ComplaintType = "SERVICE_DELAY"
	TypePoorService      ComplaintType = "POOR_SERVICE"
	TypeCorruption       ComplaintType = "CORRUPTION"
	TypeInfrastructure   ComplaintType = "INFRASTRUCTURE"
	TypeStaffMisconduct  ComplaintType = "STAFF_MISCONDUCT"
	TypeOvercharging     ComplaintType = "OVERCHARGING"
	TypeDocumentIssue    ComplaintType = "DOCUMENT_ISSUE"
	TypeFacilityHygiene  ComplaintType = "FACILITY_HYGIENE"
	TypeSafetyHazard     ComplaintType = "SAFETY_HAZARD"
	TypeOtherComplaint   ComplaintType = "OTHER"
)

// ComplaintTypes lists all valid complaint types
var ComplaintTypes = []ComplaintType{
	TypeServiceDelay,
	TypePoorService,
	TypeCorruption,
	TypeInfrastructure,
	TypeStaffMisconduct,
	TypeOvercharging,
	TypeDocumentIssue,
	TypeFacilityHygiene,
	TypeSafetyHazard,
	TypeOtherComplaint,
}

// complaintTypeLabels maps complaint types to their Arabic labels
var complaintTypeLabels = map[ComplaintType]string{
	TypeServiceDelay:    "تأخر في إنجاز معاملة",
	TypePoorService:     "سوء الخدمة",
	TypeCorruption:      "فساد إداري",
	TypeInfrastructure:  "بنية تحتية",
	TypeStaffMisconduct: "سوء سلوك موظف",
	TypeOvercharging:    "رسوم زائدة",
	TypeDocumentIssue:   "مشكلة في وثيقة",
	TypeFacilityHygiene: "نظافة مرفق",
	TypeSafetyHazard:    "خطر على السلامة",
	TypeOtherComplaint:  "أخرى",
}

// IsValid reports whether the type is a member of the catalog
func (t ComplaintType) IsValid() bool {
	_, ok := complaintTypeLabels[t]
	return ok
}

// Label returns the human-readable Arabic label for the type
func (t ComplaintType) Label() string {
	return complaintTypeLabels[t]
}

// ParseComplaintType parses a type string, failing with a domain error
func ParseComplaintType(s string) (ComplaintType, error) {
	t := ComplaintType(s)
	if !t.IsValid() {
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown complaint type: "+s)
	}
	return t, nil
}

// Governorate represents a geographic governorate
type Governorate string

const (
	GovernorateDamascus    Governorate = "DAMASCUS"
	GovernorateRifDimashq  Governorate = "RIF_DIMASHQ"
	GovernorateAleppo      Governorate = "ALEPPO"
	GovernorateHoms        Governorate = "HOMS"
	GovernorateHama        Governorate = "HAMA"
	GovernorateLatakia     Governorate = "LATAKIA"
	GovernorateTartus      Governorate = "TARTUS"
	GovernorateIdlib       Governorate = "IDLIB"
	GovernorateDeirEzZor   Governorate = "DEIR_EZ_ZOR"
	GovernorateRaqqa       Governorate = "RAQQA"
	GovernorateHasakah     Governorate = "HASAKAH"
	GovernorateDaraa       Governorate = "DARAA"
	GovernorateSweida      Governorate = "SWEIDA"
	GovernorateQuneitra    Governorate = "QUNEITRA"
)

// governorateLabels maps governorates to their Arabic labels
var governorateLabels = map[Governorate]string{
	GovernorateDamascus:   "دمشق",
	GovernorateRifDimashq: "ريف دمشق",
	GovernorateAleppo:     "حلب",
	GovernorateHoms:       "حمص",
	GovernorateHama:       "حماة",
	GovernorateLatakia:    "اللاذقية",
	GovernorateTartus:     "طرطوس",
	GovernorateIdlib:      "إدلب",
	GovernorateDeirEzZor:  "دير الزور",
	GovernorateRaqqa:      "الرقة",
	GovernorateHasakah:    "الحسكة",
	GovernorateDaraa:      "درعا",
	GovernorateSweida:     "السويداء",
	GovernorateQuneitra:   "القنيطرة",
}

// Governorates lists all valid governorates
var Governorates = []Governorate{
	GovernorateDamascus, GovernorateRifDimashq, GovernorateAleppo,
	GovernorateHoms, GovernorateHama, GovernorateLatakia, GovernorateTartus,
	GovernorateIdlib, GovernorateDeirEzZor, GovernorateRaqqa,
	GovernorateHasakah, GovernorateDaraa, GovernorateSweida,
	GovernorateQuneitra,
}

// IsValid reports whether the governorate is a member of the catalog
func (g Governorate) IsValid() bool {
	_, ok := governorateLabels[g]
	return ok
}

// Label returns the human-readable Arabic label for the governorate
func (g Governorate) Label() string {
	return governorateLabels[g]
}

// ParseGovernorate parses a governorate string, failing with a domain error
func ParseGovernorate(s string) (Governorate, error) {
	g := Governorate(s)
	if !g.IsValid() {
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown governorate: "+s)
	}
	return g, nil
}

// Agency represents a government agency. Matching agency between an
// employee and a complaint is the sole multi-tenancy boundary.
type Agency string

const (
	AgencyHealth      Agency = "HEALTH"
	AgencyEducation   Agency = "EDUCATION"
	AgencyElectricity Agency = "ELECTRICITY"
	AgencyWater       Agency = "WATER"
	AgencyTransport   Agency = "TRANSPORT"
	AgencyInterior    Agency = "INTERIOR"
	AgencyFinance     Agency = "FINANCE"
	AgencyJustice     Agency = "JUSTICE"
	AgencyMunicipal   Agency = "MUNICIPAL"
	AgencyTelecom     Agency = "TELECOM"
)

// agencyLabels maps agencies to their Arabic labels
var agencyLabels = map[Agency]string{
	AgencyHealth:      "وزارة الصحة",
	AgencyEducation:   "وزارة التربية",
	AgencyElectricity: "مؤسسة الكهرباء",
	AgencyWater:       "مؤسسة المياه",
	AgencyTransport:   "وزارة النقل",
	AgencyInterior:    "وزارة الداخلية",
	AgencyFinance:     "وزارة المالية",
	AgencyJustice:     "وزارة العدل",
	AgencyMunicipal:   "البلدية",
	AgencyTelecom:     "مؤسسة الاتصالات",
}

// Agencies lists all valid agencies
var Agencies = []Agency{
	AgencyHealth, AgencyEducation, AgencyElectricity, AgencyWater,
	AgencyTransport, AgencyInterior, AgencyFinance, AgencyJustice,
	AgencyMunicipal, AgencyTelecom,
}

// IsValid reports whether the agency is a member of the catalog
func (a Agency) IsValid() bool {
	_, ok := agencyLabels[a]
	return ok
}

// Label returns the human-readable Arabic label for the agency
func (a Agency) Label() string {
	return agencyLabels[a]
}

// ParseAgency parses an agency string, failing with a domain error
func ParseAgency(s string) (Agency, error) {
	a := Agency(s)
	if !a.IsValid() {
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown government agency: "+s)
	}
	return a, nil
}
