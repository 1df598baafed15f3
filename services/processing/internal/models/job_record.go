package models

// Platform is a source job board.
type Platform string

const (
	PlatformLinkedIn     Platform = "LinkedIn"
	PlatformComputrabajo Platform = "Computrabajo"
	PlatformIndeed       Platform = "Indeed"
	PlatformMagneto365   Platform = "Magneto365"
	PlatformElempleo     Platform = "Elempleo"
	PlatformMasEmpleo    Platform = "MasEmpleo"
)

type Seniority string

const (
	SeniorityJunior     Seniority = "Junior"
	SenioritySemiSenior Seniority = "Semi-senior"
	SenioritySenior     Seniority = "Senior"
)

type Area string

const (
	AreaIT          Area = "IT"
	AreaDataScience Area = "Ciencia de Datos"
	AreaDevOps      Area = "DevOps"
	AreaQA          Area = "QA"
	AreaSecurity    Area = "Seguridad"
	AreaNetworking  Area = "Redes"
)

type Modality string

const (
	ModalityOnSite Modality = "Presencial"
	ModalityRemote Modality = "Remoto"
	ModalityHybrid Modality = "Híbrido"
)

type ContractType string

const (
	ContractUnspecified ContractType = "No especificado"
	ContractIndefinite  ContractType = "Indefinido"
	ContractFixedTerm   ContractType = "Término fijo"
	ContractServices    ContractType = "Prestación de servicios"
	ContractPerJob      ContractType = "Obra labor"
	ContractTemporary   ContractType = "Temporal"
)

type WorkSchedule string

const (
	ScheduleFullTime  WorkSchedule = "Tiempo completo"
	SchedulePartTime  WorkSchedule = "Medio tiempo"
	ScheduleFreelance WorkSchedule = "Freelance"
	ScheduleHourly    WorkSchedule = "Por horas"
)

// Education is the minimum credential a posting asks for; the zero value means none was found.
type Education string

const (
	EducationNone         Education = ""
	EducationSecondary    Education = "Bachillerato"
	EducationTechnician   Education = "Técnico"
	EducationTechnologist Education = "Tecnólogo"
	EducationUndergrad    Education = "Pregrado"
	EducationGraduate     Education = "Posgrado"
	EducationDoctorate    Education = "Doctorado"
)

type SalaryPeriod string

const (
	PeriodNone    SalaryPeriod = ""
	PeriodMonthly SalaryPeriod = "Mensual"
)

type Status string

const StatusActive Status = "Activa"

const (
	DefaultSector      = "Tecnología"
	DefaultCompanySize = "No especificado"
	DefaultCurrency    = "COP"
	DateLayout         = "2006-01-02"
)

// CanonicalJobRecord is the normalized posting. Nil pointers mark absent values.
type CanonicalJobRecord struct {
	ID             string   `json:"id"`
	SourcePlatform Platform `json:"source_platform"`
	PlatformJobID  string   `json:"platform_job_id"`
	ListingURL     string   `json:"listing_url"`

	CompanyName   string `json:"company_name"`
	Sector        string `json:"sector"`
	CompanySize   string `json:"company_size"`
	ExactLocation string `json:"exact_location"`
	Verified      bool   `json:"verified"`

	Title          string       `json:"title"`
	SeniorityLevel Seniority    `json:"seniority_level"`
	Area           Area         `json:"area"`
	Modality       Modality     `json:"modality"`
	ContractType   ContractType `json:"contract_type"`
	WorkSchedule   WorkSchedule `json:"work_schedule"`

	SalaryMin    *float64     `json:"salary_min"`
	SalaryMax    *float64     `json:"salary_max"`
	SalaryPeriod SalaryPeriod `json:"salary_period"`
	Currency     string       `json:"currency"`
	Benefits     []string     `json:"benefits"`

	YearsExperience   *int      `json:"years_experience"`
	MinEducation      Education `json:"min_education"`
	TechnicalSkills   []string  `json:"technical_skills"`
	SoftSkills        []string  `json:"soft_skills"`
	LanguagesRequired []string  `json:"languages_required"`

	PostingDate string `json:"posting_date"`
	ScrapeDate  string `json:"scrape_date"`
	Status      Status `json:"status"`
}

// IdentityKey is the dedup key of a record: platform and job id when the job id
// is known, else the listing URL. Empty when neither is present.
func (r CanonicalJobRecord) IdentityKey() string {
	if r.PlatformJobID != "" {
		return string(r.SourcePlatform) + "|" + r.PlatformJobID
	}
	return r.ListingURL
}

// ValidationResult pairs a record with the blocking errors and advisory warnings found for it.
type ValidationResult struct {
	Record   CanonicalJobRecord `json:"record"`
	IsValid  bool               `json:"is_valid"`
	Errors   []string           `json:"errors"`
	Warnings []string           `json:"warnings"`
}

func Float(v float64) *float64 {
	return &v
}

func Int(v int) *int {
	return &v
}
