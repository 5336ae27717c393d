package model

const (
	// DefaultAdminPassword is used when a document carries no admin password.
	DefaultAdminPassword = "admin"

	// DefaultTechnicianPassword is assigned to technicians added without one.
	DefaultTechnicianPassword = "1234"
)

// TechUser is a technician that can log in and file reports.
type TechUser struct {
	// ID is the unique identifier of the technician
	ID string `json:"id"`

	// Name is the display name, copied into every report the technician files
	Name string `json:"name"`

	// Password is the technician's shared login secret
	Password string `json:"password"`
}

// Expenses is the expense breakdown attached to a work report.
type Expenses struct {
	Food       float64 `json:"food"`
	Gas        float64 `json:"gas"`
	Parking    float64 `json:"parking"`
	Others     float64 `json:"others"`
	OthersDesc string  `json:"othersDesc"`
}

// WorkReport is a single work report filed by a technician.
type WorkReport struct {
	// ID is the unique identifier of the report
	ID string `json:"id"`

	// Technician is the name (not the id) of the technician who filed it
	Technician string `json:"technician"`

	// ProjectNum is the 5-digit project code
	ProjectNum string `json:"projectNum"`

	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`

	// Vehicle is a copy of the vehicle string from the vehicle list
	Vehicle  string `json:"vehicle"`
	IsDriver bool   `json:"isDriver"`

	Expenses   Expenses `json:"expenses"`
	ImageNames []string `json:"imageNames"`
}

// Document is the single application document: every reference list, every
// report and the shared settings.
type Document struct {
	Technicians []TechUser   `json:"technicians"`
	Projects    []string     `json:"projects"`
	Vehicles    []string     `json:"vehicles"`
	Reports     []WorkReport `json:"reports"`

	// AdminPassword is the shared administrator secret
	AdminPassword string `json:"adminPassword"`

	// ConnectionConfig is the pasted remote mirror configuration; empty means
	// local-only mode
	ConnectionConfig string `json:"connectionConfig,omitempty"`
}

// Mutation computes the next document from the current one. Returning an
// error leaves the current document untouched.
type Mutation func(Document) (Document, error)

// DefaultDocument returns the built-in document used on first run.
func DefaultDocument() Document {
	return Document{
		Technicians: []TechUser{
			{ID: "1", Name: "Juan Pérez", Password: "123"},
			{ID: "2", Name: "María Garcia", Password: "123"},
			{ID: "3", Name: "Carlos Ruiz", Password: "123"},
		},
		Projects: []string{
			"10001 - Mantenimiento Central",
			"20002 - Reforma Oficina",
			"30003 - Avería Nave B",
		},
		Vehicles: []string{
			"Furgoneta 1 (1234-BBC)",
			"Coche Taller (5678-DEF)",
			"Furgoneta 2 (9012-GHI)",
		},
		Reports:       []WorkReport{},
		AdminPassword: DefaultAdminPassword,
	}
}

// Clone returns a deep copy of the document. Nil lists come back empty.
func (d Document) Clone() Document {
	out := d

	out.Technicians = append(make([]TechUser, 0, len(d.Technicians)), d.Technicians...)
	out.Projects = append(make([]string, 0, len(d.Projects)), d.Projects...)
	out.Vehicles = append(make([]string, 0, len(d.Vehicles)), d.Vehicles...)

	out.Reports = make([]WorkReport, len(d.Reports))
	for i, r := range d.Reports {
		out.Reports[i] = r.Clone()
	}

	return out
}

// Clone returns a deep copy of the report.
func (r WorkReport) Clone() WorkReport {
	out := r
	out.ImageNames = append(make([]string, 0, len(r.ImageNames)), r.ImageNames...)

	return out
}

// Technician returns the technician with the given name.
func (d Document) Technician(name string) (TechUser, bool) {
	for _, t := range d.Technicians {
		if t.Name == name {
			return t, true
		}
	}

	return TechUser{}, false
}
