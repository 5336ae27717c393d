package ledger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/fieldlog/internal/model"
)

func apply(t *testing.T, d model.Document, muts ...model.Mutation) model.Document {
	t.Helper()

	for _, m := range muts {
		var err error

		d, err = m(d.Clone())
		require.NoError(t, err)
	}

	return d
}

func report(id, tech, vehicle string) model.WorkReport {
	return model.WorkReport{
		ID:         id,
		Technician: tech,
		ProjectNum: "10001",
		Date:       "2024-05-02",
		Vehicle:    vehicle,
		ImageNames: []string{},
	}
}

func TestSaveReport(t *testing.T) {
	d := model.DefaultDocument()

	d = apply(t, d, SaveReport(report("", "someone else", "Van"), "Juan Pérez"))
	require.Len(t, d.Reports, 1)

	first := d.Reports[0]
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "Juan Pérez", first.Technician)

	d = apply(t, d, SaveReport(report("second", "", "Van"), "Juan Pérez"))
	assert.Equal(t, "second", d.Reports[0].ID, "new reports go first")

	edited := first
	edited.Description = "edited"
	d = apply(t, d, SaveReport(edited, "María Garcia"))

	require.Len(t, d.Reports, 2)
	assert.Equal(t, "edited", d.Reports[1].Description)
	assert.Equal(t, "María Garcia", d.Reports[1].Technician)
}

func TestSaveReport_Validation(t *testing.T) {
	tests := []struct {
		name    string
		report  model.WorkReport
		tech    string
		wantErr error
	}{
		{name: "short project", report: model.WorkReport{ProjectNum: "1234", Vehicle: "Van"}, tech: "A", wantErr: ErrInvalidProject},
		{name: "letters", report: model.WorkReport{ProjectNum: "12a45", Vehicle: "Van"}, tech: "A", wantErr: ErrInvalidProject},
		{name: "long project", report: model.WorkReport{ProjectNum: "123456", Vehicle: "Van"}, tech: "A", wantErr: ErrInvalidProject},
		{name: "no vehicle", report: model.WorkReport{ProjectNum: "12345", Vehicle: "  "}, tech: "A", wantErr: ErrVehicleRequired},
		{name: "no technician", report: model.WorkReport{ProjectNum: "12345", Vehicle: "Van"}, tech: "", wantErr: ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SaveReport(tt.report, tt.tech)(model.DefaultDocument())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeleteReport(t *testing.T) {
	d := model.DefaultDocument()
	d.Reports = []model.WorkReport{report("a", "X", "Van"), report("b", "X", "Van")}

	d = apply(t, d, DeleteReport("a"))
	require.Len(t, d.Reports, 1)
	assert.Equal(t, "b", d.Reports[0].ID)

	_, err := DeleteReport("missing")(d)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTechnicians(t *testing.T) {
	d := apply(t, model.DefaultDocument(), AddTechnician(" Ana ", ""), AddTechnician("Ben", "pw"))

	ana, ok := d.Technician("Ana")
	require.True(t, ok)
	assert.Equal(t, model.DefaultTechnicianPassword, ana.Password)
	assert.NotEmpty(t, ana.ID)

	ben, _ := d.Technician("Ben")
	assert.Equal(t, "pw", ben.Password)

	_, err := AddTechnician("Ana", "")(d)
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = AddTechnician("   ", "")(d)
	assert.ErrorIs(t, err, ErrEmptyName)

	d = apply(t, d, RemoveTechnician("Ben"))
	_, ok = d.Technician("Ben")
	assert.False(t, ok)

	_, err = RemoveTechnician("Ben")(d)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRenameTechnician_Cascades(t *testing.T) {
	d := model.DefaultDocument()
	d.Reports = []model.WorkReport{
		report("1", "Juan Pérez", "Van"),
		report("2", "Carlos Ruiz", "Van"),
		report("3", "Juan Pérez", "Car"),
	}

	got := apply(t, d, RenameTechnician("Juan Pérez", "Juan P.", ""))

	want := d.Clone()
	want.Technicians[0].Name = "Juan P."
	want.Reports[0].Technician = "Juan P."
	want.Reports[2].Technician = "Juan P."

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rename mismatch (-want +got):\n%s", diff)
	}

	got = apply(t, got, RenameTechnician("Juan P.", "Juan P.", "new"))
	assert.Equal(t, "new", got.Technicians[0].Password)

	_, err := RenameTechnician("Juan P.", "Carlos Ruiz", "")(got)
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = RenameTechnician("nobody", "x", "")(got)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = RenameTechnician("Juan P.", "", "")(got)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestProjects(t *testing.T) {
	d := model.DefaultDocument()
	d.Reports = []model.WorkReport{report("1", "X", "Van")}

	d = apply(t, d,
		AddProject("40004 - Nueva"),
		RenameProject("10001 - Mantenimiento Central", "10001 - Central"),
		RemoveProject("20002 - Reforma Oficina"),
	)

	assert.Equal(t, []string{"10001 - Central", "30003 - Avería Nave B", "40004 - Nueva"}, d.Projects)
	assert.Equal(t, "10001", d.Reports[0].ProjectNum)

	_, err := AddProject("40004 - Nueva")(d)
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = RemoveProject("99999 - Nope")(d)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImportProjects(t *testing.T) {
	d := model.DefaultDocument()

	text := "50005;Almacén\r\n\r\n  10001 - Mantenimiento Central  \n60006,Taller\n50005;Almacén\n"
	d = apply(t, d, ImportProjects(text))

	assert.Equal(t, []string{
		"10001 - Mantenimiento Central",
		"20002 - Reforma Oficina",
		"30003 - Avería Nave B",
		"50005 - Almacén",
		"60006 - Taller",
	}, d.Projects)
}

func TestRenameVehicle_Cascades(t *testing.T) {
	d := model.DefaultDocument()
	d.Reports = []model.WorkReport{
		report("1", "X", "Furgoneta 1 (1234-BBC)"),
		report("2", "X", "Coche Taller (5678-DEF)"),
	}

	d = apply(t, d, RenameVehicle("Furgoneta 1 (1234-BBC)", "Furgoneta 1 (0000-ZZZ)"))

	assert.Equal(t, "Furgoneta 1 (0000-ZZZ)", d.Vehicles[0])
	assert.Equal(t, "Furgoneta 1 (0000-ZZZ)", d.Reports[0].Vehicle)
	assert.Equal(t, "Coche Taller (5678-DEF)", d.Reports[1].Vehicle)

	d = apply(t, d, AddVehicle("Moto"), RemoveVehicle("Coche Taller (5678-DEF)"))
	assert.Equal(t, []string{"Furgoneta 1 (0000-ZZZ)", "Furgoneta 2 (9012-GHI)", "Moto"}, d.Vehicles)
	assert.Equal(t, "Coche Taller (5678-DEF)", d.Reports[1].Vehicle)
}

func TestUpdateSettings(t *testing.T) {
	d := apply(t, model.DefaultDocument(), UpdateSettings("s3cret", ` {"endpoint":"relay:7070"} `))
	assert.Equal(t, "s3cret", d.AdminPassword)
	assert.Equal(t, `{"endpoint":"relay:7070"}`, d.ConnectionConfig)

	d = apply(t, d, UpdateSettings("", ""))
	assert.Equal(t, model.DefaultAdminPassword, d.AdminPassword)
	assert.Empty(t, d.ConnectionConfig)
}

func TestAuthenticate(t *testing.T) {
	d := model.DefaultDocument()

	assert.NoError(t, AuthenticateAdmin(d, "admin"))
	assert.ErrorIs(t, AuthenticateAdmin(d, "wrong"), ErrInvalidCredentials)

	d.AdminPassword = ""
	assert.NoError(t, AuthenticateAdmin(d, model.DefaultAdminPassword))

	tech, err := AuthenticateTechnician(d, "Carlos Ruiz", "123")
	require.NoError(t, err)
	assert.Equal(t, "3", tech.ID)

	_, err = AuthenticateTechnician(d, "Carlos Ruiz", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = AuthenticateTechnician(d, "Nobody", "123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFilter(t *testing.T) {
	reports := []model.WorkReport{
		{ID: "1", Technician: "Ana", ProjectNum: "10001", Date: "2024-05-01"},
		{ID: "2", Technician: "Ben", ProjectNum: "10001", Date: "2024-05-02"},
		{ID: "3", Technician: "Ana", ProjectNum: "20002", Date: "2024-05-02"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "zero", filter: Filter{}, want: []string{"1", "2", "3"}},
		{name: "technician", filter: Filter{Technician: "Ana"}, want: []string{"1", "3"}},
		{name: "project entry", filter: Filter{Project: "10001 - Mantenimiento Central"}, want: []string{"1", "2"}},
		{name: "project code", filter: Filter{Project: "20002"}, want: []string{"3"}},
		{name: "date", filter: Filter{Date: "2024-05-02"}, want: []string{"2", "3"}},
		{name: "combined", filter: Filter{Technician: "Ana", Date: "2024-05-02"}, want: []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, r := range tt.filter.Apply(reports) {
				got = append(got, r.ID)
			}

			assert.Equal(t, tt.want, got)
		})
	}

	assert.True(t, Filter{}.IsZero())
}

func TestRecentReports(t *testing.T) {
	d := model.DefaultDocument()
	for _, id := range []string{"6", "5", "4", "3", "2", "1"} {
		d.Reports = append(d.Reports, report(id, "Ana", "Van"))
	}

	d.Reports = append(d.Reports, report("other", "Ben", "Van"))

	got := RecentReports(d, "Ana", 5)
	require.Len(t, got, 5)
	assert.Equal(t, "6", got[0].ID)
	assert.Empty(t, RecentReports(d, "Nobody", 5))
}
