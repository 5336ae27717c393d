package migrate

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/fieldlog/internal/model"
)

func TestMigrate_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "null", "{not json", "[1,2,3]", `"text"`} {
		t.Run(raw, func(t *testing.T) {
			if diff := cmp.Diff(model.DefaultDocument(), Migrate([]byte(raw))); diff != "" {
				t.Errorf("Migrate(%q) mismatch (-want +got):\n%s", raw, diff)
			}
		})
	}
}

func TestMigrate_LegacyTechnicians(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		password string
	}{
		{
			name:     "no legacy password",
			input:    `{"technicians":["Ana","Ben"]}`,
			password: LegacyTechnicianPassword,
		},
		{
			name:     "legacy password",
			input:    `{"technicians":["Ana","Ben"],"techPassword":"s3cret"}`,
			password: "s3cret",
		},
		{
			name:     "empty legacy password",
			input:    `{"technicians":["Ana","Ben"],"techPassword":""}`,
			password: LegacyTechnicianPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Migrate([]byte(tt.input))

			want := []model.TechUser{
				{ID: "migrated-0", Name: "Ana", Password: tt.password},
				{ID: "migrated-1", Name: "Ben", Password: tt.password},
			}
			if diff := cmp.Diff(want, doc.Technicians); diff != "" {
				t.Errorf("technicians mismatch (-want +got):\n%s", diff)
			}

			assert.Equal(t, model.DefaultDocument().Projects, doc.Projects)
			assert.Equal(t, model.DefaultAdminPassword, doc.AdminPassword)
		})
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	inputs := map[string]string{
		"defaults": ``,
		"legacy":   `{"technicians":["Ana","Ben"],"techPassword":"x","adminPassword":"root"}`,
		"canonical": `{
			"technicians":[{"id":"7","name":"Eva","password":"p"}],
			"projects":["12345 - Obra"],
			"vehicles":[],
			"reports":[{"id":"r1","technician":"Eva","projectNum":"12345","vehicle":"Van","expenses":{"food":12.5}}],
			"adminPassword":"root",
			"connectionConfig":"{\"endpoint\":\"localhost:7070\"}"
		}`,
		"partial": `{"vehicles":["Van"],"reports":null}`,
	}

	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			once := Migrate([]byte(raw))

			data, err := json.Marshal(once)
			require.NoError(t, err)

			twice := Migrate(data)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("Migrate is not idempotent (-once +twice):\n%s", diff)
			}
		})
	}
}

func TestMigrate_SavedFieldsWin(t *testing.T) {
	doc := Migrate([]byte(`{"projects":["99999 - Only"],"vehicles":[],"adminPassword":"root"}`))

	assert.Equal(t, []string{"99999 - Only"}, doc.Projects)
	assert.Equal(t, []string{}, doc.Vehicles)
	assert.Equal(t, "root", doc.AdminPassword)
	assert.Equal(t, model.DefaultDocument().Technicians, doc.Technicians)
}

func TestMigrate_EmptyAdminPasswordFallsBack(t *testing.T) {
	doc := Migrate([]byte(`{"adminPassword":""}`))
	assert.Equal(t, model.DefaultAdminPassword, doc.AdminPassword)

	doc = Migrate([]byte(`{"adminPassword":42}`))
	assert.Equal(t, model.DefaultAdminPassword, doc.AdminPassword)
}

func TestMigrate_EmptyTechnicianList(t *testing.T) {
	doc := Migrate([]byte(`{"technicians":[]}`))

	assert.NotNil(t, doc.Technicians)
	assert.Empty(t, doc.Technicians)
}

func TestMigrate_MalformedFieldsKeepDefaults(t *testing.T) {
	doc := Migrate([]byte(`{"projects":42,"vehicles":"van","technicians":{"a":1},"reports":[{"id":"r1"}]}`))

	defaults := model.DefaultDocument()
	assert.Equal(t, defaults.Projects, doc.Projects)
	assert.Equal(t, defaults.Vehicles, doc.Vehicles)
	assert.Equal(t, defaults.Technicians, doc.Technicians)
	require.Len(t, doc.Reports, 1)
	assert.NotNil(t, doc.Reports[0].ImageNames)
}

func TestMigrate_MixedLegacyListUnsupported(t *testing.T) {
	doc := Migrate([]byte(`{"technicians":["Ana",{"id":"2","name":"Ben","password":"p"}]}`))
	assert.Equal(t, model.DefaultDocument().Technicians, doc.Technicians)

	_, err := technicians(json.RawMessage(`["Ana",{"id":"2"}]`), "tech")
	assert.ErrorIs(t, err, ErrMixedTechnicians)
}

func TestMigrate_ConnectionConfigAlias(t *testing.T) {
	doc := Migrate([]byte(`{"firebaseConfig":"{\"endpoint\":\"a:1\"}"}`))
	assert.Equal(t, `{"endpoint":"a:1"}`, doc.ConnectionConfig)

	doc = Migrate([]byte(`{"firebaseConfig":"old","connectionConfig":"new"}`))
	assert.Equal(t, "new", doc.ConnectionConfig)
}
