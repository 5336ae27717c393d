package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()

	assert.Len(t, doc.Technicians, 3)
	assert.Len(t, doc.Projects, 3)
	assert.Len(t, doc.Vehicles, 3)
	assert.NotNil(t, doc.Reports)
	assert.Empty(t, doc.Reports)
	assert.Equal(t, DefaultAdminPassword, doc.AdminPassword)
	assert.Empty(t, doc.ConnectionConfig)
}

func TestDocument_Clone(t *testing.T) {
	doc := DefaultDocument()
	doc.Reports = []WorkReport{{ID: "r1", ImageNames: []string{"a.jpg"}}}

	clone := doc.Clone()
	clone.Technicians[0].Name = "changed"
	clone.Projects[0] = "changed"
	clone.Reports[0].ImageNames[0] = "changed.jpg"

	assert.Equal(t, "Juan Pérez", doc.Technicians[0].Name)
	assert.Equal(t, "10001 - Mantenimiento Central", doc.Projects[0])
	assert.Equal(t, "a.jpg", doc.Reports[0].ImageNames[0])
}

func TestDocument_CloneNilLists(t *testing.T) {
	clone := Document{}.Clone()

	data, err := json.Marshal(clone)
	require.NoError(t, err)

	assert.JSONEq(t, `{"technicians":[],"projects":[],"vehicles":[],"reports":[],"adminPassword":""}`, string(data))
}

func TestDocument_Technician(t *testing.T) {
	doc := DefaultDocument()

	tech, ok := doc.Technician("María Garcia")
	require.True(t, ok)
	assert.Equal(t, "2", tech.ID)

	_, ok = doc.Technician("nobody")
	assert.False(t, ok)
}
