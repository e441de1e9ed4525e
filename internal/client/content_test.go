package client_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdouchement/novatech/internal/client"
	"github.com/mdouchement/novatech/internal/database"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDelete(t *testing.T) {
	s := store.New(database.NewMemory(0), store.Config{})
	ctx := context.Background()

	id, err := client.Save(ctx, s, model.TechStack, []byte(`{"name":"Zig","category":"Languages","icon":"https://cdn.example.com/zig.svg"}`))
	require.NoError(t, err)

	items, err := s.FetchTechStack(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, items[20].ID)
	assert.Equal(t, model.AssetRemoteURL, items[20].Icon.Kind)

	assert.NoError(t, client.Delete(ctx, s, model.TechStack, id))
	items, err = s.FetchTechStack(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 20)

	_, err = client.Save(ctx, s, model.Projects, []byte(`{"title":`))
	assert.Error(t, err)

	_, err = client.Save(ctx, s, model.Leads, []byte(`{"name":"George","email":" "}`))
	assert.EqualError(t, err, "no email provided")
	leads, err := s.FetchLeads(ctx)
	require.NoError(t, err)
	assert.Empty(t, leads)

	leadID, err := client.Save(ctx, s, model.Leads, []byte(`{"name":"George","email":"george@nowhere.lan","message":"Hi"}`))
	assert.NoError(t, err)
	assert.NoError(t, client.Delete(ctx, s, model.Leads, leadID))

	assert.EqualError(t, client.Delete(ctx, s, model.Collection("users"), "1"), "unknown collection users")
}

func TestUpload(t *testing.T) {
	s := store.New(database.NewMemory(0), store.Config{})
	ctx := context.Background()
	dir := t.TempDir()

	small := filepath.Join(dir, "logo.svg")
	require.NoError(t, os.WriteFile(small, []byte("<svg></svg>"), 0600))

	uri, err := client.Upload(ctx, s, small)
	assert.NoError(t, err)
	assert.Equal(t, "data:image/svg+xml;base64,PHN2Zz48L3N2Zz4=", uri)

	huge := filepath.Join(dir, "huge.png")
	require.NoError(t, os.WriteFile(huge, make([]byte, client.MaxImageSize+1), 0600))

	_, err = client.Upload(ctx, s, huge)
	assert.EqualError(t, err, "image exceeds 2097152 bytes")
}

func TestQuery(t *testing.T) {
	s := store.New(database.NewMemory(0), store.Config{})
	ctx := context.Background()

	v, err := client.Query(ctx, s, "SELECT count(*) FROM techStack WHERE Category = 'Frontend'")
	assert.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = client.Query(ctx, s, "SELECT * FROM techstack WHERE Category = 'Databases' ORDER BY Name LIMIT 1")
	assert.NoError(t, err)
	items := v.([]*model.TechItem)
	require.Len(t, items, 1)
	assert.Equal(t, "MongoDB", items[0].Name)

	v, err = client.Query(ctx, s, "SELECT Title FROM services WHERE Title LIKE 'custom%'")
	assert.NoError(t, err)
	assert.Equal(t, []map[string]any{{"Title": "Custom Web Apps"}}, v)

	_, err = client.Query(ctx, s, "SELECT * FROM users")
	assert.EqualError(t, err, "unknown tablename: users")
}
