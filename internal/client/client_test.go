package client_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdouchement/novatech/internal/client"
	"github.com/mdouchement/novatech/internal/database"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/server"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, quota int) (*client.Client, func()) {
	ioc := server.IOC{
		Version: "test",
		Store:   store.New(database.NewMemory(quota), store.Config{}),
	}
	ts := httptest.NewServer(server.EchoEngine(ioc))

	c, err := client.New(ts.URL, ts.Client())
	require.NoError(t, err)
	return c, ts.Close
}

func TestNew(t *testing.T) {
	_, err := client.New("localhost", http.DefaultClient)
	assert.EqualError(t, err, `invalid endpoint: "localhost"`)

	_, err = client.NewDefaultClient("http://localhost:5000")
	assert.NoError(t, err)
}

func TestRoundTrip(t *testing.T) {
	c, cleanup := setup(t, 0)
	defer cleanup()
	ctx := context.Background()

	projects, err := c.FetchProjects(ctx)
	assert.NoError(t, err)
	assert.Len(t, projects, 2)

	_, err = c.SaveProject(ctx, &model.Project{Title: "Orbit"})
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))

	login, err := c.AdminLogin(ctx, store.DefaultCredentials.Email, "wrong")
	assert.NoError(t, err)
	assert.False(t, login.Success)
	assert.Empty(t, c.BearerToken())

	login, err = c.AdminLogin(ctx, store.DefaultCredentials.Email, store.DefaultCredentials.Password)
	assert.NoError(t, err)
	assert.True(t, login.Success)
	assert.Equal(t, store.Token, c.BearerToken())

	id, err := c.SaveProject(ctx, &model.Project{Title: "Orbit", Tags: []string{"Go"}})
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	updated, err := c.SaveProject(ctx, &model.Project{Base: model.Base{ID: id}, Category: "Web"})
	assert.NoError(t, err)
	assert.Equal(t, id, updated)

	projects, err = c.FetchProjects(ctx)
	assert.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, &model.Project{
		Base:     model.Base{ID: id},
		Title:    "Orbit",
		Category: "Web",
		Tags:     []string{"Go"},
	}, projects[0])

	_, err = c.SaveTechItem(ctx, &model.TechItem{Name: "Zig", Category: model.CategoryLanguages})
	assert.NoError(t, err)
	items, err := c.FetchTechStack(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Zig", items[len(items)-1].Name)
	assert.NoError(t, c.DeleteTechItem(ctx, items[len(items)-1].ID))

	_, err = c.SaveService(ctx, &model.Service{Title: "Audits", Icon: model.Symbol("Shield")})
	assert.NoError(t, err)
	services, err := c.FetchServices(ctx)
	assert.NoError(t, err)
	assert.Equal(t, model.Symbol("Shield"), services[3].Icon)
	assert.NoError(t, c.DeleteService(ctx, services[3].ID))

	assert.NoError(t, c.DeleteProject(ctx, id))
	assert.NoError(t, c.DeleteProject(ctx, id))

	leadID, err := c.SubmitLead(ctx, &model.Lead{Name: "George", Email: "george@nowhere.lan", Message: "Hi"})
	assert.NoError(t, err)
	leads, err := c.FetchLeads(ctx)
	assert.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, leadID, leads[0].ID)
	assert.False(t, leads[0].CreatedAt.IsZero())
	assert.NoError(t, c.DeleteLead(ctx, leadID))

	uri, err := c.EncodeImage(ctx, bytes.NewBufferString("<svg></svg>"))
	assert.NoError(t, err)
	assert.Equal(t, model.AssetInlineImage, model.ParseAsset(uri).Kind)

	assert.NoError(t, c.AdminLogout(ctx))
	assert.Empty(t, c.BearerToken())

	c.SetBearerToken(store.Token)
	_, err = c.FetchLeads(ctx)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
	assert.EqualError(t, err, "Invalid login credentials.")
}

func TestQuotaError(t *testing.T) {
	c, cleanup := setup(t, 4096)
	defer cleanup()
	ctx := context.Background()

	_, err := c.AdminLogin(ctx, store.DefaultCredentials.Email, store.DefaultCredentials.Password)
	require.NoError(t, err)

	_, err = c.SaveProject(ctx, &model.Project{Title: "Huge", Description: string(bytes.Repeat([]byte("a"), 8192))})
	assert.True(t, store.IsQuotaExceeded(err))
}

func TestUploadTooLarge(t *testing.T) {
	c, cleanup := setup(t, 0)
	defer cleanup()
	ctx := context.Background()

	_, err := c.AdminLogin(ctx, store.DefaultCredentials.Email, store.DefaultCredentials.Password)
	require.NoError(t, err)

	_, err = c.EncodeImage(ctx, bytes.NewReader(make([]byte, server.DefaultMaxUploadSize+1)))
	assert.True(t, client.IsStatus(err, http.StatusRequestEntityTooLarge))
}

func TestRecordRoutes(t *testing.T) {
	var paths, bodies []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		paths = append(paths, r.Method+" "+r.URL.EscapedPath())
		bodies = append(bodies, string(body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"_id":"a/b%c"}`))
	}))
	defer ts.Close()

	c, err := client.New(ts.URL+"/cms", ts.Client())
	require.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, c.DeleteProject(ctx, "a/b%c"))
	id, err := c.SaveService(ctx, &model.Service{Base: model.Base{ID: "a/b%c"}, Color: "c", Icon: model.Symbol("Bot")})
	assert.NoError(t, err)
	assert.Equal(t, "a/b%c", id)

	assert.Equal(t, []string{
		"DELETE /cms/api/admin/projects/a%2Fb%25c",
		"PUT /cms/api/admin/services/a%2Fb%25c",
	}, paths)
	require.Len(t, bodies, 2)
	assert.JSONEq(t, `{"icon":"Bot","color":"c"}`, bodies[1])

	for _, id := range []string{"", ".", ".."} {
		assert.EqualError(t, c.DeleteLead(ctx, id), fmt.Sprintf("invalid id %q", id))
		_, err = c.SaveTechItem(ctx, &model.TechItem{Base: model.Base{ID: id}, Name: "Zig"})
		if id == "" {
			// Without id the item is created.
			assert.NoError(t, err)
			continue
		}
		assert.EqualError(t, err, fmt.Sprintf("invalid id %q", id))
	}
	assert.Len(t, paths, 3)
	assert.Equal(t, "POST /cms/api/admin/techstack", paths[2])
}
