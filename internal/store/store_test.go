package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mdouchement/novatech/internal/database"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ store.Content = (*store.Store)(nil)

func setup() (*store.Store, database.Client) {
	db := database.NewMemory(0)
	return store.New(db, store.Config{}), db
}

func TestSeedDefaults(t *testing.T) {
	s, db := setup()
	ctx := context.Background()

	projects, err := s.FetchProjects(ctx)
	assert.NoError(t, err)
	assert.Equal(t, model.SeedProjects(), projects)

	services, err := s.FetchServices(ctx)
	assert.NoError(t, err)
	assert.Len(t, services, 3)

	stack, err := s.FetchTechStack(ctx)
	assert.NoError(t, err)
	assert.Len(t, stack, 20)

	leads, err := s.FetchLeads(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)

	keys, err := db.Keys()
	assert.NoError(t, err)
	assert.Empty(t, keys, "reads must not persist anything")
}

func TestSaveOrdering(t *testing.T) {
	s, _ := setup()
	ctx := context.Background()

	p1, err := s.SaveProject(ctx, &model.Project{Title: "P1"})
	assert.NoError(t, err)
	p2, err := s.SaveProject(ctx, &model.Project{Title: "P2"})
	assert.NoError(t, err)

	projects, err := s.FetchProjects(ctx)
	assert.NoError(t, err)
	require.Len(t, projects, 4)
	assert.Equal(t, p2, projects[0].ID)
	assert.Equal(t, p1, projects[1].ID)
	assert.Equal(t, "1", projects[2].ID)
	assert.Equal(t, "2", projects[3].ID)

	t1, err := s.SaveTechItem(ctx, &model.TechItem{Name: "T1", Category: model.CategoryBackend})
	assert.NoError(t, err)
	t2, err := s.SaveTechItem(ctx, &model.TechItem{Name: "T2", Category: model.CategoryBackend})
	assert.NoError(t, err)

	stack, err := s.FetchTechStack(ctx)
	assert.NoError(t, err)
	require.Len(t, stack, 22)
	assert.Equal(t, "t1", stack[0].ID)
	assert.Equal(t, t1, stack[20].ID)
	assert.Equal(t, t2, stack[21].ID)

	s1, err := s.SaveService(ctx, &model.Service{Title: "S1"})
	assert.NoError(t, err)

	services, err := s.FetchServices(ctx)
	assert.NoError(t, err)
	require.Len(t, services, 4)
	assert.Equal(t, s1, services[3].ID)
}

func TestSaveFreshID(t *testing.T) {
	s, _ := setup()
	ctx := context.Background()

	ids := map[string]bool{"1": true, "2": true, "3": true}
	for i := 0; i < 50; i++ {
		id, err := s.SaveService(ctx, &model.Service{Title: fmt.Sprint(i)})
		assert.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.False(t, ids[id], "id %s reused", id)
		ids[id] = true
	}
}

func TestSaveDoesNotAlterCaller(t *testing.T) {
	s, _ := setup()
	ctx := context.Background()

	project := &model.Project{Title: "P1"}
	id, err := s.SaveProject(ctx, project)
	assert.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Empty(t, project.ID)

	projects, err := s.FetchProjects(ctx)
	assert.NoError(t, err)
	projects[0].Title = "altered"

	projects, err = s.FetchProjects(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "P1", projects[0].Title)
}

func TestUpsertMerge(t *testing.T) {
	s, _ := setup()
	ctx := context.Background()

	id, err := s.SaveProject(ctx, &model.Project{
		Title:       "Nexus",
		Category:    "AI",
		Description: "Agents",
		Image:       model.URL("https://cdn.example.com/nexus.png"),
		Tags:        []string{"Go", "Storm"},
	})
	require.NoError(t, err)

	updated, err := s.SaveProject(ctx, &model.Project{Base: model.Base{ID: id}, Title: "Nexus v2"})
	assert.NoError(t, err)
	assert.Equal(t, id, updated)

	projects, err := s.FetchProjects(ctx)
	assert.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, &model.Project{
		Base:        model.Base{ID: id},
		Title:       "Nexus v2",
		Category:    "AI",
		Description: "Agents",
		Image:       model.URL("https://cdn.example.com/nexus.png"),
		Tags:        []string{"Go", "Storm"},
	}, projects[0])

	// Seeds can be updated too.
	_, err = s.SaveProject(ctx, &model.Project{Base: model.Base{ID: "2"}, Tags: []string{}})
	assert.NoError(t, err)

	projects, err = s.FetchProjects(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "FinStream Analytics", projects[2].Title)
	assert.Empty(t, projects[2].Tags)
}

func TestSaveUnknownID(t *testing.T) {
	s, _ := setup()
	ctx := context.Background()

	id, err := s.SaveService(ctx, &model.Service{Base: model.Base{ID: "404"}, Title: "ghost"})
	assert.NoError(t, err)
	assert.Equal(t, "404", id)

	services, err := s.FetchServices(ctx)
	assert.NoError(t, err)
	assert.Equal(t, model.SeedServices(), services)
}

func TestPatchClearsFields(t *testing.T) {
	s, _ := setup()
	ctx := context.Background()

	id, err := s.PatchService(ctx, &model.Service{Base: model.Base{ID: "1"}, Color: "c"}, "Description", "Color")
	assert.NoError(t, err)
	assert.Equal(t, "1", id)

	services, err := s.FetchServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.Service{
		Base:  model.Base{ID: "1"},
		Title: "Agentic AI Systems",
		Icon:  model.Symbol("Bot"),
		Color: "c",
	}, services[0])

	_, err = s.PatchProject(ctx, &model.Project{Base: model.Base{ID: "1"}}, "Image", "Tags")
	assert.NoError(t, err)
	projects, err := s.FetchProjects(ctx)
	require.NoError(t, err)
	assert.True(t, projects[0].Image.IsZero())
	assert.Nil(t, projects[0].Tags)
	assert.Equal(t, "Nexus AI Agent Platform", projects[0].Title)

	// Nothing to merge.
	_, err = s.PatchTechItem(ctx, &model.TechItem{Base: model.Base{ID: "t1"}})
	assert.NoError(t, err)
	stack, err := s.FetchTechStack(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Java", stack[0].Name)

	_, err = s.PatchTechItem(ctx, &model.TechItem{Base: model.Base{ID: "t1"}}, "Base")
	assert.EqualError(t, err, "could not patch unknown field Base in techStack")
	_, err = s.PatchTechItem(ctx, &model.TechItem{Base: model.Base{ID: "t1"}}, "Rank")
	assert.EqualError(t, err, "could not patch unknown field Rank in techStack")
}

func TestNullCollection(t *testing.T) {
	s, db := setup()
	ctx := context.Background()

	require.NoError(t, db.Set(model.Projects.Key(), []byte("null")))

	projects, err := s.FetchProjects(ctx)
	assert.NoError(t, err)
	assert.Equal(t, model.SeedProjects(), projects)

	require.NoError(t, db.Set(model.Leads.Key(), []byte("null")))

	leads, err := s.FetchLeads(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}

func TestReadYourWrites(t *testing.T) {
	s, _ := setup()
	ctx := context.Background()

	_, err := s.SaveService(ctx, &model.Service{Title: "X", Description: "Y", Icon: model.Symbol("Z"), Color: "W"})
	assert.NoError(t, err)

	services, err := s.FetchServices(ctx)
	assert.NoError(t, err)
	assert.Len(t, services, 4)

	var matched []*model.Service
	for _, service := range services {
		if service.Title == "X" {
			matched = append(matched, service)
		}
	}
	require.Len(t, matched, 1)
	assert.Equal(t, "Y", matched[0].Description)
	assert.Equal(t, model.Symbol("Z"), matched[0].Icon)
	assert.Equal(t, "W", matched[0].Color)
}

func TestIdempotentDelete(t *testing.T) {
	s, _ := setup()
	ctx := context.Background()

	assert.NoError(t, s.DeleteTechItem(ctx, "t5"))
	once, err := s.FetchTechStack(ctx)
	assert.NoError(t, err)
	assert.Len(t, once, 19)

	assert.NoError(t, s.DeleteTechItem(ctx, "t5"))
	twice, err := s.FetchTechStack(ctx)
	assert.NoError(t, err)
	assert.Equal(t, once, twice)

	assert.NoError(t, s.DeleteProject(ctx, "unknown"))
	projects, err := s.FetchProjects(ctx)
	assert.NoError(t, err)
	assert.Equal(t, model.SeedProjects(), projects)
}

func TestLeads(t *testing.T) {
	now := time.Date(2026, 10, 18, 11, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	db := database.NewMemory(0)
	s := store.New(db, store.Config{
		Now: func() time.Time { return now },
	})
	ctx := context.Background()

	first, err := s.SubmitLead(ctx, &model.Lead{
		Base:    model.Base{ID: "forged"},
		Name:    "George Abitbol",
		Email:   "george.abitbol@nowhere.lan",
		Message: "Hello",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, "forged", first)

	second, err := s.SubmitLead(ctx, &model.Lead{Name: "Peter", Email: "peter@nowhere.lan", Message: "Hi"})
	assert.NoError(t, err)

	leads, err := s.FetchLeads(ctx)
	assert.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, second, leads[0].ID)
	assert.Equal(t, first, leads[1].ID)
	assert.Equal(t, now.UTC(), leads[1].CreatedAt)
	assert.Equal(t, time.UTC, leads[1].CreatedAt.Location())

	assert.NoError(t, s.DeleteLead(ctx, first))
	leads, err = s.FetchLeads(ctx)
	assert.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Peter", leads[0].Name)
}

func TestPersistedLayout(t *testing.T) {
	s, db := setup()
	ctx := context.Background()

	_, err := s.SaveService(ctx, &model.Service{Title: "X", Icon: model.Symbol("Zap")})
	assert.NoError(t, err)

	raw, err := db.Get("services")
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"_id":"1"`)
	assert.Contains(t, string(raw), `"icon":"Zap"`)

	_, err = db.Get("projects")
	assert.True(t, db.IsNotFound(err))
}

func TestConcurrentSaves(t *testing.T) {
	s, _ := setup()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.SaveTechItem(ctx, &model.TechItem{Name: fmt.Sprint(i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stack, err := s.FetchTechStack(ctx)
	assert.NoError(t, err)
	assert.Len(t, stack, 20+32, "no update must be lost")
}

func TestLatency(t *testing.T) {
	s := store.New(database.NewMemory(0), store.Config{Latency: 50 * time.Millisecond})

	start := time.Now()
	_, err := s.FetchServices(context.Background())
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestCancellation(t *testing.T) {
	db := database.NewMemory(0)
	s := store.New(db, store.Config{Latency: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.SaveProject(ctx, &model.Project{Title: "never"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	keys, err := db.Keys()
	assert.NoError(t, err)
	assert.Empty(t, keys, "nothing must be written")

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	_, err = s.FetchLeads(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQuotaExceeded(t *testing.T) {
	db := database.NewMemory(4096)
	s := store.New(db, store.Config{})
	ctx := context.Background()

	_, err := s.SaveService(ctx, &model.Service{Title: "small"})
	assert.NoError(t, err)

	huge := make([]byte, 8192)
	_, err = s.SaveService(ctx, &model.Service{Title: "huge", Icon: model.ParseAsset(store.EncodeDataURI(huge))})
	assert.True(t, store.IsQuotaExceeded(err))
	assert.False(t, store.IsUnavailable(err))

	services, err := s.FetchServices(ctx)
	assert.NoError(t, err)
	assert.Len(t, services, 4)
}
