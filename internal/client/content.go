package client

import (
	"context"
	"encoding/json"
	"os"

	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/mdouchement/novatech/pkg/stormsql"
	"github.com/pkg/errors"
)

// MaxImageSize is the maximum size of an uploaded image.
const MaxImageSize = 2 << 20

// Save creates or updates a record of the given collection from its JSON payload.
// Leads follow the contact form policy whatever the content backend is.
func Save(ctx context.Context, content store.Content, c model.Collection, payload []byte) (string, error) {
	switch c {
	case model.Leads:
		var lead model.Lead
		if err := json.Unmarshal(payload, &lead); err != nil {
			return "", errors.Wrap(err, "could not parse lead")
		}
		if field := lead.MissingField(); field != "" {
			return "", errors.Errorf("no %s provided", field)
		}
		return content.SubmitLead(ctx, &lead)
	case model.Projects:
		var project model.Project
		if err := json.Unmarshal(payload, &project); err != nil {
			return "", errors.Wrap(err, "could not parse project")
		}
		return content.SaveProject(ctx, &project)
	case model.Services:
		var service model.Service
		if err := json.Unmarshal(payload, &service); err != nil {
			return "", errors.Wrap(err, "could not parse service")
		}
		return content.SaveService(ctx, &service)
	case model.TechStack:
		var item model.TechItem
		if err := json.Unmarshal(payload, &item); err != nil {
			return "", errors.Wrap(err, "could not parse tech item")
		}
		return content.SaveTechItem(ctx, &item)
	}
	return "", errors.Errorf("unknown collection %s", c)
}

// Delete removes a record of the given collection.
func Delete(ctx context.Context, content store.Content, c model.Collection, id string) error {
	switch c {
	case model.Leads:
		return content.DeleteLead(ctx, id)
	case model.Projects:
		return content.DeleteProject(ctx, id)
	case model.Services:
		return content.DeleteService(ctx, id)
	case model.TechStack:
		return content.DeleteTechItem(ctx, id)
	}
	return errors.Errorf("unknown collection %s", c)
}

// Upload encodes the given image file as a data URI.
// Files larger than MaxImageSize are rejected before being read.
func Upload(ctx context.Context, content store.Content, filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", errors.Wrap(err, "could not open image")
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", errors.Wrap(err, "could not stat image")
	}
	if stat.Size() > MaxImageSize {
		return "", errors.Errorf("image exceeds %d bytes", MaxImageSize)
	}

	return content.EncodeImage(ctx, f)
}

// Query runs the given SELECT statement over a collection.
// It returns the count, the records or only the selected fields.
func Query(ctx context.Context, content store.Content, sql string) (any, error) {
	sc, err := stormsql.ParseSelect(sql)
	if err != nil {
		return nil, err
	}

	c, ok := model.ParseCollection(sc.Tablename)
	if !ok {
		return nil, errors.Errorf("unknown tablename: %s", sc.Tablename)
	}

	switch c {
	case model.Leads:
		leads, err := content.FetchLeads(ctx)
		if err != nil {
			return nil, err
		}
		return query(leads, sc)
	case model.Projects:
		projects, err := content.FetchProjects(ctx)
		if err != nil {
			return nil, err
		}
		return query(projects, sc)
	case model.Services:
		services, err := content.FetchServices(ctx)
		if err != nil {
			return nil, err
		}
		return query(services, sc)
	default:
		items, err := content.FetchTechStack(ctx)
		if err != nil {
			return nil, err
		}
		return query(items, sc)
	}
}

func query[T any](records []T, sc *stormsql.SelectClause) (any, error) {
	filtered, err := stormsql.Filter(records, sc)
	if err != nil {
		return nil, errors.Wrap(err, "could not perform query")
	}

	if sc.Count {
		return len(filtered), nil
	}
	if len(sc.SelectedFields) == 0 {
		return filtered, nil
	}
	return stormsql.Project(filtered, sc)
}
