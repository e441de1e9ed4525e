package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/pkg/errors"
)

// Backup fetchs all the collections and stores them as JSON files in the given directory.
// It returns the created filenames.
func Backup(ctx context.Context, content store.Content, dir string) ([]string, error) {
	suffix := time.Now().Format("20060102150405")
	var filenames []string

	for _, c := range model.Collections {
		records, err := Fetch(ctx, content, c)
		if err != nil {
			return filenames, errors.Wrapf(err, "could not get %s", c)
		}

		filename := filepath.Join(dir, fmt.Sprintf("%s_%s.json", c, suffix))
		if err = backup(records, filename); err != nil {
			return filenames, errors.Wrap(err, string(c))
		}
		filenames = append(filenames, filename)
	}

	return filenames, nil
}

// Fetch returns the records of the given collection.
func Fetch(ctx context.Context, content store.Content, c model.Collection) (any, error) {
	return List(ctx, content, c, "")
}

// List returns the records of the given collection whose title or name contains query.
func List(ctx context.Context, content store.Content, c model.Collection, query string) (any, error) {
	switch c {
	case model.Leads:
		records, err := content.FetchLeads(ctx)
		return model.Search(records, query), err
	case model.Projects:
		records, err := content.FetchProjects(ctx)
		return model.Search(records, query), err
	case model.Services:
		records, err := content.FetchServices(ctx)
		return model.Search(records, query), err
	case model.TechStack:
		records, err := content.FetchTechStack(ctx)
		return model.Search(records, query), err
	}
	return nil, errors.Errorf("unknown collection %s", c)
}

func backup(v any, filename string) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not serialize value to backup")
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "could not create backup file")
	}
	defer f.Close()

	_, err = f.Write(payload)
	if err != nil {
		return errors.Wrap(err, "could not write backuped values")
	}

	return errors.Wrap(f.Sync(), "could not backup")
}
