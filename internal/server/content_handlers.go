package server

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/novatech/internal/cmserror"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/server/serializer"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/mdouchement/novatech/pkg/structs"
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

type (
	// record is a pointer to a model struct.
	record[T any] interface {
		*T
		model.Model
	}

	// resource contains the handlers of an editable collection.
	resource[T any, P record[T]] struct {
		fetch func(context.Context) ([]P, error)
		save  func(context.Context, P) (string, error)
		// patch merges only the given fields, it is used when the payload keys are known.
		patch  func(context.Context, P, ...string) (string, error)
		delete func(context.Context, string) error
		// validate checks a record before its creation.
		validate func(P) error
	}
)

func projectResource(s *store.Store) *resource[model.Project, *model.Project] {
	return &resource[model.Project, *model.Project]{
		fetch:  s.FetchProjects,
		save:   s.SaveProject,
		patch:  s.PatchProject,
		delete: s.DeleteProject,
		validate: func(p *model.Project) error {
			return required("title", p.Title)
		},
	}
}

func serviceResource(s *store.Store) *resource[model.Service, *model.Service] {
	return &resource[model.Service, *model.Service]{
		fetch:  s.FetchServices,
		save:   s.SaveService,
		patch:  s.PatchService,
		delete: s.DeleteService,
		validate: func(p *model.Service) error {
			return required("title", p.Title)
		},
	}
}

func techStackResource(s *store.Store) *resource[model.TechItem, *model.TechItem] {
	return &resource[model.TechItem, *model.TechItem]{
		fetch:  s.FetchTechStack,
		save:   s.SaveTechItem,
		patch:  s.PatchTechItem,
		delete: s.DeleteTechItem,
		validate: func(p *model.TechItem) error {
			return required("name", p.Name)
		},
	}
}

///// List
////
//

// List renders the collection, optionally filtered by the `q` query param.
func (h *resource[T, P]) List(c echo.Context) error {
	records, err := h.fetch(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, model.Search(records, c.QueryParam("q")))
}

///// Create
////
//

// Create inserts a new record, a given `_id` is ignored.
func (h *resource[T, P]) Create(c echo.Context) error {
	r := P(new(T))
	if err := c.Bind(r); err != nil {
		return err
	}
	r.SetID("")

	if h.validate != nil {
		if err := h.validate(r); err != nil {
			return err
		}
	}

	id, err := h.save(c.Request().Context(), r)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, serializer.Saved(id))
}

///// Update
////
//

// Update merges the fields present in a JSON payload into the record, empty values included.
// Other payloads only merge their non-empty fields.
func (h *resource[T, P]) Update(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errors.Wrap(err, "could not read body")
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(body))

	r := P(new(T))
	if err = c.Bind(r); err != nil {
		return err
	}
	r.SetID(c.Param("id"))

	ctx := c.Request().Context()
	var id string
	if keys, ok := jsonKeys(c, body); ok && h.patch != nil {
		id, err = h.patch(ctx, r, structs.FieldsByTag(r, "json", keys...)...)
	} else {
		id, err = h.save(ctx, r)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Saved(id))
}

///// Delete
////
//

// Delete removes the record, deleting an unknown record succeeds.
func (h *resource[T, P]) Delete(c echo.Context) error {
	if err := h.delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Success())
}

///// Grouped tech stack
////
//

// techStackGrouped renders the tech stack grouped by category in display order.
func techStackGrouped(s store.Content) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := s.FetchTechStack(c.Request().Context())
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, serializer.TechGroups(model.GroupTechStack(items)))
	}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return missing(field)
	}
	return nil
}

func missing(field string) error {
	return cmserror.NewWithTagCode(http.StatusBadRequest, "invalid-parameter", "No "+field+" provided.")
}

// jsonKeys returns the top level keys of a JSON object body.
func jsonKeys(c echo.Context, body []byte) ([]string, bool) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return nil, false
	}

	v, err := fastjson.ParseBytes(body)
	if err != nil {
		return nil, false
	}
	o, err := v.Object()
	if err != nil {
		return nil, false
	}

	keys := make([]string, 0, o.Len())
	o.Visit(func(key []byte, _ *fastjson.Value) {
		keys = append(keys, string(key))
	})
	return keys, true
}
