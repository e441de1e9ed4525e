package server

import (
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/novatech/internal/cmserror"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/server/serializer"
	"github.com/mdouchement/novatech/internal/store"
)

// lead contains all contact form handlers.
type lead struct {
	store store.Content
}

///// Submit
////
//

// Submit handler records a contact form submission.
func (h *lead) Submit(c echo.Context) error {
	var params model.Lead
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusBadRequest, cmserror.New("Could not get lead's params."))
	}

	if field := params.MissingField(); field != "" {
		return missing(field)
	}

	id, err := h.store.SubmitLead(c.Request().Context(), &params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, serializer.Saved(id))
}

///// List
////
//

// List renders the leads, newest first.
// The `q` query param filters by name and `since` drops older leads (any date format).
func (h *lead) List(c echo.Context) error {
	var since time.Time
	if v := c.QueryParam("since"); v != "" {
		var err error
		since, err = dateparse.ParseIn(v, time.UTC)
		if err != nil {
			return cmserror.NewWithTagCode(http.StatusBadRequest, "invalid-parameter", "Invalid since date.")
		}
	}

	leads, err := h.store.FetchLeads(c.Request().Context())
	if err != nil {
		return err
	}
	leads = model.Search(leads, c.QueryParam("q"))

	if !since.IsZero() {
		kept := make([]*model.Lead, 0, len(leads))
		for _, l := range leads {
			if !l.CreatedAt.Before(since) {
				kept = append(kept, l)
			}
		}
		leads = kept
	}

	return c.JSON(http.StatusOK, serializer.Leads(leads))
}

///// Delete
////
//

// Delete removes a lead.
func (h *lead) Delete(c echo.Context) error {
	if err := h.store.DeleteLead(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Success())
}
