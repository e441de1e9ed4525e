package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/novatech/internal/cmserror"
	"github.com/mdouchement/novatech/internal/server/serializer"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/pkg/errors"
)

// DefaultMaxUploadSize is the maximum size of an uploaded image.
const DefaultMaxUploadSize = 2 << 20

// upload contains the image upload handler.
type upload struct {
	store   store.Content
	maxSize int64
}

///// Upload
////
//

// Upload handler converts the multipart `file` into a data URI usable as project image or icon.
func (h *upload) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return cmserror.NewWithTagCode(http.StatusBadRequest, "invalid-parameter", "No file provided.")
	}

	if fh.Size > h.maxSize {
		return cmserror.NewWithTagCode(
			http.StatusRequestEntityTooLarge,
			"file-too-large",
			fmt.Sprintf("File exceeds %d bytes.", h.maxSize),
		)
	}

	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "could not open uploaded file")
	}
	defer f.Close()

	uri, err := h.store.EncodeImage(c.Request().Context(), f)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Upload(uri))
}
