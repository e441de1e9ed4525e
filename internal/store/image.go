package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// EncodeImage reads the whole image and returns it as a base64 data URI.
// Size limits are the caller's business.
func (s *Store) EncodeImage(ctx context.Context, r io.Reader) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(ErrImageRead, "%s", err)
	}
	return EncodeDataURI(data), nil
}

// EncodeDataURI returns the data URI of the given content.
func EncodeDataURI(data []byte) string {
	return "data:" + sniff(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI returns the media type and the content of a base64 data URI.
func DecodeDataURI(uri string) (string, []byte, error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, errors.New("not a data URI")
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return "", nil, errors.New("malformed data URI")
	}

	mediatype, encoding, _ := strings.Cut(header, ";")
	if encoding != "base64" {
		return "", nil, errors.Errorf("unsupported data URI encoding: %q", encoding)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Wrap(err, "could not decode data URI payload")
	}
	return mediatype, data, nil
}

// sniff returns the media type of the given content without parameters.
func sniff(data []byte) string {
	head := bytes.TrimSpace(data)
	if len(head) > 512 {
		head = head[:512]
	}
	if bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg"))) {
		return "image/svg+xml"
	}

	mediatype, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return mediatype
}
