package cli

import (
	"encoding/json"
	"io"
	"os"

	apperrors "github.com/jrsteele09/go-school-client/internal/errors"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// readRequest fills v from a YAML or JSON document at path ("-" reads In).
// Keys are the API field names, e.g. school_name or admin_email.
func (a *App) readRequest(path string, v any) error {
	if path == "" {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "--file is required")
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(a.In)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return errors.Wrapf(err, "[readRequest] %s", path)
	}

	// YAML is a superset of JSON, so one parser covers both.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "%s: %v", path, err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "%s: %v", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return apperrors.Wrapf(apperrors.ErrInvalidRequest, "%s: %v", path, err)
	}
	return nil
}
