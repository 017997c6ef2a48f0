package validators

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
)

// ParseOptionalUUIDQuery reads a uuid query parameter, returning nil when it
// is absent.
func ParseOptionalUUIDQuery(r *http.Request, key string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("query parameter %q must be a valid uuid", key))
	}
	return &id, nil
}

// ParseUUIDParam parses a path parameter already extracted by the router.
func ParseUUIDParam(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("path parameter %q must be a valid uuid", name))
	}
	return id, nil
}
