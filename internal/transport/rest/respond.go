// internal/transport/rest/respond.go
package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"remedypedia/internal/common/errors"
	"remedypedia/internal/common/validation"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeBody reads the request body, validates it against the operation's schema
// when one is registered and unmarshals it into dst. An empty body decodes as {}.
func (s *server) decodeBody(r *http.Request, operationID string, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return errors.NewInputValidationError("Invalid request body", err.Error())
	}
	if len(body) > maxBodyBytes {
		return errors.NewInputValidationError("Request body too large", "")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	if schema, ok := s.schemas[operationID]; ok {
		result, err := validation.ValidateBytes(schema, body)
		if err != nil {
			return errors.NewInputValidationError("Invalid request body", err.Error())
		}
		if !result.Valid {
			messages := result.GetErrorMessages()
			return errors.NewInputValidationError("Invalid request body: "+messages[0], strings.Join(messages, "; "))
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errors.NewInputValidationError("Invalid request body", err.Error())
	}
	return nil
}
