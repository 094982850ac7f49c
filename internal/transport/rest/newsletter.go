// internal/transport/rest/newsletter.go
package rest

import (
	"net/http"

	"remedypedia/internal/common/errors"
	newslettersubscribe "remedypedia/internal/workers/communication/newsletter-subscribe"
)

// POST /newsletter-subscribe
func (s *server) subscribe(w http.ResponseWriter, r *http.Request) {
	if s.newsletter == nil {
		s.errors.WriteError(w, r, errors.NewServiceUnavailableError("Newsletter"))
		return
	}

	var input newslettersubscribe.Input
	if err := s.decodeBody(r, "newsletter-subscribe", &input); err != nil {
		s.errors.WriteError(w, r, err)
		return
	}

	out, err := s.newsletter.Execute(r.Context(), &input)
	if err != nil {
		s.errors.WriteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
