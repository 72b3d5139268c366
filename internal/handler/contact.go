package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devsynchub/contactmail/internal/contact"
	"github.com/devsynchub/contactmail/internal/middleware"
)

// formField holds a submitted value with JavaScript truthiness: absent, null,
// false, 0 and "" are empty; any other value keeps its JSON text.
type formField string

func (f *formField) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch val := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = formField(val)
	case bool:
		*f = ""
		if val {
			*f = "true"
		}
	case float64:
		*f = ""
		if val != 0 {
			*f = formField(data)
		}
	default:
		*f = formField(data)
	}
	return nil
}

type sendEmailRequest struct {
	FullName formField `json:"fullname"`
	Email    formField `json:"email"`
	Message  formField `json:"message"`
}

// SendEmail handles POST /api/send-email
// Relays a contact form submission to the site owner's mailbox.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	log := middleware.GetLogger(r.Context(), h.log)

	var req sendEmailRequest
	if isJSON(r) {
		if err := readJSON(w, r, &req, h.cfg.Server.MaxBodyBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, contact.Result{Success: false, Message: "Request body too large."})
				return
			}
			log.Debug().Err(err).Msg("malformed JSON body")
			writeJSON(w, http.StatusBadRequest, contact.Result{Success: false, Message: "Invalid JSON body."})
			return
		}
	}

	sub := contact.Submission{
		FullName: string(req.FullName),
		Email:    string(req.Email),
		Message:  string(req.Message),
	}
	if !sub.Complete() {
		writeJSON(w, http.StatusBadRequest, contact.Result{Success: false, Message: "All fields are required."})
		return
	}

	res := h.contactSvc.Dispatch(r.Context(), sub)
	if !res.Success {
		writeJSON(w, http.StatusInternalServerError, res)
		return
	}

	log.Info().Msg("contact email sent")
	writeJSON(w, http.StatusOK, res)
}
