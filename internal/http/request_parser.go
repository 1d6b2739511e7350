package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/giannigrespan/FInance-tracker-Gemini/internal/core"
)

// maxBodyBytes bounds request bodies; receipt image uploads are the
// largest expected payload.
const maxBodyBytes = 8 << 20

var validate = validator.New()

// createTransactionRequest is the write shape of the ledger API. Structural
// checks run through validator tags; enum membership is checked by the
// domain Validate afterwards.
type createTransactionRequest struct {
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Merchant string  `json:"merchant" validate:"required,max=200"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Type     string  `json:"type" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Payer    string  `json:"payer" validate:"required"`
	Split    string  `json:"splitType" validate:"required"`
	Notes    string  `json:"notes" validate:"max=500"`
}

// scanReceiptRequest carries a base64 receipt image. A data-URL prefix
// ("data:image/png;base64,...") is accepted and stripped.
type scanReceiptRequest struct {
	Image    string `json:"image" validate:"required"`
	MimeType string `json:"mimeType"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	// Trailing garbage after the object is a malformed request too.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body: unexpected trailing data")
	}
	return nil
}

// parseTransaction converts a validated request into a domain transaction.
func parseTransaction(req createTransactionRequest) (core.Transaction, error) {
	if err := validate.Struct(req); err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
		Date:     req.Date,
		Merchant: strings.TrimSpace(req.Merchant),
		Amount:   req.Amount,
		Type:     core.TransactionType(req.Type),
		Category: core.Category(req.Category),
		Payer:    core.Payer(req.Payer),
		Split:    core.SplitType(req.Split),
		Notes:    strings.TrimSpace(req.Notes),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// parseReceiptImage decodes the uploaded image and resolves its mime type.
func parseReceiptImage(req scanReceiptRequest) ([]byte, string, error) {
	if err := validate.Struct(req); err != nil {
		return nil, "", err
	}

	data := req.Image
	mimeType := strings.TrimSpace(req.MimeType)
	if rest, ok := strings.CutPrefix(data, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found {
			return nil, "", fmt.Errorf("malformed data URL")
		}
		data = payload
		if mimeType == "" {
			mimeType = strings.TrimSuffix(meta, ";base64")
		}
	}

	image, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 image: %w", err)
	}
	if len(image) == 0 {
		return nil, "", fmt.Errorf("empty image")
	}
	return image, mimeType, nil
}
