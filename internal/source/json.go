package source

import (
	"encoding/json"
	"io"

	apperrors "github.com/v-bible/js-sdk/core/errors"
	"github.com/v-bible/js-sdk/core/ir"
)

// DecodeJSON reads a document object with camelCase keys. Enum fields accept
// names or numbers.
func DecodeJSON(r io.Reader) (*ir.Document, error) {
	var doc ir.Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.NewParseWrap("JSON", "", err)
	}
	return &doc, nil
}
