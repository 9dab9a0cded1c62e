package domain

import (
	"encoding/base64"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Photo stores a single inline image as the original data URI
// ("data:image/png;base64,...."). Immutable once created.
type Photo struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Image string             `bson:"image" json:"image"`
}

var ErrBadDataURI = errors.New("malformed data URI")

// IsDataURI reports whether s looks like an inline image upload rather
// than a photo id or an external URL.
func IsDataURI(s string) bool { return strings.HasPrefix(s, "data:image") }

// DecodeDataURI splits a data URI into its content type and raw bytes.
func DecodeDataURI(uri string) (contentType string, data []byte, err error) {
	head, payload, ok := strings.Cut(uri, ",")
	if !ok {
		return "", nil, ErrBadDataURI
	}
	meta, _, ok := strings.Cut(head, ";")
	if !ok {
		return "", nil, ErrBadDataURI
	}
	contentType = strings.TrimPrefix(meta, "data:")
	if contentType == "" {
		return "", nil, ErrBadDataURI
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, ErrBadDataURI
	}
	return contentType, data, nil
}
