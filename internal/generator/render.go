package generator

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Render returns the textual form of id decorated with prefix and suffix.
// format only affects UUIDs; every other type renders its canonical
// encoding. Prefix and suffix are not checked against the id's charset.
func Render(id ID, format Format, prefix, suffix string) string {
	return prefix + renderBody(id, format) + suffix
}

func renderBody(id ID, format Format) string {
	if id.Type != TypeUUID || len(id.Raw) != 16 {
		return id.Canonical
	}
	var u uuid.UUID
	copy(u[:], id.Raw)
	switch format {
	case FormatSimple:
		return hex.EncodeToString(u[:])
	case FormatURN:
		return u.URN()
	default:
		return u.String()
	}
}
