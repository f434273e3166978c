package dist

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// Record accumulates the per-file hash rows of a wheel's RECORD file.
type Record struct {
	rows []string
}

// Add records the sha256 digest and size of data stored at path inside the wheel.
func (r *Record) Add(path string, data []byte) {
	digest := sha256.Sum256(data)
	hash := "sha256=" + base64.RawURLEncoding.EncodeToString(digest[:])
	r.rows = append(r.rows, fmt.Sprintf("%s,%s,%d", path, hash, len(data)))
}

// Render renders the RECORD file content. The RECORD file itself is listed last with empty
// hash and size, as it cannot contain its own digest.
func (r *Record) Render(recordPath string) string {
	rows := append(append([]string{}, r.rows...), recordPath+",,")
	return strings.Join(rows, "\n") + "\n"
}
