package extraction

import (
	"log"
	"os"
)

// UploadedFile describes a quote file saved to transient storage for the
// lifetime of one request.
type UploadedFile struct {
	Path        string
	DisplayName string
	MediaType   string
	ByteSize    int64
}

// CleanupFiles deletes the temporary uploads. Deletion is best-effort and
// must run whether the request succeeded or failed: a failure is logged and
// never surfaced to the caller.
func CleanupFiles(files []UploadedFile) {
	for _, f := range files {
		if f.Path == "" {
			continue
		}
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("Could not remove temporary file %s: %v", f.Path, err)
		}
	}
}
