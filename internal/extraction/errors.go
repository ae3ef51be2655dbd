package extraction

import "fmt"

// EmptyContentError indicates a file yielded no text at all: a PDF without
// a text layer, an empty text file, or an image the model could not read.
type EmptyContentError struct {
	DisplayName string
	Reason      string
}

func (e *EmptyContentError) Error() string {
	return fmt.Sprintf("no extractable content in %s: %s", e.DisplayName, e.Reason)
}

// InsufficientContentError indicates extraction produced text too short to
// be a usable quote. Cheap heuristic against near-empty documents, not a
// semantic check.
type InsufficientContentError struct {
	DisplayName string
	Length      int
}

func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("file %s does not contain enough usable text (%d chars)", e.DisplayName, e.Length)
}

// UnsupportedTypeError indicates a media type the extractor cannot handle.
// Upload validation should have filtered it out already.
type UnsupportedTypeError struct {
	MediaType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MediaType)
}
