package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mathieu/devis-analyzer/internal/export"
	"github.com/mathieu/devis-analyzer/internal/extraction"
	"github.com/mathieu/devis-analyzer/internal/pipeline"
	"github.com/mathieu/devis-analyzer/internal/registry"
	"github.com/mathieu/devis-analyzer/internal/types"
)

// maxUploadBytes limits each uploaded file to 10 MB.
const maxUploadBytes = 10 << 20

var acceptedMediaTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"text/plain":      true,
}

// saveUploads stores the multipart files under random names in the upload
// dir. quote1 and quote2 are required; extra files may follow in a repeated
// "quotes" field. On any validation error the files already written are
// removed.
func (s *Server) saveUploads(r *http.Request) ([]extraction.UploadedFile, error) {
	if err := r.ParseMultipartForm(4 * maxUploadBytes); err != nil {
		return nil, badRequest("Requête multipart invalide: %v", err)
	}

	var headers []*multipart.FileHeader
	for _, field := range []string{"quote1", "quote2"} {
		fhs := r.MultipartForm.File[field]
		if len(fhs) == 0 {
			return nil, badRequest("Les deux devis sont requis (champs quote1 et quote2)")
		}
		headers = append(headers, fhs[0])
	}
	headers = append(headers, r.MultipartForm.File["quotes"]...)

	var files []extraction.UploadedFile
	for _, fh := range headers {
		uploaded, err := s.saveUpload(fh)
		if err != nil {
			extraction.CleanupFiles(files)
			return nil, err
		}
		files = append(files, uploaded)
	}
	return files, nil
}

func (s *Server) saveUpload(fh *multipart.FileHeader) (extraction.UploadedFile, error) {
	var zero extraction.UploadedFile

	if fh.Size > maxUploadBytes {
		return zero, badRequest("Les fichiers ne doivent pas dépasser 10 MB (%s)", fh.Filename)
	}
	mediaType := fh.Header.Get("Content-Type")
	if !acceptedMediaTypes[mediaType] {
		return zero, badRequest("Type de fichier non supporté: %s (%s)", mediaType, fh.Filename)
	}

	src, err := fh.Open()
	if err != nil {
		return zero, fmt.Errorf("cannot open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	path := filepath.Join(s.cfg.UploadDir, uuid.New().String()+filepath.Ext(fh.Filename))
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return zero, fmt.Errorf("cannot store upload %s: %w", fh.Filename, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return zero, fmt.Errorf("cannot store upload %s: %w", fh.Filename, err)
	}

	return extraction.UploadedFile{
		Path:        path,
		DisplayName: fh.Filename,
		MediaType:   mediaType,
		ByteSize:    fh.Size,
	}, nil
}

// resultPayload shapes a pipeline result for the JSON API.
func resultPayload(result *pipeline.Result) map[string]any {
	files := make(map[string]*extraction.Result, len(result.Files))
	for i, f := range result.Files {
		files[fmt.Sprintf("quote%d", i+1)] = f
	}

	payload := map[string]any{
		"message":            "Analyse complétée avec succès",
		"files":              files,
		"analysis":           result.Analysis,
		"siretVerifications": result.Verifications,
		"usage":              result.Usage,
	}
	if len(result.Duplicates) > 0 {
		payload["duplicates"] = result.Duplicates
	}
	return payload
}

// handleAnalyze runs the full pipeline and replies with one JSON document.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	files, err := s.saveUploads(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	result, err := pipeline.Run(r.Context(), pipeline.Options{
		Files:     files,
		Extractor: s.cfg.Extractor,
		Analyzer:  s.cfg.Analyzer,
		Verifier:  s.cfg.Verifier,
	})
	if err != nil {
		log.Printf("analyze failed: %v", err)
		s.errorResponse(w, err)
		return
	}

	payload := resultPayload(result)
	payload["success"] = true
	s.jsonResponse(w, http.StatusOK, payload)
}

// handleAnalyzeStream runs the pipeline while streaming progress frames,
// then a single terminal frame. A client disconnect cancels the run through
// the request context.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	files, err := s.saveUploads(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		extraction.CleanupFiles(files)
		s.errorResponse(w, err)
		return
	}

	result, err := pipeline.Run(r.Context(), pipeline.Options{
		Files:     files,
		Extractor: s.cfg.Extractor,
		Analyzer:  s.cfg.Analyzer,
		Verifier:  s.cfg.Verifier,
		OnProgress: func(event pipeline.ProgressEvent) {
			sse.WriteFrame(event) //nolint:errcheck
		},
	})
	if err != nil {
		log.Printf("analyze stream failed: %v", err)
		sse.WriteFailure(err.Error())
		return
	}

	sse.WriteResult(resultPayload(result))
}

// exportRequest is the body of an XLSX export: the analysis a client got
// back earlier, echoed as-is.
type exportRequest struct {
	Analysis           *types.AnalysisRecord             `json:"analysis"`
	SiretVerifications map[string]*registry.Verification `json:"siretVerifications"`
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	if req.Analysis == nil {
		s.errorResponse(w, badRequest("Aucune analyse à exporter"))
		return
	}

	data, err := export.BuildComparisonXLSX(req.Analysis, req.SiretVerifications)
	if err != nil {
		log.Printf("xlsx export failed: %v", err)
		s.errorResponse(w, err)
		return
	}

	filename := fmt.Sprintf("analyse_devis_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("xlsx write failed: %v", err)
	}
}

func decodeJSONBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest("Corps de requête JSON invalide: %v", err)
	}
	return nil
}
