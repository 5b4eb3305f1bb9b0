package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stakemetrics/stakemetrics-server/internal/domain"
	"github.com/stakemetrics/stakemetrics-server/internal/http/response"
)

// maxUploadSize bounds roster uploads. The largest real exports are well
// under a megabyte.
const maxUploadSize = 20 << 20 // 20MB

func (s *Server) registerImportRoutes() {
	// The upload endpoint uses chi directly for multipart form handling,
	// since Huma doesn't easily support multipart forms.
	s.router.Post("/api/v1/imports", s.handleUploadRoster)

	huma.Register(s.api, huma.Operation{
		OperationID: "listDocuments",
		Method:      http.MethodGet,
		Path:        "/api/v1/documents",
		Summary:     "List documents",
		Description: "Returns uploaded roster documents, newest first",
		Tags:        []string{"Imports"},
	}, s.handleListDocuments)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDocument",
		Method:      http.MethodGet,
		Path:        "/api/v1/documents/{id}",
		Summary:     "Get document",
		Description: "Returns one uploaded document by ID",
		Tags:        []string{"Imports"},
	}, s.handleGetDocument)
}

// uploadMeta is validated before the import runs.
type uploadMeta struct {
	Filename string `json:"filename" validate:"required,max=255"`
	Size     int64  `json:"size" validate:"gt=0,lte=20971520"`
}

// handleUploadRoster imports an uploaded roster document.
// POST /api/v1/imports
// Content-Type: multipart/form-data with "file" field
func (s *Server) handleUploadRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Failed to parse form data", s.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file uploaded. Use 'file' field in multipart form", s.logger)
		return
	}
	defer file.Close()

	meta := uploadMeta{Filename: header.Filename, Size: header.Size}
	if err := s.validator.Validate(meta); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	result, err := s.services.Import.ImportDocument(ctx, header.Filename, header.Size, file)
	if err != nil {
		s.logger.Error("Roster import failed", "error", err, "filename", header.Filename)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, result, s.logger)
}

// === DTOs ===

// DocumentResponse is one uploaded document in API responses.
type DocumentResponse struct {
	ID         string    `json:"id" doc:"Document ID"`
	Filename   string    `json:"filename" doc:"Original filename"`
	Kind       string    `json:"kind" doc:"Source format: csv, tsv, xlsx, or text"`
	SizeBytes  int64     `json:"size_bytes" doc:"File size in bytes"`
	Status     string    `json:"status" doc:"Import status: processing, processed, or failed"`
	RowCount   int       `json:"row_count" doc:"Number of imported rows"`
	UploadedAt time.Time `json:"uploaded_at" doc:"Upload time"`
}

// ListDocumentsResponse contains the document list.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents" doc:"Uploaded documents, newest first"`
}

// ListDocumentsOutput wraps the document list for Huma.
type ListDocumentsOutput struct {
	Body ListDocumentsResponse
}

// GetDocumentInput identifies one document.
type GetDocumentInput struct {
	ID string `path:"id" doc:"Document ID"`
}

// DocumentOutput wraps one document for Huma.
type DocumentOutput struct {
	Body DocumentResponse
}

func mapDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:         d.ID,
		Filename:   d.Filename,
		Kind:       string(d.Kind),
		SizeBytes:  d.SizeBytes,
		Status:     string(d.Status),
		RowCount:   d.RowCount,
		UploadedAt: d.UploadedAt,
	}
}

func (s *Server) handleListDocuments(ctx context.Context, _ *struct{}) (*ListDocumentsOutput, error) {
	docs, err := s.services.Import.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListDocumentsOutput{}
	out.Body.Documents = make([]DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out.Body.Documents = append(out.Body.Documents, mapDocumentResponse(d))
	}
	return out, nil
}

func (s *Server) handleGetDocument(ctx context.Context, input *GetDocumentInput) (*DocumentOutput, error) {
	doc, err := s.services.Import.GetDocument(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &DocumentOutput{Body: mapDocumentResponse(doc)}, nil
}
