package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"docanalyst/internal/config"
	"docanalyst/internal/extract"
	"docanalyst/internal/providers"
	"docanalyst/internal/rag"
	"docanalyst/internal/storage"
	"docanalyst/internal/util"
)

type Server struct {
	cfg      config.Config
	store    *storage.DocumentStore
	audit    *storage.AuditLog
	pipeline *rag.Pipeline
}

func NewServer(cfg config.Config) *Server {
	pm, err := providers.NewManager(cfg.LLMProviders, cfg.EmbedProviders, cfg.EmbedDim)
	if err != nil {
		panic(err)
	}
	store := storage.NewDocumentStore()
	audit := storage.NewAuditLog(cfg.AuditLimit)
	return &Server{
		cfg:      cfg,
		store:    store,
		audit:    audit,
		pipeline: rag.NewPipeline(cfg, store, pm, pm, audit),
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/documents", s.handleDocuments)
	mux.HandleFunc("/upload-and-process/", s.handleUpload)
	mux.HandleFunc("/preview/", s.handlePreview)
	mux.HandleFunc("/query-document/", s.handleQuery)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"documents": s.store.Len(),
		"llm_calls": s.audit.Len(),
	})
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": s.store.List()})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("parse multipart: %w", err))
		return
	}
	fh, ok := uploadedFile(r.MultipartForm.File)
	if !ok {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no file provided"))
		return
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("file must be a pdf"))
		return
	}

	src, err := fh.Open()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("open upload: %w", err))
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, fmt.Errorf("read upload: %w", err))
		return
	}

	pages, err := extract.Pages(data)
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no extractable content: %w", err))
		return
	}
	res, err := s.pipeline.Ingest(r.Context(), fh.Filename, pages)
	switch {
	case errors.Is(err, util.ErrEmptyDocument):
		writeErr(w, http.StatusBadRequest, fmt.Errorf("no extractable content: %w", err))
		return
	case err != nil:
		writeErr(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"filename":          fh.Filename,
		"message":           "Archivo procesado exitosamente.",
		"keywords":          res.Keywords,
		"related_questions": res.RelatedQuestions,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	filename := strings.Trim(strings.TrimPrefix(r.URL.Path, "/preview/"), "/")
	if filename == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	res, err := s.pipeline.Preview(filename)
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"keywords":          res.Keywords,
		"related_questions": res.RelatedQuestions,
	})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	var req struct {
		Filename string `json:"filename"`
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	req.Filename = strings.TrimSpace(req.Filename)
	req.Question = strings.TrimSpace(req.Question)
	if req.Filename == "" || req.Question == "" {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("filename and question are required"))
		return
	}

	result, err := s.pipeline.Answer(r.Context(), req.Filename, req.Question)
	switch {
	case errors.Is(err, util.ErrDocumentNotFound):
		writeErr(w, http.StatusNotFound, err)
		return
	case err != nil:
		writeErr(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func uploadedFile(m map[string][]*multipart.FileHeader) (*multipart.FileHeader, bool) {
	if files := m["file"]; len(files) > 0 {
		return files[0], true
	}
	for _, v := range m {
		if len(v) > 0 {
			return v[0], true
		}
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "La solicitud falló."
	code := "DA-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500 && status != http.StatusBadGateway:
		return apiError{Code: "DA-API-5000", Message: "Error interno del servidor. Intenta nuevamente más tarde."}
	case status == http.StatusBadGateway:
		return apiError{Code: "DA-API-5020", Message: "Proveedor externo no disponible. Intenta nuevamente más tarde."}
	case status == http.StatusNotFound:
		code = "DA-API-4004"
		msg = "Documento no encontrado. Por favor, súbelo primero."
	case status == http.StatusMethodNotAllowed:
		code = "DA-API-4005"
		msg = "El método no está permitido en esta ruta."
	case status == http.StatusBadRequest:
		code = "DA-API-4001"
		msg = "Solicitud inválida. Revisa los datos enviados."
		switch {
		case strings.Contains(raw, "must be a pdf"):
			msg = "El archivo debe ser un PDF."
		case strings.Contains(raw, "no file provided"):
			msg = "No se envió ningún archivo."
		case strings.Contains(raw, "no extractable content"):
			msg = "No se pudo extraer contenido."
		case strings.Contains(raw, "invalid json"):
			msg = "El cuerpo de la solicitud no es JSON válido."
		case strings.Contains(raw, "filename and question are required"):
			msg = "Se requieren el nombre del archivo y la pregunta."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
