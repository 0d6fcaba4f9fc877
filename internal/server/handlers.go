package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/benefits-advisor/internal/document"
	"github.com/jonathan/benefits-advisor/internal/generator"
	"github.com/jonathan/benefits-advisor/internal/types"
)

// GenerateRequest represents the request body for /profiles/generate
type GenerateRequest struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"required,gt=0"`
	Tier string `json:"tier,omitempty" validate:"omitempty,oneof=demo large"`
}

// SampleInfo describes one downloadable sample profile
type SampleInfo struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
	File string `json:"file"`
}

// SectionResponse is a JSON view of one parsed section.
// Rows is truncated to the preview size; TotalRows is the full count.
type SectionResponse struct {
	Name      string   `json:"name"`
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	TotalRows int      `json:"total_rows"`
}

// SectionError describes a section that could not be parsed
type SectionError struct {
	Section string `json:"section"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseResponse represents the response for /profiles/parse
type ParseResponse struct {
	File     string            `json:"file"`
	Sections []SectionResponse `json:"sections"`
	Errors   []SectionError    `json:"errors"`
}

// RecommendationsResponse represents the response for /recommendations
type RecommendationsResponse struct {
	File            string                 `json:"file"`
	Sections        []SectionResponse      `json:"sections"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

// handleGenerate renders a synthetic profile and returns it as a CSV download
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorFromErr(w, validationError(err))
		return
	}

	tier := generator.TierDemo
	if req.Tier != "" {
		tier = generator.Tier(req.Tier)
	}

	content, err := generator.Render(req.Name, req.Age, tier)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	s.metrics.IncProfilesGenerated(string(tier))

	s.csvResponse(w, generator.FileName(req.Name), content)
}

// handleListSamples lists the built-in sample people
func (s *Server) handleListSamples(w http.ResponseWriter, _ *http.Request) {
	samples := make([]SampleInfo, 0, len(generator.DefaultPeople))
	for _, p := range generator.DefaultPeople {
		samples = append(samples, SampleInfo{Name: p.Name, Age: p.Age, File: generator.FileName(p.Name)})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"samples": samples})
}

// handleSample returns the demo-tier profile of one built-in sample person
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	for _, p := range generator.DefaultPeople {
		if generator.FileName(p.Name) != file {
			continue
		}
		content, err := generator.Render(p.Name, p.Age, generator.TierDemo)
		if err != nil {
			s.errorFromErr(w, err)
			return
		}
		s.metrics.IncProfilesGenerated(string(generator.TierDemo))
		s.csvResponse(w, file, content)
		return
	}
	s.errorFromErr(w, &ErrNotFound{Resource: "sample " + file})
}

// handleParse parses an uploaded profile and returns its sections as JSON
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	preview := s.previewRows
	if v := r.URL.Query().Get("preview"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.errorFromErr(w, &ErrValidation{Field: "preview", Message: "must be a non-negative integer"})
			return
		}
		preview = n
	}

	name, data, err := s.readUpload(w, r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	doc, parseErr := document.Parse(data)
	if doc == nil {
		s.errorFromErr(w, parseErr)
		return
	}
	s.observeDocument(doc, parseErr)

	s.jsonResponse(w, http.StatusOK, ParseResponse{
		File:     name,
		Sections: sectionResponses(doc, preview),
		Errors:   sectionErrors(parseErr),
	})
}

// handleRecommendations sends an uploaded profile to the model and returns the extracted recommendations
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}

	text, err := document.Decode(data)
	if err != nil {
		s.errorFromErr(w, err)
		return
	}
	doc, parseErr := document.ParseString(text)
	s.observeDocument(doc, parseErr)

	recs, err := s.advisor.Recommend(r.Context(), text)
	if err != nil {
		log.Printf("[server] recommendations failed (request_id=%s): %v", requestID(r.Context()), err)
		s.errorFromErr(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, RecommendationsResponse{
		File:            name,
		Sections:        sectionResponses(doc, s.previewRows),
		Recommendations: recs,
	})
}

// readUpload returns the uploaded file name and bytes. A multipart request must carry
// the document in its "file" field; any other body is taken as the document itself.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return "", nil, s.uploadError("failed to read body", err)
		}
		if len(data) == 0 {
			return "", nil, &ErrBadUpload{Message: "file is required"}
		}
		name := r.URL.Query().Get("filename")
		if name == "" {
			name = "upload.csv"
		}
		return name, data, nil
	}

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		return "", nil, s.uploadError("invalid form", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, &ErrBadUpload{Message: "file is required", Cause: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("[server] failed to close upload: %v", err)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, s.uploadError("failed to read file", err)
	}
	return header.Filename, data, nil
}

func (s *Server) uploadError(message string, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &ErrUploadTooLarge{Limit: s.maxUploadBytes}
	}
	return &ErrBadUpload{Message: message, Cause: err}
}

// csvResponse writes content as a CSV attachment
func (s *Server) csvResponse(w http.ResponseWriter, filename string, content string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, content); err != nil {
		log.Printf("[server] error writing CSV response: %v", err)
	}
}

func (s *Server) observeDocument(doc *types.Document, parseErr error) {
	if doc != nil {
		for _, name := range doc.Names() {
			s.metrics.ObserveSection(name.Title(), true)
		}
	}
	for _, mse := range document.MalformedSections(parseErr) {
		s.metrics.ObserveSection(mse.Section.Title(), false)
	}
}

func sectionResponses(doc *types.Document, preview int) []SectionResponse {
	out := []SectionResponse{}
	if doc == nil {
		return out
	}
	for i := range doc.Sections {
		sec := &doc.Sections[i]
		head := sec.Head(preview)
		rows := make([][]any, len(head.Rows))
		for r, row := range head.Rows {
			cells := make([]any, len(row))
			for c, v := range row {
				cells[c] = jsonCell(v)
			}
			rows[r] = cells
		}
		out = append(out, SectionResponse{
			Name:      sec.Name.Title(),
			Columns:   sec.Columns,
			Rows:      rows,
			TotalRows: len(sec.Rows),
		})
	}
	return out
}

func sectionErrors(err error) []SectionError {
	out := []SectionError{}
	for _, mse := range document.MalformedSections(err) {
		msg := ""
		if mse.Cause != nil {
			msg = mse.Cause.Error()
		}
		out = append(out, SectionError{Section: mse.Section.Title(), Row: mse.Row, Message: msg})
	}
	return out
}

// jsonCell keeps numbers numeric and decimals at their parsed precision
func jsonCell(v types.Value) any {
	switch v.Kind() {
	case types.KindNull:
		return nil
	case types.KindInt:
		return v.Int()
	case types.KindDecimal:
		return json.Number(v.String())
	default:
		return v.String()
	}
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed '%s' check", fe.Tag())}
	}
	return &ErrValidation{Field: "request", Message: err.Error()}
}
