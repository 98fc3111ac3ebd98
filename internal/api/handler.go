package api

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MPZ-00/pdf-bank-extractor/internal/extractor"
	"github.com/MPZ-00/pdf-bank-extractor/internal/models"
	"github.com/MPZ-00/pdf-bank-extractor/internal/parser"
	"github.com/MPZ-00/pdf-bank-extractor/internal/writer"
)

// Version is the application version reported by the CLI and the API.
const Version = "0.1.0"

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	ID           string               `json:"id,omitempty"`
	Schema       string               `json:"schema,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	CSV          string               `json:"csv,omitempty"`
	Count        int                  `json:"count"`
	Warnings     []string             `json:"warnings,omitempty"`
	Version      string               `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	OCR bool
	Log zerolog.Logger
}

// Register mounts the API routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
}

// HandleHealth reports service liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "pdf-bank-extractor",
		"engine":  "fiber",
		"version": Version,
	})
}

// HandleConvert accepts one uploaded PDF and returns its transactions
// together with the rendered CSV.
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	// Schema is either an explicit version or detected per document.
	schemaParam := strings.ToLower(strings.TrimSpace(c.FormValue("schema")))
	autoSchema := schemaParam == "" || schemaParam == "auto"
	var schema models.Schema
	if !autoSchema {
		schema, err = models.ParseSchema(schemaParam)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	includeFilename := c.FormValue("filename_column") == "true"

	// The document ID names the temp file and is echoed in the
	// response so clients can correlate requests with logs.
	docID := uuid.New().String()
	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("statement-%s.pdf", docID))
	if err := c.SaveFile(fileHeader, tmp); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}
	defer os.Remove(tmp)

	pages, warnings, err := extractor.ExtractPages(tmp, h.OCR, h.Log)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
	}

	if autoSchema {
		schema = parser.DetectSchema(pages)
	}

	txns := parser.New(schema).ParseDocument(pages)

	var csvBuf bytes.Buffer
	csvWriter := &writer.CSVWriter{Schema: schema, IncludeFilename: includeFilename}
	docs := []writer.Document{{Source: fileHeader.Filename, Transactions: txns}}
	if err := csvWriter.Write(&csvBuf, docs); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	// nil marshals to JSON null, not []
	if txns == nil {
		txns = []models.Transaction{}
	}
	if len(txns) == 0 {
		warnings = append(warnings, "no transactions found")
	}

	h.Log.Info().
		Str("id", docID).
		Str("file", fileHeader.Filename).
		Str("schema", schema.String()).
		Int("transactions", len(txns)).
		Msg("converted")

	return c.JSON(ConvertResponse{
		Success:      true,
		ID:           docID,
		Schema:       schema.String(),
		Transactions: txns,
		CSV:          csvBuf.String(),
		Count:        len(txns),
		Warnings:     warnings,
		Version:      Version,
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
	})
}
