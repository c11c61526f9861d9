package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/NixySoftware/ns-flex-insights/internal/dto"
	"github.com/NixySoftware/ns-flex-insights/internal/errors"
	"github.com/NixySoftware/ns-flex-insights/internal/models"
	"github.com/NixySoftware/ns-flex-insights/internal/parser"
	"github.com/NixySoftware/ns-flex-insights/internal/repositories"
	"github.com/NixySoftware/ns-flex-insights/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxUploadSize bounds an uploaded travel-history file (a year of NS Flex
// travel fits in well under a megabyte).
const maxUploadSize = 10 << 20

const dateLayout = "2006-01-02"

// TravelHistoryHandler handles travel-history upload, retrieval and
// subscription comparison requests
type TravelHistoryHandler struct {
	importRepo      repositories.ImportRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	normalizer      services.NormalizerServiceInterface
	pricing         services.PricingServiceInterface
}

// NewTravelHistoryHandler creates a new travel history handler
func NewTravelHistoryHandler(
	importRepo repositories.ImportRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	normalizer services.NormalizerServiceInterface,
	pricing services.PricingServiceInterface,
) *TravelHistoryHandler {
	return &TravelHistoryHandler{
		importRepo:      importRepo,
		transactionRepo: transactionRepo,
		normalizer:      normalizer,
		pricing:         pricing,
	}
}

// Upload ingests an uploaded travel-history CSV export
// @Summary Upload travel history
// @Description Parse and normalize an NS Flex travel-history CSV export, store it as an import, and return the normalized transactions with their summary
// @Tags TravelHistory
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Travel-history CSV export"
// @Success 201 {object} dto.UploadTravelHistoryResponse "Stored import with normalized transactions"
// @Failure 400 {object} errors.ErrorResponse "IMPORT_002 - No file uploaded or IMPORT_004 - Empty file"
// @Failure 422 {object} errors.ErrorResponse "IMPORT_003 - File could not be read"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /travel-history [post]
func (h *TravelHistoryHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return SendError(c, errors.ImportFileMissing)
	}
	if fileHeader.Size > maxUploadSize {
		return SendError(c, errors.ImportFileUnreadable,
			errors.WithMessage("Uploaded file exceeds the maximum allowed size"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return SendError(c, errors.ImportFileUnreadable)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return SendError(c, errors.ImportFileUnreadable)
	}

	parsed, err := parser.Parse(data)
	if err != nil {
		if err == parser.ErrEmptyFile {
			return SendError(c, errors.ImportEmptyFile)
		}
		return SendError(c, errors.ImportFileUnreadable, errors.WithDetails(err.Error()))
	}

	result := h.normalizer.Normalize(parsed.Rows)

	imp := &models.Import{
		FileName: fileHeader.Filename,
		RowCount: len(result.Transactions),
		Rejected: len(result.Rejected),
	}
	if err := h.importRepo.Create(imp, result.Transactions); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.UploadTravelHistoryResponse{
		Import:       importInfo(imp),
		Transactions: result.Transactions,
		Summary:      h.normalizer.Summarize(result.Transactions),
		Rejected:     rejectedRows(result.Rejected),
		Warnings:     parseWarnings(parsed.Warnings),
	})
}

// ListImports lists the stored travel-history imports
// @Summary List imports
// @Description List all stored travel-history imports, newest first
// @Tags TravelHistory
// @Produce json
// @Success 200 {object} dto.ListImportsResponse "Stored imports"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /travel-history [get]
func (h *TravelHistoryHandler) ListImports(c echo.Context) error {
	imports, err := h.importRepo.List()
	if err != nil {
		return SendSystemError(c, err)
	}

	infos := make([]dto.ImportInfo, 0, len(imports))
	for i := range imports {
		infos = append(infos, importInfo(&imports[i]))
	}

	return c.JSON(http.StatusOK, dto.ListImportsResponse{Imports: infos})
}

// GetTransactions returns the normalized transactions of one import
// @Summary Get import transactions
// @Description Return the normalized transactions of a stored import in canonical order, with their aggregated summary
// @Tags TravelHistory
// @Produce json
// @Param importId path string true "Import ID (UUID)"
// @Success 200 {object} dto.ListTransactionsResponse "Normalized transactions with summary"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Invalid import ID"
// @Failure 404 {object} errors.ErrorResponse "IMPORT_001 - Import not found"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /travel-history/{importId}/transactions [get]
func (h *TravelHistoryHandler) GetTransactions(c echo.Context) error {
	importID, err := uuid.Parse(c.Param("importId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid import ID"))
	}

	imp, err := h.importRepo.GetByID(importID)
	if err != nil {
		if err == repositories.ErrImportNotFound {
			return SendError(c, errors.ImportNotFound)
		}
		return SendSystemError(c, err)
	}

	transactions, err := h.transactionRepo.GetByImportID(importID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Import:       importInfo(imp),
		Transactions: transactions,
		Summary:      h.normalizer.Summarize(transactions),
	})
}

// Compare projects the cost of every subscription variant over an import
// @Summary Compare subscriptions
// @Description Project the cost of every NS Flex subscription variant over an import's travel history and compute savings relative to the current subscription
// @Tags TravelHistory
// @Accept json
// @Produce json
// @Param importId path string true "Import ID (UUID)"
// @Param request body dto.ComparisonRequest true "Comparison parameters"
// @Success 200 {object} models.ComparisonTable "Cost comparison per subscription variant"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request or COMPARISON_003 - Invalid period"
// @Failure 404 {object} errors.ErrorResponse "IMPORT_001 - Import not found"
// @Failure 422 {object} errors.ErrorResponse "COMPARISON_001 - Unknown subscription or COMPARISON_004 - Nothing to compare"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /travel-history/{importId}/comparison [post]
func (h *TravelHistoryHandler) Compare(c echo.Context) error {
	importID, err := uuid.Parse(c.Param("importId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid import ID"))
	}

	var req dto.ComparisonRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	from, to, err := parsePeriod(req.From, req.To)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	}

	if _, err := h.importRepo.GetByID(importID); err != nil {
		if err == repositories.ErrImportNotFound {
			return SendError(c, errors.ImportNotFound)
		}
		return SendSystemError(c, err)
	}

	var transactions []models.Transaction
	if from.IsZero() && to.IsZero() {
		transactions, err = h.transactionRepo.GetByImportID(importID)
	} else {
		transactions, err = h.transactionRepo.GetByImportIDAndRange(importID, from, to)
	}
	if err != nil {
		return SendSystemError(c, err)
	}

	table, err := h.pricing.Compare(transactions, models.SubscriptionType(req.Subscription), req.Class, from, to)
	if err != nil {
		switch err {
		case services.ErrInvalidSubscription:
			return SendError(c, errors.ComparisonInvalidSubscription)
		case services.ErrInvalidClass:
			return SendError(c, errors.ComparisonInvalidClass)
		case services.ErrInvalidPeriod:
			return SendError(c, errors.ComparisonInvalidPeriod)
		case services.ErrEmptyPeriod:
			return SendError(c, errors.ComparisonEmptyPeriod)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, table)
}

// parsePeriod parses the optional from/to date bounds.
func parsePeriod(fromStr, toStr string) (time.Time, time.Time, error) {
	var from, to time.Time

	if fromStr != "" {
		parsed, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse(dateLayout, toStr)
		if err != nil {
			return from, to, err
		}
		// Cover the whole end day.
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	return from, to, nil
}

func importInfo(imp *models.Import) dto.ImportInfo {
	return dto.ImportInfo{
		ID:        imp.ID,
		FileName:  imp.FileName,
		RowCount:  imp.RowCount,
		Rejected:  imp.Rejected,
		CreatedAt: imp.CreatedAt,
	}
}

func rejectedRows(rejected []services.RejectedRow) []dto.RejectedRowInfo {
	rows := make([]dto.RejectedRowInfo, 0, len(rejected))
	for _, r := range rejected {
		rows = append(rows, dto.RejectedRowInfo{Index: r.Index, Reason: r.Reason})
	}
	return rows
}

func parseWarnings(warnings []parser.ParseWarning) []dto.ParseWarningInfo {
	infos := make([]dto.ParseWarningInfo, 0, len(warnings))
	for _, w := range warnings {
		infos = append(infos, dto.ParseWarningInfo{Row: w.Row, Message: w.Message})
	}
	return infos
}
