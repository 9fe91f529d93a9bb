package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rmercier/mission-docs/internal/config"
	"github.com/rmercier/mission-docs/internal/docgen"
	"github.com/rmercier/mission-docs/internal/export"
	"github.com/rmercier/mission-docs/internal/ledger"
	"github.com/rmercier/mission-docs/internal/missingdata"
	"github.com/rmercier/mission-docs/internal/models"
	"github.com/rmercier/mission-docs/internal/repository"
	"github.com/rmercier/mission-docs/internal/tags"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handlers exposes the expense ledger and document generation over HTTP.
type Handlers struct {
	missions   *repository.MissionRepository
	fields     *repository.ExpenseFieldRepository
	generator  *docgen.Generator
	exporter   *export.LedgerExporter
	generation config.GenerationConfig
	logger     *zap.Logger
}

// NewHandlers creates the API handler set
func NewHandlers(
	missions *repository.MissionRepository,
	fields *repository.ExpenseFieldRepository,
	generator *docgen.Generator,
	exporter *export.LedgerExporter,
	generation config.GenerationConfig,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		missions:   missions,
		fields:     fields,
		generator:  generator,
		exporter:   exporter,
		generation: generation,
		logger:     logger,
	}
}

// Register mounts all routes on the router group
func (h *Handlers) Register(rg *gin.RouterGroup) {
	rg.GET("/tags", h.listTags)

	missions := rg.Group("/missions/:id")
	{
		missions.GET("/expenses", h.listExpenses)
		missions.POST("/expenses", h.saveExpense)
		missions.DELETE("/expenses/:index", h.deleteExpense)
		missions.POST("/expenses/reorder", h.reorderExpenses)
		missions.GET("/expenses/export", h.exportExpenses)

		missions.GET("/documents/:type/missing", h.detectMissing)
		missions.POST("/documents/:type", h.generateDocument)
	}
}

// listTags returns the tag registry, for template authoring UIs.
func (h *Handlers) listTags(c *gin.Context) {
	type tagInfo struct {
		ID       string `json:"id"`
		Label    string `json:"label"`
		Category string `json:"category"`
		Optional bool   `json:"optional"`
	}
	all := tags.All()
	out := make([]tagInfo, 0, len(all))
	for _, s := range all {
		out = append(out, tagInfo{ID: s.ID, Label: s.Label, Category: s.Category, Optional: s.Optional})
	}
	c.JSON(http.StatusOK, gin.H{"tags": out})
}

func (h *Handlers) mission(c *gin.Context) *models.Mission {
	mission, err := h.missions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mission lookup failed"})
		return nil
	}
	if mission == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mission not found"})
		return nil
	}
	return mission
}

func (h *Handlers) loadLedger(c *gin.Context, missionID string) *ledger.Ledger {
	led, err := ledger.Load(c.Request.Context(), h.fields, missionID, h.logger)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load expense ledger"})
		return nil
	}
	return led
}

type expenseLineResponse struct {
	Index     int    `json:"index"`
	Nom       string `json:"nom"`
	TauxTVA   string `json:"taux_tva"`
	MontantHT string `json:"montant_ht"`
	Persisted bool   `json:"persisted"`
}

type totalsResponse struct {
	MissionHT  string `json:"mission_ht"`
	DepensesHT string `json:"depenses_ht"`
	TotalHT    string `json:"total_ht"`
	TVA        string `json:"tva"`
	TotalTTC   string `json:"total_ttc"`
}

func expensesPayload(lines []ledger.Line, totals ledger.Totals) gin.H {
	out := make([]expenseLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, expenseLineResponse{
			Index:     l.Index,
			Nom:       l.Nom,
			TauxTVA:   l.TauxTVA.String(),
			MontantHT: l.MontantHT.StringFixed(2),
			Persisted: l.Persisted,
		})
	}
	return gin.H{
		"lines": out,
		"totals": totalsResponse{
			MissionHT:  totals.MissionHT.StringFixed(2),
			DepensesHT: totals.DepensesHT.StringFixed(2),
			TotalHT:    totals.TotalHT.StringFixed(2),
			TVA:        totals.TVA.StringFixed(2),
			TotalTTC:   totals.TotalTTC.StringFixed(2),
		},
	}
}

// listExpenses returns the mission's expense lines and derived totals
func (h *Handlers) listExpenses(c *gin.Context) {
	mission := h.mission(c)
	if mission == nil {
		return
	}
	led := h.loadLedger(c, mission.ID)
	if led == nil {
		return
	}
	c.JSON(http.StatusOK, expensesPayload(led.Lines(), led.Totals(mission.TauxHoraire, mission.NbHeures)))
}

type saveExpenseRequest struct {
	Index     int             `json:"index" binding:"required"`
	Nom       string          `json:"nom"`
	TauxTVA   decimal.Decimal `json:"taux_tva"`
	MontantHT decimal.Decimal `json:"montant_ht"`
}

// saveExpense validates and persists one line. Saving at index len+1 appends
// a new line; anything beyond that is rejected by the ledger.
func (h *Handlers) saveExpense(c *gin.Context) {
	mission := h.mission(c)
	if mission == nil {
		return
	}

	var req saveExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	led := h.loadLedger(c, mission.ID)
	if led == nil {
		return
	}

	if req.Index == len(led.Lines())+1 {
		led.AddDraft()
	}
	if err := led.SetLine(req.Index, req.Nom, req.TauxTVA, req.MontantHT); err != nil {
		h.ledgerError(c, err)
		return
	}
	if err := led.SaveLine(c.Request.Context(), req.Index); err != nil {
		h.ledgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, expensesPayload(led.Lines(), led.Totals(mission.TauxHoraire, mission.NbHeures)))
}

// deleteExpense removes one line, renumbering the rest
func (h *Handlers) deleteExpense(c *gin.Context) {
	mission := h.mission(c)
	if mission == nil {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
		return
	}

	led := h.loadLedger(c, mission.ID)
	if led == nil {
		return
	}
	if err := led.DeleteLine(c.Request.Context(), index); err != nil {
		h.ledgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, expensesPayload(led.Lines(), led.Totals(mission.TauxHoraire, mission.NbHeures)))
}

type reorderRequest struct {
	From int `json:"from" binding:"required"`
	To   int `json:"to" binding:"required"`
}

// reorderExpenses moves a line; the new order reaches storage only once
// every line is saved.
func (h *Handlers) reorderExpenses(c *gin.Context) {
	mission := h.mission(c)
	if mission == nil {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	led := h.loadLedger(c, mission.ID)
	if led == nil {
		return
	}
	committed, err := led.Reorder(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.ledgerError(c, err)
		return
	}

	payload := expensesPayload(led.Lines(), led.Totals(mission.TauxHoraire, mission.NbHeures))
	payload["committed"] = committed
	c.JSON(http.StatusOK, payload)
}

// exportExpenses downloads the ledger as an Excel workbook
func (h *Handlers) exportExpenses(c *gin.Context) {
	mission := h.mission(c)
	if mission == nil {
		return
	}
	led := h.loadLedger(c, mission.ID)
	if led == nil {
		return
	}

	content, err := h.exporter.Export(mission, led.Lines(), led.Totals(mission.TauxHoraire, mission.NbHeures))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="depenses_`+mission.Numero+`.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

// detectMissing runs the pre-flight detection pass for a document type
func (h *Handlers) detectMissing(c *gin.Context) {
	mission := h.mission(c)
	if mission == nil {
		return
	}

	report, err := h.generator.DetectMissing(c.Request.Context(), mission, c.Param("type"))
	if err != nil {
		h.generationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   report.Items,
		"grouped": missingdata.Group(report.Items),
	})
}

type generateRequest struct {
	CreatedBy        string            `json:"created_by"`
	Force            bool              `json:"force"`
	Overrides        map[string]string `json:"overrides"`
	PersistOverrides bool              `json:"persist_overrides"`
	ExpenseRef       string            `json:"expense_ref"`
}

// generateDocument runs the full pipeline and returns the PDF bytes. Missing
// data stops the run with the structured list unless force is set. The
// document is delivered even when the blob store could not record it; the
// X-Document-Recorded header says which happened.
func (h *Handlers) generateDocument(c *gin.Context) {
	mission := h.mission(c)
	if mission == nil {
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = h.generation.CreatedByDefault
	}

	result, err := h.generator.Generate(c.Request.Context(), mission, c.Param("type"), docgen.Options{
		CreatedBy:        createdBy,
		Force:            req.Force,
		Overrides:        req.Overrides,
		PersistOverrides: req.PersistOverrides || h.generation.PersistOverrides,
		ExpenseRef:       req.ExpenseRef,
	})
	if err != nil {
		h.generationError(c, err)
		return
	}

	recorded := "true"
	if result.Record == nil {
		recorded = "false"
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.Header("X-Document-Recorded", recorded)
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handlers) ledgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrNameRequired),
		errors.Is(err, ledger.ErrAmountNotPositive),
		errors.Is(err, ledger.ErrPriorUnsaved):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Ledger operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ledger operation failed"})
	}
}

func (h *Handlers) generationError(c *gin.Context, err error) {
	var missing *docgen.MissingDataError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusConflict, gin.H{
			"error":   docgen.ErrMissingData.Error(),
			"items":   missing.Items,
			"grouped": missingdata.Group(missing.Items),
		})
	case errors.Is(err, docgen.ErrGenerationInProgress):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, docgen.ErrTemplateNotConfigured),
		errors.Is(err, docgen.ErrTemplateAsset):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
	}
}
