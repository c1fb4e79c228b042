package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/provtrack/bidwatch/internal/model"
	"github.com/provtrack/bidwatch/internal/service"
)

type ExcelGenerator interface {
	Generate(register model.ContractRegister) ([]byte, error)
}

type PDFGenerator interface {
	Generate(row model.RegisterRow) ([]byte, error)
}

type Handler struct {
	contracts *service.ContractService
	engineers *service.EngineerService
	statuses  *service.StatusService
	excel     ExcelGenerator
	pdf       PDFGenerator
	log       zerolog.Logger
}

func NewHandler(
	contracts *service.ContractService,
	engineers *service.EngineerService,
	statuses *service.StatusService,
	excel ExcelGenerator,
	pdf PDFGenerator,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		contracts: contracts,
		engineers: engineers,
		statuses:  statuses,
		excel:     excel,
		pdf:       pdf,
		log:       log,
	}
}

// Register wires the API routes. Destructive routes go on the admin
// group so only ADMIN tokens can remove records.
func (h *Handler) Register(router, admin gin.IRouter) {
	router.POST("/contracts", h.createContract)
	router.GET("/contracts", h.listContracts)
	router.GET("/contracts/:id", h.getContract)
	router.PUT("/contracts/:id", h.updateContract)
	admin.DELETE("/contracts/:id", h.deleteContract)

	router.POST("/contracts/:id/engineers", h.assignEngineer)
	router.GET("/contracts/:id/engineers", h.contractEngineers)
	router.DELETE("/contracts/:id/engineers/:engineerId", h.removeEngineer)

	router.POST("/contracts/:id/statuses", h.linkStatus)
	router.GET("/contracts/:id/statuses", h.contractStatuses)
	router.PUT("/contracts/:id/status", h.setCurrentStatus)
	router.GET("/contracts/:id/status", h.currentStatus)

	router.GET("/contracts/:id/summary.pdf", h.contractSummaryPDF)
	router.GET("/export/contracts", h.exportRegister)

	router.POST("/engineers", h.createEngineer)
	router.GET("/engineers", h.listEngineers)
	router.GET("/engineers/:id", h.getEngineer)
	router.PUT("/engineers/:id", h.updateEngineer)
	admin.DELETE("/engineers/:id", h.deleteEngineer)
	router.GET("/engineers/:id/contracts", h.engineerContracts)

	router.POST("/project-statuses", h.createStatus)
	router.GET("/project-statuses", h.listStatuses)
	admin.DELETE("/project-statuses/:id", h.deleteStatus)
}

// createContract is the submission endpoint of the creation workflow:
// it returns the persisted record, or a field name to message map the
// form mirrors into its error state.
func (h *Handler) createContract(c *gin.Context) {
	var draft service.ContractDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, err := h.contracts.CreateContract(c.Request.Context(), draft)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

// listContracts also serves single-contract lookup by procurement
// number via the id_no query parameter.
func (h *Handler) listContracts(c *gin.Context) {
	if idNo := c.Query("id_no"); idNo != "" {
		contract, err := h.contracts.GetContractByIDNo(c.Request.Context(), idNo)
		if err != nil {
			h.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, contract)
		return
	}

	limit := intQuery(c, "limit", 0)
	offset := intQuery(c, "offset", 0)

	contracts, err := h.contracts.ListContracts(c.Request.Context(), limit, offset)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) getContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	contract, err := h.contracts.GetContract(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) updateContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var draft service.ContractDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, err := h.contracts.UpdateContract(c.Request.Context(), id, draft)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) deleteContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.contracts.DeleteContract(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type assignEngineerRequest struct {
	EngineerID string `json:"engineer_id" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

func (h *Handler) assignEngineer(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req assignEngineerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engineerID, err := uuid.Parse(strings.TrimSpace(req.EngineerID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid engineer_id"})
		return
	}
	role, ok := model.ParseEngineerRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	link, err := h.contracts.AssignEngineer(c.Request.Context(), contractID, engineerID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *Handler) removeEngineer(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	engineerID, ok := pathID(c, "engineerId")
	if !ok {
		return
	}
	role, ok := model.ParseEngineerRole(c.Query("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	if err := h.contracts.RemoveEngineer(c.Request.Context(), contractID, engineerID, role); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) contractEngineers(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	role, ok := model.ParseEngineerRole(c.Query("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	engineers, err := h.contracts.EngineersWithRole(c.Request.Context(), contractID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, engineers)
}

func (h *Handler) engineerContracts(c *gin.Context) {
	engineerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	role, ok := model.ParseEngineerRole(c.Query("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}

	contracts, err := h.contracts.ContractsForEngineer(c.Request.Context(), engineerID, role)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

type linkStatusRequest struct {
	ProjectStatusID string `json:"project_status_id" binding:"required"`
}

func (h *Handler) linkStatus(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req linkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	statusID, err := uuid.Parse(strings.TrimSpace(req.ProjectStatusID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_status_id"})
		return
	}

	link, err := h.contracts.LinkStatus(c.Request.Context(), contractID, statusID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *Handler) contractStatuses(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	links, err := h.contracts.StatusLinks(c.Request.Context(), contractID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *Handler) setCurrentStatus(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req linkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	statusID, err := uuid.Parse(strings.TrimSpace(req.ProjectStatusID))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_status_id"})
		return
	}

	if err := h.contracts.SetCurrentStatus(c.Request.Context(), contractID, statusID); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) currentStatus(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	status, err := h.contracts.CurrentStatus(c.Request.Context(), contractID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) exportRegister(c *gin.Context) {
	register, err := h.contracts.BuildRegister(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	content, err := h.excel.Generate(*register)
	if err != nil {
		h.handleError(c, err)
		return
	}

	fileName := "contracts-" + register.GeneratedAt.Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *Handler) contractSummaryPDF(c *gin.Context) {
	contractID, ok := pathID(c, "id")
	if !ok {
		return
	}
	row, err := h.contracts.RegisterRow(c.Request.Context(), contractID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	content, err := h.pdf.Generate(*row)
	if err != nil {
		h.handleError(c, err)
		return
	}

	fileName := "contract-" + strings.TrimSpace(row.Contract.IDNo) + ".pdf"
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/pdf", content)
}

func (h *Handler) createEngineer(c *gin.Context) {
	var in service.EngineerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	engineer, err := h.engineers.CreateEngineer(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, engineer)
}

func (h *Handler) listEngineers(c *gin.Context) {
	engineers, err := h.engineers.ListEngineers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, engineers)
}

func (h *Handler) getEngineer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	engineer, err := h.engineers.GetEngineer(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, engineer)
}

func (h *Handler) updateEngineer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in service.EngineerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	engineer, err := h.engineers.UpdateEngineer(c.Request.Context(), id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, engineer)
}

func (h *Handler) deleteEngineer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.engineers.DeleteEngineer(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createStatus(c *gin.Context) {
	var in service.StatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, err := h.statuses.CreateStatus(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, status)
}

func (h *Handler) listStatuses(c *gin.Context) {
	statuses, err := h.statuses.ListStatuses(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *Handler) deleteStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.statuses.DeleteStatus(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrReference):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
