package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/dto"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// projectHandler handles HTTP requests for projects and their transactions.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
	errors         errorResponder
}

func newProjectHandler(ps portssvc.ProjectSvcFacade, errs errorResponder) *projectHandler {
	return &projectHandler{
		projectService: ps,
		errors:         errs,
	}
}

// registerProjectRoutes registers routes related to projects.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade, errs errorResponder) {
	h := newProjectHandler(projectService, errs)

	projects := rg.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.POST("", h.createProject)
		projects.GET("/:projectID", h.getProject)
		projects.PUT("/:projectID", h.updateProject)
		projects.DELETE("/:projectID", h.deleteProject)

		projects.POST("/:projectID/transactions", h.appendTransaction)
		projects.PUT("/:projectID/transactions/:ref", h.updateTransaction)
	}
}

// listProjects godoc
// @Summary List projects
// @Description Retrieves every project with its transactions, most recently created first
// @Tags projects
// @Produce json
// @Success 200 {array} dto.ProjectResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects(c.Request.Context())
	if err != nil {
		h.errors.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListProjectResponse(projects))
}

// createProject godoc
// @Summary Create a project
// @Description Creates a project with an empty transaction list
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.respondBindError(c, err)
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req)
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	logger.Info("Project created", slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, dto.ProjectEnvelope{
		Message: "Project created successfully",
		Project: dto.ToProjectResponse(project),
	})
}

// getProject godoc
// @Summary Get a project
// @Description Retrieves one project with its transactions in index order
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed project ID"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects/{projectID} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	project, err := h.projectService.GetProjectByID(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		h.errors.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// updateProject godoc
// @Summary Update a project
// @Description Replaces the name and description of a project
// @Tags projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "New project details"
// @Success 200 {object} dto.ProjectEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects/{projectID} [put]
func (h *projectHandler) updateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.respondBindError(c, err)
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), c.Param("projectID"), req)
	if err != nil {
		h.errors.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProjectEnvelope{
		Message: "Project updated successfully",
		Project: dto.ToProjectResponse(project),
	})
}

// deleteProject godoc
// @Summary Delete a project
// @Description Deletes a project together with all of its transactions
// @Tags projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} dto.ProjectEnvelope "The removed project"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects/{projectID} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	project, err := h.projectService.DeleteProject(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		h.errors.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ProjectEnvelope{
		Message: "Project deleted successfully",
		Project: dto.ToProjectResponse(project),
	})
}

// appendTransaction godoc
// @Summary Append a transaction
// @Description Adds a transaction at the end of the project's list. amount may be a number or numeric text.
// @Tags transactions
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param transaction body dto.TransactionRequest true "Transaction"
// @Success 201 {object} dto.AppendTransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects/{projectID}/transactions [post]
func (h *projectHandler) appendTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.respondBindError(c, err)
		return
	}
	fields, err := req.ToTransactionFields()
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	txn, project, err := h.projectService.AppendTransaction(c.Request.Context(), c.Param("projectID"), fields)
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	logger.Info("Transaction appended",
		slog.String("project_id", project.ProjectID),
		slog.Int("index", txn.Index))
	c.JSON(http.StatusCreated, dto.AppendTransactionResponse{
		Message:     "Transaction added successfully",
		Transaction: dto.ToTransactionResponse(txn),
		Index:       txn.Index,
		Project:     dto.ToProjectResponse(project),
	})
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Replaces every field of a transaction. ref is the transaction ID or its zero-based index.
// @Tags transactions
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param ref path string true "Transaction ID or index"
// @Param transaction body dto.TransactionRequest true "Transaction"
// @Success 200 {object} dto.UpdateTransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error, malformed reference or index out of range"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects/{projectID}/transactions/{ref} [put]
func (h *projectHandler) updateTransaction(c *gin.Context) {
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.respondBindError(c, err)
		return
	}
	fields, err := req.ToTransactionFields()
	if err != nil {
		h.errors.respond(c, err)
		return
	}

	txn, project, err := h.projectService.UpdateTransaction(c.Request.Context(), c.Param("projectID"), c.Param("ref"), fields)
	if err != nil {
		h.errors.respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UpdateTransactionResponse{
		Message:     "Transaction updated successfully",
		Transaction: dto.ToTransactionResponse(txn),
		Project:     dto.ToProjectResponse(project),
	})
}
