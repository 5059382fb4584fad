package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/htloc2506/codingdesk/internal/dto"
	"github.com/htloc2506/codingdesk/internal/service"
)

type AdminProjectController struct {
	projectService service.ProjectService
	schemeService  service.SchemeService
}

func NewAdminProjectController(projectService service.ProjectService, schemeService service.SchemeService) *AdminProjectController {
	return &AdminProjectController{projectService: projectService, schemeService: schemeService}
}

// CreateProject godoc
// @Summary (Admin) Create a new project
// @Description Admin creates a project together with its jurisdictions.
// @Tags Admin - Projects
// @Accept json
// @Produce json
// @Param project_data body dto.ProjectCreateDTO true "Project creation data"
// @Success 201 {object} dto.ProjectResponseDTO "Project created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/projects [post]
func (c *AdminProjectController) CreateProject(ctx *gin.Context) {
	var req dto.ProjectCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateProject: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.projectService.CreateProject(req)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Admin CreateProject: Service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create project", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetProject godoc
// @Summary (Admin) Get a project
// @Description Returns a project with its jurisdictions.
// @Tags Admin - Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} dto.ProjectResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid project ID"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /admin/projects/{id} [get]
func (c *AdminProjectController) GetProject(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid project ID"})
		return
	}

	resp, err := c.projectService.GetProject(uint(id))
	if err != nil {
		log.Warn().Err(err).Uint64("projectID", id).Msg("Admin GetProject: Service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Project not found", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateScheme godoc
// @Summary (Admin) Create a project's coding scheme
// @Description Admin uploads the full question scheme for a project. Parent links use parent_index, referring to an earlier question in the same upload.
// @Tags Admin - Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param scheme_data body dto.SchemeCreateDTO true "Scheme creation data"
// @Success 201 {array} model.SchemeQuestion "Scheme created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/projects/{id}/scheme [post]
func (c *AdminProjectController) CreateScheme(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid project ID"})
		return
	}

	var req dto.SchemeCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateScheme: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	questions, err := c.schemeService.CreateScheme(uint(id), req)
	if err != nil {
		log.Error().Err(err).Uint64("projectID", id).Msg("Admin CreateScheme: Service error")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Failed to create scheme", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, questions)
}
