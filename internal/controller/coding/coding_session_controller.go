package coding

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/htloc2506/codingdesk/internal/dto"
	"github.com/htloc2506/codingdesk/internal/fault"
	"github.com/htloc2506/codingdesk/internal/model"
	"github.com/htloc2506/codingdesk/internal/session"
	"github.com/htloc2506/codingdesk/internal/validation"
)

// CodingSessionController exposes the answer state engine over HTTP. Every
// mutating endpoint applies the event to the session and replies with a fresh
// view snapshot, so the client always renders consistent state.
type CodingSessionController struct {
	hub *session.Hub
}

func NewCodingSessionController(hub *session.Hub) *CodingSessionController {
	return &CodingSessionController{hub: hub}
}

func (c *CodingSessionController) lookup(ctx *gin.Context) (*session.Session, bool) {
	s, err := c.hub.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, fault.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Session not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to look up session", Details: []string{err.Error()}})
		}
		return nil, false
	}
	return s, true
}

// respond answers a session event: conflicts and transport failures have
// already been folded into the session's notices, so most errors here are
// client mistakes.
func (c *CodingSessionController) respond(ctx *gin.Context, s *session.Session, err error) {
	if err != nil {
		status := http.StatusBadRequest
		if fault.IsTransport(err) {
			status = http.StatusBadGateway
		} else if fault.IsConflict(err) {
			status = http.StatusConflict
		}
		ctx.JSON(status, dto.ErrorResponse{Message: "Request failed", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, s.View())
}

// StartSession godoc
// @Summary Start a coding or validation session
// @Description Loads the project's scheme and the actor's saved answers, then opens a session positioned on the first question.
// @Tags Coding
// @Accept json
// @Produce json
// @Param session_data body dto.StartSessionDTO true "Session parameters"
// @Success 201 {object} session.View "Session started"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 502 {object} dto.ErrorResponse "Scheme could not be loaded"
// @Router /sessions [post]
func (c *CodingSessionController) StartSession(ctx *gin.Context) {
	var req dto.StartSessionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartSession: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	role := session.RoleCoder
	if req.Role == "validator" {
		role = session.RoleValidator
	}
	s, err := c.hub.Start(ctx.Request.Context(), session.StartParams{
		ProjectID:      req.ProjectID,
		JurisdictionID: req.JurisdictionID,
		UserID:         req.UserID,
		Role:           role,
	})
	if err != nil {
		log.Error().Err(err).Uint("projectID", req.ProjectID).Msg("StartSession: Failed to start")
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "Failed to start session", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, s.View())
}

// GetView godoc
// @Summary Get the current session view
// @Tags Coding
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.View
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id} [get]
func (c *CodingSessionController) GetView(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.View())
}

// Navigate godoc
// @Summary Move to another question
// @Description Steps next/previous, jumps to an index, or selects a question (optionally pinning a category).
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param nav body dto.NavigateDTO true "Navigation command"
// @Success 200 {object} session.View
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/navigate [post]
func (c *CodingSessionController) Navigate(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.NavigateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	var err error
	switch req.Direction {
	case "next":
		err = s.Next(ctx.Request.Context())
	case "previous":
		err = s.Previous(ctx.Request.Context())
	case "jump":
		if req.Index == nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "index is required for a jump"})
			return
		}
		err = s.JumpTo(ctx.Request.Context(), *req.Index)
	case "select":
		if req.QuestionID == 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "question_id is required for a select"})
			return
		}
		err = s.SelectQuestion(ctx.Request.Context(), req.QuestionID, req.CategoryID)
	}
	c.respond(ctx, s, err)
}

// SelectCategory godoc
// @Summary Switch the active category tab
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param category body dto.SelectCategoryDTO true "Category ordinal"
// @Success 200 {object} session.View
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/category [post]
func (c *CodingSessionController) SelectCategory(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.SelectCategoryDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	c.respond(ctx, s, s.SelectCategory(*req.Ordinal))
}

// ToggleChoice godoc
// @Summary Toggle an answer choice on the current question
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param choice body dto.ToggleChoiceDTO true "Answer choice"
// @Success 200 {object} session.View
// @Failure 400 {object} dto.ErrorResponse "Invalid input data or edits disabled"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/answers/toggle [post]
func (c *CodingSessionController) ToggleChoice(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.ToggleChoiceDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	c.respond(ctx, s, s.ToggleChoice(req.AnswerChoiceID))
}

// SetComment godoc
// @Summary Overwrite the current record's comment
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param comment body dto.CommentDTO true "Comment"
// @Success 200 {object} session.View
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/answers/comment [put]
func (c *CodingSessionController) SetComment(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.CommentDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	c.respond(ctx, s, s.SetComment(req.Comment))
}

// SetPincite godoc
// @Summary Overwrite a selected choice's pincite
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param pincite body dto.PinciteDTO true "Pincite"
// @Success 200 {object} session.View
// @Failure 400 {object} dto.ErrorResponse "Choice is not selected"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/answers/pincite [put]
func (c *CodingSessionController) SetPincite(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.PinciteDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	c.respond(ctx, s, s.SetPincite(req.AnswerChoiceID, req.Pincite))
}

// SetTextAnswer godoc
// @Summary Overwrite a selected choice's free-text answer
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param text body dto.TextAnswerDTO true "Text answer"
// @Success 200 {object} session.View
// @Failure 400 {object} dto.ErrorResponse "Choice is not selected"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/answers/text [put]
func (c *CodingSessionController) SetTextAnswer(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.TextAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	c.respond(ctx, s, s.SetTextAnswer(req.AnswerChoiceID, req.TextAnswer))
}

// AddAnnotation godoc
// @Summary Append a document annotation to a selected choice
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param annotation body dto.AnnotationCreateDTO true "Annotation"
// @Success 200 {object} session.View
// @Failure 400 {object} dto.ErrorResponse "Choice is not selected"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/answers/annotations [post]
func (c *CodingSessionController) AddAnnotation(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.AnnotationCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	c.respond(ctx, s, s.AddAnnotation(req.AnswerChoiceID, model.Annotation{
		DocumentID: req.DocumentID,
		Text:       req.Text,
		StartPage:  req.StartPage,
		EndPage:    req.EndPage,
	}))
}

// RemoveAnnotation godoc
// @Summary Remove an annotation from a selected choice
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param annotation body dto.AnnotationRemoveDTO true "Annotation position"
// @Success 200 {object} session.View
// @Failure 400 {object} dto.ErrorResponse "Invalid annotation index"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/answers/annotations/remove [post]
func (c *CodingSessionController) RemoveAnnotation(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.AnnotationRemoveDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	c.respond(ctx, s, s.RemoveAnnotation(req.AnswerChoiceID, *req.Index))
}

// ClearAnswer godoc
// @Summary Clear all selections on the current record
// @Description Removes every selected choice. The comment and record flag are kept.
// @Tags Coding
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.View
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/answers [delete]
func (c *CodingSessionController) ClearAnswer(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	c.respond(ctx, s, s.ClearAnswer())
}

// ApplyToAllCategories godoc
// @Summary Copy the current category's answer to all selected categories
// @Tags Coding
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.View
// @Failure 400 {object} dto.ErrorResponse "Current question is not a category child"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/answers/apply-all [post]
func (c *CodingSessionController) ApplyToAllCategories(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	c.respond(ctx, s, s.ApplyToAllCategories())
}

// SetRecordFlag godoc
// @Summary Set a green or yellow flag on the current record
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param flag body dto.RecordFlagDTO true "Flag type and notes"
// @Success 200 {object} session.View
// @Failure 400 {object} dto.ErrorResponse "Invalid flag type"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/answers/flag [put]
func (c *CodingSessionController) SetRecordFlag(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.RecordFlagDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	c.respond(ctx, s, s.SetRecordFlag(req.Type, req.Notes))
}

// Save godoc
// @Summary Flush pending saves immediately
// @Description Skips the debounce window and posts every dirty record now.
// @Tags Coding
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.View
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/save [post]
func (c *CodingSessionController) Save(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	c.respond(ctx, s, s.Save(ctx.Request.Context()))
}

// Retry godoc
// @Summary Retry a failed save of the current record
// @Tags Coding
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.View
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/save/retry [post]
func (c *CodingSessionController) Retry(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	c.respond(ctx, s, s.Retry(ctx.Request.Context()))
}

// BulkValidate godoc
// @Summary Bulk-approve coder answers (validators only)
// @Description Question scope copies the given coder's answer to the current question. Jurisdiction and project scope run a server-side reconciliation pass.
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param bulk body dto.BulkValidateDTO true "Scope and coder"
// @Success 200 {object} session.View
// @Failure 400 {object} dto.ErrorResponse "Session is not a validator session"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 502 {object} dto.ErrorResponse "Bulk validation call failed"
// @Router /sessions/{id}/validate [post]
func (c *CodingSessionController) BulkValidate(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.BulkValidateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	scope := validation.ScopeQuestion
	switch req.Scope {
	case "jurisdiction":
		scope = validation.ScopeJurisdiction
	case "project":
		scope = validation.ScopeProject
	}
	if scope == validation.ScopeQuestion && req.CoderID == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "coder_id is required for question scope"})
		return
	}
	c.respond(ctx, s, s.BulkValidate(ctx.Request.Context(), scope, req.CoderID))
}

// SaveRedFlag godoc
// @Summary Raise a red flag on the current question
// @Description A red flag stops all coding on the question until it is cleared.
// @Tags Coding
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param flag body dto.RedFlagDTO true "Flag notes"
// @Success 200 {object} session.View
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 502 {object} dto.ErrorResponse "Flag could not be saved"
// @Router /sessions/{id}/flags/red [post]
func (c *CodingSessionController) SaveRedFlag(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	var req dto.RedFlagDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	c.respond(ctx, s, s.SaveRedFlag(ctx.Request.Context(), req.Notes))
}

// ClearRedFlag godoc
// @Summary Clear a red flag from the current question
// @Tags Coding
// @Produce json
// @Param id path string true "Session ID"
// @Param flag_id path int true "Flag ID"
// @Success 200 {object} session.View
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 502 {object} dto.ErrorResponse "Flag could not be cleared"
// @Router /sessions/{id}/flags/red/{flag_id} [delete]
func (c *CodingSessionController) ClearRedFlag(ctx *gin.Context) {
	s, ok := c.lookup(ctx)
	if !ok {
		return
	}
	flagID, err := strconv.ParseUint(ctx.Param("flag_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid flag ID"})
		return
	}
	c.respond(ctx, s, s.ClearRedFlag(ctx.Request.Context(), uint(flagID)))
}

// CloseSession godoc
// @Summary End a session
// @Description Drops the session from the hub. Pending debounce windows are cancelled; in-flight saves complete normally.
// @Tags Coding
// @Produce json
// @Param id path string true "Session ID"
// @Success 204 "Session closed"
// @Router /sessions/{id} [delete]
func (c *CodingSessionController) CloseSession(ctx *gin.Context) {
	c.hub.Close(ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}
