package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/growflow/internal/common"
	"github.com/dmitrijs2005/growflow/internal/server/models"
	"github.com/dmitrijs2005/growflow/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type createTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PlantType   string `json:"plantType"`
}

// updateTaskRequest only carries the client-editable fields; growthStage is
// derived server-side and ignored if sent.
type updateTaskRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func badBody(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, msgBody{Msg: msgBadRequestBody})
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	token, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		abortWithError(c, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusCreated, tokenResponse{Token: token})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err, msgUserNotFound)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// userID is only called behind RequireAuth.
func userID(c *gin.Context) string {
	id, _ := UserIDFromContext(c)
	return id
}

// taskID returns the :id path parameter. Anything that is not a UUID cannot
// name a task, so it is answered with 404 right away.
func taskID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		abortWithError(c, common.ErrorNotFound, msgTaskNotFound)
		return "", false
	}
	return id, true
}

func (s *Server) currentUser(c *gin.Context) {
	user, err := s.users.GetUser(c.Request.Context(), userID(c))
	if err != nil {
		abortWithError(c, err, msgUserNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) listTasks(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context(), userID(c))
	if err != nil {
		abortWithError(c, err, msgTaskNotFound)
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (s *Server) getTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := s.tasks.Get(c.Request.Context(), userID(c), id)
	if err != nil {
		abortWithError(c, err, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), userID(c), services.NewTask{
		Name:        req.Name,
		Description: req.Description,
		PlantType:   req.PlantType,
	})
	if err != nil {
		abortWithError(c, err, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), userID(c), id, models.TaskPatch{
		Name:        req.Name,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		abortWithError(c, err, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := s.tasks.Delete(c.Request.Context(), userID(c), id); err != nil {
		abortWithError(c, err, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, msgBody{Msg: msgTaskRemoved})
}

func (s *Server) createSnapshot(c *gin.Context) {
	if s.snapshots == nil {
		abortWithError(c, common.ErrorServiceUnavailable, "")
		return
	}

	res, err := s.snapshots.Create(c.Request.Context(), userID(c))
	if err != nil {
		abortWithError(c, err, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusCreated, res)
}
