package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"todo-server/internal/domain"
	"todo-server/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	todos  service.TodoService
	tokens service.TokenService
	logger *logrus.Logger
}

func NewHandler(users service.UserService, todos service.TodoService, tokens service.TokenService, logger *logrus.Logger) *Handler {
	return &Handler{
		users:  users,
		todos:  todos,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(requestLogger(h.logger))

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.GET("/me", h.authRequired(), h.currentUser)
		}

		todos := api.Group("/todos", h.authRequired())
		{
			todos.GET("", h.listTodos)
			todos.POST("", h.createTodo)
			todos.DELETE("/completed/all", h.clearCompleted)
			todos.GET("/:id", h.getTodo)
			todos.PUT("/:id", h.updateTodo)
			todos.PATCH("/:id/toggle", h.toggleTodo)
			todos.DELETE("/:id", h.deleteTodo)
		}
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTodoRequest struct {
	Text string `json:"text"`
}

type updateTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type TodoResponse struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Completed bool    `json:"completed"`
	UserID    string  `json:"userId"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			fail(c, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, service.ErrPasswordTooShort):
			fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
		case errors.Is(err, service.ErrUserAlreadyExists):
			fail(c, http.StatusBadRequest, "User already exists")
		default:
			h.serverError(c, "register", err)
		}
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		h.serverError(c, "register", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"token":   token,
		"user":    userToResponse(user),
	})
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			fail(c, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			fail(c, http.StatusUnauthorized, "Invalid email or password")
		default:
			h.serverError(c, "login", err)
		}
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		h.serverError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    userToResponse(user),
	})
}

func (h *Handler) currentUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		h.serverError(c, "current user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userToResponse(user),
	})
}

func (h *Handler) listTodos(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		h.serverError(c, "list todos", err)
		return
	}

	resp := make([]TodoResponse, len(todos))
	for i := range todos {
		resp[i] = todoToResponse(todos[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"todos":   resp,
	})
}

func (h *Handler) getTodo(c *gin.Context) {
	todo, err := h.todos.Get(c.Request.Context(), identityFrom(c).UserID, c.Param("id"))
	if err != nil {
		h.todoError(c, "get todo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"todo":    todoToResponse(*todo),
	})
}

func (h *Handler) createTodo(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Todo text is required")
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), identityFrom(c).UserID, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTodoText) {
			fail(c, http.StatusBadRequest, "Todo text is required")
			return
		}
		h.serverError(c, "create todo", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Todo created successfully",
		"todo":    todoToResponse(*todo),
	})
}

func (h *Handler) updateTodo(c *gin.Context) {
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	todo, err := h.todos.Update(
		c.Request.Context(),
		identityFrom(c).UserID,
		c.Param("id"),
		service.TodoUpdate{Text: req.Text, Completed: req.Completed},
	)
	if err != nil {
		h.todoError(c, "update todo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Todo updated successfully",
		"todo":    todoToResponse(*todo),
	})
}

func (h *Handler) toggleTodo(c *gin.Context) {
	todo, err := h.todos.Toggle(c.Request.Context(), identityFrom(c).UserID, c.Param("id"))
	if err != nil {
		h.todoError(c, "toggle todo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Todo toggled successfully",
		"todo":    todoToResponse(*todo),
	})
}

func (h *Handler) deleteTodo(c *gin.Context) {
	if err := h.todos.Delete(c.Request.Context(), identityFrom(c).UserID, c.Param("id")); err != nil {
		h.todoError(c, "delete todo", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Todo deleted successfully",
	})
}

func (h *Handler) clearCompleted(c *gin.Context) {
	deleted, err := h.todos.ClearCompleted(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		h.serverError(c, "clear completed todos", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Completed todos deleted successfully",
		"deletedCount": deleted,
	})
}

// todoError maps the common per-todo failure modes; everything unexpected
// becomes a generic 500.
func (h *Handler) todoError(c *gin.Context, op string, err error) {
	if errors.Is(err, service.ErrTodoNotFound) {
		fail(c, http.StatusNotFound, "Todo not found")
		return
	}
	h.serverError(c, op, err)
}

// serverError logs the real cause server-side and answers with a stable
// generic message so no internal detail reaches the client.
func (h *Handler) serverError(c *gin.Context, op string, err error) {
	h.logger.WithField("op", op).WithError(err).Error("request failed")
	fail(c, http.StatusInternalServerError, "Server error")
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Email: user.Email,
	}
}

func todoToResponse(todo domain.Todo) TodoResponse {
	resp := TodoResponse{
		ID:        todo.ID,
		Text:      todo.Text,
		Completed: todo.Completed,
		UserID:    todo.UserID,
		CreatedAt: todo.CreatedAt.Format(time.RFC3339),
	}
	if todo.UpdatedAt != nil {
		v := todo.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &v
	}
	return resp
}
