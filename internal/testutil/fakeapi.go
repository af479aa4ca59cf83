package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"taskboard/internal/service"
)

// FakeAPISecret signs the tokens FakeAPI issues.
const FakeAPISecret = "fake-api-secret"

// RecordedRequest is one request seen by FakeAPI.
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
}

type fakeUser struct {
	id       int64
	name     string
	email    string
	password string
}

// FakeAPI is an in-process HTTP server speaking the task REST API,
// mounted under /api/v1.
type FakeAPI struct {
	Server *httptest.Server

	mu         sync.Mutex
	users      map[string]fakeUser
	tasks      []service.Task
	nextUserID int64
	nextTaskID int64
	requests   []RecordedRequest

	totalOverride int64
	failTasks     int
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &FakeAPI{
		users:      make(map[string]fakeUser),
		nextUserID: 1,
		nextTaskID: 1,
	}

	r := gin.New()
	r.Use(api.record)
	v1 := r.Group("/api/v1")
	v1.POST("/auth/register", api.register)
	v1.POST("/auth/login", api.login)

	tasks := v1.Group("/tasks", api.authenticate, api.injectFailure)
	tasks.POST("", api.createTask)
	tasks.GET("/user/:userId", api.listTasks)
	tasks.PATCH("/:id", api.patchTask)
	tasks.DELETE("/:id", api.deleteTask)

	api.Server = httptest.NewServer(r)
	t.Cleanup(api.Server.Close)
	return api
}

// BaseURL returns the API root to configure clients with.
func (a *FakeAPI) BaseURL() string {
	return a.Server.URL + "/api/v1"
}

// AddUser registers a user directly and returns its id.
func (a *FakeAPI) AddUser(name, email, password string) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextUserID
	a.nextUserID++
	a.users[email] = fakeUser{id: id, name: name, email: email, password: password}
	return id
}

// AddTask stores a task, assigning its id.
func (a *FakeAPI) AddTask(task service.Task) service.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	task.ID = a.nextTaskID
	a.nextTaskID++
	a.tasks = append(a.tasks, task)
	return task
}

// SetTotalOverride makes list pages report total as totalElements.
// Zero restores the real count.
func (a *FakeAPI) SetTotalOverride(total int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.totalOverride = total
}

// FailTasks makes every /tasks route answer with status. Zero disables.
func (a *FakeAPI) FailTasks(status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failTasks = status
}

// Tasks returns a copy of the stored tasks.
func (a *FakeAPI) Tasks() []service.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]service.Task, len(a.tasks))
	copy(out, a.tasks)
	return out
}

// Requests returns the requests seen so far.
func (a *FakeAPI) Requests() []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]RecordedRequest, len(a.requests))
	copy(out, a.requests)
	return out
}

// IssueToken signs a token the way the API's login endpoint does.
func IssueToken(userID int64, name string) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"name":   name,
	}).SignedString([]byte(FakeAPISecret))
	if err != nil {
		panic(err)
	}
	return tok
}

func (a *FakeAPI) record(c *gin.Context) {
	a.mu.Lock()
	a.requests = append(a.requests, RecordedRequest{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		RawQuery:      c.Request.URL.RawQuery,
		Authorization: c.GetHeader("Authorization"),
	})
	a.mu.Unlock()
	c.Next()
}

func (a *FakeAPI) authenticate(c *gin.Context) {
	raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing token"})
		return
	}
	_, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return []byte(FakeAPISecret), nil
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}
	c.Next()
}

func (a *FakeAPI) injectFailure(c *gin.Context) {
	a.mu.Lock()
	status := a.failTasks
	a.mu.Unlock()
	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"message": "injected failure"})
		return
	}
	c.Next()
}

func (a *FakeAPI) register(c *gin.Context) {
	var body struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	a.mu.Lock()
	_, exists := a.users[body.Email]
	a.mu.Unlock()
	if exists {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
		return
	}

	a.AddUser(body.Name, body.Email, body.Password)
	c.Status(http.StatusCreated)
}

func (a *FakeAPI) login(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	a.mu.Lock()
	u, ok := a.users[body.Email]
	a.mu.Unlock()
	if !ok || u.password != body.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Bad credentials"})
		return
	}
	c.String(http.StatusOK, IssueToken(u.id, u.name))
}

func (a *FakeAPI) createTask(c *gin.Context) {
	var body service.NewTask
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required"})
		return
	}
	created := a.AddTask(service.Task{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
		UserID:      body.UserID,
	})
	c.JSON(http.StatusCreated, created)
}

func (a *FakeAPI) listTasks(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad user id"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	if page < 0 {
		page = 0
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	if size <= 0 {
		size = 20
	}

	a.mu.Lock()
	var owned []service.Task
	for _, t := range a.tasks {
		if t.UserID == userID {
			owned = append(owned, t)
		}
	}
	total := int64(len(owned))
	if a.totalOverride != 0 {
		total = a.totalOverride
	}
	a.mu.Unlock()

	start := page * size
	end := start + size
	if start > len(owned) {
		start = len(owned)
	}
	if end > len(owned) {
		end = len(owned)
	}
	content := owned[start:end]
	if content == nil {
		content = []service.Task{}
	}

	c.JSON(http.StatusOK, service.Page{
		Content:       content,
		TotalElements: total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
		Number:        page,
		Size:          size,
	})
}

func (a *FakeAPI) patchTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad task id"})
		return
	}
	var body struct {
		Status service.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.tasks {
		if a.tasks[i].ID == id {
			a.tasks[i].Status = body.Status
			c.JSON(http.StatusOK, a.tasks[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("task %d not found", id)})
}

func (a *FakeAPI) deleteTask(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad task id"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.tasks {
		if a.tasks[i].ID == id {
			a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("task %d not found", id)})
}
