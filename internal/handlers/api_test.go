package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/workmatch-api/internal/constants"
	"github.com/yukikurage/workmatch-api/internal/database"
	"github.com/yukikurage/workmatch-api/internal/dto"
	"github.com/yukikurage/workmatch-api/internal/realtime"
	"github.com/yukikurage/workmatch-api/internal/repository"
	"github.com/yukikurage/workmatch-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testConnOptions keeps the frame limiter out of the way of ordinary tests
var testConnOptions = realtime.ConnOptions{RatePerSec: 50, Burst: 50}

// newTestRouter mounts the full API on a fresh SQLite database with cookie sessions
func newTestRouter(db *gorm.DB, registry *realtime.Registry, connOpts realtime.ConnOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)

	repos := repository.NewGormStore(db)
	authService := services.NewAuthService(repos.Users)
	jobService := services.NewJobService(repos.Jobs, repos.Users)
	messageService := services.NewMessageService(repos.Messages, repos.Notifications, repos.Users, registry)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("test-secret"))))
	RegisterRoutes(r.Group("/api"), Handlers{
		Auth:        NewAuthHandler(authService),
		Profile:     NewProfileHandler(services.NewProfileService(repos.Users, repos.Profiles)),
		Job:         NewJobHandler(jobService, services.NewMatchingService(repos.Users, repos.Profiles, repos.Jobs), services.NewSkillSuggester("")),
		Application: NewApplicationHandler(services.NewApplicationService(repos.Applications, repos.Jobs, repos.Users, repos.Profiles)),
		Rating:      NewRatingHandler(services.NewRatingService(repos.Ratings, repos.Users, repos.Jobs, repos.Applications)),
		Message:     NewMessageHandler(messageService, services.NewNotificationService(repos.Notifications)),
		Realtime:    NewRealtimeHandler(registry, messageService, connOpts),
	})
	return r
}

func openTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	database.SetDB(db)
	if err := database.Migrate(); err != nil {
		return nil, err
	}
	return db, nil
}

// APITestSuite drives the mounted routes the way a client would
type APITestSuite struct {
	suite.Suite
	db       *gorm.DB
	registry *realtime.Registry
	router   *gin.Engine
}

// signedIn is a logged-in client and its session cookies
type signedIn struct {
	userID  uint64
	cookies []*http.Cookie
}

func (suite *APITestSuite) SetupTest() {
	var err error
	suite.db, err = openTestDB()
	suite.Require().NoError(err)

	suite.registry = realtime.NewRegistry()
	suite.router = newTestRouter(suite.db, suite.registry, testConnOptions)
}

func (suite *APITestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *APITestSuite) do(s *signedIn, method, url string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if s != nil {
		for _, c := range s.cookies {
			req.AddCookie(c)
		}
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// signIn creates an account with the given role and logs it in
func (suite *APITestSuite) signIn(username, role string) *signedIn {
	w := suite.do(nil, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "supersecret",
		"role":     role,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(nil, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": "supersecret",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var account dto.AccountDTO
	suite.decode(w, &account)
	return &signedIn{userID: account.ID, cookies: w.Result().Cookies()}
}

func (suite *APITestSuite) postJob(s *signedIn, title string, skills ...string) dto.JobDTO {
	w := suite.do(s, http.MethodPost, "/api/jobs", map[string]any{
		"title":           title,
		"required_skills": skills,
		"rate":            25,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var job dto.JobDTO
	suite.decode(w, &job)
	return job
}

func (suite *APITestSuite) TestProtectedRoutesRequireSession() {
	w := suite.do(nil, http.MethodGet, "/api/jobs", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(nil, http.MethodGet, "/api/auth/me", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestLogoutEndsSession() {
	worker := suite.signIn("wendy", "worker")

	w := suite.do(worker, http.MethodGet, "/api/auth/me", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(worker, http.MethodPost, "/api/auth/logout", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	loggedOut := &signedIn{cookies: w.Result().Cookies()}
	w = suite.do(loggedOut, http.MethodGet, "/api/auth/me", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestUpdateCurrentUser() {
	worker := suite.signIn("wendy", "worker")

	w := suite.do(worker, http.MethodPatch, "/api/auth/me", map[string]string{"full_name": "Wendy Wright", "location": "Leeds"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var account dto.AccountDTO
	suite.decode(w, &account)
	suite.Equal("Wendy Wright", account.FullName)
	suite.Equal("Leeds", account.Location)
}

func (suite *APITestSuite) TestRoleGates() {
	worker := suite.signIn("wendy", "worker")
	employer := suite.signIn("acme", "employer")

	w := suite.do(worker, http.MethodPost, "/api/jobs", map[string]any{"title": "Nope"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(employer, http.MethodGet, "/api/jobs/matches", nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(employer, http.MethodPut, "/api/profiles/worker", map[string]any{"skills": []string{"x"}})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(worker, http.MethodGet, "/api/jobs/abc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(worker, http.MethodGet, "/api/jobs/999", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestListJobsPaginatesAndFilters() {
	employer := suite.signIn("acme", "employer")
	worker := suite.signIn("wendy", "worker")
	for i := 0; i < 3; i++ {
		suite.postJob(employer, fmt.Sprintf("Job %d", i))
	}

	w := suite.do(worker, http.MethodGet, "/api/jobs?page=2&limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var page dto.JobListResponse
	suite.decode(w, &page)
	suite.Equal(int64(3), page.TotalCount)
	suite.Equal(2, page.TotalPages)
	suite.Require().Len(page.Jobs, 1)
	suite.Equal("Job 2", page.Jobs[0].Title)

	w = suite.do(worker, http.MethodGet, "/api/jobs?status=completed", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &page)
	suite.Empty(page.Jobs)

	w = suite.do(worker, http.MethodGet, "/api/jobs?status=bogus", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestHireAndRateFlow() {
	employer := suite.signIn("acme", "employer")
	worker := suite.signIn("wendy", "worker")

	w := suite.do(worker, http.MethodPut, "/api/profiles/worker", map[string]any{
		"skills":       []string{"Plumbing"},
		"availability": "weekdays",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	job := suite.postJob(employer, "Fix pipes", "plumbing")
	suite.postJob(employer, "Paint fence", "painting")

	// matching
	w = suite.do(worker, http.MethodGet, "/api/jobs/matches", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var matches struct {
		Jobs []dto.JobDTO `json:"jobs"`
	}
	suite.decode(w, &matches)
	suite.Require().Len(matches.Jobs, 1)
	suite.Equal(job.ID, matches.Jobs[0].ID)

	// apply, twice
	w = suite.do(worker, http.MethodPost, "/api/applications", map[string]any{"job_id": job.ID, "cover_letter": "hire me"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var app dto.ApplicationDTO
	suite.decode(w, &app)
	suite.Equal("pending", string(app.Status))

	w = suite.do(worker, http.MethodPost, "/api/applications", map[string]any{"job_id": job.ID})
	suite.Equal(http.StatusConflict, w.Code)

	// workers cannot move their own status
	w = suite.do(worker, http.MethodPatch, fmt.Sprintf("/api/applications/%d", app.ID), map[string]any{"status": "accepted"})
	suite.Require().Equal(http.StatusForbidden, w.Code)
	var apiErr struct {
		Code    string `json:"code"`
		Details struct {
			Fields []string `json:"fields"`
		} `json:"details"`
	}
	suite.decode(w, &apiErr)
	suite.Equal("FORBIDDEN", apiErr.Code)
	suite.Equal([]string{"status"}, apiErr.Details.Fields)

	// an explicit null still counts as touching the field
	w = suite.do(worker, http.MethodPatch, fmt.Sprintf("/api/applications/%d", app.ID), map[string]any{"status": nil})
	suite.Require().Equal(http.StatusForbidden, w.Code, w.Body.String())
	suite.decode(w, &apiErr)
	suite.Equal([]string{"status"}, apiErr.Details.Fields)

	// the employer sees the applicant with their rating
	w = suite.do(employer, http.MethodGet, "/api/applications", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var listed struct {
		Applications []dto.ApplicationListItemDTO `json:"applications"`
	}
	suite.decode(w, &listed)
	suite.Require().Len(listed.Applications, 1)
	suite.Equal("wendy", listed.Applications[0].WorkerName)

	w = suite.do(employer, http.MethodPatch, fmt.Sprintf("/api/applications/%d", app.ID), map[string]any{"status": "accepted"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(employer, http.MethodPatch, fmt.Sprintf("/api/applications/%d", app.ID), map[string]any{"status": "rejected"})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	// ratings before completion are refused
	w = suite.do(employer, http.MethodPost, "/api/ratings", map[string]any{"to_user_id": worker.userID, "job_id": job.ID, "rating": 5})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	w = suite.do(employer, http.MethodPatch, fmt.Sprintf("/api/jobs/%d", job.ID), map[string]any{"status": "completed"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(employer, http.MethodPost, "/api/ratings", map[string]any{"to_user_id": worker.userID, "job_id": job.ID, "rating": 5, "review": "great"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created dto.RatingCreatedResponse
	suite.decode(w, &created)
	suite.Equal(5.0, created.AverageRating)
	suite.Equal(5, created.Rating.Rating)

	w = suite.do(employer, http.MethodPost, "/api/ratings", map[string]any{"to_user_id": worker.userID, "job_id": job.ID, "rating": 4})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(worker, http.MethodPost, "/api/ratings", map[string]any{"to_user_id": employer.userID, "job_id": job.ID, "rating": 7})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(worker, http.MethodGet, fmt.Sprintf("/api/users/%d/ratings", worker.userID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var ratings struct {
		Ratings []dto.RatingDTO `json:"ratings"`
	}
	suite.decode(w, &ratings)
	suite.Len(ratings.Ratings, 1)

	// a completed job accepts no further applicants
	late := suite.signIn("late", "worker")
	w = suite.do(late, http.MethodPost, "/api/applications", map[string]any{"job_id": job.ID})
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *APITestSuite) TestDeleteJobRemovesApplications() {
	employer := suite.signIn("acme", "employer")
	rival := suite.signIn("rival", "employer")
	worker := suite.signIn("wendy", "worker")

	job := suite.postJob(employer, "Fix pipes")
	w := suite.do(worker, http.MethodPost, "/api/applications", map[string]any{"job_id": job.ID})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do(rival, http.MethodDelete, fmt.Sprintf("/api/jobs/%d", job.ID), nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(employer, http.MethodDelete, fmt.Sprintf("/api/jobs/%d", job.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(worker, http.MethodGet, "/api/applications", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var listed struct {
		Applications []dto.ApplicationListItemDTO `json:"applications"`
	}
	suite.decode(w, &listed)
	suite.Empty(listed.Applications)
}

func (suite *APITestSuite) TestMessagingAndNotifications() {
	employer := suite.signIn("acme", "employer")
	worker := suite.signIn("wendy", "worker")

	w := suite.do(employer, http.MethodPost, "/api/messages", map[string]any{"to_user_id": worker.userID, "content": "Free on Monday?"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var msg dto.MessageDTO
	suite.decode(w, &msg)
	suite.False(msg.IsRead)

	w = suite.do(employer, http.MethodPost, "/api/messages", map[string]any{"to_user_id": employer.userID, "content": "note to self"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(worker, http.MethodGet, "/api/notifications", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var notes dto.NotificationListResponse
	suite.decode(w, &notes)
	suite.Equal(int64(1), notes.UnreadCount)
	suite.Require().Len(notes.Notifications, 1)
	suite.Equal("New message from acme: Free on Monday?", notes.Notifications[0].Content)

	w = suite.do(employer, http.MethodPost, fmt.Sprintf("/api/messages/%d/read", msg.ID), nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(worker, http.MethodPost, fmt.Sprintf("/api/messages/%d/read", msg.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &msg)
	suite.True(msg.IsRead)

	w = suite.do(worker, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", notes.Notifications[0].ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(worker, http.MethodGet, fmt.Sprintf("/api/messages?with=%d", employer.userID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var convo struct {
		Messages []dto.MessageDTO `json:"messages"`
	}
	suite.decode(w, &convo)
	suite.Len(convo.Messages, 1)
}

func (suite *APITestSuite) TestSuggestSkillsWithoutAIConfigured() {
	employer := suite.signIn("acme", "employer")

	w := suite.do(employer, http.MethodPost, "/api/jobs/suggest-skills", map[string]string{"title": "Fix pipes"})
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
