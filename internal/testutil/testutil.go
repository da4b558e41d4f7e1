package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/emilythestrangee/factfeed/backend/internal/config"
	"github.com/emilythestrangee/factfeed/backend/internal/database"
	"github.com/emilythestrangee/factfeed/backend/internal/models"
)

const TestJWTSecret = "test-jwt-secret"

var dbSeq atomic.Int64

// SQLiteConfig returns database settings for a private in-memory database.
func SQLiteConfig(t *testing.T) config.Database {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return config.Database{
		Driver:        config.DriverSQLite,
		SQLitePath:    fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1)),
		LogLevel:      "silent",
		SlowThreshold: time.Second,
	}
}

// NewDB opens a migrated in-memory SQLite database that is closed when the
// test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(SQLiteConfig(t))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Config returns an application config suitable for tests.
func Config(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:         "0",
		GinMode:      "test",
		JWTSecret:    TestJWTSecret,
		TokenTTL:     time.Hour,
		AllowOrigins: []string{"*"},
		Database:     SQLiteConfig(t),
	}
}

// CreateUser inserts a user with an unusable password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

// CreateArticle inserts an article submitted by userID at createdAt.
func CreateArticle(t *testing.T, db *gorm.DB, userID int, title string, createdAt time.Time) models.Article {
	t.Helper()

	article := models.Article{
		Title:         title,
		URL:           "https://example.com/" + strings.ReplaceAll(strings.ToLower(title), " ", "-"),
		SubmittedByID: &userID,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	if err := db.Create(&article).Error; err != nil {
		t.Fatalf("create test article: %v", err)
	}
	return article
}

// CreateComment inserts a comment by userID on articleID.
func CreateComment(t *testing.T, db *gorm.DB, userID, articleID int, text string) models.Comment {
	t.Helper()

	comment := models.Comment{Content: text, UserID: &userID, ArticleID: articleID}
	if err := db.Create(&comment).Error; err != nil {
		t.Fatalf("create test comment: %v", err)
	}
	return comment
}

// CreateFactCheck inserts a fact check by userID on articleID.
func CreateFactCheck(t *testing.T, db *gorm.DB, userID, articleID int, level models.FactCheckLevel) models.FactCheck {
	t.Helper()

	fc := models.FactCheck{
		Level:     level,
		Content:   "checked against primary sources",
		Source:    "https://example.com",
		UserID:    &userID,
		ArticleID: articleID,
	}
	if err := db.Create(&fc).Error; err != nil {
		t.Fatalf("create test fact check: %v", err)
	}
	return fc
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var raw []byte
		switch b := body.(type) {
		case string:
			raw = []byte(b)
		case []byte:
			raw = b
		default:
			raw, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer returns an Authorization header map for token.
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
