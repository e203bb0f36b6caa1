package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ArowuTest/giveaway-backend/internal/config"
)

// Table DDL is spelled out by hand: the production schema rides on postgres
// defaults (uuid_generate_v4) that sqlite does not know, and the handlers
// always assign IDs explicitly anyway.
const (
	campaignsDDL = `CREATE TABLE campaigns (
		id text PRIMARY KEY,
		title text NOT NULL,
		description text,
		image_url text,
		rules text,
		is_active numeric NOT NULL DEFAULT 1,
		end_time datetime,
		winner_selected numeric NOT NULL DEFAULT 0,
		winner_entry_id text,
		winner_proof text,
		created_at datetime,
		updated_at datetime
	)`

	submissionsDDL = `CREATE TABLE submissions (
		id text PRIMARY KEY,
		campaign_id text NOT NULL,
		name text NOT NULL,
		email text NOT NULL,
		wallet_address text NOT NULL,
		tweet_url text,
		entry_count integer NOT NULL DEFAULT 1,
		is_verified numeric NOT NULL DEFAULT 0,
		verification_hash text,
		created_at datetime,
		updated_at datetime,
		UNIQUE (campaign_id, wallet_address)
	)`

	adminUsersDDL = `CREATE TABLE admin_users (
		id text PRIMARY KEY,
		username text NOT NULL UNIQUE,
		email text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		role text NOT NULL,
		status text NOT NULL DEFAULT 'Active',
		created_at datetime,
		updated_at datetime
	)`
)

// setupTestDB points config.DB at an in-memory sqlite with the given tables.
func setupTestDB(t *testing.T, ddl ...string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	config.DB = db
	config.Cfg = &config.AppConfig{}
	return db
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}
