// Package dbtest provides a migrated SQLite database for package tests.
package dbtest

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SidS12345/Family-Connections/internal/dao/db"
	"github.com/SidS12345/Family-Connections/internal/dao/db/repository"
	"github.com/SidS12345/Family-Connections/internal/model"
)

// New returns repositories over a fresh file-backed SQLite database that is
// removed when the test ends.
func New(t testing.TB) *repository.Repositories {
	t.Helper()
	return repository.NewRepositories(NewDB(t))
}

// NewDB is New without the repository wrapper.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.db")
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)", path)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// CreateUser inserts a user with password "secret".
func CreateUser(t testing.TB, repos *repository.Repositories, name, email string) *model.UserInfo {
	t.Helper()
	user := &model.UserInfo{Name: name, Email: email, RawPassword: "secret"}
	if err := repos.User.Create(user); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}
