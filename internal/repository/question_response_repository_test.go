package repository

import (
	"context"
	"errors"
	"interview_prep_backend/internal/config"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/database"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "repo.db"),
	}, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	u := &model.User{Name: "Ada", Email: "ada@example.com", Password: "x"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func countRows(t *testing.T, db *gorm.DB) (responses, interests int64) {
	t.Helper()
	require.NoError(t, db.Model(&model.QuestionResponse{}).Count(&responses).Error)
	require.NoError(t, db.Model(&model.UserJobInterest{}).Count(&interests).Error)
	return
}

func TestSaveGradedInteraction(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	repo := NewQuestionResponseRepository(db)
	score := 6

	err := repo.SaveGradedInteraction(context.Background(),
		&model.QuestionResponse{UserID: &u.ID, JobRole: "SRE", Subtopic: "Linux", Score: &score},
		&model.UserJobInterest{UserID: u.ID, JobRole: "SRE", Subtopic: "Linux"})
	require.NoError(t, err)

	responses, interests := countRows(t, db)
	assert.Equal(t, int64(1), responses)
	assert.Equal(t, int64(1), interests)

	list, err := repo.ListByUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, &score, list[0].Score)
}

func TestSaveGradedInteraction_RollsBackOnSecondInsert(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)

	boom := errors.New("interest insert failed")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_interest", func(tx *gorm.DB) {
		if tx.Statement.Table == "user_job_interests" {
			tx.AddError(boom)
		}
	}))

	err := NewQuestionResponseRepository(db).SaveGradedInteraction(context.Background(),
		&model.QuestionResponse{UserID: &u.ID, JobRole: "SRE", Subtopic: "Linux"},
		&model.UserJobInterest{UserID: u.ID, JobRole: "SRE", Subtopic: "Linux"})
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrStorage)
	assert.ErrorIs(t, err, boom)

	responses, interests := countRows(t, db)
	assert.Zero(t, responses, "response row must not survive a failed interest insert")
	assert.Zero(t, interests)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db)
	repo := NewUserRepository(db)

	found, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
