package service

import (
	"context"
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSubtopics_EmbeddedObject(t *testing.T) {
	fm := &fakeModel{replies: []string{`Sure! {"subtopics": ["APIs","Databases"]} Hope that helps.`}}
	svc := newInterviewService(nil, fm)

	list, err := svc.GenerateSubtopics(context.Background(), "Backend Engineer", "Entry-level")
	require.NoError(t, err)
	assert.Equal(t, []string{"APIs", "Databases"}, list.Subtopics)

	require.Equal(t, 1, fm.calls())
	assert.Contains(t, fm.prompts[0], "Backend Engineer")
	assert.Contains(t, fm.prompts[0], "Entry-level")
}

func TestGenerateSubtopics_NoFragment(t *testing.T) {
	fm := &fakeModel{replies: []string{"I could not come up with anything."}}
	svc := newInterviewService(nil, fm)

	_, err := svc.GenerateSubtopics(context.Background(), "SRE", "Senior")
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrExtraction)
	assert.NotErrorIs(t, err, util.ErrSchema)
}

func TestGenerateSubtopics_WrongShape(t *testing.T) {
	fm := &fakeModel{replies: []string{`{"subtopics": "APIs"}`}}
	svc := newInterviewService(nil, fm)

	_, err := svc.GenerateSubtopics(context.Background(), "SRE", "Senior")
	assert.ErrorIs(t, err, util.ErrSchema)
}

func TestGenerateSubtopics_MissingParamSkipsModel(t *testing.T) {
	fm := &fakeModel{}
	svc := newInterviewService(nil, fm)

	_, err := svc.GenerateSubtopics(context.Background(), "", "Senior")
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrTemplateBinding)
	assert.Contains(t, err.Error(), "job_role")
	assert.Zero(t, fm.calls())
}

func TestInvoke_UpstreamFailure(t *testing.T) {
	cause := errors.New("connection refused")
	fm := &fakeModel{err: cause}
	svc := newInterviewService(nil, fm)

	_, err := svc.ValidateSubtopics(context.Background(), []string{"APIs"}, "SRE")
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, fm.calls())
}

func TestValidateSubtopics_JoinsList(t *testing.T) {
	fm := &fakeModel{replies: []string{"Looks reasonable."}}
	svc := newInterviewService(nil, fm)

	feedback, err := svc.ValidateSubtopics(context.Background(), []string{"APIs", "Databases"}, "Backend Engineer")
	require.NoError(t, err)
	assert.Equal(t, "Looks reasonable.", feedback)
	assert.Contains(t, fm.prompts[0], "APIs, Databases")
}

func TestRefineSubtopics_KeepsRawText(t *testing.T) {
	raw := "Here you go:\n{\n  \"refined_subtopics\": [\"Caching\",\n \"Queues\"]\n}\nThe list drops duplicates."
	fm := &fakeModel{replies: []string{raw}}
	svc := newInterviewService(nil, fm)

	refined, err := svc.RefineSubtopics(context.Background(), []string{"Cache", "Caching"}, "SRE", "Remove duplicates")
	require.NoError(t, err)
	assert.Equal(t, []string{"Caching", "Queues"}, refined.RefinedSubtopics)
	assert.Equal(t, raw, refined.Explanation)
	assert.Contains(t, fm.prompts[0], "Remove duplicates")
}

func TestCategorizeSubtopics(t *testing.T) {
	fm := &fakeModel{replies: []string{"```json\n{\"technical skills\": [\"APIs\"], \"Soft Skills\": \"Communication\", \"General Skills\": null}\n```"}}
	svc := newInterviewService(nil, fm)

	got, err := svc.CategorizeSubtopics(context.Background(), []string{"APIs", "Communication"})
	require.NoError(t, err)

	want := model.CategoryMap{
		model.CategoryTechnicalSkills: {"APIs"},
		model.CategorySoftSkills:      {"Communication"},
		model.CategoryGeneralSkills:   {},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateQuestions(t *testing.T) {
	text := "1. What is a goroutine?\n2. How do channels work?\n3) Explain context cancellation."
	fm := &fakeModel{replies: []string{text}}
	svc := newInterviewService(nil, fm)

	set, err := svc.GenerateQuestions(context.Background(), "Concurrency", model.QuestionTechnical, "Go Developer", "Mid-level")
	require.NoError(t, err)
	assert.Equal(t, text, set.Questions)
	assert.Equal(t, []string{"What is a goroutine?", "How do channels work?", "Explain context cancellation."}, set.Items)
	assert.Contains(t, fm.prompts[0], "technical")
	assert.Contains(t, fm.prompts[0], "'Concurrency'")
}

func TestCheckResponse_Anonymous(t *testing.T) {
	db := newTestDB(t)
	fm := &fakeModel{replies: []string{"Good structure.\nScore: 7"}}
	svc := newInterviewService(db, fm)

	res, err := svc.CheckResponse(context.Background(), CheckResponseInput{Question: "Q?", Answer: "A."})
	require.NoError(t, err)
	assert.Equal(t, intPtr(7), res.Score)
	assert.False(t, res.Stored)

	var n int64
	db.Model(&model.QuestionResponse{}).Count(&n)
	assert.Zero(t, n)
}

func TestCheckResponse_StoresBothRows(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "Ada", "ada@example.com")
	fm := &fakeModel{replies: []string{"Clear answer. Score: 9"}}
	svc := newInterviewService(db, fm)

	res, err := svc.CheckResponse(context.Background(), CheckResponseInput{
		Question: "Explain indexes", Answer: "B-trees...", UserID: &u.ID,
		JobRole: "Backend Engineer", Subtopic: "Databases",
	})
	require.NoError(t, err)
	assert.True(t, res.Stored)

	var responses []model.QuestionResponse
	require.NoError(t, db.Find(&responses).Error)
	require.Len(t, responses, 1)
	assert.Equal(t, intPtr(9), responses[0].Score)
	assert.Equal(t, "Clear answer. Score: 9", responses[0].Feedback)
	assert.Equal(t, "Databases", responses[0].Subtopic)

	var interests []model.UserJobInterest
	require.NoError(t, db.Find(&interests).Error)
	require.Len(t, interests, 1)
	assert.Equal(t, u.ID, interests[0].UserID)
	assert.Equal(t, "Backend Engineer", interests[0].JobRole)
}

func TestCheckResponse_NoScoreStillStored(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "Ada", "ada@example.com")
	fm := &fakeModel{replies: []string{"I would rate this highly."}}
	svc := newInterviewService(db, fm)

	res, err := svc.CheckResponse(context.Background(), CheckResponseInput{Question: "Q", Answer: "A", UserID: &u.ID, Subtopic: "X"})
	require.NoError(t, err)
	assert.Nil(t, res.Score)
	assert.True(t, res.Stored)

	var r model.QuestionResponse
	require.NoError(t, db.First(&r).Error)
	assert.Nil(t, r.Score)
}

func TestCheckResponse_OutOfRangeScoreStoredAsNull(t *testing.T) {
	db := newTestDB(t)
	u := createUser(t, db, "Ada", "ada@example.com")
	fm := &fakeModel{replies: []string{"Score: 85"}}
	svc := newInterviewService(db, fm)

	res, err := svc.CheckResponse(context.Background(), CheckResponseInput{Question: "Q", Answer: "A", UserID: &u.ID})
	require.NoError(t, err)
	assert.Nil(t, res.Score)
	assert.Equal(t, "Score: 85", res.Feedback)

	var r model.QuestionResponse
	require.NoError(t, db.First(&r).Error)
	assert.Nil(t, r.Score)
}

type failingStore struct{ called bool }

func (s *failingStore) SaveGradedInteraction(ctx context.Context, resp *model.QuestionResponse, interest *model.UserJobInterest) error {
	s.called = true
	return util.NewPipelineError(util.ErrStorage, "check-response", "save graded interaction", errors.New("disk full"))
}

func TestCheckResponse_StorageFailureStillReturnsFeedback(t *testing.T) {
	store := &failingStore{}
	fm := &fakeModel{replies: []string{"Fine. Score: 5"}}
	svc := NewInterviewService(NewPromptService(nil, fm), store)

	uid := uint(3)
	res, err := svc.CheckResponse(context.Background(), CheckResponseInput{Question: "Q", Answer: "A", UserID: &uid})
	require.NoError(t, err)
	assert.True(t, store.called)
	assert.False(t, res.Stored)
	assert.Equal(t, intPtr(5), res.Score)
	assert.Equal(t, "Fine. Score: 5", res.Feedback)
}

func TestCheckResponse_UpstreamFailureStoresNothing(t *testing.T) {
	store := &failingStore{}
	fm := &fakeModel{err: errors.New("timeout")}
	svc := NewInterviewService(NewPromptService(nil, fm), store)

	uid := uint(3)
	_, err := svc.CheckResponse(context.Background(), CheckResponseInput{Question: "Q", Answer: "A", UserID: &uid})
	assert.ErrorIs(t, err, util.ErrUpstream)
	assert.False(t, store.called)
}
