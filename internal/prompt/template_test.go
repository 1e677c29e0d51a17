package prompt

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/util"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Placeholders(t *testing.T) {
	tpl, err := Parse(`Role {job_role}, level {experience_level}, again {job_role}. Example: {{"k": 1}}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"job_role", "experience_level"}, tpl.Placeholders())
}

func TestParse_Invalid(t *testing.T) {
	for _, text := range []string{"open {job_role", "bad {job role}", "stray } brace", "empty {}"} {
		_, err := Parse(text)
		assert.Error(t, err, text)
	}
}

func TestBind(t *testing.T) {
	tpl := MustParse(`Hello {name}, return {{"greeting": "{name}"}}`)

	out, err := tpl.Bind(model.OpValidation, map[string]string{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, `Hello Ada, return {"greeting": "Ada"}`, out)
}

func TestBind_MissingValue(t *testing.T) {
	tpl := MustParse("{subtopic} for {job_role}")

	_, err := tpl.Bind(model.OpQuestions, map[string]string{"subtopic": "  ", "extra": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrTemplateBinding)
	assert.Contains(t, err.Error(), "job_role, subtopic")
}

func TestDefaults_CoverEveryOperation(t *testing.T) {
	set := Defaults()
	for _, kind := range model.OperationKinds() {
		tpl, err := set.Template(kind)
		require.NoError(t, err, kind)
		assert.NotEmpty(t, tpl.Placeholders(), kind)
	}
}

func TestDefaults_SubtopicExampleKeepsLiteralBraces(t *testing.T) {
	out, err := Defaults().Render(model.OpSubtopics, map[string]string{
		"job_role":         "Backend Engineer",
		"experience_level": "Entry-level",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, `{"subtopics": ["Data Structures", "System Design", "Databases"]}`)
}

func TestLoadBytes_Override(t *testing.T) {
	set, err := LoadBytes([]byte("templates:\n  validation: \"Check {subtopics} for {job_role}\"\n"))
	require.NoError(t, err)

	out, err := set.Render(model.OpValidation, map[string]string{"subtopics": "A, B", "job_role": "SRE"})
	require.NoError(t, err)
	assert.Equal(t, "Check A, B for SRE", out)

	// 未覆盖的模板保持内置内容
	_, err = set.Template(model.OpGrading)
	assert.NoError(t, err)
}

func TestLoadBytes_RejectsUnknownKind(t *testing.T) {
	_, err := LoadBytes([]byte("templates:\n  poetry: \"{x}\"\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("templates:\n  grading: |\n    Q: {question}\n    A: {answer}\n"), 0o644))

	set, err := LoadFile(path)
	require.NoError(t, err)
	out, err := set.Render(model.OpGrading, map[string]string{"question": "Why?", "answer": "Because."})
	require.NoError(t, err)
	assert.Equal(t, "Q: Why?\nA: Because.\n", out)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
