package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"creativemastery/internal/model"
	"creativemastery/internal/service"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuestionsFiltersByDimension(t *testing.T) {
	out, err := execute(t, "questions", "--dimension", "beliefMindset")
	require.NoError(t, err)
	assert.Contains(t, out, "bm1")
	assert.NotContains(t, out, "cv1")

	_, err = execute(t, "questions", "--dimension", "luck")
	assert.Error(t, err)
}

func TestSampleThenScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")

	out, err := execute(t, "sample", "--pattern", "clarityVision_right_intuitionStrategy_right", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 30 answers")

	f, err := readAnswerFile(path)
	require.NoError(t, err)
	assert.Equal(t, 100, f.Answers["cv1"])
	assert.Equal(t, 50, f.Answers["bm1"])

	out, err = execute(t, "score", "--answers", path, "--json")
	require.NoError(t, err)
	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "clarityVision_right_intuitionStrategy_right", got.Results.Profile.Key)
	assert.Equal(t, model.MatchExact, got.Results.MatchKind)
	assert.Nil(t, got.Insights)
}

func TestScoreWithMastery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, writeAnswerFile(path, &AnswerFile{
		Answers: model.Answers{"bm1": 0, "bm2": 0},
		Mastery: &model.MasterySelections{Ambition: model.AmbitionFreedom, CreativeState: model.CreativeFlow},
	}))

	out, err := execute(t, "score", "--answers", path, "--metric", "Recognition", "--json")
	require.NoError(t, err)
	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotNil(t, got.Insights)
	assert.LessOrEqual(t, len(got.Insights.PersonalizedPractices), 10)

	out, err = execute(t, "score", "--answers", path, "--metric", "Recognition")
	require.NoError(t, err)
	assert.Contains(t, out, "Mastery path: Freedom / Flow / Recognition")
	assert.Contains(t, out, "Practices")
}

func TestScoreErrors(t *testing.T) {
	_, err := execute(t, "score")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, writeAnswerFile(path, &AnswerFile{Answers: model.Answers{"bm1": 120}}))
	_, err = execute(t, "score", "--answers", path)
	assert.ErrorIs(t, err, service.ErrInvalidAnswer)

	require.NoError(t, writeAnswerFile(path, &AnswerFile{Answers: model.Answers{"bm1": 20}}))
	_, err = execute(t, "score", "--answers", path, "--ambition", "Fame", "--creative-state", "Flow", "--metric", "Recognition")
	assert.ErrorIs(t, err, service.ErrInvalidSelection)
}

func TestSampleRejectsUnknownPattern(t *testing.T) {
	_, err := execute(t, "sample", "--pattern", "default", "--out", filepath.Join(t.TempDir(), "a.yaml"))
	assert.ErrorIs(t, err, model.ErrInvalidPatternKey)
}
