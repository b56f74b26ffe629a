package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/types"
)

func TestStringArrayScan(t *testing.T) {
	var a StringArray
	require.NoError(t, a.Scan([]byte(`["Go","SQL"]`)))
	assert.Equal(t, StringArray{"Go", "SQL"}, a)

	var b StringArray
	require.NoError(t, b.Scan(nil))
	assert.Empty(t, b)

	var c StringArray
	require.NoError(t, c.Scan(`["from","string"]`))
	assert.Equal(t, StringArray{"from", "string"}, c)

	var d StringArray
	assert.Error(t, d.Scan(42))
}

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray{"a", "b"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(v.([]byte)))

	v, err = StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(v.([]byte)))
}

func TestProfileDecodeProfile(t *testing.T) {
	src := &types.Profile{
		Name:   "Ada",
		Skills: []string{"Go"},
	}
	data, err := json.Marshal(src)
	require.NoError(t, err)

	record := &Profile{Data: data}
	decoded, err := record.DecodeProfile()
	require.NoError(t, err)
	assert.Equal(t, "Ada", decoded.Name)
	assert.Equal(t, []string{"Go"}, decoded.Skills)

	bad := &Profile{Data: []byte("{broken")}
	_, err = bad.DecodeProfile()
	assert.Error(t, err)
}

func TestResumeDecodeContent(t *testing.T) {
	content := &types.EnhancedContent{
		ProfessionalSummary: "Engineer.",
		Skills:              []string{"Go"},
	}
	data, err := json.Marshal(content)
	require.NoError(t, err)

	record := &Resume{GeneratedContent: data}
	decoded, err := record.DecodeContent()
	require.NoError(t, err)
	assert.Equal(t, "Engineer.", decoded.ProfessionalSummary)
}

func TestJobPostingToPosting(t *testing.T) {
	record := &JobPosting{
		URL:      "https://jobs.lever.co/acme/1",
		Platform: "lever",
		Title:    "Backend Engineer",
		Company:  "Acme",
		Skills:   StringArray{"Go", "Postgres"},
	}

	posting := record.ToPosting()
	assert.Equal(t, "Backend Engineer", posting.Title)
	assert.Equal(t, []string{"Go", "Postgres"}, posting.Skills)
}
