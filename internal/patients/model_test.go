package patients

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeToleratesMixedTypes(t *testing.T) {
	cases := map[string]string{
		`{"age": 34}`:     "34",
		`{"age": "34"}`:   "34",
		`{"age": 34.5}`:   "34.5",
		`{"age": null}`:   "",
		`{"age": "none"}`: "none",
		`{}`:              "",
	}
	for doc, want := range cases {
		var info PersonalInfo
		require.NoError(t, json.Unmarshal([]byte(doc), &info), doc)
		assert.Equal(t, want, info.Age.String(), doc)
	}
}

func TestAgeRoundTripsNumericShape(t *testing.T) {
	var numeric PersonalInfo
	require.NoError(t, json.Unmarshal([]byte(`{"age": 34}`), &numeric))
	out, err := json.Marshal(numeric)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"age":34`)

	var text PersonalInfo
	require.NoError(t, json.Unmarshal([]byte(`{"age": "unknown"}`), &text))
	out, err = json.Marshal(text)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"age":"unknown"`)
}

func TestGetRecordWithStringAge(t *testing.T) {
	store := newTestStore(t)
	doc := `{"personal_info": {"name": "Omar", "age": "41", "gender": "male"}}`
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "omar.json"), []byte(doc), 0o644))

	record, err := store.Get("omar")
	require.NoError(t, err)
	assert.Equal(t, "41", record.PersonalInfo.Age.String())
}
