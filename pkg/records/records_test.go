package records

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginYAML = `
classes:
  - className: LoginTests
    packageName: com.testngdoc.sample
    methods:
      - name: testLoginWithValidCredentials
        body: |
          {
              Assert.assertTrue(ok, "Login should succeed");
          }
        tags: ["Feature: Authentication", "UI"]
      - name: testLogout
`

const apiJSON = `{
  "classes": [
    {
      "className": "APITests",
      "packageName": "com.testngdoc.sample",
      "methods": [{"name": "TC01_getUsers", "tags": ["API"]}]
    }
  ]
}`

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("should decode yaml", func(t *testing.T) {
		t.Parallel()

		classes, err := Decode(strings.NewReader(loginYAML))

		require.NoError(t, err)
		require.Len(t, classes, 1)
		assert.Equal(t, "LoginTests", classes[0].ClassName)
		require.Len(t, classes[0].Methods, 2)
		assert.Contains(t, classes[0].Methods[0].Body, `Assert.assertTrue(ok, "Login should succeed");`)
		assert.Equal(t, []string{"Feature: Authentication", "UI"}, classes[0].Methods[0].Tags)
		assert.False(t, classes[0].Methods[1].HasBody())
	})

	t.Run("should decode json", func(t *testing.T) {
		t.Parallel()

		classes, err := Decode(strings.NewReader(apiJSON))

		require.NoError(t, err)
		require.Len(t, classes, 1)
		assert.Equal(t, "TC01_getUsers", classes[0].Methods[0].Name)
	})

	t.Run("should accept empty document", func(t *testing.T) {
		t.Parallel()

		classes, err := Decode(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, classes)
	})

	t.Run("should reject malformed document", func(t *testing.T) {
		t.Parallel()

		_, err := Decode(strings.NewReader("classes: [unterminated"))

		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"records/b/login.yaml": {Data: []byte(loginYAML)},
		"records/a/api.json":   {Data: []byte(apiJSON)},
		"records/notes.txt":    {Data: []byte("ignored")},
		"broken/bad.yaml":      {Data: []byte("classes: [unterminated")},
	}

	t.Run("should load matching files in path order", func(t *testing.T) {
		t.Parallel()

		result, err := Load(fsys, []string{"records/**/*.yaml", "records/**/*.json"})

		require.NoError(t, err)
		assert.Equal(t, []string{"records/a/api.json", "records/b/login.yaml"}, result.Files)
		require.Len(t, result.Classes, 2)
		assert.Equal(t, "APITests", result.Classes[0].ClassName)
		assert.Equal(t, "LoginTests", result.Classes[1].ClassName)
		assert.Equal(t, 3, result.CountMethods())
	})

	t.Run("should read files matched twice once", func(t *testing.T) {
		t.Parallel()

		result, err := Load(fsys, []string{"records/**/*.yaml", "records/b/*"})

		require.NoError(t, err)
		assert.Equal(t, []string{"records/b/login.yaml"}, result.Files)
	})

	t.Run("should fail without matches", func(t *testing.T) {
		t.Parallel()

		_, err := Load(fsys, []string{"missing/**/*.yaml"})

		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("should reject invalid glob", func(t *testing.T) {
		t.Parallel()

		_, err := Load(fsys, []string{"records/[a"})

		assert.ErrorIs(t, err, ErrInvalidGlob)
	})

	t.Run("should report the failing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(fsys, []string{"broken/*.yaml"})

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr))
		assert.Equal(t, "broken/bad.yaml", decodeErr.Path)
	})
}
