package assertion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "should use assertion message for assertEquals",
			line: `Assert.assertEquals(x, 200, "Status code should be 200 OK")`,
			want: "Verifies that Status code should be 200 OK",
		},
		{
			name: "should use arguments without message",
			line: `assertTrue(x)`,
			want: "Confirms that the test condition is validated: x",
		},
		{
			name: "should translate assertFalse",
			line: `Assert.assertFalse(loginResult, "Login should fail with invalid password");`,
			want: "Ensures that Login should fail with invalid password",
		},
		{
			name: "should translate assertNotNull",
			line: `assertNotNull(user);`,
			want: "Validates that the test condition is validated: user",
		},
		{
			name: "should translate assertNull",
			line: `Assert.assertNull(session)`,
			want: "Checks that the test condition is validated: session",
		},
		{
			name: "should fall back to generic detail without parentheses",
			line: `assertNull`,
			want: "Checks that the test condition is validated",
		},
		{
			name: "should fall back to parentheses on unterminated quote",
			line: `assertTrue(ok, "unterminated)`,
			want: `Confirms that the test condition is validated: ok, "unterminated`,
		},
		{
			name: "should take first quoted string even when it is an argument",
			line: `Assert.assertEquals(profile.get("email"), "updated@example.com", "Updated email should match");`,
			want: "Verifies that email",
		},
		{
			name: "should apply detection order on multiple keywords",
			line: `assertEquals(flag.assertTrue(), expected)`,
			want: "Verifies that the test condition is validated: flag.assertTrue(), expected",
		},
		{
			name: "should trim the line",
			line: "    assertTrue(ok)   ",
			want: "Confirms that the test condition is validated: ok",
		},
		{
			name: "should ignore reversed parentheses",
			line: `x) assertTrue(`,
			want: "Confirms that the test condition is validated",
		},
		{
			name: "should return empty for unknown assertion",
			line: `assertThat(result).isTrue();`,
			want: "",
		},
		{
			name: "should be case sensitive",
			line: `AssertTrue(x)`,
			want: "",
		},
		{
			name: "should return empty for regular statement",
			line: `System.out.println("Testing login");`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, Translate(tt.line))
		})
	}
}

func TestExtractDetail(t *testing.T) {
	assert.Equal(t, "", ExtractDetail(`assertTrue(ok, "")`))
	assert.Equal(t, "the test condition is validated: ", ExtractDetail(`assertTrue()`))
	assert.Equal(t, "the test condition is validated", ExtractDetail(`no call here`))
}

func TestNewTranslator_CustomDetector(t *testing.T) {
	// Given
	d := NewKeywordDetector("assertj", DefaultPriority, []Rule{
		{Keyword: "assertThat", Verb: "Asserts that "},
	})

	// When
	tr := NewTranslator(d)

	// Then
	assert.Equal(t, "Asserts that the test condition is validated: result", tr.Translate("assertThat(result)"))
	assert.Equal(t, "", tr.Translate("assertTrue(ok)"))
}
