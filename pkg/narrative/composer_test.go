package narrative

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/testdoc/pkg/assertion"
	"github.com/specvital/testdoc/pkg/domain"
	"github.com/specvital/testdoc/pkg/naming"
)

const loginBody = `{
    // Test a successful login with valid credentials
    String username = "validUser";
    boolean loginResult = userService.login(username, password);

    Assert.assertTrue(loginResult, "Login should be successful with valid credentials");
}`

func TestComposer_Compose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  domain.MethodRecord
		want string
	}{
		{
			name: "should produce minimal narrative for bare test name",
			rec:  domain.MethodRecord{Name: "test"},
			want: "This test .\n\n",
		},
		{
			name: "should describe generic name",
			rec:  domain.MethodRecord{Name: "userShouldBeAbleToLogin"},
			want: "This test user should be able to login.\n\n",
		},
		{
			name: "should include test case id",
			rec:  domain.MethodRecord{Name: "TC01_userCanLogin"},
			want: "This test (TC01) user can login.\n\n",
		},
		{
			name: "should list translated assertions",
			rec: domain.MethodRecord{
				Name: "testStatusCode",
				Body: "{\nint x = client.get();\nAssert.assertEquals(x, 200, \"Status code should be 200 OK\");\nassertNotNull(x);\n}",
			},
			want: "This test status code.\n\n" +
				"- Verifies that Status code should be 200 OK\n" +
				"- Validates that the test condition is validated: x\n",
		},
		{
			name: "should skip assertion lines without a known detector",
			rec: domain.MethodRecord{
				Name: "testProfile",
				Body: "{\nassertThat(profile).isNotNull();\n}",
			},
			want: "This test profile.\n\n",
		},
		{
			name: "should structure gherkin names",
			rec: domain.MethodRecord{
				Name: "givenValidCredentials_whenUserLogsIn_thenLoginSucceedsTest",
				Body: loginBody,
			},
			want: "Method: givenValidCredentials_whenUserLogsIn_thenLoginSucceedsTest\n\n" +
				"Given  valid credentials \nWhen  user logs in \nThen  login succeeds\n\n" +
				"- Confirms that Login should be successful with valid credentials\n",
		},
		{
			name: "should put test case id on its own line for gherkin names",
			rec:  domain.MethodRecord{Name: "TC05_givenWifiOn_whenDeviceIsReboot_thenAvsLogsArePresent"},
			want: "Method: TC05_givenWifiOn_whenDeviceIsReboot_thenAvsLogsArePresent\n\n" +
				"TC05\n" +
				"Given  wifi on \nWhen  device is reboot \nThen  avs logs are present\n\n",
		},
		{
			name: "should not include hand-written comments",
			rec: domain.MethodRecord{
				Name: "testLogout",
				Body: "{\n// Logs the user out\nsvc.logout();\n}",
			},
			want: "This test logout.\n\n",
		},
	}

	composer := NewComposer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, composer.Compose(tt.rec))
		})
	}
}

func TestComposer_Compose_TestCaseIDAppearsVerbatim(t *testing.T) {
	composer := NewComposer()

	for _, name := range []string{"TC01_login", "TC123_givenA_whenB_thenC", "TC7_"} {
		tokens := naming.Decompose(name)
		require.NotEmpty(t, tokens.TestCaseID, name)
		assert.Contains(t, composer.Compose(domain.MethodRecord{Name: name}), tokens.TestCaseID)
	}
}

func TestComposer_Compose_GherkinMarkersInOrder(t *testing.T) {
	got := NewComposer().Compose(domain.MethodRecord{Name: "givenCart_whenCheckout_thenOrderPlaced"})

	given := strings.Index(got, "Given ")
	when := strings.Index(got, "When ")
	then := strings.Index(got, "Then ")

	require.GreaterOrEqual(t, given, 0)
	assert.Greater(t, when, given)
	assert.Greater(t, then, when)
}

func TestComposer_Replacements(t *testing.T) {
	t.Parallel()

	t.Run("should apply replacements in registration order", func(t *testing.T) {
		t.Parallel()

		// Given
		composer := NewComposer(WithReplacements(
			Replacement{Pattern: "Verifies", Replacement: "Checks"},
			Replacement{Pattern: "Checks that", Replacement: "Asserts that"},
		))
		rec := domain.MethodRecord{
			Name: "testTotal",
			Body: `assertEquals(total, 3, "total is three");`,
		}

		// When
		got := composer.Compose(rec)

		// Then
		assert.Equal(t, "This test total.\n\n- Asserts that total is three\n", got)
	})

	t.Run("should ignore empty patterns", func(t *testing.T) {
		t.Parallel()

		composer := NewComposer(WithReplacements(Replacement{Pattern: "", Replacement: "X"}))

		assert.Equal(t, "This test .\n\n", composer.Compose(domain.MethodRecord{Name: "test"}))
	})
}

func TestComposer_Compose_Idempotent(t *testing.T) {
	composer := NewComposer(WithReplacements(Replacement{Pattern: "login", Replacement: "sign-in"}))
	rec := domain.MethodRecord{Name: "givenValidCredentials_whenUserLogsIn_thenLoginSucceedsTest", Body: loginBody}

	first := composer.Compose(rec)
	second := composer.Compose(rec)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "sign-in")
}

func TestComposer_CustomCollaborators(t *testing.T) {
	cache, err := naming.NewCache(4)
	require.NoError(t, err)

	detector := assertion.NewKeywordDetector("assertj", assertion.DefaultPriority, []assertion.Rule{
		{Keyword: "assertThat", Verb: "Asserts that "},
	})

	composer := NewComposer(WithDecomposer(cache), WithDetector(detector))
	got := composer.Compose(domain.MethodRecord{Name: "testProfile", Body: "assertThat(profile)"})

	assert.Equal(t, "This test profile.\n\n- Asserts that the test condition is validated: profile\n", got)
	assert.Equal(t, 1, cache.Len())
}

func TestComposer_Narrate(t *testing.T) {
	rec := domain.MethodRecord{Name: "testLogin", Tags: []string{"Feature: Login", "UI"}}

	n := NewComposer().Narrate(rec)

	assert.Equal(t, "testLogin", n.Name)
	assert.Equal(t, "This test login.\n\n", n.Description)
	assert.Equal(t, rec.Tags, n.Tags)

	n.Tags[0] = "changed"
	assert.Equal(t, "Feature: Login", rec.Tags[0], "narrative tags must not alias record tags")
}

func TestComposer_ComposeAll(t *testing.T) {
	t.Parallel()

	t.Run("should preserve input order", func(t *testing.T) {
		t.Parallel()

		// Given
		recs := make([]domain.MethodRecord, 200)
		for i := range recs {
			recs[i] = domain.MethodRecord{Name: fmt.Sprintf("TC%d_checkItem", i)}
		}
		composer := NewComposer(WithWorkers(4))

		// When
		got, err := composer.ComposeAll(context.Background(), recs)

		// Then
		require.NoError(t, err)
		require.Len(t, got, len(recs))
		for i, n := range got {
			assert.Equal(t, recs[i].Name, n.Name)
			assert.Equal(t, composer.Compose(recs[i]), n.Description)
		}
	})

	t.Run("should return empty slice for no records", func(t *testing.T) {
		t.Parallel()

		got, err := NewComposer().ComposeAll(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("should return context error when cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewComposer().ComposeAll(ctx, []domain.MethodRecord{{Name: "testA"}, {Name: "testB"}})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWithWorkers(t *testing.T) {
	opts := &Options{Workers: 3}

	WithWorkers(-1)(opts)
	assert.Equal(t, 3, opts.Workers)

	WithWorkers(MaxWorkers * 2)(opts)
	applyDefaults(opts)
	assert.Equal(t, MaxWorkers, opts.Workers)
}
