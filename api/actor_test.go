package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lotobank/domain/entities"
	"lotobank/domain/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, headers map[string]string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestRequestActor(t *testing.T) {
	t.Run("valid identity headers", func(t *testing.T) {
		c := testContext(t, map[string]string{
			"X-User-Id":   "50",
			"X-User-Role": "banker",
		})

		actor, ok := requestActor(c)

		require.True(t, ok)
		assert.Equal(t, entities.Actor{ID: 50, Role: entities.RoleBanker}, actor)
	})

	t.Run("missing id header", func(t *testing.T) {
		c := testContext(t, map[string]string{"X-User-Role": "banker"})

		_, ok := requestActor(c)

		assert.False(t, ok)
	})

	t.Run("unknown role", func(t *testing.T) {
		c := testContext(t, map[string]string{
			"X-User-Id":   "50",
			"X-User-Role": "superuser",
		})

		_, ok := requestActor(c)

		assert.False(t, ok)
	})
}

func TestRequestLanguage(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"es", "es"},
		{"ES", "es"},
		{"es-CR", "es"},
		{"es-CR,es;q=0.9,en;q=0.8", "es"},
		{"en;q=0.5", "en"},
	}
	for _, tc := range cases {
		c := testContext(t, map[string]string{"Accept-Language": tc.header})
		assert.Equal(t, tc.want, requestLanguage(c), "header %q", tc.header)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		kind errs.Kind
		want int
	}{
		{errs.KindNotFound, http.StatusBadRequest},
		{errs.KindWinningNumbersNotDeclared, http.StatusBadRequest},
		{errs.KindAlreadySettled, http.StatusBadRequest},
		{errs.KindNumberNotAllowed, http.StatusBadRequest},
		{errs.KindValidation, http.StatusBadRequest},
		{errs.KindNotAllowed, http.StatusForbidden},
		{errs.KindUnexpected, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.kind), "kind %s", tc.kind)
	}
}
