package binder

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pouya-gh/MyLibrary/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Name    string                     `json:"name" mod:"trim" validate:"required,max=9"`
	Born    string                     `json:"born" validate:"omitempty,date"`
	Status  *models.BookInstanceStatus `json:"status" validate:"omitempty,instance_status"`
	PerPage int                        `json:"per_page" query:"per_page" default:"100" validate:"min=1"`
}

func newContext(payload, mime string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(echo.POST, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, mime)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr)
}

func TestNew(t *testing.T) {
	t.Parallel()
	b, err := New()
	require.NoError(t, err)
	assert.NotNil(t, b)

	t.Run("only allows json and form payloads", func(tt *testing.T) {
		c := newContext(`{"name":"ok"}`, echo.MIMEApplicationXML)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "Unsupported Media Type")
	})

	t.Run("disallows unknown fields", func(tt *testing.T) {
		c := newContext(`{"name":"ok","nam":"typo"}`, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `Unknown Parameter "nam"`)
	})

	t.Run("returns a good message for type errors", func(tt *testing.T) {
		c := newContext(`{"name":123}`, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), `"name" should be of type string`)
	})

	t.Run("use mod tag to modify params", func(tt *testing.T) {
		c := newContext(`{"name":" milton "}`, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "milton", p.Name)
	})

	t.Run("applies defaults to absent fields", func(tt *testing.T) {
		c := newContext(`{"name":"milton"}`, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, 100, p.PerPage)
	})

	t.Run("use validate tag to validate params", func(tt *testing.T) {
		c := newContext(`{"name":"0123456789"}`, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "length must be less than or equal to 9 characters")
	})

	t.Run("validates dates", func(tt *testing.T) {
		c := newContext(`{"name":"milton","born":"1608-12-09"}`, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)

		c = newContext(`{"name":"milton","born":"09/12/1608"}`, echo.MIMEApplicationJSON)
		p = params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "should be in the format of YYYY-MM-DD")
	})

	t.Run("rejects unknown instance statuses during decoding", func(tt *testing.T) {
		c := newContext(`{"name":"milton","status":"lost"}`, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		assert.Contains(tt, err.Error(), "invalid book instance status")
	})

	t.Run("accepts known instance statuses", func(tt *testing.T) {
		c := newContext(`{"name":"milton","status":"on_loan"}`, echo.MIMEApplicationJSON)
		p := params{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		require.NotNil(tt, p.Status)
		assert.Equal(tt, models.StatusOnLoan, *p.Status)
	})

	t.Run("binds form-encoded payloads", func(tt *testing.T) {
		type creds struct {
			Username string `form:"username" json:"username" validate:"required"`
			Password string `form:"password" json:"password" validate:"required"`
		}
		c := newContext("username=alice&password=secret", echo.MIMEApplicationForm)
		p := creds{}
		err = b.Bind(&p, c)
		require.NoError(tt, err)
		assert.Equal(tt, "alice", p.Username)
		assert.Equal(tt, "secret", p.Password)
	})
}
