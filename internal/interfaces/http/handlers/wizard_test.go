package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardreg.backend/internal/domain/entities"
	domainerrors "cardreg.backend/internal/domain/errors"
	"cardreg.backend/internal/interfaces/http/middleware"
	"cardreg.backend/internal/usecases"
)

type testApp struct {
	router    *gin.Engine
	users     *fakeUserRepo
	docs      *fakeDocumentRepo
	states    *fakeStateStore
	content   *fakeContentStore
	sessionID string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		users:   newFakeUserRepo(),
		docs:    &fakeDocumentRepo{},
		states:  newFakeStateStore(),
		content: newFakeContentStore(),
	}

	uc := usecases.NewRegistrationUsecase(app.users, app.docs, fakeOptionRepo{}, app.states, app.content, nil)
	registration := NewRegistrationHandler(uc)
	document := NewDocumentHandler(uc)
	confirmation := NewConfirmationHandler(uc)
	options := NewOptionsHandler(uc)

	r := gin.New()
	r.Use(middleware.SessionMiddleware(30*time.Minute, false))
	r.GET("/register", registration.Show)
	r.POST("/register", registration.Submit)
	r.GET("/register/document", document.Show)
	r.POST("/register/document", document.Submit)
	r.GET("/register/confirm", confirmation.Show)
	r.POST("/register/confirm", confirmation.Confirm)
	r.GET("/register/success", confirmation.Success)
	r.GET("/api/v1/options/:group", options.ListByGroup)

	app.router = r
	return app
}

// do issues a request, carrying the workflow session cookie across calls.
func (app *testApp) do(t *testing.T, method, target, contentType string, body *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if app.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: app.sessionID})
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			app.sessionID = ck.Value
		}
	}
	return w
}

func registrationForm() url.Values {
	return url.Values{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"email":       {"ada@example.com"},
		"password":    {"Analytical1"},
		"phoneNumber": {"+44 20 7946 0958"},
		"dateOfBirth": {"1990-12-10"},
		"gender":      {"Female"},
		"country":     {"United Kingdom"},
	}
}

func (app *testApp) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return app.do(t, http.MethodPost, target, "application/x-www-form-urlencoded",
		bytes.NewBufferString(form.Encode()))
}

func (app *testApp) postMultipart(t *testing.T, docType, fileName string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("documentType", docType))
	if fileName != "" {
		part, err := mw.CreateFormFile("documentFile", fileName)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return app.do(t, http.MethodPost, "/register/document", mw.FormDataContentType(), &buf)
}

func TestWizard_EndToEnd(t *testing.T) {
	app := newTestApp(t)

	// Stage one form payload.
	w := app.do(t, http.MethodGet, "/register", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "United Kingdom")
	assert.Contains(t, w.Body.String(), "Female")

	// Register.
	w = app.postForm(t, "/register", registrationForm())
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/register/document", w.Header().Get("Location"))
	require.NotEmpty(t, app.sessionID)

	state := app.states.get(app.sessionID)
	require.NotNil(t, state)
	assert.Equal(t, entities.StageHasUser, state.Stage)

	// Stage two form payload.
	w = app.do(t, http.MethodGet, "/register/document", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passport")

	// Upload.
	w = app.postMultipart(t, "Passport", "ada-passport.png", bytes.Repeat([]byte{0x89}, 1024))
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/register/confirm", w.Header().Get("Location"))
	assert.Len(t, app.docs.docs, 1)
	assert.Len(t, app.content.objects, 1)

	// Review: both drafts echoed, no password material.
	w = app.do(t, http.MethodGet, "/register/confirm", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ada@example.com")
	assert.Contains(t, w.Body.String(), "ada-passport.png")
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")

	// Finalize.
	w = app.do(t, http.MethodPost, "/register/confirm", "", nil)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
	assert.Equal(t, "/register/success", w.Header().Get("Location"))

	w = app.do(t, http.MethodGet, "/register/success", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The canonical record is stamped and the workflow state is gone.
	user, err := app.users.GetByEmail(nil, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, user.RegisteredAt.Valid)
	assert.Nil(t, app.states.get(app.sessionID))
}

func TestRegister_ValidationFailure(t *testing.T) {
	app := newTestApp(t)

	form := registrationForm()
	form.Set("email", "not-an-email")
	form.Set("password", "short")

	w := app.postForm(t, "/register", form)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeValidationFailed)
	assert.Contains(t, w.Body.String(), "Invalid email format")
	assert.Contains(t, w.Body.String(), "Password must be at least 8 characters")

	// Nothing persisted.
	_, err := app.users.GetByEmail(nil, "not-an-email")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRegister_DuplicateEmailIsStable(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm(t, "/register", registrationForm())
	require.Equal(t, http.StatusSeeOther, w.Code)

	// Re-submitting the same email fails identically each time.
	for i := 0; i < 2; i++ {
		w = app.postForm(t, "/register", registrationForm())
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), domainerrors.CodeDuplicateEmail)
		assert.Contains(t, w.Body.String(), "already registered")
	}
}

func TestDocument_WithoutPriorRegistration(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/register/document", "", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register?notice=session-expired", w.Header().Get("Location"))

	w = app.postMultipart(t, "Passport", "p.png", []byte("data"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register?notice=session-expired", w.Header().Get("Location"))
}

func TestDocument_RejectsOversizedUpload(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusSeeOther, app.postForm(t, "/register", registrationForm()).Code)

	w := app.postMultipart(t, "Passport", "huge.png", bytes.Repeat([]byte{0x00}, 6*1024*1024))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds the 5MB limit")
	assert.Empty(t, app.content.objects)

	// The workflow is still at stage one and a valid retry succeeds.
	w = app.postMultipart(t, "Passport", "ok.png", []byte("data"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register/confirm", w.Header().Get("Location"))
}

func TestDocument_RejectsBadExtensionAndMissingFile(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusSeeOther, app.postForm(t, "/register", registrationForm()).Code)

	w := app.postMultipart(t, "Passport", "malware.exe", []byte("data"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Only PDF, JPG, JPEG, and PNG")

	w = app.postMultipart(t, "Passport", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "The uploaded file is empty")
}

func TestDocument_ReplayRedirectsToConfirmation(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusSeeOther, app.postForm(t, "/register", registrationForm()).Code)
	require.Equal(t, http.StatusSeeOther, app.postMultipart(t, "Passport", "p.png", []byte("data")).Code)

	w := app.postMultipart(t, "Passport", "p2.png", []byte("data2"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register/confirm", w.Header().Get("Location"))

	// No second document was stored.
	assert.Len(t, app.docs.docs, 1)
	assert.Len(t, app.content.objects, 1)
}

func TestConfirm_WithoutCompleteState(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/register/confirm", "", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register?notice=session-expired", w.Header().Get("Location"))

	// Only stage one done: still not confirmable.
	require.Equal(t, http.StatusSeeOther, app.postForm(t, "/register", registrationForm()).Code)
	w = app.do(t, http.MethodPost, "/register/confirm", "", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register?notice=session-expired", w.Header().Get("Location"))
}

func TestConfirm_StaleRecordRedirectsToStart(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusSeeOther, app.postForm(t, "/register", registrationForm()).Code)
	require.Equal(t, http.StatusSeeOther, app.postMultipart(t, "Passport", "p.png", []byte("data")).Code)

	// The stage-one record vanished out from under the draft.
	app.users.delete("ada@example.com")

	w := app.do(t, http.MethodGet, "/register/confirm", "", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register?notice=data-validation-failed", w.Header().Get("Location"))
}

func TestConfirm_FinalizeFailureStaysOnResource(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusSeeOther, app.postForm(t, "/register", registrationForm()).Code)
	require.Equal(t, http.StatusSeeOther, app.postMultipart(t, "Passport", "p.png", []byte("data")).Code)

	app.users.markErr = assert.AnError
	w := app.do(t, http.MethodPost, "/register/confirm", "", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), domainerrors.CodeInternal)

	// State survives; clearing the fault lets the retry finalize.
	app.users.markErr = nil
	w = app.do(t, http.MethodPost, "/register/confirm", "", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register/success", w.Header().Get("Location"))
}

func TestOptions_ListByGroup(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/options/DocumentTypes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passport")
	assert.Contains(t, w.Body.String(), "National ID")

	w = app.do(t, http.MethodGet, "/api/v1/options/NoSuchGroup", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegister_NoticeEchoedOnShow(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/register?notice=session-expired", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notice":"session-expired"`)
}
