package api_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadImage(t *testing.T, ts *testServer, token, field string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="cover.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func TestUploadImage(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Aye Chan", "aye@x.com")

	w := uploadImage(t, ts, token, "image")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var url string
	decodeInto(t, decodeBody(t, w)["url"], &url)
	assert.NotEmpty(t, url)
	assert.Equal(t, []string{"image/png"}, ts.images.Uploads)
}

func TestUploadImageErrors(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "Aye Chan", "aye@x.com")

	w := uploadImage(t, ts, "", "image")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = uploadImage(t, ts, token, "wrong-field")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ts.images.Err = errors.New("bucket unreachable")
	w = uploadImage(t, ts, token, "image")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
