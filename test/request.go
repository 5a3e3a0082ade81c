package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Request is a helper method to simplify making a HTTP request for tests.
func Request(t *testing.T, r *gin.Engine, method, url string, body any) httptest.ResponseRecorder {
	byteBuffer := new(bytes.Buffer)

	if body != nil {
		if s, ok := body.(string); ok {
			byteBuffer = bytes.NewBufferString(s)
		} else {
			payload, err := json.Marshal(body)
			require.Nil(t, err, "request body could not be marshaled")
			byteBuffer = bytes.NewBuffer(payload)
		}
	}

	recorder := httptest.NewRecorder()
	req, err := http.NewRequest(method, url, byteBuffer)
	require.Nil(t, err)
	r.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse decodes the response body into the target struct.
func DecodeResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(recorder.Body.Bytes(), target)
	require.Nil(t, err, "response could not be decoded: %s", recorder.Body.String())
}

// AssertHTTPStatus verifies the status code of the response.
func AssertHTTPStatus(t *testing.T, expected int, recorder *httptest.ResponseRecorder) {
	assert.Equal(t, expected, recorder.Code, "wrong status code, body: %s", recorder.Body.String())
}
