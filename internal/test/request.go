package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Request is a helper method to simplify making a HTTP request for tests.
func Request(handler http.Handler, t *testing.T, method, url string, body any) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer

	// If the body is a string, convert it to bytes
	if reflect.TypeOf(body) == nil {
		byteBuffer = new(bytes.Buffer)
	} else if reflect.TypeOf(body).Kind() == reflect.String {
		byteBuffer = bytes.NewBufferString(body.(string))
	} else {
		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.Fail(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
	}

	recorder := httptest.NewRecorder()
	request, err := http.NewRequest(method, url, byteBuffer)
	if err != nil {
		assert.Fail(t, "Request could not be created", err)
	}

	handler.ServeHTTP(recorder, request)
	return *recorder
}
