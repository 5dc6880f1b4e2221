package testing

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/onsi/gomega"
)

type RequestModifier func(r *http.Request)

type RequestModifiers []RequestModifier

func WithHeader(key string, value string) RequestModifier {
	return func(request *http.Request) {
		request.Header.Set(key, value)
	}
}

type RequestFactory struct {
	Method  string
	Target  string
	JSONObj any
	Mods    RequestModifiers
}

func (r RequestFactory) make(reqMaker func(string, string, io.Reader) *http.Request) *http.Request {
	var body io.Reader

	if r.JSONObj != nil {
		buf := &bytes.Buffer{}
		err := json.NewEncoder(buf).Encode(r.JSONObj)
		gomega.ExpectWithOffset(1, err).NotTo(gomega.HaveOccurred())

		body = buf
	}

	request := reqMaker(r.Method, r.Target, body)

	isJSONBody := body != nil
	if isJSONBody {
		request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	for _, mod := range r.Mods {
		mod(request)
	}

	return request
}

func (r RequestFactory) MakeFake() *http.Request {
	return r.make(httptest.NewRequest)
}

// Serve runs a fake request straight through a handler
func (r RequestFactory) Serve(handler http.Handler) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, r.MakeFake())
	return recorder
}
