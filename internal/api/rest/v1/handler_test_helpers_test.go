//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"

	"github.com/gin-gonic/gin"
)

const (
	testOrgID      = "5d3a5e0a-7c1b-4b8e-9a51-3f1b2c4d5e6f"
	testUserID     = "0f8e7d6c-5b4a-4392-8170-6f5e4d3c2b1a"
	testContractID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testActor(role string) identity.Actor {
	return identity.Actor{UserID: testUserID, OrganizationID: testOrgID, Role: role, IPAddress: "192.0.2.1"}
}

// newTestContext builds a gin context for method and url with an optional JSON
// body. A non-empty role authenticates the request as that role.
func newTestContext(method, url, body, role string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, url, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if role != "" {
		c.Set(actorKey, testActor(role))
	}
	return c, w
}
