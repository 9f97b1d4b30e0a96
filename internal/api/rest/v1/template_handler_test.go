//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"github.com/rpsg-tech/clm-sub005/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testTemplateID = "3c2b1a09-8f7e-4d6c-9b5a-4f3e2d1c0b9a"

func testTemplate() *templates.Template {
	now := time.Now().UTC()
	return &templates.Template{
		ID:              testTemplateID,
		OrganizationID:  testOrgID,
		Name:            "NDA",
		Category:        "confidentiality",
		Body:            "<p>Between {{party}} and us.</p>",
		Variables:       []string{"party"},
		Active:          true,
		CreatedBy:       testUserID,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
}

func TestTemplateHandler_Create_DefaultsToActive(t *testing.T) {
	mockTemplateService := new(MockTemplateService)
	handler := NewTemplateHandler(mockTemplateService)

	mockTemplateService.
		On("Create", mock.Anything, testActor(users.RoleLegal), &templates.TemplateInput{
			Name:     "NDA",
			Category: "confidentiality",
			Body:     "<p>Between {{party}} and us.</p>",
			Active:   true,
		}).
		Return(testTemplate(), nil)

	c, w := newTestContext(http.MethodPost, "/templates",
		`{"name":"NDA","category":"confidentiality","body":"<p>Between {{party}} and us.</p>"}`, users.RoleLegal)
	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"variables":["party"]`)
	mockTemplateService.AssertExpectations(t)
}

func TestTemplateHandler_Create_ValidationFailed(t *testing.T) {
	mockTemplateService := new(MockTemplateService)
	handler := NewTemplateHandler(mockTemplateService)

	c, w := newTestContext(http.MethodPost, "/templates", `{"name":""}`, users.RoleLegal)
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockTemplateService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTemplateHandler_List_ParsesFilters(t *testing.T) {
	mockTemplateService := new(MockTemplateService)
	handler := NewTemplateHandler(mockTemplateService)

	mockTemplateService.
		On("List", mock.Anything, mock.Anything, mock.MatchedBy(func(q *templates.TemplateQuery) bool {
			return q.Category == "confidentiality" && q.Active != nil && *q.Active && q.Limit == 10 && q.SortBy == "name"
		})).
		Return([]*templates.Template{testTemplate()}, nil)

	c, w := newTestContext(http.MethodGet, "/templates?category=confidentiality&active=true&limit=10&sortBy=name", "", users.RoleViewer)
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testTemplateID)
	mockTemplateService.AssertExpectations(t)
}

func TestTemplateHandler_List_InvalidSort(t *testing.T) {
	handler := NewTemplateHandler(new(MockTemplateService))

	c, w := newTestContext(http.MethodGet, "/templates?sortBy=password", "", users.RoleViewer)
	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateHandler_GetByID_NotFound(t *testing.T) {
	mockTemplateService := new(MockTemplateService)
	handler := NewTemplateHandler(mockTemplateService)

	mockTemplateService.On("GetByID", mock.Anything, mock.Anything, testTemplateID).
		Return(nil, fmt.Errorf("template %s: %w", testTemplateID, clmerr.ErrNotFound))

	c, w := newTestContext(http.MethodGet, "/templates/"+testTemplateID, "", users.RoleViewer)
	c.Params = gin.Params{gin.Param{Key: "id", Value: testTemplateID}}
	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestTemplateHandler_Update_Inactive(t *testing.T) {
	mockTemplateService := new(MockTemplateService)
	handler := NewTemplateHandler(mockTemplateService)

	updated := testTemplate()
	updated.Active = false
	mockTemplateService.
		On("Update", mock.Anything, mock.Anything, testTemplateID, mock.MatchedBy(func(in *templates.TemplateInput) bool {
			return !in.Active
		})).
		Return(updated, nil)

	c, w := newTestContext(http.MethodPut, "/templates/"+testTemplateID,
		`{"name":"NDA","body":"<p>x</p>","active":false}`, users.RoleAdmin)
	c.Params = gin.Params{gin.Param{Key: "id", Value: testTemplateID}}
	handler.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"active":false`)
	mockTemplateService.AssertExpectations(t)
}

func TestTemplateHandler_DeleteByID(t *testing.T) {
	mockTemplateService := new(MockTemplateService)
	handler := NewTemplateHandler(mockTemplateService)

	mockTemplateService.On("DeleteByID", mock.Anything, mock.Anything, testTemplateID).Return(nil)

	c, w := newTestContext(http.MethodDelete, "/templates/"+testTemplateID, "", users.RoleAdmin)
	c.Params = gin.Params{gin.Param{Key: "id", Value: testTemplateID}}
	handler.DeleteByID(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockTemplateService.AssertExpectations(t)
}
