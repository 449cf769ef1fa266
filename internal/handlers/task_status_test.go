package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

func (suite *APITestSuite) TestListTaskStatuses_Seeded() {
	w := suite.request(http.MethodGet, "/api/task_statuses", suite.adminToken(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var statuses []dto.TaskStatusDTO
	suite.decode(w, &statuses)
	suite.Len(statuses, 5)
	suite.Equal("5", w.Header().Get("X-Total-Count"))
	suite.Equal("draft", statuses[0].Slug)
}

func (suite *APITestSuite) TestCreateTaskStatus() {
	w := suite.request(http.MethodPost, "/api/task_statuses", suite.adminToken(), map[string]string{
		"name": "Archived",
		"slug": "archived",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var status dto.TaskStatusDTO
	suite.decode(w, &status)
	suite.Equal("Archived", status.Name)
	suite.Equal("archived", status.Slug)
}

func (suite *APITestSuite) TestCreateTaskStatus_Duplicate() {
	w := suite.request(http.MethodPost, "/api/task_statuses", suite.adminToken(), map[string]string{
		"name": "Anything",
		"slug": "Draft",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(suite.errorMessage(w), "already in use!")
}

func (suite *APITestSuite) TestCreateTaskStatus_BlankFields() {
	w := suite.request(http.MethodPost, "/api/task_statuses", suite.adminToken(), map[string]string{
		"name": " ",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "{slug: must not be blank}")
}

func (suite *APITestSuite) TestUpdateTaskStatus_Partial() {
	id := suite.statusID("to_review")

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/task_statuses/%d", id), suite.adminToken(), map[string]string{
		"name": "In review",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var status dto.TaskStatusDTO
	suite.decode(w, &status)
	suite.Equal("In review", status.Name)
	suite.Equal("to_review", status.Slug)
}

func (suite *APITestSuite) TestDeleteTaskStatus() {
	id := suite.statusID("published")

	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/task_statuses/%d", id), suite.adminToken(), nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/task_statuses/%d", id), suite.adminToken(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestDeleteTaskStatus_InUse() {
	w := suite.request(http.MethodPost, "/api/tasks", suite.adminToken(), map[string]any{
		"title":  "Uses draft",
		"status": "draft",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/task_statuses/%d", suite.statusID("draft")), suite.adminToken(), nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(apierrors.TaskStatusDeleteMessage, suite.errorMessage(w))
}
