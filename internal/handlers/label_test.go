package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

func (suite *APITestSuite) TestCreateLabel() {
	w := suite.request(http.MethodPost, "/api/labels", suite.adminToken(), map[string]string{"name": "urgent"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var label dto.LabelDTO
	suite.decode(w, &label)
	suite.Equal("urgent", label.Name)
	suite.NotZero(label.ID)
}

func (suite *APITestSuite) TestCreateLabel_TooShort() {
	w := suite.request(http.MethodPost, "/api/labels", suite.adminToken(), map[string]string{"name": "ab"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "{name: size must be between 3 and 1000}")
}

func (suite *APITestSuite) TestCreateLabel_Duplicate() {
	w := suite.request(http.MethodPost, "/api/labels", suite.adminToken(), map[string]string{"name": "bug"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("Label with name bug already in use!", suite.errorMessage(w))
}

func (suite *APITestSuite) TestUpdateLabel() {
	id := suite.labelID("bug")

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/labels/%d", id), suite.adminToken(), map[string]string{"name": "defect"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var label dto.LabelDTO
	suite.decode(w, &label)
	suite.Equal(id, label.ID)
	suite.Equal("defect", label.Name)
}

func (suite *APITestSuite) TestDeleteLabel_RespondsOK() {
	id := suite.labelID("feature")

	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/labels/%d", id), suite.adminToken(), nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Empty(w.Body.String())

	w = suite.request(http.MethodGet, fmt.Sprintf("/api/labels/%d", id), suite.adminToken(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(fmt.Sprintf("Label with id %d not found!", id), suite.errorMessage(w))
}

func (suite *APITestSuite) TestDeleteLabel_InUse() {
	id := suite.labelID("bug")
	w := suite.request(http.MethodPost, "/api/tasks", suite.adminToken(), map[string]any{
		"title":        "Labelled",
		"status":       "draft",
		"taskLabelIds": []uint64{id},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/labels/%d", id), suite.adminToken(), nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(apierrors.LabelDeleteMessage, suite.errorMessage(w))
}
