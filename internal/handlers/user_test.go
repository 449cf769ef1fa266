package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

func (suite *APITestSuite) TestCreateUser() {
	w := suite.request(http.MethodPost, "/api/users", suite.adminToken(), map[string]string{
		"email":     "jack@google.com",
		"firstName": "Jack",
		"lastName":  "Jons",
		"password":  "some-password",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var user dto.UserDTO
	suite.decode(w, &user)
	suite.NotZero(user.ID)
	suite.Equal("jack@google.com", user.Email)
	suite.Equal("Jack", user.FirstName)
	suite.False(user.CreatedAt.IsZero())
	suite.NotContains(w.Body.String(), "password")
}

func (suite *APITestSuite) TestCreateUser_Validation() {
	w := suite.request(http.MethodPost, "/api/users", suite.adminToken(), map[string]string{
		"email":    "not-an-email",
		"password": "ab",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	message := suite.errorMessage(w)
	suite.Contains(message, "email")
	suite.Contains(message, "password")
}

func (suite *APITestSuite) TestCreateUser_DuplicateEmail() {
	w := suite.request(http.MethodPost, "/api/users", suite.adminToken(), map[string]string{
		"email":    adminEmail,
		"password": "secret",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(fmt.Sprintf("Email %s already in use!", adminEmail), suite.errorMessage(w))
}

func (suite *APITestSuite) TestListUsers_SetsTotalCount() {
	suite.createUser("one@example.com")

	w := suite.request(http.MethodGet, "/api/users", suite.adminToken(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var users []dto.UserDTO
	suite.decode(w, &users)
	suite.Len(users, 2)
	suite.Equal("2", w.Header().Get("X-Total-Count"))
}

func (suite *APITestSuite) TestGetUser_NotFound() {
	w := suite.request(http.MethodGet, "/api/users/999", suite.adminToken(), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("User with id 999 not found!", suite.errorMessage(w))
}

func (suite *APITestSuite) TestUpdateUser_OwnerPartialUpdate() {
	id, token := suite.createUser("owner@example.com")

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/users/%d", id), token, map[string]string{
		"firstName": "Mike",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("Mike", user.FirstName)
	suite.Equal("Jons", user.LastName)
	suite.Equal("owner@example.com", user.Email)
}

func (suite *APITestSuite) TestUpdateUser_NullClearsName() {
	id, token := suite.createUser("owner@example.com")

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/users/%d", id), token, `{"lastName": null}`)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("Jack", user.FirstName)
	suite.Empty(user.LastName)
}

func (suite *APITestSuite) TestUpdateUser_ForbiddenForOtherUser() {
	targetID, _ := suite.createUser("target@example.com")
	_, otherToken := suite.createUser("other@example.com")

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/users/%d", targetID), otherToken, map[string]string{
		"firstName": "Hacked",
	})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/users/%d", targetID), otherToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *APITestSuite) TestUpdateUser_AdminMayEditAnyone() {
	id, _ := suite.createUser("target@example.com")

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/users/%d", id), suite.adminToken(), map[string]string{
		"email": "renamed@example.com",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// the old credentials keep working under the new email
	suite.login("renamed@example.com", "secret")
}

func (suite *APITestSuite) TestDeleteUser_Owner() {
	id, token := suite.createUser("leaving@example.com")

	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/users/%d", id), token, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/api/users/%d", id), suite.adminToken(), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestDeleteUser_AssignedToTask() {
	id, _ := suite.createUser("busy@example.com")

	w := suite.request(http.MethodPost, "/api/tasks", suite.adminToken(), map[string]any{
		"title":       "Assigned",
		"status":      "draft",
		"assignee_id": id,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/users/%d", id), suite.adminToken(), nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(apierrors.UserDeleteMessage, suite.errorMessage(w))
}
