package handlers

import (
	"net/http"
)

func (suite *APITestSuite) TestLogin_SeededAdmin() {
	token := suite.adminToken()

	principal, err := suite.tokens.Verify(token)
	suite.Require().NoError(err)
	suite.Equal(adminEmail, principal.Subject)
	suite.True(principal.IsAdmin())
}

func (suite *APITestSuite) TestLogin_WrongPassword() {
	w := suite.request(http.MethodPost, "/api/login", "", map[string]string{
		"username": adminEmail,
		"password": "wrong",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Invalid username or password", suite.errorMessage(w))
}

func (suite *APITestSuite) TestLogin_MalformedBody() {
	w := suite.request(http.MethodPost, "/api/login", "", "{not json")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestLogin_MissingCredentials() {
	bodies := []map[string]string{
		{"username": adminEmail},
		{"password": adminPassword},
		{"username": "", "password": ""},
		{},
	}
	for _, body := range bodies {
		w := suite.request(http.MethodPost, "/api/login", "", body)
		suite.Equal(http.StatusUnauthorized, w.Code, body)
		suite.Equal("Invalid username or password", suite.errorMessage(w))
	}
}

func (suite *APITestSuite) TestProtectedRoutes_RequireToken() {
	paths := []string{"/api/users", "/api/task_statuses", "/api/labels", "/api/tasks", "/api/tasks/1"}
	for _, path := range paths {
		w := suite.request(http.MethodGet, path, "", nil)
		suite.Equal(http.StatusUnauthorized, w.Code, path)
	}

	w := suite.request(http.MethodGet, "/api/tasks", "garbage", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestHealth_IsPublic() {
	w := suite.request(http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)
}
