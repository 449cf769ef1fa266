package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/task-tracker-api/internal/dto"
)

func (suite *APITestSuite) createTask(body map[string]any) dto.TaskDTO {
	w := suite.request(http.MethodPost, "/api/tasks", suite.adminToken(), body)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	suite.decode(w, &task)
	return task
}

func (suite *APITestSuite) listTasks(query string) []dto.TaskDTO {
	w := suite.request(http.MethodGet, "/api/tasks"+query, suite.adminToken(), nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var tasks []dto.TaskDTO
	suite.decode(w, &tasks)
	suite.Equal(fmt.Sprint(len(tasks)), w.Header().Get("X-Total-Count"))
	return tasks
}

func (suite *APITestSuite) TestCreateTask_WithStatusAndLabels() {
	bug, feature := suite.labelID("bug"), suite.labelID("feature")

	task := suite.createTask(map[string]any{
		"index":        12,
		"title":        "Write docs",
		"content":      "Describe the API",
		"status":       "draft",
		"taskLabelIds": []uint64{feature, bug, feature},
	})

	suite.NotZero(task.ID)
	suite.Equal("Write docs", task.Title)
	suite.Equal("Describe the API", task.Content)
	suite.Equal("draft", task.Status)
	suite.Require().NotNil(task.Index)
	suite.Equal(12, *task.Index)
	suite.Nil(task.AssigneeID)
	suite.ElementsMatch([]uint64{bug, feature}, task.TaskLabelIDs)
	suite.False(task.CreatedAt.IsZero())
}

func (suite *APITestSuite) TestCreateTask_UnknownReferences() {
	w := suite.request(http.MethodPost, "/api/tasks", suite.adminToken(), map[string]any{
		"title":  "Orphan",
		"status": "missing",
	})
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("TaskStatus with slug missing not found!", suite.errorMessage(w))

	w = suite.request(http.MethodPost, "/api/tasks", suite.adminToken(), map[string]any{
		"title":        "Orphan",
		"status":       "draft",
		"taskLabelIds": []uint64{404},
	})
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Label with id 404 not found!", suite.errorMessage(w))

	// nothing was persisted by the failed attempts
	suite.Empty(suite.listTasks(""))
}

func (suite *APITestSuite) TestCreateTask_Validation() {
	w := suite.request(http.MethodPost, "/api/tasks", suite.adminToken(), map[string]any{"content": "no title"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Validation failed: [{title: must not be blank}, {status: must not be blank}]", suite.errorMessage(w))
}

func (suite *APITestSuite) TestGetTask_NotFound() {
	w := suite.request(http.MethodGet, "/api/tasks/77", suite.adminToken(), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Task with id 77 not found!", suite.errorMessage(w))

	w = suite.request(http.MethodGet, "/api/tasks/abc", suite.adminToken(), nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestUpdateTask_Partial() {
	bug := suite.labelID("bug")
	task := suite.createTask(map[string]any{
		"title":        "Original",
		"content":      "Keep me",
		"status":       "draft",
		"taskLabelIds": []uint64{bug},
	})

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), suite.adminToken(), map[string]any{
		"title":  "Renamed",
		"status": "to_review",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated dto.TaskDTO
	suite.decode(w, &updated)
	suite.Equal("Renamed", updated.Title)
	suite.Equal("Keep me", updated.Content)
	suite.Equal("to_review", updated.Status)
	suite.Equal([]uint64{bug}, updated.TaskLabelIDs)
}

func (suite *APITestSuite) TestUpdateTask_NullClearsAssigneeAndLabels() {
	userID, _ := suite.createUser("assignee@example.com")
	task := suite.createTask(map[string]any{
		"title":        "Assigned",
		"status":       "draft",
		"assignee_id":  userID,
		"taskLabelIds": []uint64{suite.labelID("bug")},
	})
	suite.Require().NotNil(task.AssigneeID)

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), suite.adminToken(),
		`{"assignee_id": null, "taskLabelIds": null}`)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated dto.TaskDTO
	suite.decode(w, &updated)
	suite.Nil(updated.AssigneeID)
	suite.Empty(updated.TaskLabelIDs)
	suite.Equal("Assigned", updated.Title)
}

func (suite *APITestSuite) TestUpdateTask_NullTitleRejected() {
	task := suite.createTask(map[string]any{"title": "Stay", "status": "draft"})

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), suite.adminToken(), `{"title": null}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Validation failed: [{title: must not be null}]", suite.errorMessage(w))
}

func (suite *APITestSuite) TestDeleteTask() {
	task := suite.createTask(map[string]any{
		"title":        "Temporary",
		"status":       "draft",
		"taskLabelIds": []uint64{suite.labelID("bug")},
	})

	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), suite.adminToken(), nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), suite.adminToken(), nil)
	suite.Equal(http.StatusNotFound, w.Code)

	// the label is free again once its only task is gone
	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/labels/%d", suite.labelID("bug")), suite.adminToken(), nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestListTasks_Filters() {
	userID, _ := suite.createUser("worker@example.com")
	bug, feature := suite.labelID("bug"), suite.labelID("feature")

	fix := suite.createTask(map[string]any{
		"title":        "Fix login bug",
		"status":       "to_be_fixed",
		"assignee_id":  userID,
		"taskLabelIds": []uint64{bug},
	})
	docs := suite.createTask(map[string]any{
		"title":        "Write docs",
		"status":       "draft",
		"taskLabelIds": []uint64{feature},
	})
	suite.createTask(map[string]any{
		"title":  "Fix typo",
		"status": "draft",
	})

	suite.Len(suite.listTasks(""), 3)

	byTitle := suite.listTasks("?titleCont=FIX")
	suite.Len(byTitle, 2)

	byAssignee := suite.listTasks(fmt.Sprintf("?assigneeId=%d", userID))
	suite.Require().Len(byAssignee, 1)
	suite.Equal(fix.ID, byAssignee[0].ID)

	byStatus := suite.listTasks("?status=draft")
	suite.Len(byStatus, 2)

	byLabel := suite.listTasks(fmt.Sprintf("?labelId=%d", feature))
	suite.Require().Len(byLabel, 1)
	suite.Equal(docs.ID, byLabel[0].ID)

	combined := suite.listTasks(fmt.Sprintf("?titleCont=fix&status=to_be_fixed&assigneeId=%d&labelId=%d", userID, bug))
	suite.Require().Len(combined, 1)
	suite.Equal(fix.ID, combined[0].ID)
}

func (suite *APITestSuite) TestListTasks_NoMatchIsEmptyArray() {
	suite.createTask(map[string]any{"title": "Only", "status": "draft"})

	w := suite.request(http.MethodGet, "/api/tasks?status=published", suite.adminToken(), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
	suite.Equal("0", w.Header().Get("X-Total-Count"))
}

func (suite *APITestSuite) TestListTasks_NonNumericID() {
	w := suite.request(http.MethodGet, "/api/tasks?assigneeId=abc", suite.adminToken(), nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Validation failed: [{assigneeId: must be a number}]", suite.errorMessage(w))
}
