package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"

	"github.com/astromechza/task-tracker/pkg/task"
)

const DeletedMessage = "Task deleted successfully"

type server struct {
	store *task.Store
}

// NewRouter returns the HTTP surface of the task store with access logging applied.
func NewRouter(store *task.Store) *mux.Router {
	s := &server{store: store}

	r := mux.NewRouter()
	r.Use(logRequests)

	r.Methods(http.MethodGet).Path("/tasks").HandlerFunc(s.listTasks)
	r.Methods(http.MethodPost).Path("/tasks").HandlerFunc(s.createTask)
	r.Methods(http.MethodPut).Path("/tasks/{id}").HandlerFunc(s.updateTask)
	r.Methods(http.MethodDelete).Path("/tasks/{id}").HandlerFunc(s.deleteTask)
	return r
}

func logRequests(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		m := httpsnoop.CaptureMetrics(handler, writer, request)
		slog.Info("handled", "method", request.Method, "url", request.URL, "duration", m.Duration, "status", m.Code)
	})
}

func (s *server) listTasks(writer http.ResponseWriter, request *http.Request) {
	writeJSON(writer, http.StatusOK, s.store.List())
}

func (s *server) createTask(writer http.ResponseWriter, request *http.Request) {
	var input task.Task
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		slog.Error("failed to decode body", "err", err)
		writeDetail(writer, http.StatusUnprocessableEntity, "invalid task body")
		return
	}
	writeJSON(writer, http.StatusOK, s.store.Create(input))
}

func (s *server) updateTask(writer http.ResponseWriter, request *http.Request) {
	id, ok := taskID(writer, request)
	if !ok {
		return
	}
	var input task.Task
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		slog.Error("failed to decode body", "err", err)
		writeDetail(writer, http.StatusUnprocessableEntity, "invalid task body")
		return
	}
	updated, err := s.store.Update(id, input)
	if err != nil {
		writeStoreError(writer, err)
		return
	}
	writeJSON(writer, http.StatusOK, updated)
}

func (s *server) deleteTask(writer http.ResponseWriter, request *http.Request) {
	id, ok := taskID(writer, request)
	if !ok {
		return
	}
	if err := s.store.Delete(id); err != nil {
		writeStoreError(writer, err)
		return
	}
	writeJSON(writer, http.StatusOK, map[string]string{"message": DeletedMessage})
}

func taskID(writer http.ResponseWriter, request *http.Request) (int, bool) {
	raw := mux.Vars(request)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeDetail(writer, http.StatusUnprocessableEntity, "invalid task id: "+raw)
		return 0, false
	}
	return id, true
}

func writeStoreError(writer http.ResponseWriter, err error) {
	if errors.Is(err, task.ErrNotFound) {
		writeDetail(writer, http.StatusNotFound, "Task not found")
		return
	}
	slog.Error("unexpected store error", "err", err)
	writeDetail(writer, http.StatusInternalServerError, "internal error")
}

func writeDetail(writer http.ResponseWriter, code int, detail string) {
	writeJSON(writer, code, map[string]string{"detail": detail})
}

func writeJSON(writer http.ResponseWriter, code int, v any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(code)
	if err := json.NewEncoder(writer).Encode(v); err != nil {
		slog.Error("failed to write out", "err", err)
	}
}
