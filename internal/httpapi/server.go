// Package httpapi serves the studyflow REST API.
package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/contract"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Tasks    service.TaskService
	Subjects service.SubjectService
	Plans    service.PlanService
	Chat     service.ChatService

	Logger  *slog.Logger
	APIKey  string
	Metrics http.Handler    // served at /metrics when set
	Observe RequestObserver // optional
	Now     func() time.Time
}

type server struct {
	Deps
}

func NewRouter(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &server{Deps: deps}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLog(deps.Logger, deps.Observe))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	r.Route("/api", func(api chi.Router) {
		api.Use(APIKey(deps.APIKey))

		api.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.listTasks)
			r.Post("/", s.createTask)
			r.Get("/{id}", s.getTask)
			r.Patch("/{id}", s.updateTask)
			r.Delete("/{id}", s.deleteTask)
		})
		api.Route("/subjects", func(r chi.Router) {
			r.Get("/", s.listSubjects)
			r.Post("/", s.createSubject)
		})
		api.Route("/plan", func(r chi.Router) {
			r.Get("/", s.getPlan)
			r.Get("/today", s.getTodayPlan)
			r.Post("/generate", s.generatePlan)
		})
		api.Route("/chat", func(r chi.Router) {
			r.Get("/", s.chatHistory)
			r.Post("/", s.sendChat)
		})
	})
	return r
}

func (s *server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.Tasks.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.TaskListResponse{Tasks: contract.FromTasks(tasks)})
}

func (s *server) createTask(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateTaskRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	task, err := req.ToTask(s.Now().Location())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := s.Tasks.Create(r.Context(), task); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract.TaskResponse{Task: contract.FromTask(task)})
}

func (s *server) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.Tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.TaskResponse{Task: contract.FromTask(task)})
}

func (s *server) updateTask(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateTaskRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	patch, err := req.ToPatch(s.Now().Location())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	task, err := s.Tasks.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.TaskResponse{Task: contract.FromTask(task)})
}

func (s *server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.Tasks.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) listSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := s.Subjects.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]contract.SubjectDTO, len(subjects))
	for i, sub := range subjects {
		out[i] = contract.FromSubject(sub)
	}
	writeJSON(w, http.StatusOK, contract.SubjectListResponse{Subjects: out})
}

func (s *server) createSubject(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateSubjectRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	subject, err := s.Subjects.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract.SubjectResponse{Subject: contract.FromSubject(subject)})
}

func (s *server) getPlan(w http.ResponseWriter, r *http.Request) {
	day := domain.ParsePlanDay(r.URL.Query().Get("day"))
	blocks, err := s.Plans.Blocks(r.Context(), day, s.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.PlanResponse{Day: day, Blocks: contract.FromBlocks(blocks)})
}

func (s *server) getTodayPlan(w http.ResponseWriter, r *http.Request) {
	blocks, err := s.Plans.Blocks(r.Context(), domain.PlanToday, s.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.TodayPlanResponse{Blocks: contract.FromBlocks(blocks)})
}

func (s *server) generatePlan(w http.ResponseWriter, r *http.Request) {
	var body contract.GeneratePlanRequest
	if !decodeJSON(w, r, &body, true) {
		return
	}
	req := body.ToPlanRequest()
	now := s.Now()
	req.Now = &now
	res, err := s.Plans.Rebuild(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.FromPlanResult(res))
}

func (s *server) chatHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeErr(w, http.StatusBadRequest, string(app.ErrCodeInvalidInput), "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}
	msgs, err := s.Chat.History(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.ChatHistoryResponse{Messages: contract.FromChatMessages(msgs)})
}

func (s *server) sendChat(w http.ResponseWriter, r *http.Request) {
	var req contract.ChatRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}
	reply, err := s.Chat.Send(r.Context(), req.Message, s.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.FromChatReply(reply))
}
