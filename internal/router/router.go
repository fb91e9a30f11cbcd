package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studymate-backend/internal/handlers"
	"studymate-backend/internal/middleware"
)

func New(
	studyHandler *handlers.StudyHandler,
	examHandler *handlers.ExamHandler,
	videoHandler *handlers.VideoHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// ──── Study Material Routes ────
		r.Post("/upload", studyHandler.Upload)
		r.Post("/save-qa", studyHandler.SaveQA)
		r.Get("/topics/{userID}", studyHandler.Topics)
		r.Get("/qa/{topic}/{userID}", studyHandler.GetQA)
		r.Get("/quiz/{topic}", studyHandler.GetQuiz)
		r.Post("/check-answer", studyHandler.CheckAnswer)

		// ──── Exam Routes ────
		r.Post("/generate-exam", examHandler.Generate)
		r.Post("/answer-question", examHandler.AnswerQuestion)

		// ──── Video Routes ────
		r.Post("/get-youtube-videos", videoHandler.Search)
	})

	return r
}
