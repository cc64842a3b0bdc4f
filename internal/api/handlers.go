package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JakeFAU/goodshort-api/internal/goodshort"
)

// Client-facing failure messages. Causes stay in the logs.
const (
	msgFetchFailed = "Failed to fetch data"
	msgInternal    = "Something broke!"
)

const statusSuccess = "success"

type dataEnvelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

type searchEnvelope struct {
	Status string                   `json:"status"`
	Query  string                   `json:"query"`
	Count  int                      `json:"count"`
	Data   []goodshort.SearchResult `json:"data"`
}

type chaptersEnvelope struct {
	Status        string              `json:"status"`
	BookID        string              `json:"bookId"`
	TotalChapters int                 `json:"totalChapters"`
	Data          []goodshort.Chapter `json:"data"`
}

type playEnvelope struct {
	Status string `json:"status"`
	goodshort.PlaybackInfo
}

type streamEnvelope struct {
	Status string `json:"status"`
	goodshort.StreamInfo
}

func success[T any](logger *zap.Logger, w http.ResponseWriter, data T) {
	writeJSON(logger, w, http.StatusOK, dataEnvelope[T]{Status: statusSuccess, Data: data})
}

func (s *Server) navChannel(w http.ResponseWriter, r *http.Request) {
	channels, err := s.catalog.NavChannels(r.Context(), r.URL.Query().Get("lang"))
	if err != nil {
		s.fail(w, r, goodshort.EndpointNavChannel, err)
		return
	}
	success(s.logger, w, channels)
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	feed, err := s.catalog.Home(r.Context(), q.Get("lang"), q.Get("channel"))
	if err != nil {
		s.fail(w, r, goodshort.EndpointHome, err)
		return
	}
	success(s.logger, w, feed)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	results, err := s.catalog.Search(r.Context(), q.Get("lang"), query)
	if err != nil {
		s.fail(w, r, goodshort.EndpointSearch, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, searchEnvelope{
		Status: statusSuccess,
		Query:  query,
		Count:  len(results),
		Data:   results,
	})
}

func (s *Server) hot(w http.ResponseWriter, r *http.Request) {
	dramas, err := s.catalog.Hot(r.Context(), r.URL.Query().Get("lang"))
	if err != nil {
		s.fail(w, r, goodshort.EndpointHot, err)
		return
	}
	success(s.logger, w, dramas)
}

func (s *Server) book(w http.ResponseWriter, r *http.Request) {
	detail, err := s.catalog.Book(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("lang"))
	if err != nil {
		s.fail(w, r, goodshort.EndpointBook, err)
		return
	}
	success(s.logger, w, detail)
}

func (s *Server) chapters(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q := r.URL.Query()
	chapters, err := s.catalog.Chapters(r.Context(), id, q.Get("lang"), q.Get("token"))
	if err != nil {
		s.fail(w, r, goodshort.EndpointChapters, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, chaptersEnvelope{
		Status:        statusSuccess,
		BookID:        id,
		TotalChapters: len(chapters),
		Data:          chapters,
	})
}

func (s *Server) play(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	info, err := s.catalog.Play(r.Context(), chi.URLParam(r, "chapterId"), q.Get("bookId"), q.Get("lang"))
	if err != nil {
		s.fail(w, r, goodshort.EndpointPlay, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, playEnvelope{Status: statusSuccess, PlaybackInfo: info})
}

func (s *Server) m3u8(w http.ResponseWriter, r *http.Request) {
	info, err := s.catalog.Stream(chi.URLParam(r, "chapterId"), r.URL.Query().Get("bookId"))
	if err != nil {
		s.fail(w, r, goodshort.EndpointStream, err)
		return
	}
	writeJSON(s.logger, w, http.StatusOK, streamEnvelope{Status: statusSuccess, StreamInfo: info})
}

// fail maps an operation error onto the error envelope.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, endpoint string, err error) {
	var ve *goodshort.ValidationError
	if errors.As(err, &ve) {
		writeError(s.logger, w, http.StatusBadRequest, ve.Message)
		return
	}

	s.logger.Error("endpoint failed",
		zap.String("endpoint", endpoint),
		zap.String("path", r.URL.Path),
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err),
	)
	if errors.Is(err, goodshort.ErrFetchFailed) {
		writeError(s.logger, w, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeError(s.logger, w, http.StatusInternalServerError, msgInternal)
}
