package server

import (
	"errors"
	"net/http"

	"github.com/matst80/slask-catalog/pkg/browser"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/types"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

type sessionFunc func(s *browser.Session, event *types.EventRequest, w http.ResponseWriter, r *http.Request) error

type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Selected   string   `json:"selected"`
}

func (ws *WebServer) jsonHandler(fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	if fn == nil {
		fn = func(w http.ResponseWriter, r *http.Request) error { return nil }
	}
	return common.JsonHandler(ws.Logger, fn)
}

// sessionHandler resolves the session from the sid cookie or query parameter and
// decodes the event parameters before calling fn.
func (ws *WebServer) sessionHandler(event string, fn sessionFunc) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		eventsTotal.WithLabelValues(event).Inc()
		er, err := types.GetEventFromRequest(r)
		if err != nil {
			return common.WriteError(w, r, http.StatusBadRequest, err.Error())
		}
		id, ok := common.SessionIdFromRequest(r)
		if !ok {
			return common.WriteError(w, r, http.StatusNotFound, ErrSessionNotFound.Error())
		}
		session, ok := ws.getSession(id)
		if !ok {
			return common.WriteError(w, r, http.StatusNotFound, ErrSessionNotFound.Error())
		}
		return fn(session, er, w, r)
	}
}

func (ws *WebServer) CreateSession(w http.ResponseWriter, r *http.Request) error {
	eventsTotal.WithLabelValues("create").Inc()
	if id, ok := common.SessionIdFromRequest(r); ok {
		ws.removeSession(id)
	}
	session := ws.createSession()
	ws.Logger.Debug("session created", zap.String("session", session.Id()))
	common.SetSessionCookie(w, r, session.Id())
	return common.WriteJson(w, r, http.StatusCreated, session.View())
}

func (ws *WebServer) DeleteSession(w http.ResponseWriter, r *http.Request) error {
	eventsTotal.WithLabelValues("close").Inc()
	id, ok := common.SessionIdFromRequest(r)
	if !ok || !ws.removeSession(id) {
		return common.WriteError(w, r, http.StatusNotFound, ErrSessionNotFound.Error())
	}
	common.ClearSessionCookie(w)
	common.GenericHeaders(w, r)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (ws *WebServer) GetView(s *browser.Session, _ *types.EventRequest, w http.ResponseWriter, r *http.Request) error {
	return common.WriteJson(w, r, http.StatusOK, s.View())
}

func (ws *WebServer) GetCategories(s *browser.Session, _ *types.EventRequest, w http.ResponseWriter, r *http.Request) error {
	v := s.View()
	return common.WriteJson(w, r, http.StatusOK, CategoriesResponse{
		Categories: v.Categories,
		Selected:   v.Query.Category,
	})
}

func (ws *WebServer) Search(s *browser.Session, er *types.EventRequest, w http.ResponseWriter, r *http.Request) error {
	s.SetSearchText(er.Query)
	return common.WriteJson(w, r, http.StatusOK, s.View())
}

func (ws *WebServer) Category(s *browser.Session, er *types.EventRequest, w http.ResponseWriter, r *http.Request) error {
	s.SetCategory(er.Category)
	return common.WriteJson(w, r, http.StatusOK, s.View())
}

func (ws *WebServer) Sort(s *browser.Session, er *types.EventRequest, w http.ResponseWriter, r *http.Request) error {
	key, err := er.SortKey()
	if err != nil {
		return common.WriteError(w, r, http.StatusBadRequest, err.Error())
	}
	s.SetSort(key)
	return common.WriteJson(w, r, http.StatusOK, s.View())
}

func (ws *WebServer) NextPage(s *browser.Session, _ *types.EventRequest, w http.ResponseWriter, r *http.Request) error {
	s.NextPage()
	return common.WriteJson(w, r, http.StatusOK, s.View())
}

func (ws *WebServer) PrevPage(s *browser.Session, _ *types.EventRequest, w http.ResponseWriter, r *http.Request) error {
	s.PrevPage()
	return common.WriteJson(w, r, http.StatusOK, s.View())
}
