// Package server exposes shows, songs and setlist generation over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/setlist/internal/planner"
	"github.com/katalvlaran/setlist/internal/report"
	"github.com/katalvlaran/setlist/internal/store"
	"github.com/katalvlaran/setlist/sequence"
)

// Server holds the HTTP handlers and what they need.
type Server struct {
	Store   store.Store
	Planner *planner.Planner
	Display report.Options
}

// NewServer serves st; display holds the defaults for top and unique.
func NewServer(st store.Store, p *planner.Planner, display report.Options) *Server {
	return &Server{Store: st, Planner: p, Display: display}
}

// SetupRouter registers every route on a gin engine with logging and
// recovery middleware.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.POST("/shows", s.CreateShow)
	r.GET("/shows", s.ListShows)
	r.GET("/shows/:id/songs", s.ListSongs)
	r.POST("/shows/:id/songs", s.AddSong)
	r.DELETE("/shows/:id/songs/:title", s.DeleteSong)
	r.POST("/shows/:id/setlists", s.ShowSetlists)
	r.POST("/setlists", s.Setlists)

	return r
}

// Dancers accepts either a JSON list of names or the "Ana, Ben" string form.
type Dancers []string

// UnmarshalJSON implements json.Unmarshaler.
func (d *Dancers) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*d = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("dancers must be a list or a comma-separated string")
	}
	*d = store.ParseDancers(s)
	return nil
}

// CreateShowRequest is the body of POST /shows.
type CreateShowRequest struct {
	Name string `json:"name"`
}

// AddSongRequest is the body of POST /shows/:id/songs and one entry of
// GenerateRequest.Songs.
type AddSongRequest struct {
	Title   string  `json:"title"`
	Dancers Dancers `json:"dancers"`
}

// SetlistRequest is the body of POST /shows/:id/setlists. Top and Unique
// fall back to the server's display defaults when absent.
type SetlistRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Top    *int   `json:"top"`
	Unique *bool  `json:"unique"`
}

// GenerateRequest is the body of POST /setlists.
type GenerateRequest struct {
	SetlistRequest
	Name  string           `json:"name"`
	Songs []AddSongRequest `json:"songs"`
}

// SetlistResponse carries the ranked setlists of one show. Total counts every
// candidate before Top and Unique are applied.
type SetlistResponse struct {
	Show     store.Show       `json:"show"`
	Total    int              `json:"total"`
	Setlists []report.Setlist `json:"setlists"`
}

// Health answers GET /healthz.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateShow answers POST /shows.
func (s *Server) CreateShow(c *gin.Context) {
	var req CreateShowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	sh, err := s.Store.CreateShow(c.Request.Context(), req.Name)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, sh)
}

// ListShows answers GET /shows.
func (s *Server) ListShows(c *gin.Context) {
	shows, err := s.Store.ListShows(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shows": shows})
}

// ListSongs answers GET /shows/:id/songs.
func (s *Server) ListSongs(c *gin.Context) {
	songs, err := s.Store.ListSongs(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"songs": songs})
}

// AddSong answers POST /shows/:id/songs with the song as stored.
func (s *Server) AddSong(c *gin.Context) {
	var req AddSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	song := store.Song{Title: req.Title, Dancers: req.Dancers}
	if err := s.Store.AddSong(c.Request.Context(), c.Param("id"), song); err != nil {
		s.fail(c, err)
		return
	}
	song, _ = store.NormalizeSong(song)

	c.JSON(http.StatusCreated, song)
}

// DeleteSong answers DELETE /shows/:id/songs/:title.
func (s *Server) DeleteSong(c *gin.Context) {
	if err := s.Store.DeleteSong(c.Request.Context(), c.Param("id"), c.Param("title")); err != nil {
		s.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ShowSetlists answers POST /shows/:id/setlists. The body is optional.
func (s *Server) ShowSetlists(c *gin.Context) {
	var req SetlistRequest
	if err := bindOptional(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := s.Planner.Plan(c.Request.Context(), planner.Request{
		ShowID: c.Param("id"),
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, s.respond(res, req))
}

// Setlists generates setlists for songs sent in the request, without storing
// anything.
func (s *Server) Setlists(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	items, err := songItems(req.Songs)
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.Planner.PlanItems(c.Request.Context(), req.Name, items, req.Start, req.End)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, s.respond(res, req.SetlistRequest))
}

// songItems converts request songs into sequencing items. Titles must be
// unique and dancer names non-blank, as for stored songs; an empty dancer
// list is allowed.
func songItems(songs []AddSongRequest) ([]sequence.Item, error) {
	var (
		items = make([]sequence.Item, 0, len(songs))
		seen  = make(map[string]struct{}, len(songs))
	)
	for _, song := range songs {
		title := strings.TrimSpace(song.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is empty", store.ErrInvalidSong)
		}
		if _, dup := seen[title]; dup {
			return nil, fmt.Errorf("%w: %q is listed twice", store.ErrInvalidSong, title)
		}
		seen[title] = struct{}{}

		tags := make([]string, 0, len(song.Dancers))
		for _, d := range song.Dancers {
			if d = strings.TrimSpace(d); d == "" {
				return nil, fmt.Errorf("%w: %q has a blank dancer", store.ErrInvalidSong, title)
			}
			tags = append(tags, d)
		}
		items = append(items, sequence.Item{ID: title, Tags: tags})
	}

	return items, nil
}

func (s *Server) respond(res *planner.Result, req SetlistRequest) SetlistResponse {
	opts := s.Display
	if req.Top != nil {
		opts.Top = *req.Top
	}
	if req.Unique != nil {
		opts.Unique = *req.Unique
	}

	return SetlistResponse{
		Show:     res.Show,
		Total:    len(res.Candidates),
		Setlists: report.Build(res.Candidates, opts),
	}
}

// bindOptional binds a JSON body when one was sent.
func bindOptional(c *gin.Context, v any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(v)
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, store.ErrShowNotFound), errors.Is(err, store.ErrSongNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrShowExists), errors.Is(err, store.ErrSongExists):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidShow), errors.Is(err, store.ErrInvalidSong):
		return http.StatusBadRequest
	case errors.Is(err, sequence.ErrUnknownAnchor),
		errors.Is(err, sequence.ErrEmptyUniverse),
		errors.Is(err, planner.ErrTooManySongs):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
