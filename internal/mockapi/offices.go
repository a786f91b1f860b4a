package mockapi

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/dentabook/booking-client/internal/model"
)

// listOffices returns offices in list form: no service catalog, no
// opening hours. Clients needing detail fetch the office by id.
func (s *Server) listOffices(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Office, 0, len(s.offices))
	for _, office := range s.offices {
		office.Services = nil
		office.OpeningHours = nil
		out = append(out, office)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getOffice(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	office, ok := s.offices[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "office not found"})
		return
	}
	c.JSON(http.StatusOK, office)
}

func (s *Server) listDentists(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Dentist, 0, len(s.dentists))
	for _, dentist := range s.dentists {
		out = append(out, dentist)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) getDentist(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dentist, ok := s.dentists[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "dentist not found"})
		return
	}
	c.JSON(http.StatusOK, dentist)
}
