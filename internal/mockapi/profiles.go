package mockapi

import (
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// profileRecord is the backend's profile shape, with its own field
// spellings ("exprience" included)
type profileRecord struct {
	ID             int                   `json:"id"`
	Name           string                `json:"name"`
	Title          string                `json:"title"`
	Location       string                `json:"location"`
	Exprience      string                `json:"exprience"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone"`
	Company        string                `json:"company"`
	About          string                `json:"about"`
	Skills         []string              `json:"skills"`
	Picture        string                `json:"picture,omitempty"`
	Experiences    []model.Experience    `json:"experiences"`
	Certifications []model.Certification `json:"certifications"`
	Stats          model.ProfileStats    `json:"stats"`
}

func (s *Server) handleGetProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid profile id")
		return
	}

	s.state.mu.Lock()
	p, ok := s.state.profiles[id]
	s.state.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, "profile not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid profile id")
		return
	}

	var req profileRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid profile body")
		return
	}
	req.ID = id

	s.state.mu.Lock()
	_, ok := s.state.profiles[id]
	if ok {
		s.state.profiles[id] = &req
	}
	s.state.mu.Unlock()

	if !ok {
		fail(c, http.StatusNotFound, "profile not found")
		return
	}
	c.JSON(http.StatusOK, req)
}

func (s *Server) handleCreateProfile(c *gin.Context) {
	var req profileRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid profile body")
		return
	}
	if req.ID == 0 {
		req.ID = c.GetInt("userID")
	}

	s.state.mu.Lock()
	s.state.profiles[req.ID] = &req
	s.state.mu.Unlock()

	c.JSON(http.StatusCreated, req)
}

func (s *Server) handleUploadAvatar(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid profile id")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file required")
		return
	}

	// The double does not persist bytes; it just assigns a stable URL
	url := "/media/avatars/" + uuid.New().String() + filepath.Ext(file.Filename)

	s.state.mu.Lock()
	if p, ok := s.state.profiles[id]; ok {
		p.Picture = url
	}
	s.state.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"url": url})
}
