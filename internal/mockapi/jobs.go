package mockapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

func (s *Server) handleGetAllJobs(c *gin.Context) {
	c.JSON(http.StatusOK, s.state.allJobs())
}

func (s *Server) handleGetJob(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid job id")
		return
	}

	s.state.mu.Lock()
	job, ok := s.state.jobs[id]
	s.state.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, "job not found")
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) handlePostJob(c *gin.Context) {
	var req model.JobCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid job: "+err.Error())
		return
	}
	c.JSON(http.StatusCreated, s.state.addJob(req))
}

func (s *Server) handleUpdateJob(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid job id")
		return
	}

	var req model.JobCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid job: "+err.Error())
		return
	}

	s.state.mu.Lock()
	job, ok := s.state.jobs[id]
	if ok {
		job.JobTitle = req.JobTitle
		job.Company = req.Company
		job.CompanyLogo = req.CompanyLogo
		job.Location = req.Location
		job.JobType = req.JobType
		job.Experience = req.Experience
		job.PackageOffered = req.PackageOffered
		job.Description = req.Description
		job.SkillsRequired = req.SkillsRequired
	}
	s.state.mu.Unlock()

	if !ok {
		fail(c, http.StatusNotFound, "job not found")
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) handleDeleteJob(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid job id")
		return
	}

	s.state.mu.Lock()
	_, ok := s.state.jobs[id]
	delete(s.state.jobs, id)
	s.state.mu.Unlock()

	if !ok {
		fail(c, http.StatusNotFound, "job not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
