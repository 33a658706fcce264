package mockapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

func pathInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return v, true
}

func (s *Server) handleAllNotifications(c *gin.Context) {
	userID, ok := pathInt(c, "userId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.state.notificationsFor(userID, false, ""))
}

func (s *Server) handleUnreadNotifications(c *gin.Context) {
	userID, ok := pathInt(c, "userId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.state.notificationsFor(userID, true, ""))
}

func (s *Server) handleNotificationCount(c *gin.Context) {
	userID, ok := pathInt(c, "userId")
	if !ok {
		return
	}
	count := len(s.state.notificationsFor(userID, true, ""))
	c.JSON(http.StatusOK, model.NotificationCountResponse{Count: count})
}

func (s *Server) handleNotificationsByAction(c *gin.Context) {
	userID, ok := pathInt(c, "userId")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.state.notificationsFor(userID, false, c.Param("action")))
}

func (s *Server) handleSendNotification(c *gin.Context) {
	var req model.NotificationCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid notification: "+err.Error())
		return
	}
	c.JSON(http.StatusCreated, s.state.addNotification(req))
}

func (s *Server) handleMarkRead(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	s.state.mu.Lock()
	n, found := s.state.notices[id]
	if found {
		n.Status = model.NotificationRead
	}
	s.state.mu.Unlock()

	if !found {
		fail(c, http.StatusNotFound, "notification not found")
		return
	}
	c.JSON(http.StatusOK, model.NotificationMarkResponse{Success: true, MarkedCount: 1})
}

func (s *Server) handleMarkAllRead(c *gin.Context) {
	userID, ok := pathInt(c, "userId")
	if !ok {
		return
	}

	marked := 0
	s.state.mu.Lock()
	for _, n := range s.state.notices {
		if n.UserID == userID && n.Status == model.NotificationUnread {
			n.Status = model.NotificationRead
			marked++
		}
	}
	s.state.mu.Unlock()

	c.JSON(http.StatusOK, model.NotificationMarkResponse{Success: true, MarkedCount: marked})
}

func (s *Server) handleDeleteNotification(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}

	s.state.mu.Lock()
	_, found := s.state.notices[id]
	delete(s.state.notices, id)
	s.state.mu.Unlock()

	if !found {
		fail(c, http.StatusNotFound, "notification not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleDeleteAllNotifications(c *gin.Context) {
	userID, ok := pathInt(c, "userId")
	if !ok {
		return
	}

	s.state.mu.Lock()
	for id, n := range s.state.notices {
		if n.UserID == userID {
			delete(s.state.notices, id)
		}
	}
	s.state.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true})
}
