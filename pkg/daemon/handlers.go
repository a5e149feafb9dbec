package daemon

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/battalert/battalert/pkg/config"
	"github.com/battalert/battalert/pkg/monitor"
	"github.com/battalert/battalert/pkg/version"
)

type server struct {
	loop *monitor.Loop
	cfg  *config.Config
}

func (s *server) getStatus(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.loop.Report())
}

func (s *server) getConfig(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.cfg)
}

func (s *server) postCheck(c *gin.Context) {
	s.loop.Wake()
	c.IndentedJSON(http.StatusAccepted, "check scheduled")
}

func (s *server) getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
